package odoo

import (
	"time"

	"github.com/shopspring/decimal"
)

// record fila genérica devuelta por el ERP. Odoo serializa los valores
// ausentes como false (no como null), y los many2one como pares
// [id, "nombre visible"]; los helpers de abajo absorben ambas rarezas.
type record map[string]any

func (r record) str(key string) string {
	if s, ok := r[key].(string); ok {
		return s
	}
	return ""
}

func (r record) id() int64 {
	return r.int64Field("id")
}

func (r record) int64Field(key string) int64 {
	if f, ok := r[key].(float64); ok {
		return int64(f)
	}
	return 0
}

func (r record) dec(key string) decimal.Decimal {
	if f, ok := r[key].(float64); ok {
		return decimal.NewFromFloat(f)
	}
	return decimal.Zero
}

func (r record) boolField(key string) bool {
	b, ok := r[key].(bool)
	return ok && b
}

// anyBool true si alguna de las claves dadas es true. Se usa para campos
// con grafías alternativas entre versiones del esquema.
func (r record) anyBool(keys []string) bool {
	for _, k := range keys {
		if r.boolField(k) {
			return true
		}
	}
	return false
}

// many2one descompone un par [id, "nombre"] en sus partes.
func (r record) many2one(key string) (int64, string) {
	pair, ok := r[key].([]any)
	if !ok || len(pair) < 2 {
		return 0, ""
	}
	id, _ := pair[0].(float64)
	name, _ := pair[1].(string)
	return int64(id), name
}

// idList lista de ids de un campo one2many/many2many.
func (r record) idList(key string) []int64 {
	raw, ok := r[key].([]any)
	if !ok {
		return nil
	}
	ids := make([]int64, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(float64); ok {
			ids = append(ids, int64(f))
		}
	}
	return ids
}

// dateField interpreta fechas "2006-01-02" y timestamps
// "2006-01-02 15:04:05"; ausente o no reconocido = cero.
func (r record) dateField(key string) time.Time {
	s, ok := r[key].(string)
	if !ok || s == "" {
		return time.Time{}
	}
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
