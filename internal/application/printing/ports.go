// Package printing implementa la acción de imprimir: validación de la
// selección, composición, render y los dos efectos independientes (copia
// local y envío al relé de impresión).
package printing

import (
	"context"

	"github.com/jhoicas/Etiquetas-api/internal/domain/entity"
	"github.com/jhoicas/Etiquetas-api/internal/domain/label"
)

// ── Puertos ────────────────────────────────────────────────────────────────────

// Renderer produce el PDF de una etiqueta compuesta.
type Renderer interface {
	RenderLabel(m *label.Model) ([]byte, error)
}

// RawBuilder produce el flujo de comandos crudo (ZPL) de una etiqueta.
type RawBuilder interface {
	Build(m *label.Model) string
}

// SubmitResult respuesta del relé de impresión a un envío.
type SubmitResult struct {
	Accepted bool
	Reason   string // cuerpo de la respuesta de rechazo; vacío si aceptado
}

// Dispatcher puerto de salida hacia el relé de impresión.
type Dispatcher interface {
	SubmitPDF(ctx context.Context, title string, pdf []byte) (*SubmitResult, error)
	SubmitRaw(ctx context.Context, title, raw string) (*SubmitResult, error)
	Probe(ctx context.Context) error
}

// SettingsProvider instantánea de la configuración vigente.
type SettingsProvider interface {
	Current() entity.Settings
}
