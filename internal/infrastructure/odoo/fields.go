// Package odoo implementa el acceso al ERP vía JSON-RPC 2.0 (endpoint
// /jsonrpc, servicios "common" y "object"). Autentica contra la base
// configurada y lee pedidos de venta, pedidos de compra y órdenes de
// fabricación con sus líneas, facturas y banderas regulatorias.
package odoo

// FieldMap nombres de los campos personalizados del esquema Odoo del
// cliente. Son configuración de despliegue: cada instalación puede nombrar
// sus campos x_* distinto. SingleUse lista las grafías que usa ESE esquema
// (el campo cambió de nombre entre revisiones); solo los nombres listados se
// piden al ERP, porque read rechaza campos que el modelo no tiene. El mapeo
// acepta cualquiera de las grafías listadas.
type FieldMap struct {
	CE            string
	UserManual    string
	UDI           string
	MedicalDevice string
	SingleUse     []string
}

// DefaultFieldMap los nombres del esquema de producción actual. El esquema
// vigente tiene una sola grafía de un-solo-uso; un despliegue con la grafía
// vieja (x_single_patient) la configura en su lugar.
func DefaultFieldMap() FieldMap {
	return FieldMap{
		CE:            "x_ce_mark",
		UserManual:    "x_user_manual",
		UDI:           "x_udi",
		MedicalDevice: "x_medical_device",
		SingleUse:     []string{"x_single_use"},
	}
}

// productFields lista de campos a leer de product.product.
func (f FieldMap) productFields() []string {
	fields := []string{"id", "name", "default_code", f.CE, f.UserManual, f.UDI, f.MedicalDevice}
	fields = append(fields, f.SingleUse...)
	return fields
}
