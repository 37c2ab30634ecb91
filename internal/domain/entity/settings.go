package entity

// Settings es el registro único de configuración de usuario. Se carga
// completo al arrancar (con defaults para claves ausentes) y se reescribe
// sección por sección al guardar.
type Settings struct {
	Odoo      OdooSettings
	PrintNode PrintNodeSettings
	Label     LabelSettings
}

// OdooSettings credenciales del ERP.
type OdooSettings struct {
	URL      string
	Database string
	Username string
	Password string
}

// PrintNodeSettings credenciales y destino del relé de impresión.
type PrintNodeSettings struct {
	APIKey    string
	PrinterID string
	SaveCopy  bool // guardar copia local del PDF además de enviarlo
}

// LabelSettings ajustes propios de la etiqueta.
type LabelSettings struct {
	PDFPath      string // carpeta de salida para las copias locales
	AddressLines []string
	BatchPrefix  string // prefijo a quitar del número de factura (p.ej. "RG")
}
