// Package settingsstore persiste la configuración de usuario en un único
// archivo JSON: se lee completo al arrancar con defaults para las claves
// ausentes y se reescribe sección por sección al guardar.
package settingsstore

import (
	"fmt"
	"net/url"
	"os"
	"sync"

	"github.com/spf13/viper"

	"github.com/jhoicas/Etiquetas-api/internal/domain"
	"github.com/jhoicas/Etiquetas-api/internal/domain/entity"
)

// Defaults del despliegue actual.
const (
	defaultPrinterID   = "74652188"
	defaultBatchPrefix = "RG"
)

func defaultAddressLines() []string {
	return []string{
		"CHW-Technik GmbH",
		"Kolligsbrunnen 1",
		"37115 Duderstadt",
		"Tel.: +49 (0)5527 99896-9",
		"Fax: +49 (0)5527 99896-7",
	}
}

// Store acceso concurrente a la configuración persistida.
type Store struct {
	mu   sync.RWMutex
	v    *viper.Viper
	path string
	cur  entity.Settings
}

// Open carga (o inicializa) el archivo de configuración.
func Open(path string) (*Store, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		// archivo ausente: se arranca con defaults y se crea al guardar
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("leer configuración: %w", err)
			}
		}
	}

	s := &Store{v: v, path: path}
	s.cur = s.load()
	return s, nil
}

// load materializa la configuración con defaults para claves ausentes.
func (s *Store) load() entity.Settings {
	cfg := entity.Settings{}

	cfg.Odoo.URL = s.v.GetString("odoo.url")
	cfg.Odoo.Database = s.v.GetString("odoo.db")
	cfg.Odoo.Username = s.v.GetString("odoo.username")
	cfg.Odoo.Password = s.v.GetString("odoo.password")

	cfg.PrintNode.APIKey = s.v.GetString("printnode.api_key")
	cfg.PrintNode.PrinterID = getString(s.v, "printnode.printer_id", defaultPrinterID)
	cfg.PrintNode.SaveCopy = s.v.GetBool("printnode.save_copy")

	cfg.Label.PDFPath = s.v.GetString("label.pdf_path")
	cfg.Label.BatchPrefix = getString(s.v, "label.batch_prefix", defaultBatchPrefix)
	cfg.Label.AddressLines = s.v.GetStringSlice("label.address_lines")
	if len(cfg.Label.AddressLines) == 0 {
		cfg.Label.AddressLines = defaultAddressLines()
	}
	return cfg
}

func getString(v *viper.Viper, key, def string) string {
	if !v.IsSet(key) || v.GetString(key) == "" {
		return def
	}
	return v.GetString(key)
}

// Current instantánea de la configuración vigente.
func (s *Store) Current() entity.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// ── Guardado por sección ───────────────────────────────────────────────────────

// UpdateOdoo guarda la sección de credenciales del ERP. La URL debe ser
// http(s).
func (s *Store) UpdateOdoo(in entity.OdooSettings) error {
	if in.URL != "" {
		u, err := url.Parse(in.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: la URL del ERP debe ser http(s)", domain.ErrInvalidInput)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Set("odoo.url", in.URL)
	s.v.Set("odoo.db", in.Database)
	s.v.Set("odoo.username", in.Username)
	s.v.Set("odoo.password", in.Password)
	if err := s.write(); err != nil {
		return err
	}
	s.cur.Odoo = in
	return nil
}

// UpdatePrintNode guarda la sección del relé de impresión.
func (s *Store) UpdatePrintNode(in entity.PrintNodeSettings) error {
	if in.PrinterID == "" {
		in.PrinterID = defaultPrinterID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Set("printnode.api_key", in.APIKey)
	s.v.Set("printnode.printer_id", in.PrinterID)
	s.v.Set("printnode.save_copy", in.SaveCopy)
	if err := s.write(); err != nil {
		return err
	}
	s.cur.PrintNode = in
	return nil
}

// UpdateLabel guarda la sección de etiqueta.
func (s *Store) UpdateLabel(in entity.LabelSettings) error {
	if in.BatchPrefix == "" {
		in.BatchPrefix = defaultBatchPrefix
	}
	if len(in.AddressLines) == 0 {
		in.AddressLines = defaultAddressLines()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Set("label.pdf_path", in.PDFPath)
	s.v.Set("label.batch_prefix", in.BatchPrefix)
	s.v.Set("label.address_lines", in.AddressLines)
	if err := s.write(); err != nil {
		return err
	}
	s.cur.Label = in
	return nil
}

func (s *Store) write() error {
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("guardar configuración: %w", err)
	}
	return nil
}
