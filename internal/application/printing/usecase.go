package printing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jhoicas/Etiquetas-api/internal/domain"
	"github.com/jhoicas/Etiquetas-api/internal/domain/label"
	"github.com/jhoicas/Etiquetas-api/pkg/logger"
)

// Content formato de envío.
type Content string

const (
	ContentPDF Content = "pdf"
	ContentZPL Content = "zpl"
)

// Títulos de trabajo que ve el operador en el panel del relé.
const (
	titleOrderLabel   = "Auftragsetikett"
	titleProductLabel = "Produktetikett"
)

// Input una solicitud de impresión o vista previa ya resuelta a entidades.
type Input struct {
	Label   label.Input
	Content Content
}

// Outcome resultado de una impresión. Los dos efectos son independientes:
// un rechazo del relé no anula la copia guardada ni al revés.
type Outcome struct {
	Accepted  bool
	Reason    string // motivo de rechazo del relé, si lo hubo
	SavedPath string // ruta de la copia local, si se guardó
	SaveError string // fallo al guardar, si lo hubo
}

// Preview vista previa para el front-end: el modelo compuesto y el PDF.
type Preview struct {
	Model *label.Model
	PDF   []byte
}

// UseCase acción de imprimir.
type UseCase struct {
	renderer   Renderer
	rawBuilder RawBuilder
	dispatcher Dispatcher
	settings   SettingsProvider
	log        *logger.Logger

	// inyectable para tests de nombre de archivo
	now func() time.Time
}

// NewUseCase construye la acción con sus puertos.
func NewUseCase(r Renderer, rb RawBuilder, d Dispatcher, s SettingsProvider, log *logger.Logger) *UseCase {
	return &UseCase{
		renderer:   r,
		rawBuilder: rb,
		dispatcher: d,
		settings:   s,
		log:        log,
		now:        time.Now,
	}
}

// compose valida la entrada y compone el modelo. Ningún efecto secundario
// ocurre antes de pasar estas validaciones.
func (u *UseCase) compose(in Input) (*label.Model, error) {
	if !label.ValidQuantityText(in.Label.QuantityText) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidQuantity, in.Label.QuantityText)
	}
	if in.Label.Kind == label.KindOrder && in.Label.Order != nil && in.Label.Order.FirstInvoice() == nil {
		return nil, domain.ErrMissingInvoice
	}

	cfg := u.settings.Current()
	return label.Compose(in.Label, label.Options{
		BatchPrefix:  cfg.Label.BatchPrefix,
		AddressLines: cfg.Label.AddressLines,
	})
}

// Preview compone y renderiza sin efectos secundarios.
func (u *UseCase) Preview(in Input) (*Preview, error) {
	m, err := u.compose(in)
	if err != nil {
		return nil, err
	}
	pdf, err := u.renderer.RenderLabel(m)
	if err != nil {
		return nil, fmt.Errorf("renderizar vista previa: %w", err)
	}
	return &Preview{Model: m, PDF: pdf}, nil
}

// Print ejecuta la acción completa: compone, renderiza y aplica los dos
// efectos (copia local si está activada, envío al relé).
func (u *UseCase) Print(ctx context.Context, in Input) (*Outcome, error) {
	m, err := u.compose(in)
	if err != nil {
		return nil, err
	}

	title := titleProductLabel
	if m.Kind == label.KindOrder {
		title = titleOrderLabel
	}

	if in.Content == ContentZPL {
		return u.dispatchRaw(ctx, title, m)
	}
	return u.dispatchPDF(ctx, title, m)
}

func (u *UseCase) dispatchPDF(ctx context.Context, title string, m *label.Model) (*Outcome, error) {
	pdf, err := u.renderer.RenderLabel(m)
	if err != nil {
		return nil, fmt.Errorf("renderizar etiqueta: %w", err)
	}

	out := &Outcome{}
	cfg := u.settings.Current()

	if cfg.PrintNode.SaveCopy {
		if path, err := u.saveCopy(cfg.Label.PDFPath, m, pdf); err != nil {
			// la copia fallida no bloquea el envío
			out.SaveError = err.Error()
			u.log.Warn().Err(err).Msg("no se pudo guardar la copia local")
		} else {
			out.SavedPath = path
		}
	}

	res, err := u.dispatcher.SubmitPDF(ctx, title, pdf)
	if err != nil {
		// la copia local ya escrita sobrevive al fallo de transporte; el
		// error la nombra para que el operador sepa dónde quedó
		if out.SavedPath != "" {
			return out, fmt.Errorf("enviar al relé (copia local en %s): %w", out.SavedPath, err)
		}
		return out, fmt.Errorf("enviar al relé: %w", err)
	}
	out.Accepted = res.Accepted
	out.Reason = res.Reason

	u.log.Info().Str("título", title).Bool("aceptado", out.Accepted).Msg("etiqueta enviada")
	return out, nil
}

func (u *UseCase) dispatchRaw(ctx context.Context, title string, m *label.Model) (*Outcome, error) {
	raw := u.rawBuilder.Build(m)
	res, err := u.dispatcher.SubmitRaw(ctx, title, raw)
	if err != nil {
		return nil, fmt.Errorf("enviar al relé: %w", err)
	}
	u.log.Info().Str("título", title).Bool("aceptado", res.Accepted).Msg("etiqueta ZPL enviada")
	return &Outcome{Accepted: res.Accepted, Reason: res.Reason}, nil
}

// saveCopy escribe el PDF en la carpeta configurada con el nombre derivado
// del código y el charge (o lote en etiquetas de producto).
func (u *UseCase) saveCopy(dir string, m *label.Model, pdf []byte) (string, error) {
	code := m.Code
	if code == "" {
		code = label.NoCode
	}
	second := m.BatchNumber
	if m.Kind == label.KindProduct {
		second = m.LotNumber
		if second == "" {
			second = label.NoLot
		}
	}

	path := filepath.Join(dir, label.Filename(code, second, u.now()))
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return "", fmt.Errorf("guardar copia: %w", err)
	}
	return path, nil
}
