// Package printnode implementa el puerto Dispatcher contra la API REST del
// relé de impresión PrintNode: un POST /printjobs por etiqueta, sin
// reintentos ni colas propias.
package printnode

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/Etiquetas-api/internal/application/printing"
	"github.com/jhoicas/Etiquetas-api/internal/domain"
)

const defaultBaseURL = "https://api.printnode.com"

// jobSource identifica el origen del trabajo en el panel de PrintNode.
const jobSource = "Etiquetas"

// Config credenciales y destino del relé. BaseURL solo se cambia en tests.
type Config struct {
	APIKey    string
	PrinterID string
	BaseURL   string
}

// Client cliente REST del relé. SetConfig permite recargar credenciales al
// guardar la configuración sin reconstruir el cliente.
type Client struct {
	httpClient *http.Client

	mu  sync.Mutex
	cfg Config
}

// NewClient construye el cliente.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cfg:        cfg,
	}
}

// SetConfig reemplaza credenciales y destino.
func (c *Client) SetConfig(cfg Config) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	c.mu.Lock()
	c.cfg = cfg
	c.mu.Unlock()
}

func (c *Client) config() Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// ── Envío ──────────────────────────────────────────────────────────────────────

type printJob struct {
	PrinterID   string `json:"printerId"`
	Title       string `json:"title"`
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
	Source      string `json:"source"`
}

// SubmitPDF envía un PDF en base64. 201 = aceptado; cualquier otro estado es
// un rechazo que lleva el cuerpo de la respuesta como motivo.
func (c *Client) SubmitPDF(ctx context.Context, title string, pdf []byte) (*printing.SubmitResult, error) {
	return c.submit(ctx, printJob{
		Title:       title,
		ContentType: "pdf_base64",
		Content:     base64.StdEncoding.EncodeToString(pdf),
	})
}

// SubmitRaw envía un flujo de comandos crudo (ZPL). El relé espera el
// contenido en Latin-1 antes de base64; los umlauts pasan sin mutilarse.
func (c *Client) SubmitRaw(ctx context.Context, title, raw string) (*printing.SubmitResult, error) {
	latin1, err := charmap.ISO8859_1.NewEncoder().String(raw)
	if err != nil {
		return nil, fmt.Errorf("transcodificar a Latin-1: %w", err)
	}
	return c.submit(ctx, printJob{
		Title:       title,
		ContentType: "raw_base64",
		Content:     base64.StdEncoding.EncodeToString([]byte(latin1)),
	})
}

func (c *Client) submit(ctx context.Context, job printJob) (*printing.SubmitResult, error) {
	cfg := c.config()
	job.PrinterID = cfg.PrinterID
	job.Source = jobSource

	body, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("serializar trabajo: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.BaseURL+"/printjobs", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("crear petición: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(cfg.APIKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("llamar al relé: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusCreated {
		return &printing.SubmitResult{Accepted: true}, nil
	}

	reason, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &printing.SubmitResult{
		Accepted: false,
		Reason:   fmt.Sprintf("HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(reason)),
	}, nil
}

// ── Sondeo ─────────────────────────────────────────────────────────────────────

// Probe verifica credencial y alcance del relé con GET /printers.
func (c *Client) Probe(ctx context.Context) error {
	cfg := c.config()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.BaseURL+"/printers", nil)
	if err != nil {
		return fmt.Errorf("crear petición: %w", err)
	}
	req.SetBasicAuth(cfg.APIKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("llamar al relé: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusForbidden:
		return domain.ErrBadCredential
	default:
		return fmt.Errorf("el relé respondió HTTP %d", resp.StatusCode)
	}
}
