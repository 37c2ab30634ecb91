package odoo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/jhoicas/Etiquetas-api/internal/domain"
)

// ── Estructuras JSON-RPC ───────────────────────────────────────────────────────

type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
	ID      int64     `json:"id"`
}

type rpcParams struct {
	Service string `json:"service"`
	Method  string `json:"method"`
	Args    []any  `json:"args"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Message string `json:"message"`
	} `json:"data"`
}

func (e *rpcError) text() string {
	if e.Data.Message != "" {
		return e.Data.Message
	}
	return e.Message
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

// ── Cliente ────────────────────────────────────────────────────────────────────

// Credentials credenciales de sesión contra el ERP.
type Credentials struct {
	URL      string
	Database string
	Username string
	Password string
}

// Client cliente JSON-RPC del ERP. Mantiene el uid de la sesión autenticada;
// es seguro para uso concurrente.
type Client struct {
	httpClient *http.Client

	mu    sync.Mutex
	creds Credentials
	uid   int64
	seq   int64
}

// NewClient construye el cliente con un timeout de red generoso (60 s): las
// lecturas de pedidos con muchas líneas pueden tardar varios segundos.
func NewClient(creds Credentials) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		creds:      creds,
	}
}

// SetCredentials reemplaza las credenciales e invalida la sesión actual.
func (c *Client) SetCredentials(creds Credentials) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.creds = creds
	c.uid = 0
}

// Authenticated true si hay una sesión válida.
func (c *Client) Authenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.uid != 0
}

// Authenticate abre sesión con el servicio "common". El ERP devuelve false
// (no un error JSON-RPC) cuando la credencial es inválida.
func (c *Client) Authenticate(ctx context.Context) error {
	c.mu.Lock()
	creds := c.creds
	c.mu.Unlock()

	if creds.URL == "" || creds.Database == "" || creds.Username == "" {
		return fmt.Errorf("%w: faltan credenciales del ERP", domain.ErrNotAuthenticated)
	}

	raw, err := c.call(ctx, "common", "authenticate",
		[]any{creds.Database, creds.Username, creds.Password, map[string]any{}})
	if err != nil {
		return fmt.Errorf("autenticar: %w", err)
	}

	var uid int64
	if err := json.Unmarshal(raw, &uid); err != nil {
		// "false" no deserializa como entero: credencial rechazada
		return fmt.Errorf("%w: usuario o contraseña incorrectos", domain.ErrBadCredential)
	}
	if uid == 0 {
		return fmt.Errorf("%w: usuario o contraseña incorrectos", domain.ErrBadCredential)
	}

	c.mu.Lock()
	c.uid = uid
	c.mu.Unlock()
	return nil
}

// executeKw invoca method sobre model vía el servicio "object".
func (c *Client) executeKw(ctx context.Context, model, method string, args []any, kw map[string]any) (json.RawMessage, error) {
	c.mu.Lock()
	creds := c.creds
	uid := c.uid
	c.mu.Unlock()

	if uid == 0 {
		return nil, domain.ErrNotAuthenticated
	}
	if kw == nil {
		kw = map[string]any{}
	}
	return c.call(ctx, "object", "execute_kw",
		[]any{creds.Database, uid, creds.Password, model, method, args, kw})
}

// searchRead search_read sobre model con dominio, campos, orden y límite.
func (c *Client) searchRead(ctx context.Context, model string, dom []any, fields []string, order string, limit int) ([]record, error) {
	kw := map[string]any{"fields": fields}
	if order != "" {
		kw["order"] = order
	}
	if limit > 0 {
		kw["limit"] = limit
	}
	raw, err := c.executeKw(ctx, model, "search_read", []any{dom}, kw)
	if err != nil {
		return nil, err
	}
	var recs []record
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, fmt.Errorf("decodificar %s: %w", model, err)
	}
	return recs, nil
}

// read read de ids concretos sobre model.
func (c *Client) read(ctx context.Context, model string, ids []int64, fields []string) ([]record, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	raw, err := c.executeKw(ctx, model, "read", []any{ids}, map[string]any{"fields": fields})
	if err != nil {
		return nil, err
	}
	var recs []record
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, fmt.Errorf("decodificar %s: %w", model, err)
	}
	return recs, nil
}

// call envía una petición JSON-RPC al endpoint /jsonrpc.
func (c *Client) call(ctx context.Context, service, method string, args []any) (json.RawMessage, error) {
	c.mu.Lock()
	c.seq++
	req := rpcRequest{
		JSONRPC: "2.0",
		Method:  "call",
		Params:  rpcParams{Service: service, Method: method, Args: args},
		ID:      c.seq,
	}
	url := c.creds.URL
	c.mu.Unlock()

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("serializar petición: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url+"/jsonrpc", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("crear petición: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("llamar al ERP: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("el ERP respondió HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("leer respuesta: %w", err)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(data, &rpcResp); err != nil {
		return nil, fmt.Errorf("decodificar respuesta: %w", err)
	}
	if rpcResp.Error != nil {
		return nil, fmt.Errorf("error del ERP: %s", rpcResp.Error.text())
	}
	return rpcResp.Result, nil
}
