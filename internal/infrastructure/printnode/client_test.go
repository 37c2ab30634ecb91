package printnode

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Etiquetas-api/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{APIKey: "clave", PrinterID: "74652188", BaseURL: srv.URL})
}

func TestSubmitPDFAccepted(t *testing.T) {
	var got printJob
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/printjobs", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "clave", user)
		assert.Empty(t, pass)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("473"))
	})

	res, err := c.SubmitPDF(context.Background(), "Auftragsetikett", []byte("%PDF-fake"))
	require.NoError(t, err)

	assert.True(t, res.Accepted)
	assert.Empty(t, res.Reason)
	assert.Equal(t, "74652188", got.PrinterID)
	assert.Equal(t, "Auftragsetikett", got.Title)
	assert.Equal(t, "pdf_base64", got.ContentType)
	assert.Equal(t, "Etiquetas", got.Source)

	decoded, err := base64.StdEncoding.DecodeString(got.Content)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), decoded)
}

func TestSubmitPDFRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"unknown printer"}`))
	})

	res, err := c.SubmitPDF(context.Background(), "Auftragsetikett", []byte("%PDF-fake"))
	require.NoError(t, err)

	assert.False(t, res.Accepted)
	assert.Contains(t, res.Reason, "HTTP 400")
	assert.Contains(t, res.Reason, "unknown printer")
}

func TestSubmitRawLatin1(t *testing.T) {
	var got printJob
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	})

	res, err := c.SubmitRaw(context.Background(), "Produktetikett", "^XA^FDGröße^FS^XZ")
	require.NoError(t, err)
	require.True(t, res.Accepted)

	assert.Equal(t, "raw_base64", got.ContentType)

	// el contenido va en Latin-1, no UTF-8: "ö" es un solo byte 0xF6
	decoded, err := base64.StdEncoding.DecodeString(got.Content)
	require.NoError(t, err)
	assert.Equal(t, []byte("^XA^FDGr\xf6\xdfe^FS^XZ"), decoded)
}

func TestProbe(t *testing.T) {
	t.Run("alcanzable", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/printers", r.URL.Path)
			w.Write([]byte("[]"))
		})
		assert.NoError(t, c.Probe(context.Background()))
	})

	t.Run("credencial rechazada", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})
		assert.ErrorIs(t, c.Probe(context.Background()), domain.ErrBadCredential)
	})

	t.Run("otro estado", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		err := c.Probe(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
	})
}

func TestSetConfig(t *testing.T) {
	c := NewClient(Config{APIKey: "vieja", PrinterID: "1"})
	c.SetConfig(Config{APIKey: "nueva", PrinterID: "2"})

	cfg := c.config()
	assert.Equal(t, "nueva", cfg.APIKey)
	assert.Equal(t, "2", cfg.PrinterID)
	assert.Equal(t, defaultBaseURL, cfg.BaseURL, "BaseURL vacío vuelve al valor por defecto")
}
