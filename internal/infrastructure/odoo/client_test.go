package odoo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Etiquetas-api/internal/domain"
)

// fakeERP servidor JSON-RPC mínimo: autentica y despacha execute_kw por
// modelo+método mediante handlers registrados.
type fakeERP struct {
	t        *testing.T
	uid      int64
	handlers map[string]func(args []any, kw map[string]any) any
	calls    []string
}

func newFakeERP(t *testing.T) (*fakeERP, *httptest.Server) {
	f := &fakeERP{t: t, uid: 7, handlers: map[string]func([]any, map[string]any) any{}}
	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeERP) on(model, method string, fn func(args []any, kw map[string]any) any) {
	f.handlers[model+"."+method] = fn
}

func (f *fakeERP) serve(w http.ResponseWriter, r *http.Request) {
	require.Equal(f.t, "/jsonrpc", r.URL.Path)

	var req rpcRequest
	require.NoError(f.t, json.NewDecoder(r.Body).Decode(&req))

	var result any
	switch req.Params.Service {
	case "common":
		// authenticate(db, login, password, {})
		if req.Params.Args[2] == "secreto" {
			result = f.uid
		} else {
			result = false
		}
	case "object":
		model := req.Params.Args[3].(string)
		method := req.Params.Args[4].(string)
		f.calls = append(f.calls, model+"."+method)

		args, _ := req.Params.Args[5].([]any)
		kw, _ := req.Params.Args[6].(map[string]any)
		handler, ok := f.handlers[model+"."+method]
		require.True(f.t, ok, "llamada inesperada a %s.%s", model, method)
		result = handler(args, kw)
	}

	json.NewEncoder(w).Encode(map[string]any{
		"jsonrpc": "2.0", "id": req.ID, "result": result,
	})
}

func testClient(srv *httptest.Server) *Client {
	return NewClient(Credentials{
		URL: srv.URL, Database: "prod", Username: "ops", Password: "secreto",
	})
}

func TestAuthenticate(t *testing.T) {
	_, srv := newFakeERP(t)
	c := testClient(srv)

	require.NoError(t, c.Authenticate(context.Background()))
	assert.True(t, c.Authenticated())
}

func TestAuthenticateRejected(t *testing.T) {
	_, srv := newFakeERP(t)
	c := testClient(srv)
	c.SetCredentials(Credentials{URL: srv.URL, Database: "prod", Username: "ops", Password: "mala"})

	err := c.Authenticate(context.Background())
	assert.ErrorIs(t, err, domain.ErrBadCredential)
	assert.False(t, c.Authenticated())
}

func TestAuthenticateMissingCredentials(t *testing.T) {
	c := NewClient(Credentials{})
	err := c.Authenticate(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestExecuteKwWithoutSession(t *testing.T) {
	_, srv := newFakeERP(t)
	c := testClient(srv)

	_, err := c.executeKw(context.Background(), "sale.order", "search_read", nil, nil)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestRPCError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":200,"message":"Odoo Server Error","data":{"message":"acceso denegado"}}}`))
	}))
	t.Cleanup(srv.Close)

	c := testClient(srv)
	_, err := c.call(context.Background(), "object", "execute_kw", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "acceso denegado")
}

func TestFetchSales(t *testing.T) {
	erp, srv := newFakeERP(t)

	erp.on("sale.order", "search_read", func(args []any, kw map[string]any) any {
		assert.Equal(t, "date_order desc", kw["order"])
		assert.Equal(t, float64(50), kw["limit"])
		return []map[string]any{{
			"id": 1, "name": "S00042", "partner_id": []any{12.0, "Klinik Nord GmbH"},
			"date_order": "2024-03-12 09:30:15", "amount_total": 1250.5,
			"order_line": []any{10.0, 11.0}, "invoice_ids": []any{90.0},
		}}
	})
	erp.on("sale.order.line", "read", func(args []any, kw map[string]any) any {
		return []map[string]any{
			{"id": 10, "order_id": []any{1.0, "S00042"}, "product_id": []any{31.0, "Skalpellgriff Nr. 4"},
				"name": "Skalpellgriff Nr. 4", "product_uom_qty": 25.0, "price_unit": 4.2},
			{"id": 11, "order_id": []any{1.0, "S00042"}, "product_id": []any{31.0, "Skalpellgriff Nr. 4"},
				"name": "Skalpellgriff Nr. 4", "product_uom_qty": 5.0, "price_unit": 4.2},
		}
	})
	erp.on("product.product", "read", func(args []any, kw map[string]any) any {
		// ambas líneas apuntan al mismo producto: una sola lectura, un solo id
		ids := args[0].([]any)
		require.Len(t, ids, 1)
		return []map[string]any{{
			"id": 31, "name": "Skalpellgriff Nr. 4", "default_code": "SG-400",
			"x_ce_mark": true, "x_user_manual": false, "x_udi": "04012345",
			"x_medical_device": true, "x_single_use": false, "x_single_patient": false,
		}}
	})
	erp.on("account.move", "read", func(args []any, kw map[string]any) any {
		return []map[string]any{{
			"id": 90, "name": "RG2024-0113", "invoice_date": "2024-03-05",
			"amount_total": 1250.5, "state": "posted",
		}}
	})

	c := testClient(srv)
	require.NoError(t, c.Authenticate(context.Background()))

	orders, err := NewFetcher(c, DefaultFieldMap()).FetchSales(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	o := orders[0]
	assert.Equal(t, "S00042", o.Number)
	assert.Equal(t, "Klinik Nord GmbH", o.PartnerName)
	require.Len(t, o.Lines, 2)
	assert.Equal(t, "SG-400", o.Lines[0].DefaultCode)
	assert.True(t, o.Lines[0].CE)
	assert.Equal(t, "25", o.Lines[0].Quantity.String())
	assert.Equal(t, "5", o.Lines[1].Quantity.String())
	require.Len(t, o.Invoices, 1)
	assert.Equal(t, "RG2024-0113", o.Invoices[0].Number)
	assert.Equal(t, "posted", o.Invoices[0].State)

	// una sola lectura de productos pese a ids repetidos
	reads := 0
	for _, call := range erp.calls {
		if call == "product.product.read" {
			reads++
		}
	}
	assert.Equal(t, 1, reads)
}

func TestFetchSalesAlternateSingleUseField(t *testing.T) {
	erp, srv := newFakeERP(t)

	erp.on("sale.order", "search_read", func(args []any, kw map[string]any) any {
		return []map[string]any{{
			"id": 1, "name": "S00042", "partner_id": []any{12.0, "Klinik Nord GmbH"},
			"date_order": "2024-03-12 09:30:15", "amount_total": 1250.5,
			"order_line": []any{10.0}, "invoice_ids": []any{},
		}}
	})
	erp.on("sale.order.line", "read", func(args []any, kw map[string]any) any {
		return []map[string]any{
			{"id": 10, "order_id": []any{1.0, "S00042"}, "product_id": []any{31.0, "Skalpellgriff Nr. 4"},
				"name": "Skalpellgriff Nr. 4", "product_uom_qty": 25.0, "price_unit": 4.2},
		}
	})
	erp.on("product.product", "read", func(args []any, kw map[string]any) any {
		// el esquema viejo solo tiene x_single_patient: pedir otra grafía
		// sería un Invalid field en un Odoo real
		fields := kw["fields"].([]any)
		assert.NotContains(t, fields, "x_single_use")
		assert.Contains(t, fields, "x_single_patient")
		return []map[string]any{{
			"id": 31, "name": "Skalpellgriff Nr. 4", "default_code": "SG-400",
			"x_ce_mark": true, "x_user_manual": false, "x_udi": "04012345",
			"x_medical_device": true, "x_single_patient": true,
		}}
	})

	c := testClient(srv)
	require.NoError(t, c.Authenticate(context.Background()))

	fields := DefaultFieldMap()
	fields.SingleUse = []string{"x_single_patient"}
	orders, err := NewFetcher(c, fields).FetchSales(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Lines, 1)
	assert.True(t, orders[0].Lines[0].SingleUse)
}

func TestFetchManufacturingOrders(t *testing.T) {
	erp, srv := newFakeERP(t)

	erp.on("mrp.production", "search_read", func(args []any, kw map[string]any) any {
		return []map[string]any{{
			"id": 5, "name": "MO/00021", "product_id": []any{31.0, "Skalpellgriff Nr. 4"},
			"product_qty": 100.0, "date_start": "2024-03-12 09:30:15",
			"lot_producing_id": []any{44.0, "L42"}, "move_raw_ids": []any{70.0},
		}}
	})
	erp.on("stock.move", "read", func(args []any, kw map[string]any) any {
		return []map[string]any{{
			"id": 70, "raw_material_production_id": []any{5.0, "MO/00021"},
			"product_id": []any{32.0, "Rohling Edelstahl"}, "product_uom_qty": 110.0,
		}}
	})
	erp.on("product.product", "read", func(args []any, kw map[string]any) any {
		return []map[string]any{
			{"id": 31, "name": "Skalpellgriff Nr. 4", "default_code": "SG-400",
				"x_udi": "04012345", "x_medical_device": true},
			{"id": 32, "name": "Rohling Edelstahl", "default_code": "RE-01"},
		}
	})

	c := testClient(srv)
	require.NoError(t, c.Authenticate(context.Background()))

	orders, err := NewFetcher(c, DefaultFieldMap()).FetchManufacturingOrders(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	mo := orders[0]
	assert.Equal(t, "MO/00021", mo.OrderNumber)
	assert.Equal(t, "Skalpellgriff Nr. 4", mo.Name)
	assert.Equal(t, "L42", mo.LotNumber)
	assert.Equal(t, "04012345", mo.UDI)
	assert.Equal(t, "100", mo.Quantity.String())
	require.Len(t, mo.Components, 1)
	assert.Equal(t, "RE-01", mo.Components[0].DefaultCode)
	assert.Equal(t, "110", mo.Components[0].Quantity.String())
}

func TestFetchSalesStageError(t *testing.T) {
	_, srv := newFakeERP(t)
	c := testClient(srv)
	require.NoError(t, c.Authenticate(context.Background()))

	// con el servidor caído la primera etapa falla y el error la nombra
	srv.Close()
	_, err := NewFetcher(c, DefaultFieldMap()).FetchSales(context.Background(), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pedidos de venta")
}
