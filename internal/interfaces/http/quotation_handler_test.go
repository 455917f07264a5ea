package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizaciones-api/internal/application/auth"
	"github.com/jhoicas/Cotizaciones-api/internal/application/dto"
	appquotation "github.com/jhoicas/Cotizaciones-api/internal/application/quotation"
	"github.com/jhoicas/Cotizaciones-api/internal/application/usecase"
	"github.com/jhoicas/Cotizaciones-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Cotizaciones-api/internal/interfaces/http"
)

// fakePDF devuelve un PDF mínimo con el número de la cotización.
type fakePDF struct{}

func (fakePDF) GenerateQuotationPDF(_ context.Context, doc *appquotation.Document) ([]byte, error) {
	return []byte("%PDF-1.4 " + doc.Quotation.Number), nil
}

type apiClient struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	companies := memory.NewCompanyRepo()
	users := memory.NewUserRepo()
	clients := memory.NewClientRepo()
	products := memory.NewProductRepo()
	quotations := memory.NewQuotationRepo()
	settingsUC := usecase.NewSettingsUseCase(memory.NewSettingsRepo(), usecase.SettingsDefaults{})

	quotationUC := appquotation.NewUseCase(
		memory.NewTxRunner(quotations, memory.NewAtomicSequencer()),
		quotations, clients, products, settingsUC,
		appquotation.Config{}, zerolog.Nop(),
	)
	app := fiber.New()
	app.Use(apphttp.RequestLogger(zerolog.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      auth.NewAuthUseCase(users, companies, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}),
		CompanyUC:   usecase.NewCompanyUseCase(companies),
		UserUC:      usecase.NewUserUseCase(users),
		ClientUC:    usecase.NewClientUseCase(clients),
		ProductUC:   usecase.NewProductUseCase(products),
		SettingsUC:  settingsUC,
		QuotationUC: quotationUC,
		PDFUC:       appquotation.NewPDFUseCase(quotations, companies, clients, fakePDF{}),
		JWTSecret:   testJWTSecret,
	})
	return &apiClient{t: t, app: app}
}

func (a *apiClient) do(method, path string, body any) (*http.Response, []byte) {
	a.t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return resp, out
}

func (a *apiClient) mustJSON(method, path string, body any, wantStatus int, out any) {
	a.t.Helper()
	resp, raw := a.do(method, path, body)
	require.Equal(a.t, wantStatus, resp.StatusCode, string(raw))
	if out != nil {
		require.NoError(a.t, json.Unmarshal(raw, out))
	}
}

// bootstrap crea empresa, usuario con el rol dado, inicia sesión, un cliente y un producto.
func (a *apiClient) bootstrap(role string) (clientID, productID string) {
	var company dto.CompanyResponse
	a.mustJSON(http.MethodPost, "/api/companies", map[string]any{"name": "Dulce Hogar", "tax_id": "900123456"}, http.StatusCreated, &company)

	a.mustJSON(http.MethodPost, "/api/auth/register", map[string]any{
		"email": "ana@dulce.co", "password": "secreto123", "company_id": company.ID, "role": role,
	}, http.StatusCreated, nil)

	var login dto.LoginResponse
	a.mustJSON(http.MethodPost, "/api/auth/login", map[string]any{"email": "ana@dulce.co", "password": "secreto123"}, http.StatusOK, &login)
	a.token = login.Token

	var client dto.ClientResponse
	a.mustJSON(http.MethodPost, "/api/clients", map[string]any{"name": "Eventos Andinos"}, http.StatusCreated, &client)

	var product dto.ProductResponse
	a.mustJSON(http.MethodPost, "/api/products", map[string]any{"sku": "SERV-1", "name": "Servicio", "price": "1000"}, http.StatusCreated, &product)
	return client.ID, product.ID
}

func TestQuotationFlow_CreateIgnoresClientTotals(t *testing.T) {
	api := newAPI(t)
	clientID, productID := api.bootstrap("admin")

	var q dto.QuotationResponse
	api.mustJSON(http.MethodPost, "/api/quotations", map[string]any{
		"client_id": clientID,
		"items":     []map[string]any{{"product_id": productID, "quantity": "1", "line_total": "5"}},
		"discount":  map[string]any{"kind": "percentage", "value": "10"},
		"tax_rate":  "5",
		"number":    "HACK-1",
		"totals":    map[string]any{"grand_total": "1"},
	}, http.StatusCreated, &q)

	assert.Regexp(t, `^QUO-\d{6}-0001$`, q.Number)
	assert.Equal(t, "draft", q.Status)
	assert.Equal(t, "1000.00", q.Totals.Subtotal)
	assert.Equal(t, "100.00", q.Totals.DiscountAmount)
	assert.Equal(t, "900.00", q.Totals.TaxableBase)
	assert.Equal(t, "45.00", q.Totals.TaxAmount)
	assert.Equal(t, "945.00", q.Totals.GrandTotal)
	require.Len(t, q.Items, 1)
	assert.Equal(t, "1000.00", q.Items[0].LineTotal)

	var second dto.QuotationResponse
	api.mustJSON(http.MethodPost, "/api/quotations", map[string]any{"client_id": clientID}, http.StatusCreated, &second)
	assert.Regexp(t, `^QUO-\d{6}-0002$`, second.Number)
	assert.Equal(t, "0.00", second.Totals.GrandTotal)
}

func TestQuotationFlow_StatusGateAndDelete(t *testing.T) {
	api := newAPI(t)
	clientID, productID := api.bootstrap("vendedor")

	var q dto.QuotationResponse
	api.mustJSON(http.MethodPost, "/api/quotations", map[string]any{
		"client_id": clientID,
		"items":     []map[string]any{{"product_id": productID, "quantity": "2"}},
	}, http.StatusCreated, &q)

	api.mustJSON(http.MethodPatch, "/api/quotations/"+q.ID+"/status", map[string]any{"status": "accepted"}, http.StatusOK, nil)

	resp, raw := api.do(http.MethodPut, "/api/quotations/"+q.ID, map[string]any{"tax_rate": "19"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(raw), "INVALID_STATE")

	var got dto.QuotationResponse
	api.mustJSON(http.MethodGet, "/api/quotations/"+q.ID, nil, http.StatusOK, &got)
	assert.Equal(t, "2000.00", got.Totals.GrandTotal)
	assert.Equal(t, q.Number, got.Number)

	resp, _ = api.do(http.MethodDelete, "/api/quotations/"+q.ID, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, raw = api.do(http.MethodPatch, "/api/quotations/"+q.ID+"/status", map[string]any{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "VALIDATION")

	api.mustJSON(http.MethodPatch, "/api/quotations/"+q.ID+"/status", map[string]any{"status": "draft"}, http.StatusOK, nil)
	resp, _ = api.do(http.MethodDelete, "/api/quotations/"+q.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = api.do(http.MethodGet, "/api/quotations/"+q.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestQuotationFlow_ValidationErrors(t *testing.T) {
	api := newAPI(t)
	clientID, productID := api.bootstrap("vendedor")

	cases := []struct {
		name string
		body map[string]any
		code int
	}{
		{"sin cliente", map[string]any{}, http.StatusBadRequest},
		{"cantidad cero", map[string]any{
			"client_id": clientID,
			"items":     []map[string]any{{"product_id": productID, "quantity": "0"}},
		}, http.StatusBadRequest},
		{"impuesto fuera de rango", map[string]any{"client_id": clientID, "tax_rate": "101"}, http.StatusBadRequest},
		{"catering sin evento", map[string]any{"client_id": clientID, "kind": "catering"}, http.StatusBadRequest},
		{"catering sin invitados", map[string]any{
			"client_id": clientID, "kind": "catering",
			"event": map[string]any{"event_date": "2025-06-01", "guest_count": 0},
		}, http.StatusBadRequest},
		{"precisión excedida", map[string]any{
			"client_id": clientID,
			"items":     []map[string]any{{"product_id": productID, "quantity": "1", "unit_price": "0.00000000001"}},
		}, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, raw := api.do(http.MethodPost, "/api/quotations", tc.body)
			assert.Equal(t, tc.code, resp.StatusCode, string(raw))
		})
	}
}

func TestQuotationFlow_CateringDuplicateAndPDF(t *testing.T) {
	api := newAPI(t)
	clientID, productID := api.bootstrap("admin")

	var q dto.QuotationResponse
	api.mustJSON(http.MethodPost, "/api/quotations", map[string]any{
		"kind":      "catering",
		"client_id": clientID,
		"items":     []map[string]any{{"product_id": productID, "quantity": "3"}},
		"event":     map[string]any{"event_date": "2025-06-01", "guest_count": 40, "venue": "Salón Real"},
	}, http.StatusCreated, &q)
	assert.Regexp(t, `^CAT-\d{6}-0001$`, q.Number)
	require.NotNil(t, q.Event)
	assert.Equal(t, "75.00", q.Event.PricePerGuest)

	var dup dto.QuotationResponse
	api.mustJSON(http.MethodPost, "/api/quotations/"+q.ID+"/duplicate", nil, http.StatusCreated, &dup)
	assert.NotEqual(t, q.ID, dup.ID)
	assert.Regexp(t, `^CAT-\d{6}-0002$`, dup.Number)
	assert.Equal(t, q.Totals, dup.Totals)

	resp, raw := api.do(http.MethodGet, "/api/quotations/"+q.ID+"/pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "cotizacion_"+q.Number+".pdf")
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	var list dto.QuotationListResponse
	api.mustJSON(http.MethodGet, "/api/quotations?kind=catering&limit=10", nil, http.StatusOK, &list)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 2, list.Page.Total)
}

func TestSettingsAndExpire_RequireAdmin(t *testing.T) {
	api := newAPI(t)
	api.bootstrap("vendedor")

	resp, _ := api.do(http.MethodPut, "/api/settings", map[string]any{"prefix": "COT"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = api.do(http.MethodPost, "/api/quotations/expire", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var s dto.SettingsResponse
	api.mustJSON(http.MethodGet, "/api/settings", nil, http.StatusOK, &s)
	assert.Equal(t, "QUO", s.Prefix)
	assert.Equal(t, 30, s.ValidityDays)
}

func TestSettings_PrefixAppliesToNewQuotations(t *testing.T) {
	api := newAPI(t)
	clientID, _ := api.bootstrap("admin")

	var s dto.SettingsResponse
	api.mustJSON(http.MethodPut, "/api/settings", map[string]any{"prefix": "cot", "validity_days": 15}, http.StatusOK, &s)
	assert.Equal(t, "COT", s.Prefix)

	resp, _ := api.do(http.MethodPut, "/api/settings", map[string]any{"prefix": "CO-T"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = api.do(http.MethodPut, "/api/settings", map[string]any{"catering_prefix": "COT"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "catering no puede reutilizar el prefijo estándar")

	var q dto.QuotationResponse
	api.mustJSON(http.MethodPost, "/api/quotations", map[string]any{"client_id": clientID}, http.StatusCreated, &q)
	assert.Regexp(t, `^COT-\d{6}-0001$`, q.Number)

	var out dto.ExpireQuotationsResponse
	api.mustJSON(http.MethodPost, "/api/quotations/expire", nil, http.StatusOK, &out)
	assert.Equal(t, 0, out.Expired)
}

func TestUsers_MeAndList(t *testing.T) {
	api := newAPI(t)
	api.bootstrap("admin")

	var me dto.UserResponse
	api.mustJSON(http.MethodGet, "/api/users/me", nil, http.StatusOK, &me)
	assert.Equal(t, "ana@dulce.co", me.Email)
	assert.Equal(t, "admin", me.Role)

	var list []dto.UserResponse
	api.mustJSON(http.MethodGet, "/api/users", nil, http.StatusOK, &list)
	assert.Len(t, list, 1)
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	api := newAPI(t)
	resp, _ := api.do(http.MethodGet, "/api/quotations", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
