package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/sangkips/ledgerbook/internal/application/service"
	"github.com/sangkips/ledgerbook/internal/config"
	"github.com/sangkips/ledgerbook/internal/domain/enum"
	"github.com/sangkips/ledgerbook/internal/domain/ledger"
	"github.com/sangkips/ledgerbook/internal/infrastructure/database"
	"github.com/sangkips/ledgerbook/internal/infrastructure/remote"
	"github.com/sangkips/ledgerbook/internal/infrastructure/repository"
	"github.com/sangkips/ledgerbook/internal/presentation/http/handler"
	"github.com/sangkips/ledgerbook/pkg/utils"
)

// fakeLedgerAPI is a minimal stand-in for the remote ledger API
type fakeLedgerAPI struct {
	mu           sync.Mutex
	balance      decimal.Decimal
	verified     bool
	created      int
	adjustBodies []map[string]any
}

func (f *fakeLedgerAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	write := func(status int, body any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}

	if r.URL.Path == "/auth/login" {
		if !f.verified {
			write(http.StatusForbidden, map[string]any{"success": false, "message": "Email not verified", "code": "EMAIL_NOT_VERIFIED"})
			return
		}
		write(http.StatusOK, map[string]any{"success": true, "data": map[string]any{
			"token": "tok-1",
			"user":  map[string]any{"id": "u-1", "email": "owner@example.com", "email_verified": true},
		}})
		return
	}

	if r.Header.Get("Authorization") != "Bearer tok-1" {
		write(http.StatusUnauthorized, map[string]any{"success": false, "message": "Unauthenticated"})
		return
	}

	customer := func() map[string]any {
		return map[string]any{"id": "c-1", "name": "Acme", "phone": "0712345678", "total_balance": f.balance.String()}
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/customers/c-1":
		write(http.StatusOK, map[string]any{"success": true, "data": customer()})
	case r.Method == http.MethodPost && r.URL.Path == "/customers/c-1/transactions":
		var body struct {
			TotalPrice decimal.Decimal `json:"total_price"`
			AmountPaid decimal.Decimal `json:"amount_paid"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.created++
		f.balance = f.balance.Add(body.TotalPrice.Sub(body.AmountPaid))
		write(http.StatusCreated, map[string]any{"success": true, "data": map[string]any{"id": "t-1", "customer_id": "c-1"}})
	case r.Method == http.MethodPut && r.URL.Path == "/customers/c-1/balance":
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.adjustBodies = append(f.adjustBodies, body)
		f.balance = decimal.RequireFromString(body["balance"].(string))
		write(http.StatusOK, map[string]any{"success": true})
	default:
		write(http.StatusNotFound, map[string]any{"success": false, "message": "Not found"})
	}
}

func (f *fakeLedgerAPI) setVerified(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verified = v
}

func (f *fakeLedgerAPI) createdCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.created
}

func (f *fakeLedgerAPI) adjustments() []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]any(nil), f.adjustBodies...)
}

type gateway struct {
	router *gin.Engine
	api    *fakeLedgerAPI
}

func newGateway(t *testing.T) *gateway {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zaptest.NewLogger(t)

	api := &fakeLedgerAPI{balance: decimal.NewFromInt(100), verified: true}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		App:      config.AppConfig{Name: "ledgerbook-test"},
		Database: config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "gw.db")},
		Remote:   config.RemoteConfig{BaseURL: srv.URL},
	}
	db, err := database.Open(&cfg.Database, false, log)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db, log))

	sessionRepo := repository.NewSessionRepository(db)
	client := remote.NewClient(&cfg.Remote, sessionRepo, nil, log)
	customers := remote.NewCustomerGateway(client)
	transactions := remote.NewTransactionGateway(client)

	sessions := service.NewSessionService(remote.NewAuthGateway(client), sessionRepo, utils.NewTokenInspector(), log)
	prefs := service.NewPreferencesService(repository.NewPreferencesRepository(db), enum.ThemeSystem, decimal.NewFromInt(10))
	ledgerService := service.NewLedgerService(ledger.NewPendingStore(decimal.NewFromInt(10), nil), transactions, customers, prefs, log)

	router := Setup(&Handlers{
		Auth:        handler.NewAuthHandler(sessions, ledgerService),
		Customer:    handler.NewCustomerHandler(service.NewCustomerService(customers, transactions)),
		Transaction: handler.NewTransactionHandler(ledgerService, service.NewBalanceService(customers, log)),
		Pending:     handler.NewPendingHandler(ledgerService),
		Preferences: handler.NewPreferencesHandler(prefs),
	}, &Deps{
		Cfg:             cfg,
		Log:             log,
		Sessions:        sessions,
		IdempotencyRepo: repository.NewIdempotencyRepository(db),
	})

	return &gateway{router: router, api: api}
}

type result struct {
	Code    int
	Header  http.Header
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
	Reason string `json:"reason"`
}

func (g *gateway) do(t *testing.T, method, path string, body any, headers ...string) *result {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	g.router.ServeHTTP(w, req)

	res := &result{Code: w.Code, Header: w.Header()}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), res), w.Body.String())
	return res
}

func (g *gateway) login(t *testing.T) {
	t.Helper()
	res := g.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "owner@example.com", "password": "secret"})
	require.Equal(t, http.StatusOK, res.Code, res.Message)
}

func TestHealth(t *testing.T) {
	g := newGateway(t)

	w := httptest.NewRecorder()
	g.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ledgerbook-test")
}

func TestProtectedRoutesNeedSession(t *testing.T) {
	g := newGateway(t)

	res := g.do(t, http.MethodGet, "/api/v1/pending", nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, "no_session", res.Reason)
}

func TestLoginUnverifiedRoutesToVerification(t *testing.T) {
	g := newGateway(t)
	g.api.setVerified(false)

	res := g.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "owner@example.com", "password": "secret"})
	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.Equal(t, "email_not_verified", res.Reason)
	assert.JSONEq(t, `{"verification_required":true}`, string(res.Data))
}

func TestLoginBindingErrorsUseJSONNames(t *testing.T) {
	g := newGateway(t)

	res := g.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "nope"})
	require.Equal(t, http.StatusUnprocessableEntity, res.Code)

	fields := []string{}
	for _, e := range res.Errors {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"email", "password"}, fields)
}

func TestPendingAndConfirmFlow(t *testing.T) {
	g := newGateway(t)
	g.login(t)

	res := g.do(t, http.MethodPost, "/api/v1/pending/items", map[string]any{"name": "Rice", "price": "10", "quantity": 2})
	require.Equal(t, http.StatusCreated, res.Code, res.Message)
	res = g.do(t, http.MethodPost, "/api/v1/pending/items", map[string]any{"name": "Beans", "price": "5", "quantity": 3})
	require.Equal(t, http.StatusCreated, res.Code)

	res = g.do(t, http.MethodPost, "/api/v1/pending/items", map[string]any{"name": "Bad", "price": "0", "quantity": 1})
	require.Equal(t, http.StatusUnprocessableEntity, res.Code)
	assert.Equal(t, "price", res.Errors[0].Field)

	res = g.do(t, http.MethodGet, "/api/v1/pending", nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, string(res.Data), `"totals":{"gross":"35","tax":"3.5","total":"38.5"}`)

	res = g.do(t, http.MethodPost, "/api/v1/customers/c-1/transactions", map[string]any{"amount_paid": "40"})
	require.Equal(t, http.StatusUnprocessableEntity, res.Code)
	assert.Equal(t, "amount_paid", res.Errors[0].Field)
	assert.Equal(t, 0, g.api.createdCount())

	res = g.do(t, http.MethodPost, "/api/v1/customers/c-1/transactions", map[string]any{"amount_paid": "38.5"}, "Idempotency-Key", "confirm-1")
	require.Equal(t, http.StatusCreated, res.Code, res.Message)
	assert.Contains(t, string(res.Data), `"total_balance":"100"`)
	assert.Equal(t, 1, g.api.createdCount())

	replay := g.do(t, http.MethodPost, "/api/v1/customers/c-1/transactions", map[string]any{"amount_paid": "38.5"}, "Idempotency-Key", "confirm-1")
	assert.Equal(t, http.StatusCreated, replay.Code)
	assert.Equal(t, "true", replay.Header.Get("X-Idempotency-Replayed"))
	assert.Equal(t, 1, g.api.createdCount(), "a replay does not submit again")

	res = g.do(t, http.MethodGet, "/api/v1/pending", nil)
	assert.Contains(t, string(res.Data), `"items":[]`)
	assert.Contains(t, string(res.Data), `"tax_percentage":"10"`)
}

func TestPendingUpdateUnknownItemIsNoop(t *testing.T) {
	g := newGateway(t)
	g.login(t)

	res := g.do(t, http.MethodPut, "/api/v1/pending/items/6f1c1c34-6a43-4d7e-9c0e-3d2a8c1b2f10", map[string]any{"name": "X", "price": "1", "quantity": 1})
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, string(res.Data), `"items":[]`)

	res = g.do(t, http.MethodDelete, "/api/v1/pending/items/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestPendingDetailsPersistTax(t *testing.T) {
	g := newGateway(t)
	g.login(t)

	res := g.do(t, http.MethodPut, "/api/v1/pending", map[string]any{"date": "2026-04-02", "tax_percentage": "16"})
	require.Equal(t, http.StatusOK, res.Code, res.Message)
	assert.Contains(t, string(res.Data), `"tax_percentage":"16"`)

	res = g.do(t, http.MethodGet, "/api/v1/preferences", nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, string(res.Data), `"tax_percentage":"16"`)
}

func TestAdjustBalance(t *testing.T) {
	g := newGateway(t)
	g.login(t)

	res := g.do(t, http.MethodPost, "/api/v1/customers/c-1/balance", map[string]any{"mode": "overpaying", "amount": "99.9999"})
	require.Equal(t, http.StatusUnprocessableEntity, res.Code)
	assert.Empty(t, g.api.adjustments())

	res = g.do(t, http.MethodPost, "/api/v1/customers/c-1/balance", map[string]any{"mode": "balance-remaining", "amount": "40"})
	require.Equal(t, http.StatusOK, res.Code, res.Message)
	adjustments := g.api.adjustments()
	require.Len(t, adjustments, 1)
	assert.Equal(t, "60", adjustments[0]["balance"])
	assert.Contains(t, string(res.Data), `"total_balance":"60"`)

	res = g.do(t, http.MethodPost, "/api/v1/customers/c-1/balance", map[string]any{"amount": "1"})
	assert.Equal(t, http.StatusUnprocessableEntity, res.Code, "mode is required")
}

func TestAdjustBalanceRetryRunsOnce(t *testing.T) {
	g := newGateway(t)
	g.login(t)

	body := map[string]any{"mode": "balance-remaining", "amount": "40"}
	first := g.do(t, http.MethodPost, "/api/v1/customers/c-1/balance", body, "Idempotency-Key", "adjust-1")
	require.Equal(t, http.StatusOK, first.Code, first.Message)

	retry := g.do(t, http.MethodPost, "/api/v1/customers/c-1/balance", body, "Idempotency-Key", "adjust-1")
	require.Equal(t, http.StatusOK, retry.Code)
	assert.Equal(t, "true", retry.Header.Get("X-Idempotency-Replayed"))
	assert.Contains(t, string(retry.Data), `"total_balance":"60"`)
	assert.Len(t, g.api.adjustments(), 1)
}

func TestLogoutClearsSessionAndPending(t *testing.T) {
	g := newGateway(t)
	g.login(t)

	res := g.do(t, http.MethodPost, "/api/v1/pending/items", map[string]any{"name": "Rice", "price": "10", "quantity": 1})
	require.Equal(t, http.StatusCreated, res.Code)

	res = g.do(t, http.MethodPost, "/api/v1/auth/logout", nil)
	require.Equal(t, http.StatusOK, res.Code)

	res = g.do(t, http.MethodGet, "/api/v1/session", nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)

	g.login(t)
	res = g.do(t, http.MethodGet, "/api/v1/pending", nil)
	assert.Contains(t, string(res.Data), `"items":[]`)
}
