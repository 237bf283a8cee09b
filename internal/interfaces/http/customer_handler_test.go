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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eymenelneccar/ewf/internal/application/auth"
	"github.com/eymenelneccar/ewf/internal/application/customers"
	"github.com/eymenelneccar/ewf/internal/application/dto"
	"github.com/eymenelneccar/ewf/internal/domain"
	"github.com/eymenelneccar/ewf/internal/domain/entity"
	apphttp "github.com/eymenelneccar/ewf/internal/interfaces/http"
	pkgjwt "github.com/eymenelneccar/ewf/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "ewf-test"
	testExpMin    = 60
)

type stubCustomerRepo struct {
	byID      map[string]*entity.Customer
	list      []*entity.Customer
	deleteErr error
	lastTerm  string
}

func (r *stubCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.byID[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	return r.byID[id], nil
}

func (r *stubCustomerRepo) Search(_ context.Context, term string, _, _ int) ([]*entity.Customer, error) {
	r.lastTerm = term
	return r.list, nil
}

func (r *stubCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	if _, ok := r.byID[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) Delete(_ context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubTxRepo struct {
	list []*entity.Transaction
}

func (r *stubTxRepo) Create(_ context.Context, _ *entity.Transaction) error { return nil }

func (r *stubTxRepo) ListByCustomer(_ context.Context, _ string, _, _ int) ([]*entity.Transaction, error) {
	return r.list, nil
}

type stubUserRepo struct{}

func (stubUserRepo) Create(_ context.Context, _ *entity.User) error { return nil }
func (stubUserRepo) FindByEmail(_ context.Context, _ string) (*entity.User, error) {
	return nil, nil
}

// buildTestApp monta el router completo sobre repos en memoria.
func buildTestApp(repo *stubCustomerRepo) *fiber.App {
	app := fiber.New()
	uc := customers.NewUseCase(repo, &stubTxRepo{}, nil, nil)
	authUC := auth.NewUseCase(stubUserRepo{}, auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	})
	apphttp.Router(app, apphttp.RouterDeps{
		CustomerUC: uc,
		AuthUC:     authUC,
		JWTSecret:  testJWTSecret,
	})
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, method, path, authHeader string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth: rutas protegidas y punto de entrada de login
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomers_SinToken_Retorna401(t *testing.T) {
	app := buildTestApp(&stubCustomerRepo{byID: map[string]*entity.Customer{}})
	resp := doRequest(t, app, http.MethodGet, "/api/customers/", "", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", decodeError(t, resp).Code)
}

func TestLoginEntry_Retorna401SessionExpired(t *testing.T) {
	app := buildTestApp(&stubCustomerRepo{byID: map[string]*entity.Customer{}})
	resp := doRequest(t, app, http.MethodGet, "/api/login", "", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "SESSION_EXPIRED", decodeError(t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado
// ──────────────────────────────────────────────────────────────────────────────

func TestList_FiltraPorTerminoNormalizado(t *testing.T) {
	repo := &stubCustomerRepo{
		byID: map[string]*entity.Customer{},
		list: []*entity.Customer{
			{ID: "c1", Name: "Ali", TotalDebt: decimal.NullDecimal{Decimal: decimal.NewFromInt(5200), Valid: true}},
			{ID: "c3", Name: "Omar"},
		},
	}
	app := buildTestApp(repo)

	resp := doRequest(t, app, http.MethodGet, "/api/customers/?search=%20AL%C3%8D%20", tokenForRole(t, "cajero"), nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ali", repo.lastTerm, "el término llega en minúsculas, sin tildes y sin espacios")

	var out []json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 2)
	assert.Contains(t, string(out[0]), `"total_debt":"5200"`)
	assert.Contains(t, string(out[1]), `"total_debt":null`, "sin movimientos la deuda viaja como null")
}

// ──────────────────────────────────────────────────────────────────────────────
// Borrado: autorización y contrato de error
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_CajeroBloqueado(t *testing.T) {
	repo := &stubCustomerRepo{byID: map[string]*entity.Customer{"c1": {ID: "c1", Name: "Ali"}}}
	app := buildTestApp(repo)

	resp := doRequest(t, app, http.MethodDelete, "/api/customers/c1", tokenForRole(t, "cajero"), nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decodeError(t, resp).Code)
	_, stillThere := repo.byID["c1"]
	assert.True(t, stillThere, "un 403 no debe borrar nada")
}

func TestDelete_AdminExitoso(t *testing.T) {
	repo := &stubCustomerRepo{byID: map[string]*entity.Customer{"c1": {ID: "c1", Name: "Ali"}}}
	app := buildTestApp(repo)

	resp := doRequest(t, app, http.MethodDelete, "/api/customers/c1", tokenForRole(t, "admin"), nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, repo.byID)
}

func TestDelete_NoExiste_Retorna404(t *testing.T) {
	app := buildTestApp(&stubCustomerRepo{byID: map[string]*entity.Customer{}})

	resp := doRequest(t, app, http.MethodDelete, "/api/customers/nope", tokenForRole(t, "admin"), nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Code)
}

func TestDelete_ConMovimientos_Retorna409(t *testing.T) {
	repo := &stubCustomerRepo{
		byID:      map[string]*entity.Customer{"c1": {ID: "c1", Name: "Ali"}},
		deleteErr: domain.ErrHasTransactions,
	}
	app := buildTestApp(repo)

	resp := doRequest(t, app, http.MethodDelete, "/api/customers/c1", tokenForRole(t, "admin"), nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decodeError(t, resp)
	assert.Equal(t, "DELETE_FAILED", body.Code)
	// Prefijo que el back-office usa como fallback de clasificación.
	assert.Contains(t, body.Message, "failed to delete customer")
}

// ──────────────────────────────────────────────────────────────────────────────
// CRUD restante
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_Retorna201(t *testing.T) {
	repo := &stubCustomerRepo{byID: map[string]*entity.Customer{}}
	app := buildTestApp(repo)

	resp := doRequest(t, app, http.MethodPost, "/api/customers/", tokenForRole(t, "cajero"),
		dto.CreateCustomerRequest{Name: "Sara", Phone: "555-0102"})
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.CustomerResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotEmpty(t, out.ID)
	assert.True(t, out.IsActive)
	assert.Len(t, repo.byID, 1)
}

func TestCreate_SinNombre_Retorna400(t *testing.T) {
	app := buildTestApp(&stubCustomerRepo{byID: map[string]*entity.Customer{}})

	resp := doRequest(t, app, http.MethodPost, "/api/customers/", tokenForRole(t, "cajero"),
		dto.CreateCustomerRequest{Phone: "555"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeError(t, resp).Code)
}

func TestUpdate_NoExiste_Retorna404(t *testing.T) {
	app := buildTestApp(&stubCustomerRepo{byID: map[string]*entity.Customer{}})

	resp := doRequest(t, app, http.MethodPut, "/api/customers/nope", tokenForRole(t, "cajero"),
		dto.UpdateCustomerRequest{Name: "X"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAddTransaction_KindInvalido_Retorna400(t *testing.T) {
	repo := &stubCustomerRepo{byID: map[string]*entity.Customer{"c1": {ID: "c1", Name: "Ali"}}}
	app := buildTestApp(repo)

	resp := doRequest(t, app, http.MethodPost, "/api/customers/c1/transactions", tokenForRole(t, "cajero"),
		dto.CreateTransactionRequest{Kind: "bogus", Amount: decimal.NewFromInt(10)})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeError(t, resp).Code)
}

func TestHistory_ListaMovimientos(t *testing.T) {
	repo := &stubCustomerRepo{byID: map[string]*entity.Customer{"c1": {ID: "c1", Name: "Ali"}}}
	app := buildTestApp(repo)

	resp := doRequest(t, app, http.MethodGet, "/api/customers/c1/transactions", tokenForRole(t, "cajero"), nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out []dto.TransactionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Empty(t, out)
}

// ──────────────────────────────────────────────────────────────────────────────
// JWT pkg — integridad de generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "admin", testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, role, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)
	assert.Equal(t, "admin", role)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "admin", testIssuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
