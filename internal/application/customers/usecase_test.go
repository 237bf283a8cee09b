package customers_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eymenelneccar/ewf/internal/application/customers"
	"github.com/eymenelneccar/ewf/internal/application/dto"
	"github.com/eymenelneccar/ewf/internal/domain"
	"github.com/eymenelneccar/ewf/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de repos y cache
// ──────────────────────────────────────────────────────────────────────────────

type fakeCustomerRepo struct {
	byID        map[string]*entity.Customer
	searchList  []*entity.Customer
	searchCalls int
	deleteErr   error
	deleted     []string
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{byID: map[string]*entity.Customer{}}
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.byID[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	return r.byID[id], nil
}

func (r *fakeCustomerRepo) Search(_ context.Context, _ string, _, _ int) ([]*entity.Customer, error) {
	r.searchCalls++
	return r.searchList, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	if _, ok := r.byID[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.deleted = append(r.deleted, id)
	delete(r.byID, id)
	return nil
}

type fakeTxRepo struct {
	created []*entity.Transaction
	list    []*entity.Transaction
}

func (r *fakeTxRepo) Create(_ context.Context, tx *entity.Transaction) error {
	r.created = append(r.created, tx)
	return nil
}

func (r *fakeTxRepo) ListByCustomer(_ context.Context, _ string, _, _ int) ([]*entity.Transaction, error) {
	return r.list, nil
}

type recordingCache struct {
	entries     map[string][]*entity.Customer
	invalidates int
}

func newRecordingCache() *recordingCache {
	return &recordingCache{entries: map[string][]*entity.Customer{}}
}

func (c *recordingCache) Get(_ context.Context, key string) ([]*entity.Customer, bool) {
	list, ok := c.entries[key]
	return list, ok
}

func (c *recordingCache) Set(_ context.Context, key string, list []*entity.Customer) {
	c.entries[key] = list
}

func (c *recordingCache) Invalidate(_ context.Context) {
	c.entries = map[string][]*entity.Customer{}
	c.invalidates++
}

func build() (*customers.UseCase, *fakeCustomerRepo, *fakeTxRepo, *recordingCache) {
	repo := newFakeCustomerRepo()
	txRepo := &fakeTxRepo{}
	cache := newRecordingCache()
	return customers.NewUseCase(repo, txRepo, cache, nil), repo, txRepo, cache
}

// ──────────────────────────────────────────────────────────────────────────────
// Search: read-through y normalización de la clave
// ──────────────────────────────────────────────────────────────────────────────

func TestSearch_CacheReadThrough(t *testing.T) {
	uc, repo, _, _ := build()
	repo.searchList = []*entity.Customer{{ID: "c1", Name: "Ali"}}
	ctx := context.Background()

	first, err := uc.Search(ctx, "ali", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, repo.searchCalls)

	// Mismo término (con distinta capitalización y espacios): hit de cache.
	second, err := uc.Search(ctx, "  ALI ", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, 1, repo.searchCalls, "el segundo listado sale del cache")
}

func TestSearch_OffsetNoCachea(t *testing.T) {
	uc, repo, _, cache := build()
	ctx := context.Background()

	_, err := uc.Search(ctx, "", dto.PageRequest{Offset: 50})
	require.NoError(t, err)
	assert.Empty(t, cache.entries)
	assert.Equal(t, 1, repo.searchCalls)
}

// ──────────────────────────────────────────────────────────────────────────────
// Mutaciones: invalidación del listado
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_InvalidaListado(t *testing.T) {
	uc, _, _, cache := build()

	out, err := uc.Create(context.Background(), dto.CreateCustomerRequest{Name: "Ali"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.True(t, out.IsActive, "un cliente nuevo nace activo")
	assert.Equal(t, 1, cache.invalidates)
}

func TestCreate_NombreRequerido(t *testing.T) {
	uc, _, _, cache := build()

	_, err := uc.Create(context.Background(), dto.CreateCustomerRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, cache.invalidates)
}

func TestDelete_InvalidaSoloEnExito(t *testing.T) {
	uc, repo, _, cache := build()
	repo.byID["c1"] = &entity.Customer{ID: "c1", Name: "Ali"}
	ctx := context.Background()

	require.NoError(t, uc.Delete(ctx, "c1"))
	assert.Equal(t, []string{"c1"}, repo.deleted)
	assert.Equal(t, 1, cache.invalidates)

	// El fallo se propaga sin tocar el cache.
	repo.deleteErr = domain.ErrNotFound
	err := uc.Delete(ctx, "c2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, cache.invalidates)
}

func TestUpdate_NoExiste(t *testing.T) {
	uc, _, _, _ := build()

	_, err := uc.Update(context.Background(), "nope", dto.UpdateCustomerRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos de cuenta
// ──────────────────────────────────────────────────────────────────────────────

func TestAddTransaction_Validaciones(t *testing.T) {
	uc, repo, _, _ := build()
	repo.byID["c1"] = &entity.Customer{ID: "c1", Name: "Ali"}
	ctx := context.Background()

	_, err := uc.AddTransaction(ctx, "c1", dto.CreateTransactionRequest{
		Kind: "bogus", Amount: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AddTransaction(ctx, "c1", dto.CreateTransactionRequest{
		Kind: entity.TransactionDebt, Amount: decimal.NewFromInt(-5),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AddTransaction(ctx, "nope", dto.CreateTransactionRequest{
		Kind: entity.TransactionDebt, Amount: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddTransaction_InvalidaListado(t *testing.T) {
	uc, repo, txRepo, cache := build()
	repo.byID["c1"] = &entity.Customer{ID: "c1", Name: "Ali"}

	out, err := uc.AddTransaction(context.Background(), "c1", dto.CreateTransactionRequest{
		Kind: entity.TransactionDebt, Amount: decimal.NewFromInt(250), Note: "venta",
	})
	require.NoError(t, err)
	assert.Equal(t, "c1", out.CustomerID)
	require.Len(t, txRepo.created, 1)
	// La deuda que muestra el listado cambió: el cache queda invalidado.
	assert.Equal(t, 1, cache.invalidates)
}

// ──────────────────────────────────────────────────────────────────────────────
// DTO de salida
// ──────────────────────────────────────────────────────────────────────────────

func TestGetByID_TotalDebt(t *testing.T) {
	uc, repo, _, _ := build()
	repo.byID["c1"] = &entity.Customer{
		ID: "c1", Name: "Ali",
		TotalDebt: decimal.NullDecimal{Decimal: decimal.NewFromInt(5200), Valid: true},
	}
	repo.byID["c3"] = &entity.Customer{ID: "c3", Name: "Omar"}

	withDebt, err := uc.GetByID(context.Background(), "c1")
	require.NoError(t, err)
	require.NotNil(t, withDebt.TotalDebt)
	assert.Equal(t, "5200", withDebt.TotalDebt.String())

	noDebt, err := uc.GetByID(context.Background(), "c3")
	require.NoError(t, err)
	assert.Nil(t, noDebt.TotalDebt, "sin movimientos se serializa null")

	_, err = uc.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
