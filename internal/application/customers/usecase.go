package customers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/eymenelneccar/ewf/internal/application/dto"
	"github.com/eymenelneccar/ewf/internal/domain"
	"github.com/eymenelneccar/ewf/internal/domain/entity"
	"github.com/eymenelneccar/ewf/internal/domain/repository"
	"github.com/eymenelneccar/ewf/pkg/textnorm"
)

// UseCase casos de uso de clientes: listado con cache, CRUD, historial de
// movimientos y estado de cuenta.
type UseCase struct {
	repo      repository.CustomerRepository
	txRepo    repository.TransactionRepository
	cache     ListCache // opcional; nil desactiva el cache
	statement StatementGenerator
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.CustomerRepository, txRepo repository.TransactionRepository, cache ListCache, statement StatementGenerator) *UseCase {
	return &UseCase{repo: repo, txRepo: txRepo, cache: cache, statement: statement}
}

// Search lista clientes filtrados por término (nombre, teléfono o email).
// Primera página con cache read-through: miss -> DB -> Set. El orden es el
// del store, la vista no reordena.
func (uc *UseCase) Search(ctx context.Context, term string, page dto.PageRequest) ([]*dto.CustomerResponse, error) {
	page.DefaultPage()
	norm := textnorm.Term(term)

	cacheable := uc.cache != nil && page.Offset == 0
	key := fmt.Sprintf("%s|%d", norm, page.Limit)
	if cacheable {
		if list, ok := uc.cache.Get(ctx, key); ok {
			return toResponses(list), nil
		}
	}

	list, err := uc.repo.Search(ctx, norm, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	if cacheable {
		uc.cache.Set(ctx, key, list)
	}
	return toResponses(list), nil
}

// GetByID devuelve un cliente o domain.ErrNotFound.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToCustomerResponse(c), nil
}

// Create crea un cliente nuevo (activo por defecto) e invalida el listado.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	c := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		Address:   in.Address,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return dto.ToCustomerResponse(c), nil
}

// Update actualiza los datos de contacto y el estado de un cliente.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	c.Name = in.Name
	c.Phone = in.Phone
	c.Email = in.Email
	c.Address = in.Address
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return dto.ToCustomerResponse(c), nil
}

// Delete elimina un cliente. Devuelve domain.ErrNotFound si ya no existe y
// domain.ErrHasTransactions si la DB rechaza el borrado por movimientos
// asociados. Solo invalida el cache cuando el borrado fue efectivo.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

// History lista los movimientos de cuenta de un cliente (modal de historial).
func (uc *UseCase) History(ctx context.Context, customerID string, page dto.PageRequest) ([]*dto.TransactionResponse, error) {
	page.DefaultPage()
	c, err := uc.repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	txs, err := uc.txRepo.ListByCustomer(ctx, customerID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, dto.ToTransactionResponse(tx))
	}
	return out, nil
}

// AddTransaction registra un cargo o abono en la cuenta del cliente.
// El monto debe ser positivo; el signo lo da el tipo de movimiento.
func (uc *UseCase) AddTransaction(ctx context.Context, customerID string, in dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	if in.Kind != entity.TransactionDebt && in.Kind != entity.TransactionPayment {
		return nil, domain.ErrInvalidInput
	}
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	tx := &entity.Transaction{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		Kind:       in.Kind,
		Amount:     in.Amount,
		Note:       in.Note,
		CreatedAt:  time.Now(),
	}
	if err := uc.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}
	// Los movimientos cambian la deuda que muestra el listado.
	uc.invalidate(ctx)
	return dto.ToTransactionResponse(tx), nil
}

// Statement genera el estado de cuenta del cliente en PDF.
func (uc *UseCase) Statement(ctx context.Context, customerID string) ([]byte, error) {
	if uc.statement == nil {
		return nil, fmt.Errorf("statement: generador no configurado")
	}
	c, err := uc.repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	txs, err := uc.txRepo.ListByCustomer(ctx, customerID, 500, 0)
	if err != nil {
		return nil, err
	}
	return uc.statement.GenerateStatement(ctx, c, txs)
}

func (uc *UseCase) invalidate(ctx context.Context) {
	if uc.cache != nil {
		uc.cache.Invalidate(ctx)
	}
}

func toResponses(list []*entity.Customer) []*dto.CustomerResponse {
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.ToCustomerResponse(c))
	}
	return out
}
