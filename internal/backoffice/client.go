// Package backoffice implementa el núcleo de la pantalla de clientes:
// el cliente HTTP del store, el cache de consultas del lado del cliente y
// el controlador de la vista de listado (máquina de estados de borrado,
// clasificación de deuda, estados vacíos).
package backoffice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/eymenelneccar/ewf/internal/application/dto"
	"github.com/eymenelneccar/ewf/internal/domain/debt"
	"github.com/eymenelneccar/ewf/internal/domain/entity"
)

// LoginPath es el punto de entrada de login al que se redirige cuando la
// sesión expira.
const LoginPath = "/api/login"

// ErrorKind clasifica un fallo del store para decidir qué notificación
// mostrar. La taxonomía es {Unauthorized, NotFound, Generic}.
type ErrorKind int

const (
	KindGeneric ErrorKind = iota
	KindUnauthorized
	KindNotFound
)

// StoreError es un fallo del store con clasificación estructurada.
// Kind se deriva del Code del cuerpo de error o del status HTTP; el texto
// queda disponible para el fallback por coincidencia de substring.
type StoreError struct {
	Kind   ErrorKind
	Status int
	Code   string
	Body   string
}

func (e *StoreError) Error() string {
	if e.Body != "" {
		return e.Body
	}
	return fmt.Sprintf("store: HTTP %d", e.Status)
}

// ClassifyError clasifica cualquier error del store. Primero el Kind
// estructurado; substring sobre el texto solo como compatibilidad con
// stores que no mandan códigos.
func ClassifyError(err error) ErrorKind {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Kind
	}
	text := strings.ToLower(err.Error())
	switch {
	case strings.Contains(text, "unauthorized") || strings.Contains(text, "no autorizado") || strings.Contains(text, "401"):
		return KindUnauthorized
	case strings.Contains(text, "not found") || strings.Contains(text, "no existe"):
		return KindNotFound
	default:
		return KindGeneric
	}
}

// isDeleteFailureShape reporta si el texto del fallo tiene la forma del
// error genérico de borrado del store (amerita la pista de base de datos).
func isDeleteFailureShape(err error) bool {
	var se *StoreError
	if errors.As(err, &se) && se.Code == "DELETE_FAILED" {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "failed to delete customer")
}

// Client es el cliente HTTP del store de clientes.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient construye el cliente. token puede ser vacío (rutas públicas).
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// customerPayload es la forma en que llega un cliente por el API.
// total_debt se decodifica con ParseRaw: número, string, null o basura,
// nada de eso rompe el decode del listado completo.
type customerPayload struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone"`
	Email     string          `json:"email"`
	Address   string          `json:"address"`
	IsActive  bool            `json:"is_active"`
	TotalDebt json.RawMessage `json:"total_debt"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (p customerPayload) toEntity() entity.Customer {
	return entity.Customer{
		ID:        p.ID,
		Name:      p.Name,
		Phone:     p.Phone,
		Email:     p.Email,
		Address:   p.Address,
		IsActive:  p.IsActive,
		TotalDebt: debt.ParseRaw(p.TotalDebt),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ListCustomers GET /api/customers?search=<texto>
// Devuelve los registros en el orden del store.
func (c *Client) ListCustomers(ctx context.Context, search string) ([]entity.Customer, error) {
	endpoint := c.baseURL + "/api/customers"
	if search != "" {
		endpoint += "?search=" + url.QueryEscape(search)
	}
	var payload []customerPayload
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &payload); err != nil {
		return nil, err
	}
	list := make([]entity.Customer, 0, len(payload))
	for _, p := range payload {
		list = append(list, p.toEntity())
	}
	return list, nil
}

// DeleteCustomer DELETE /api/customers/{id}
func (c *Client) DeleteCustomer(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.baseURL+"/api/customers/"+url.PathEscape(id), nil, nil)
}

// CreateCustomer POST /api/customers (backend del formulario en modo crear).
func (c *Client) CreateCustomer(ctx context.Context, in dto.CreateCustomerRequest) (*entity.Customer, error) {
	var payload customerPayload
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/api/customers", in, &payload); err != nil {
		return nil, err
	}
	out := payload.toEntity()
	return &out, nil
}

// UpdateCustomer PUT /api/customers/{id} (formulario en modo editar).
func (c *Client) UpdateCustomer(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*entity.Customer, error) {
	var payload customerPayload
	if err := c.do(ctx, http.MethodPut, c.baseURL+"/api/customers/"+url.PathEscape(id), in, &payload); err != nil {
		return nil, err
	}
	out := payload.toEntity()
	return &out, nil
}

// ListTransactions GET /api/customers/{id}/transactions (modal de historial).
func (c *Client) ListTransactions(ctx context.Context, customerID string) ([]entity.Transaction, error) {
	endpoint := c.baseURL + "/api/customers/" + url.PathEscape(customerID) + "/transactions"
	var payload []struct {
		ID         string          `json:"id"`
		CustomerID string          `json:"customer_id"`
		Kind       string          `json:"kind"`
		Amount     json.RawMessage `json:"amount"`
		Note       string          `json:"note"`
		CreatedAt  time.Time       `json:"created_at"`
	}
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &payload); err != nil {
		return nil, err
	}
	list := make([]entity.Transaction, 0, len(payload))
	for _, p := range payload {
		tx := entity.Transaction{
			ID:         p.ID,
			CustomerID: p.CustomerID,
			Kind:       p.Kind,
			Note:       p.Note,
			CreatedAt:  p.CreatedAt,
		}
		if amount := debt.ParseRaw(p.Amount); amount.Valid {
			tx.Amount = amount.Decimal
		}
		list = append(list, tx)
	}
	return list, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("store: marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("store: build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStoreError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("store: decode response: %w", err)
	}
	return nil
}

// newStoreError arma el StoreError desde una respuesta no-2xx: intenta el
// cuerpo estructurado {code, message} y deriva Kind de Code o del status.
func newStoreError(resp *http.Response) *StoreError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	se := &StoreError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}

	var parsed dto.ErrorResponse
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Code != "" {
		se.Code = parsed.Code
		if parsed.Message != "" {
			se.Body = parsed.Message
		}
	}

	switch se.Code {
	case "UNAUTHORIZED", "SESSION_EXPIRED", "MISSING_TOKEN", "INVALID_TOKEN", "FORBIDDEN":
		se.Kind = KindUnauthorized
		return se
	case "NOT_FOUND":
		se.Kind = KindNotFound
		return se
	}
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		se.Kind = KindUnauthorized
	case http.StatusNotFound:
		se.Kind = KindNotFound
	default:
		// Compatibilidad: sin código estructurado, clasificar por texto.
		lower := strings.ToLower(se.Body)
		if strings.Contains(lower, "not found") || strings.Contains(lower, "no existe") {
			se.Kind = KindNotFound
		} else {
			se.Kind = KindGeneric
		}
	}
	return se
}
