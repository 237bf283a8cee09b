package backoffice

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/eymenelneccar/ewf/internal/domain/debt"
	"github.com/eymenelneccar/ewf/internal/domain/entity"
	"github.com/eymenelneccar/ewf/pkg/textnorm"
)

// Store es el contrato mínimo que la vista necesita del store de clientes.
// Lo implementa *Client.
type Store interface {
	ListCustomers(ctx context.Context, search string) ([]entity.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
}

// Notifier recibe las notificaciones de la vista: exactamente una por
// operación exitosa o fallida, nunca fallos silenciosos.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Navigator redirige el contexto de navegación al login (LoginPath).
type Navigator interface {
	RedirectToLogin()
}

// ListState estado del listado: tres estados mutuamente excluyentes.
type ListState int

const (
	// ListLoading render de SkeletonCount placeholders.
	ListLoading ListState = iota
	// ListEmpty sin registros; EmptyKind distingue el mensaje.
	ListEmpty
	// ListPopulated una tarjeta por registro, en el orden del store.
	ListPopulated
)

// EmptyKind distingue los dos estados vacíos.
type EmptyKind int

const (
	// EmptyNoCustomers sin clientes y sin búsqueda activa: mensaje con
	// acción de crear.
	EmptyNoCustomers EmptyKind = iota
	// EmptyNoMatch búsqueda activa sin resultados.
	EmptyNoMatch
)

// SkeletonCount cantidad fija de placeholders durante la carga.
const SkeletonCount = 6

// DefaultRedirectDelay espera antes de redirigir al login tras un fallo de
// sesión.
const DefaultRedirectDelay = 1500 * time.Millisecond

// CardView es el view-model de una tarjeta de cliente.
type CardView struct {
	Customer entity.Customer
	Severity debt.Severity
	// DebtLabel monto formateado ("5200.00"); vacío si Severity es none.
	DebtLabel string
	// OverageNote nota de exceso, solo para severidad crítica.
	OverageNote string
}

// Config dependencias e hiperparámetros de la vista.
type Config struct {
	Store     Store
	Cache     QueryCache // opcional; nil desactiva el cache
	Notifier  Notifier
	Navigator Navigator
	// RedirectDelay <= 0 usa DefaultRedirectDelay.
	RedirectDelay time.Duration
}

// ListView es el controlador de la pantalla de clientes: búsqueda, estados
// del listado, flujo de borrado con confirmación y referencias transitorias
// de formulario e historial.
//
// Los métodos son manejadores de eventos discretos. El estado va protegido
// por mutex porque dos borrados sobre registros distintos pueden estar en
// vuelo a la vez; no hay garantía de orden entre sus finalizaciones y el
// único freno de duplicados es el flag por registro.
type ListView struct {
	cfg Config

	mu       sync.Mutex
	search   string
	state    ListState
	list     []entity.Customer
	pending  *entity.Customer // registro en confirmación de borrado
	deleting map[string]bool  // borrados en vuelo, por ID
	editing  *entity.Customer // referencia transitoria del formulario
	history  *entity.Customer // referencia transitoria del historial
	editOpen bool             // el formulario en modo crear no tiene registro
}

// NewListView construye la vista en estado de carga inicial.
func NewListView(cfg Config) *ListView {
	if cfg.RedirectDelay <= 0 {
		cfg.RedirectDelay = DefaultRedirectDelay
	}
	return &ListView{
		cfg:      cfg,
		state:    ListLoading,
		deleting: make(map[string]bool),
	}
}

// SetSearch actualiza el término y refetchea. Sin debounce: cada cambio
// vuelve a emitir (o resolver de cache) la consulta filtrada.
func (v *ListView) SetSearch(ctx context.Context, term string) error {
	v.mu.Lock()
	v.search = term
	v.mu.Unlock()
	return v.Refresh(ctx)
}

// Search devuelve el término de búsqueda actual.
func (v *ListView) Search() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.search
}

// Refresh resuelve el listado: cache primero, store en miss. En fallo deja
// el contenido anterior, notifica una vez y devuelve el error.
func (v *ListView) Refresh(ctx context.Context) error {
	v.mu.Lock()
	term := v.search
	hadContent := v.state == ListPopulated
	if !hadContent {
		v.state = ListLoading
	}
	v.mu.Unlock()

	key := textnorm.Term(term)
	if v.cfg.Cache != nil {
		if list, ok := v.cfg.Cache.Read(key); ok {
			v.apply(list)
			return nil
		}
	}

	list, err := v.cfg.Store.ListCustomers(ctx, term)
	if err != nil {
		v.mu.Lock()
		if v.state == ListLoading {
			v.state = ListEmpty
		}
		v.mu.Unlock()
		v.cfg.Notifier.Error(MsgLoadFailed)
		return err
	}
	if v.cfg.Cache != nil {
		v.cfg.Cache.Write(key, list)
	}
	v.apply(list)
	return nil
}

func (v *ListView) apply(list []entity.Customer) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.list = list
	if len(list) == 0 {
		v.state = ListEmpty
	} else {
		v.state = ListPopulated
	}
}

// State devuelve el estado actual del listado.
func (v *ListView) State() ListState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Customers devuelve los registros en el orden del store (sin reordenar).
func (v *ListView) Customers() []entity.Customer {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.list
}

// EmptyKind distingue el estado vacío: NoMatch con búsqueda activa,
// NoCustomers (con acción de crear) sin ella.
func (v *ListView) EmptyKind() EmptyKind {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.search != "" {
		return EmptyNoMatch
	}
	return EmptyNoCustomers
}

// EmptyMessage devuelve el mensaje del estado vacío actual.
func (v *ListView) EmptyMessage() string {
	if v.EmptyKind() == EmptyNoMatch {
		return MsgEmptyNoMatch
	}
	return MsgEmptyNoCustomers
}

// Card arma el view-model de la tarjeta de un registro:
//
//	deuda >= 5000       -> crítica, con nota de exceso y monto formateado
//	0 < deuda < 5000    -> warning, sin nota de exceso
//	deuda <= 0 o ausente -> sin indicador de deuda
func (v *ListView) Card(c entity.Customer) CardView {
	card := CardView{Customer: c, Severity: debt.ClassifyNull(c.TotalDebt)}
	if card.Severity == debt.SeverityNone {
		return card
	}
	card.DebtLabel = debt.FormatAmount(c.TotalDebt.Decimal)
	if card.Severity == debt.SeverityCritical {
		card.OverageNote = fmt.Sprintf("Deuda sobre el límite permitido: %s", card.DebtLabel)
	}
	return card
}

// RequestDelete pasa el flujo de borrado de Idle a Confirming.
func (v *ListView) RequestDelete(c entity.Customer) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pending = &c
}

// PendingDelete devuelve el registro en confirmación, nil en Idle.
func (v *ListView) PendingDelete() *entity.Customer {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pending
}

// ConfirmMessage arma el prompt de confirmación: nombre del registro (o
// sustantivo genérico si falta) y advertencia de irreversibilidad.
func (v *ListView) ConfirmMessage() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.pending == nil {
		return ""
	}
	name := v.pending.Name
	if name == "" {
		name = confirmFallbackNoun
	}
	return fmt.Sprintf("¿Eliminar a %s? Esta acción no se puede deshacer.", name)
}

// CancelDelete vuelve a Idle sin tocar el store.
func (v *ListView) CancelDelete() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pending = nil
}

// IsDeleting reporta si el borrado del registro está en vuelo (el control
// de ese registro se deshabilita para evitar doble envío).
func (v *ListView) IsDeleting(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.deleting[id]
}

// ConfirmDelete ejecuta el borrado confirmado. Siempre vuelve a Idle y
// emite exactamente una notificación; el registro sigue en el listado hasta
// el próximo refetch exitoso (sin remoción optimista). El error devuelto es
// informativo para el caller: la vista ya lo absorbió.
func (v *ListView) ConfirmDelete(ctx context.Context) error {
	v.mu.Lock()
	if v.pending == nil {
		v.mu.Unlock()
		return nil
	}
	rec := *v.pending
	v.pending = nil
	if v.deleting[rec.ID] {
		// Doble envío: el control ya está deshabilitado para este registro.
		v.mu.Unlock()
		return nil
	}
	v.deleting[rec.ID] = true
	term := v.search
	v.mu.Unlock()

	err := v.cfg.Store.DeleteCustomer(ctx, rec.ID)

	v.mu.Lock()
	delete(v.deleting, rec.ID)
	v.mu.Unlock()

	if err == nil {
		if v.cfg.Cache != nil {
			v.cfg.Cache.Invalidate(textnorm.Term(term))
		}
		v.cfg.Notifier.Success(MsgDeleted)
		return nil
	}

	switch ClassifyError(err) {
	case KindUnauthorized:
		v.cfg.Notifier.Error(MsgSessionExpired)
		if v.cfg.Navigator != nil {
			time.AfterFunc(v.cfg.RedirectDelay, v.cfg.Navigator.RedirectToLogin)
		}
	case KindNotFound:
		v.cfg.Notifier.Error(MsgCustomerMissing)
	default:
		msg := MsgDeleteFailed
		if isDeleteFailureShape(err) {
			msg += " " + MsgDeleteHint
		}
		v.cfg.Notifier.Error(msg)
	}
	return err
}

// OpenForm abre el formulario compartido: nil es modo crear, un registro es
// modo editar.
func (v *ListView) OpenForm(c *entity.Customer) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.editing = c
	v.editOpen = true
}

// FormOpen reporta si el formulario está abierto.
func (v *ListView) FormOpen() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.editOpen
}

// Editing devuelve el registro en edición; nil en modo crear o cerrado.
func (v *ListView) Editing() *entity.Customer {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.editing
}

// CloseForm cierra el formulario y limpia la referencia transitoria.
func (v *ListView) CloseForm() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.editing = nil
	v.editOpen = false
}

// OpenHistory abre el modal de historial para el registro.
func (v *ListView) OpenHistory(c entity.Customer) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.history = &c
}

// HistoryCustomer devuelve el registro del historial abierto, nil si no hay.
func (v *ListView) HistoryCustomer() *entity.Customer {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.history
}

// CloseHistory cierra el modal de historial y limpia la referencia.
func (v *ListView) CloseHistory() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.history = nil
}
