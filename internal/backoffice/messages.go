package backoffice

// Mensajes localizados de la vista de clientes.
const (
	MsgDeleted         = "Cliente eliminado correctamente"
	MsgSessionExpired  = "Sesión expirada, redirigiendo al inicio de sesión..."
	MsgCustomerMissing = "El cliente no existe o ya fue eliminado"
	MsgDeleteFailed    = "No se pudo eliminar el cliente."
	MsgDeleteHint      = "Revisa si tiene movimientos asociados en la base de datos."
	MsgLoadFailed      = "No se pudo cargar el listado de clientes"

	MsgEmptyNoMatch     = "Sin resultados para la búsqueda"
	MsgEmptyNoCustomers = "Aún no hay clientes registrados; crea el primero"

	// confirmFallbackNoun reemplaza al nombre cuando el registro no tiene.
	confirmFallbackNoun = "este cliente"
)
