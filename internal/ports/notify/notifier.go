package notify

// Notifier es la superficie de toasts/notificaciones del cliente.
// Fire-and-forget: no se consume retorno ni error.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}
