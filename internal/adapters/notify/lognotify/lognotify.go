package lognotify

import (
	"shelter-map/internal/platform/logger"
	"shelter-map/internal/ports/notify"
)

// Notifier escribe las notificaciones al logger. La superficie real de
// toasts es del cliente web/mobile; server-side y en el maptool esto es
// todo lo que hace falta.
type Notifier struct {
	log logger.Logger
}

func New(log logger.Logger) *Notifier {
	return &Notifier{log: log}
}

func (n *Notifier) Success(msg string) {
	n.log.Info(msg, map[string]any{"notify": "success"})
}

func (n *Notifier) Error(msg string) {
	n.log.Warn(msg, map[string]any{"notify": "error"})
}

var _ notify.Notifier = (*Notifier)(nil)
