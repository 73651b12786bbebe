package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/admin-panel-api/pkg/logger"
)

// Tipos de notificación (los mismos "kinds" de los toasts del panel).
const (
	KindSuccess = "success"
	KindError   = "error"
	KindWarning = "warning"
	KindInfo    = "info"
)

// Notification es un aviso transitorio mostrado al usuario.
type Notification struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Duration  int       `json:"duration_ms,omitempty"` // 0 = duración por defecto del cliente
	Timestamp time.Time `json:"timestamp"`
}

// Center acumula notificaciones para el dropdown del panel. Para el emisor es
// fire-and-forget: Notify no devuelve nada que el core consuma.
type Center struct {
	mu    sync.Mutex
	items []Notification
	log   *logger.Logger
}

// NewCenter construye el centro de notificaciones.
func NewCenter(log *logger.Logger) *Center {
	return &Center{log: log.Component("notify")}
}

// Notify registra un aviso del tipo dado. duration en milisegundos, 0 para la
// duración por defecto.
func (c *Center) Notify(kind, message string, duration int) {
	n := Notification{
		ID:        uuid.New().String(),
		Kind:      kind,
		Message:   message,
		Duration:  duration,
		Timestamp: time.Now(),
	}

	c.mu.Lock()
	c.items = append(c.items, n)
	c.mu.Unlock()

	c.log.Info().Str("kind", kind).Str("message", message).Msg("notificación")
}

// Success, Error, Warning, Info atajos por tipo.
func (c *Center) Success(msg string) { c.Notify(KindSuccess, msg, 0) }
func (c *Center) Error(msg string)   { c.Notify(KindError, msg, 0) }
func (c *Center) Warning(msg string) { c.Notify(KindWarning, msg, 0) }
func (c *Center) Info(msg string)    { c.Notify(KindInfo, msg, 0) }

// List devuelve una copia de las notificaciones acumuladas, en orden de llegada.
func (c *Center) List() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

// Remove descarta una notificación por id; no-op si no existe.
func (c *Center) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Clear descarta todas las notificaciones.
func (c *Center) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}
