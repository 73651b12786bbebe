package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/admin-panel-api/internal/application/notify"
)

// NotificationsHandler sirve el dropdown de notificaciones del panel.
type NotificationsHandler struct {
	center *notify.Center
}

// NewNotificationsHandler construye el handler de notificaciones.
func NewNotificationsHandler(center *notify.Center) *NotificationsHandler {
	return &NotificationsHandler{center: center}
}

// List godoc
// @Summary      Notificaciones acumuladas
// @Tags         notifications
// @Produce      json
// @Success      200  {array}  notify.Notification
// @Router       /api/notifications [get]
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	items := h.center.List()
	if items == nil {
		items = []notify.Notification{}
	}
	return c.JSON(items)
}

// Remove godoc
// @Summary      Descartar una notificación
// @Tags         notifications
// @Param        id  path  string  true  "id de la notificación"
// @Success      204
// @Router       /api/notifications/{id} [delete]
func (h *NotificationsHandler) Remove(c *fiber.Ctx) error {
	h.center.Remove(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

// Clear godoc
// @Summary      Descartar todas las notificaciones
// @Tags         notifications
// @Success      204
// @Router       /api/notifications [delete]
func (h *NotificationsHandler) Clear(c *fiber.Ctx) error {
	h.center.Clear()
	return c.SendStatus(fiber.StatusNoContent)
}
