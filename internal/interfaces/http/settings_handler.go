package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/admin-panel-api/internal/application/dto"
	"github.com/jhoicas/admin-panel-api/internal/application/notify"
	"github.com/jhoicas/admin-panel-api/internal/application/settings"
	"github.com/jhoicas/admin-panel-api/internal/domain"
	"github.com/jhoicas/admin-panel-api/internal/domain/entity"
)

// SettingsHandler sirve las preferencias de UI (tema y sidebar).
type SettingsHandler struct {
	prefs    *settings.UseCase
	notifier *notify.Center
}

// NewSettingsHandler construye el handler de preferencias.
func NewSettingsHandler(prefs *settings.UseCase, notifier *notify.Center) *SettingsHandler {
	return &SettingsHandler{prefs: prefs, notifier: notifier}
}

func preferencesResponse(p entity.Preferences) dto.PreferencesResponse {
	return dto.PreferencesResponse{Theme: p.Theme, SidebarOpen: p.SidebarOpen}
}

// Get godoc
// @Summary      Preferencias de UI vigentes
// @Tags         settings
// @Produce      json
// @Success      200  {object}  dto.PreferencesResponse
// @Router       /api/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	return c.JSON(preferencesResponse(h.prefs.Get()))
}

// SetTheme godoc
// @Summary      Cambiar el tema (light | dark)
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetThemeRequest  true  "tema"
// @Success      200   {object}  dto.PreferencesResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/settings/theme [put]
func (h *SettingsHandler) SetTheme(c *fiber.Ctx) error {
	var in dto.SetThemeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.prefs.SetTheme(in.Theme); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
				Code: "VALIDATION", Message: "tema desconocido",
				Fields: domain.FieldErrors{"theme": "debe ser light o dark"},
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(preferencesResponse(h.prefs.Get()))
}

// ToggleSidebar godoc
// @Summary      Abrir/cerrar el sidebar
// @Tags         settings
// @Produce      json
// @Success      200  {object}  dto.PreferencesResponse
// @Router       /api/settings/sidebar/toggle [post]
func (h *SettingsHandler) ToggleSidebar(c *fiber.Ctx) error {
	return c.JSON(preferencesResponse(h.prefs.ToggleSidebar()))
}
