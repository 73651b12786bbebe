package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/admin-panel-api/internal/application/notify"
	"github.com/jhoicas/admin-panel-api/internal/application/records"
	"github.com/jhoicas/admin-panel-api/internal/application/session"
	"github.com/jhoicas/admin-panel-api/internal/application/settings"
	"github.com/jhoicas/admin-panel-api/internal/application/view"
	"github.com/jhoicas/admin-panel-api/internal/domain/rbac"
	"github.com/jhoicas/admin-panel-api/internal/infrastructure/remote"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Sessions  *session.UseCase
	Records   *records.Store
	Snapshot  *remote.Snapshot
	Engine    *view.Engine
	Notifier  *notify.Center
	Prefs     *settings.UseCase
	JWT       JWTSettings
	AllowDemo bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público). Logout también: debe poder llamarse en cualquier momento.
	authHandler := NewAuthHandler(deps.Sessions, deps.Notifier, deps.JWT)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWT.Secret))

	// Sesión activa
	protected.Get("/me", authHandler.Me)
	protected.Put("/me/profile", authHandler.UpdateProfile)
	protected.Put("/me/password", authHandler.ChangePassword)

	// Usuarios: lectura para todo rol autenticado; las mutaciones pasan por el
	// modelo de permisos con el rol vivo de la sesión.
	usersHandler := NewUsersHandler(deps.Sessions, deps.Records, deps.Snapshot, deps.Engine, deps.Notifier)
	users := protected.Group("/users")
	users.Get("/", usersHandler.List)
	users.Get("/view", usersHandler.ViewRows)
	users.Post("/", RequirePermission(deps.Sessions, rbac.ActionCreate), usersHandler.Create)
	users.Put("/:id", RequirePermission(deps.Sessions, rbac.ActionUpdate), usersHandler.Update)
	users.Delete("/:id", RequirePermission(deps.Sessions, rbac.ActionDelete), usersHandler.Delete)

	// Preferencias de UI
	settingsHandler := NewSettingsHandler(deps.Prefs, deps.Notifier)
	settingsGroup := protected.Group("/settings")
	settingsGroup.Get("/", settingsHandler.Get)
	settingsGroup.Put("/theme", settingsHandler.SetTheme)
	settingsGroup.Post("/sidebar/toggle", settingsHandler.ToggleSidebar)

	// Notificaciones
	notifHandler := NewNotificationsHandler(deps.Notifier)
	notifications := protected.Group("/notifications")
	notifications.Get("/", notifHandler.List)
	notifications.Delete("/:id", notifHandler.Remove)
	notifications.Delete("/", notifHandler.Clear)

	// Override de rol: afordance de demo, solo se monta fuera de producción.
	if deps.AllowDemo {
		protected.Put("/demo/role", authHandler.DemoSetRole)
	}
}
