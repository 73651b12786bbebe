package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/admin-panel-api/internal/application/dto"
	"github.com/jhoicas/admin-panel-api/internal/application/notify"
	"github.com/jhoicas/admin-panel-api/internal/application/session"
	"github.com/jhoicas/admin-panel-api/internal/domain"
	"github.com/jhoicas/admin-panel-api/internal/domain/entity"
	"github.com/jhoicas/admin-panel-api/internal/domain/rbac"
	"github.com/jhoicas/admin-panel-api/pkg/jwt"
)

// AuthHandler maneja registro, login, logout y la sesión activa.
type AuthHandler struct {
	sessions *session.UseCase
	notifier *notify.Center
	jwtCfg   JWTSettings
}

// JWTSettings parámetros de emisión de tokens.
type JWTSettings struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(sessions *session.UseCase, notifier *notify.Center, jwtCfg JWTSettings) *AuthHandler {
	return &AuthHandler{sessions: sessions, notifier: notifier, jwtCfg: jwtCfg}
}

func identityResponse(id entity.Identity) dto.IdentityResponse {
	return dto.IdentityResponse{
		ID:        id.ID,
		Name:      id.Name,
		Email:     id.Email,
		Role:      id.Role,
		CreatedAt: id.CreatedAt,
	}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validateLogin(in); errs.HasErrors() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "revisa los campos", Fields: errs})
	}

	identity, err := h.sessions.Authenticate(in.Email, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrCredentialMismatch) {
			// Error de campo, nunca una excepción: el formulario lo pinta inline.
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "INVALID_CREDENTIALS",
				Message: "credenciales inválidas",
				Fields:  domain.FieldErrors{"password": "credenciales inválidas"},
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	role := h.sessions.Role()
	token, err := jwt.Generate(h.jwtCfg.Secret, identity.ID, role, h.jwtCfg.Issuer, h.jwtCfg.ExpMinutes)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	return c.JSON(dto.LoginResponse{
		Token:    token,
		User:     identityResponse(identity),
		Role:     role,
		Redirect: "/dashboard",
	})
}

// Register godoc
// @Summary      Registrar identidad
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "name, email, password, confirm_password"
// @Success      201   {object}  dto.RegisterResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validateRegister(in); errs.HasErrors() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "revisa los campos", Fields: errs})
	}

	identity, err := h.sessions.Register(session.Profile{Name: in.Name, Email: in.Email}, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			// Duplicado: error de campo sobre email, sin identidad nueva.
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code:    "EMAIL_EXISTS",
				Message: "el email ya está registrado",
				Fields:  domain.FieldErrors{"email": "el email ya está registrado"},
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	h.notifier.Success("Cuenta creada, ya puedes iniciar sesión")
	// El registro no autentica: el cliente hace login con la identidad devuelta.
	return c.Status(fiber.StatusCreated).JSON(dto.RegisterResponse{
		User:     identityResponse(identity),
		Redirect: "/login",
	})
}

// Logout godoc
// @Summary      Cerrar sesión (idempotente)
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.LogoutResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.sessions.Logout()
	return c.JSON(dto.LogoutResponse{Redirect: "/login"})
}

// Me godoc
// @Summary      Sesión activa: identidad, rol y permisos vigentes
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MeResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity, ok := h.sessions.Current()
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_SESSION", Message: "no hay sesión activa"})
	}
	role := h.sessions.Role()
	perms := rbac.PermissionsFor(role)
	out := dto.MeResponse{User: identityResponse(identity), Role: role, Permissions: make([]string, 0, len(perms))}
	for _, p := range perms {
		out.Permissions = append(out.Permissions, string(p))
	}
	return c.JSON(out)
}

// UpdateProfile godoc
// @Summary      Actualizar perfil (merge superficial)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "campos a tocar"
// @Success      200   {object}  dto.MeResponse
// @Router       /api/me/profile [put]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email != "" && !emailRx.MatchString(in.Email) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "revisa los campos",
			Fields: domain.FieldErrors{"email": "el email no es válido"},
		})
	}

	h.sessions.UpdateProfile(session.Profile{Name: in.Name, Email: in.Email})
	h.notifier.Success("Configuración guardada")
	return h.Me(c)
}

// ChangePassword godoc
// @Summary      Cambiar credencial de la sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangePasswordRequest  true  "current, new, confirm"
// @Success      200   {object}  dto.LogoutResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/me/password [put]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	errs := validateChangePassword(in)
	if !errs.HasErrors() && !h.sessions.VerifyCredential(in.CurrentPassword) {
		// Mismatch de credencial: error de campo, no una excepción.
		errs["current_password"] = "la contraseña actual no es correcta"
	}
	if errs.HasErrors() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "revisa los campos", Fields: errs})
	}

	if err := h.sessions.UpdateCredential(in.NewPassword); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	h.notifier.Success("Contraseña actualizada")
	return c.JSON(fiber.Map{"ok": true})
}

// DemoSetRole godoc
// @Summary      Override de rol (solo demo, nunca en producción)
// @Tags         demo
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetRoleRequest  true  "admin | editor | viewer"
// @Success      200   {object}  dto.MeResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/demo/role [put]
func (h *AuthHandler) DemoSetRole(c *fiber.Ctx) error {
	var in dto.SetRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.sessions.SetRole(in.Role); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "rol desconocido",
			Fields: domain.FieldErrors{"role": "debe ser admin, editor o viewer"},
		})
	}

	switch in.Role {
	case entity.RoleAdmin:
		h.notifier.Success("Rol cambiado a Admin: acceso completo")
	case entity.RoleEditor:
		h.notifier.Info("Rol cambiado a Editor: puede crear y editar")
	default:
		h.notifier.Warning("Rol cambiado a Viewer: solo lectura")
	}
	return h.Me(c)
}
