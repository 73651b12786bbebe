package dto

import "time"

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest entrada para registro. El registro no autentica: el cliente
// debe hacer login después con la identidad devuelta.
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// IdentityResponse salida de una identidad (sin credencial).
type IdentityResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse salida con token JWT y la ruta a la que navegar.
type LoginResponse struct {
	Token    string           `json:"token"`
	User     IdentityResponse `json:"user"`
	Role     string           `json:"role"`
	Redirect string           `json:"redirect"`
}

// RegisterResponse salida del registro.
type RegisterResponse struct {
	User     IdentityResponse `json:"user"`
	Redirect string           `json:"redirect"`
}

// LogoutResponse salida del logout.
type LogoutResponse struct {
	Redirect string `json:"redirect"`
}

// MeResponse identidad y permisos de la sesión activa.
type MeResponse struct {
	User        IdentityResponse `json:"user"`
	Role        string           `json:"role"`
	Permissions []string         `json:"permissions"`
}

// UpdateProfileRequest campos de perfil a tocar (vacío = sin cambio).
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ChangePasswordRequest entrada para cambio de credencial.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// SetRoleRequest entrada del override de rol (solo demo, fuera de producción).
type SetRoleRequest struct {
	Role string `json:"role"`
}
