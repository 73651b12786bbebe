package entity

import "time"

// Roles válidos para una sesión.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// ValidRole indica si el rol es uno de los tres conocidos.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleEditor || role == RoleViewer
}

// Identity representa a quién actúa en el panel. Se crea en el registro
// (o en el login demo) y persiste en la colección de identidades registradas
// aunque la sesión se cierre.
type Identity struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           string    `json:"role,omitempty"`
	CredentialHash string    `json:"credential_hash,omitempty"` // bcrypt, nunca plano
	CreatedAt      time.Time `json:"created_at"`
}
