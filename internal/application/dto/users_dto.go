package dto

// UserRowResponse una fila de la tabla de usuarios: el registro más las
// affordances calculadas para el rol activo.
type UserRowResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	Website   string `json:"website,omitempty"`
	Origin    string `json:"origin"`
	IsNew     bool   `json:"is_new"`
	CanEdit   bool   `json:"can_edit"`
	CanDelete bool   `json:"can_delete"`
}

// UsersListResponse la vista combinada filtrada, con los totales que muestra
// la cabecera ("Showing X of Y users") y el estado del fetch remoto.
type UsersListResponse struct {
	Users    []UserRowResponse `json:"users"`
	Total    int               `json:"total"`    // filas tras filtros
	Combined int               `json:"combined"` // remotos + locales sin filtrar
	Loading  bool              `json:"loading"`
	Error    string            `json:"error,omitempty"`
}

// SaveUserRequest entrada para crear o editar un registro local.
type SaveUserRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Website string `json:"website"`
}
