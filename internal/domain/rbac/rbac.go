package rbac

import "github.com/jhoicas/admin-panel-api/internal/domain/entity"

// Action es una capacidad concreta que un rol puede ejercer en el panel.
type Action string

// Acciones conocidas por el modelo de permisos.
const (
	ActionCreate         Action = "create"
	ActionRead           Action = "read"
	ActionUpdate         Action = "update"
	ActionDelete         Action = "delete"
	ActionManageUsers    Action = "manage_users"
	ActionManageSettings Action = "manage_settings"
)

// Tabla fija rol → acciones. admin ⊇ editor ⊇ viewer para create/read/update;
// delete y manage_* son exclusivas de admin.
var permissions = map[string][]Action{
	entity.RoleAdmin:  {ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionManageUsers, ActionManageSettings},
	entity.RoleEditor: {ActionCreate, ActionRead, ActionUpdate},
	entity.RoleViewer: {ActionRead},
}

// PermissionsFor devuelve las acciones permitidas para un rol.
// Rol desconocido → conjunto vacío (fail closed), nunca panic.
func PermissionsFor(role string) []Action {
	perms, ok := permissions[role]
	if !ok {
		return nil
	}
	// Copia defensiva: la tabla es compartida y los llamadores no deben mutarla.
	out := make([]Action, len(perms))
	copy(out, perms)
	return out
}

// Has responde si el rol tiene concedida la acción. Puro y sin estado;
// se evalúa en cada consulta, nunca se cachea entre cambios de rol.
func Has(role string, action Action) bool {
	for _, a := range permissions[role] {
		if a == action {
			return true
		}
	}
	return false
}
