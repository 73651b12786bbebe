package view

import (
	"strings"

	"github.com/jhoicas/admin-panel-api/internal/domain/entity"
	"github.com/jhoicas/admin-panel-api/internal/domain/rbac"
)

// Valores de filtro reconocidos. Cadena vacía = sin restricción.
const (
	StatusNew      = "new"
	StatusExisting = "existing"
	SourceLocal    = "local"
	SourceAPI      = "api"
)

// Filters son los filtros estructurados del panel de usuarios.
type Filters struct {
	Status string // "" | new | existing (sobre freshness)
	Source string // "" | local | api (sobre origin)
}

// ComputeView combina la colección remota y la local en una sola vista y le
// aplica búsqueda y filtros. Es puro: nunca muta las colecciones de entrada
// y se recalcula en cada cambio de datos, búsqueda o filtros.
//
// Orden del pipeline: concatenar (remotos primero, cada colección conserva su
// orden) → búsqueda → filtro de estado → filtro de origen. Los tres pasos son
// conjuntivos.
func ComputeView(remote, local []entity.Record, search string, filters Filters) []entity.Record {
	all := make([]entity.Record, 0, len(remote)+len(local))
	all = append(all, remote...)
	all = append(all, local...)

	out := all
	if search != "" {
		out = filterSearch(out, search)
	}
	switch filters.Status {
	case StatusNew:
		out = filterFunc(out, entity.Record.IsNew)
	case StatusExisting:
		out = filterFunc(out, func(r entity.Record) bool { return !r.IsNew() })
	}
	switch filters.Source {
	case SourceLocal:
		out = filterFunc(out, entity.Record.IsLocal)
	case SourceAPI:
		out = filterFunc(out, func(r entity.Record) bool { return !r.IsLocal() })
	}
	return out
}

// filterSearch retiene un registro si nombre, email O teléfono contienen el
// término como substring sin distinguir mayúsculas. Un teléfono ausente
// simplemente no matchea por ese campo.
func filterSearch(in []entity.Record, term string) []entity.Record {
	needle := strings.ToLower(term)
	return filterFunc(in, func(r entity.Record) bool {
		return strings.Contains(strings.ToLower(r.Name), needle) ||
			strings.Contains(strings.ToLower(r.Email), needle) ||
			(r.Phone != "" && strings.Contains(strings.ToLower(r.Phone), needle))
	})
}

func filterFunc(in []entity.Record, keep func(entity.Record) bool) []entity.Record {
	out := make([]entity.Record, 0, len(in))
	for _, r := range in {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// Affordances decide si un registro de la vista ofrece editar/borrar: el id
// debe pertenecer a la colección local Y el rol activo debe tener concedida la
// acción correspondiente. Un registro de origen remoto nunca ofrece acciones,
// sea cual sea el rol.
func Affordances(rec entity.Record, localHas func(id int) bool, role string) (canEdit, canDelete bool) {
	if !localHas(rec.ID) {
		return false, false
	}
	return rbac.Has(role, rbac.ActionUpdate), rbac.Has(role, rbac.ActionDelete)
}
