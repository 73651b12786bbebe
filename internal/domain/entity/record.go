package entity

// Origen de un registro dentro de la vista combinada.
const (
	OriginRemote = "remote" // snapshot del fetch externo, solo lectura
	OriginLocal  = "local"  // creado/editado en este dispositivo
)

// Frescura de un registro (badge "New" en la tabla).
const (
	FreshnessNew      = "new"
	FreshnessExisting = "existing"
)

// Record es la entidad administrada en la tabla de usuarios del panel.
// Los registros remotos son snapshots inmutables; los locales son propiedad
// total del sistema y los únicos editables.
type Record struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	Website   string `json:"website,omitempty"`
	Origin    string `json:"origin"`    // remote | local
	Freshness string `json:"freshness"` // new | existing
}

// IsLocal indica si el registro es de origen local (editable).
func (r Record) IsLocal() bool {
	return r.Origin == OriginLocal
}

// IsNew indica si el registro fue creado en esta instalación.
func (r Record) IsNew() bool {
	return r.Freshness == FreshnessNew
}
