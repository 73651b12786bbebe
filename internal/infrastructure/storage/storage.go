package storage

// Store es el contrato de almacenamiento del dispositivo: clave → valor
// completo (JSON serializado por el llamador). Siempre last-write-wins,
// sin updates parciales ni versionado de esquema.
type Store interface {
	// Get devuelve el valor y si la clave existe. Clave ausente no es error.
	Get(key string) ([]byte, bool, error)
	// Put sobrescribe el valor completo de la clave.
	Put(key string, value []byte) error
	// Delete elimina la clave; no-op si no existe.
	Delete(key string) error
	// Close libera recursos del backend.
	Close() error
}

// Claves usadas por la aplicación. Un valor completo por subsistema.
const (
	KeyAuth        = "auth-storage"
	KeyLocalUsers  = "local_users"
	KeyPreferences = "app-storage"
)
