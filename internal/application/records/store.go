package records

import (
	"encoding/json"
	"sync"

	"github.com/jhoicas/admin-panel-api/internal/domain/entity"
	"github.com/jhoicas/admin-panel-api/internal/infrastructure/storage"
	"github.com/jhoicas/admin-panel-api/pkg/logger"
)

// Fields son los campos editables de un registro. Campo vacío = sin cambio
// en Update; en Create se toman tal cual.
type Fields struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Website string
}

// Store es la colección local de registros, independiente de la remota.
// Solo los registros de esta colección son editables o borrables; los remotos
// son snapshots prestados que nunca se mutan.
type Store struct {
	mu    sync.Mutex
	local []entity.Record // orden más-reciente-primero
	store storage.Store
	log   *logger.Logger
}

// New rehidrata la colección local desde storage. Contenido ausente o corrupto
// → colección vacía con un warn en el log, nunca un error al caller.
func New(store storage.Store, log *logger.Logger) *Store {
	s := &Store{store: store, log: log.Component("records")}

	raw, ok, err := store.Get(storage.KeyLocalUsers)
	if err != nil {
		s.log.Warn().Err(err).Msg("leyendo registros locales, se arranca vacío")
		return s
	}
	if !ok {
		return s
	}
	var local []entity.Record
	if err := json.Unmarshal(raw, &local); err != nil {
		s.log.Warn().Err(err).Msg("registros locales corruptos, se descartan")
		return s
	}
	s.local = local
	return s
}

// persist round-tripea la colección completa por storage tras cada mutación.
func (s *Store) persist() {
	raw, err := json.Marshal(s.local)
	if err != nil {
		s.log.Error().Err(err).Msg("serializando registros locales")
		return
	}
	if err := s.store.Put(storage.KeyLocalUsers, raw); err != nil {
		s.log.Error().Err(err).Msg("persistiendo registros locales")
	}
}

// NextID calcula el siguiente id único sobre la vista combinada en el momento
// de la creación: max(ids)+1, 1 si no hay registros. Los ids no se reusan
// después de borrar.
func NextID(merged []entity.Record) int {
	max := 0
	for _, r := range merged {
		if r.ID > max {
			max = r.ID
		}
	}
	return max + 1
}

// Create construye un registro local (origin=local, freshness=new) con id
// calculado sobre la vista combinada suministrada y lo antepone a la colección.
func (s *Store) Create(fields Fields, merged []entity.Record) entity.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := entity.Record{
		ID:        NextID(merged),
		Name:      fields.Name,
		Email:     fields.Email,
		Phone:     fields.Phone,
		Company:   fields.Company,
		Website:   fields.Website,
		Origin:    entity.OriginLocal,
		Freshness: entity.FreshnessNew,
	}
	s.local = append([]entity.Record{rec}, s.local...)
	s.persist()

	s.log.Info().Int("id", rec.ID).Msg("registro local creado")
	return rec
}

// Update hace merge superficial sobre el registro local con ese id.
// No-op (false) si el id no está en la colección local: los registros remotos
// no son editables jamás.
func (s *Store) Update(id int, fields Fields) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.local {
		if s.local[i].ID != id {
			continue
		}
		if fields.Name != "" {
			s.local[i].Name = fields.Name
		}
		if fields.Email != "" {
			s.local[i].Email = fields.Email
		}
		if fields.Phone != "" {
			s.local[i].Phone = fields.Phone
		}
		if fields.Company != "" {
			s.local[i].Company = fields.Company
		}
		if fields.Website != "" {
			s.local[i].Website = fields.Website
		}
		s.persist()
		return true
	}
	return false
}

// Delete elimina el registro local con ese id; no-op (false) si no existe.
func (s *Store) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.local {
		if s.local[i].ID == id {
			s.local = append(s.local[:i], s.local[i+1:]...)
			s.persist()
			return true
		}
	}
	return false
}

// List devuelve una copia de la colección local en su orden
// (más-reciente-primero).
func (s *Store) List() []entity.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.Record, len(s.local))
	copy(out, s.local)
	return out
}

// Contains indica si el id pertenece a la colección local (y por tanto es
// candidato a edición/borrado).
func (s *Store) Contains(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.local {
		if r.ID == id {
			return true
		}
	}
	return false
}
