package remote

import (
	"context"
	"sync"

	"github.com/jhoicas/admin-panel-api/internal/domain/entity"
)

// Snapshot expone {data, loading, error} de la colección remota, el único
// límite asíncrono del sistema. Un fallo deja los datos previos intactos y
// registra el mensaje de error; la recuperación es un Refetch manual.
type Snapshot struct {
	mu      sync.Mutex
	client  *Client
	data    []entity.Record
	loading bool
	errMsg  string
	fetched bool
}

// State es la vista observable del snapshot.
type State struct {
	Data    []entity.Record
	Loading bool
	Error   string
	Fetched bool // ya hubo al menos un fetch resuelto
}

// NewSnapshot construye el holder sin disparar el fetch todavía.
func NewSnapshot(client *Client) *Snapshot {
	return &Snapshot{client: client}
}

// Refetch ejecuta el GET y publica el resultado. El error previo se limpia al
// empezar; si el fetch falla, los datos anteriores se conservan.
func (s *Snapshot) Refetch(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	data, err := s.client.FetchUsers(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.fetched = true
	if err != nil {
		s.errMsg = err.Error()
		return err
	}
	s.data = data
	return nil
}

// Get devuelve el estado observable actual. El slice devuelto es una copia:
// los registros remotos son prestados y nadie debe mutarlos.
func (s *Snapshot) Get() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := make([]entity.Record, len(s.data))
	copy(data, s.data)
	return State{Data: data, Loading: s.loading, Error: s.errMsg, Fetched: s.fetched}
}
