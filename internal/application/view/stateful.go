package view

import (
	"sync"
	"time"

	"github.com/jhoicas/admin-panel-api/internal/domain/entity"
)

// Engine mantiene la vista combinada viva: recuerda búsqueda y filtros
// actuales y recalcula las filas cuando cambian los datos o los criterios.
// La búsqueda entra debounced: solo recalcula tras el periodo de calma y un
// término más nuevo cancela el recálculo pendiente.
type Engine struct {
	mu      sync.Mutex
	remote  func() []entity.Record
	local   func() []entity.Record
	search  string
	filters Filters
	rows    []entity.Record
	deb     *Debouncer
}

// NewEngine construye el motor sobre dos fuentes de registros (remota y
// local). Las fuentes se consultan en cada recálculo, nunca se cachean.
func NewEngine(remote, local func() []entity.Record, debounce time.Duration) *Engine {
	e := &Engine{remote: remote, local: local, deb: NewDebouncer(debounce)}
	e.recompute()
	return e
}

func (e *Engine) recompute() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rows = ComputeView(e.remote(), e.local(), e.search, e.filters)
}

// SetSearch programa el recálculo con el término tras el periodo de calma.
// Tecleos sucesivos cancelan el pendiente; solo el último término se aplica.
func (e *Engine) SetSearch(term string) {
	e.deb.Schedule(func() {
		e.mu.Lock()
		e.search = term
		e.mu.Unlock()
		e.recompute()
	})
}

// SetFilters aplica los filtros estructurados de inmediato (los selects no
// generan tormentas de eventos como el tecleo).
func (e *Engine) SetFilters(f Filters) {
	e.mu.Lock()
	e.filters = f
	e.mu.Unlock()
	e.recompute()
}

// Invalidate recalcula con los criterios vigentes; se llama tras cualquier
// mutación de la colección local o un refetch remoto.
func (e *Engine) Invalidate() {
	e.recompute()
}

// Rows devuelve las filas calculadas más recientes (copia).
func (e *Engine) Rows() []entity.Record {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]entity.Record, len(e.rows))
	copy(out, e.rows)
	return out
}

// Criteria devuelve la búsqueda y filtros aplicados en el último recálculo.
func (e *Engine) Criteria() (string, Filters) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.search, e.filters
}

// Close detiene cualquier recálculo pendiente.
func (e *Engine) Close() {
	e.deb.Stop()
}
