package view

import (
	"sync"
	"time"
)

// Debouncer aplaza la ejecución de un trabajo hasta que la entrada lleve un
// periodo de calma. Programar un valor nuevo cancela el pendiente
// (last-write-wins): solo el más reciente dispara. Es un temporizador
// cancelable, no una espera bloqueante.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// NewDebouncer crea un debouncer con el periodo de calma indicado
// (típicamente ~300ms para la caja de búsqueda).
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Schedule cancela cualquier trabajo pendiente y programa fn tras el periodo
// de calma. No bloquea al llamador.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancela el trabajo pendiente, si lo hay. Para el apagado ordenado.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
