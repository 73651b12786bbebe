package settings

import (
	"encoding/json"
	"sync"

	"github.com/jhoicas/admin-panel-api/internal/domain"
	"github.com/jhoicas/admin-panel-api/internal/domain/entity"
	"github.com/jhoicas/admin-panel-api/internal/infrastructure/storage"
	"github.com/jhoicas/admin-panel-api/pkg/logger"
)

// UseCase gestiona las preferencias de UI (tema y sidebar) persistidas en el
// dispositivo como un solo valor.
type UseCase struct {
	mu    sync.Mutex
	prefs entity.Preferences
	store storage.Store
	log   *logger.Logger
}

// New rehidrata las preferencias; contenido ausente o corrupto → defaults.
func New(store storage.Store, log *logger.Logger) *UseCase {
	uc := &UseCase{store: store, log: log.Component("settings"), prefs: entity.DefaultPreferences()}

	raw, ok, err := store.Get(storage.KeyPreferences)
	if err != nil || !ok {
		if err != nil {
			uc.log.Warn().Err(err).Msg("leyendo preferencias, se usan defaults")
		}
		return uc
	}
	var prefs entity.Preferences
	if err := json.Unmarshal(raw, &prefs); err != nil {
		uc.log.Warn().Err(err).Msg("preferencias corruptas, se usan defaults")
		return uc
	}
	if prefs.Theme != entity.ThemeLight && prefs.Theme != entity.ThemeDark {
		prefs.Theme = entity.ThemeLight
	}
	uc.prefs = prefs
	return uc
}

func (uc *UseCase) persist() {
	raw, err := json.Marshal(uc.prefs)
	if err != nil {
		uc.log.Error().Err(err).Msg("serializando preferencias")
		return
	}
	if err := uc.store.Put(storage.KeyPreferences, raw); err != nil {
		uc.log.Error().Err(err).Msg("persistiendo preferencias")
	}
}

// Get devuelve las preferencias actuales.
func (uc *UseCase) Get() entity.Preferences {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.prefs
}

// SetTheme cambia el tema (light|dark) y persiste.
func (uc *UseCase) SetTheme(theme string) error {
	if theme != entity.ThemeLight && theme != entity.ThemeDark {
		return domain.ErrInvalidInput
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.prefs.Theme = theme
	uc.persist()
	return nil
}

// ToggleSidebar invierte el estado del sidebar y persiste.
func (uc *UseCase) ToggleSidebar() entity.Preferences {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.prefs.SidebarOpen = !uc.prefs.SidebarOpen
	uc.persist()
	return uc.prefs
}
