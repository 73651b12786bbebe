package entity

// Temas de interfaz soportados.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Preferences son las preferencias de UI persistidas en el dispositivo.
type Preferences struct {
	Theme       string `json:"theme"`
	SidebarOpen bool   `json:"sidebar_open"`
}

// DefaultPreferences valores iniciales cuando no hay nada persistido.
func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeLight, SidebarOpen: true}
}
