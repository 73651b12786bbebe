package dto

// PreferencesResponse preferencias de UI vigentes.
type PreferencesResponse struct {
	Theme       string `json:"theme"`
	SidebarOpen bool   `json:"sidebar_open"`
}

// SetThemeRequest entrada para cambiar el tema.
type SetThemeRequest struct {
	Theme string `json:"theme"`
}
