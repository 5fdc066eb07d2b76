package preferences

import "encoding/json"

// SetPreferencesPayload is the request body for saving preferences. Both
// fields are optional; omitted values fall back to defaults.
type SetPreferencesPayload struct {
	ThemePreset  string          `json:"themePreset" validate:"max=50" mod:"trim"`
	CustomColors json.RawMessage `json:"customColors"`
}

// PreferencesResponse is the shape returned by get.
type PreferencesResponse struct {
	ThemePreset  string          `json:"themePreset"`
	CustomColors json.RawMessage `json:"customColors"`
}

// MessageResponse acknowledges a save.
type MessageResponse struct {
	Message string `json:"message"`
}
