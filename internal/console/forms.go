package console

import (
	"fmt"

	"github.com/studiowebux/snmpconsole/internal/types"
)

// RequestForm holds the five request fields as typed
type RequestForm struct {
	Type      string
	Community string
	Target    string
	OID       string
	Value     string
}

// Payload builds a fresh payload. Nothing is trimmed or validated.
func (f RequestForm) Payload() types.RequestPayload {
	return types.RequestPayload{
		Type:      f.Type,
		Community: f.Community,
		Target:    f.Target,
		OID:       f.OID,
		Value:     f.Value,
	}
}

// ApplyDefaults copies the saved connection defaults into the form
func (f *RequestForm) ApplyDefaults(p types.Preferences) {
	f.Target = p.IP
	f.Community = p.Community
}

// ConfigForm holds the three connection default fields
type ConfigForm struct {
	IP        string
	Port      string
	Community string
}

// Preferences builds the value to persist
func (f ConfigForm) Preferences() types.Preferences {
	return types.Preferences{IP: f.IP, Port: f.Port, Community: f.Community}
}

// Restore fills the form from saved preferences
func (f *ConfigForm) Restore(p types.Preferences) {
	f.IP = p.IP
	f.Port = p.Port
	f.Community = p.Community
}

// PreferencesSaver persists the connection defaults
type PreferencesSaver interface {
	Save(prefs types.Preferences) error
}

// SavePreferences persists the form and returns the confirmation text
func SavePreferences(store PreferencesSaver, form ConfigForm) (string, error) {
	if err := store.Save(form.Preferences()); err != nil {
		return "", fmt.Errorf("failed to save preferences: %w", err)
	}
	return SavedText, nil
}
