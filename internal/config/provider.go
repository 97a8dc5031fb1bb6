package config

// SettingsLoader defines read access to persisted settings
type SettingsLoader interface {
	Load() (Settings, error)
}

// SettingsSaver defines write access to persisted settings
type SettingsSaver interface {
	Save(settings Settings) error
}

// StaticSettings implements SettingsLoader over an in-memory value
type StaticSettings struct {
	settings Settings
}

// NewStaticSettings creates a loader that always returns settings
func NewStaticSettings(settings Settings) SettingsLoader {
	return &StaticSettings{settings: settings}
}

func (s *StaticSettings) Load() (Settings, error) {
	return s.settings, nil
}
