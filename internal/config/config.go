package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const SettingsFileName = "settings.json"

// ErrNotConfigured is returned by Load when no settings file exists yet.
var ErrNotConfigured = errors.New("settings file does not exist, setup was likely not completed; run \"shmail setup --help\"")

// Store reads and writes Settings as JSON at Path.
type Store struct {
	Path string
}

func NewStore(path string) *Store {
	return &Store{Path: path}
}

// ExecutableDir returns the directory of the running binary with symlinks
// resolved, so an installed copy reached through /usr/local/bin still finds
// its files under the install directory.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("couldn't locate executable: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("couldn't resolve executable path: %w", err)
	}
	return filepath.Dir(resolved), nil
}

func DefaultSettingsPath() (string, error) {
	dir, err := ExecutableDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SettingsFileName), nil
}

func (s *Store) Load() (Settings, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Settings{}, ErrNotConfigured
		}
		return Settings{}, fmt.Errorf("reading settings %s: %w", s.Path, err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("decoding settings %s: %w", s.Path, err)
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// Save writes the settings in clear text and restricts the file to its owner.
func (s *Store) Save(settings Settings) error {
	data, err := json.MarshalIndent(settings, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0o600); err != nil {
		return fmt.Errorf("writing settings %s: %w", s.Path, err)
	}
	// WriteFile keeps the mode of an existing file, so set it explicitly.
	if err := os.Chmod(s.Path, 0o700); err != nil {
		return fmt.Errorf("restricting settings %s: %w", s.Path, err)
	}
	return nil
}
