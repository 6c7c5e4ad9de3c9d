// Package settings persists the user-facing provider configuration: the
// hosted credential and the local-mode endpoint selection. The record is
// loaded once at startup and overwritten wholesale on save.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/book-expert/logger"
)

// FileName is the fixed name of the settings record inside the data directory.
const FileName = "settings.json"

// Defaults for local mode, matching common local inference servers.
const (
	DefaultLocalBaseURL = "http://localhost:11434/v1"
	DefaultLocalModel   = "llama3"
)

const filePermissions = 0o600

// Settings is the persisted user configuration record.
type Settings struct {
	APIKey        string `json:"apiKey"`
	UseLocalModel bool   `json:"useLocalModel"`
	LocalBaseURL  string `json:"localModelUrl"`
	LocalModel    string `json:"localModelName"`
}

// Default returns the settings used when nothing has been saved yet.
func Default() Settings {
	return Settings{
		APIKey:        "",
		UseLocalModel: false,
		LocalBaseURL:  DefaultLocalBaseURL,
		LocalModel:    DefaultLocalModel,
	}
}

// Store reads and writes the settings record under a fixed path.
type Store struct {
	mu   sync.Mutex
	path string
	log  *logger.Logger
}

// NewStore creates a store rooted at dataDir.
func NewStore(dataDir string, log *logger.Logger) *Store {
	return &Store{
		path: filepath.Join(dataDir, FileName),
		log:  log,
	}
}

// Load reads the stored record. A missing or malformed file is not fatal: it
// falls back to defaults.
func (s *Store) Load() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("Failed to read settings, using defaults: %v", err)
		}

		return Default()
	}

	var loaded Settings

	err = json.Unmarshal(data, &loaded)
	if err != nil {
		s.log.Warn("Stored settings are malformed, using defaults: %v", err)

		return Default()
	}

	if loaded.LocalBaseURL == "" {
		loaded.LocalBaseURL = DefaultLocalBaseURL
	}

	if loaded.LocalModel == "" {
		loaded.LocalModel = DefaultLocalModel
	}

	return loaded
}

// Save overwrites the stored record wholesale.
func (s *Store) Save(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	err = os.MkdirAll(filepath.Dir(s.path), 0o750)
	if err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	err = os.WriteFile(s.path, data, filePermissions)
	if err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	return nil
}
