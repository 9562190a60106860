// Package gameconfig loads published game definitions from YAML files.
package gameconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/scratchcraft/rgs/pkg/entities"
)

var ErrGameNotFound = errors.New("game config not found")

// Loader reads game configs from a directory and caches them by game id.
// Configs are validated at load time so resolution never sees a bad one.
type Loader struct {
	dir string

	mu    sync.RWMutex
	cache map[string]*entities.GameConfig
}

// NewLoader creates a loader rooted at the given directory
func NewLoader(dir string) *Loader {
	return &Loader{
		dir:   dir,
		cache: make(map[string]*entities.GameConfig),
	}
}

// LoadAll parses and validates every .yaml file in the directory and
// primes the cache. A single invalid file fails the whole load, so a
// service never starts with a partial catalog.
func (l *Loader) LoadAll() error {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return fmt.Errorf("error reading games directory %s: %w", l.dir, err)
	}

	loaded := make(map[string]*entities.GameConfig)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		cfg, err := l.loadFile(filepath.Join(l.dir, name))
		if err != nil {
			return fmt.Errorf("error loading game config %s: %w", name, err)
		}
		if _, exists := loaded[cfg.GameID]; exists {
			return fmt.Errorf("duplicate game id %s in %s", cfg.GameID, name)
		}
		loaded[cfg.GameID] = cfg
	}

	l.mu.Lock()
	l.cache = loaded
	l.mu.Unlock()
	return nil
}

// Get returns the cached config for a game id
func (l *Loader) Get(gameID string) (*entities.GameConfig, error) {
	l.mu.RLock()
	cfg, ok := l.cache[gameID]
	l.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return cfg, nil
}

// GameIDs returns the ids of all loaded games
func (l *Loader) GameIDs() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ids := make([]string, 0, len(l.cache))
	for id := range l.cache {
		ids = append(ids, id)
	}
	return ids
}

// loadFile parses and validates one config file
func (l *Loader) loadFile(path string) (*entities.GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	var cfg entities.GameConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
