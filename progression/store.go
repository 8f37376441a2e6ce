package progression

import (
	"fmt"
	"log/slog"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	saveObject   = "progress"
	saveProperty = "slot"
)

// Store persists GameData through gdata. A Store with a nil manager runs
// in memory only: Save is a no-op and Load reports nothing saved.
type Store struct {
	manager *gdata.Manager
}

func NewStore(manager *gdata.Manager) *Store {
	return &Store{manager: manager}
}

// OpenStore opens the platform data directory for appName. If that fails
// the returned store runs in memory only and the error is logged.
func OpenStore(appName string) *Store {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		slog.Warn("progression: open save store, continuing without saves", "app", appName, "err", err)
		return NewStore(nil)
	}
	return NewStore(m)
}

func (s *Store) Persistent() bool {
	return s != nil && s.manager != nil
}

func (s *Store) Save(data GameData) error {
	if !s.Persistent() {
		return nil
	}
	blob, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("progression: marshal save: %w", err)
	}
	if err := s.manager.SaveObjectProp(saveObject, saveProperty, blob); err != nil {
		return fmt.Errorf("progression: write save: %w", err)
	}
	return nil
}

// Load returns the saved snapshot. ok is false when nothing was saved yet.
func (s *Store) Load() (GameData, bool, error) {
	if !s.Persistent() || !s.manager.ObjectPropExists(saveObject, saveProperty) {
		return GameData{}, false, nil
	}
	blob, err := s.manager.LoadObjectProp(saveObject, saveProperty)
	if err != nil {
		return GameData{}, false, fmt.Errorf("progression: read save: %w", err)
	}
	data := Default()
	if err := yaml.Unmarshal(blob, &data); err != nil {
		return GameData{}, false, fmt.Errorf("progression: unmarshal save: %w", err)
	}
	if data.Level < 1 {
		data.Level = 1
	}
	return data, true, nil
}

// Reset overwrites the slot with fresh, the new-game snapshot built from
// the configured defaults.
func (s *Store) Reset(fresh GameData) error {
	return s.Save(fresh)
}

// LoadOrDefault returns the saved game or fallback when there is none or
// the save is unreadable.
func (s *Store) LoadOrDefault(fallback GameData) GameData {
	data, ok, err := s.Load()
	if err != nil {
		slog.Warn("progression: discarding unreadable save", "err", err)
		return fallback
	}
	if !ok {
		return fallback
	}
	return data
}
