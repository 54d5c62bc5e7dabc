// Package save persists progress and lifetime stats between sessions.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Version is written into every save file.
const Version = 3

// Stats are lifetime totals shown on the HUD.
type Stats struct {
	TotalConsumed   int     `json:"totalConsumed"`
	GalaxiesCleared int     `json:"galaxiesCleared"`
	HighestMass     float64 `json:"highestMass"`
	BestCombo       int     `json:"bestCombo"`
	TimePlayed      float64 `json:"timePlayed"` // ticks
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("total_consumed", s.TotalConsumed),
		slog.Int("galaxies_cleared", s.GalaxiesCleared),
		slog.Float64("highest_mass", s.HighestMass),
		slog.Int("best_combo", s.BestCombo),
	)
}

// Data is the persisted blob.
type Data struct {
	Version       int     `json:"version"`
	Galaxy        int     `json:"galaxy"`
	BestGalaxy    int     `json:"bestGalaxy"`
	TotalConsumed int     `json:"totalConsumed"`
	AudioEnabled  bool    `json:"audioEnabled"`
	Volume        float64 `json:"volume"`
	Stats         Stats   `json:"stats"`
}

// Defaults returns a fresh save.
func Defaults() Data {
	return Data{
		Version:      Version,
		Galaxy:       1,
		BestGalaxy:   1,
		AudioEnabled: true,
		Volume:       0.4,
	}
}

// Normalize clamps out-of-range fields: galaxy >= 1, best >= galaxy,
// volume in [0, 1], counters >= 0.
func (d *Data) Normalize() {
	d.Version = Version
	if d.Galaxy < 1 {
		d.Galaxy = 1
	}
	if d.BestGalaxy < d.Galaxy {
		d.BestGalaxy = d.Galaxy
	}
	if d.Volume < 0 {
		d.Volume = 0
	} else if d.Volume > 1 {
		d.Volume = 1
	}
	if d.TotalConsumed < 0 {
		d.TotalConsumed = 0
	}
	if d.Stats.TotalConsumed < 0 {
		d.Stats.TotalConsumed = 0
	}
	if d.Stats.GalaxiesCleared < 0 {
		d.Stats.GalaxiesCleared = 0
	}
}

// Store loads and saves progress. Load never fails.
type Store interface {
	Load() Data
	Save(Data) error
}

// FileStore keeps the save as JSON on disk.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file location.
func (s *FileStore) Path() string { return s.path }

// Load reads the save. A missing or corrupt file yields Defaults;
// absent fields keep their default values.
func (s *FileStore) Load() Data {
	d, err := s.read()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("save unreadable, starting fresh", "path", s.path, "error", err)
		}
		return Defaults()
	}
	return d
}

func (s *FileStore) read() (Data, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return Data{}, fmt.Errorf("read save: %w", err)
	}
	d := Defaults()
	if err := json.Unmarshal(raw, &d); err != nil {
		return Data{}, fmt.Errorf("unmarshal save: %w", err)
	}
	d.Normalize()
	return d, nil
}

// Save writes the save atomically.
func (s *FileStore) Save(d Data) error {
	d.Normalize()
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create save dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal save: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace save: %w", err)
	}
	return nil
}

// Clear deletes the save file.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove save: %w", err)
	}
	return nil
}

// MemoryStore keeps the save in memory.
type MemoryStore struct {
	data  *Data
	Saves int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the last saved data, or Defaults.
func (s *MemoryStore) Load() Data {
	if s.data == nil {
		return Defaults()
	}
	return *s.data
}

// Save records d.
func (s *MemoryStore) Save(d Data) error {
	d.Normalize()
	s.data = &d
	s.Saves++
	return nil
}
