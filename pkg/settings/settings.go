package settings

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"chime-frame/pkg/logger"
)

// Settings represents user-tunable configuration that should persist across
// restarts. Add additional fields here as new settings are introduced.
type Settings struct {
	ChimesFrequency int    `json:"chimesFrequency" yaml:"chimesFrequency"`
	ChimesDuration  int    `json:"chimesDuration" yaml:"chimesDuration"`
	DeviceID        string `json:"deviceId" yaml:"deviceId"`
}

var defaultSettings = Settings{
	ChimesFrequency: 60,
	ChimesDuration:  35,
}

// Defaults returns the settings used when nothing has been stored yet.
func Defaults() Settings {
	return defaultSettings
}

// withDefaults replaces zero values with defaults so that partially written
// configuration does not break behaviour when new fields are added.
func withDefaults(s Settings) Settings {
	if s.ChimesFrequency == 0 {
		s.ChimesFrequency = defaultSettings.ChimesFrequency
	}
	if s.ChimesDuration == 0 {
		s.ChimesDuration = defaultSettings.ChimesDuration
	}
	return s
}

// Backend reads and writes a whole Settings value.
type Backend interface {
	Load() (Settings, error)
	Write(Settings) error
	Close() error
	String() string
}

// Mirror receives a copy of the settings after every successful save.
type Mirror interface {
	Push(ctx context.Context, s Settings) error
}

// Option configures a Store.
type Option func(*Store)

// WithMirror pushes every saved snapshot to m.
func WithMirror(m Mirror) Option {
	return func(s *Store) {
		s.mirrors = append(s.mirrors, m)
	}
}

// WithMirrorTimeout bounds each mirror push. Defaults to ten seconds.
func WithMirrorTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.mirrorTimeout = d
	}
}

// Store keeps the current settings in memory. Setters only mark the store
// dirty; Save writes to the backend.
type Store struct {
	backend       Backend
	current       Settings
	dirty         bool
	mirrors       []Mirror
	mirrorTimeout time.Duration
}

// Open loads settings from backend. A device ID is generated the first time
// and written on the next Save.
func Open(backend Backend, opts ...Option) (*Store, error) {
	current, err := backend.Load()
	if err != nil {
		return nil, fmt.Errorf("loading settings from %s: %w", backend, err)
	}

	s := &Store{
		backend:       backend,
		current:       withDefaults(current),
		mirrorTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.current.DeviceID == "" {
		s.current.DeviceID = uuid.NewString()
		s.dirty = true
	}

	logger.Debug("Settings loaded", "backend", backend.String(),
		"frequency", s.current.ChimesFrequency,
		"duration", s.current.ChimesDuration)

	return s, nil
}

// OpenPath opens a store on a file, choosing SQLite for .db, .sqlite and
// .sqlite3 paths and a JSON or YAML file otherwise.
func OpenPath(path string, opts ...Option) (*Store, error) {
	var backend Backend
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		b, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		backend = b
	default:
		backend = NewFileBackend(path)
	}

	s, err := Open(backend, opts...)
	if err != nil {
		backend.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) GetChimesFrequency() int {
	return s.current.ChimesFrequency
}

func (s *Store) SetChimesFrequency(minutes int) {
	if s.current.ChimesFrequency != minutes {
		s.current.ChimesFrequency = minutes
		s.dirty = true
	}
}

func (s *Store) GetChimesDuration() int {
	return s.current.ChimesDuration
}

func (s *Store) SetChimesDuration(ms int) {
	if s.current.ChimesDuration != ms {
		s.current.ChimesDuration = ms
		s.dirty = true
	}
}

// DeviceID identifies this device in mirrored snapshots.
func (s *Store) DeviceID() string {
	return s.current.DeviceID
}

// Snapshot returns a copy of the current settings.
func (s *Store) Snapshot() Settings {
	return s.current
}

// Dirty reports whether there are changes Save has not written yet.
func (s *Store) Dirty() bool {
	return s.dirty
}

// Save writes the settings when anything changed since the last save, then
// pushes them to every mirror. Mirror failures are logged and do not fail the
// save.
func (s *Store) Save() error {
	if !s.dirty {
		return nil
	}
	if err := s.backend.Write(s.current); err != nil {
		return fmt.Errorf("writing settings to %s: %w", s.backend, err)
	}
	s.dirty = false
	logger.Info("Settings saved", "backend", s.backend.String())

	for _, m := range s.mirrors {
		ctx, cancel := context.WithTimeout(context.Background(), s.mirrorTimeout)
		if err := m.Push(ctx, s.current); err != nil {
			logger.Warn("Failed to mirror settings", "error", err)
		}
		cancel()
	}
	return nil
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
