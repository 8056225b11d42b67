package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"chime-frame/pkg/logger"
)

// FileBackend stores settings in a single JSON file, or YAML when the path
// ends in .yaml or .yml.
type FileBackend struct {
	path string
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (b *FileBackend) String() string {
	return b.path
}

func (b *FileBackend) isYAML() bool {
	ext := strings.ToLower(filepath.Ext(b.path))
	return ext == ".yaml" || ext == ".yml"
}

// Load reads the settings file. When the file is missing or cannot be parsed,
// defaults are returned instead so the device can keep running.
func (b *FileBackend) Load() (Settings, error) {
	f, err := os.Open(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return defaultSettings, nil
	}
	if err != nil {
		return Settings{}, err
	}
	defer f.Close()

	var s Settings
	if err := b.decode(f, &s); err != nil {
		logger.Warn("Malformed settings file, using defaults", "path", b.path, "error", err)
		return defaultSettings, nil
	}
	return withDefaults(s), nil
}

func (b *FileBackend) decode(r io.Reader, s *Settings) error {
	if b.isYAML() {
		return yaml.NewDecoder(r).Decode(s)
	}
	return json.NewDecoder(r).Decode(s)
}

// Write replaces the settings file atomically: the new content goes to a
// temporary file in the same directory which is then renamed over the old one.
func (b *FileBackend) Write(s Settings) error {
	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(b.path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := b.encode(tmp, s); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), b.path)
}

func (b *FileBackend) encode(w io.Writer, s Settings) error {
	if b.isYAML() {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

func (b *FileBackend) Close() error {
	return nil
}
