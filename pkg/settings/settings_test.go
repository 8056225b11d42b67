package settings

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// countingBackend wraps a backend and records writes.
type countingBackend struct {
	Backend
	writes   int
	writeErr error
}

func (b *countingBackend) Write(s Settings) error {
	if b.writeErr != nil {
		return b.writeErr
	}
	b.writes++
	return b.Backend.Write(s)
}

type fakeMirror struct {
	pushed []Settings
	err    error
}

func (m *fakeMirror) Push(ctx context.Context, s Settings) error {
	m.pushed = append(m.pushed, s)
	return m.err
}

func TestFileBackendMissingFileReturnsDefaults(t *testing.T) {
	b := NewFileBackend(filepath.Join(t.TempDir(), "settings.json"))

	got, err := b.Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if got != Defaults() {
		t.Errorf("Load() = %+v, want defaults %+v", got, Defaults())
	}
}

func TestFileBackendMalformedFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := NewFileBackend(path).Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if got != Defaults() {
		t.Errorf("Load() = %+v, want defaults", got)
	}
}

func TestFileBackendFillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"chimesFrequency": 15}`), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := NewFileBackend(path).Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if got.ChimesFrequency != 15 || got.ChimesDuration != Defaults().ChimesDuration {
		t.Errorf("Load() = %+v", got)
	}
}

func TestFileBackendRoundTrip(t *testing.T) {
	for _, name := range []string{"settings.json", "settings.yaml", "settings.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			b := NewFileBackend(path)
			want := Settings{ChimesFrequency: 5, ChimesDuration: 120, DeviceID: "watch-1"}

			if err := b.Write(want); err != nil {
				t.Fatalf("Write() returned unexpected error: %v", err)
			}
			got, err := b.Load()
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			if got != want {
				t.Errorf("Load() = %+v, want %+v", got, want)
			}

			entries, err := os.ReadDir(filepath.Dir(path))
			if err != nil {
				t.Fatal(err)
			}
			if len(entries) != 1 {
				t.Errorf("directory holds %d entries after write, want only the settings file", len(entries))
			}
		})
	}
}

func TestFileBackendYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := NewFileBackend(path).Write(Settings{ChimesFrequency: 30, ChimesDuration: 50}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "chimesFrequency: 30") {
		t.Errorf("YAML file content = %q", string(data))
	}
}

func TestSQLiteBackendRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.db")

	b, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() returned unexpected error: %v", err)
	}

	got, err := b.Load()
	if err != nil {
		t.Fatalf("Load() on empty database returned unexpected error: %v", err)
	}
	if got != Defaults() {
		t.Errorf("Load() on empty database = %+v, want defaults", got)
	}

	want := Settings{ChimesFrequency: 2, ChimesDuration: 250, DeviceID: "watch-2"}
	if err := b.Write(want); err != nil {
		t.Fatalf("Write() returned unexpected error: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopening: %v", err)
	}
	defer reopened.Close()

	got, err = reopened.Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestOpenAssignsDeviceID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	s, err := Open(NewFileBackend(path))
	if err != nil {
		t.Fatalf("Open() returned unexpected error: %v", err)
	}
	if s.DeviceID() == "" {
		t.Fatal("DeviceID() is empty")
	}
	if !s.Dirty() {
		t.Error("new device ID should be pending a save")
	}
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}

	again, err := Open(NewFileBackend(path))
	if err != nil {
		t.Fatal(err)
	}
	if again.DeviceID() != s.DeviceID() {
		t.Errorf("DeviceID() = %q after reopen, want %q", again.DeviceID(), s.DeviceID())
	}
	if again.Dirty() {
		t.Error("reopened store is dirty")
	}
}

func TestSaveOnlyWritesWhenDirty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	backend := &countingBackend{Backend: NewFileBackend(path)}
	if err := backend.Backend.Write(Settings{ChimesFrequency: 60, ChimesDuration: 35, DeviceID: "id"}); err != nil {
		t.Fatal(err)
	}

	s, err := Open(backend)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Save(); err != nil {
		t.Fatal(err)
	}
	if backend.writes != 0 {
		t.Errorf("clean Save() wrote %d times", backend.writes)
	}

	s.SetChimesDuration(35)
	if s.Dirty() {
		t.Error("setting an unchanged value marked the store dirty")
	}

	s.SetChimesDuration(80)
	s.SetChimesFrequency(10)
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}
	if backend.writes != 1 {
		t.Errorf("writes = %d, want 1", backend.writes)
	}
	if s.Dirty() {
		t.Error("store still dirty after Save")
	}

	reloaded, err := NewFileBackend(path).Load()
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.ChimesDuration != 80 || reloaded.ChimesFrequency != 10 {
		t.Errorf("file holds %+v", reloaded)
	}
}

func TestSaveWriteErrorKeepsDirty(t *testing.T) {
	boom := errors.New("read-only filesystem")
	backend := &countingBackend{Backend: NewFileBackend(filepath.Join(t.TempDir(), "s.json")), writeErr: boom}

	s, err := Open(backend)
	if err != nil {
		t.Fatal(err)
	}
	s.SetChimesDuration(120)

	if err := s.Save(); !errors.Is(err, boom) {
		t.Fatalf("Save() error = %v, want wrapped %v", err, boom)
	}
	if !s.Dirty() {
		t.Error("failed save cleared the dirty flag")
	}
}

func TestSavePushesToMirrors(t *testing.T) {
	failing := &fakeMirror{err: errors.New("offline")}
	ok := &fakeMirror{}

	s, err := Open(NewFileBackend(filepath.Join(t.TempDir(), "s.json")), WithMirror(failing), WithMirror(ok))
	if err != nil {
		t.Fatal(err)
	}
	s.SetChimesFrequency(20)

	if err := s.Save(); err != nil {
		t.Fatalf("Save() returned mirror error: %v", err)
	}
	if len(failing.pushed) != 1 || len(ok.pushed) != 1 {
		t.Fatalf("pushes = %d and %d, want 1 each", len(failing.pushed), len(ok.pushed))
	}
	if ok.pushed[0].ChimesFrequency != 20 {
		t.Errorf("pushed %+v", ok.pushed[0])
	}
}

func TestOpenPathChoosesBackend(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		want string
	}{
		{"settings.db", "sqlite:"},
		{"settings.sqlite", "sqlite:"},
		{"settings.json", ""},
		{"settings.yaml", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := OpenPath(filepath.Join(dir, tt.name))
			if err != nil {
				t.Fatalf("OpenPath() returned unexpected error: %v", err)
			}
			defer s.Close()

			isSQLite := strings.HasPrefix(s.backend.String(), "sqlite:")
			if isSQLite != (tt.want != "") {
				t.Errorf("backend = %s", s.backend)
			}
		})
	}
}

type fakeS3 struct {
	s3iface.S3API
	inputs []*s3.PutObjectInput
	bodies []string
}

func (f *fakeS3) PutObjectWithContext(ctx aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, string(body))
	return &s3.PutObjectOutput{}, nil
}

func TestS3MirrorPush(t *testing.T) {
	client := &fakeS3{}
	m := NewS3MirrorWithClient(client, "fleet-settings", "watches")

	err := m.Push(context.Background(), Settings{ChimesFrequency: 15, ChimesDuration: 50, DeviceID: "abc"})
	if err != nil {
		t.Fatalf("Push() returned unexpected error: %v", err)
	}
	if len(client.inputs) != 1 {
		t.Fatalf("PutObject called %d times, want 1", len(client.inputs))
	}

	in := client.inputs[0]
	if aws.StringValue(in.Bucket) != "fleet-settings" {
		t.Errorf("bucket = %q", aws.StringValue(in.Bucket))
	}
	if aws.StringValue(in.Key) != "watches/abc.json" {
		t.Errorf("key = %q", aws.StringValue(in.Key))
	}
	if !strings.Contains(client.bodies[0], `"chimesFrequency": 15`) {
		t.Errorf("body = %s", client.bodies[0])
	}
}

func TestNewS3MirrorRequiresCredentials(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")

	if _, err := NewS3Mirror("bucket", "", "eu-west-1"); err == nil {
		t.Error("NewS3Mirror() succeeded without credentials")
	}
}
