package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rodrigotabsan/RAGIoT/internal/domain"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscover_MatchesPatterns(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.json"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "nested", "b.json"))
	touch(t, filepath.Join(dir, "backup", "c.json"))

	d := NewDiscoverer([]string{"**/*.json"}, []string{"backup/**"})
	files, err := d.Discover(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d: %v", len(files), files)
	}
	if filepath.Base(files[0]) != "a.json" {
		t.Errorf("expected a.json first, got %s", files[0])
	}
	if filepath.Base(files[1]) != "b.json" {
		t.Errorf("expected nested/b.json second, got %s", files[1])
	}
}

func TestDiscover_DefaultIncludes(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.json"))

	files, err := NewDiscoverer(nil, nil).Discover(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("expected 1 file, got %d", len(files))
	}
}

func TestResolve_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sensores.json")
	touch(t, path)

	files, err := Resolve(path, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 || files[0] != path {
		t.Errorf("expected [%s], got %v", path, files)
	}
}

func TestResolve_Directory(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.json"))
	touch(t, filepath.Join(dir, "b.json"))

	files, err := Resolve(dir, []string{"**/*.json"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("expected 2 files, got %d", len(files))
	}
}

func TestResolve_Missing(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "nope.json"), nil, nil)
	if !errors.Is(err, domain.ErrDataNotFound) {
		t.Errorf("expected ErrDataNotFound, got %v", err)
	}
}

func TestResolve_EmptyDirectory(t *testing.T) {
	_, err := Resolve(t.TempDir(), []string{"**/*.json"}, nil)
	if !errors.Is(err, domain.ErrDataNotFound) {
		t.Errorf("expected ErrDataNotFound, got %v", err)
	}
}
