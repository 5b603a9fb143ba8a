package scan

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestHashCache_HashFile(t *testing.T) {
	hc, err := NewHashCache(16)
	if err != nil {
		t.Fatalf("NewHashCache() error = %v", err)
	}

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "data.txt")
	os.WriteFile(path, []byte("hello world"), 0644)

	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	got, err := hc.HashFile(path)
	if err != nil {
		t.Fatalf("HashFile() error = %v", err)
	}
	if got != want {
		t.Errorf("HashFile() = %v, want %v", got, want)
	}
	if hc.Len() != 1 {
		t.Errorf("Len() after first hash = %d, want 1", hc.Len())
	}

	// Second call serves from cache and returns the same hash
	got, err = hc.HashFile(path)
	if err != nil {
		t.Fatalf("HashFile() cached error = %v", err)
	}
	if got != want {
		t.Errorf("HashFile() cached = %v, want %v", got, want)
	}
	if hc.Len() != 1 {
		t.Errorf("Len() after cache hit = %d, want 1", hc.Len())
	}
}

func TestHashCache_ModifiedFileMisses(t *testing.T) {
	hc, err := NewHashCache(16)
	if err != nil {
		t.Fatalf("NewHashCache() error = %v", err)
	}

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "data.txt")
	os.WriteFile(path, []byte("before"), 0644)

	first, err := hc.HashFile(path)
	if err != nil {
		t.Fatalf("HashFile() error = %v", err)
	}

	// Rewrite with different content and a different mtime
	os.WriteFile(path, []byte("after, longer"), 0644)
	future := time.Now().Add(2 * time.Second)
	os.Chtimes(path, future, future)

	second, err := hc.HashFile(path)
	if err != nil {
		t.Fatalf("HashFile() after rewrite error = %v", err)
	}
	if first == second {
		t.Error("HashFile() served stale hash for modified file")
	}
	if want := HashString("after, longer"); second != want {
		t.Errorf("HashFile() after rewrite = %v, want %v", second, want)
	}
}

func TestHashCache_Errors(t *testing.T) {
	hc, err := NewHashCache(16)
	if err != nil {
		t.Fatalf("NewHashCache() error = %v", err)
	}

	tmpDir := t.TempDir()

	if _, err := hc.HashFile(filepath.Join(tmpDir, "missing.txt")); !os.IsNotExist(err) {
		t.Errorf("HashFile(missing) error = %v, want os.ErrNotExist", err)
	}
	if _, err := hc.HashFile(tmpDir); err != ErrExpectedFile {
		t.Errorf("HashFile(dir) error = %v, want ErrExpectedFile", err)
	}
	if hc.Len() != 0 {
		t.Errorf("Len() after errors = %d, want 0", hc.Len())
	}
}

func TestNewHashCache_InvalidSize(t *testing.T) {
	if _, err := NewHashCache(0); err == nil {
		t.Error("NewHashCache(0) succeeded, want error")
	}
	if _, err := NewHashCache(-1); err == nil {
		t.Error("NewHashCache(-1) succeeded, want error")
	}
}

func TestHashCache_Eviction(t *testing.T) {
	hc, err := NewHashCache(2)
	if err != nil {
		t.Fatalf("NewHashCache() error = %v", err)
	}

	tmpDir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		path := filepath.Join(tmpDir, name)
		os.WriteFile(path, []byte(name), 0644)
		if _, err := hc.HashFile(path); err != nil {
			t.Fatalf("HashFile(%s) error = %v", name, err)
		}
	}

	if hc.Len() != 2 {
		t.Errorf("Len() after 3 inserts into size-2 cache = %d, want 2", hc.Len())
	}
}
