package scan

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestAllPaths(t *testing.T) {
	tmpDir := t.TempDir()

	// Build a small tree: two files, a subdirectory with one file
	os.WriteFile(filepath.Join(tmpDir, "a.txt"), []byte("a"), 0644)
	os.WriteFile(filepath.Join(tmpDir, "b.txt"), []byte("b"), 0644)
	subDir := filepath.Join(tmpDir, "sub")
	os.Mkdir(subDir, 0755)
	os.WriteFile(filepath.Join(subDir, "c.txt"), []byte("c"), 0644)

	var got []string
	for path, err := range AllPaths(tmpDir) {
		if err != nil {
			t.Fatalf("AllPaths() yielded error: %v", err)
		}
		got = append(got, path)
	}
	sort.Strings(got)

	want := []string{
		filepath.Join(tmpDir, "a.txt"),
		filepath.Join(tmpDir, "b.txt"),
		subDir,
		filepath.Join(subDir, "c.txt"),
	}
	sort.Strings(want)

	if len(got) != len(want) {
		t.Fatalf("AllPaths() yielded %d entries, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AllPaths() entry %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAllPaths_OmitsRoot(t *testing.T) {
	tmpDir := t.TempDir()
	os.WriteFile(filepath.Join(tmpDir, "only.txt"), []byte("x"), 0644)

	for path, err := range AllPaths(tmpDir) {
		if err != nil {
			t.Fatalf("AllPaths() yielded error: %v", err)
		}
		if path == tmpDir {
			t.Error("AllPaths() yielded the root itself")
		}
	}
}

func TestAllPaths_AbsolutePaths(t *testing.T) {
	tmpDir := t.TempDir()
	os.WriteFile(filepath.Join(tmpDir, "f.txt"), []byte("x"), 0644)

	// Walk via a relative path; yielded entries must still be absolute
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	rel, err := filepath.Rel(wd, tmpDir)
	if err != nil {
		t.Skipf("cannot express %s relative to %s", tmpDir, wd)
	}

	for path, err := range AllPaths(rel) {
		if err != nil {
			t.Fatalf("AllPaths() yielded error: %v", err)
		}
		if !filepath.IsAbs(path) {
			t.Errorf("AllPaths() yielded relative path %q", path)
		}
	}
}

func TestAllPaths_EmptyDir(t *testing.T) {
	tmpDir := t.TempDir()

	count := 0
	for _, err := range AllPaths(tmpDir) {
		if err != nil {
			t.Fatalf("AllPaths() yielded error: %v", err)
		}
		count++
	}
	if count != 0 {
		t.Errorf("AllPaths() on empty dir yielded %d entries, want 0", count)
	}
}

func TestAllPaths_MissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nonexistent")

	sawError := false
	for _, err := range AllPaths(missing) {
		if err != nil {
			sawError = true
		}
	}
	if !sawError {
		t.Error("AllPaths() on missing root yielded no error")
	}
}

func TestAllPaths_EarlyBreak(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.txt", "d.txt"} {
		os.WriteFile(filepath.Join(tmpDir, name), []byte("x"), 0644)
	}

	count := 0
	for range AllPaths(tmpDir) {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("break after 2 entries left count = %d", count)
	}
}

func TestAllPaths_YieldsSymlinks(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "target.txt")
	os.WriteFile(target, []byte("x"), 0644)
	link := filepath.Join(tmpDir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	found := false
	for path, err := range AllPaths(tmpDir) {
		if err != nil {
			t.Fatalf("AllPaths() yielded error: %v", err)
		}
		if path == link {
			found = true
		}
	}
	if !found {
		t.Error("AllPaths() did not yield the symlink entry")
	}
}
