package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Fingerprint is the identity triple computed over a directory tree.
type Fingerprint struct {
	// VerificationCode aggregates the content hashes of all regular files
	// in the tree, minus any excluded hashes.
	VerificationCode string
	// FileHashes maps the absolute path of every regular file to its
	// SHA-256 content hash. Exclusions do not filter this map.
	FileHashes map[string]string
	// PathCode aggregates the hashed relative paths of all non-excluded
	// regular files, identifying the tree's shape independent of where it
	// lives on disk.
	PathCode string
}

// FingerprintDir walks the tree rooted at root, hashes every regular file,
// and returns the resulting Fingerprint. A root that is itself a symlink
// to a directory is resolved and fingerprinted as that directory. Files
// whose content hash appears in excluded are left out of both codes but
// still appear in FileHashes. Symlinks inside the tree are never followed
// or hashed. Any unreadable file or directory fails the whole fingerprint.
func FingerprintDir(root string, excluded map[string]bool) (*Fingerprint, error) {
	return fingerprintDir(root, excluded, HashFile, 0)
}

func fingerprintDir(root string, excluded map[string]bool, hashFn func(string) (string, error), workers int) (*Fingerprint, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, ErrExpectedDirectory
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	// A symlinked root must be resolved before walking: WalkDir does not
	// follow the link, so the unresolved path would yield zero files.
	abs, err = filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, err
	}

	var files []string
	for path, err := range AllPaths(abs) {
		if err != nil {
			return nil, fmt.Errorf("error walking path %s: %w", abs, err)
		}
		fi, err := os.Lstat(path)
		if err != nil {
			return nil, err
		}
		if !fi.Mode().IsRegular() {
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	hashes := make([]string, len(files))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, path := range files {
		g.Go(func() error {
			h, err := hashFn(path)
			if err != nil {
				return fmt.Errorf("error hashing %s: %w", path, err)
			}
			hashes[i] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	fileHashes := make(map[string]string, len(files))
	pathHashes := make([]string, 0, len(files))
	for i, path := range files {
		fileHashes[path] = hashes[i]
		if excluded[hashes[i]] {
			continue
		}
		rel, err := filepath.Rel(abs, path)
		if err != nil {
			return nil, err
		}
		pathHashes = append(pathHashes, HashString("./"+filepath.ToSlash(rel)))
	}

	return &Fingerprint{
		VerificationCode: VerificationCode(hashes, excluded),
		FileHashes:       fileHashes,
		PathCode:         VerificationCode(pathHashes, nil),
	}, nil
}
