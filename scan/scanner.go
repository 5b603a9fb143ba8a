package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"packscan/archive"
	"packscan/filekind"
	"packscan/ident"
	"packscan/version"
)

// Scanner scans packages into Result documents. The zero value is usable:
// it hashes with one worker per CPU, no cache, and no kind classification.
type Scanner struct {
	// Workers bounds the concurrent hashing pool. Zero means one worker
	// per CPU.
	Workers int
	// Cache, when set, memoizes content hashes across scans.
	Cache *HashCache
	// ClassifyKinds enables best-effort file kind detection on every
	// scanned file.
	ClassifyKinds bool
}

// ScanPackage scans the package at path, which may be a directory or an
// archive file (tar or zip, with any supported compression). Archive
// contents are extracted into a scoped temporary root that is removed
// again before ScanPackage returns. Hashes present in excluded are left
// out of the verification and path codes; the files carrying them are
// still recorded.
func (s *Scanner) ScanPackage(path string, excluded map[string]bool) (*Result, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return s.scanTree(abs, abs, excluded, archive.KindNone, "", nil)
	}

	kind, err := archive.Detect(abs)
	if err != nil {
		return nil, err
	}
	if kind == archive.KindNone {
		return nil, fmt.Errorf("%s: %w", abs, archive.ErrUnsupportedArchive)
	}
	pkgHash, err := s.hashFn()(abs)
	if err != nil {
		return nil, err
	}
	extraction, err := archive.Extract(abs)
	if err != nil {
		return nil, err
	}
	res, scanErr := s.scanTree(extraction.Root, abs, excluded, kind, pkgHash, extraction.Members)
	if closeErr := extraction.Close(); scanErr == nil && closeErr != nil {
		return nil, closeErr
	}
	if scanErr != nil {
		return nil, scanErr
	}
	return res, nil
}

func (s *Scanner) hashFn() func(string) (string, error) {
	if s.Cache != nil {
		return s.Cache.HashFile
	}
	return HashFile
}

func (s *Scanner) scanTree(root, source string, excluded map[string]bool, kind archive.Kind, pkgHash string, members []string) (*Result, error) {
	// Resolve the root so the relative paths below agree with the
	// fingerprint's absolute keys when the root is itself a symlink.
	root, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, err
	}
	fp, err := fingerprintDir(root, excluded, s.hashFn(), s.Workers)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(fp.FileHashes))
	for p := range fp.FileHashes {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var totalSize int64
	files := make([]FileRecord, 0, len(paths))
	for _, p := range paths {
		info, err := os.Lstat(p)
		if err != nil {
			return nil, err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil, err
		}
		rec := FileRecord{
			Path:   "./" + filepath.ToSlash(rel),
			SHA256: fp.FileHashes[p],
			Size:   info.Size(),
		}
		if s.ClassifyKinds {
			rec.Kind = classify(p)
		}
		totalSize += rec.Size
		files = append(files, rec)
	}

	base := filepath.Base(source)
	return &Result{
		ID:               ident.Generate("Package", base, fp.VerificationCode),
		Package:          ident.PackageName(base),
		Source:           source,
		ArchiveKind:      kind,
		PackageSHA256:    pkgHash,
		VerificationCode: fp.VerificationCode,
		PathCode:         fp.PathCode,
		Excluded:         sortedKeys(excluded),
		Files:            files,
		Members:          members,
		FileCount:        len(files),
		TotalSize:        totalSize,
		ScannedAt:        time.Now().UTC(),
		ToolVersion:      version.GetVersion(),
	}, nil
}

// classify is advisory: a file whose kind cannot be determined is recorded
// as Other rather than failing the scan.
func classify(path string) filekind.Kind {
	kind, err := filekind.Detect(path)
	if err != nil {
		return filekind.Other
	}
	return kind
}

func sortedKeys(m map[string]bool) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
