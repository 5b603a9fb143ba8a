package scan

import (
	"time"

	"packscan/archive"
	"packscan/filekind"
)

type (
	// FileRecord describes one regular file inside a scanned package.
	FileRecord struct {
		Path   string        `json:"path"`           // relative path, "./" prefixed
		SHA256 string        `json:"sha256"`         // content hash
		Size   int64         `json:"size"`           // size of the file in bytes
		Kind   filekind.Kind `json:"kind,omitempty"` // best-effort classification
	}
	// Result is the document produced by scanning one package.
	Result struct {
		ID               string       `json:"id"`                        // generated document identifier
		Package          string       `json:"package"`                   // friendly package name
		Source           string       `json:"source"`                    // absolute path that was scanned
		ArchiveKind      archive.Kind `json:"archive_kind"`              // container format, "none" for directories
		PackageSHA256    string       `json:"package_sha256,omitempty"`  // hash of the archive file itself
		VerificationCode string       `json:"verification_code"`         // code over file content hashes
		PathCode         string       `json:"path_code"`                 // code over hashed relative paths
		Excluded         []string     `json:"excluded_hashes,omitempty"` // hashes excluded from the codes
		Files            []FileRecord `json:"files"`                     // sorted by path
		Members          []string     `json:"members,omitempty"`         // raw archive member names
		FileCount        int          `json:"file_count"`
		TotalSize        int64        `json:"total_size"`
		ScannedAt        time.Time    `json:"scanned_at"`
		ToolVersion      string       `json:"tool_version"`
	}
)

// UniqueHashCount returns the number of distinct content hashes across the
// package's files.
func (r *Result) UniqueHashCount() int {
	hashes := make(map[string]bool)
	for _, f := range r.Files {
		hashes[f.SHA256] = true
	}
	return len(hashes)
}

// KindCounts returns the number of files recorded for each file kind.
// Files scanned without classification count under the empty kind.
func (r *Result) KindCounts() map[filekind.Kind]int {
	counts := make(map[filekind.Kind]int)
	for _, f := range r.Files {
		counts[f.Kind]++
	}
	return counts
}
