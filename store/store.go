// Package store persists scan documents as JSON files in a bucketed
// directory layout.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/taigrr/colorhash"

	"packscan/scan"
)

// Sentinel errors for package store.
var (
	ErrDocumentNotFound = errors.New("document not found in store")
	ErrInvalidID        = errors.New("invalid document identifier")
)

// Store is a directory of scan documents. Documents are spread across
// numbered bucket subdirectories so no single directory grows past
// filesystem comfort limits.
type Store struct {
	dir string
}

// Open returns a Store rooted at dir, creating the directory if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// BucketFor returns the bucket a document identifier files under.
func BucketFor(id string) string {
	return fmt.Sprintf("%d", colorhash.HashString(id)%1000)
}

func (s *Store) docPath(id string) string {
	return filepath.Join(s.dir, BucketFor(id), id+".json")
}

func validID(id string) bool {
	return id != "" && id != "." && id != ".." && !strings.ContainsAny(id, `/\`)
}

// Save writes a scan document into the store and returns the path it was
// written to. The document's ID names the file.
func (s *Store) Save(res *scan.Result) (string, error) {
	if !validID(res.ID) {
		return "", fmt.Errorf("%q: %w", res.ID, ErrInvalidID)
	}
	path := s.docPath(res.ID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := WriteJSONFile(path, res); err != nil {
		return "", err
	}
	return path, nil
}

// Load reads the scan document with the given identifier.
func (s *Store) Load(id string) (*scan.Result, error) {
	if !validID(id) {
		return nil, fmt.Errorf("%q: %w", id, ErrInvalidID)
	}
	f, err := os.Open(s.docPath(id))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: %w", id, ErrDocumentNotFound)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var res scan.Result
	if err := json.NewDecoder(f).Decode(&res); err != nil {
		return nil, fmt.Errorf("decoding document %s: %w", id, err)
	}
	return &res, nil
}

// List returns the identifiers of every stored document, sorted.
func (s *Store) List() ([]string, error) {
	buckets, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, bucket := range buckets {
		if !bucket.IsDir() {
			continue
		}
		docs, err := os.ReadDir(filepath.Join(s.dir, bucket.Name()))
		if err != nil {
			return nil, err
		}
		for _, doc := range docs {
			name := doc.Name()
			if doc.IsDir() || !strings.HasSuffix(name, ".json") {
				continue
			}
			ids = append(ids, strings.TrimSuffix(name, ".json"))
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Remove deletes the document with the given identifier.
func (s *Store) Remove(id string) error {
	if !validID(id) {
		return fmt.Errorf("%q: %w", id, ErrInvalidID)
	}
	err := os.Remove(s.docPath(id))
	if os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", id, ErrDocumentNotFound)
	}
	return err
}

// WriteJSONFile writes any value as JSON to the specified file path.
// It creates the file and encodes the value using the standard JSON encoder.
func WriteJSONFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(v)
}
