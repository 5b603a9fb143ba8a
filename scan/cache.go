package scan

import (
	"fmt"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
)

// HashCache memoizes file content hashes across scans. Entries are keyed
// by path, size, and modification time, so a modified file misses the
// cache naturally instead of serving a stale hash. The cache is safe for
// concurrent use.
type HashCache struct {
	entries *lru.Cache[string, string]
}

// NewHashCache returns a HashCache holding at most size entries.
func NewHashCache(size int) (*HashCache, error) {
	entries, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	return &HashCache{entries: entries}, nil
}

// HashFile returns the content hash for path, consulting the cache first.
func (hc *HashCache) HashFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", ErrExpectedFile
	}
	key := fmt.Sprintf("%s|%d|%d", path, info.Size(), info.ModTime().UnixNano())
	if hash, ok := hc.entries.Get(key); ok {
		return hash, nil
	}
	hash, err := HashFile(path)
	if err != nil {
		return "", err
	}
	hc.entries.Add(key, hash)
	return hash, nil
}

// Len returns the number of cached hashes.
func (hc *HashCache) Len() int {
	return hc.entries.Len()
}
