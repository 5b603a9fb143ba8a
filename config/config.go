// Package config loads packscan runtime configuration from the
// environment, with optional .env file support.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the packscan CLI. Every field has a
// working default; PACKSCAN_* environment variables override them.
type Config struct {
	// StoreDir is where scan documents are persisted.
	StoreDir string
	// Workers bounds concurrent file hashing. Zero means one per CPU.
	Workers int
	// CacheSize is the content-hash cache capacity in entries. Zero
	// disables the cache.
	CacheSize int
	// Classify enables file kind detection during scans.
	Classify bool
}

// Load reads configuration from a .env file (when present) and the
// environment. Malformed values fall back to their defaults rather than
// failing startup.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		StoreDir:  getenvString("PACKSCAN_STORE_DIR", defaultStoreDir()),
		Workers:   getenvInt("PACKSCAN_WORKERS", 0),
		CacheSize: getenvInt("PACKSCAN_CACHE_SIZE", 4096),
		Classify:  getenvBool("PACKSCAN_CLASSIFY", true),
	}
}

func defaultStoreDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "packscan", "store")
	}
	return filepath.Join(base, "packscan", "store")
}

func getenvString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
