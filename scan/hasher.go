package scan

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// Hashes a file and returns the SHA-256 digest as a lowercase hex string
func HashFile(path string) (hash string, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", ErrExpectedFile
	}
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return HashReader(file)
}

// HashReader calculates the SHA-256 hash of data from an io.Reader.
// It returns the hash as a hexadecimal string.
func HashReader(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// HashString returns the SHA-256 hash of a string as a hexadecimal string.
func HashString(s string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(s)))
}
