package scan

import (
	"crypto/sha1"
	"fmt"
	"sort"
	"strings"
)

// VerificationCode aggregates a set of hex hash strings into a single
// SHA-1 code: duplicates are collapsed, hashes present in excluded are
// dropped, and the survivors are sorted and concatenated with no
// separator before digesting. The result is a lowercase hex string.
//
// An empty input (or one fully excluded) yields the digest of the empty
// string, never an error. A nil excluded map means no exclusions.
func VerificationCode(hashes []string, excluded map[string]bool) string {
	seen := make(map[string]bool, len(hashes))
	kept := make([]string, 0, len(hashes))
	for _, h := range hashes {
		if excluded[h] || seen[h] {
			continue
		}
		seen[h] = true
		kept = append(kept, h)
	}
	sort.Strings(kept)
	return fmt.Sprintf("%x", sha1.Sum([]byte(strings.Join(kept, ""))))
}
