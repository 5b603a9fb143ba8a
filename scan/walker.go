package scan

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// AllPaths returns an iterator over every directory and file in the tree
// rooted at root, as absolute paths. The root itself is not yielded.
// Traversal is lazy: entries are produced as the walk discovers them, and
// breaking out of the loop stops the walk. Errors reading a directory are
// yielded in place rather than swallowed; symlinks are yielded but never
// followed.
func AllPaths(root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		abs, err := filepath.Abs(root)
		if err != nil {
			yield(root, err)
			return
		}
		filepath.WalkDir(abs, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				if !yield(path, walkErr) {
					return fs.SkipAll
				}
				return nil
			}
			if path == abs {
				return nil
			}
			if !yield(path, nil) {
				return fs.SkipAll
			}
			return nil
		})
	}
}
