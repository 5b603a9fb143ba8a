package archive

import (
	"archive/tar"
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Extraction is a scoped extraction root produced by Extract. The caller
// must Close it when finished; Close removes the root and everything under
// it exactly once.
type Extraction struct {
	// Root is the canonical absolute path of the temporary directory the
	// archive was extracted into.
	Root string
	// Members holds the raw member names in archive order.
	Members []string

	closed bool
}

// Extract unpacks the archive at path into a fresh uniquely-named
// temporary directory and returns the resulting Extraction. Every member
// name and link target is validated against the canonical root before any
// bytes are written; a single unsafe member fails the whole extraction
// with ErrPathTraversal and leaves nothing behind. A path that is not a
// supported archive fails with ErrUnsupportedArchive before any temporary
// directory is created.
func Extract(path string) (*Extraction, error) {
	kind, err := Detect(path)
	if err != nil {
		return nil, err
	}
	if kind == KindNone {
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedArchive)
	}

	tmp, err := os.MkdirTemp("", "packscan-*")
	if err != nil {
		return nil, err
	}
	root, err := filepath.EvalSymlinks(tmp)
	if err != nil {
		if rmErr := removeTree(tmp); rmErr != nil {
			return nil, errors.Join(err, rmErr)
		}
		return nil, err
	}

	var members []string
	switch kind {
	case KindTar:
		members, err = extractTar(path, root)
	case KindZip:
		members, err = extractZip(path, root)
	}
	if err != nil {
		if rmErr := removeTree(root); rmErr != nil {
			return nil, errors.Join(err, rmErr)
		}
		return nil, err
	}
	return &Extraction{Root: root, Members: members}, nil
}

// Close removes the extraction root recursively. It is safe to call more
// than once; only the first call performs the removal.
func (e *Extraction) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	return removeTree(e.Root)
}

// removeTree removes an extraction root, tagging any failure with
// ErrCleanup. It returns nil on success so it can be joined after a
// primary error without masking it.
func removeTree(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return errors.Join(ErrCleanup, err)
	}
	return nil
}

// escapes reports whether a root-relative path climbs out of the root.
func escapes(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator))
}

// securePath joins a member name onto root and verifies the cleaned
// result stays inside it. Absolute member names are rejected outright.
func securePath(root, name string) (string, error) {
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("%s: %w", name, ErrPathTraversal)
	}
	dest := filepath.Join(root, filepath.FromSlash(name))
	rel, err := filepath.Rel(root, dest)
	if err != nil || escapes(rel) {
		return "", fmt.Errorf("%s: %w", name, ErrPathTraversal)
	}
	return dest, nil
}

// validateLinkTarget verifies a link target resolves inside root when
// interpreted relative to the link's own directory.
func validateLinkTarget(root, dest, target string) error {
	if filepath.IsAbs(target) {
		return fmt.Errorf("%s: %w", target, ErrPathTraversal)
	}
	resolved := filepath.Join(filepath.Dir(dest), filepath.FromSlash(target))
	rel, err := filepath.Rel(root, resolved)
	if err != nil || escapes(rel) {
		return fmt.Errorf("%s: %w", target, ErrPathTraversal)
	}
	return nil
}

// realParentInRoot resolves the deepest existing ancestor of dest through
// any symlinks and verifies it still resides inside root. This re-checks
// filesystem state at write time: an earlier member may have materialized
// a symlink somewhere along the destination path.
func realParentInRoot(root, dest string) error {
	dir := filepath.Dir(dest)
	for {
		resolved, err := filepath.EvalSymlinks(dir)
		if err == nil {
			rel, rerr := filepath.Rel(root, resolved)
			if rerr != nil || escapes(rel) {
				return fmt.Errorf("%s: %w", dest, ErrPathTraversal)
			}
			return nil
		}
		if !os.IsNotExist(err) {
			return err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil
		}
		dir = parent
	}
}

// extractTar validates all members of the tar stream at path, then writes
// them under root. Validation is strictly reject-before-write: any unsafe
// name or link target fails the extraction before the first byte lands on
// disk.
func extractTar(path, root string) ([]string, error) {
	members, err := validateTar(path, root)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dr, err := decompress(f)
	if err != nil {
		return nil, err
	}
	defer dr.Close()

	tr := tar.NewReader(dr)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil && !errors.Is(err, tar.ErrInsecurePath) {
			return nil, err
		}
		if hdr.Typeflag == tar.TypeXGlobalHeader {
			continue
		}
		if err := writeTarMember(root, hdr, tr); err != nil {
			return nil, err
		}
	}
	return members, nil
}

func validateTar(path, root string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dr, err := decompress(f)
	if err != nil {
		return nil, err
	}
	defer dr.Close()

	var members []string
	tr := tar.NewReader(dr)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil && !errors.Is(err, tar.ErrInsecurePath) {
			return nil, err
		}
		if hdr.Typeflag == tar.TypeXGlobalHeader {
			continue
		}
		dest, err := securePath(root, hdr.Name)
		if err != nil {
			return nil, err
		}
		switch hdr.Typeflag {
		case tar.TypeSymlink:
			if err := validateLinkTarget(root, dest, hdr.Linkname); err != nil {
				return nil, err
			}
		case tar.TypeLink:
			// Hard link targets are recorded relative to the archive
			// root, not the member's directory.
			if _, err := securePath(root, hdr.Linkname); err != nil {
				return nil, err
			}
		}
		members = append(members, hdr.Name)
	}
	return members, nil
}

func writeTarMember(root string, hdr *tar.Header, r io.Reader) error {
	dest, err := securePath(root, hdr.Name)
	if err != nil {
		return err
	}
	if err := realParentInRoot(root, dest); err != nil {
		return err
	}
	switch hdr.Typeflag {
	case tar.TypeDir:
		return os.MkdirAll(dest, 0o755)
	case tar.TypeReg, tar.TypeGNUSparse:
		return writeFile(dest, r, hdr.FileInfo().Mode().Perm())
	case tar.TypeSymlink:
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}
		os.Remove(dest)
		return os.Symlink(hdr.Linkname, dest)
	case tar.TypeLink:
		target, err := securePath(root, hdr.Linkname)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}
		os.Remove(dest)
		return os.Link(target, dest)
	}
	return fmt.Errorf("%s: %w (type %q)", hdr.Name, ErrUnsupportedMember, hdr.Typeflag)
}

// extractZip validates all members of the zip archive at path, then
// writes them under root.
func extractZip(path, root string) ([]string, error) {
	zr, err := openZip(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	members := make([]string, 0, len(zr.File))
	for _, zf := range zr.File {
		dest, err := securePath(root, zf.Name)
		if err != nil {
			return nil, err
		}
		if zf.Mode()&fs.ModeSymlink != 0 {
			target, err := readZipLink(zf)
			if err != nil {
				return nil, err
			}
			if err := validateLinkTarget(root, dest, target); err != nil {
				return nil, err
			}
		}
		members = append(members, zf.Name)
	}

	for _, zf := range zr.File {
		if err := writeZipMember(root, zf); err != nil {
			return nil, err
		}
	}
	return members, nil
}

// readZipLink returns a symlink member's target, which zip stores as the
// member's file content.
func readZipLink(zf *zip.File) (string, error) {
	rc, err := zf.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	target, err := io.ReadAll(io.LimitReader(rc, 4096))
	if err != nil {
		return "", err
	}
	return string(target), nil
}

func writeZipMember(root string, zf *zip.File) error {
	dest, err := securePath(root, zf.Name)
	if err != nil {
		return err
	}
	if err := realParentInRoot(root, dest); err != nil {
		return err
	}
	mode := zf.Mode()
	switch {
	case mode.IsDir() || strings.HasSuffix(zf.Name, "/"):
		return os.MkdirAll(dest, 0o755)
	case mode&fs.ModeSymlink != 0:
		target, err := readZipLink(zf)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}
		os.Remove(dest)
		return os.Symlink(target, dest)
	case mode.IsRegular():
		rc, err := zf.Open()
		if err != nil {
			return err
		}
		defer rc.Close()
		return writeFile(dest, rc, mode.Perm())
	}
	return fmt.Errorf("%s: %w", zf.Name, ErrUnsupportedMember)
}

func writeFile(dest string, r io.Reader, mode fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	os.Remove(dest)
	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
