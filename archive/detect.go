package archive

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"os"
)

// Kind is a container format recognized by content sniffing.
type Kind string

const (
	KindTar  Kind = "tar"
	KindZip  Kind = "zip"
	KindNone Kind = "none"
)

// Detect classifies the file at path by its content. Tar takes precedence
// over zip when a file could parse as both. File extensions are never
// consulted. Errors opening or reading the file propagate; a readable file
// that is simply not an archive yields KindNone with no error.
func Detect(path string) (Kind, error) {
	isTar, err := sniffTar(path)
	if err != nil {
		return KindNone, err
	}
	if isTar {
		return KindTar, nil
	}
	isZip, err := sniffZip(path)
	if err != nil {
		return KindNone, err
	}
	if isZip {
		return KindZip, nil
	}
	return KindNone, nil
}

// Members returns the detected kind of the archive at path along with the
// ordered member names exactly as recorded inside it. The listing is raw
// metadata: names are not validated for path safety here, only during
// extraction. A non-archive yields KindNone and a nil listing.
func Members(path string) (Kind, []string, error) {
	kind, err := Detect(path)
	if err != nil || kind == KindNone {
		return KindNone, nil, err
	}
	var names []string
	switch kind {
	case KindTar:
		names, err = tarMembers(path)
	case KindZip:
		names, err = zipMembers(path)
	}
	if err != nil {
		return kind, nil, err
	}
	return kind, names, nil
}

// sniffTar reports whether path holds a tar stream, looking through any
// supported compression layer. A valid first header is required, so an
// unreadable compression stream or garbage input reports false. A stream
// opening with an end-of-archive zero block is a tar with no members.
func sniffTar(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	dr, err := decompress(f)
	if err != nil {
		return false, nil
	}
	defer dr.Close()

	var first, zero [512]byte
	if _, err := io.ReadFull(dr, first[:]); err != nil {
		return false, nil
	}
	if first == zero {
		return true, nil
	}
	tr := tar.NewReader(io.MultiReader(bytes.NewReader(first[:]), dr))
	if _, err := tr.Next(); err != nil && !errors.Is(err, tar.ErrInsecurePath) {
		return false, nil
	}
	return true, nil
}

func sniffZip(path string) (bool, error) {
	r, err := zip.OpenReader(path)
	if r != nil {
		r.Close()
	}
	switch {
	case err == nil || errors.Is(err, zip.ErrInsecurePath):
		return true, nil
	case errors.Is(err, zip.ErrFormat):
		return false, nil
	}
	return false, err
}

// openZip opens a zip archive, tolerating members with non-local names.
// Name safety is enforced by the extractor, not the opener.
func openZip(path string) (*zip.ReadCloser, error) {
	r, err := zip.OpenReader(path)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		if r != nil {
			r.Close()
		}
		return nil, err
	}
	return r, nil
}

func tarMembers(path string) ([]string, error) {
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

	var names []string
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
		names = append(names, hdr.Name)
	}
	return names, nil
}

func zipMembers(path string) ([]string, error) {
	zr, err := openZip(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	names := make([]string, 0, len(zr.File))
	for _, zf := range zr.File {
		names = append(names, zf.Name)
	}
	return names, nil
}
