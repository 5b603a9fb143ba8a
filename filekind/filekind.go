// Package filekind classifies files into coarse SPDX file types by
// sniffing their content.
package filekind

import (
	"github.com/gabriel-vasile/mimetype"
)

// Kind is a coarse file classification.
type Kind string

const (
	Source  Kind = "SOURCE"
	Binary  Kind = "BINARY"
	Archive Kind = "ARCHIVE"
	Other   Kind = "OTHER"
)

// Classification is by detected MIME type. Source wins over Binary, which
// wins over Archive, so a shell script classifies as source even though it
// is executable, and an ar archive as binary rather than archive.
var (
	sourceTypes = []string{
		"text/x-shellscript",
		"text/x-sh",
		"text/x-python",
		"text/x-perl",
		"text/x-php",
		"text/x-ruby",
		"text/x-lua",
		"text/x-tcl",
		"application/javascript",
		"text/javascript",
		"text/html",
		"text/xml",
		"application/xml",
	}
	binaryTypes = []string{
		"application/x-elf",
		"application/x-executable",
		"application/x-sharedlib",
		"application/x-object",
		"application/x-coredump",
		"application/x-mach-binary",
		"application/vnd.microsoft.portable-executable",
		"application/x-archive", // ar archives hold object code
		"application/wasm",
	}
	archiveTypes = []string{
		"application/zip",
		"application/gzip",
		"application/x-tar",
		"application/x-bzip2",
		"application/x-xz",
		"application/zstd",
		"application/x-7z-compressed",
		"application/x-rar-compressed",
		"application/vnd.rar",
		"application/x-cpio",
		"application/x-iso9660-image",
		"application/vnd.debian.binary-package",
		"application/x-rpm",
	}
)

// Detect classifies the file at path by sniffing its content. Plain text
// and anything unrecognized classify as Other.
func Detect(path string) (Kind, error) {
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return Other, err
	}
	return fromMIME(m), nil
}

func fromMIME(m *mimetype.MIME) Kind {
	for _, t := range sourceTypes {
		if m.Is(t) {
			return Source
		}
	}
	for _, t := range binaryTypes {
		if m.Is(t) {
			return Binary
		}
	}
	for _, t := range archiveTypes {
		if m.Is(t) {
			return Archive
		}
	}
	return Other
}
