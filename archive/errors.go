package archive

import "errors"

// Sentinel errors for package archive.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Detection errors
	ErrUnsupportedArchive = errors.New("not a supported archive format")

	// Extraction errors
	ErrPathTraversal     = errors.New("archive member escapes extraction root")
	ErrUnsupportedMember = errors.New("unsupported archive member type")
	ErrCleanup           = errors.New("failed to remove extraction root")
)
