// Package archive provides container detection and safe extraction for
// package archives.
//
// Detection sniffs content, never file extensions: a tar stream (behind
// gzip, bzip2, xz, or zstd compression, or uncompressed) is recognized by
// decompressing and reading a valid header, and a zip file by its central
// directory. Member listings are returned exactly as recorded in the
// archive, unvalidated, for display and bookkeeping.
//
// Extraction is the security boundary. Every member name and link target
// is validated against the canonical extraction root before any bytes are
// written, re-validated against the resolved filesystem state at write
// time, and the extraction root is a scoped resource that is removed
// exactly once whether extraction succeeds or fails.
package archive
