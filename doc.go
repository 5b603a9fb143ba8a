// Package main provides the packscan command-line interface.
//
// packscan fingerprints software packages for provenance records. It hashes
// every file in a package, folds the digests into a single verification code,
// and stores the results as JSON documents. Packages may be plain directories
// or tar and zip archives, which are extracted into a scoped temporary
// directory with path traversal protection before scanning.
//
// The main binary supports multiple subcommands:
//   - scan: Fingerprint packages and record scan documents
//   - inspect: Detect archive formats and list raw member names
//   - extract: Safely extract an archive to a destination directory
//   - classify: Classify files as source, binary, or archive by content
//   - list, show, verify: Browse and check stored documents
//   - seed: Generate a sample package tree for testing
//   - version: Show detailed build information
package main
