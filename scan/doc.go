// Package scan provides directory fingerprinting and package scanning.
//
// This package contains the building blocks for producing package
// verification codes over directory trees, plus the orchestration that
// applies them to whole packages (plain directories or archive files).
//
// Key Components:
//
// Content Hashing:
//   - SHA-256 based file hashing with streaming digests
//   - Optional LRU caching keyed by path, size, and modification time
//   - Concurrent hashing pools for large trees
//
// Fingerprinting:
//   - Verification codes: SHA-1 over the sorted set of content hashes,
//     with support for excluding specific hashes from the code
//   - Path codes: the same aggregation applied to hashed relative paths,
//     identifying a tree's shape independent of its location on disk
//   - Full per-file hash maps for downstream consumers
//
// Scanning:
//   - Scanner ties fingerprinting to archive detection and extraction,
//     producing a Result document for each scanned package
//   - Results carry file records, member listings, codes, and metadata
//     suitable for JSON persistence
//
// All fingerprinting operations are deterministic: scanning an unmodified
// tree twice yields bit-identical codes. Any unreadable file fails the
// whole operation rather than degrading the fingerprint silently.
package scan
