// Package ident generates SPDX-style element identifiers and friendly
// names for scanned packages.
package ident

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]`)

// Generate returns a unique element identifier of the form
// SPDXRef-<category>-<name>-<hash4>-<rand8>. The name is sanitized and
// bounded; the hash contributes its first four characters when present,
// with a slice of the random component standing in otherwise. Uniqueness
// comes from the fresh random component on every call, so two calls with
// identical inputs still produce distinct identifiers.
func Generate(category, name, hash string) string {
	id := uuid.New().String()
	part := id[24:28]
	if len(hash) >= 4 {
		part = hash[:4]
	} else if hash != "" {
		part = hash
	}
	if name == "" {
		name = id[9:]
	}
	return strings.Join([]string{"SPDXRef", category, SanitizeName(name), part, id[:8]}, "-")
}

// SanitizeName reduces a name to its base element, replaces every
// non-alphanumeric character with an underscore, and caps the result at
// 20 characters.
func SanitizeName(name string) string {
	if name == "" {
		return ""
	}
	base := nonAlnum.ReplaceAllString(filepath.Base(name), "_")
	if len(base) > 20 {
		base = base[:20]
	}
	return base
}

// PackageName returns a package's friendly name: the file name with its
// extension stripped, stripping a second time for compound extensions
// like .tar.gz.
func PackageName(fileName string) string {
	name := trimExt(fileName)
	if strings.HasSuffix(name, ".tar") {
		name = strings.TrimSuffix(name, ".tar")
	}
	return name
}

// NamespaceSuffix returns a unique document namespace suffix derived from
// a document name.
func NamespaceSuffix(docName string) string {
	return "/" + docName + "-" + uuid.New().String()
}

func trimExt(name string) string {
	ext := filepath.Ext(name)
	if ext == name {
		// dotfile: the whole name is its own extension, keep it
		return name
	}
	return strings.TrimSuffix(name, ext)
}
