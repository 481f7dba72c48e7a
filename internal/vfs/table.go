// Package vfs implements module resolution and loading over an in-memory
// file table, exposed to esbuild through a source plugin. No file in the
// table is ever read from a real filesystem.
package vfs

import (
	"path"
	"strings"
)

// EntryID is the reserved module id of the entry document. It is a synthetic
// sentinel, distinct from any real file path, so resolution can special-case
// the entry before any path arithmetic happens.
const EntryID = "__mdxforge_entry__.mdx"

// DefaultExtensions is the candidate order tried when an import specifier
// resolves to a path with no extension. Earlier entries win when sibling
// files share a base name, so ./x resolves to x.ts over x.js.
var DefaultExtensions = []string{".tsx", ".ts", ".jsx", ".js", ".mdx", ".json"}

// Table is the virtual module table for one bundling pass. It is built once
// per call and read-only afterwards; resolve and load are invoked
// synchronously by the bundler for the duration of that call.
type Table struct {
	cwd        string
	entryPath  string
	entryBody  string
	files      map[string]string
	extensions []string
}

// New builds a table from caller-relative file paths resolved against cwd.
// entryPath is the advisory path of the entry document, used only to derive
// the base directory for imports originating from the entry.
func New(cwd, entryPath, entryBody string, files map[string]string, extensions []string) *Table {
	cwd = normalize(cwd)
	if entryPath == "" {
		entryPath = EntryID
	}
	if !path.IsAbs(entryPath) {
		entryPath = path.Join(cwd, entryPath)
	}
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	resolved := make(map[string]string, len(files))
	for p, src := range files {
		p = normalize(p)
		if !path.IsAbs(p) {
			p = path.Join(cwd, p)
		}
		resolved[path.Clean(p)] = src
	}

	return &Table{
		cwd:        cwd,
		entryPath:  path.Clean(entryPath),
		entryBody:  entryBody,
		files:      resolved,
		extensions: extensions,
	}
}

// Resolve maps an import specifier to a canonical module id, or returns the
// empty string when the table does not handle the specifier and resolution
// should fall through to the bundler.
func (t *Table) Resolve(specifier, importer string) string {
	if specifier == EntryID || specifier == "./"+EntryID {
		return EntryID
	}

	base := t.cwd
	switch {
	case importer == "":
	case importer == EntryID:
		base = path.Dir(t.entryPath)
	default:
		base = path.Dir(importer)
	}

	resolved := specifier
	if path.IsAbs(specifier) {
		resolved = path.Clean(specifier)
	} else {
		resolved = path.Join(base, specifier)
	}

	if _, ok := t.files[resolved]; ok {
		return resolved
	}
	if path.Ext(resolved) == "" {
		for _, ext := range t.extensions {
			if _, ok := t.files[resolved+ext]; ok {
				return resolved + ext
			}
		}
	}
	return ""
}

// Load returns the source text for a canonical module id.
func (t *Table) Load(id string) (string, bool) {
	if id == EntryID {
		return t.entryBody, true
	}
	src, ok := t.files[id]
	return src, ok
}

// EntryPath returns the synthetic absolute path of the entry document.
func (t *Table) EntryPath() string {
	return t.entryPath
}

func normalize(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
