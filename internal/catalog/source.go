// Package catalog flattens translation catalogs into dotted keys and merges
// the keys of several locale files into one catalog.
package catalog

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is the encoding of a catalog document.
type Format int

const (
	JSON Format = iota
	YAML
)

// Origin tells where a catalog document came from.
type Origin int

const (
	// FromFile marks a document read from a local locale file.
	FromFile Origin = iota
	// FromURL marks an inline document fetched from a remote URL.
	FromURL
)

func (o Origin) String() string {
	if o == FromURL {
		return "url"
	}
	return "file"
}

// Source is one catalog document handed to the flattener. File-backed and
// URL-backed documents differ only in Origin.
type Source struct {
	ID     string
	Data   []byte
	Format Format
	Origin Origin
}

// FormatFromPath picks the document format from a file extension. Anything
// that is not YAML is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

// ParseError reports a catalog document that could not be flattened.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("can't parse catalog file: %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
