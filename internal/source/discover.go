// Package source finds, reads and fetches the files handed to the linter.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar"
)

var (
	// ViewExtensions are scanned when a view pattern names a directory.
	ViewExtensions   = []string{".html", ".htm", ".ts", ".tsx", ".js", ".jsx", ".vue"}
	// LocaleExtensions are scanned when a locale pattern names a directory.
	LocaleExtensions = []string{".json", ".yaml", ".yml"}
)

// skippedDirs are never descended into when walking a directory.
var skippedDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"vendor":       true,
}

// Expand resolves pattern to a sorted list of absolute file paths. A
// directory is walked for files with one of exts; anything else is a
// doublestar glob such as "src/**/*.{html,ts}". Paths matching an ignore
// entry are dropped.
func Expand(pattern string, exts []string, ignore []string) ([]string, error) {
	abs, err := filepath.Abs(pattern)
	if err != nil {
		return nil, err
	}

	var files []string
	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		files, err = walk(abs, exts)
		if err != nil {
			return nil, err
		}
	} else {
		matches, err := doublestar.Glob(abs)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if info, err := os.Stat(m); err == nil && !info.IsDir() {
				files = append(files, m)
			}
		}
	}

	var kept []string
	for _, f := range files {
		if !ignored(f, ignore) {
			kept = append(kept, f)
		}
	}
	sort.Strings(kept)
	return kept, nil
}

// walk returns the files below root with one of the given extensions.
func walk(root string, exts []string) ([]string, error) {
	var files []string
	extSet := make(map[string]bool, len(exts))
	for _, e := range exts {
		extSet[e] = true
	}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && skippedDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}
		if extSet[strings.ToLower(filepath.Ext(name))] {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// ignored reports whether path equals, lies below, or matches as a glob any
// of the ignore entries.
func ignored(path string, ignore []string) bool {
	for _, ig := range ignore {
		if path == ig || strings.HasPrefix(path, ig+string(filepath.Separator)) {
			return true
		}
		if ok, err := doublestar.PathMatch(ig, path); err == nil && ok {
			return true
		}
	}
	return false
}

// ParseIgnore splits a comma-separated ignore list and resolves every entry
// against base. Blank entries and the placeholders null, undefined, 0 and
// '' are dropped.
func ParseIgnore(list, base string) []string {
	var out []string
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		switch part {
		case "", "null", "undefined", "0", "''", `""`:
			continue
		}
		if !filepath.IsAbs(part) {
			part = filepath.Join(base, part)
		}
		out = append(out, filepath.Clean(part))
	}
	return out
}

// RepoRoot walks up from dir looking for package.json and returns the first
// directory holding one.
func RepoRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "package.json")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find repository root (no package.json found)")
		}
		dir = parent
	}
}
