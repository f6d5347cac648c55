package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/rancher-sandbox/i18n-lint/internal/catalog"
	"github.com/rancher-sandbox/i18n-lint/internal/usage"
)

// Strings prints a list of strings in text or JSON format.
func Strings(w io.Writer, items []string, format, label string) error {
	if format == FormatJSON {
		if items == nil {
			items = []string{}
		}
		return encode(w, items)
	}

	if len(items) == 0 {
		fmt.Fprintf(w, "No %s found.\n", label)
		return nil
	}

	fmt.Fprintf(w, "Found %d %s:\n", len(items), label)
	for _, item := range items {
		fmt.Fprintf(w, "  %s\n", item)
	}
	return nil
}

// Languages prints the locale file summaries.
func Languages(w io.Writer, langs []catalog.Language, format string) error {
	if format == FormatJSON {
		if langs == nil {
			langs = []catalog.Language{}
		}
		return encode(w, langs)
	}

	fmt.Fprintf(w, "Found %s:\n", plural(len(langs), "language"))
	for _, l := range langs {
		fmt.Fprintf(w, "  %-10s %5d keys  %4d empty  %s\n", l.Name, l.Keys, l.Empty, keyColor.Sprint(l.File))
	}
	return nil
}

// Keys prints every key with the languages defining it. With missingOnly
// only keys absent from at least one locale file are listed.
func Keys(w io.Writer, keys []catalog.Presence, format string, missingOnly bool) error {
	var selected []catalog.Presence
	for _, k := range keys {
		if !missingOnly || len(k.Missing) > 0 {
			selected = append(selected, k)
		}
	}

	if format == FormatJSON {
		if selected == nil {
			selected = []catalog.Presence{}
		}
		return encode(w, selected)
	}

	label := "keys"
	if missingOnly {
		label = "keys missing from a locale"
	}
	if len(selected) == 0 {
		fmt.Fprintf(w, "No %s found.\n", label)
		return nil
	}
	fmt.Fprintf(w, "Found %d %s:\n", len(selected), label)
	for _, k := range selected {
		line := fmt.Sprintf("  %s  (%d)", keyColor.Sprint(k.Name), len(k.Languages))
		if len(k.Missing) > 0 {
			line += warningColor.Sprint("  missing: " + strings.Join(k.Missing, ", "))
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

type referenceEntry struct {
	Key     string            `json:"key"`
	Dynamic bool              `json:"dynamic,omitempty"`
	Refs    []usage.Reference `json:"refs"`
}

// References prints where each key is used (file:line).
func References(w io.Writer, usages []*usage.Usage, format string) error {
	if format == FormatJSON {
		entries := make([]referenceEntry, 0, len(usages))
		for _, u := range usages {
			entries = append(entries, referenceEntry{Key: u.Key, Dynamic: u.Dynamic, Refs: u.Refs})
		}
		return encode(w, entries)
	}

	for _, u := range usages {
		fmt.Fprintf(w, "%s:\n", u.Key)
		for _, loc := range u.Refs {
			fmt.Fprintf(w, "  %s:%d\n", loc.File, loc.Line)
		}
	}
	return nil
}
