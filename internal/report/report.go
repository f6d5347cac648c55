// Package report renders lint results and introspection listings.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rancher-sandbox/i18n-lint/internal/lint"
	"github.com/rancher-sandbox/i18n-lint/internal/rules"
)

const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatSARIF = "sarif"
)

// Write renders res in the given format.
func Write(w io.Writer, format string, res *lint.Result) error {
	switch format {
	case FormatText, "":
		return Text(w, res)
	case FormatJSON:
		return JSON(w, res)
	case FormatSARIF:
		return SARIF(w, res)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

type jsonReport struct {
	Discrepancies []lint.Discrepancy `json:"discrepancies"`
	Counts        map[lint.Class]int `json:"counts"`
	Errors        int                `json:"errors"`
	Warnings      int                `json:"warnings"`
	MaxWarning    int                `json:"maxWarning"`
	FullOfWarning bool               `json:"fullOfWarning"`
	Failed        bool               `json:"failed"`
	Stats         lint.Stats         `json:"stats"`
}

// JSON writes res as an indented JSON document.
func JSON(w io.Writer, res *lint.Result) error {
	r := jsonReport{
		Discrepancies: res.Discrepancies(),
		Counts:        make(map[lint.Class]int, len(lint.Classes)),
		Errors:        res.Errors(),
		Warnings:      res.Warnings(),
		MaxWarning:    res.MaxWarning(),
		FullOfWarning: res.IsFullOfWarning(),
		Failed:        res.Failed(),
		Stats:         res.Stats(),
	}
	if r.Discrepancies == nil {
		r.Discrepancies = []lint.Discrepancy{}
	}
	for _, c := range lint.Classes {
		r.Counts[c] = res.Count(c)
	}
	return encode(w, r)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// classSeverity returns the severity the discrepancies of c were given, or
// Disable when there are none.
func classSeverity(res *lint.Result, c lint.Class) rules.Severity {
	for _, d := range res.ByClass(c) {
		return d.Severity
	}
	return rules.Disable
}
