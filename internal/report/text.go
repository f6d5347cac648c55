package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/rancher-sandbox/i18n-lint/internal/lint"
	"github.com/rancher-sandbox/i18n-lint/internal/rules"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	okColor      = color.New(color.FgGreen)
	keyColor     = color.New(color.FgCyan)
)

func severityColor(s rules.Severity) *color.Color {
	if s == rules.Error {
		return errorColor
	}
	return warningColor
}

// Text writes a human readable report: the discrepancies grouped by class,
// then one summary line per class and the verdict.
func Text(w io.Writer, res *lint.Result) error {
	for _, c := range lint.Classes {
		items := res.ByClass(c)
		if len(items) == 0 {
			continue
		}
		fmt.Fprintf(w, "Found %d %s:\n", len(items), c.Title())
		for _, d := range items {
			fmt.Fprintf(w, "  %s  %s\n", keyColor.Sprint(d.Key), severityColor(d.Severity).Sprintf("[%s]", d.Severity))
			for _, line := range details(d) {
				fmt.Fprintf(w, "      %s\n", line)
			}
		}
		fmt.Fprintln(w)
	}

	for _, c := range lint.Classes {
		n := res.Count(c)
		status := okColor.Sprint("OK")
		if n > 0 {
			sev := classSeverity(res, c)
			status = severityColor(sev).Sprint(strings.ToUpper(string(sev)))
		}
		fmt.Fprintf(w, "  %-30s %3d  %s\n", c.Title()+":", n, status)
	}

	summary := fmt.Sprintf("%s, %s (max warning: %d).",
		plural(res.Errors(), "error"), plural(res.Warnings(), "warning"), res.MaxWarning())
	if !res.Failed() {
		fmt.Fprintln(w, okColor.Sprint("All checks passed: ")+summary)
		return nil
	}
	fmt.Fprintln(w, errorColor.Sprint("Checks failed: ")+summary)
	return nil
}

func details(d lint.Discrepancy) []string {
	var lines []string
	switch d.Class {
	case lint.UndefinedOnView:
		if len(d.Refs) > 0 {
			for _, r := range d.Refs {
				lines = append(lines, fmt.Sprintf("%s:%d", r.File, r.Line))
			}
			return lines
		}
		lines = append(lines, d.Files...)
	case lint.Empty:
		lines = append(lines, "empty in: "+strings.Join(d.Files, ", "))
		for i, f := range d.Context {
			lines = append(lines, fmt.Sprintf("%s: %q", f, d.Values[i]))
		}
	case lint.Misprint:
		lines = append(lines, "defined in: "+strings.Join(d.Files, ", "))
		if len(d.Context) > 0 {
			lines = append(lines, "missing in: "+strings.Join(d.Context, ", "))
		}
		lines = append(lines, "did you mean: "+strings.Join(d.Suggestions, ", "))
	default:
		lines = append(lines, strings.Join(d.Files, ", "))
	}
	return lines
}
