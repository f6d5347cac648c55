package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/rancher-sandbox/i18n-lint/internal/lint"
	"github.com/rancher-sandbox/i18n-lint/internal/rules"
)

const (
	toolName = "i18n-lint"
	toolURI  = "https://github.com/rancher-sandbox/i18n-lint"
)

var ruleDescriptions = map[lint.Class]string{
	lint.UndefinedOnView: "Translation key used in a view is not defined in any locale file.",
	lint.Zombie:          "Translation key is defined but never used.",
	lint.Empty:           "Translation key has an empty value.",
	lint.Misprint:        "Translation key looks like a misspelling of another key.",
}

// SARIF writes res as a SARIF 2.1.0 log with one rule per discrepancy class.
func SARIF(w io.Writer, res *lint.Result) error {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(toolName, toolURI)
	for _, c := range lint.Classes {
		run.AddRule(string(c)).
			WithDescription(ruleDescriptions[c]).
			WithDefaultConfiguration(&sarif.ReportingConfiguration{
				Level: sarifLevel(classSeverity(res, c)),
			})
	}

	for _, d := range res.Discrepancies() {
		result := sarif.NewRuleResult(string(d.Class)).
			WithMessage(sarif.NewTextMessage(message(d))).
			WithLevel(sarifLevel(d.Severity)).
			WithLocations(locations(d))
		run.AddResult(result)
	}
	report.AddRun(run)
	return report.PrettyWrite(w)
}

func sarifLevel(s rules.Severity) string {
	switch s {
	case rules.Error:
		return "error"
	case rules.Warning:
		return "warning"
	default:
		return "none"
	}
}

func message(d lint.Discrepancy) string {
	switch d.Class {
	case lint.UndefinedOnView:
		return fmt.Sprintf("Key %q is not defined in any locale file.", d.Key)
	case lint.Zombie:
		return fmt.Sprintf("Key %q is never used.", d.Key)
	case lint.Empty:
		return fmt.Sprintf("Key %q is empty in %s.", d.Key, strings.Join(d.Files, ", "))
	case lint.Misprint:
		return fmt.Sprintf("Key %q may be a misprint of %s.", d.Key, strings.Join(d.Suggestions, ", "))
	}
	return d.Key
}

func locations(d lint.Discrepancy) []*sarif.Location {
	var locs []*sarif.Location
	if len(d.Refs) > 0 {
		for _, r := range d.Refs {
			locs = append(locs, sarif.NewLocation().WithPhysicalLocation(
				sarif.NewPhysicalLocation().
					WithArtifactLocation(sarif.NewArtifactLocation().WithUri(r.File)).
					WithRegion(sarif.NewRegion().WithStartLine(r.Line)),
			))
		}
		return locs
	}
	for _, f := range d.Files {
		locs = append(locs, sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(f)),
		))
	}
	return locs
}
