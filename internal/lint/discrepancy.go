// Package lint cross-references translation key usages with the merged
// locale catalog and classifies what does not line up.
package lint

import (
	"github.com/rancher-sandbox/i18n-lint/internal/rules"
	"github.com/rancher-sandbox/i18n-lint/internal/usage"
)

// Class is the kind of a discrepancy. Its value is the name of the rule
// that sets its severity.
type Class string

const (
	// UndefinedOnView is a key used in a view but missing from the catalog.
	UndefinedOnView Class = "keysOnViews"
	// Zombie is a catalog key no view references.
	Zombie Class = "zombieKeys"
	// Empty is a catalog key with an empty value in some locale file.
	Empty Class = "emptyKeys"
	// Misprint is a catalog key that looks like a typo of another key.
	Misprint Class = "misprintKeys"
)

// Classes lists every class in report order.
var Classes = []Class{UndefinedOnView, Zombie, Empty, Misprint}

// Title is a short human readable label.
func (c Class) Title() string {
	switch c {
	case UndefinedOnView:
		return "undefined keys on views"
	case Zombie:
		return "zombie keys"
	case Empty:
		return "empty keys"
	case Misprint:
		return "misprint keys"
	}
	return string(c)
}

func (c Class) severity(cfg rules.Config) rules.Severity {
	switch c {
	case UndefinedOnView:
		return cfg.KeysOnViews
	case Zombie:
		return cfg.ZombieKeys
	case Empty:
		return cfg.EmptyKeys
	case Misprint:
		return cfg.MisprintKeys
	}
	return rules.Disable
}

// Discrepancy is one classified finding.
//
// Files is the evidence: view files for UndefinedOnView, defining locale
// files for Zombie and Misprint, the locale files holding an empty value for
// Empty. Context lists related files: the locale files where an Empty key
// has a value, or where a Misprint key is missing. Suggestions holds the
// likely intended keys of a Misprint. Values holds the translations of an
// Empty key in the Context files, in the same order.
type Discrepancy struct {
	Key         string            `json:"key"`
	Class       Class             `json:"class"`
	Severity    rules.Severity    `json:"severity"`
	Files       []string          `json:"files"`
	Context     []string          `json:"context,omitempty"`
	Suggestions []string          `json:"suggestions,omitempty"`
	Values      []string          `json:"values,omitempty"`
	Refs        []usage.Reference `json:"refs,omitempty"`
}
