package lint

import "github.com/rancher-sandbox/i18n-lint/internal/rules"

// Stats describes the inputs of a lint run.
type Stats struct {
	Views     int `json:"views"`
	Languages int `json:"languages"`
	Keys      int `json:"keys"`
	Usages    int `json:"usages"`
}

// Result is the immutable outcome of a lint run. Every query is derived
// from the discrepancy list.
type Result struct {
	discrepancies []Discrepancy
	maxWarning    int
	stats         Stats
}

// NewResult builds a result judged against the maxWarning budget.
func NewResult(discrepancies []Discrepancy, maxWarning int, stats Stats) *Result {
	d := make([]Discrepancy, len(discrepancies))
	copy(d, discrepancies)
	return &Result{discrepancies: d, maxWarning: maxWarning, stats: stats}
}

// Discrepancies returns every discrepancy in classification order.
func (r *Result) Discrepancies() []Discrepancy {
	out := make([]Discrepancy, len(r.discrepancies))
	copy(out, r.discrepancies)
	return out
}

// ByClass returns the discrepancies of class c.
func (r *Result) ByClass(c Class) []Discrepancy {
	var out []Discrepancy
	for _, d := range r.discrepancies {
		if d.Class == c {
			out = append(out, d)
		}
	}
	return out
}

// Keys returns the keys of the discrepancies of class c.
func (r *Result) Keys(c Class) []string {
	var keys []string
	for _, d := range r.discrepancies {
		if d.Class == c {
			keys = append(keys, d.Key)
		}
	}
	return keys
}

// Has reports whether any discrepancy of class c was found.
func (r *Result) Has(c Class) bool {
	return r.Count(c) > 0
}

// Count returns the number of discrepancies of class c.
func (r *Result) Count(c Class) int {
	n := 0
	for _, d := range r.discrepancies {
		if d.Class == c {
			n++
		}
	}
	return n
}

func (r *Result) countSeverity(s rules.Severity) int {
	n := 0
	for _, d := range r.discrepancies {
		if d.Severity == s {
			n++
		}
	}
	return n
}

// Errors returns the number of error-severity discrepancies.
func (r *Result) Errors() int { return r.countSeverity(rules.Error) }

// Warnings returns the number of warning-severity discrepancies.
func (r *Result) Warnings() int { return r.countSeverity(rules.Warning) }

// MaxWarning is the warning budget the result was judged against.
func (r *Result) MaxWarning() int { return r.maxWarning }

// Stats returns the input counts of the run.
func (r *Result) Stats() Stats { return r.stats }

// IsFullOfWarning reports whether warnings and errors together exceed the
// budget. A budget of zero fails on the first one.
func (r *Result) IsFullOfWarning() bool {
	return r.Errors()+r.Warnings() > r.maxWarning
}

// HasErrors reports whether any error-severity discrepancy was found.
func (r *Result) HasErrors() bool { return r.Errors() > 0 }

// Failed reports whether the run should fail a build.
func (r *Result) Failed() bool {
	return r.HasErrors() || r.IsFullOfWarning()
}
