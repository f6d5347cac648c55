package lint

import (
	"github.com/rancher-sandbox/i18n-lint/internal/catalog"
	"github.com/rancher-sandbox/i18n-lint/internal/misprint"
	"github.com/rancher-sandbox/i18n-lint/internal/rules"
	"github.com/rancher-sandbox/i18n-lint/internal/usage"
)

type classifier struct {
	cfg             rules.Config
	ignored         *keyMatcher
	ignoredMisprint *keyMatcher
}

// classify produces the discrepancies of every enabled class. Catalog keys
// are visited in catalog order, each yielding Zombie, Empty and Misprint in
// that order; UndefinedOnView follows in usage order.
func (c *classifier) classify(cat *catalog.Catalog, usages []*usage.Usage) []Discrepancy {
	keys := cat.Keys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.Name
	}
	resolver := usage.NewResolver(names, c.cfg.DeepSearch.On())

	referenced := make(map[string]struct{})
	var undefined []*usage.Usage
	for _, u := range usages {
		res := resolver.Resolve(u)
		if res.Skipped {
			continue
		}
		if len(res.Keys) == 0 {
			undefined = append(undefined, u)
			continue
		}
		for _, k := range res.Keys {
			referenced[k] = struct{}{}
		}
	}

	misprints := c.misprints(keys, len(cat.Files()))

	var out []Discrepancy
	for _, k := range keys {
		if c.ignored.Match(k.Name) {
			continue
		}
		if sev := Zombie.severity(c.cfg); sev.Enabled() {
			if _, ok := referenced[k.Name]; !ok {
				out = append(out, Discrepancy{Key: k.Name, Class: Zombie, Severity: sev, Files: k.Files()})
			}
		}
		if sev := Empty.severity(c.cfg); sev.Enabled() {
			if d, ok := emptyDiscrepancy(k, sev); ok {
				out = append(out, d)
			}
		}
		if f, ok := misprints[k.Name]; ok {
			out = append(out, misprintDiscrepancy(k, f, cat.Files(), Misprint.severity(c.cfg)))
		}
	}

	if sev := UndefinedOnView.severity(c.cfg); sev.Enabled() {
		for _, u := range undefined {
			if c.ignored.Match(u.Key) {
				continue
			}
			out = append(out, Discrepancy{
				Key:      u.Key,
				Class:    UndefinedOnView,
				Severity: sev,
				Files:    u.Files,
				Refs:     u.Refs,
			})
		}
	}
	return out
}

func (c *classifier) misprints(keys []*catalog.Key, totalFiles int) map[string]misprint.Finding {
	if !Misprint.severity(c.cfg).Enabled() {
		return nil
	}
	var candidates []misprint.Candidate
	for _, k := range keys {
		if c.ignored.Match(k.Name) || c.ignoredMisprint.Match(k.Name) {
			continue
		}
		candidates = append(candidates, misprint.Candidate{Name: k.Name, Files: k.Files()})
	}
	findings := misprint.Detect(candidates, totalFiles, c.cfg.MisprintCoefficient)
	byKey := make(map[string]misprint.Finding, len(findings))
	for _, f := range findings {
		byKey[f.Key] = f
	}
	return byKey
}

func emptyDiscrepancy(k *catalog.Key, sev rules.Severity) (Discrepancy, bool) {
	empty := k.EmptyIn()
	if len(empty) == 0 {
		return Discrepancy{}, false
	}
	d := Discrepancy{Key: k.Name, Class: Empty, Severity: sev, Files: empty}
	for _, t := range k.FilledIn() {
		d.Context = append(d.Context, t.File)
		d.Values = append(d.Values, t.Value)
	}
	return d, true
}

func misprintDiscrepancy(k *catalog.Key, f misprint.Finding, files []string, sev rules.Severity) Discrepancy {
	d := Discrepancy{Key: k.Name, Class: Misprint, Severity: sev, Files: k.Files()}
	for _, file := range files {
		if _, ok := k.Value(file); !ok {
			d.Context = append(d.Context, file)
		}
	}
	for _, s := range f.Suggestions {
		d.Suggestions = append(d.Suggestions, s.Key)
	}
	return d
}
