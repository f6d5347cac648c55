package lint

import (
	"strings"

	"github.com/gobwas/glob"

	"github.com/rancher-sandbox/i18n-lint/internal/rules"
)

// keyMatcher matches keys against exact names and dotted wildcard patterns.
// With '.' as separator "admin.*" matches "admin.title" but not
// "admin.menu.title"; "admin.**" matches both.
type keyMatcher struct {
	exact map[string]struct{}
	globs []glob.Glob
}

func newKeyMatcher(field string, patterns []string) (*keyMatcher, error) {
	m := &keyMatcher{exact: make(map[string]struct{})}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.ContainsAny(p, "*?[{") {
			m.exact[p] = struct{}{}
			continue
		}
		g, err := glob.Compile(p, '.')
		if err != nil {
			return nil, &rules.ValidationError{Field: field, Value: p, Reason: err.Error()}
		}
		m.globs = append(m.globs, g)
	}
	return m, nil
}

func (m *keyMatcher) Match(key string) bool {
	if _, ok := m.exact[key]; ok {
		return true
	}
	for _, g := range m.globs {
		if g.Match(key) {
			return true
		}
	}
	return false
}
