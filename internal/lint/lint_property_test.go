package lint

import (
	"context"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/rancher-sandbox/i18n-lint/internal/catalog"
	"github.com/rancher-sandbox/i18n-lint/internal/rules"
	"github.com/rancher-sandbox/i18n-lint/internal/usage"
)

// locale builds a two-level JSON document from keys of the form "x.y".
func locale(id string, keys []string) catalog.Source {
	doc := map[string]map[string]string{}
	for _, k := range keys {
		parts := strings.SplitN(k, ".", 2)
		if doc[parts[0]] == nil {
			doc[parts[0]] = map[string]string{}
		}
		doc[parts[0]][parts[1]] = k
	}
	data, _ := json.Marshal(doc)
	return catalog.Source{ID: id, Data: data, Format: catalog.JSON}
}

func viewOf(path string, keys []string) usage.File {
	var b strings.Builder
	for _, k := range keys {
		b.WriteString("t('" + k + "')\n")
	}
	return usage.File{Path: path, Content: b.String()}
}

func TestProperty_LintLaws(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	keyGen := gen.RegexMatch(`^[ab]\.[abc]{1,2}$`)
	usedGen := gen.RegexMatch(`^[abc](\.[abc]{1,2})?$`)

	lintTwice := func(en, de, used []string, deep bool) (*Result, *Result, bool) {
		cfg := rules.DefaultConfig()
		cfg.MisprintKeys = rules.Warning
		cfg.MisprintCoefficient = 0.5
		if deep {
			cfg.DeepSearch = rules.Enabled
		}
		l, err := New(
			[]usage.File{viewOf("view.ts", used)},
			[]catalog.Source{locale("en.json", en), locale("de.json", de)},
			cfg, WithConcurrency(2))
		if err != nil {
			return nil, nil, false
		}
		first, err := l.Lint(context.Background())
		if err != nil {
			return nil, nil, false
		}
		second, err := l.Lint(context.Background())
		if err != nil {
			return nil, nil, false
		}
		return first, second, true
	}

	properties.Property("lint is idempotent", prop.ForAll(
		func(en, de, used []string, deep bool) bool {
			first, second, ok := lintTwice(en, de, used, deep)
			if !ok {
				return false
			}
			return reflect.DeepEqual(first.Discrepancies(), second.Discrepancies()) &&
				first.IsFullOfWarning() == second.IsFullOfWarning()
		},
		gen.SliceOf(keyGen), gen.SliceOf(keyGen), gen.SliceOf(usedGen), gen.Bool(),
	))

	properties.Property("undefined and zombie keys are disjoint", prop.ForAll(
		func(en, de, used []string, deep bool) bool {
			res, _, ok := lintTwice(en, de, used, deep)
			if !ok {
				return false
			}
			zombies := map[string]bool{}
			for _, k := range res.Keys(Zombie) {
				zombies[k] = true
			}
			for _, k := range res.Keys(UndefinedOnView) {
				if zombies[k] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(keyGen), gen.SliceOf(keyGen), gen.SliceOf(usedGen), gen.Bool(),
	))

	properties.Property("no key is reported twice in one class", prop.ForAll(
		func(en, de, used []string) bool {
			res, _, ok := lintTwice(en, de, used, false)
			if !ok {
				return false
			}
			for _, c := range Classes {
				seen := map[string]bool{}
				for _, k := range res.Keys(c) {
					if seen[k] {
						return false
					}
					seen[k] = true
				}
			}
			return true
		},
		gen.SliceOf(keyGen), gen.SliceOf(keyGen), gen.SliceOf(usedGen),
	))

	properties.TestingRun(t)
}
