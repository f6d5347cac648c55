package usage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPatterns(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantKey string // empty means no match expected
	}{
		{"t single quotes", `t('action.refresh')`, "action.refresh"},
		{"t double quotes", `t("action.refresh")`, "action.refresh"},
		{"t backtick", "t(`action.refresh`)", "action.refresh"},
		{"this.t", `this.t('app.title')`, "app.title"},
		{"$t", `$t('nav.home')`, "nav.home"},
		{"i18n.t", `i18n.t("nav.home")`, "nav.home"},
		{"jsx expression", `<h1>{t('welcome.title')}</h1>`, "welcome.title"},
		{"with options", `t('welcome.title', {framework: 'React'})`, "welcome.title"},
		{"space in key", `t('welcome title-2')`, "welcome title-2"},
		{"space before literal", `t( 'key.name')`, "key.name"},
		{"not preceded by letter", `xt('key.name')`, ""},
		{"identifier ending in t", `import('web-vitals')`, ""},
		{"Trans i18nKey", `<Trans i18nKey="page.intro">`, "page.intro"},
		{"Trans i18nKey braces", `<Trans i18nKey={'page.intro'} />`, "page.intro"},
		{"v-t directive", `<span v-t="'sortableTable.noActions'" />`, "sortableTable.noActions"},
	}

	e, err := NewExtractor(nil)
	require.NoError(t, err)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			matches := e.Extract(File{Path: "view.tsx", Content: tc.line})
			var found string
			if len(matches) > 0 {
				found = matches[0].Key
			}
			if tc.wantKey == "" && found != "" {
				t.Errorf("expected no match, got %q", found)
			} else if tc.wantKey != "" && found != tc.wantKey {
				t.Errorf("got %q, want %q", found, tc.wantKey)
			}
		})
	}
}

func TestDynamicKeys(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantKey    string
		wantPrefix string
	}{
		{"single interpolation", "t(`section.${variable}`)", "section.${variable}", "section."},
		{"suffix after interpolation", "this.t(`containerEngine.options.${ x }.label`)", "containerEngine.options.${ x }.label", "containerEngine.options."},
		{"partial segment", "t(`errors.code_${code}`)", "errors.code_${code}", "errors.code_"},
	}

	e, err := NewExtractor(nil)
	require.NoError(t, err)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			matches := e.Extract(File{Path: "view.ts", Content: tc.line})
			require.Len(t, matches, 1)
			assert.True(t, matches[0].Dynamic)
			assert.Equal(t, tc.wantKey, matches[0].Key)
			assert.Equal(t, tc.wantPrefix, matches[0].Prefix)
		})
	}

	t.Run("no static prefix", func(t *testing.T) {
		assert.Empty(t, e.Extract(File{Path: "view.ts", Content: "t(`${prefix}.key`)"}))
	})
}

func TestExtractOrderAndLines(t *testing.T) {
	e, err := NewExtractor([]string{`marker\("(.*)"\)`})
	require.NoError(t, err)

	content := "<h1>{t('welcome.title')}</h1>\n" +
		"const a = marker(\"CUSTOM.REGEXP.ONE\");\n" +
		"<p>{t(\n  'spans.lines'\n)}</p>\n"
	matches := e.Extract(File{Path: "app.tsx", Content: content})

	require.Len(t, matches, 3)
	assert.Equal(t, Match{Key: "welcome.title", File: "app.tsx", Line: 1}, matches[0])
	assert.Equal(t, Match{Key: "CUSTOM.REGEXP.ONE", File: "app.tsx", Line: 2}, matches[1])
	assert.Equal(t, Match{Key: "spans.lines", File: "app.tsx", Line: 4}, matches[2])
}

func TestCustomPatternWithoutGroup(t *testing.T) {
	e, err := NewExtractor([]string{`KEY_[A-Z]+`})
	require.NoError(t, err)

	matches := e.Extract(File{Path: "a.go", Content: "x := KEY_ONE + KEY_TWO"})
	require.Len(t, matches, 2)
	assert.Equal(t, "KEY_ONE", matches[0].Key)
	assert.Equal(t, "KEY_TWO", matches[1].Key)
}

func TestCustomPatternEmptyGroup(t *testing.T) {
	e, err := NewExtractor([]string{`marker\("(.*)"\)`})
	require.NoError(t, err)

	matches := e.Extract(File{Path: "a.ts", Content: "marker(\"\");\nmarker(\"CUSTOM.KEY\");"})
	require.Len(t, matches, 1)
	assert.Equal(t, Match{Key: "CUSTOM.KEY", File: "a.ts", Line: 2}, matches[0])
}

func TestNewExtractorRejectsBadPattern(t *testing.T) {
	for _, pattern := range []string{`marker\("(.*"\)`, "  "} {
		_, err := NewExtractor([]string{`ok\((.*)\)`, pattern})
		require.Error(t, err)
		var perr *PatternError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, pattern, perr.Pattern)
	}
}
