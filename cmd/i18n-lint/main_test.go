package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// project writes a small repository and makes it the working directory.
func project(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	files["package.json"] = "{}"
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return root
}

func execute(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestLintFailsOnUndefinedKey(t *testing.T) {
	project(t, map[string]string{
		"src/app.html":  "<h1>{{ t('welcome.title') }}</h1>\n<p>{{ t('missing.key') }}</p>\n",
		"i18n/en.json":  `{"welcome": {"title": "Hi"}}`,
		"i18n/de.json":  `{"welcome": {"title": "Hallo"}}`,
		"src/skip.html": "{{ t('also.missing') }}",
	})

	code, stdout, stderr := execute("lint", "-p", "src", "-l", "i18n", "--ignore", "null, src/skip.html")
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "missing.key  [error]")
	assert.Contains(t, stdout, "app.html:2")
	assert.NotContains(t, stdout, "also.missing")
	assert.Contains(t, stderr, "Error: checks failed")
}

func TestLintWarningBudget(t *testing.T) {
	project(t, map[string]string{
		"src/app.ts":   "t('welcome.title')",
		"i18n/en.json": `{"welcome": {"title": "Hi"}, "old": "x"}`,
	})

	code, _, _ := execute("lint", "-p", "src/**/*.ts", "-l", "i18n/*.json")
	assert.Equal(t, 1, code)

	code, stdout, stderr := execute("lint", "-p", "src/**/*.ts", "-l", "i18n/*.json", "--max-warning", "1")
	assert.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "All checks passed: 0 errors, 1 warning (max warning: 1).")
}

func TestLintRejectsNegativeMaxWarning(t *testing.T) {
	project(t, map[string]string{
		"src/app.ts":   "t('a')",
		"i18n/en.json": `{"a": "A"}`,
	})
	code, stdout, stderr := execute("lint", "-p", "src", "-l", "i18n", "--max-warning=-1")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "maxWarning=-1: must not be negative")
}

func TestLintConfigFile(t *testing.T) {
	project(t, map[string]string{
		"src/app.ts":   "t(`section.${name}`)",
		"i18n/en.yaml": "section:\n  a: A\n  b: ''\n",
		".i18n-lint.yaml": `
project: src
languages: i18n
format: json
rules:
  deepSearch: enable
  emptyKeys: disable
`,
	})

	code, stdout, stderr := execute("lint")
	assert.Equal(t, 0, code, stderr)
	var out struct {
		Failed bool `json:"failed"`
		Stats  struct {
			Keys int `json:"keys"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.False(t, out.Failed)
	assert.Equal(t, 2, out.Stats.Keys)
}

func TestLintRejectsUnknownConfigField(t *testing.T) {
	project(t, map[string]string{
		"cfg.yaml": "rules:\n  zombies: error\n",
	})
	code, _, stderr := execute("lint", "--config", "cfg.yaml", "-p", "src", "-l", "i18n")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid config")
}

func TestLintParseError(t *testing.T) {
	project(t, map[string]string{
		"src/app.ts":   "t('a')",
		"i18n/en.json": `{"a": `,
	})
	code, stdout, stderr := execute("lint", "-p", "src", "-l", "i18n")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "can't parse catalog file")
	assert.Contains(t, stderr, filepath.Join("i18n", "en.json"))
}

func TestLanguagesAndKeys(t *testing.T) {
	project(t, map[string]string{
		"i18n/en.json": `{"a": "A", "b": ""}`,
		"i18n/de.json": `{"a": "A"}`,
	})

	code, stdout, stderr := execute("languages", "-l", "i18n", "-f", "json")
	require.Equal(t, 0, code, stderr)
	var langs []struct {
		Name string `json:"name"`
		Keys int    `json:"keys"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &langs))
	require.Len(t, langs, 2)
	assert.Equal(t, "de", langs[0].Name)
	assert.Equal(t, 2, langs[1].Keys)

	code, stdout, _ = execute("keys", "-l", "i18n", "--missing")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Found 1 keys missing from a locale:")
	assert.Contains(t, stdout, "  b  (1)  missing: ")

	code, stdout, _ = execute("keys", "-l", "i18n", "--missing", "--names")
	require.Equal(t, 0, code)
	assert.Equal(t, "Found 1 keys:\n  b\n", stdout)
}

func TestReferences(t *testing.T) {
	project(t, map[string]string{
		"src/a.vue": "<span v-t=\"'nav.home'\" />\n{{ $t('nav.home') }}",
	})
	code, stdout, stderr := execute("references", "-p", "src")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "nav.home:\n")
	assert.Contains(t, stdout, "a.vue:1\n")
	assert.Contains(t, stdout, "a.vue:2\n")
}

func TestMissingInputs(t *testing.T) {
	project(t, map[string]string{})
	code, _, stderr := execute("lint", "-l", "i18n")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "--project is required")
}

func TestVersion(t *testing.T) {
	code, stdout, _ := execute("version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "i18n-lint dev\n", stdout)
}
