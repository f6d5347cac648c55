package catalog

import (
	"errors"
	"strings"
	"testing"
)

func TestFlattenJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Entry
	}{
		{
			name:  "flat object",
			input: `{"a": "1", "b": "2"}`,
			want:  []Entry{{"a", "1"}, {"b", "2"}},
		},
		{
			name:  "nested object",
			input: `{"welcome": {"title": "Hi", "body": {"text": "deep"}}}`,
			want:  []Entry{{"welcome.title", "Hi"}, {"welcome.body.text", "deep"}},
		},
		{
			name:  "document order kept",
			input: `{"z": "last?", "a": "first?"}`,
			want:  []Entry{{"z", "last?"}, {"a", "first?"}},
		},
		{
			name:  "scalars stringified",
			input: `{"port": 8080, "ratio": 0.5, "on": true, "off": false}`,
			want:  []Entry{{"port", "8080"}, {"ratio", "0.5"}, {"on", "true"}, {"off", "false"}},
		},
		{
			name:  "arrays keyed by index",
			input: `{"list": ["x", {"y": "z"}]}`,
			want:  []Entry{{"list.0", "x"}, {"list.1.y", "z"}},
		},
		{
			name:  "empty and null values kept",
			input: `{"a": {"b": ""}, "c": null}`,
			want:  []Entry{{"a.b", ""}, {"c", ""}},
		},
		{
			name:  "empty object contributes nothing",
			input: `{"a": {}, "b": "x"}`,
			want:  []Entry{{"b", "x"}},
		},
		{
			name:  "duplicate key keeps first position and last value",
			input: `{"a": "1", "b": "2", "a": "3"}`,
			want:  []Entry{{"a", "3"}, {"b", "2"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Flatten(Source{ID: "en.json", Data: []byte(tc.input), Format: JSON})
			if err != nil {
				t.Fatalf("Flatten: %v", err)
			}
			assertEntries(t, got, tc.want)
		})
	}
}

func TestFlattenYAML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Entry
	}{
		{
			name:  "nested map",
			input: "a:\n  b: value\n  c:\n    d: deep\n",
			want:  []Entry{{"a.b", "value"}, {"a.c.d", "deep"}},
		},
		{
			name:  "numeric value",
			input: "port: 8080\n",
			want:  []Entry{{"port", "8080"}},
		},
		{
			name:  "sequence",
			input: "items:\n  - one\n  - two\n",
			want:  []Entry{{"items.0", "one"}, {"items.1", "two"}},
		},
		{
			name:  "null and empty",
			input: "a: ''\nb: ~\n",
			want:  []Entry{{"a", ""}, {"b", ""}},
		},
		{
			name:  "alias followed",
			input: "base: &base\n  ok: OK\ncopy: *base\n",
			want:  []Entry{{"base.ok", "OK"}, {"copy.ok", "OK"}},
		},
		{
			name:  "empty document",
			input: "",
			want:  nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Flatten(Source{ID: "en-us.yaml", Data: []byte(tc.input), Format: YAML})
			if err != nil {
				t.Fatalf("Flatten: %v", err)
			}
			assertEntries(t, got, tc.want)
		})
	}
}

func TestFlattenErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"truncated json", JSON, `{"a": {"b": "c"}`},
		{"not json", JSON, `hello`},
		{"top-level array", JSON, `["a", "b"]`},
		{"empty segment", JSON, `{"a": {"": "x"}}`},
		{"empty top-level key", JSON, `{"": {"b": "x"}}`},
		{"double dot", JSON, `{"a.": {"b": "x"}}`},
		{"top-level scalar yaml", YAML, "just text\n"},
		{"broken yaml", YAML, "a: [b\n"},
		{"too deep", JSON, strings.Repeat(`{"a":`, maxDepth+2) + `"x"` + strings.Repeat(`}`, maxDepth+2)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Flatten(Source{ID: "/abs/locales/bad.json", Data: []byte(tc.input), Format: tc.format})
			if err == nil {
				t.Fatal("expected an error")
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if perr.Path != "/abs/locales/bad.json" {
				t.Errorf("Path = %q", perr.Path)
			}
			if !strings.Contains(err.Error(), "/abs/locales/bad.json") {
				t.Errorf("message %q does not name the file", err.Error())
			}
		})
	}
}

func TestIsValidKeyPath(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"a", true},
		{"a.b.c", true},
		{"welcome title-2", true},
		{"", false},
		{"a..b", false},
		{".a", false},
		{"a.", false},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			if got := isValidKeyPath(tc.key); got != tc.want {
				t.Errorf("isValidKeyPath(%q) = %v, want %v", tc.key, got, tc.want)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	if FormatFromPath("locales/en-us.yaml") != YAML || FormatFromPath("x.YML") != YAML {
		t.Error("yaml extensions should map to YAML")
	}
	if FormatFromPath("en.json") != JSON || FormatFromPath("remote") != JSON {
		t.Error("other extensions should map to JSON")
	}
}

func TestNest(t *testing.T) {
	tree, err := Nest([]Entry{{"welcome.title", "Hi"}, {"welcome.body", "Text"}, {"top", "x"}})
	if err != nil {
		t.Fatalf("Nest: %v", err)
	}
	welcome, ok := tree["welcome"].(map[string]any)
	if !ok {
		t.Fatalf("welcome is %T", tree["welcome"])
	}
	if welcome["title"] != "Hi" || welcome["body"] != "Text" || tree["top"] != "x" {
		t.Errorf("unexpected tree %v", tree)
	}

	if _, err := Nest([]Entry{{"a", "leaf"}, {"a.b", "child"}}); err == nil {
		t.Error("expected conflict between leaf and branch")
	}
	if _, err := Nest([]Entry{{"a.b", "child"}, {"a", "leaf"}}); err == nil {
		t.Error("expected conflict between branch and leaf")
	}
}

func assertEntries(t *testing.T, got, want []Entry) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d entries %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
