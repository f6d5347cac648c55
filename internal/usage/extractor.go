// Package usage extracts translation key references from view and source
// files.
package usage

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// File is a view or source file with its content already read.
type File struct {
	Path    string
	Content string
}

// Match is one key reference found in a file.
type Match struct {
	// Key is the literal as written in the source.
	Key string
	// Prefix is the static part of a dynamic (template) key.
	Prefix  string
	Dynamic bool
	File    string
	Line    int
}

// DefaultPatterns are applied to every file. The key is the first non-empty
// capture group of a match.
var DefaultPatterns = []string{
	// t('...'), t("..."), t(`...`), also this.t(), i18n.t(), $t()
	`(?:^|[^\w$])\$?t\(\s*(?:'([^'\n]+)'|"([^"\n]+)"|\x60([^\x60]+)\x60)`,
	// <Trans i18nKey="..."> and i18nKey={'...'}
	`i18nKey=\{?\s*(?:'([^'\n]+)'|"([^"\n]+)"|\x60([^\x60]+)\x60)`,
	// v-t directive: v-t="'key'" in Vue templates.
	`v-t="'([^'\n]+)'"`,
}

// PatternError reports a key pattern that does not compile.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid key pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

var errEmptyPattern = errors.New("pattern is empty")

// Extractor finds key references with the default patterns plus any custom
// ones.
type Extractor struct {
	patterns []*regexp.Regexp
}

// NewExtractor compiles the default patterns followed by the custom ones. A
// custom pattern that does not compile fails construction.
func NewExtractor(custom []string) (*Extractor, error) {
	e := &Extractor{}
	for _, p := range DefaultPatterns {
		e.patterns = append(e.patterns, regexp.MustCompile(p))
	}
	for _, p := range custom {
		if strings.TrimSpace(p) == "" {
			return nil, &PatternError{Pattern: p, Err: errEmptyPattern}
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, &PatternError{Pattern: p, Err: err}
		}
		e.patterns = append(e.patterns, re)
	}
	return e, nil
}

type located struct {
	Match
	offset  int
	pattern int
}

// Extract returns every key reference in the file ordered by position.
// Matching runs over the whole content, so a call may span lines.
func (e *Extractor) Extract(f File) []Match {
	lines := newLineIndex(f.Content)
	var found []located
	for pi, re := range e.patterns {
		for _, loc := range re.FindAllStringSubmatchIndex(f.Content, -1) {
			key, start, ok := captured(f.Content, loc, re.NumSubexp())
			if !ok {
				continue
			}
			m, ok := newMatch(key, f.Path)
			if !ok {
				continue
			}
			m.Line = lines.lineAt(start)
			found = append(found, located{Match: m, offset: start, pattern: pi})
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		if found[i].offset != found[j].offset {
			return found[i].offset < found[j].offset
		}
		return found[i].pattern < found[j].pattern
	})
	matches := make([]Match, 0, len(found))
	for _, l := range found {
		matches = append(matches, l.Match)
	}
	return matches
}

// captured returns the first non-empty capture group of a match, or the
// whole match when the pattern has no groups. A match whose groups are all
// empty yields nothing.
func captured(content string, loc []int, groups int) (string, int, bool) {
	if groups == 0 {
		return content[loc[0]:loc[1]], loc[0], true
	}
	for g := 2; g+1 < len(loc); g += 2 {
		if loc[g] >= 0 && loc[g+1] > loc[g] {
			return content[loc[g]:loc[g+1]], loc[g], true
		}
	}
	return "", 0, false
}

func newMatch(key, file string) (Match, bool) {
	if strings.TrimSpace(key) == "" {
		return Match{}, false
	}
	m := Match{Key: key, File: file}
	if i := strings.Index(key, "${"); i >= 0 {
		// A template with no static prefix cannot be tied to any key.
		if i == 0 {
			return Match{}, false
		}
		m.Dynamic = true
		m.Prefix = key[:i]
	}
	return m, true
}

type lineIndex []int

func newLineIndex(content string) lineIndex {
	var idx lineIndex
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			idx = append(idx, i)
		}
	}
	return idx
}

// lineAt returns the 1-based line of a byte offset.
func (idx lineIndex) lineAt(offset int) int {
	return sort.SearchInts(idx, offset) + 1
}
