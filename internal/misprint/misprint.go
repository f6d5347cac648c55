// Package misprint finds catalog keys that look like typos of other keys.
package misprint

import (
	"sort"
	"unicode/utf8"

	"github.com/agext/levenshtein"
)

// Similarity scores two keys in [0, 1], 1 meaning identical. It is
// 1 - distance/max(len(a), len(b)) where distance is the Levenshtein distance
// with unit costs, counted in runes.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	return 1 - float64(levenshtein.Distance(a, b, nil))/float64(longest)
}

// Candidate is a catalog key taking part in detection.
type Candidate struct {
	Name string
	// Files are the locale files defining the key.
	Files []string
}

// Suggestion is a better-defined key a misprint probably meant.
type Suggestion struct {
	Key   string
	Score float64
}

// Finding is a key judged to be a misprint of one or more other keys.
type Finding struct {
	Key         string
	Suggestions []Suggestion
}

// Detect compares every pair of candidates. A pair scoring at least
// coefficient is reported unless both keys are defined in all totalFiles
// locale files, in which case they are taken to be distinct keys. The key
// defined in fewer files is the misprint. Keys defined in as many files are
// only paired when no file defines both, and then the later candidate is the
// misprint.
// Findings follow candidate order and suggestions are sorted by descending
// score, then by name.
func Detect(candidates []Candidate, totalFiles int, coefficient float64) []Finding {
	lengths := make([]int, len(candidates))
	for i, c := range candidates {
		lengths[i] = utf8.RuneCountInString(c.Name)
	}

	suggestions := make(map[int][]Suggestion)
	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			a, b := candidates[i], candidates[j]
			if a.Name == b.Name {
				continue
			}
			if len(a.Files) >= totalFiles && len(b.Files) >= totalFiles {
				continue
			}
			// The distance is at least the length difference, so this bound
			// only skips pairs that cannot reach the coefficient.
			if lengthBound(lengths[i], lengths[j]) < coefficient {
				continue
			}
			score := Similarity(a.Name, b.Name)
			if score < coefficient {
				continue
			}
			misprint, canonical := j, i
			switch {
			case len(a.Files) < len(b.Files):
				misprint, canonical = i, j
			case len(a.Files) == len(b.Files) && shareFile(a.Files, b.Files):
				continue
			}
			suggestions[misprint] = append(suggestions[misprint], Suggestion{
				Key:   candidates[canonical].Name,
				Score: score,
			})
		}
	}

	var findings []Finding
	for i, c := range candidates {
		s, ok := suggestions[i]
		if !ok {
			continue
		}
		sort.SliceStable(s, func(x, y int) bool {
			if s[x].Score != s[y].Score {
				return s[x].Score > s[y].Score
			}
			return s[x].Key < s[y].Key
		})
		findings = append(findings, Finding{Key: c.Name, Suggestions: s})
	}
	return findings
}

func lengthBound(la, lb int) float64 {
	longest := max(la, lb)
	if longest == 0 {
		return 1
	}
	diff := la - lb
	if diff < 0 {
		diff = -diff
	}
	return 1 - float64(diff)/float64(longest)
}

func shareFile(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
