package usage

import (
	"sort"
	"strings"
)

// Reference records where a key is used.
type Reference struct {
	File string `json:"file"`
	Line int    `json:"line"`
}

// Usage is one distinct key literal with every place it was found.
type Usage struct {
	Key     string
	Prefix  string
	Dynamic bool
	Files   []string
	Refs    []Reference
}

// Collect folds matches into one Usage per distinct literal. Matches are
// grouped by file path first, so the result does not depend on the order in
// which files were scanned; within a file the match order is kept.
func Collect(matches []Match) []*Usage {
	sorted := make([]Match, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].File < sorted[j].File
	})

	var usages []*Usage
	index := make(map[string]*Usage)
	for _, m := range sorted {
		u, ok := index[m.Key]
		if !ok {
			u = &Usage{Key: m.Key, Prefix: m.Prefix, Dynamic: m.Dynamic}
			index[m.Key] = u
			usages = append(usages, u)
		}
		if len(u.Files) == 0 || u.Files[len(u.Files)-1] != m.File {
			u.Files = append(u.Files, m.File)
		}
		u.Refs = append(u.Refs, Reference{File: m.File, Line: m.Line})
	}
	return usages
}

// Resolution is the outcome of resolving a usage against the catalog.
type Resolution struct {
	// Keys are the catalog keys the usage references.
	Keys []string
	// Skipped is set for dynamic usages when deep search is off: they are
	// neither checked nor counted as references.
	Skipped bool
}

// Resolver maps usages to catalog keys. With deep search a dynamic usage
// references every key starting with its static prefix, and a literal that
// is not a key references every key nested below it. This is a heuristic:
// it can both over- and under-match.
type Resolver struct {
	names []string
	exact map[string]struct{}
	deep  bool
}

// NewResolver builds a resolver over the given catalog key names.
func NewResolver(keys []string, deep bool) *Resolver {
	r := &Resolver{
		names: make([]string, len(keys)),
		exact: make(map[string]struct{}, len(keys)),
		deep:  deep,
	}
	copy(r.names, keys)
	sort.Strings(r.names)
	for _, k := range keys {
		r.exact[k] = struct{}{}
	}
	return r
}

// Resolve returns the catalog keys referenced by u.
func (r *Resolver) Resolve(u *Usage) Resolution {
	if u.Dynamic {
		if !r.deep {
			return Resolution{Skipped: true}
		}
		return Resolution{Keys: r.withPrefix(u.Prefix)}
	}
	if _, ok := r.exact[u.Key]; ok {
		return Resolution{Keys: []string{u.Key}}
	}
	if !r.deep {
		return Resolution{}
	}
	return Resolution{Keys: r.withPrefix(u.Key + ".")}
}

func (r *Resolver) withPrefix(prefix string) []string {
	var keys []string
	for i := sort.SearchStrings(r.names, prefix); i < len(r.names); i++ {
		if !strings.HasPrefix(r.names[i], prefix) {
			break
		}
		keys = append(keys, r.names[i])
	}
	return keys
}
