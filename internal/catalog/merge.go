package catalog

import (
	"path/filepath"
	"sort"
	"strings"
)

// Translation is the value a key has in one locale file.
type Translation struct {
	File  string
	Value string
}

// Key is a dotted catalog key together with every locale file defining it.
// Values are kept per file so that emptiness can be judged per locale.
type Key struct {
	Name         string
	Translations []Translation
}

// Files returns the locale files defining the key, in fold order.
func (k *Key) Files() []string {
	files := make([]string, 0, len(k.Translations))
	for _, t := range k.Translations {
		files = append(files, t.File)
	}
	return files
}

// Value returns the value of the key in the given locale file.
func (k *Key) Value(file string) (string, bool) {
	for _, t := range k.Translations {
		if t.File == file {
			return t.Value, true
		}
	}
	return "", false
}

// EmptyIn returns the locale files where the key has an empty value.
func (k *Key) EmptyIn() []string {
	var files []string
	for _, t := range k.Translations {
		if t.Value == "" {
			files = append(files, t.File)
		}
	}
	return files
}

// FilledIn returns the translations with a non-empty value.
func (k *Key) FilledIn() []Translation {
	var filled []Translation
	for _, t := range k.Translations {
		if t.Value != "" {
			filled = append(filled, t)
		}
	}
	return filled
}

// Flattened is the flattened content of one catalog source.
type Flattened struct {
	ID      string
	Origin  Origin
	Entries []Entry
}

// Language summarizes one locale file of the catalog.
type Language struct {
	File   string `json:"file"`
	Name   string `json:"name"`
	Origin string `json:"origin"`
	Keys   int    `json:"keys"`
	Empty  int    `json:"empty"`
}

// Presence lists the locale files that define a key and those that lack it.
type Presence struct {
	Name      string   `json:"name"`
	Languages []string `json:"languages"`
	Missing   []string `json:"missing,omitempty"`
}

// Catalog is the merged key universe of all locale files. It is read-only
// once Merge returns.
type Catalog struct {
	keys      []*Key
	index     map[string]*Key
	languages []Language
}

// Merge folds flattened sources into one catalog. Sources are ordered by ID
// first so the result does not depend on the order they were produced in.
func Merge(sources []Flattened) *Catalog {
	sorted := make([]Flattened, len(sources))
	copy(sorted, sources)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	c := &Catalog{index: make(map[string]*Key)}
	for _, src := range sorted {
		lang := Language{
			File:   src.ID,
			Name:   languageName(src.ID, src.Origin),
			Origin: src.Origin.String(),
		}
		for _, e := range src.Entries {
			key, ok := c.index[e.Key]
			if !ok {
				key = &Key{Name: e.Key}
				c.index[e.Key] = key
				c.keys = append(c.keys, key)
			}
			key.Translations = append(key.Translations, Translation{File: src.ID, Value: e.Value})
			lang.Keys++
			if e.Value == "" {
				lang.Empty++
			}
		}
		c.languages = append(c.languages, lang)
	}
	return c
}

// Keys returns the catalog keys in fold order.
func (c *Catalog) Keys() []*Key {
	return c.keys
}

// Key looks up a key by its dotted name.
func (c *Catalog) Key(name string) (*Key, bool) {
	k, ok := c.index[name]
	return k, ok
}

// Len returns the number of distinct keys.
func (c *Catalog) Len() int {
	return len(c.keys)
}

// Languages returns one summary per locale file, ordered by file.
func (c *Catalog) Languages() []Language {
	return c.languages
}

// Files returns the locale files of the catalog, ordered by file.
func (c *Catalog) Files() []string {
	files := make([]string, 0, len(c.languages))
	for _, l := range c.languages {
		files = append(files, l.File)
	}
	return files
}

// Presence reports, for every key, which locale files define it and which
// do not.
func (c *Catalog) Presence() []Presence {
	files := c.Files()
	out := make([]Presence, 0, len(c.keys))
	for _, k := range c.keys {
		p := Presence{Name: k.Name, Languages: k.Files()}
		for _, f := range files {
			if _, ok := k.Value(f); !ok {
				p.Missing = append(p.Missing, f)
			}
		}
		out = append(out, p)
	}
	return out
}

func languageName(id string, origin Origin) string {
	if origin == FromURL {
		return id
	}
	base := filepath.Base(id)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
