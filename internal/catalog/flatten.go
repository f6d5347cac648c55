package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// maxDepth bounds the nesting of a catalog document.
const maxDepth = 64

var (
	errInvalidJSON = errors.New("invalid JSON")
	errNotObject   = errors.New("top-level value is not an object")
	errTooDeep     = fmt.Errorf("nested deeper than %d levels", maxDepth)
)

// Entry is one flattened leaf of a catalog document.
type Entry struct {
	Key   string
	Value string
}

// Flatten walks a catalog document depth-first and returns its leaves as
// dotted keys, in document order. Arrays are keyed by index, scalar leaves are
// stringified and null leaves become empty values.
func Flatten(src Source) ([]Entry, error) {
	var (
		entries []Entry
		err     error
	)
	switch src.Format {
	case YAML:
		entries, err = flattenYAML(src.Data)
	default:
		entries, err = flattenJSON(src.Data)
	}
	if err != nil {
		return nil, &ParseError{Path: src.ID, Err: err}
	}
	return entries, nil
}

type flattener struct {
	entries []Entry
	index   map[string]int
}

func newFlattener() *flattener {
	return &flattener{index: make(map[string]int)}
}

// add records a leaf. A key seen twice keeps its first position and its
// last value.
func (f *flattener) add(key, value string) error {
	if !isValidKeyPath(key) {
		return fmt.Errorf("invalid key path %q", key)
	}
	if i, ok := f.index[key]; ok {
		f.entries[i].Value = value
		return nil
	}
	f.index[key] = len(f.entries)
	f.entries = append(f.entries, Entry{Key: key, Value: value})
	return nil
}

func flattenJSON(data []byte) ([]Entry, error) {
	if !gjson.ValidBytes(data) {
		return nil, errInvalidJSON
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errNotObject
	}
	f := newFlattener()
	if err := f.walkJSON("", root, 0); err != nil {
		return nil, err
	}
	return f.entries, nil
}

func (f *flattener) walkJSON(prefix string, node gjson.Result, depth int) error {
	if depth > maxDepth {
		return errTooDeep
	}
	var err error
	i := 0
	node.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if node.IsArray() {
			name = strconv.Itoa(i)
		}
		i++
		if name == "" {
			err = fmt.Errorf("empty key segment at %q", prefix)
			return false
		}
		path := joinKey(prefix, name)
		switch {
		case value.IsObject(), value.IsArray():
			err = f.walkJSON(path, value, depth+1)
		case value.Type == gjson.Null:
			err = f.add(path, "")
		default:
			err = f.add(path, value.String())
		}
		return err == nil
	})
	return err
}

func flattenYAML(data []byte) ([]Entry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	f := newFlattener()
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return f.entries, nil
	}
	root := resolveAlias(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, errNotObject
	}
	if err := f.walkYAML("", root, 0); err != nil {
		return nil, err
	}
	return f.entries, nil
}

// walkYAML flattens a mapping or sequence node, following the same rules as
// walkJSON.
func (f *flattener) walkYAML(prefix string, node *yaml.Node, depth int) error {
	if depth > maxDepth {
		return errTooDeep
	}
	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			name := node.Content[i].Value
			if name == "" {
				return fmt.Errorf("empty key segment at %q", prefix)
			}
			if err := f.visitYAML(joinKey(prefix, name), node.Content[i+1], depth); err != nil {
				return err
			}
		}
	case yaml.SequenceNode:
		for i, item := range node.Content {
			if err := f.visitYAML(joinKey(prefix, strconv.Itoa(i)), item, depth); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *flattener) visitYAML(path string, node *yaml.Node, depth int) error {
	node = resolveAlias(node)
	switch node.Kind {
	case yaml.MappingNode, yaml.SequenceNode:
		return f.walkYAML(path, node, depth+1)
	default:
		if node.Tag == "!!null" {
			return f.add(path, "")
		}
		return f.add(path, node.Value)
	}
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// isValidKeyPath reports whether every dot-separated segment of key is
// non-empty ("a..b" and "a." are not valid).
func isValidKeyPath(key string) bool {
	for _, part := range strings.Split(key, ".") {
		if part == "" {
			return false
		}
	}
	return true
}

// Nest rebuilds a tree from flattened entries by splitting keys on dots. It
// is the inverse of Flatten for documents without arrays and without dots in
// their own key names.
func Nest(entries []Entry) (map[string]any, error) {
	root := map[string]any{}
	for _, e := range entries {
		parts := strings.Split(e.Key, ".")
		node := root
		for _, part := range parts[:len(parts)-1] {
			child, ok := node[part]
			if !ok {
				next := map[string]any{}
				node[part] = next
				node = next
				continue
			}
			next, ok := child.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("key %q: %q is already a leaf", e.Key, part)
			}
			node = next
		}
		leaf := parts[len(parts)-1]
		if _, isBranch := node[leaf].(map[string]any); isBranch {
			return nil, fmt.Errorf("key %q: %q is already a branch", e.Key, leaf)
		}
		node[leaf] = e.Value
	}
	return root, nil
}
