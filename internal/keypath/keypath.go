package keypath

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// DefaultSeparator is the token that delimits path segments in flat keys.
const DefaultSeparator = "__"

var fold = cases.Fold()

// MalformedKeyError reports a flat key that cannot be decomposed into a path.
type MalformedKeyError struct {
	Key    string
	Reason string
}

func (e *MalformedKeyError) Error() string {
	return fmt.Sprintf("malformed key %q: %s", e.Key, e.Reason)
}

// PathConflictError reports an attempt to descend through a location that
// already holds a non-mapping value.
type PathConflictError struct {
	Path []string
	Key  string
}

func (e *PathConflictError) Error() string {
	return fmt.Sprintf("key %q conflicts with existing value at %q", e.Key, strings.Join(e.Path, "."))
}

// Split decomposes a flat key into case-folded path segments.
// Empty keys and empty segments (leading, trailing, or doubled separators)
// are malformed.
func Split(key, separator string) ([]string, error) {
	if separator == "" {
		separator = DefaultSeparator
	}
	if key == "" {
		return nil, &MalformedKeyError{Key: key, Reason: "empty key"}
	}
	parts := strings.Split(key, separator)
	path := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return nil, &MalformedKeyError{Key: key, Reason: "empty path segment"}
		}
		path = append(path, fold.String(part))
	}
	return path, nil
}

// Join is the inverse of Split for keys whose segments contain no separator.
func Join(path []string, separator string) string {
	if separator == "" {
		separator = DefaultSeparator
	}
	return strings.Join(path, separator)
}

// SetAtPath walks root along path, creating intermediate maps as needed, and
// assigns value at the terminal segment. Descending through an existing
// non-mapping value is a PathConflictError; key reports the flat key being
// assigned so the caller can identify the offending source entry.
func SetAtPath(root map[string]any, path []string, value any, key string) error {
	if len(path) == 0 {
		return &MalformedKeyError{Key: key, Reason: "empty path"}
	}
	node := root
	for i, segment := range path[:len(path)-1] {
		existing, ok := node[segment]
		if !ok {
			child := map[string]any{}
			node[segment] = child
			node = child
			continue
		}
		child, ok := existing.(map[string]any)
		if !ok {
			return &PathConflictError{Path: path[:i+1], Key: key}
		}
		node = child
	}
	node[path[len(path)-1]] = value
	return nil
}

// Unflatten maps every flat key of flat into a nested structure. Keys are
// processed in sorted order so the result (and any conflict reported) is
// deterministic regardless of map iteration order. Within one flat mapping a
// key that collides with a previously assigned scalar is a PathConflictError;
// precedence between whole sources is the merge engine's job, not the codec's.
func Unflatten(flat map[string]string, separator string) (map[string]any, error) {
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := map[string]any{}
	for _, k := range keys {
		path, err := Split(k, separator)
		if err != nil {
			return nil, err
		}
		if err := SetAtPath(out, path, flat[k], k); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Flatten is the inverse of Unflatten for mappings whose keys contain no
// separator substrings and whose leaves are strings.
func Flatten(nested map[string]any, separator string) map[string]string {
	out := map[string]string{}
	flattenInto(out, nil, nested, separator)
	return out
}

func flattenInto(out map[string]string, prefix []string, node map[string]any, separator string) {
	for k, v := range node {
		path := append(append([]string(nil), prefix...), k)
		if child, ok := v.(map[string]any); ok {
			flattenInto(out, path, child, separator)
			continue
		}
		out[Join(path, separator)] = fmt.Sprintf("%v", v)
	}
}
