package redact

import (
	"strings"

	"strata/internal/merge"
)

// Mask replaces every redacted value.
const Mask = "<redacted>"

// DefaultPatterns are key substrings treated as secret-bearing everywhere
// they appear in a mapping.
var DefaultPatterns = []string{"password", "secret", "token", "key"}

// Redactor masks values at secret-bearing locations of a mapping.
type Redactor struct {
	patterns []string
	paths    map[string]struct{}
}

// New builds a Redactor from substring patterns plus explicit dot-joined key
// paths (e.g. "db.password"). Nil patterns means DefaultPatterns.
func New(patterns []string, paths []string) *Redactor {
	if patterns == nil {
		patterns = DefaultPatterns
	}
	pathSet := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		pathSet[strings.ToLower(p)] = struct{}{}
	}
	return &Redactor{patterns: patterns, paths: pathSet}
}

// Apply returns a deep copy of m with secret-bearing values replaced by Mask.
// The input is never modified.
func (r *Redactor) Apply(m merge.Map) merge.Map {
	out := merge.Clone(m)
	r.walk(out, "")
	return out
}

func (r *Redactor) walk(node merge.Map, prefix string) {
	for k, v := range node {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		if r.secretKey(k, path) {
			node[k] = Mask
			continue
		}
		switch child := v.(type) {
		case merge.Map:
			r.walk(child, path)
		case []any:
			for _, item := range child {
				if m, ok := item.(merge.Map); ok {
					r.walk(m, path)
				}
			}
		}
	}
}

func (r *Redactor) secretKey(key, path string) bool {
	if _, ok := r.paths[strings.ToLower(path)]; ok {
		return true
	}
	lower := strings.ToLower(key)
	for _, pattern := range r.patterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

// Apply masks m using the default patterns only.
func Apply(m merge.Map) merge.Map {
	return New(nil, nil).Apply(m)
}
