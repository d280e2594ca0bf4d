package source

import (
	"context"
	"os"
	"sort"
	"strings"

	"strata/internal/keypath"
	"strata/internal/merge"
)

// EnvSource reads process environment variables matching Prefix and maps them
// into nested keys via the key-path codec. Values stay raw strings; type
// coercion belongs to materialization. Variables are processed in sorted
// order so the result is deterministic.
type EnvSource struct {
	Prefix    string
	Separator string

	// Environ overrides os.Environ in tests.
	Environ func() []string
}

func (s *EnvSource) Name() string { return "env" }

func (s *EnvSource) Load(ctx context.Context) (merge.Map, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	environ := os.Environ
	if s.Environ != nil {
		environ = s.Environ
	}

	matched := map[string]string{}
	for _, entry := range environ() {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(key, s.Prefix) {
			continue
		}
		matched[strings.TrimPrefix(key, s.Prefix)] = value
	}

	keys := make([]string, 0, len(matched))
	for k := range matched {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := merge.Map{}
	for _, k := range keys {
		path, err := keypath.Split(k, s.Separator)
		if err != nil {
			return nil, err
		}
		if err := keypath.SetAtPath(out, path, matched[k], s.Prefix+k); err != nil {
			return nil, err
		}
	}
	return out, nil
}

var _ Source = (*EnvSource)(nil)
