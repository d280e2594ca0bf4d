package source

import (
	"context"
	"errors"
	"sort"
	"strings"

	"strata/internal/keypath"
	"strata/internal/merge"
	"strata/internal/secrets"
)

// SecretsSource adapts a secrets.Provider into a source. Provider keys that
// carry the separator (db__password) are unflattened through the key-path
// codec; already-nested values pass through as-is. Provider failures surface
// as a secrets.RetrievalError.
type SecretsSource struct {
	Provider    secrets.Provider
	Environment string
	Separator   string
}

func (s *SecretsSource) Name() string { return "secrets:" + s.Provider.Name() }

func (s *SecretsSource) Load(ctx context.Context) (merge.Map, error) {
	values, err := s.Provider.GetSecrets(ctx, s.Environment)
	if err != nil {
		var retrieval *secrets.RetrievalError
		if errors.As(err, &retrieval) {
			return nil, err
		}
		return nil, &secrets.RetrievalError{Provider: s.Provider.Name(), Env: s.Environment, Err: err}
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := merge.Map{}
	for _, k := range keys {
		value := values[k]
		if strings.Contains(k, s.Separator) {
			path, err := keypath.Split(k, s.Separator)
			if err != nil {
				return nil, err
			}
			if err := keypath.SetAtPath(out, path, value, k); err != nil {
				return nil, err
			}
			continue
		}
		out[foldKey.String(k)] = value
	}
	return out, nil
}

var _ Source = (*SecretsSource)(nil)
