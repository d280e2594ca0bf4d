package secrets

import (
	"context"
	"fmt"
)

// Provider supplies secret values for an environment. Keys may use the
// configured separator (db__password) or already-nested maps; the loader
// unflattens separator-bearing keys through the key-path codec.
type Provider interface {
	// Name identifies the provider in logs and errors.
	Name() string
	// GetSecrets returns the secret mapping for env. A provider for which
	// "nothing configured for this environment" is a defined outcome returns
	// an empty map, not an error.
	GetSecrets(ctx context.Context, env string) (map[string]any, error)
}

// RetrievalError reports a failed secrets lookup. It is a source-level
// failure: the load that triggered it fails rather than continuing with a
// partial configuration.
type RetrievalError struct {
	Provider string
	Env      string
	Err      error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("secrets provider %s: retrieve for env %q: %v", e.Provider, e.Env, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// Noop is the default provider: no secrets, never fails.
type Noop struct{}

func (Noop) Name() string { return "noop" }

func (Noop) GetSecrets(context.Context, string) (map[string]any, error) {
	return map[string]any{}, nil
}

// Static serves a fixed mapping per environment. Intended for tests and
// programmatic composition.
type Static struct {
	Values map[string]map[string]any
}

func (Static) Name() string { return "static" }

func (s Static) GetSecrets(_ context.Context, env string) (map[string]any, error) {
	values, ok := s.Values[env]
	if !ok {
		return map[string]any{}, nil
	}
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out, nil
}
