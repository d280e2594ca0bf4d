package secrets

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// LocalStore is a SQLite-backed secrets provider for development machines:
// an on-disk key/value table scoped by environment, seeded through the
// `strata secrets` commands. It is not an encrypted vault; it exists so local
// setups can exercise the full secrets tier without cloud credentials.
type LocalStore struct {
	db   *sql.DB
	path string
}

// OpenLocalStore opens (creating if needed) the store at path.
func OpenLocalStore(path string) (*LocalStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create secrets store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open secrets store: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	const schema = `CREATE TABLE IF NOT EXISTS secrets (
        env   TEXT NOT NULL,
        name  TEXT NOT NULL,
        value TEXT NOT NULL,
        PRIMARY KEY (env, name)
    )`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create secrets table: %w", err)
	}

	return &LocalStore{db: db, path: path}, nil
}

// Close closes the underlying database.
func (s *LocalStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the on-disk location of the store.
func (s *LocalStore) Path() string { return s.path }

func (s *LocalStore) Name() string { return "local" }

// GetSecrets returns all values stored for env keyed by their stored names
// (which may carry the key-path separator).
func (s *LocalStore) GetSecrets(ctx context.Context, env string) (map[string]any, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, value FROM secrets WHERE env = ? ORDER BY name`, env)
	if err != nil {
		return nil, &RetrievalError{Provider: s.Name(), Env: env, Err: fmt.Errorf("query secrets: %w", err)}
	}
	defer rows.Close()

	out := map[string]any{}
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, &RetrievalError{Provider: s.Name(), Env: env, Err: fmt.Errorf("scan secret: %w", err)}
		}
		out[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, &RetrievalError{Provider: s.Name(), Env: env, Err: err}
	}
	return out, nil
}

// Set stores or replaces one secret for env.
func (s *LocalStore) Set(ctx context.Context, env, name, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO secrets (env, name, value) VALUES (?, ?, ?)
         ON CONFLICT(env, name) DO UPDATE SET value = excluded.value`,
		env, name, value,
	)
	if err != nil {
		return fmt.Errorf("store secret %q for env %q: %w", name, env, err)
	}
	return nil
}

// Delete removes one secret for env. Deleting an absent secret is not an
// error.
func (s *LocalStore) Delete(ctx context.Context, env, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM secrets WHERE env = ? AND name = ?`, env, name); err != nil {
		return fmt.Errorf("delete secret %q for env %q: %w", name, env, err)
	}
	return nil
}

// List returns the stored secret names for env, in sorted order.
func (s *LocalStore) List(ctx context.Context, env string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM secrets WHERE env = ? ORDER BY name`, env)
	if err != nil {
		return nil, fmt.Errorf("list secrets: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan secret name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

var _ Provider = (*LocalStore)(nil)
