// Package testsupport builds throwaway config directories for tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// ConfigDirOption customizes the generated config directory.
type ConfigDirOption func(*dirBuilder)

type dirBuilder struct {
	t   testing.TB
	dir string
}

// ConfigDir creates a temp config directory and applies the options, each of
// which writes one file into it.
func ConfigDir(t testing.TB, opts ...ConfigDirOption) string {
	t.Helper()

	builder := &dirBuilder{t: t, dir: t.TempDir()}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.dir
}

// WithBaseFile writes config.yaml.
func WithBaseFile(content string) ConfigDirOption {
	return func(b *dirBuilder) {
		b.write("config.yaml", content)
	}
}

// WithEnvFile writes config.<env>.yaml.
func WithEnvFile(env, content string) ConfigDirOption {
	return func(b *dirBuilder) {
		b.write("config."+env+".yaml", content)
	}
}

// WithDotenv writes the .env file.
func WithDotenv(content string) ConfigDirOption {
	return func(b *dirBuilder) {
		b.write(".env", content)
	}
}

// WithFile writes an arbitrary file, for JSON and TOML candidates.
func WithFile(name, content string) ConfigDirOption {
	return func(b *dirBuilder) {
		b.write(name, content)
	}
}

func (b *dirBuilder) write(name, content string) {
	b.t.Helper()
	path := filepath.Join(b.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		b.t.Fatalf("write %s: %v", name, err)
	}
}
