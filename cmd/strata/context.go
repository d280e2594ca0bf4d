package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"log/slog"

	"strata/internal/loader"
	"strata/internal/logging"
	"strata/internal/model"
	"strata/internal/schema"
	"strata/internal/secrets"
	"strata/internal/source"
)

// commandContext carries the persistent flag values and the model registry
// shared by every subcommand.
type commandContext struct {
	registry *model.Registry

	configDir   string
	environment string
	modelName   string
	schemaPath  string
	lenientYAML bool
	secretsDB   string
	logLevel    string
	logFormat   string
}

func newCommandContext(registry *model.Registry) *commandContext {
	return &commandContext{registry: registry}
}

func (c *commandContext) logger() *slog.Logger {
	logger, err := logging.New(logging.Options{Level: c.logLevel, Format: c.logFormat})
	if err != nil {
		return logging.NewNop()
	}
	return logger
}

// descriptor resolves --model against the registry.
func (c *commandContext) descriptor() (*model.Descriptor, error) {
	name := strings.TrimSpace(c.modelName)
	if name == "" {
		return nil, errors.New("--model is required for this command")
	}
	return c.registry.Lookup(name)
}

// schemaDocument resolves a schema from --model (generated) or --schema
// (read from disk, JSON or YAML by extension).
func (c *commandContext) schemaDocument() (map[string]any, error) {
	if strings.TrimSpace(c.modelName) != "" {
		desc, err := c.descriptor()
		if err != nil {
			return nil, err
		}
		return schema.Generate(desc)
	}
	if strings.TrimSpace(c.schemaPath) != "" {
		return readSchemaFile(c.schemaPath)
	}
	return nil, errors.New("either --model or --schema is required for this command")
}

func readSchemaFile(path string) (map[string]any, error) {
	doc, err := source.ParseFile(path, false, nil)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	return doc, nil
}

// newLoader builds a loader from the persistent flags. The returned close
// function releases the local secrets store when one was opened.
func (c *commandContext) newLoader(desc *model.Descriptor) (*loader.Loader, func() error, error) {
	opts := loader.Options{
		ConfigDir:   c.configDir,
		Environment: strings.TrimSpace(c.environment),
		LenientYAML: c.lenientYAML,
		Logger:      c.logger(),
	}

	closeStore := func() error { return nil }
	if path := strings.TrimSpace(c.secretsDB); path != "" {
		store, err := secrets.OpenLocalStore(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open secrets store: %w", err)
		}
		opts.Secrets = store
		closeStore = store.Close
	}

	return loader.New(desc, opts), closeStore, nil
}

// openLocalStore opens the --secrets-db store for the secrets subcommands,
// creating parent directories on demand.
func (c *commandContext) openLocalStore() (*secrets.LocalStore, error) {
	path := strings.TrimSpace(c.secretsDB)
	if path == "" {
		return nil, errors.New("--secrets-db is required for this command")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create secrets store directory %q: %w", dir, err)
		}
	}
	return secrets.OpenLocalStore(path)
}

// activeEnvironment mirrors the loader's environment resolution for commands
// that touch environment-scoped data without performing a load.
func activeEnvironment(c *commandContext) string {
	if env := strings.TrimSpace(c.environment); env != "" {
		return env
	}
	if env := strings.TrimSpace(os.Getenv(loader.DefaultEnvKey)); env != "" {
		return env
	}
	return loader.DefaultEnvironment
}

// readJSONFile decodes one JSON document into a mapping.
func readJSONFile(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}
