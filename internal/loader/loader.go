package loader

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"strata/internal/keypath"
	"strata/internal/logging"
	"strata/internal/merge"
	"strata/internal/model"
	"strata/internal/redact"
	"strata/internal/secrets"
	"strata/internal/source"
)

const (
	// DefaultEnvKey selects the active environment when Options.Environment
	// is not set explicitly.
	DefaultEnvKey = "STRATA_ENV"
	// DefaultEnvironment is used when the selector variable is unset.
	DefaultEnvironment = "development"
	// DefaultEnvPrefix marks process environment variables that feed the
	// configuration.
	DefaultEnvPrefix = "APP__"
)

// Options configures a Loader. The zero value is usable: defaults are
// applied by New. There is no package-level state; two Loaders with
// different Options never interfere.
type Options struct {
	// ConfigDir holds config.<ext>, config.<env>.<ext> and .env.
	ConfigDir string
	// Environment pins the environment explicitly. When empty the EnvKey
	// variable is consulted at each load, falling back to
	// DefaultEnvironment.
	Environment string
	EnvKey      string
	// EnvPrefix and Separator drive the key-path codec for the dotenv,
	// secrets, and environment tiers.
	EnvPrefix string
	Separator string
	// DisableDotenv skips the .env tier.
	DisableDotenv bool
	// LenientYAML opts into the single-leading-space recovery heuristic for
	// YAML files. Off by default: strict parse failures surface immediately.
	LenientYAML bool
	// Secrets supplies the secrets tier. Nil means no secrets.
	Secrets secrets.Provider
	Logger  *slog.Logger
	// RedactPatterns and RedactPaths extend the redaction rules applied by
	// Redact. Patterns nil means the default substring set.
	RedactPatterns []string
	RedactPaths    []string
}

// Result is a successful load: the typed settings value and the exact merged
// mapping that produced it (for observability; callers must pass it through
// Redact before printing).
type Result struct {
	Settings any
	Merged   merge.Map
}

// Loader performs layered loads for one settings model.
type Loader struct {
	desc     *model.Descriptor
	opts     Options
	logger   *slog.Logger
	redactor *redact.Redactor
}

// New builds a Loader for desc. desc may be nil for callers that only need
// the merged mapping (Merged); Load requires it.
func New(desc *model.Descriptor, opts Options) *Loader {
	if opts.ConfigDir == "" {
		opts.ConfigDir = "config"
	}
	if opts.EnvKey == "" {
		opts.EnvKey = DefaultEnvKey
	}
	if opts.EnvPrefix == "" {
		opts.EnvPrefix = DefaultEnvPrefix
	}
	if opts.Separator == "" {
		opts.Separator = keypath.DefaultSeparator
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Loader{
		desc:     desc,
		opts:     opts,
		logger:   logger,
		redactor: redact.New(opts.RedactPatterns, opts.RedactPaths),
	}
}

// Environment resolves the active environment name for the next load.
func (l *Loader) Environment() string {
	if l.opts.Environment != "" {
		return l.opts.Environment
	}
	if env := strings.TrimSpace(os.Getenv(l.opts.EnvKey)); env != "" {
		return env
	}
	return DefaultEnvironment
}

// Merged reads every source fresh and folds them in precedence order.
// Overrides, when non-nil, form the highest tier. The returned mapping is
// owned by the caller; no reference to it is retained.
func (l *Loader) Merged(ctx context.Context, overrides merge.Map) (merge.Map, error) {
	env := l.Environment()

	sources := []source.Source{
		&source.FileSource{Dir: l.opts.ConfigDir, Stem: "config", Lenient: l.opts.LenientYAML, Logger: l.logger},
		&source.FileSource{Dir: l.opts.ConfigDir, Stem: "config." + env, Lenient: l.opts.LenientYAML, Logger: l.logger},
	}
	if !l.opts.DisableDotenv {
		sources = append(sources, &source.DotenvSource{
			Path:      filepath.Join(l.opts.ConfigDir, ".env"),
			Prefix:    l.opts.EnvPrefix,
			Separator: l.opts.Separator,
		})
	}
	if l.opts.Secrets != nil {
		sources = append(sources, &source.SecretsSource{
			Provider:    l.opts.Secrets,
			Environment: env,
			Separator:   l.opts.Separator,
		})
	}
	sources = append(sources, &source.EnvSource{Prefix: l.opts.EnvPrefix, Separator: l.opts.Separator})

	merged := merge.Map{}
	for _, src := range sources {
		layer, err := src.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load source %s: %w", src.Name(), err)
		}
		l.logger.Debug("loaded configuration source", "source", src.Name(), "keys", len(layer), "environment", env)
		merged = merge.Deep(merged, layer)
	}
	if overrides != nil {
		merged = merge.Deep(merged, overrides)
	}
	return merged, nil
}

// Load performs a full load: merge all tiers, then materialize and validate
// the result. A *model.ValidationError is a normal outcome for the caller to
// present; every other error is a source-level failure. No partial result is
// ever returned.
func (l *Loader) Load(ctx context.Context, overrides merge.Map) (*Result, error) {
	if l.desc == nil {
		return nil, fmt.Errorf("loader has no settings model bound")
	}

	merged, err := l.Merged(ctx, overrides)
	if err != nil {
		return nil, err
	}

	settings, err := model.Materialize(merged, l.desc)
	if err != nil {
		return nil, err
	}

	return &Result{Settings: settings, Merged: merged}, nil
}

// Redact masks secret-bearing values of m per the loader's redaction rules.
func (l *Loader) Redact(m merge.Map) merge.Map {
	return l.redactor.Apply(m)
}
