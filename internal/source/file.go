package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"strata/internal/merge"
)

// Extensions lists the structured-file suffixes the file source reads, in the
// order candidates are merged within one tier.
var Extensions = []string{".yaml", ".yml", ".json", ".toml"}

// FileSource reads every existing <dir>/<stem><ext> candidate and merges them
// in candidate order. Stem is "config" for the base tier and "config.<env>"
// for the environment tier.
type FileSource struct {
	Dir     string
	Stem    string
	Lenient bool
	Logger  *slog.Logger
}

func (s *FileSource) Name() string {
	return fmt.Sprintf("file:%s", s.Stem)
}

func (s *FileSource) Load(ctx context.Context) (merge.Map, error) {
	out := merge.Map{}
	for _, ext := range Extensions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(s.Dir, s.Stem+ext)
		raw, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		data, err := s.parse(path, ext, raw)
		if err != nil {
			return nil, err
		}
		out = merge.Deep(out, data)
	}
	return out, nil
}

func (s *FileSource) parse(path, ext string, raw []byte) (merge.Map, error) {
	switch ext {
	case ".yaml", ".yml":
		return parseYAML(path, raw, s.Lenient, s.logger())
	case ".json":
		return parseMapping(path, raw, json.Unmarshal)
	case ".toml":
		return parseMapping(path, raw, toml.Unmarshal)
	default:
		return nil, &ParseError{Path: path, Err: fmt.Errorf("unsupported extension %q", ext)}
	}
}

// ParseFile reads and parses one structured config file by its extension.
// Used for validating standalone documents outside the tiered load.
func ParseFile(path string, lenient bool, logger *slog.Logger) (merge.Map, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	src := &FileSource{Lenient: lenient, Logger: logger}
	return src.parse(path, filepath.Ext(path), raw)
}

func parseMapping(path string, raw []byte, unmarshal func([]byte, any) error) (merge.Map, error) {
	var data any
	if err := unmarshal(raw, &data); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return requireMapping(path, data)
}

func requireMapping(path string, data any) (merge.Map, error) {
	if data == nil {
		return merge.Map{}, nil
	}
	m, ok := data.(map[string]any)
	if !ok {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("top-level value must be a mapping, got %T", data)}
	}
	return m, nil
}

func (s *FileSource) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

var _ Source = (*FileSource)(nil)
