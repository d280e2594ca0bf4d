package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/text/cases"

	"strata/internal/keypath"
	"strata/internal/merge"
)

var foldKey = cases.Fold()

// DotenvSource reads KEY=VALUE pairs from a dotenv file. Keys carrying the
// environment-variable prefix are stripped and unflattened through the
// key-path codec; dotted keys nest on the dots; anything else becomes a
// top-level key. A missing file is an empty source.
type DotenvSource struct {
	Path      string
	Prefix    string
	Separator string
}

func (s *DotenvSource) Name() string { return "dotenv" }

func (s *DotenvSource) Load(ctx context.Context) (merge.Map, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(s.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return merge.Map{}, nil
		}
		return nil, fmt.Errorf("stat dotenv file %s: %w", s.Path, err)
	}

	values, err := godotenv.Read(s.Path)
	if err != nil {
		return nil, &ParseError{Path: s.Path, Err: err}
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := merge.Map{}
	for _, k := range keys {
		value := values[k]
		switch {
		case s.Prefix != "" && strings.HasPrefix(k, s.Prefix):
			rest := strings.TrimPrefix(k, s.Prefix)
			path, err := keypath.Split(rest, s.Separator)
			if err != nil {
				return nil, err
			}
			if err := keypath.SetAtPath(out, path, value, k); err != nil {
				return nil, err
			}
		case strings.Contains(k, "."):
			path, err := keypath.Split(k, ".")
			if err != nil {
				return nil, err
			}
			if err := keypath.SetAtPath(out, path, value, k); err != nil {
				return nil, err
			}
		default:
			out[foldKey.String(k)] = value
		}
	}
	return out, nil
}

var _ Source = (*DotenvSource)(nil)
