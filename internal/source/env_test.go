package source_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"strata/internal/keypath"
	"strata/internal/merge"
	"strata/internal/source"
)

func TestEnvSourceUnflattensPrefixedVariables(t *testing.T) {
	src := &source.EnvSource{
		Prefix:    "APP__",
		Separator: "__",
		Environ: func() []string {
			return []string{
				"APP__DB__HOST=host-override",
				"APP__DEBUG=true",
				"PATH=/usr/bin",
				"APPETITE=large",
			}
		},
	}

	out, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	want := merge.Map{
		"db":    merge.Map{"host": "host-override"},
		"debug": "true",
	}
	if !reflect.DeepEqual(out, want) {
		t.Fatalf("unexpected mapping: %#v", out)
	}
}

func TestEnvSourcePrefixOnlyMatchesWholePrefix(t *testing.T) {
	src := &source.EnvSource{
		Prefix:    "APP__",
		Separator: "__",
		Environ:   func() []string { return []string{"APP_SINGLE=1"} },
	}
	out, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("APP_SINGLE must not match prefix APP__: %#v", out)
	}
}

func TestEnvSourceConflictIsSurfaced(t *testing.T) {
	src := &source.EnvSource{
		Prefix:    "APP__",
		Separator: "__",
		Environ: func() []string {
			return []string{"APP__DB=sqlite", "APP__DB__HOST=x"}
		},
	}
	_, err := src.Load(context.Background())
	var conflict *keypath.PathConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected PathConflictError, got %v", err)
	}
	if conflict.Key != "APP__DB__HOST" {
		t.Fatalf("conflict should name the full variable, got %q", conflict.Key)
	}
}

func TestEnvSourceUsesProcessEnvironment(t *testing.T) {
	t.Setenv("STRATA_TEST__VALUE", "42")

	src := &source.EnvSource{Prefix: "STRATA_TEST__", Separator: "__"}
	out, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if out["value"] != "42" {
		t.Fatalf("expected value from process env, got %#v", out)
	}
}
