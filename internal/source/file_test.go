package source_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"strata/internal/merge"
	"strata/internal/source"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestFileSourceReadsYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.yaml"), "debug: false\ndb:\n  host: localhost\n  port: 5432\n")

	src := &source.FileSource{Dir: dir, Stem: "config"}
	out, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	want := merge.Map{
		"debug": false,
		"db":    merge.Map{"host": "localhost", "port": 5432},
	}
	if !reflect.DeepEqual(out, want) {
		t.Fatalf("unexpected mapping: %#v", out)
	}
}

func TestFileSourceMergesCandidateFormats(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.yaml"), "db:\n  host: localhost\n")
	writeFile(t, filepath.Join(dir, "config.json"), `{"db": {"pool": 4}}`)
	writeFile(t, filepath.Join(dir, "config.toml"), "[db]\nuser = \"app\"\n")

	src := &source.FileSource{Dir: dir, Stem: "config"}
	out, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	db, ok := out["db"].(merge.Map)
	if !ok {
		t.Fatalf("expected nested db mapping, got %#v", out["db"])
	}
	if db["host"] != "localhost" || db["user"] != "app" {
		t.Fatalf("candidates did not merge: %#v", db)
	}
	if pool, ok := db["pool"].(float64); !ok || pool != 4 {
		t.Fatalf("json value missing: %#v", db["pool"])
	}
}

func TestFileSourceMissingDirIsEmpty(t *testing.T) {
	src := &source.FileSource{Dir: filepath.Join(t.TempDir(), "absent"), Stem: "config"}
	out, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("missing files must not error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty mapping, got %#v", out)
	}
}

func TestFileSourceRejectsNonMappingTopLevel(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.yaml"), "- just\n- a\n- list\n")

	src := &source.FileSource{Dir: dir, Stem: "config"}
	_, err := src.Load(context.Background())
	var parseErr *source.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestFileSourceEmptyFileIsEmptyMapping(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.yaml"), "")

	src := &source.FileSource{Dir: dir, Stem: "config"}
	out, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty mapping, got %#v", out)
	}
}

func TestFileSourceInvalidJSONIsParseError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json"), `{"db": `)

	src := &source.FileSource{Dir: dir, Stem: "config"}
	_, err := src.Load(context.Background())
	var parseErr *source.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if parseErr.Path != filepath.Join(dir, "config.json") {
		t.Fatalf("ParseError should carry the file path, got %q", parseErr.Path)
	}
}
