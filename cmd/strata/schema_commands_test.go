package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSchemaWritesJSONFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "schema.json")

	out, _, err := runCLI(t, cliRegistry(), "schema", "--model", "cli", "--output", target)
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	requireContains(t, out, "Wrote schema")

	raw, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	requireContains(t, string(raw), `"properties"`)
	requireContains(t, string(raw), `"debug"`)
}

func TestValidateFileAgainstModelSchema(t *testing.T) {
	dir := t.TempDir()
	good := writeConfigFile(t, dir, "good.yaml", "debug: true\ndb:\n  host: h\n  port: 1\n  password: p\n")
	bad := writeConfigFile(t, dir, "bad.yaml", "debug: yes-please\n")

	out, _, err := runCLI(t, cliRegistry(), "validate-file", good, "--model", "cli")
	if err != nil {
		t.Fatalf("validate-file on valid doc: %v (output %q)", err, out)
	}
	requireContains(t, out, "valid")

	out, _, err = runCLI(t, cliRegistry(), "validate-file", bad, "--model", "cli")
	if err == nil {
		t.Fatal("validate-file accepted a non-boolean debug")
	}
	requireContains(t, out, "debug")
}

func TestSchemaDiffExitsNonZeroOnBreakingChange(t *testing.T) {
	dir := t.TempDir()
	oldSchema := writeConfigFile(t, dir, "old.json",
		`{"type":"object","properties":{"debug":{"type":"boolean"},"name":{"type":"string"}}}`)
	newSchema := writeConfigFile(t, dir, "new.json",
		`{"type":"object","properties":{"debug":{"type":"boolean"}},"required":["debug"]}`)

	out, _, err := runCLI(t, cliRegistry(), "schema-diff", oldSchema, newSchema)
	if err == nil {
		t.Fatal("schema-diff with breaking changes exited zero")
	}
	requireContains(t, out, "breaking")
	requireContains(t, out, "name")
}

func TestSchemaDiffIdenticalSchemas(t *testing.T) {
	dir := t.TempDir()
	doc := `{"type":"object","properties":{"debug":{"type":"boolean"}}}`
	a := writeConfigFile(t, dir, "a.json", doc)
	b := writeConfigFile(t, dir, "b.json", doc)

	out, _, err := runCLI(t, cliRegistry(), "schema-diff", a, b)
	if err != nil {
		t.Fatalf("schema-diff: %v", err)
	}
	requireContains(t, out, "identical")
}

func TestScaffoldReflectsModelDefaults(t *testing.T) {
	out, _, err := runCLI(t, cliRegistry(), "scaffold", "--model", "cli")
	if err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	requireContains(t, out, "host: localhost")
	requireContains(t, out, "port: 5432")
}

func TestScaffoldRefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	target := writeConfigFile(t, dir, "config.yaml", "debug: false\n")

	_, _, err := runCLI(t, cliRegistry(), "scaffold", "--model", "cli", "--output", target)
	if err == nil {
		t.Fatal("scaffold overwrote an existing file without --overwrite")
	}

	if _, _, err := runCLI(t, cliRegistry(), "scaffold", "--model", "cli", "--output", target, "--overwrite"); err != nil {
		t.Fatalf("scaffold --overwrite: %v", err)
	}
}

func TestDocsRendersMarkdownTable(t *testing.T) {
	out, _, err := runCLI(t, cliRegistry(), "docs", "--model", "cli")
	if err != nil {
		t.Fatalf("docs: %v", err)
	}
	requireContains(t, out, "# cli configuration")
	requireContains(t, out, "| Key |")
	requireContains(t, out, "db.host")
}
