package main

import (
	"strings"
	"testing"
)

func TestDumpRedactsSecrets(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "config.yaml", "debug: true\ndb:\n  host: localhost\n  password: hunter2\n")

	out, _, err := runCLI(t, cliRegistry(), "dump", "--config-dir", dir, "--env", "development")
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	requireContains(t, out, "host: localhost")
	if strings.Contains(out, "hunter2") {
		t.Fatalf("dump output leaked secret value: %q", out)
	}
	requireContains(t, out, "<redacted>")
}

func TestDumpMergesEnvironmentFile(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "config.yaml", "db:\n  host: localhost\n  port: 5432\n")
	writeConfigFile(t, dir, "config.production.yaml", "db:\n  port: 5433\n")

	out, _, err := runCLI(t, cliRegistry(), "dump", "--config-dir", dir, "--env", "production", "--format", "json")
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	requireContains(t, out, `"port": 5433`)
	requireContains(t, out, `"host": "localhost"`)
}
