package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"strata/internal/model"
)

type cliSettings struct {
	Debug bool `json:"debug"`
	DB    struct {
		Host     string `json:"host"`
		Port     int    `json:"port"`
		Password string `json:"password"`
	} `json:"db"`
}

func cliRegistry() *model.Registry {
	registry := model.NewRegistry()
	registry.Register(&model.Descriptor{
		Name: "cli",
		Doc:  "Settings used by the command tests.",
		New: func() any {
			s := &cliSettings{}
			s.DB.Host = "localhost"
			s.DB.Port = 5432
			return s
		},
	})
	return registry
}

func runCLI(t *testing.T, registry *model.Registry, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand(registry)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeConfigFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
