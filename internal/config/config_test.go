package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func write(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := write(t, t.TempDir(), `
[run]
max_steps = 5000
rewrite = true

[output]
color = false
verbose = true
`)

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if c.Run.MaxSteps != 5000 || !c.Run.Rewrite || c.Run.Stats {
		t.Errorf("unexpected run section %+v", c.Run)
	}
	if c.Output.Color == nil || *c.Output.Color {
		t.Errorf("expected color = false")
	}
	if !c.Output.Verbose {
		t.Errorf("expected verbose = true")
	}
	if c.Path != path {
		t.Errorf("expected path %s, got %s", path, c.Path)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		content  string
		expected string
	}{
		{"[run]\nmax_steps = \"many\"", "parse error"},
		{"[run]\nmax_step = 1", "unknown key run.max_step"},
		{"[run]\nmax_steps = -1", "must not be negative"},
	}

	for _, test := range tests {
		_, err := Load(write(t, t.TempDir(), test.content))
		if err == nil || !strings.Contains(err.Error(), test.expected) {
			t.Errorf("%q: expected error containing %q, got %v", test.content, test.expected, err)
		}
	}
}

func TestFindAndLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	write(t, root, "[run]\nstats = true\n")

	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	c, err := FindAndLoad(nested)
	if err != nil {
		t.Fatal(err)
	}
	if c == nil || !c.Run.Stats {
		t.Fatalf("expected the root configuration, got %+v", c)
	}
	if c.Output.Color != nil {
		t.Errorf("expected color to be unset")
	}
}
