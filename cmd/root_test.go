package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

const sampleSnapshot = `{
	"session_id": "cmd-test",
	"model": {"id": "claude-sonnet-4-5-20250929"},
	"context_window": {"current_usage": {"input_tokens": 1000, "output_tokens": 500}},
	"cost": {"total_lines_added": 5, "total_lines_removed": 1}
}`

func TestRenderCommand(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dbPath := filepath.Join(t.TempDir(), "sessions.db")

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(sampleSnapshot))
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--plain", "--state-db", dbPath})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	line := out.String()
	for _, want := range []string{"Sonnet 4.5", "$0.01", "1 msg", "+5"} {
		if !strings.Contains(line, want) {
			t.Fatalf("line %q missing %q", line, want)
		}
	}
}

func TestRenderCommandRejectsGarbageStdin(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	rootCmd.SetIn(strings.NewReader("not a snapshot"))
	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"--plain", "--state-db", filepath.Join(t.TempDir(), "s.db")})

	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected an error for non-JSON stdin")
	}
}
