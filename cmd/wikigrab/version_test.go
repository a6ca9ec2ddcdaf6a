package main

import (
	"bytes"
	"strings"
	"testing"
)

// TestVersionCmd tests the version command output.
func TestVersionCmd(t *testing.T) {
	t.Parallel()

	cmd := NewVersionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "wikigrab version") {
		t.Errorf("expected version line, got %q", got)
	}
	if !strings.Contains(got, "commit:") || !strings.Contains(got, "built:") {
		t.Errorf("expected commit and build date lines, got %q", got)
	}
}

// TestGetVersion tests version resolution fallbacks.
func TestGetVersion(t *testing.T) {
	if got := getVersion(); got == "" {
		t.Error("expected non-empty version")
	}
}
