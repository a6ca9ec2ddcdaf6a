package main

import (
	"bytes"
	"strings"
	"testing"
)

// TestNewRootCmd tests the command tree wiring.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	t.Run("registers all subcommands", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()

		want := map[string]bool{"grab": false, "narrate": false, "version": false}
		for _, sub := range cmd.Commands() {
			if _, ok := want[sub.Name()]; ok {
				want[sub.Name()] = true
			}
		}
		for name, found := range want {
			if !found {
				t.Errorf("expected subcommand %q", name)
			}
		}
	})

	t.Run("has a persistent verbose flag", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		if cmd.PersistentFlags().Lookup("verbose") == nil {
			t.Error("expected --verbose flag")
		}
	})

	t.Run("help runs without error", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs([]string{"--help"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out.String(), "wikigrab") {
			t.Errorf("expected help output, got %q", out.String())
		}
	})
}

// TestGrabCmdFlags tests the grab command's flag surface.
func TestGrabCmdFlags(t *testing.T) {
	t.Parallel()

	cmd := NewGrabCmd()
	for _, flag := range []string{"text-output", "html-output", "image-dir", "manifest", "timeout", "config"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected flag %q", flag)
		}
	}
}

// TestGrabCmdRejectsExtraArgs tests positional argument validation.
func TestGrabCmdRejectsExtraArgs(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"grab", "one", "two"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for extra arguments")
	}
}
