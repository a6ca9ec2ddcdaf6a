package prompt

import (
	"bytes"
	"strings"
	"testing"
)

// TestPrompterLine tests free-form answers.
func TestPrompterLine(t *testing.T) {
	t.Parallel()

	t.Run("returns the trimmed answer", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		p := New(strings.NewReader("  https://en.wikipedia.org/wiki/Gravity  \n"), &out)

		if got := p.Line("URL: "); got != "https://en.wikipedia.org/wiki/Gravity" {
			t.Errorf("unexpected answer: %q", got)
		}
		if !strings.Contains(out.String(), "URL: ") {
			t.Errorf("expected question printed, got %q", out.String())
		}
	})

	t.Run("returns empty on EOF", func(t *testing.T) {
		t.Parallel()

		p := New(strings.NewReader(""), &bytes.Buffer{})
		if got := p.Line("URL: "); got != "" {
			t.Errorf("expected empty answer, got %q", got)
		}
	})
}

// TestPrompterYesNo tests yes/no interpretation.
func TestPrompterYesNo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "lowercase y", input: "y\n", want: true},
		{name: "uppercase Y", input: "Y\n", want: true},
		{name: "yes spelled out is no", input: "yes\n", want: false},
		{name: "n", input: "n\n", want: false},
		{name: "empty", input: "\n", want: false},
		{name: "EOF", input: "", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := New(strings.NewReader(tt.input), &bytes.Buffer{})
			if got := p.YesNo("Download images? "); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

// TestPrompterIntOrDefault tests numeric answers with fallback.
func TestPrompterIntOrDefault(t *testing.T) {
	t.Parallel()

	t.Run("parses a number", func(t *testing.T) {
		t.Parallel()

		p := New(strings.NewReader("25\n"), &bytes.Buffer{})
		if got := p.IntOrDefault("Max images: ", 15); got != 25 {
			t.Errorf("expected 25, got %d", got)
		}
	})

	t.Run("empty answer keeps the default", func(t *testing.T) {
		t.Parallel()

		p := New(strings.NewReader("\n"), &bytes.Buffer{})
		if got := p.IntOrDefault("Max images: ", 15); got != 15 {
			t.Errorf("expected 15, got %d", got)
		}
	})

	t.Run("non-numeric answer warns and keeps the default", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		p := New(strings.NewReader("lots\n"), &out)

		if got := p.IntOrDefault("Max images: ", 15); got != 15 {
			t.Errorf("expected 15, got %d", got)
		}
		if !strings.Contains(out.String(), "Invalid number, using default of 15") {
			t.Errorf("expected warning, got %q", out.String())
		}
	})

	t.Run("negative numbers are passed through", func(t *testing.T) {
		t.Parallel()

		// Range validation happens in config.Validate, not here.
		p := New(strings.NewReader("-3\n"), &bytes.Buffer{})
		if got := p.IntOrDefault("Max images: ", 15); got != -3 {
			t.Errorf("expected -3, got %d", got)
		}
	})
}
