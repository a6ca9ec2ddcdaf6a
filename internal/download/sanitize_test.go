package download

import "testing"

// TestSanitizeFilename tests filesystem-unsafe character replacement.
func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain name passes through",
			input: "Example.jpg",
			want:  "Example.jpg",
		},
		{
			name:  "namespace colon is replaced",
			input: "File:Example.jpg",
			want:  "File_Example.jpg",
		},
		{
			name:  "all unsafe characters are replaced",
			input: `a\b/c*d?e:f"g<h>i|j`,
			want:  "a_b_c_d_e_f_g_h_i_j",
		},
		{
			name:  "unicode is preserved",
			input: "File:Café_terrace.jpg",
			want:  "File_Café_terrace.jpg",
		},
		{
			name:  "spaces are preserved",
			input: "File:Golden Gate Bridge.jpg",
			want:  "File_Golden Gate Bridge.jpg",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SanitizeFilename(tt.input); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
