package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Empty path",
			input:    "",
			expected: "",
		},
		{
			name:     "Absolute path",
			input:    "/absolute/path",
			expected: "/absolute/path",
		},
		{
			name:     "Relative path",
			input:    "relative/path",
			expected: "relative/path",
		},
		{
			name:     "Home directory only",
			input:    "~",
			expected: home,
		},
		{
			name:     "Home directory with forward slash",
			input:    "~/data",
			expected: filepath.Join(home, "data"),
		},
		{
			name:     "Home directory with backslash (simulated)",
			input:    `~\data`,
			expected: filepath.Join(home, "data"),
		},
		{
			name:     "Invalid tilde use (middle)",
			input:    "/path/~/test",
			expected: "/path/~/test",
		},
		{
			name:     "Invalid tilde use (no separator)",
			input:    "~user",
			expected: "~user", // We don't support ~user expansion currently
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expandPath(tt.input)
			if got != tt.expected {
				t.Errorf("expandPath(%q) = %q; want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}

	langs := cfg.Languages()
	if len(langs) != 5 || langs[0] != "en" {
		t.Errorf("Languages() = %v; want en-first default list", langs)
	}

	if got := cfg.TopK(); got != 4 {
		t.Errorf("TopK() = %d; want 4", got)
	}

	if got := cfg.Model("openai"); got != "" {
		t.Errorf("Model(openai) = %q; want empty for unset map", got)
	}

	cfg.Models = map[string]string{"openai": "gpt-4o-mini"}
	if got := cfg.Model("openai"); got != "gpt-4o-mini" {
		t.Errorf("Model(openai) = %q; want gpt-4o-mini", got)
	}

	cfg.TranscriptLanguages = []string{"tr"}
	if langs := cfg.Languages(); len(langs) != 1 || langs[0] != "tr" {
		t.Errorf("Languages() = %v; want override [tr]", langs)
	}
}
