package pkg

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// TestSanitizeInput tests character stripping, trimming, and the length cap
func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text unchanged",
			input: "Go, SQL, Docker",
			want:  "Go, SQL, Docker",
		},
		{
			name:  "markup characters stripped",
			input: `<script>alert("x")</script> O'Brien & co`,
			want:  "scriptalert(x)/script OBrien  co",
		},
		{
			name:  "whitespace trimmed",
			input: "  Jane Doe  ",
			want:  "Jane Doe",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "long input capped",
			input: strings.Repeat("a", 1500),
			want:  strings.Repeat("a", 1000),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeInput(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeInput(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestSanitizeInput_RuneBoundaryCap tests that the cap never splits a multi-byte rune
func TestSanitizeInput_RuneBoundaryCap(t *testing.T) {
	// 999 ASCII bytes followed by a two-byte rune straddling the cap
	input := strings.Repeat("a", 999) + "é" + strings.Repeat("b", 50)

	got := SanitizeInput(input)

	if !utf8.ValidString(got) {
		t.Fatalf("SanitizeInput() returned invalid UTF-8: %q", got[990:])
	}
	if len(got) > 1000 {
		t.Errorf("SanitizeInput() returned %d bytes, want at most 1000", len(got))
	}
	if got != strings.Repeat("a", 999) {
		t.Errorf("SanitizeInput() kept %d bytes, want the rune before the cap dropped whole", len(got))
	}
}
