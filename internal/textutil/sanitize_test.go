package textutil_test

import (
	"testing"

	"github.com/juhyuk-code/b-roll-clipping-helper/internal/textutil"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "My Video", "My Video"},
		{"slashes become dashes", "a/b\\c", "a-b-c"},
		{"colon and asterisk become dashes", "Take 2: Final*Cut", "Take 2- Final-Cut"},
		{"unsafe chars removed", `What? "Quoted" <angle> |pipe|`, "What Quoted angle pipe"},
		{"whitespace trimmed", "  padded  ", "padded"},
		{"empty", "", ""},
		{"only whitespace", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := textutil.SanitizeFileName(tt.input); got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"lowercases", "SpaceChannel", 0, "spacechannel"},
		{"spaces and punctuation to underscore", "Space Now!", 0, "space_now"},
		{"digits and hyphens kept", "News-24 HD", 0, "news-24_hd"},
		{"unicode collapses to underscore", "Café TV", 0, "caf__tv"},
		{"empty", "", 0, "unknown"},
		{"only punctuation", "!!!", 0, "unknown"},
		{"capped at maxLen", "averyverylongchannelname", 10, "averyveryl"},
		{"cap retrims trailing separator", "abcdefghi_jkl", 10, "abcdefghi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := textutil.SanitizeToken(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("SanitizeToken(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestEllipsize(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short text unchanged", "hello", 10, "hello"},
		{"exact length unchanged", "hello", 5, "hello"},
		{"truncated with suffix", "hello world", 5, "hello..."},
		{"trims trailing space before suffix", "hello world", 6, "hello..."},
		{"zero max", "hello", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := textutil.Ellipsize(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("Ellipsize(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}
