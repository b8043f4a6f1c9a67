package snippet

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestAround(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		pos    int
		window int
		want   string
	}{
		{name: "empty text", text: "", pos: 0, window: 100, want: ""},
		{name: "start of text", text: "abcdef", pos: 0, window: 2, want: "ab"},
		{name: "middle", text: "abcdef", pos: 3, window: 2, want: "bcde"},
		{name: "negative position clamps", text: "abcdef", pos: -10, window: 2, want: "ab"},
		{name: "position past end clamps", text: "abcdef", pos: 99, window: 2, want: "ef"},
		{name: "zero window returns rune at pos", text: "abcdef", pos: 2, window: 0, want: "c"},
		{name: "newlines become spaces", text: "ab\ncd", pos: 2, window: 3, want: "ab cd"},
		{name: "trimmed", text: "  ab  ", pos: 3, window: 10, want: "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Around(tt.text, tt.pos, tt.window)
			if got != tt.want {
				t.Errorf("Around(%q, %d, %d) = %q, want %q", tt.text, tt.pos, tt.window, got, tt.want)
			}
		})
	}
}

func TestAroundPrefixBound(t *testing.T) {
	text := strings.Repeat("x", 500)
	got := Around(text, 0, 100)
	if n := utf8.RuneCountInString(got); n > 100 {
		t.Errorf("Around at position 0 returned %d runes, want at most 100", n)
	}
}

func TestAroundThai(t *testing.T) {
	text := "ดนตรีไทยและแจ๊ส"
	// Byte offset 4 is inside the second Thai rune; it must snap, not split.
	got := Around(text, 4, 2)
	if !utf8.ValidString(got) {
		t.Fatalf("Around returned invalid UTF-8: %q", got)
	}
	if got != "ดนต" {
		t.Errorf("Around = %q, want %q", got, "ดนต")
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		start, end int
		window     int
		want       string
	}{
		{name: "whole text fits", text: "I love jazz music", start: 7, end: 11, window: 50, want: "I love jazz music"},
		{name: "cut both sides", text: "aaaa jazz bbbb", start: 5, end: 9, window: 2, want: "...a jazz b..."},
		{name: "cut right only", text: "jazz bbbb", start: 0, end: 4, window: 2, want: "jazz b..."},
		{name: "cut left only", text: "aaaa jazz", start: 5, end: 9, window: 2, want: "...a jazz"},
		{name: "empty text", text: "", start: 0, end: 0, window: 10, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(tt.text, tt.start, tt.end, tt.window)
			if got != tt.want {
				t.Errorf("Match() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("ระนาดเอก", 3); got != "ระน" {
		t.Errorf("Truncate() = %q, want %q", got, "ระน")
	}
	if got := Truncate("abc", 10); got != "abc" {
		t.Errorf("Truncate() = %q, want %q", got, "abc")
	}
}

func TestSpanHasNoMarkers(t *testing.T) {
	got := Span("aaaa jazz bbbb", 5, 9, 2)
	if got != "a jazz b" {
		t.Errorf("Span() = %q, want %q", got, "a jazz b")
	}
}
