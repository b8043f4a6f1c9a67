package patterns

import "testing"

func TestFoldIndex(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		needle    string
		wantStart int
		wantEnd   int
		wantOK    bool
	}{
		{name: "ascii", text: "Modern JAZZ harmony", needle: "jazz", wantStart: 7, wantEnd: 11, wantOK: true},
		{name: "thai", text: "ดนตรีไทย and jazz", needle: "ดนตรีไทย", wantStart: 0, wantEnd: 24, wantOK: true},
		{name: "after thai", text: "ระนาด Jazz", needle: "jazz", wantStart: 16, wantEnd: 20, wantOK: true},
		{name: "missing", text: "piphat", needle: "jazz", wantOK: false},
		{name: "empty needle", text: "piphat", needle: "", wantOK: false},
		{name: "sharp s expands", text: "Straße Jazz", needle: "jazz", wantStart: 8, wantEnd: 12, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Fold(tt.text)
			start, end, ok := f.Index(tt.needle)
			if ok != tt.wantOK {
				t.Fatalf("Index(%q) ok = %v, want %v", tt.needle, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("Index(%q) = [%d,%d), want [%d,%d)", tt.needle, start, end, tt.wantStart, tt.wantEnd)
			}
			if got := FoldString(tt.text[start:end]); got != tt.needle {
				t.Errorf("original span %q folds to %q, want %q", tt.text[start:end], got, tt.needle)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	// "é" as e + combining acute composes to a single rune.
	if got := Normalize("e\u0301"); got != "\u00e9" {
		t.Errorf("Normalize() = %q, want %q", got, "\u00e9")
	}
}
