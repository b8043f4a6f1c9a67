package analytics

import (
	"reflect"
	"testing"
)

func TestWordFrequency(t *testing.T) {
	a := &Analytics{}

	tests := []struct {
		name string
		text string
		want map[string]int
	}{
		{
			name: "stopwords and punctuation dropped",
			text: "The jazz, the JAZZ! and swing.",
			want: map[string]int{"jazz": 2, "swing": 1},
		},
		{
			name: "thai tokens kept",
			text: "ดนตรีไทย ระนาด ดนตรีไทย",
			want: map[string]int{"ดนตรีไทย": 2, "ระนาด": 1},
		},
		{
			name: "thesis scaffolding dropped",
			text: "Chapter 3 Figure 2 khaen",
			want: map[string]int{"khaen": 1},
		},
		{
			name: "empty",
			text: "",
			want: map[string]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.WordFrequency(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("WordFrequency() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTopNWordsDeterministic(t *testing.T) {
	a := &Analytics{}
	text := "phin khaen ranat phin khaen phin"
	want := []string{"phin", "khaen"}
	for i := 0; i < 5; i++ {
		if got := a.TopNWords(text, 2); !reflect.DeepEqual(got, want) {
			t.Fatalf("TopNWords() = %v, want %v", got, want)
		}
	}
	if got := a.TopNWords(text, 10); len(got) != 3 {
		t.Errorf("TopNWords(10) returned %d words, want 3", len(got))
	}
}

func TestWordCount(t *testing.T) {
	a := &Analytics{}
	if got := a.WordCount("  one two\nthree\t"); got != 3 {
		t.Errorf("WordCount() = %d, want 3", got)
	}
}

func TestIsStopword(t *testing.T) {
	if !IsStopword("The") {
		t.Error("IsStopword(The) = false")
	}
	if IsStopword("piphat") {
		t.Error("IsStopword(piphat) = true")
	}
}
