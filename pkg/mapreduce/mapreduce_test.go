package mapreduce

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/kitsanannam-hue/esaan-dataset/pkg/analytics"
)

func TestMapReduce(t *testing.T) {
	a := &analytics.Analytics{}
	pages := []string{"khaen phin", "khaen ระนาด", ""}

	var maps []map[string]int
	for _, p := range pages {
		maps = append(maps, Map(p, a))
	}
	got := Reduce(maps)
	want := map[string]int{"khaen": 2, "phin": 1, "ระนาด": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reduce() = %v, want %v", got, want)
	}
}

func TestTopKeywords(t *testing.T) {
	counts := map[string]int{
		"khaen":   5,
		"phin":    5,
		"ranat":   2,
		"broken(": 9,
		"key:":    9,
	}

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{name: "ties broken by word", n: 2, want: []string{"khaen:5", "phin:5"}},
		{name: "n larger than set", n: 10, want: []string{"khaen:5", "phin:5", "ranat:2"}},
		{name: "zero", n: 0, want: []string{}},
		{name: "negative", n: -1, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TopKeywords(counts, tt.n); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TopKeywords() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWriteTopKeywords(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTopKeywords(&buf, map[string]int{"jazz": 3, "thang": 1}, 5); err != nil {
		t.Fatalf("WriteTopKeywords() error = %v", err)
	}
	want := "1. jazz: 3\n2. thang: 1\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}
