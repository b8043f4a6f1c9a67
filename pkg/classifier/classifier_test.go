package classifier

import (
	"testing"

	"github.com/kitsanannam-hue/esaan-dataset/models"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/patterns"
)

func newTestClassifier(t *testing.T, detect bool) *Classifier {
	t.Helper()
	reg, err := patterns.Default()
	if err != nil {
		t.Fatalf("failed to load registry: %v", err)
	}
	return New(reg, detect)
}

func TestFlags(t *testing.T) {
	c := newTestClassifier(t, false)

	tests := []struct {
		name string
		text string
		want models.PageFlags
	}{
		{name: "empty", text: "", want: models.PageFlags{}},
		{name: "jazz and fusion", text: "Jazz meets fusion here", want: models.PageFlags{HasJazz: true, HasFusion: true}},
		{name: "thai music in thai", text: "ดนตรีไทย", want: models.PageFlags{HasThaiMusic: true}},
		{name: "thai music spaced", text: "Thai   music", want: models.PageFlags{HasThaiMusic: true}},
		{name: "ml terms", text: "a neural model trained on a DATASET", want: models.PageFlags{HasMLTerms: true}},
		{name: "cross cultural", text: "cross-cultural blending", want: models.PageFlags{HasFusion: true}},
		{name: "nothing", text: "plain prose", want: models.PageFlags{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Flags(tt.text); got != tt.want {
				t.Errorf("Flags(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestLanguageDisabled(t *testing.T) {
	c := newTestClassifier(t, false)
	if got := c.Language("jazz harmony"); got != "" {
		t.Errorf("Language() = %q with detection off, want empty", got)
	}
}

func TestLanguage(t *testing.T) {
	c := newTestClassifier(t, true)
	tests := []struct {
		text string
		want string
	}{
		{text: "การศึกษาดนตรีไทยร่วมสมัยกับดนตรีแจ๊ส", want: "th"},
		{text: "This chapter describes the improvisation practice of jazz musicians.", want: "en"},
		{text: "   ", want: ""},
	}
	for _, tt := range tests {
		if got := c.Language(tt.text); got != tt.want {
			t.Errorf("Language(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
