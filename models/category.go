package models

import "fmt"

// Category is a keyword subject category. The set is closed; use
// ParseCategory to convert configuration strings.
type Category string

const (
	CategoryThaiMusic     Category = "thai_music"
	CategoryJazz          Category = "jazz"
	CategoryCrossCultural Category = "cross_cultural"
	CategoryMLDataset     Category = "ml_dataset"
	CategoryMusicTheory   Category = "music_theory"
)

// Categories lists every category in report order.
func Categories() []Category {
	return []Category{
		CategoryThaiMusic,
		CategoryJazz,
		CategoryCrossCultural,
		CategoryMLDataset,
		CategoryMusicTheory,
	}
}

// ParseCategory validates a category name.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown keyword category %q", s)
}

// NotationType is the kind of a notation hit.
type NotationType string

const (
	NotationWesternNotes     NotationType = "western_notes"
	NotationScaleDegrees     NotationType = "scale_degrees"
	NotationLaiMode          NotationType = "lai_mode"
	NotationChordProgression NotationType = "chord_progression"
	NotationInterval         NotationType = "interval"
)

// NotationTypes lists every notation type in scan order.
func NotationTypes() []NotationType {
	return []NotationType{
		NotationWesternNotes,
		NotationScaleDegrees,
		NotationLaiMode,
		NotationChordProgression,
		NotationInterval,
	}
}

// ParseNotationType validates a notation type name.
func ParseNotationType(s string) (NotationType, error) {
	for _, t := range NotationTypes() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown notation type %q", s)
}

// Flag names one of the page-level classification flags.
type Flag string

const (
	FlagThaiMusic Flag = "has_thai_music"
	FlagJazz      Flag = "has_jazz"
	FlagMLTerms   Flag = "has_ml_terms"
	FlagFusion    Flag = "has_fusion"
)

// Flags lists the page flags in column order.
func Flags() []Flag {
	return []Flag{FlagThaiMusic, FlagJazz, FlagMLTerms, FlagFusion}
}

// ParseFlag validates a flag name.
func ParseFlag(s string) (Flag, error) {
	for _, f := range Flags() {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown page flag %q", s)
}
