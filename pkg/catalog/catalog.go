// Package catalog is the static feature taxonomy and dataset schema shipped
// with the extracted datasets.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Feature is one taxonomy entry.
type Feature struct {
	Name        string   `yaml:"name" json:"feature_name"`
	Category    string   `yaml:"-" json:"category"`
	Description string   `yaml:"description" json:"description"`
	SubTypeKind string   `yaml:"sub_type_kind" json:"-"`
	SubTypes    []string `yaml:"sub_types" json:"-"`
}

// Category groups taxonomy features.
type Category struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Features    []Feature `yaml:"features"`
}

// Catalog is the loaded taxonomy. It is read-only after Load.
type Catalog struct {
	Version         string              `yaml:"version"`
	Name            string              `yaml:"name"`
	Description     string              `yaml:"description"`
	Categories      []Category          `yaml:"categories"`
	AudioFeatures   map[string][]string `yaml:"audio_features"`
	AnnotationTypes map[string][]string `yaml:"annotation_types"`
}

// Row is one line of the feature catalog table.
type Row struct {
	FeatureName string `json:"feature_name" yaml:"feature_name"`
	Category    string `json:"category" yaml:"category"`
	Description string `json:"description" yaml:"description"`
	SubTypes    string `json:"sub_types" yaml:"sub_types"` // JSON array
}

// RowColumns is the column order of the catalog table.
var RowColumns = []string{"feature_name", "category", "description", "sub_types"}

// SchemaCategory is a category entry in the dataset schema.
type SchemaCategory struct {
	Description string   `json:"description" yaml:"description"`
	Features    []string `json:"features" yaml:"features"`
}

// Schema is the dataset schema document.
type Schema struct {
	Version         string                    `json:"version" yaml:"version"`
	Name            string                    `json:"name" yaml:"name"`
	Description     string                    `json:"description" yaml:"description"`
	Categories      map[string]SchemaCategory `json:"categories" yaml:"categories"`
	AudioFeatures   map[string][]string       `json:"audio_features" yaml:"audio_features"`
	AnnotationTypes map[string][]string       `json:"annotation_types" yaml:"annotation_types"`
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Load(defaultCatalog)
})

// Default returns the embedded catalog, parsed once.
func Default() (*Catalog, error) {
	return loadDefault()
}

// Load parses a catalog file.
func Load(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(c.Categories) == 0 {
		return nil, fmt.Errorf("catalog has no categories")
	}
	for i := range c.Categories {
		cat := &c.Categories[i]
		if cat.Name == "" {
			return nil, fmt.Errorf("catalog category %d has no name", i)
		}
		for j := range cat.Features {
			cat.Features[j].Category = cat.Name
		}
	}
	return &c, nil
}

// Rows flattens the taxonomy into table rows in category order.
func (c *Catalog) Rows() ([]Row, error) {
	var rows []Row
	for _, cat := range c.Categories {
		for _, f := range cat.Features {
			subTypes := f.SubTypes
			if subTypes == nil {
				subTypes = []string{}
			}
			encoded, err := json.Marshal(subTypes)
			if err != nil {
				return nil, fmt.Errorf("encode sub types of %s: %w", f.Name, err)
			}
			rows = append(rows, Row{
				FeatureName: f.Name,
				Category:    cat.Name,
				Description: f.Description,
				SubTypes:    string(encoded),
			})
		}
	}
	return rows, nil
}

// Schema builds the dataset schema document.
func (c *Catalog) Schema() Schema {
	s := Schema{
		Version:         c.Version,
		Name:            c.Name,
		Description:     c.Description,
		Categories:      make(map[string]SchemaCategory, len(c.Categories)),
		AudioFeatures:   copyGroups(c.AudioFeatures),
		AnnotationTypes: copyGroups(c.AnnotationTypes),
	}
	for _, cat := range c.Categories {
		names := make([]string, len(cat.Features))
		for i, f := range cat.Features {
			names[i] = f.Name
		}
		s.Categories[cat.Name] = SchemaCategory{Description: cat.Description, Features: names}
	}
	return s
}

// Feature looks a feature up by name.
func (c *Catalog) Feature(name string) (Feature, bool) {
	for _, cat := range c.Categories {
		for _, f := range cat.Features {
			if f.Name == name {
				return f, true
			}
		}
	}
	return Feature{}, false
}

func copyGroups(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	for k, v := range in {
		out[k] = append([]string(nil), v...)
	}
	return out
}
