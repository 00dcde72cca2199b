package samas

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category is a label code and its display name.
type Category struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

var defaultCategories = []Category{
	{Code: "D", Name: "द्वंद्व समास"},
	{Code: "T", Name: "तत्पुरुष समास"},
	{Code: "M", Name: "मध्यपदलोपी समास"},
	{Code: "U", Name: "उपपद समास"},
	{Code: "K", Name: "कर्मधारय समास"},
	{Code: "B", Name: "बहुव्रीहि समास"},
	{Code: "DV", Name: "द्विगु समास"},
}

// CategoryMapping maps label codes to display names. The zero value maps nothing.
// A mapping never changes after construction.
type CategoryMapping struct {
	names map[string]string
	order []string
}

// NewCategoryMapping builds a mapping from the given categories. Later entries for the
// same code replace earlier ones but keep the original position.
func NewCategoryMapping(cats []Category) CategoryMapping {
	m := CategoryMapping{names: make(map[string]string, len(cats))}
	for _, c := range cats {
		code := strings.TrimSpace(c.Code)
		if code == "" {
			continue
		}
		if _, seen := m.names[code]; !seen {
			m.order = append(m.order, code)
		}
		m.names[code] = strings.TrimSpace(c.Name)
	}
	return m
}

// DefaultCategoryMapping returns the built-in Hindi category names.
func DefaultCategoryMapping() CategoryMapping {
	return NewCategoryMapping(defaultCategories)
}

// LoadCategoryMapping reads overrides from a YAML file and merges them over the
// built-in mapping. An empty path returns the defaults.
//
// Expected format:
//
//	categories:
//	  - code: T
//	    name: तत्पुरुष समास
//	  - code: A
//	    name: अव्ययीभाव समास
func LoadCategoryMapping(path string) (CategoryMapping, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultCategoryMapping(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return CategoryMapping{}, fmt.Errorf("read categories: %w", err)
	}
	var doc struct {
		Categories []Category `yaml:"categories"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return CategoryMapping{}, fmt.Errorf("decode categories: %w", err)
	}
	merged := make([]Category, 0, len(defaultCategories)+len(doc.Categories))
	merged = append(merged, defaultCategories...)
	merged = append(merged, doc.Categories...)
	return NewCategoryMapping(merged), nil
}

// Display returns the display name for code, or code itself when it is unknown.
func (m CategoryMapping) Display(code string) string {
	if name, ok := m.names[code]; ok && name != "" {
		return name
	}
	return code
}

// Lookup returns the display name for code and whether it is known.
func (m CategoryMapping) Lookup(code string) (string, bool) {
	name, ok := m.names[code]
	return name, ok
}

// Categories lists the mapping in definition order.
func (m CategoryMapping) Categories() []Category {
	out := make([]Category, 0, len(m.order))
	for _, code := range m.order {
		out = append(out, Category{Code: code, Name: m.names[code]})
	}
	return out
}

// Len returns the number of known codes.
func (m CategoryMapping) Len() int {
	return len(m.order)
}

// UnknownLabels returns the label codes used by ds that the mapping does not know,
// sorted.
func (m CategoryMapping) UnknownLabels(ds *Dataset) []string {
	var out []string
	for code := range ds.LabelCounts() {
		if _, ok := m.names[code]; !ok {
			out = append(out, code)
		}
	}
	sort.Strings(out)
	return out
}
