package record

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category is one of the fixed record categories
type Category string

const (
	Life     Category = "life"
	Work     Category = "work"
	Study    Category = "study"
	Travel   Category = "travel"
	Food     Category = "food"
	Sport    Category = "sport"
	Creation Category = "creation"
	Other    Category = "other"
)

// DefaultCategory is used when a draft leaves the category empty
const DefaultCategory = Life

var categoryOrder = []Category{Life, Work, Study, Travel, Food, Sport, Creation, Other}

var categoryLabels = map[Category]string{
	Life:     "生活",
	Work:     "工作",
	Study:    "学习",
	Travel:   "旅行",
	Food:     "美食",
	Sport:    "运动",
	Creation: "创作",
	Other:    "其他",
}

// Categories returns all categories in display order
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// Label returns the display label, or the raw value for unknown categories
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// ParseCategory accepts a category key (case-insensitive) or its display label.
// An empty input yields DefaultCategory.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultCategory, nil
	}
	key := Category(strings.ToLower(s))
	if key.Valid() {
		return key, nil
	}
	for c, label := range categoryLabels {
		if label == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q (valid: %s)", ErrInvalidCategory, s, categoryList())
}

// UnmarshalJSON accepts a key or a display label, so collections that store
// labels (category "生活") decode to the same categories. Unknown values are
// kept as they are.
func (c *Category) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if parsed, err := ParseCategory(raw); err == nil && strings.TrimSpace(raw) != "" {
		*c = parsed
		return nil
	}
	*c = Category(raw)
	return nil
}

func categoryList() string {
	names := make([]string, len(categoryOrder))
	for i, c := range categoryOrder {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
