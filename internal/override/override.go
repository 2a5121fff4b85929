// Package override supplies pre-registered crop boxes for known-problematic
// pages. The driver consults the policy before running detection; the
// detection core itself never sees it.
package override

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"foliocrop/pkg/geometry"
)

// Policy maps a page identifier to a hand-verified crop box.
type Policy interface {
	// Lookup returns the override box for a page, if one is registered.
	Lookup(pageID string) (geometry.RectInt, bool)
}

// Table is a Policy backed by a static map, typically loaded from a yaml
// file shipped with the corpus.
type Table struct {
	boxes map[string]geometry.RectInt
}

// NewTable creates a Table from an explicit map.
func NewTable(boxes map[string]geometry.RectInt) *Table {
	t := &Table{boxes: make(map[string]geometry.RectInt, len(boxes))}
	for id, b := range boxes {
		t.boxes[id] = b
	}
	return t
}

// LoadTable reads a yaml file of the form:
//
//	pages:
//	  genesis_017: {x: 430, y: 0, w: 1050, h: 2980}
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read overrides %s: %w", path, err)
	}

	var doc struct {
		Pages map[string]geometry.RectInt `yaml:"pages"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse overrides %s: %w", path, err)
	}
	return NewTable(doc.Pages), nil
}

// Lookup implements Policy.
func (t *Table) Lookup(pageID string) (geometry.RectInt, bool) {
	if t == nil {
		return geometry.RectInt{}, false
	}
	b, ok := t.boxes[pageID]
	return b, ok
}

// Len returns the number of registered overrides.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.boxes)
}

// None is a Policy with no overrides.
type None struct{}

// Lookup implements Policy.
func (None) Lookup(string) (geometry.RectInt, bool) {
	return geometry.RectInt{}, false
}
