package override

import (
	"os"
	"path/filepath"
	"testing"

	"foliocrop/pkg/geometry"
)

func TestTableLookup(t *testing.T) {
	tbl := NewTable(map[string]geometry.RectInt{
		"genesis_017": {X: 430, Y: 0, Width: 1050, Height: 2980},
	})

	b, ok := tbl.Lookup("genesis_017")
	if !ok {
		t.Fatal("expected a hit")
	}
	if b != (geometry.RectInt{X: 430, Y: 0, Width: 1050, Height: 2980}) {
		t.Errorf("got %+v", b)
	}
	if _, ok := tbl.Lookup("genesis_018"); ok {
		t.Error("unexpected hit for unregistered page")
	}
	if tbl.Len() != 1 {
		t.Errorf("len: got %d, want 1", tbl.Len())
	}
}

func TestNilTableLookup(t *testing.T) {
	var tbl *Table
	if _, ok := tbl.Lookup("anything"); ok {
		t.Error("nil table should miss")
	}
	if tbl.Len() != 0 {
		t.Errorf("nil table len: got %d", tbl.Len())
	}
}

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	doc := `pages:
  genesis_017: {x: 430, y: 0, w: 1050, h: 2980}
  exodus_101:  {x: 500, y: 0, w: 1000, h: 3000}
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	tbl, err := LoadTable(path)
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("len: got %d, want 2", tbl.Len())
	}
	b, ok := tbl.Lookup("exodus_101")
	if !ok || b.Width != 1000 {
		t.Errorf("got %+v, ok=%v", b, ok)
	}
}

func TestLoadTableMissingFile(t *testing.T) {
	if _, err := LoadTable(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestNonePolicy(t *testing.T) {
	var p Policy = None{}
	if _, ok := p.Lookup("genesis_017"); ok {
		t.Error("None should never hit")
	}
}
