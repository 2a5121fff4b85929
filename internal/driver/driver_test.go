package driver

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"foliocrop/internal/config"
	"foliocrop/internal/override"
	"foliocrop/pkg/geometry"
)

func TestPageID(t *testing.T) {
	cases := map[string]string{
		"/scans/genesis_017.png": "genesis_017",
		"exodus_101.TIF":         "exodus_101",
		"plate.jpeg":             "plate",
	}
	for path, want := range cases {
		if got := pageID(path); got != want {
			t.Errorf("pageID(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestTrailingNumber(t *testing.T) {
	cases := []struct {
		id string
		n  int
		ok bool
	}{
		{"genesis_017", 17, true},
		{"page2", 2, true},
		{"frontmatter", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		n, ok := trailingNumber(tc.id)
		if n != tc.n || ok != tc.ok {
			t.Errorf("trailingNumber(%q) = (%d,%v), want (%d,%v)", tc.id, n, ok, tc.n, tc.ok)
		}
	}
}

func TestSkipPolicies(t *testing.T) {
	r := &Runner{cfg: config.Config{
		SkipEvenPages: true,
		SkipPages:     []string{"plate_007"},
	}}

	if !r.skip("plate_007") {
		t.Error("listed page should be skipped")
	}
	if !r.skip("genesis_018") {
		t.Error("even page should be skipped")
	}
	if r.skip("genesis_017") {
		t.Error("odd page should not be skipped")
	}
	if r.skip("frontmatter") {
		t.Error("page without a number should not be skipped")
	}
}

func TestListPageImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b_002.png", "a_001.png", "notes.txt", "c_003.TIF"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	paths, err := listPageImages(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "a_001.png"),
		filepath.Join(dir, "b_002.png"),
		filepath.Join(dir, "c_003.TIF"),
	}
	if len(paths) != len(want) {
		t.Fatalf("got %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func writeBlankPage(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestRunBatch(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	writeBlankPage(t, filepath.Join(inDir, "page_001.png"), 1700, 2000)
	writeBlankPage(t, filepath.Join(inDir, "page_002.png"), 1700, 2000)
	writeBlankPage(t, filepath.Join(inDir, "page_003.png"), 1700, 2000)

	cfg := config.Default()
	cfg.SkipEvenPages = true
	cfg.Workers = 2

	r, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	r.overrides = override.NewTable(map[string]geometry.RectInt{
		"page_003": {X: 100, Y: 0, Width: 800, Height: 2000},
	})

	sum, err := r.Run(context.Background(), inDir, outDir)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Processed != 2 || sum.Skipped != 1 || sum.Failed != 0 {
		t.Fatalf("summary: %+v", sum)
	}
	if sum.Overridden != 1 {
		t.Errorf("overridden: got %d, want 1", sum.Overridden)
	}

	for _, name := range []string{"page_001_col.png", "page_003_col.png"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(outDir, "page_002_col.png")); err == nil {
		t.Error("skipped page should have no output")
	}
}
