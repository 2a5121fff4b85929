package column

import (
	"image"
	"testing"

	"foliocrop/pkg/geometry"
)

// Two solid text columns; the blob strategy should take this page.
func twoColumnPage() *image.Gray {
	img := newTestPage(2600, 3000)
	fillPageRect(img, 500, 100, 1500, 2900)
	fillPageRect(img, 1600, 100, 2500, 2900)
	return img
}

// Ruled column borders with no body ink; blobs are far too thin here and the
// line strategy should take over.
func ruledBordersPage() *image.Gray {
	img := newTestPage(2600, 3000)
	for _, x := range []int{100, 600, 1600, 2200} {
		fillPageRect(img, x, 100, x+3, 2900)
	}
	return img
}

func TestDetectTwoColumnPage(t *testing.T) {
	res, err := DetectFromImage(twoColumnPage(), DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	if res.Method != MethodContour {
		t.Fatalf("method: got %s, want %s", res.Method, MethodContour)
	}
	b := res.Box
	if b.X < 450 || b.X > 520 {
		t.Errorf("x: got %d, want ~500", b.X)
	}
	if b.Width < 950 || b.Width > 1100 {
		t.Errorf("width: got %d, want ~1000", b.Width)
	}
	if b.Y != 0 {
		t.Errorf("y: got %d, want 0", b.Y)
	}
	if b.Height < 2550 {
		t.Errorf("height: got %d, want at least 2550", b.Height)
	}
}

func TestDetectRuledBordersPage(t *testing.T) {
	res, err := DetectFromImage(ruledBordersPage(), DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	if res.Method != MethodHough {
		t.Fatalf("method: got %s, want %s", res.Method, MethodHough)
	}
	b := res.Box
	if b.X < 570 || b.X > 630 {
		t.Errorf("x: got %d, want ~600", b.X)
	}
	if b.Width < 940 || b.Width > 1080 {
		t.Errorf("width: got %d, want ~1000", b.Width)
	}
}

// A single column gives the blob and line strategies too few candidates;
// the projection profile's sliding window still finds the text.
func TestDetectSingleColumnPage(t *testing.T) {
	img := newTestPage(2600, 3000)
	fillPageRect(img, 500, 100, 1500, 2900)

	res, err := DetectFromImage(img, DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	if res.Method != MethodProjection {
		t.Fatalf("method: got %s, want %s", res.Method, MethodProjection)
	}
	b := res.Box
	if b.X < 400 || b.X > 700 {
		t.Errorf("x: got %d, want within [400,700]", b.X)
	}
	if b.Width < 800 || b.Width > 1100 {
		t.Errorf("width: got %d, want within [800,1100]", b.Width)
	}
}

func TestDetectBlankPageFallsBack(t *testing.T) {
	res, err := DetectFromImage(newTestPage(1700, 3000), DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	if res.Method != MethodFallback {
		t.Fatalf("method: got %s, want %s", res.Method, MethodFallback)
	}
	want := geometry.RectInt{X: 476, Y: 0, Width: 700, Height: 3000}
	if res.Box != want {
		t.Errorf("box: got %+v, want %+v", res.Box, want)
	}
}

func TestFallbackBoxFormula(t *testing.T) {
	p := DefaultParams()
	cases := []struct {
		pageW, pageH int
		want         geometry.RectInt
	}{
		{1700, 3000, geometry.RectInt{X: 476, Y: 0, Width: 700, Height: 3000}},
		{2600, 3400, geometry.RectInt{X: 728, Y: 0, Width: 1040, Height: 3400}},
		{3000, 3000, geometry.RectInt{X: 840, Y: 0, Width: 1100, Height: 3000}},
	}
	for _, tc := range cases {
		if got := FallbackBox(tc.pageW, tc.pageH, p); got != tc.want {
			t.Errorf("FallbackBox(%d,%d): got %+v, want %+v", tc.pageW, tc.pageH, got, tc.want)
		}
	}
}

// Whatever the page looks like, the returned box stays inside it and a
// non-fallback box stays near the expected column width.
func TestDetectBoxAlwaysUsable(t *testing.T) {
	pages := map[string]*image.Gray{
		"two columns":   twoColumnPage(),
		"ruled borders": ruledBordersPage(),
		"blank":         newTestPage(2000, 2800),
		"full bleed": func() *image.Gray {
			img := newTestPage(2400, 3200)
			fillPageRect(img, 0, 0, 2400, 3200)
			return img
		}(),
	}
	p := DefaultParams()
	for name, img := range pages {
		res, err := DetectFromImage(img, p)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		w := img.Bounds().Dx()
		h := img.Bounds().Dy()
		if !res.Box.Inside(w, h) {
			t.Errorf("%s: box %+v escapes %dx%d page", name, res.Box, w, h)
		}
		if res.Box.Empty() {
			t.Errorf("%s: empty box", name)
		}
		if res.Method != MethodFallback {
			if res.Box.Width < 600 || res.Box.Width > 1400 {
				t.Errorf("%s: width %d outside plausible window", name, res.Box.Width)
			}
		}
	}
}

func TestDetectFromImageRejectsZeroSize(t *testing.T) {
	if _, err := DetectFromImage(image.NewGray(image.Rectangle{}), DefaultParams()); err == nil {
		t.Fatal("expected an error for a zero-size image")
	}
}
