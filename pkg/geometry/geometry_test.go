package geometry

import "testing"

func TestRectIntEdges(t *testing.T) {
	r := NewRectInt(10, 20, 30, 40)
	if r.Right() != 40 || r.Bottom() != 60 {
		t.Errorf("edges: got (%d,%d), want (40,60)", r.Right(), r.Bottom())
	}
	if r.CenterX() != 25 || r.CenterY() != 40 {
		t.Errorf("center: got (%d,%d), want (25,40)", r.CenterX(), r.CenterY())
	}
	if r.Area() != 1200 {
		t.Errorf("area: got %d, want 1200", r.Area())
	}
	if !r.Contains(PointInt{X: 10, Y: 20}) {
		t.Error("top-left corner should be contained")
	}
	if r.Contains(PointInt{X: 40, Y: 20}) {
		t.Error("exclusive right edge should not be contained")
	}
}

func TestRectIntEmpty(t *testing.T) {
	if !(RectInt{Width: 0, Height: 10}).Empty() {
		t.Error("zero width should be empty")
	}
	if (RectInt{Width: 1, Height: 1}).Empty() {
		t.Error("1x1 should not be empty")
	}
	if (RectInt{Width: -5, Height: 10}).Area() != 0 {
		t.Error("empty rectangle area should be 0")
	}
}

func TestUnion(t *testing.T) {
	a := NewRectInt(0, 0, 10, 10)
	b := NewRectInt(5, 5, 10, 10)
	if got := a.Union(b); got != NewRectInt(0, 0, 15, 15) {
		t.Errorf("got %+v", got)
	}
	if got := a.Union(RectInt{}); got != a {
		t.Errorf("union with empty: got %+v, want %+v", got, a)
	}
	if got := (RectInt{}).Union(b); got != b {
		t.Errorf("empty union: got %+v, want %+v", got, b)
	}
}

func TestIntersect(t *testing.T) {
	a := NewRectInt(0, 0, 10, 10)
	b := NewRectInt(5, 5, 10, 10)
	if got := a.Intersect(b); got != NewRectInt(5, 5, 5, 5) {
		t.Errorf("got %+v", got)
	}
	c := NewRectInt(20, 20, 5, 5)
	if got := a.Intersect(c); !got.Empty() {
		t.Errorf("disjoint intersect: got %+v, want empty", got)
	}
}

func TestOverlapFraction(t *testing.T) {
	a := NewRectInt(0, 0, 10, 10)
	b := NewRectInt(0, 0, 5, 10)
	if got := a.OverlapFraction(b); got != 1.0 {
		t.Errorf("contained: got %g, want 1", got)
	}
	c := NewRectInt(5, 0, 10, 10)
	if got := a.OverlapFraction(c); got != 0.5 {
		t.Errorf("half overlap: got %g, want 0.5", got)
	}
	d := NewRectInt(50, 50, 10, 10)
	if got := a.OverlapFraction(d); got != 0 {
		t.Errorf("disjoint: got %g, want 0", got)
	}
}

func TestClampTo(t *testing.T) {
	r := NewRectInt(-10, -10, 30, 30)
	if got := r.ClampTo(100, 100); got != NewRectInt(0, 0, 20, 20) {
		t.Errorf("got %+v", got)
	}
	r = NewRectInt(90, 90, 30, 30)
	if got := r.ClampTo(100, 100); got != NewRectInt(90, 90, 10, 10) {
		t.Errorf("got %+v", got)
	}
	r = NewRectInt(200, 200, 30, 30)
	if got := r.ClampTo(100, 100); !got.Empty() {
		t.Errorf("fully outside: got %+v, want empty", got)
	}
}

func TestInside(t *testing.T) {
	if !NewRectInt(0, 0, 100, 100).Inside(100, 100) {
		t.Error("full-page rectangle should be inside")
	}
	if NewRectInt(1, 0, 100, 100).Inside(100, 100) {
		t.Error("rectangle past the right edge should not be inside")
	}
	if NewRectInt(0, 0, 0, 10).Inside(100, 100) {
		t.Error("degenerate rectangle should not be inside")
	}
}

func TestImageRectRoundTrip(t *testing.T) {
	r := NewRectInt(3, 4, 5, 6)
	if got := FromImageRect(r.ToImageRect()); got != r {
		t.Errorf("got %+v, want %+v", got, r)
	}
}
