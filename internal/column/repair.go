package column

import (
	"foliocrop/pkg/geometry"
)

// The grow-or-clamp geometry arithmetic below is shared by all three
// strategies and the corrector so a threshold change lands everywhere at once.

// expandVerticalSpan widens a box's vertical extent to the standard crop
// window: the top is pulled into [0, min(TopStartPx, TopStartFrac·H)], the
// bottom is anchored at BottomFrac·H, and if the covered span still falls
// short of MinSpanFrac·H the bottom is pushed further down. Pages open with
// verse enumeration above the first ink-dense row, so the window never trusts
// where ink density happens to begin.
func expandVerticalSpan(b geometry.RectInt, pageHeight int, p DetectionParams) geometry.RectInt {
	topCap := minInt(p.TopStartPx, int(p.TopStartFrac*float64(pageHeight)))
	startY := clampInt(b.Y, 0, topCap)

	endY := minInt(pageHeight, int(p.BottomFrac*float64(pageHeight)))
	minSpan := int(p.MinSpanFrac * float64(pageHeight))
	if endY-startY < minSpan {
		endY = minInt(pageHeight, startY+minSpan)
	}

	b.Y = startY
	b.Height = endY - startY
	return b
}

// clampWidth forces the box width into [lo, hi] without moving its left edge
// past the page boundary. A widened box that would overrun the right edge is
// shifted left before it is shrunk.
func clampWidth(b geometry.RectInt, lo, hi, pageWidth int) geometry.RectInt {
	if b.Width < lo {
		b.Width = lo
	}
	if b.Width > hi {
		b.Width = hi
	}
	if b.Right() > pageWidth {
		b.X = maxInt(0, pageWidth-b.Width)
		if b.Right() > pageWidth {
			b.Width = pageWidth - b.X
		}
	}
	return b
}

// reanchorBox places a box of the clamped standard width at the given left
// edge, keeping it inside the page.
func reanchorBox(x int, b geometry.RectInt, pageWidth int, p DetectionParams) geometry.RectInt {
	b.X = clampInt(x, 0, pageWidth-1)
	return clampWidth(b, p.MinWidth, p.WidthCap, pageWidth)
}
