package column

import (
	"image"

	"foliocrop/pkg/geometry"

	"gocv.io/x/gocv"
)

// mergeTitle extends a validated column box to cover the title band above it.
// The top of the page carries headings and verse enumeration whose loss would
// corrupt the downstream transcription, so the merged box always reaches
// y = 0 even when no title contour is found.
func mergeTitle(mask gocv.Mat, box geometry.RectInt, p DetectionParams) geometry.RectInt {
	merged := box
	if title, ok := findTitleBar(mask, box, p); ok {
		merged = merged.Union(title)
	}

	// The crop must never cut the title region regardless of detected ink.
	merged.Height = merged.Bottom()
	merged.Y = 0
	return merged
}

// findTitleBar scans the top of the column for a wide low contour shaped
// like a heading bar. Letters are bridged into a bar with a wide flat
// closing kernel before the contours are taken.
func findTitleBar(mask gocv.Mat, box geometry.RectInt, p DetectionParams) (geometry.RectInt, bool) {
	pageW, pageH := mask.Cols(), mask.Rows()
	scanH := minInt(p.TitleScanHeight, box.Height)
	window := geometry.RectInt{X: box.X, Y: 0, Width: box.Width, Height: scanH}.
		ClampTo(pageW, pageH)
	if window.Empty() {
		return geometry.RectInt{}, false
	}

	roi := mask.Region(window.ToImageRect())
	defer roi.Close()

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{X: 25, Y: 3})
	defer kernel.Close()

	closed := gocv.NewMat()
	defer closed.Close()
	gocv.MorphologyEx(roi, &closed, gocv.MorphClose, kernel)
	gocv.MorphologyEx(closed, &closed, gocv.MorphClose, kernel)

	contours := gocv.FindContours(closed, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	best := geometry.RectInt{}
	found := false
	for i := 0; i < contours.Size(); i++ {
		r := gocv.BoundingRect(contours.At(i))
		if r.Dx() < box.Width/2 {
			continue
		}
		if r.Dy() < p.TitleMinHeight || r.Dy() > p.TitleMaxHeight {
			continue
		}
		if r.Min.Y > window.Height {
			continue
		}
		cand := geometry.RectInt{
			X:      window.X + r.Min.X,
			Y:      window.Y + r.Min.Y,
			Width:  r.Dx(),
			Height: r.Dy(),
		}
		if !found || cand.Y < best.Y {
			best = cand
			found = true
		}
	}
	return best, found
}
