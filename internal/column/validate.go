package column

import (
	"foliocrop/pkg/geometry"
)

// validBox is the shared plausibility predicate applied to every strategy's
// output and to the corrector's. It encodes what a correctly cropped column
// looks like on this layout: a tall box in the left half of the page, near
// the expected column width, not hugging the left border.
func validBox(b geometry.RectInt, pageWidth, pageHeight int, p DetectionParams) bool {
	if !b.Inside(pageWidth, pageHeight) {
		return false
	}

	if b.Width < p.validWidthMin() || b.Width > p.validWidthMax(pageWidth) {
		return false
	}

	minHeight := maxInt(int(p.MinHeightFrac*float64(pageHeight)), p.MinHeightPx)
	if b.Height < minHeight {
		return false
	}

	if float64(b.CenterX()) > p.MaxCenterFrac*float64(pageWidth) {
		return false
	}

	maxX := maxInt(int(p.MaxXFrac*float64(pageWidth)), p.MaxXFloorPx)
	if b.X < p.MinLeftX || b.X > maxX {
		return false
	}

	return true
}
