// Package column locates the target text column on a scanned manuscript page.
//
// The page layout is assumed to carry several vertical text columns; the
// pipeline binarizes the page, proposes column candidates with up to three
// strategies (contour merging, Hough line clustering, projection profiles),
// picks the configured target column, and repairs known failure geometries
// before returning a crop box.
package column

import (
	"foliocrop/pkg/geometry"
)

// Method indicates which strategy produced the returned box.
type Method int

const (
	// MethodContour indicates the morphological contour strategy succeeded.
	MethodContour Method = iota
	// MethodHough indicates the Hough line clustering strategy succeeded.
	MethodHough
	// MethodProjection indicates the projection profile strategy succeeded.
	MethodProjection
	// MethodFallback indicates every strategy failed and the box was derived
	// from the page dimensions alone.
	MethodFallback
)

func (m Method) String() string {
	switch m {
	case MethodContour:
		return "contour"
	case MethodHough:
		return "hough"
	case MethodProjection:
		return "projection"
	case MethodFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Result is the outcome of column detection on one page.
type Result struct {
	Box    geometry.RectInt `json:"box"`
	Method Method           `json:"method"`
}

// candidate is a scored column proposal inside a single strategy. It never
// escapes the detector that produced it.
type candidate struct {
	box   geometry.RectInt
	score float64
}
