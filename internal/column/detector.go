package column

import (
	"fmt"
	"image"

	"foliocrop/pkg/geometry"

	"gocv.io/x/gocv"
)

// Detect locates the target column on a decoded page scan. Strategies run in
// priority order (contours, Hough lines, projection profiles); the first box
// passing the shared validator wins and is then title-merged and
// geometry-corrected. Detect always returns a usable box: when every
// strategy fails, the box is derived from the page dimensions alone and
// tagged MethodFallback.
func Detect(src gocv.Mat, p DetectionParams) Result {
	pageW, pageH := src.Cols(), src.Rows()
	if src.Empty() || pageW == 0 || pageH == 0 {
		return Result{Box: FallbackBox(pageW, pageH, p), Method: MethodFallback}
	}

	gray, mask := Preprocess(src)
	defer gray.Close()
	defer mask.Close()

	box, method, ok := runStrategies(gray, mask, p)
	if !ok {
		return Result{Box: FallbackBox(pageW, pageH, p), Method: MethodFallback}
	}

	box = mergeTitle(mask, box, p)
	box = correctGeometry(mask, box, p)
	return Result{Box: box, Method: method}
}

// runStrategies tries each strategy in priority order and returns the first
// box the shared validator accepts.
func runStrategies(gray, mask gocv.Mat, p DetectionParams) (geometry.RectInt, Method, bool) {
	pageW, pageH := mask.Cols(), mask.Rows()

	if b, ok := detectByContours(mask, p); ok && validBox(b, pageW, pageH, p) {
		return b, MethodContour, true
	}
	if b, ok := detectByHough(gray, mask, p); ok && validBox(b, pageW, pageH, p) {
		return b, MethodHough, true
	}
	if b, ok := detectByProjection(mask, p); ok {
		// The last-resort strategy polices its own width and center; the
		// orchestrator only refuses a left edge beyond the plausible zone.
		maxX := maxInt(int(p.MaxXFrac*float64(pageW)), p.MaxXFloorPx)
		if b.X <= maxX && b.Inside(pageW, pageH) {
			return b, MethodProjection, true
		}
	}
	return geometry.RectInt{}, MethodFallback, false
}

// FallbackBox derives a crop box from the page dimensions alone: anchored
// where the second column sits on a well-centered scan, full page height.
func FallbackBox(pageW, pageH int, p DetectionParams) geometry.RectInt {
	return geometry.RectInt{
		X:      int(p.FallbackXFrac*float64(pageW) + 0.5),
		Y:      0,
		Width:  clampInt(int(p.FallbackWidthFrac*float64(pageW)), p.FallbackWidthMin, p.FallbackWidthMax),
		Height: pageH,
	}
}

// DetectFromImage runs detection on a Go image.Image. The image is converted
// to an 8-bit grayscale Mat internally; zero-size images are an error.
func DetectFromImage(src image.Image, p DetectionParams) (Result, error) {
	mat, err := imageToGrayMat(src)
	if err != nil {
		return Result{}, fmt.Errorf("convert image: %w", err)
	}
	defer mat.Close()

	return Detect(mat, p), nil
}
