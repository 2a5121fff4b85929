package column

import (
	"image"
	"math"
	"sort"

	"foliocrop/pkg/geometry"

	"gocv.io/x/gocv"
)

// detectByContours is the primary strategy. Directional dilation fuses
// characters into words, words into lines, lines into one blob per column;
// the external contours of the blob mask are then filtered down to plausible
// column rectangles and the target column is picked by composite score.
func detectByContours(mask gocv.Mat, p DetectionParams) (geometry.RectInt, bool) {
	pageW, pageH := mask.Cols(), mask.Rows()
	margin := p.BorderMargin
	if pageW <= 2*margin || pageH <= 2*margin {
		return geometry.RectInt{}, false
	}

	// Border shadows and binder edges produce tall thin contours that fuse
	// with real columns, so the working area excludes a margin on all sides.
	work := mask.Region(image.Rect(margin, margin, pageW-margin, pageH-margin))
	defer work.Close()

	blobs := mergeColumnBlobs(work, pageW, pageH, p)
	defer blobs.Close()

	contours := gocv.FindContours(blobs, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	var candidates []candidate
	for i := 0; i < contours.Size(); i++ {
		r := gocv.BoundingRect(contours.At(i))
		box := geometry.RectInt{
			X:      r.Min.X + margin,
			Y:      r.Min.Y + margin,
			Width:  r.Dx(),
			Height: r.Dy(),
		}
		if !plausibleColumnContour(box, pageW, pageH, p) {
			continue
		}
		candidates = append(candidates, candidate{
			box:   box,
			score: scoreColumnBox(box, pageW, p),
		})
	}

	candidates = dedupeCandidates(candidates, p.RunOverlapFrac)
	if len(candidates) < p.minCandidates() {
		return geometry.RectInt{}, false
	}

	// Left-to-right order, then the composite score decides. The score's
	// centrality anchor sits where the target column lives on this layout,
	// so the winner is the candidate occupying the target position, not
	// merely the biggest blob.
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].box.X < candidates[j].box.X
	})
	selected := candidates[0].box
	bestScore := candidates[0].score
	for _, c := range candidates[1:] {
		if c.score > bestScore {
			bestScore = c.score
			selected = c.box
		}
	}

	// A selection hugging the left border means the first column won after
	// all; better to let the next strategy try than to crop the wrong text.
	if selected.Width < p.MinWidth || selected.X < p.MinLeftX {
		return geometry.RectInt{}, false
	}

	return expandVerticalSpan(selected, pageH, p), true
}

// mergeColumnBlobs applies the directional dilation sequence: a wide short
// kernel first (characters into lines), a tall narrow kernel second (lines
// into a column blob), then a small close to seal residual holes.
func mergeColumnBlobs(work gocv.Mat, pageW, pageH int, p DetectionParams) gocv.Mat {
	hKernelW := maxInt(10, int(float64(pageW)*p.HorizKernelFrac))
	vKernelH := maxInt(10, int(float64(pageH)*p.VertKernelFrac))

	hKernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{X: hKernelW, Y: 5})
	defer hKernel.Close()
	vKernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{X: 5, Y: vKernelH})
	defer vKernel.Close()
	closeKernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{X: 3, Y: 3})
	defer closeKernel.Close()

	blobs := gocv.NewMat()
	gocv.Dilate(work, &blobs, hKernel)
	gocv.Dilate(blobs, &blobs, vKernel)
	gocv.MorphologyEx(blobs, &blobs, gocv.MorphClose, closeKernel)
	return blobs
}

// plausibleColumnContour filters contour rectangles down to ones shaped like
// a full-height text column in the left portion of the page.
func plausibleColumnContour(b geometry.RectInt, pageW, pageH int, p DetectionParams) bool {
	maxW := minInt(p.MaxWidth+p.WidthSlack, int(0.6*float64(pageW)))
	if b.Width < p.MinWidth || b.Width > maxW {
		return false
	}
	if b.Height < maxInt(p.ContourMinHeight, int(p.MinHeightFrac*float64(pageH))) {
		return false
	}
	if float64(b.CenterX()) > p.ContourCenterFrac*float64(pageW) {
		return false
	}
	if float64(b.Height) <= p.ContourAspectMin*float64(b.Width) {
		return false
	}
	return true
}

// scoreColumnBox ranks a candidate by area, closeness of its center to the
// expected column center band, and closeness of its width to the ideal.
func scoreColumnBox(b geometry.RectInt, pageW int, p DetectionParams) float64 {
	area := float64(b.Area())

	anchor := p.CentralityFrac * float64(pageW)
	centrality := 1.0 - math.Abs(float64(b.CenterX())-anchor)/float64(pageW)
	if centrality < 0 {
		centrality = 0
	}

	widthCloseness := 1.0 - math.Abs(float64(b.Width-p.IdealWidth))/float64(p.IdealWidth)
	if widthCloseness < 0.1 {
		widthCloseness = 0.1
	}

	return area * centrality * widthCloseness
}

// dedupeCandidates collapses candidates whose boxes overlap by more than
// overlapFrac, keeping the higher-scoring one.
func dedupeCandidates(cands []candidate, overlapFrac float64) []candidate {
	if len(cands) <= 1 {
		return cands
	}

	sort.Slice(cands, func(i, j int) bool {
		return cands[i].score > cands[j].score
	})

	var kept []candidate
	for _, c := range cands {
		dup := false
		for _, k := range kept {
			if c.box.OverlapFraction(k.box) > overlapFrac {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, c)
		}
	}
	return kept
}
