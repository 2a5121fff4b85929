package column

import (
	"foliocrop/pkg/geometry"

	"gocv.io/x/gocv"
)

// correctGeometry runs three sequential repair passes over a title-merged
// box, each fixing one failure geometry seen in the corpus: an anchor in the
// wrong column, a clipped right edge, and a residual span across two columns.
// Passes skip themselves when their trigger does not hold, and the whole
// corrector is a fixpoint: feeding its output back in changes nothing.
func correctGeometry(mask gocv.Mat, b geometry.RectInt, p DetectionParams) geometry.RectInt {
	b = fixWrongColumn(mask, b, p)
	b = fixClippedRightEdge(mask, b, p)
	b = fixResidualDoubleColumn(b, mask.Cols(), p)
	return b.ClampTo(mask.Cols(), mask.Rows())
}

// fixWrongColumn re-anchors a box whose center drifted into the right half of
// the page onto the ink-density peak of the expected column band. Boxes whose
// left edge already sits inside the band are left alone; widening them again
// is the residual-span pass's decision, not this one's.
func fixWrongColumn(mask gocv.Mat, b geometry.RectInt, p DetectionParams) geometry.RectInt {
	pageW, pageH := mask.Cols(), mask.Rows()
	if float64(b.CenterX()) <= p.WrongColCenterFrac*float64(pageW) {
		return b
	}

	bandLo := int(p.PeakBandLoFrac * float64(pageW))
	bandHi := int(p.PeakBandHiFrac * float64(pageW))
	if b.X >= bandLo-p.PeakBackoff && b.X <= bandHi {
		return b
	}

	sums := columnSums(mask, bandHi)
	peakX, peakVal := -1, 0
	for x := bandLo; x < bandHi && x < len(sums); x++ {
		if sums[x] > peakVal {
			peakVal = sums[x]
			peakX = x
		}
	}
	if peakX < 0 || float64(peakVal) <= p.PeakMinFrac*float64(pageH) {
		return b
	}

	b.X = maxInt(0, peakX-p.PeakBackoff)
	width := maxInt(p.DoubleColWidth, b.Width+100)
	b.Width = minInt(minInt(width, p.WidthCap), pageW-b.X)
	return b
}

// fixClippedRightEdge grows the box rightward when its final band is still
// dense with ink, in small steps gated by the density just beyond the edge.
// When the width cap would block a needed step, the left edge gives up a few
// pixels first; a partial trim cannot fund a full step, so growth stops there
// and the width never passes the cap. Ink still dense past an exhausted
// growth budget is a neighbor column, not a clipped edge, and the whole
// extension is discarded.
func fixClippedRightEdge(mask gocv.Mat, b geometry.RectInt, p DetectionParams) geometry.RectInt {
	pageW := mask.Cols()
	if b.Width >= p.WidthCap-p.ClipStepPx {
		return b
	}
	if maskDensity(mask, b.Right()-p.ClipBandPx, b.Y, p.ClipBandPx, b.Height) <= p.ClipDensity {
		return b
	}

	orig := b
	extended := 0
	trimmed := 0
	for extended < p.ClipBudgetPx {
		if b.Right()+p.ClipStepPx > pageW {
			break
		}
		if maskDensity(mask, b.Right(), b.Y, p.ClipStepPx, b.Height) < p.ClipStopDensity {
			break
		}
		if b.Width+p.ClipStepPx > p.WidthCap {
			// Trade left-edge pixels for the needed step when possible.
			trim := minInt(p.ClipStepPx, p.LeftTrimMaxPx-trimmed)
			if trim < p.ClipStepPx || b.X+trim < p.LeftTrimFloorX {
				break
			}
			b.X += trim
			b.Width -= trim
			trimmed += trim
		}
		b.Width += p.ClipStepPx
		extended += p.ClipStepPx
	}

	if extended >= p.ClipBudgetPx &&
		maskDensity(mask, b.Right(), b.Y, p.ClipStepPx, b.Height) >= p.ClipStopDensity {
		return orig
	}
	return b
}

// fixResidualDoubleColumn cuts a box that still spans two columns, keeping
// the right-hand column. It fires on widths beyond the single-column cap, or
// on wide boxes anchored at the page's left border; its output never
// retriggers it, which makes the pass (and the corrector) idempotent.
func fixResidualDoubleColumn(b geometry.RectInt, pageW int, p DetectionParams) geometry.RectInt {
	nearLeft := b.X < p.NearLeftX
	if b.Width <= p.WidthCap && !(nearLeft && b.Width > p.DoubleColNearWidth) {
		return b
	}

	var newX int
	if nearLeft {
		newX = maxInt(p.ReanchorXFloor, int(p.ReanchorXFrac*float64(pageW)))
	} else {
		newX = maxInt(b.X+p.SplitOffset, b.X+int(p.SplitWidthFrac*float64(b.Width)))
	}
	if newX >= pageW-1 {
		return b
	}

	b.X = newX
	b.Width = minInt(b.Width, p.WidthCap)
	if b.Right() > pageW {
		b.Width = pageW - b.X
	}
	return b
}
