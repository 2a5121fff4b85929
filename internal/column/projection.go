package column

import (
	"math"
	"sort"

	"foliocrop/pkg/geometry"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/stat"
)

// denseRun is a contiguous stretch of the ink-density profile above a
// threshold.
type denseRun struct {
	start, end int // x range, end exclusive
	density    float64
}

func (r denseRun) width() int { return r.end - r.start }

func (r denseRun) overlapFraction(other denseRun) float64 {
	lo := maxInt(r.start, other.start)
	hi := minInt(r.end, other.end)
	if hi <= lo {
		return 0
	}
	smaller := minInt(r.width(), other.width())
	if smaller == 0 {
		return 0
	}
	return float64(hi-lo) / float64(smaller)
}

// detectByProjection is the last-resort strategy: 1-D ink-density profiles
// survive even on pages where neither blobs nor border lines are clean. It
// tries hard to produce a box, falling back to run splitting and then to a
// sliding-window density search before giving up to the orchestrator.
func detectByProjection(mask gocv.Mat, p DetectionParams) (geometry.RectInt, bool) {
	pageW, pageH := mask.Cols(), mask.Rows()
	xLimit := int(p.SearchWidthFrac * float64(pageW))
	profile := columnSums(mask, xLimit)

	maxSum := 0
	for _, s := range profile {
		if s > maxSum {
			maxSum = s
		}
	}
	if maxSum == 0 {
		return geometry.RectInt{}, false
	}

	runs := sweepDenseRuns(profile, maxSum, pageW, p)

	var span geometry.RectInt
	switch {
	case len(runs) >= p.minCandidates():
		sort.Slice(runs, func(i, j int) bool { return runs[i].start < runs[j].start })
		r := runs[p.TargetColumn]
		span = geometry.RectInt{X: r.start, Width: r.width()}

	case len(runs) == 1 && runs[0].width() > p.WideRunWidth:
		// A single wide run is two columns the profile failed to separate.
		r := splitWideRun(runs[0], pageW, p)
		span = geometry.RectInt{X: r.start, Width: r.width()}

	default:
		var ok bool
		span, ok = slidingWindowSearch(profile, pageW, p)
		if !ok && len(runs) == 1 {
			r := runs[0]
			if r.width() > p.WideRunWidth {
				r = splitWideRun(r, pageW, p)
			}
			span = geometry.RectInt{X: r.start, Width: r.width()}
			ok = true
		}
		if !ok {
			return geometry.RectInt{}, false
		}
	}

	span = verticalSpanFromRows(mask, span, pageH, p)
	span = expandVerticalSpan(span, pageH, p)

	if !projectionResultPlausible(span, pageW, p) {
		return geometry.RectInt{}, false
	}
	return span, true
}

// sweepDenseRuns extracts dense runs at several relative thresholds and
// deduplicates across the sweep, keeping the denser version of overlapping
// runs. Sweeping makes the extraction robust to how heavy the ink happens to
// be on a given page.
func sweepDenseRuns(profile []int, maxSum, pageW int, p DetectionParams) []denseRun {
	maxRunWidth := int(p.RunMaxWidthFrac * float64(pageW))

	var kept []denseRun
	for step := 0; step < p.DensitySteps; step++ {
		frac := p.DensityLoFrac +
			(p.DensityHiFrac-p.DensityLoFrac)*float64(step)/float64(p.DensitySteps-1)
		threshold := frac * float64(maxSum)

		for _, r := range extractRuns(profile, threshold) {
			if r.width() < p.RunMinWidth || r.width() > maxRunWidth {
				continue
			}
			dup := false
			for i, k := range kept {
				if r.overlapFraction(k) > p.RunOverlapFrac {
					if r.density > k.density {
						kept[i] = r
					}
					dup = true
					break
				}
			}
			if !dup {
				kept = append(kept, r)
			}
		}
	}
	return kept
}

// extractRuns finds contiguous stretches of the profile at or above threshold.
func extractRuns(profile []int, threshold float64) []denseRun {
	var runs []denseRun
	start := -1
	for x, s := range profile {
		if float64(s) >= threshold {
			if start < 0 {
				start = x
			}
			continue
		}
		if start >= 0 {
			runs = append(runs, makeRun(profile, start, x))
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, makeRun(profile, start, len(profile)))
	}
	return runs
}

func makeRun(profile []int, start, end int) denseRun {
	vals := make([]float64, end-start)
	for i := start; i < end; i++ {
		vals[i-start] = float64(profile[i])
	}
	return denseRun{start: start, end: end, density: stat.Mean(vals, nil)}
}

// splitWideRun cuts a two-column run and keeps the right-hand part as the
// second column. A run starting at the page edge splits at the expected
// first-column boundary; one starting further in splits proportionally.
func splitWideRun(r denseRun, pageW int, p DetectionParams) denseRun {
	var splitX int
	if r.start < p.MinLeftX*2 {
		splitX = maxInt(p.SplitXFloor, int(p.SplitXFrac*float64(pageW)))
	} else {
		splitX = maxInt(r.start+p.SplitOffset,
			r.start+int(p.SplitWidthFrac*float64(r.width())))
	}
	if splitX >= r.end {
		return r
	}
	return denseRun{start: splitX, end: r.end, density: r.density}
}

// slidingWindowSearch scans candidate windows across the searchable page
// portion, scoring ink density against position and width preferences.
func slidingWindowSearch(profile []int, pageW int, p DetectionParams) (geometry.RectInt, bool) {
	minLeft := p.strategyMinLeft(pageW)
	best := geometry.RectInt{}
	bestScore := 0.0

	for w := p.MinWidth; w <= p.MaxWidth; w += 100 {
		for x := 0; x+w <= len(profile); x += 25 {
			var total float64
			for i := x; i < x+w; i++ {
				total += float64(profile[i])
			}
			density := total / float64(w)

			leftBonus := 1.0
			if x < minLeft {
				leftBonus = 0.4
			}
			widthBonus := 1.0 - math.Abs(float64(w-p.IdealWidth))/float64(p.IdealWidth)

			score := density * leftBonus * widthBonus
			if score > bestScore {
				bestScore = score
				best = geometry.RectInt{X: x, Width: w}
			}
		}
	}

	if bestScore == 0 {
		return geometry.RectInt{}, false
	}
	return best, true
}

// verticalSpanFromRows finds the longest dense run of the row-sum profile
// inside the chosen x-range and adopts it as the vertical extent.
func verticalSpanFromRows(mask gocv.Mat, b geometry.RectInt, pageH int, p DetectionParams) geometry.RectInt {
	sums := rowSums(mask, b.X, b.Right())
	maxSum := 0
	for _, s := range sums {
		if s > maxSum {
			maxSum = s
		}
	}
	if maxSum == 0 {
		b.Y = 0
		b.Height = pageH
		return b
	}

	threshold := p.DensityLoFrac * float64(maxSum)
	bestStart, bestLen := 0, 0
	start := -1
	for y, s := range sums {
		if float64(s) >= threshold {
			if start < 0 {
				start = y
			}
			continue
		}
		if start >= 0 && y-start > bestLen {
			bestStart, bestLen = start, y-start
		}
		start = -1
	}
	if start >= 0 && len(sums)-start > bestLen {
		bestStart, bestLen = start, len(sums)-start
	}

	b.Y = bestStart
	b.Height = bestLen
	return b
}

// projectionResultPlausible mirrors the shared validator's width and position
// checks with the projection strategy's looser left-edge ceiling.
func projectionResultPlausible(b geometry.RectInt, pageW int, p DetectionParams) bool {
	if b.Width < p.validWidthMin() || b.Width > p.validWidthMax(pageW) {
		return false
	}
	if float64(b.CenterX()) > p.MaxCenterFrac*float64(pageW) {
		return false
	}
	if b.X < p.MinLeftX || float64(b.X) > p.ProjectionXLimit*float64(pageW) {
		return false
	}
	return true
}
