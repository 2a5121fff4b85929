package column

import (
	"math"
	"sort"

	"foliocrop/pkg/geometry"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/stat"
)

// xCluster is a group of vertical line x-positions close enough to belong to
// the same column border.
type xCluster struct {
	minX, maxX int
}

// detectByHough is the second strategy. Column borders on these pages show up
// as long vertical runs of character edges; Hough line extraction plus
// x-coordinate clustering recovers the border positions even when the
// morphological blobs of the primary strategy have fused across the gutter.
func detectByHough(gray, mask gocv.Mat, p DetectionParams) (geometry.RectInt, bool) {
	pageW, pageH := mask.Cols(), mask.Rows()

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(mask, &edges, p.CannyLow, p.CannyHigh)

	lines := gocv.NewMat()
	defer lines.Close()
	gocv.HoughLinesPWithParams(edges, &lines, 1, math.Pi/180, 80,
		float32(p.VertLineDyMin/2), 20)

	vertXs, horizYs := classifySegments(lines, pageW, p)
	if len(vertXs) == 0 {
		return geometry.RectInt{}, false
	}

	clusters := clusterXs(vertXs, p.ClusterGap)
	if len(clusters) < p.ClusterRetryMin {
		clusters = clusterXs(vertXs, p.ClusterGapTight)
	}
	if len(clusters) < 2 || clusterSpread(clusters) < float64(p.ClusterGapTight) {
		return geometry.RectInt{}, false
	}

	candidates := pairClusters(clusters, pageW, p)
	if len(candidates) < p.minCandidates() {
		return geometry.RectInt{}, false
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].box.X < candidates[j].box.X
	})
	selected := candidates[p.TargetColumn].box

	// A left edge inside the first-column zone means adjacent clusters were
	// paired across the wrong gutter. Prefer a later candidate that clears
	// the zone; with none available, re-anchor at the expected position.
	minLeft := p.strategyMinLeft(pageW)
	if selected.X < minLeft {
		found := false
		for _, c := range candidates[p.TargetColumn+1:] {
			if c.box.X >= minLeft {
				selected = c.box
				found = true
				break
			}
		}
		if !found {
			selected.X = maxInt(p.ReanchorXFloor, int(p.ReanchorXFrac*float64(pageW)))
			selected.Width = clampInt(selected.Width, p.MinWidth, p.WidthCap)
		}
	}

	selected = clampWidth(selected, maxInt(600, p.validWidthMin()), p.HoughMaxWidth, pageW)
	selected = refineVerticalExtent(mask, selected, horizYs, pageH, p)
	selected = expandVerticalSpan(selected, pageH, p)

	if !houghResultPlausible(selected, pageW, p) {
		return geometry.RectInt{}, false
	}
	return selected, true
}

// classifySegments splits Hough segments into vertical border lines (x only,
// restricted to the searchable left portion of the page) and horizontal title
// lines (y only, restricted to the top title band).
func classifySegments(lines gocv.Mat, pageW int, p DetectionParams) (vertXs, horizYs []int) {
	xLimit := int(p.SearchWidthFrac * float64(pageW))
	for i := 0; i < lines.Rows(); i++ {
		l := lines.GetVeciAt(i, 0)
		x1, y1, x2, y2 := int(l[0]), int(l[1]), int(l[2]), int(l[3])
		dx := absInt(x2 - x1)
		dy := absInt(y2 - y1)

		if dx < p.VertLineDxMax && dy > p.VertLineDyMin {
			x := (x1 + x2) / 2
			if x <= xLimit {
				vertXs = append(vertXs, x)
			}
		} else if dy < p.HorizLineDyMax && dx > p.HorizLineDxMin {
			y := (y1 + y2) / 2
			if y <= p.TitleBandY {
				horizYs = append(horizYs, y)
			}
		}
	}
	return vertXs, horizYs
}

// clusterXs groups sorted x-positions into clusters separated by at least
// gap pixels.
func clusterXs(xs []int, gap int) []xCluster {
	if len(xs) == 0 {
		return nil
	}
	sorted := make([]int, len(xs))
	copy(sorted, xs)
	sort.Ints(sorted)

	clusters := []xCluster{{minX: sorted[0], maxX: sorted[0]}}
	for _, x := range sorted[1:] {
		last := &clusters[len(clusters)-1]
		if x-last.maxX <= gap {
			last.maxX = x
			continue
		}
		clusters = append(clusters, xCluster{minX: x, maxX: x})
	}
	return clusters
}

// pairClusters builds column candidates from adjacent cluster pairs only.
// Skipping a cluster would span the gutter between two columns, which is
// exactly the failure the corrector has to undo later.
func pairClusters(clusters []xCluster, pageW int, p DetectionParams) []candidate {
	var candidates []candidate
	for i := 0; i+1 < len(clusters); i++ {
		left := clusters[i].minX
		right := clusters[i+1].maxX
		width := right - left
		if width < p.HoughMinWidth || width > p.HoughMaxWidth {
			continue
		}

		box := geometry.RectInt{X: left, Width: width}
		score := scoreClusterPair(box, pageW, p)
		if left < p.MinLeftX && len(clusters) >= p.LeftEdgePenaltyMin {
			// Enough structure exists to tell the first column apart, so a
			// border-hugging candidate is almost certainly that first column.
			score *= p.LeftEdgePenalty
		}
		candidates = append(candidates, candidate{box: box, score: score})
	}
	return candidates
}

// scoreClusterPair ranks a cluster-pair candidate by centrality and by how
// close its width lands to the expected window: full credit inside the
// window, partial credit within the slack bands, little beyond.
func scoreClusterPair(b geometry.RectInt, pageW int, p DetectionParams) float64 {
	anchor := p.CentralityFrac * float64(pageW)
	centrality := 1.0 - math.Abs(float64(b.CenterX())-anchor)/float64(pageW)
	if centrality < 0 {
		centrality = 0
	}

	var widthScore float64
	switch {
	case b.Width >= p.MinWidth && b.Width <= p.MaxWidth:
		widthScore = 1.0
	case b.Width >= p.MinWidth-p.WidthSlack && b.Width <= p.MaxWidth+p.WidthSlack:
		widthScore = 0.6
	default:
		widthScore = 0.2
	}

	return centrality * widthScore
}

// refineVerticalExtent derives the candidate's vertical span, first from the
// horizontal title lines, then tightened to the ink extent of the mask inside
// the candidate's x-range. Too short a result grows downward to the minimum.
func refineVerticalExtent(mask gocv.Mat, b geometry.RectInt, horizYs []int, pageH int, p DetectionParams) geometry.RectInt {
	top, bottom := 0, pageH
	if len(horizYs) > 0 {
		minY := horizYs[0]
		for _, y := range horizYs[1:] {
			if y < minY {
				minY = y
			}
		}
		top = minY
	}

	sums := rowSums(mask, b.X-p.RefineMargin, b.Right()+p.RefineMargin)
	first, last := -1, -1
	for y, s := range sums {
		if s == 0 {
			continue
		}
		if first < 0 {
			first = y
		}
		last = y
	}
	if first >= 0 {
		top = minInt(top, first)
		bottom = last + 1
	}

	b.Y = top
	b.Height = bottom - top

	minHeight := maxInt(int(p.MinHeightFrac*float64(pageH)), p.MinHeightPx)
	if b.Height < minHeight {
		b.Height = minInt(minHeight, pageH-b.Y)
	}
	return b
}

// houghResultPlausible is the strategy's own exit check, stricter than the
// shared validator about the left edge.
func houghResultPlausible(b geometry.RectInt, pageW int, p DetectionParams) bool {
	if float64(b.CenterX()) > p.MaxCenterFrac*float64(pageW) {
		return false
	}
	minLeft := p.strategyMinLeft(pageW)
	maxLeft := maxInt(int(p.MaxXFrac*float64(pageW)), p.MaxXFloorPx)
	if b.X < minLeft || b.X > maxLeft {
		return false
	}
	if b.Width < p.validWidthMin() || b.Width > p.validWidthMax(pageW) {
		return false
	}
	return true
}

// clusterSpread reports the standard deviation of cluster center positions.
// A near-zero spread means the "clusters" are one smeared border and the
// pairing above cannot be trusted.
func clusterSpread(clusters []xCluster) float64 {
	if len(clusters) < 2 {
		return 0
	}
	centers := make([]float64, len(clusters))
	for i, c := range clusters {
		centers[i] = float64(c.minX+c.maxX) / 2
	}
	return stat.StdDev(centers, nil)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
