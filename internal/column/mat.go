package column

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// imageToGrayMat converts a Go image.Image to a single-channel 8-bit Mat.
func imageToGrayMat(src image.Image) (gocv.Mat, error) {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return gocv.NewMat(), fmt.Errorf("zero-size image %dx%d", w, h)
	}

	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8U)

	if g, ok := src.(*image.Gray); ok {
		for y := 0; y < h; y++ {
			row := g.Pix[y*g.Stride : y*g.Stride+w]
			for x := 0; x < w; x++ {
				mat.SetUCharAt(y, x, row[x])
			}
		}
		return mat, nil
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// ITU-R BT.601 luma from 16-bit channels.
			mat.SetUCharAt(y, x, uint8((19595*r+38470*g+7471*b+1<<15)>>24))
		}
	}

	return mat, nil
}

// maskDensity returns the fraction of foreground pixels inside the given
// region of a binary mask. Regions outside the mask count as empty.
func maskDensity(mask gocv.Mat, x, y, w, h int) float64 {
	cols, rows := mask.Cols(), mask.Rows()
	x0 := clampInt(x, 0, cols)
	y0 := clampInt(y, 0, rows)
	x1 := clampInt(x+w, 0, cols)
	y1 := clampInt(y+h, 0, rows)
	if x1 <= x0 || y1 <= y0 {
		return 0
	}

	roi := mask.Region(image.Rect(x0, y0, x1, y1))
	defer roi.Close()
	nz := gocv.CountNonZero(roi)
	return float64(nz) / float64((x1-x0)*(y1-y0))
}

// columnSums computes the per-column count of foreground pixels in mask,
// restricted to x < xLimit.
func columnSums(mask gocv.Mat, xLimit int) []int {
	rows, cols := mask.Rows(), mask.Cols()
	if xLimit > cols {
		xLimit = cols
	}
	sums := make([]int, xLimit)
	for y := 0; y < rows; y++ {
		for x := 0; x < xLimit; x++ {
			if mask.GetUCharAt(y, x) > 0 {
				sums[x]++
			}
		}
	}
	return sums
}

// rowSums computes the per-row count of foreground pixels in mask restricted
// to the horizontal range [x0, x1).
func rowSums(mask gocv.Mat, x0, x1 int) []int {
	rows, cols := mask.Rows(), mask.Cols()
	x0 = clampInt(x0, 0, cols)
	x1 = clampInt(x1, 0, cols)
	sums := make([]int, rows)
	for y := 0; y < rows; y++ {
		for x := x0; x < x1; x++ {
			if mask.GetUCharAt(y, x) > 0 {
				sums[y]++
			}
		}
	}
	return sums
}
