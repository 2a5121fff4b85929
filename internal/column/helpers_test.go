package column

import (
	"image"

	"gocv.io/x/gocv"
)

// Synthetic pages for the detection tests: white background, solid ink
// regions. Masks are built directly (ink = 255) so the strategy tests do not
// depend on thresholding behavior; the end-to-end tests go through
// DetectFromImage and the real preprocessor.

func newTestMask(w, h int) gocv.Mat {
	return gocv.NewMatWithSize(h, w, gocv.MatTypeCV8U)
}

func fillMaskRect(m gocv.Mat, x0, y0, x1, y1 int) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			m.SetUCharAt(y, x, 255)
		}
	}
}

func newTestPage(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

func fillPageRect(img *image.Gray, x0, y0, x1, y1 int) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.Pix[y*img.Stride+x] = 0
		}
	}
}
