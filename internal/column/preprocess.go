package column

import (
	"image"

	"gocv.io/x/gocv"
)

// Preprocess converts a raw page scan into a grayscale image and a binary
// ink mask. The mask is inverted (ink = white foreground) and produced by
// adaptive Gaussian thresholding, so it tolerates the uneven illumination
// typical of book scans. Both returned Mats are owned by the caller.
func Preprocess(src gocv.Mat) (gray, mask gocv.Mat) {
	gray = gocv.NewMat()
	if src.Empty() {
		return gray, gocv.NewMat()
	}

	if src.Channels() > 1 {
		gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)
	} else {
		src.CopyTo(&gray)
	}

	// Light blur so the threshold does not latch onto scanner grain.
	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: 5, Y: 5}, 0, 0, gocv.BorderDefault)

	mask = gocv.NewMat()
	gocv.AdaptiveThreshold(blurred, &mask, 255,
		gocv.AdaptiveThresholdGaussian, gocv.ThresholdBinaryInv, 31, 12)

	return gray, mask
}
