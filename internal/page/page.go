// Package page loads scanned page images and writes cropped columns back out.
package page

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"

	"foliocrop/pkg/geometry"

	"github.com/disintegration/imaging"
)

// Load decodes a page scan from disk. TIFF, PNG and JPEG are accepted.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("zero-size image %s", path)
	}
	return img, nil
}

// Grayscale converts any image to 8-bit grayscale.
func Grayscale(src image.Image) *image.Gray {
	if g, ok := src.(*image.Gray); ok {
		return g
	}
	b := src.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), src, b.Min, draw.Src)
	return gray
}

// CropSave slices box out of src and writes it to outPath. The output format
// follows the file extension. The box is clipped to the image first; an
// empty clip is an error rather than a zero-byte file.
func CropSave(src image.Image, box geometry.RectInt, outPath string) error {
	b := src.Bounds()
	clipped := box.ClampTo(b.Dx(), b.Dy())
	if clipped.Empty() {
		return fmt.Errorf("crop box %+v outside image %dx%d", box, b.Dx(), b.Dy())
	}

	cropped := imaging.Crop(src, clipped.ToImageRect().Add(b.Min))
	if err := imaging.Save(cropped, outPath); err != nil {
		return fmt.Errorf("save %s: %w", outPath, err)
	}
	return nil
}
