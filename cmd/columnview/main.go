// Command columnview shows a page scan with the detected column box drawn
// over it, for eyeballing detection quality on new corpora.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"foliocrop/internal/column"
	"foliocrop/internal/page"
	"foliocrop/pkg/geometry"
)

func main() {
	imagePath := flag.String("image", "", "Path to a page scan (TIFF, PNG, or JPEG)")
	targetColumn := flag.Int("column", 1, "Target column index (zero-based)")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: columnview -image <page> [-column 1]")
		os.Exit(1)
	}

	img, err := page.Load(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}

	params := column.DefaultParams().WithTargetColumn(*targetColumn)
	res, err := column.DetectFromImage(img, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Detection failed: %v\n", err)
		os.Exit(1)
	}

	overlay := drawBox(img, res.Box)

	a := app.New()
	w := a.NewWindow(fmt.Sprintf("columnview: %s", *imagePath))

	view := fynecanvas.NewImageFromImage(overlay)
	view.FillMode = fynecanvas.ImageFillContain
	view.SetMinSize(fyne.NewSize(600, 800))

	status := widget.NewLabel(fmt.Sprintf("method=%s  box=%+v", res.Method, res.Box))
	w.SetContent(container.NewBorder(nil, status, nil, nil, view))
	w.Resize(fyne.NewSize(700, 900))
	w.ShowAndRun()
}

// drawBox paints a red frame for the detected box onto a copy of the page.
func drawBox(src image.Image, box geometry.RectInt) image.Image {
	b := src.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), src, b.Min, draw.Src)

	frame := box.ClampTo(b.Dx(), b.Dy())
	red := color.RGBA{R: 220, A: 255}
	const thickness = 4
	for t := 0; t < thickness; t++ {
		for x := frame.X; x < frame.Right(); x++ {
			setIfInside(out, x, frame.Y+t, red)
			setIfInside(out, x, frame.Bottom()-1-t, red)
		}
		for y := frame.Y; y < frame.Bottom(); y++ {
			setIfInside(out, frame.X+t, y, red)
			setIfInside(out, frame.Right()-1-t, y, red)
		}
	}
	return out
}

func setIfInside(img *image.RGBA, x, y int, c color.RGBA) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.SetRGBA(x, y, c)
	}
}
