// Command foliocrop locates the target text column on scanned manuscript
// pages and writes the cropped column images for the transcription stage.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"foliocrop/internal/column"
	"foliocrop/internal/config"
	"foliocrop/internal/driver"
	"foliocrop/internal/page"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	imagePath := flag.String("image", "", "Detect on a single page image and print the result")
	inputDir := flag.String("in", "", "Directory of page scans to process")
	outputDir := flag.String("out", "cropped", "Directory for cropped column images")
	configPath := flag.String("config", "", "Optional yaml config file")
	targetColumn := flag.Int("column", -1, "Override the target column index (zero-based)")
	crop := flag.Bool("crop", false, "With -image: also write the cropped column")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	cfg.Params = cfg.Params.WithTargetColumn(*targetColumn)

	switch {
	case *imagePath != "":
		if err := runSingle(*imagePath, *outputDir, cfg, *crop); err != nil {
			log.Fatalf("%s: %v", *imagePath, err)
		}
	case *inputDir != "":
		if err := runBatch(*inputDir, *outputDir, cfg); err != nil {
			log.Fatalf("batch: %v", err)
		}
	default:
		fmt.Fprintln(os.Stderr, "Usage: foliocrop -image <page> [-crop] | -in <dir> [-out <dir>] [-config <yaml>]")
		os.Exit(1)
	}
}

func runSingle(path, outputDir string, cfg config.Config, crop bool) error {
	img, err := page.Load(path)
	if err != nil {
		return err
	}
	bounds := img.Bounds()
	fmt.Printf("Loaded %s: %dx%d pixels\n", path, bounds.Dx(), bounds.Dy())

	res, err := column.DetectFromImage(img, cfg.Params)
	if err != nil {
		return err
	}

	out, _ := json.Marshal(res)
	fmt.Printf("Result: %s (method=%s)\n", out, res.Method)

	if crop {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return err
		}
		outPath := filepath.Join(outputDir, "column.png")
		if err := page.CropSave(img, res.Box, outPath); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", outPath)
	}
	return nil
}

func runBatch(inputDir, outputDir string, cfg config.Config) error {
	runner, err := driver.New(cfg)
	if err != nil {
		return err
	}

	summary, err := runner.Run(context.Background(), inputDir, outputDir)
	if err != nil {
		return err
	}

	fmt.Printf("Processed %d pages (%d skipped, %d overridden, %d failed)\n",
		summary.Processed, summary.Skipped, summary.Overridden, summary.Failed)
	for method, count := range summary.ByMethod {
		fmt.Printf("  %-10s %d\n", method, count)
	}
	return nil
}
