// Package driver runs column detection and cropping over a batch of page
// scans. Every policy the detection core refuses to own lives here: page
// skipping, per-page overrides, output naming, concurrency.
package driver

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/shirou/gopsutil/v3/mem"
	"golang.org/x/sync/errgroup"

	"foliocrop/internal/column"
	"foliocrop/internal/config"
	"foliocrop/internal/override"
	"foliocrop/internal/page"
)

// perImageBudget is a conservative working-set estimate for one page in
// flight: the decoded scan plus the grayscale and mask copies.
const perImageBudget = 256 << 20

// Summary tallies one batch run.
type Summary struct {
	Processed  int
	Skipped    int
	Overridden int
	Failed     int
	ByMethod   map[column.Method]int
}

// Runner executes batch runs with a fixed configuration.
type Runner struct {
	cfg       config.Config
	overrides override.Policy
}

// New creates a Runner, loading the override table when one is configured.
func New(cfg config.Config) (*Runner, error) {
	var policy override.Policy = override.None{}
	if cfg.OverridesPath != "" {
		table, err := override.LoadTable(cfg.OverridesPath)
		if err != nil {
			return nil, err
		}
		log.Printf("Loaded %d page overrides from %s", table.Len(), cfg.OverridesPath)
		policy = table
	}
	return &Runner{cfg: cfg, overrides: policy}, nil
}

// Run processes every page image under inputDir, writing cropped columns to
// outputDir. Pages are independent, so they run on a worker pool; one bad
// page is logged and counted, never fatal to the batch.
func (r *Runner) Run(ctx context.Context, inputDir, outputDir string) (Summary, error) {
	paths, err := listPageImages(inputDir)
	if err != nil {
		return Summary{}, err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create output dir: %w", err)
	}

	summary := Summary{ByMethod: make(map[column.Method]int)}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workerCount())

	for _, path := range paths {
		id := pageID(path)
		if r.skip(id) {
			summary.Skipped++
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res, overridden, err := r.processPage(path, outputDir)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("FAIL %s: %v", id, err)
				summary.Failed++
				return nil
			}
			summary.Processed++
			if overridden {
				summary.Overridden++
			} else {
				summary.ByMethod[res.Method]++
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return summary, err
	}
	return summary, nil
}

// processPage crops one page: override box when registered, detected box
// otherwise.
func (r *Runner) processPage(path, outputDir string) (column.Result, bool, error) {
	img, err := page.Load(path)
	if err != nil {
		return column.Result{}, false, err
	}

	id := pageID(path)
	outPath := filepath.Join(outputDir, id+r.cfg.OutputSuffix+".png")

	if box, ok := r.overrides.Lookup(id); ok {
		if err := page.CropSave(img, box, outPath); err != nil {
			return column.Result{}, true, err
		}
		log.Printf("OK   %s: override box %+v", id, box)
		return column.Result{Box: box}, true, nil
	}

	res, err := column.DetectFromImage(img, r.cfg.Params)
	if err != nil {
		return column.Result{}, false, err
	}
	if err := page.CropSave(img, res.Box, outPath); err != nil {
		return res, false, err
	}
	log.Printf("OK   %s: %s box %+v", id, res.Method, res.Box)
	return res, false, nil
}

// skip applies the driver-side page policies: explicit skip list first, then
// the even-page filter.
func (r *Runner) skip(id string) bool {
	for _, s := range r.cfg.SkipPages {
		if s == id {
			return true
		}
	}
	if r.cfg.SkipEvenPages {
		if n, ok := trailingNumber(id); ok && n%2 == 0 {
			return true
		}
	}
	return false
}

// workerCount sizes the pool from the config, falling back to whichever is
// smaller: the CPU count or what available memory sustains.
func (r *Runner) workerCount() int {
	if r.cfg.Workers > 0 {
		return r.cfg.Workers
	}

	workers := runtime.NumCPU()
	if vm, err := mem.VirtualMemory(); err == nil {
		byMem := int(vm.Available / perImageBudget)
		if byMem >= 1 && byMem < workers {
			workers = byMem
		}
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// listPageImages returns the sorted page image paths directly under dir.
func listPageImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg", ".tif", ".tiff":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// pageID is the file stem: "genesis_017.png" → "genesis_017".
func pageID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// trailingNumber extracts the numeric suffix of a page identifier.
func trailingNumber(id string) (int, bool) {
	i := len(id)
	for i > 0 && id[i-1] >= '0' && id[i-1] <= '9' {
		i--
	}
	if i == len(id) {
		return 0, false
	}
	n, err := strconv.Atoi(id[i:])
	if err != nil {
		return 0, false
	}
	return n, true
}
