package column

// DetectionParams holds every tunable of the column detection pipeline.
// The defaults are calibrated for ~1700×3000 px scans of a two-column-per-side
// polyglot page layout; other corpora or resolutions override them through
// the config file rather than by editing detector code.
type DetectionParams struct {
	// TargetColumn is the zero-based index, counting from the left, of the
	// column to crop. The historical corpus always wants the second column.
	TargetColumn int `yaml:"target_column"`

	// Expected column width window in pixels. The validator widens it by
	// WidthSlack on both sides; IdealWidth anchors width-closeness scoring.
	MinWidth   int `yaml:"min_width"`
	MaxWidth   int `yaml:"max_width"`
	WidthSlack int `yaml:"width_slack"`
	IdealWidth int `yaml:"ideal_width"`

	// Validator geometry. Height must reach max(MinHeightFrac·H, MinHeightPx);
	// the box center must stay in the left MaxCenterFrac of the page; x must
	// lie in [MinLeftX, max(MaxXFrac·W, MaxXFloorPx)].
	MinHeightFrac float64 `yaml:"min_height_frac"`
	MinHeightPx   int     `yaml:"min_height_px"`
	MaxCenterFrac float64 `yaml:"max_center_frac"`
	MaxXFrac      float64 `yaml:"max_x_frac"`
	MaxXFloorPx   int     `yaml:"max_x_floor_px"`
	MinLeftX      int     `yaml:"min_left_x"`

	// Strategy-side left-edge floor: a box anchored before
	// max(StrategyMinLeftPx, StrategyMinLeftFrac·W) is treated as the first
	// column by the Hough rescue, the Hough exit check, and the projection
	// sliding-window scorer.
	StrategyMinLeftPx   int     `yaml:"strategy_min_left_px"`
	StrategyMinLeftFrac float64 `yaml:"strategy_min_left_frac"`

	// Contour strategy. BorderMargin is cropped off all sides before the
	// directional dilation; the kernels are fractions of the page dimensions.
	BorderMargin      int     `yaml:"border_margin"`
	HorizKernelFrac   float64 `yaml:"horiz_kernel_frac"`
	VertKernelFrac    float64 `yaml:"vert_kernel_frac"`
	ContourMinHeight  int     `yaml:"contour_min_height"`
	ContourAspectMin  float64 `yaml:"contour_aspect_min"`
	ContourCenterFrac float64 `yaml:"contour_center_frac"`
	CentralityFrac    float64 `yaml:"centrality_frac"`

	// Unconditional vertical expansion applied after every strategy: the top
	// starts within min(TopStartPx, TopStartFrac·H), the bottom reaches
	// BottomFrac·H, and the covered span must be at least MinSpanFrac·H.
	TopStartPx   int     `yaml:"top_start_px"`
	TopStartFrac float64 `yaml:"top_start_frac"`
	BottomFrac   float64 `yaml:"bottom_frac"`
	MinSpanFrac  float64 `yaml:"min_span_frac"`

	// Hough strategy.
	CannyLow           float32 `yaml:"canny_low"`
	CannyHigh          float32 `yaml:"canny_high"`
	VertLineDxMax      int     `yaml:"vert_line_dx_max"`
	VertLineDyMin      int     `yaml:"vert_line_dy_min"`
	HorizLineDyMax     int     `yaml:"horiz_line_dy_max"`
	HorizLineDxMin     int     `yaml:"horiz_line_dx_min"`
	TitleBandY         int     `yaml:"title_band_y"`
	SearchWidthFrac    float64 `yaml:"search_width_frac"`
	ClusterGap         int     `yaml:"cluster_gap"`
	ClusterGapTight    int     `yaml:"cluster_gap_tight"`
	ClusterRetryMin    int     `yaml:"cluster_retry_min"`
	HoughMinWidth      int     `yaml:"hough_min_width"`
	HoughMaxWidth      int     `yaml:"hough_max_width"`
	LeftEdgePenalty    float64 `yaml:"left_edge_penalty"`
	LeftEdgePenaltyMin int     `yaml:"left_edge_penalty_min"`
	ReanchorXFrac      float64 `yaml:"reanchor_x_frac"`
	ReanchorXFloor     int     `yaml:"reanchor_x_floor"`
	RefineMargin       int     `yaml:"refine_margin"`

	// Projection strategy.
	DensityLoFrac    float64 `yaml:"density_lo_frac"`
	DensityHiFrac    float64 `yaml:"density_hi_frac"`
	DensitySteps     int     `yaml:"density_steps"`
	RunMinWidth      int     `yaml:"run_min_width"`
	RunMaxWidthFrac  float64 `yaml:"run_max_width_frac"`
	RunOverlapFrac   float64 `yaml:"run_overlap_frac"`
	WideRunWidth     int     `yaml:"wide_run_width"`
	SplitXFloor      int     `yaml:"split_x_floor"`
	SplitXFrac       float64 `yaml:"split_x_frac"`
	SplitOffset      int     `yaml:"split_offset"`
	SplitWidthFrac   float64 `yaml:"split_width_frac"`
	ProjectionXLimit float64 `yaml:"projection_x_limit"`

	// Title merge.
	TitleScanHeight int `yaml:"title_scan_height"`
	TitleMinHeight  int `yaml:"title_min_height"`
	TitleMaxHeight  int `yaml:"title_max_height"`

	// Geometry correction.
	WrongColCenterFrac float64 `yaml:"wrong_col_center_frac"`
	PeakBandLoFrac     float64 `yaml:"peak_band_lo_frac"`
	PeakBandHiFrac     float64 `yaml:"peak_band_hi_frac"`
	PeakMinFrac        float64 `yaml:"peak_min_frac"`
	PeakBackoff        int     `yaml:"peak_backoff"`
	ClipBandPx         int     `yaml:"clip_band_px"`
	ClipDensity        float64 `yaml:"clip_density"`
	ClipStopDensity    float64 `yaml:"clip_stop_density"`
	ClipStepPx         int     `yaml:"clip_step_px"`
	ClipBudgetPx       int     `yaml:"clip_budget_px"`
	LeftTrimMaxPx      int     `yaml:"left_trim_max_px"`
	LeftTrimFloorX     int     `yaml:"left_trim_floor_x"`
	DoubleColWidth     int     `yaml:"double_col_width"`
	DoubleColNearWidth int     `yaml:"double_col_near_width"`
	NearLeftX          int     `yaml:"near_left_x"`
	WidthCap           int     `yaml:"width_cap"`

	// Fallback box derived from page dimensions alone.
	FallbackXFrac     float64 `yaml:"fallback_x_frac"`
	FallbackWidthFrac float64 `yaml:"fallback_width_frac"`
	FallbackWidthMin  int     `yaml:"fallback_width_min"`
	FallbackWidthMax  int     `yaml:"fallback_width_max"`
}

// DefaultParams returns detection parameters tuned for the historical corpus:
// ~1700 px wide, ~3000 px tall grayscale scans with the target column second
// from the left.
func DefaultParams() DetectionParams {
	return DetectionParams{
		TargetColumn: 1,

		MinWidth:   800,
		MaxWidth:   1200,
		WidthSlack: 200,
		IdealWidth: 1000,

		MinHeightFrac: 0.4,
		MinHeightPx:   1500,
		MaxCenterFrac: 0.5,
		MaxXFrac:      0.35,
		MaxXFloorPx:   600,
		MinLeftX:      50,

		StrategyMinLeftPx:   250,
		StrategyMinLeftFrac: 0.15,

		BorderMargin:      20,
		HorizKernelFrac:   0.015,
		VertKernelFrac:    0.008,
		ContourMinHeight:  1800,
		ContourAspectMin:  1.5,
		ContourCenterFrac: 0.8,
		CentralityFrac:    0.3,

		TopStartPx:   50,
		TopStartFrac: 0.02,
		BottomFrac:   0.93,
		MinSpanFrac:  0.85,

		CannyLow:           50,
		CannyHigh:          150,
		VertLineDxMax:      15,
		VertLineDyMin:      300,
		HorizLineDyMax:     15,
		HorizLineDxMin:     300,
		TitleBandY:         700,
		SearchWidthFrac:    0.8,
		ClusterGap:         50,
		ClusterGapTight:    30,
		ClusterRetryMin:    3,
		HoughMinWidth:      500,
		HoughMaxWidth:      1700,
		LeftEdgePenalty:    0.3,
		LeftEdgePenaltyMin: 4,
		ReanchorXFrac:      0.25,
		ReanchorXFloor:     400,
		RefineMargin:       10,

		DensityLoFrac:    0.005,
		DensityHiFrac:    0.05,
		DensitySteps:     10,
		RunMinWidth:      300,
		RunMaxWidthFrac:  0.75,
		RunOverlapFrac:   0.30,
		WideRunWidth:     1200,
		SplitXFloor:      450,
		SplitXFrac:       0.27,
		SplitOffset:      400,
		SplitWidthFrac:   0.3,
		ProjectionXLimit: 0.4,

		TitleScanHeight: 400,
		TitleMinHeight:  25,
		TitleMaxHeight:  220,

		WrongColCenterFrac: 0.55,
		PeakBandLoFrac:     0.10,
		PeakBandHiFrac:     0.30,
		PeakMinFrac:        0.05,
		PeakBackoff:        30,
		ClipBandPx:         50,
		ClipDensity:        0.12,
		ClipStopDensity:    0.08,
		ClipStepPx:         20,
		ClipBudgetPx:       150,
		LeftTrimMaxPx:      50,
		LeftTrimFloorX:     200,
		DoubleColWidth:     900,
		DoubleColNearWidth: 800,
		NearLeftX:          150,
		WidthCap:           1100,

		FallbackXFrac:     0.28,
		FallbackWidthFrac: 0.4,
		FallbackWidthMin:  700,
		FallbackWidthMax:  1100,
	}
}

// WithTargetColumn returns a copy of params selecting a different column index.
func (p DetectionParams) WithTargetColumn(index int) DetectionParams {
	if index >= 0 {
		p.TargetColumn = index
	}
	return p
}

// WithWidthWindow returns a copy of params with a custom expected width window.
func (p DetectionParams) WithWidthWindow(minWidth, maxWidth int) DetectionParams {
	if minWidth > 0 && maxWidth >= minWidth {
		p.MinWidth = minWidth
		p.MaxWidth = maxWidth
		p.IdealWidth = (minWidth + maxWidth) / 2
	}
	return p
}

// minCandidates is the smallest number of distinct column candidates a
// strategy must see before trusting its selection. A page carries at least
// TargetColumn+1 columns; fewer candidates means the strategy is guessing.
func (p DetectionParams) minCandidates() int {
	return p.TargetColumn + 1
}

// strategyMinLeft is the left-edge floor shared by the Hough rescue, the
// Hough exit check, and the projection sliding-window scorer.
func (p DetectionParams) strategyMinLeft(pageWidth int) int {
	return maxInt(p.StrategyMinLeftPx, int(p.StrategyMinLeftFrac*float64(pageWidth)))
}

// validWidthMin and validWidthMax give the validator's width window for a
// page of the given width.
func (p DetectionParams) validWidthMin() int {
	return maxInt(600, p.MinWidth-p.WidthSlack)
}

func (p DetectionParams) validWidthMax(pageWidth int) int {
	return minInt(p.MaxWidth+p.WidthSlack, int(0.6*float64(pageWidth)))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
