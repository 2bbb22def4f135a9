package detection

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Result is the outcome of one Detect call.
//
// HasX and HasY say which parts of Center were estimated; Radius is only
// meaningful when both are set. When Detect returns an error the Result still
// carries whatever was estimated before the failure.
type Result struct {
	// Center is the estimated ring center.
	Center Point `json:"center"`

	// Radius is the estimated inner radius in pixels.
	Radius int `json:"radius"`

	// HasX reports whether Center.Col was estimated.
	HasX bool `json:"has_x"`

	// HasY reports whether Center.Row was estimated.
	HasY bool `json:"has_y"`

	// RadiusCapReached is set when the radius search ran to its cap without
	// finding the ring boundary.
	RadiusCapReached bool `json:"radius_cap_reached"`

	// Cutoff is the intensity threshold that was applied.
	Cutoff uint8 `json:"cutoff"`

	// ForegroundCount is the number of foreground pixels.
	ForegroundCount int `json:"foreground_count"`

	// RodColumns are the columns that held a rod.
	RodColumns []int `json:"rod_columns,omitempty"`

	// RodSpread is the standard deviation of RodColumns, 0 when fewer than
	// two rods were found.
	RodSpread float64 `json:"rod_spread"`

	// Foreground is the extracted foreground set.
	Foreground ForegroundSet `json:"-"`

	// Mask is the thresholded working image (0 background, 255 foreground).
	Mask Frame `json:"-"`
}

// Found reports whether both center coordinates were estimated.
func (r *Result) Found() bool {
	return r.HasX && r.HasY
}

// Session is the validated boundary of the pipeline for one frame shape.
//
// It replaces per-process sensor state: everything Detect needs is fixed at
// construction and never mutated, so a Session can be shared freely.
type Session struct {
	rows     int
	cols     int
	geometry Geometry
	params   Params
	cutoff   uint8
}

// NewSession validates the frame shape, geometry and parameters once and
// precomputes the intensity cutoff.
func NewSession(rows, cols int, g Geometry, p Params) (*Session, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrFrameShape, rows, cols)
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("invalid geometry: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	return &Session{
		rows:     rows,
		cols:     cols,
		geometry: g,
		params:   p,
		cutoff:   Threshold(g),
	}, nil
}

// Cutoff returns the intensity cutoff applied by Detect.
func (s *Session) Cutoff() uint8 {
	return s.cutoff
}

// Params returns the estimator parameters.
func (s *Session) Params() Params {
	return s.params
}

// Detect runs the full pipeline on f.
//
// Returns ErrFrameShape (with a nil Result) when f does not match the
// session's shape. Estimation failures return ErrEmptyForeground or a
// *CenterNotFoundError together with the partial Result.
func (s *Session) Detect(f Frame) (*Result, error) {
	if f.Rows != s.rows || f.Cols != s.cols || len(f.Pix) != s.rows*s.cols {
		return nil, fmt.Errorf("%w: got %dx%d (%d samples), session expects %dx%d",
			ErrFrameShape, f.Rows, f.Cols, len(f.Pix), s.rows, s.cols)
	}

	set, mask := ExtractForeground(f, s.cutoff)
	res := &Result{
		Cutoff:          s.cutoff,
		ForegroundCount: len(set),
		Foreground:      set,
		Mask:            mask,
	}
	if len(set) == 0 {
		return res, ErrEmptyForeground
	}

	x, rods, err := EstimateCenterX(set, f.Rows, s.params.RodLength)
	if err != nil {
		return res, err
	}
	res.Center.Col = x
	res.HasX = true
	res.RodColumns = rods
	res.RodSpread = rodSpread(rods)

	y, err := EstimateCenterY(set, x, f.Horizon(), s.params)
	if err != nil {
		return res, err
	}
	res.Center.Row = y
	res.HasY = true

	res.Radius, res.RadiusCapReached = EstimateRadius(set, res.Center, s.params)
	return res, nil
}

func rodSpread(cols []int) float64 {
	if len(cols) < 2 {
		return 0
	}
	xs := make([]float64, len(cols))
	for i, c := range cols {
		xs[i] = float64(c)
	}
	return stat.StdDev(xs, nil)
}
