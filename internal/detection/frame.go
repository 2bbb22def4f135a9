package detection

import "fmt"

// Point is a pixel coordinate. Row counts down from the top edge, Col counts
// right from the left edge.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Frame is a single-channel 8-bit intensity image stored row-major.
type Frame struct {
	Rows int
	Cols int
	Pix  []uint8
}

// NewFrame wraps pix as a rows x cols frame.
//
// Returns ErrFrameShape if either dimension is not positive or the buffer
// length does not match. The buffer is not copied.
func NewFrame(rows, cols int, pix []uint8) (Frame, error) {
	if rows <= 0 || cols <= 0 {
		return Frame{}, fmt.Errorf("%w: dimensions %dx%d", ErrFrameShape, rows, cols)
	}
	if len(pix) != rows*cols {
		return Frame{}, fmt.Errorf("%w: buffer holds %d samples, want %d", ErrFrameShape, len(pix), rows*cols)
	}
	return Frame{Rows: rows, Cols: cols, Pix: pix}, nil
}

// BlankFrame allocates a zero-filled frame.
func BlankFrame(rows, cols int) Frame {
	return Frame{Rows: rows, Cols: cols, Pix: make([]uint8, rows*cols)}
}

// At returns the intensity at (row, col). No bounds checking is performed.
func (f Frame) At(row, col int) uint8 {
	return f.Pix[row*f.Cols+col]
}

// Set writes the intensity at (row, col). No bounds checking is performed.
func (f Frame) Set(row, col int, v uint8) {
	f.Pix[row*f.Cols+col] = v
}

// Clone returns a deep copy of the frame.
func (f Frame) Clone() Frame {
	pix := make([]uint8, len(f.Pix))
	copy(pix, f.Pix)
	return Frame{Rows: f.Rows, Cols: f.Cols, Pix: pix}
}

// Horizon returns the first row that can never hold foreground.
//
// It is half the frame width, not half its height. On the 512x424 depth
// sensor this is row 256, below the 212-row vertical midpoint, which leaves
// room for the mounting rods under the ring.
func (f Frame) Horizon() int {
	return f.Cols / 2
}

// ForegroundSet is the ordered list of foreground pixels of one frame.
//
// Points are grouped by column in non-decreasing column order and rows are
// strictly increasing within a column. EstimateCenterX depends on this
// ordering to find vertical runs.
type ForegroundSet []Point

// Ordered reports whether the set satisfies the column-major, row-ascending
// ordering.
func (s ForegroundSet) Ordered() bool {
	for i := 1; i < len(s); i++ {
		prev, cur := s[i-1], s[i]
		if cur.Col < prev.Col {
			return false
		}
		if cur.Col == prev.Col && cur.Row <= prev.Row {
			return false
		}
	}
	return true
}

// countWithin counts points whose squared distance from center is strictly
// less than r².
func (s ForegroundSet) countWithin(center Point, r int) int {
	limit := r * r
	count := 0
	for _, p := range s {
		dr := p.Row - center.Row
		dc := p.Col - center.Col
		if dr*dr+dc*dc < limit {
			count++
		}
	}
	return count
}
