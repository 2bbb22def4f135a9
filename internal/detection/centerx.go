package detection

// rodState tracks the first vertical run of the column being scanned.
type rodState int

const (
	rodScanning  rodState = iota // no point seen in the current column yet
	rodCounting                  // inside an unbroken run
	rodFound                     // run reached rod length; column recorded
	rodAbandoned                 // run broke before reaching rod length
)

// rodTracker is the per-column state machine used by EstimateCenterX. A
// column is recorded at most once: only the rodCounting -> rodFound
// transition records, and neither rodFound nor rodAbandoned leaves until the
// column changes.
type rodTracker struct {
	rodLength int
	state     rodState
	col       int
	lastRow   int
	run       int
	columns   []int
}

func (t *rodTracker) reset() {
	t.state = rodScanning
}

func (t *rodTracker) observe(p Point) {
	if t.state == rodScanning || p.Col != t.col {
		t.col = p.Col
		t.lastRow = p.Row
		t.run = 1
		t.state = rodCounting
		t.checkLength()
		return
	}

	if t.state != rodCounting {
		return
	}
	if p.Row != t.lastRow+1 {
		t.state = rodAbandoned
		return
	}
	t.lastRow = p.Row
	t.run++
	t.checkLength()
}

func (t *rodTracker) checkLength() {
	if t.run >= t.rodLength {
		t.columns = append(t.columns, t.col)
		t.state = rodFound
	}
}

// RodBandStart returns the first row the X estimator considers for a frame
// with the given row count. Points above the vertical midpoint belong to the
// ring itself, not to the rods under it.
func RodBandStart(rows int) int {
	return rows / 2
}

// EstimateCenterX estimates the ring's horizontal center from the rods that
// hold it up.
//
// Parameters:
//   - set: foreground pixels in ForegroundSet order.
//   - rows: row count of the frame the set came from.
//   - rodLength: consecutive pixels a column needs to count as a rod.
//
// Returns:
//   - int: integer mean of the recorded rod columns.
//   - []int: the recorded rod columns, ascending.
//   - error: *CenterNotFoundError for AxisX when no column holds a rod.
//
// # Algorithm
//
// Points above RodBandStart are skipped. For each column only the first
// vertical run counts: a gap abandons the column, and a run reaching
// rodLength records the column exactly once no matter how far it continues.
func EstimateCenterX(set ForegroundSet, rows, rodLength int) (int, []int, error) {
	band := RodBandStart(rows)
	tracker := &rodTracker{rodLength: rodLength}

	for _, p := range set {
		if p.Row < band {
			tracker.reset()
			continue
		}
		tracker.observe(p)
	}

	if len(tracker.columns) == 0 {
		return 0, nil, &CenterNotFoundError{Axis: AxisX}
	}

	sum := 0
	for _, c := range tracker.columns {
		sum += c
	}
	return sum / len(tracker.columns), tracker.columns, nil
}
