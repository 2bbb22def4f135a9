package detection

// EstimateCenterY estimates the ring's vertical center along column x.
//
// Parameters:
//   - set: foreground pixels of the frame.
//   - x: the column estimated by EstimateCenterX.
//   - horizon: the row to start scanning from, normally Frame.Horizon().
//   - p: estimator parameters (ProbeRadius, SparseMaxCount, SparseRunRows,
//     DenseMinCount).
//
// Returns:
//   - int: integer mean of the sparse rows seen.
//   - error: *CenterNotFoundError for AxisY when no row was sparse.
//
// # Algorithm
//
// Rows are scanned from the horizon up to row 0. At each row the probe
// circle centered on (row, x) counts the foreground points strictly inside
// it. A row with at most SparseMaxCount points is sparse and contributes to
// the mean. Once more than SparseRunRows consecutive sparse rows have been
// seen the scan is inside the ring's dark interior, and the first row with
// at least DenseMinCount points after that marks the upper arc and stops the
// scan.
func EstimateCenterY(set ForegroundSet, x, horizon int, p Params) (int, error) {
	var (
		rowSum   int
		rowCount int
		run      int
		interior bool
	)

	for row := horizon; row >= 0; row-- {
		count := set.countWithin(Point{Row: row, Col: x}, p.ProbeRadius)

		if run > p.SparseRunRows {
			interior = true
		}
		if interior && count >= p.DenseMinCount {
			break
		}
		if count <= p.SparseMaxCount {
			rowSum += row
			rowCount++
			run++
		} else {
			run = 0
		}
	}

	if rowCount == 0 {
		return 0, &CenterNotFoundError{Axis: AxisY}
	}
	return rowSum / rowCount, nil
}
