package detection

// ExtractForeground partitions f into foreground and background.
//
// A pixel is background when any of these hold:
//   - its row is at or below the horizon (row >= Cols/2)
//   - its column is in the leftmost or rightmost eighth of the frame
//   - its intensity is at or below cutoff
//
// Every other pixel is foreground. The frame is walked column by column with
// rows ascending inside each column, which yields the ForegroundSet ordering.
//
// Returns:
//   - ForegroundSet: foreground coordinates in traversal order. May be empty.
//   - Frame: a working copy of f with background set to 0 and foreground set
//     to 255. f itself is never modified.
func ExtractForeground(f Frame, cutoff uint8) (ForegroundSet, Frame) {
	mask := f.Clone()
	horizon := f.Horizon()
	trim := f.Cols / 8
	set := make(ForegroundSet, 0)

	for col := 0; col < f.Cols; col++ {
		edge := col < trim || col >= f.Cols-trim
		for row := 0; row < f.Rows; row++ {
			if edge || row >= horizon || f.At(row, col) <= cutoff {
				mask.Set(row, col, 0)
				continue
			}
			mask.Set(row, col, 255)
			set = append(set, Point{Row: row, Col: col})
		}
	}

	return set, mask
}
