package imaging

import "math"

// DepthToIntensity maps a depth sample in millimeters onto [0, 255]
// linearly against maxDepth, rounding to nearest and saturating at 255.
func DepthToIntensity(depth uint16, maxDepth float64) uint8 {
	v := math.Round(float64(depth) * 255 / maxDepth)
	if v >= 255 {
		return 255
	}
	if v <= 0 {
		return 0
	}
	return uint8(v)
}
