package detection

import (
	"fmt"
	"math"
)

// Geometry holds the physical layout of sensor and fence, in millimeters.
type Geometry struct {
	// FenceHeight is the height of the ring center above the floor.
	FenceHeight float64 `yaml:"fence_height" json:"fence_height"`

	// SensorHeight is the height of the depth sensor above the floor.
	SensorHeight float64 `yaml:"sensor_height" json:"sensor_height"`

	// FenceDistance is the horizontal distance from sensor to fence.
	FenceDistance float64 `yaml:"fence_distance" json:"fence_distance"`

	// Tolerance is subtracted from the sensor-to-center distance so that
	// slightly nearer pixels still count as target.
	Tolerance float64 `yaml:"tolerance" json:"tolerance"`

	// MaxDepth is the depth mapped to intensity 255 upstream.
	MaxDepth float64 `yaml:"max_depth" json:"max_depth"`
}

// DefaultGeometry returns the calibrated rig layout.
func DefaultGeometry() Geometry {
	return Geometry{
		FenceHeight:   2500,
		SensorHeight:  1800,
		FenceDistance: 3000,
		Tolerance:     200,
		MaxDepth:      8000,
	}
}

// Validate checks that the geometry can produce a cutoff.
func (g Geometry) Validate() error {
	if g.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be positive, got %g", g.MaxDepth)
	}
	if g.FenceDistance < 0 {
		return fmt.Errorf("fence_distance must not be negative, got %g", g.FenceDistance)
	}
	if g.Tolerance < 0 {
		return fmt.Errorf("tolerance must not be negative, got %g", g.Tolerance)
	}
	return nil
}

// ThresholdResult carries the cutoff and the distances it was derived from.
type ThresholdResult struct {
	// CenterDistance is the straight-line distance from sensor to ring center.
	CenterDistance float64 `json:"center_distance_mm"`

	// LowerDistance is CenterDistance minus the tolerance.
	LowerDistance float64 `json:"lower_distance_mm"`

	// Cutoff is the intensity at or below which a pixel is background.
	Cutoff uint8 `json:"cutoff"`
}

// ThresholdDetail computes the intensity cutoff for g and reports the
// intermediate distances.
//
// Sensor, fence and ring center form a right triangle with legs
// (FenceHeight - SensorHeight) and FenceDistance. The nearest distance still
// considered on target is the hypotenuse minus Tolerance, which is mapped
// linearly onto [0, 255] against MaxDepth and rounded. This mirrors the
// upstream depth-to-intensity conversion; if that mapping changes, this must
// change with it.
func ThresholdDetail(g Geometry) ThresholdResult {
	center := math.Hypot(g.FenceHeight-g.SensorHeight, g.FenceDistance)
	lower := center - g.Tolerance
	v := math.Round(255 * lower / g.MaxDepth)
	return ThresholdResult{
		CenterDistance: center,
		LowerDistance:  lower,
		Cutoff:         clampByte(v),
	}
}

// Threshold returns the intensity cutoff for g.
func Threshold(g Geometry) uint8 {
	return ThresholdDetail(g).Cutoff
}

func clampByte(v float64) uint8 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
