package detection

import "fmt"

// Params are the estimator tuning constants. The defaults were tuned
// empirically against one rig and are expected to need recalibration for
// other sensors.
type Params struct {
	// RodLength is the number of vertically consecutive foreground pixels a
	// column needs to count as a rod.
	RodLength int `yaml:"rod_length" json:"rod_length"`

	// ProbeRadius is the radius of the probe circle walked up the center
	// column by the Y estimator.
	ProbeRadius int `yaml:"probe_radius" json:"probe_radius"`

	// SparseMaxCount is the highest probe count for a row to be sparse.
	SparseMaxCount int `yaml:"sparse_max_count" json:"sparse_max_count"`

	// SparseRunRows is exceeded by the number of consecutive sparse rows
	// needed before the Y scan is allowed to stop.
	SparseRunRows int `yaml:"sparse_run_rows" json:"sparse_run_rows"`

	// DenseMinCount is the probe count that stops the Y scan once inside
	// the sparse region.
	DenseMinCount int `yaml:"dense_min_count" json:"dense_min_count"`

	// RadiusCap bounds the radius search; radii 0..RadiusCap-1 are tested.
	RadiusCap int `yaml:"radius_cap" json:"radius_cap"`

	// RadiusMaxCount is the most foreground points a radius probe may
	// enclose and still qualify.
	RadiusMaxCount int `yaml:"radius_max_count" json:"radius_max_count"`
}

// DefaultParams returns the tuned estimator constants.
func DefaultParams() Params {
	return Params{
		RodLength:      30,
		ProbeRadius:    20,
		SparseMaxCount: 10,
		SparseRunRows:  10,
		DenseMinCount:  20,
		RadiusCap:      50,
		RadiusMaxCount: 10,
	}
}

// Validate rejects parameters the estimators cannot run with.
func (p Params) Validate() error {
	if p.RodLength < 1 {
		return fmt.Errorf("rod_length must be at least 1, got %d", p.RodLength)
	}
	if p.ProbeRadius < 1 {
		return fmt.Errorf("probe_radius must be at least 1, got %d", p.ProbeRadius)
	}
	if p.SparseMaxCount < 0 || p.SparseRunRows < 0 || p.RadiusMaxCount < 0 {
		return fmt.Errorf("count thresholds must not be negative")
	}
	if p.DenseMinCount <= p.SparseMaxCount {
		return fmt.Errorf("dense_min_count (%d) must exceed sparse_max_count (%d)", p.DenseMinCount, p.SparseMaxCount)
	}
	if p.RadiusCap < 1 {
		return fmt.Errorf("radius_cap must be at least 1, got %d", p.RadiusCap)
	}
	return nil
}
