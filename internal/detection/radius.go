package detection

// EstimateRadius grows a probe circle around center until it starts
// enclosing the ring.
//
// Radii 0 through RadiusCap-1 are tested in order; at each radius r the
// points with squared distance strictly below r² are counted. The search
// stops at the first r enclosing more than RadiusMaxCount points and returns
// the last r before it.
//
// If no tested radius exceeds the count, the largest tested radius is
// returned with capReached set. That is an approximation, not an error: the
// ring may simply be larger than the cap.
func EstimateRadius(set ForegroundSet, center Point, p Params) (radius int, capReached bool) {
	for r := 0; r < p.RadiusCap; r++ {
		if set.countWithin(center, r) > p.RadiusMaxCount {
			return radius, false
		}
		radius = r
	}
	return radius, true
}
