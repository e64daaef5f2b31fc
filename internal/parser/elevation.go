package parser

// applyProfiles lifts 2D reference-line samples into 3D: for each sample
// it evaluates the covering elevation segment for z and the covering
// superelevation segment for the cross-section roll angle.
//
// Profile segments are sorted and non-overlapping (validated at parse
// time), so the lookup is a binary search. A gap or a missing profile
// yields z = 0 / roll = 0; that is a degraded mode, not a failure.
func applyProfiles(road *Road, samples []Sample) {
	for i := range samples {
		samples[i].Z = evalProfile(road.Elevation, samples[i].S)
		samples[i].Roll = evalProfile(road.Superelevation, samples[i].S)
	}
}
