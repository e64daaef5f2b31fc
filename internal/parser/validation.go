package parser

import (
	"fmt"
	"math"
)

// contiguityTol is the floating tolerance for plan-view contiguity checks:
// primitive[i].S + primitive[i].Length must equal primitive[i+1].S within
// this bound, and the lengths must sum to the road length.
const contiguityTol = 1e-3

// validateDocument checks the structural invariants of the document model
// that the XML decoder cannot express: plan-view contiguity and ordering,
// lane-section ordering, and profile ordering. A violation returns
// *ErrMalformedDocument and aborts the load.
//
// An empty plan view is deliberately not rejected here: that is a per-road
// condition reported as an EmptyGeometry warning during reconstruction so
// one broken road cannot take down the rest of the document.
func validateDocument(doc *Document) error {
	for _, road := range doc.Roads {
		if err := validatePlanView(road); err != nil {
			return err
		}
		if err := validateSections(road); err != nil {
			return err
		}
		if err := validateProfiles(road); err != nil {
			return err
		}
	}
	return nil
}

func validatePlanView(road *Road) error {
	pv := road.PlanView
	if len(pv) == 0 {
		return nil
	}
	elem := fmt.Sprintf("road %s planView", road.ID)

	if math.Abs(pv[0].S) > contiguityTol {
		return &ErrMalformedDocument{
			Element: elem,
			Reason:  fmt.Sprintf("first geometry starts at s=%g, expected 0", pv[0].S),
		}
	}
	var sum float64
	for i, prim := range pv {
		if i > 0 {
			prev := pv[i-1]
			gap := prim.S - (prev.S + prev.Length)
			if math.Abs(gap) > contiguityTol {
				return &ErrMalformedDocument{
					Element: elem,
					Reason:  fmt.Sprintf("geometry at s=%g is not contiguous with previous end s=%g", prim.S, prev.S+prev.Length),
				}
			}
		}
		sum += prim.Length
	}
	if math.Abs(sum-road.Length) > math.Max(contiguityTol, 1e-6*road.Length) {
		return &ErrMalformedDocument{
			Element: elem,
			Reason:  fmt.Sprintf("geometry lengths sum to %g, road declares %g", sum, road.Length),
		}
	}
	return nil
}

func validateSections(road *Road) error {
	elem := fmt.Sprintf("road %s laneSection", road.ID)
	for i, sec := range road.Sections {
		if i > 0 && sec.S <= road.Sections[i-1].S {
			return &ErrMalformedDocument{
				Element: elem,
				Reason:  fmt.Sprintf("section at s=%g does not follow previous section at s=%g", sec.S, road.Sections[i-1].S),
			}
		}
		if sec.S < 0 || sec.S > road.Length+contiguityTol {
			return &ErrMalformedDocument{
				Element: elem,
				Reason:  fmt.Sprintf("section start s=%g outside road length %g", sec.S, road.Length),
			}
		}
		// The last section extends to the road length.
		if i+1 < len(road.Sections) {
			sec.End = road.Sections[i+1].S
		} else {
			sec.End = road.Length
		}
	}
	return nil
}

func validateProfiles(road *Road) error {
	check := func(segments []ProfileSegment, name string) error {
		for i := 1; i < len(segments); i++ {
			if segments[i].S <= segments[i-1].S {
				return &ErrMalformedDocument{
					Element: fmt.Sprintf("road %s %s", road.ID, name),
					Reason:  fmt.Sprintf("overlapping segments at s=%g", segments[i].S),
				}
			}
		}
		return nil
	}
	if err := check(road.Elevation, "elevation"); err != nil {
		return err
	}
	if err := check(road.Superelevation, "superelevation"); err != nil {
		return err
	}
	return check(road.LaneOffsets, "laneOffset")
}
