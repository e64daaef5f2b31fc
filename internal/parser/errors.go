package parser

import (
	"fmt"
)

// ErrMalformedDocument indicates a structural or numeric parse failure.
// This aborts the whole-document load.
type ErrMalformedDocument struct {
	Element string
	Reason  string
}

func (e *ErrMalformedDocument) Error() string {
	if e.Element != "" {
		return fmt.Sprintf("malformed document (%s): %s", e.Element, e.Reason)
	}
	return fmt.Sprintf("malformed document: %s", e.Reason)
}

// ErrEmptyGeometry indicates a road with an empty plan view. The road is
// skipped with a warning; sibling roads are unaffected.
type ErrEmptyGeometry struct {
	RoadID string
}

func (e *ErrEmptyGeometry) Error() string {
	return fmt.Sprintf("road %s has no plan view geometry", e.RoadID)
}

// ErrOutOfRange indicates a primitive evaluation outside [0, length]
// by more than evalEps. Callers must clamp or reject.
type ErrOutOfRange struct {
	U      float64
	Length float64
}

func (e *ErrOutOfRange) Error() string {
	return fmt.Sprintf("evaluation offset %g outside primitive range [0, %g]", e.U, e.Length)
}

// ErrDegenerateLane indicates lane boundary offsets that do not strictly
// increase in magnitude moving outward (a geometrically inverted lane).
// The lane is skipped with a warning; sibling lanes are unaffected.
type ErrDegenerateLane struct {
	RoadID string
	LaneID int
	S      float64
}

func (e *ErrDegenerateLane) Error() string {
	return fmt.Sprintf("road %s lane %d: boundary inverts at s=%g", e.RoadID, e.LaneID, e.S)
}

// Warning is a non-fatal reconstruction problem, keyed by road id.
// LaneID is non-zero only for lane-scoped warnings.
type Warning struct {
	RoadID string
	LaneID int
	Err    error
}

func (w Warning) String() string {
	return w.Err.Error()
}
