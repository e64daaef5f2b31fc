package parser

import (
	"math"
)

// LaneSide tells which side of the reference line a lane lies on.
type LaneSide int

const (
	SideLeft LaneSide = iota
	SideRight
)

// String returns "left" or "right".
func (s LaneSide) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// Point3 is a 3D point in the local planar frame.
type Point3 struct {
	X, Y, Z float64
}

// LaneMesh is the drawable geometry of one lane over one lane section:
// its inner and outer boundary polylines and the closed polygon stitched
// from them.
type LaneMesh struct {
	LaneID       int
	SectionIndex int
	Side         LaneSide
	Type         string

	// Inner is the boundary shared with the next lane towards the
	// center; Outer the boundary away from it. Both run in increasing
	// s order.
	Inner, Outer []Point3

	// Polygon is the closed ring: Inner, then Outer reversed, then the
	// first inner point again.
	Polygon []Point3
}

// degenEps is the width below which a lane is considered geometrically
// inverted. Zero-width lanes (e.g. potential lanes) are legitimate and
// pass; genuinely negative widths invert the boundary ordering.
const degenEps = -1e-9

// buildLanes derives per-lane boundary geometry for every lane section of
// a road from the 3D reference-line samples.
//
// For each sample inside a section, the signed lateral offset of each
// boundary accumulates lane widths outward from the center lane, starting
// at the lane-offset line (§9.3). The boundary point displaces the sample
// along the cross-section normal (plan-view left normal scaled by
// cos(roll)) and vertically by t·sin(roll).
//
// A lane whose width goes negative anywhere in the section violates the
// outward-monotonicity invariant; it is reported as a degenerate-lane
// warning and skipped, while its (clamped) width still advances the
// accumulator so outer siblings stay positioned.
func buildLanes(road *Road, samples []Sample, ignoredTypes map[string]bool) ([]LaneMesh, []Warning) {
	var meshes []LaneMesh
	var warnings []Warning

	for si, sec := range road.Sections {
		rows := sectionSamples(samples, sec)
		if len(rows) < 2 {
			continue
		}

		for _, side := range [2]LaneSide{SideLeft, SideRight} {
			lanes := sec.Left
			sign := 1.0
			if side == SideRight {
				lanes = sec.Right
				sign = -1.0
			}

			// Boundary offsets start at the lane-offset line, which
			// shifts the lane frame origin off the reference line.
			inner := make([]float64, len(rows))
			for i, sm := range rows {
				inner[i] = evalProfile(road.LaneOffsets, sm.S)
			}

			for _, lane := range lanes {
				outer := make([]float64, len(rows))
				degenerateAt := math.NaN()
				for i, sm := range rows {
					w := lane.Width(sm.S - sec.S)
					if w < degenEps && math.IsNaN(degenerateAt) {
						degenerateAt = sm.S
					}
					outer[i] = inner[i] + sign*math.Max(w, 0)
				}

				if !math.IsNaN(degenerateAt) {
					warnings = append(warnings, Warning{
						RoadID: road.ID,
						LaneID: lane.ID,
						Err:    &ErrDegenerateLane{RoadID: road.ID, LaneID: lane.ID, S: degenerateAt},
					})
				} else if !ignoredTypes[lane.Type] {
					meshes = append(meshes, laneMesh(lane, si, side, rows, inner, outer))
				}
				inner = outer
			}
		}
	}
	return meshes, warnings
}

// sectionSamples returns the reference-line samples covering a section.
// Section boundaries are exact sample positions by construction.
func sectionSamples(samples []Sample, sec *LaneSection) []Sample {
	lo := 0
	for lo < len(samples) && samples[lo].S < sec.S-evalEps {
		lo++
	}
	hi := lo
	for hi < len(samples) && samples[hi].S <= sec.End+evalEps {
		hi++
	}
	return samples[lo:hi]
}

// laneMesh builds one lane's boundary polylines and stitched polygon from
// the boundary offset columns.
func laneMesh(lane *Lane, sectionIndex int, side LaneSide, rows []Sample, inner, outer []float64) LaneMesh {
	mesh := LaneMesh{
		LaneID:       lane.ID,
		SectionIndex: sectionIndex,
		Side:         side,
		Type:         lane.Type,
		Inner:        make([]Point3, len(rows)),
		Outer:        make([]Point3, len(rows)),
	}
	for i, sm := range rows {
		mesh.Inner[i] = displace(sm, inner[i])
		mesh.Outer[i] = displace(sm, outer[i])
	}

	// Inner forward, outer backward, closed at the section start.
	mesh.Polygon = make([]Point3, 0, 2*len(rows)+1)
	mesh.Polygon = append(mesh.Polygon, mesh.Inner...)
	for i := len(mesh.Outer) - 1; i >= 0; i-- {
		mesh.Polygon = append(mesh.Polygon, mesh.Outer[i])
	}
	mesh.Polygon = append(mesh.Polygon, mesh.Inner[0])
	return mesh
}

// displace moves a reference-line sample laterally by the signed offset t
// along the cross-section normal. The normal is the plan-view left normal
// tilted by the roll angle: positive roll raises the left side.
func displace(sm Sample, t float64) Point3 {
	sinH, cosH := math.Sincos(sm.Heading)
	sinR, cosR := math.Sincos(sm.Roll)
	lateral := t * cosR
	return Point3{
		X: sm.X - sinH*lateral,
		Y: sm.Y + cosH*lateral,
		Z: sm.Z + t*sinR,
	}
}
