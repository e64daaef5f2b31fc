package parser

import (
	"math"
	"sort"
)

// Sample is one reconstructed point of a road reference line. X, Y, Z are
// global coordinates in the local planar frame; Heading is the reference
// line tangent direction, Roll the superelevation angle and Curvature the
// plan-view curvature at S. Exposed raw through the debug layer surface.
type Sample struct {
	S         float64
	X, Y, Z   float64
	Heading   float64
	Roll      float64
	Curvature float64
}

// minSampleStep bounds adaptive refinement so degenerate curvature values
// cannot explode the sample count.
const minSampleStep = 0.05

// BuildReferenceLine walks a road's plan-view primitives in s order and
// produces globally positioned samples spanning [0, Length].
//
// A running pose (X, Y, Θ) starts at the first primitive's declared pose.
// Each primitive is evaluated in its local frame and rotated/translated by
// the running pose; afterwards the pose advances to the primitive's
// composed end pose. Composing poses instead of trusting each primitive's
// declared pose guarantees continuity at segment joins up to floating
// point.
//
// Sampling is adaptive: the step at a point keeps the chordal (sagitta)
// deviation κ·step²/8 below tol. Straight lines take a single step. Every
// primitive boundary s value receives an exact sample, as does every value
// in breaks (lane-section and profile boundaries), so downstream lookups
// at joins are exact.
//
// A road with an empty plan view returns *ErrEmptyGeometry.
func BuildReferenceLine(road *Road, tol float64, breaks []float64) ([]Sample, error) {
	if len(road.PlanView) == 0 {
		return nil, &ErrEmptyGeometry{RoadID: road.ID}
	}
	if tol <= 0 {
		tol = 0.01
	}

	first := road.PlanView[0]
	poseX, poseY, poseHdg := first.X, first.Y, first.Hdg

	var samples []Sample
	for i, prim := range road.PlanView {
		offsets := sampleOffsets(prim, tol, breaks)
		sin, cos := math.Sincos(poseHdg)
		for j, u := range offsets {
			if i > 0 && j == 0 {
				continue // boundary sample already emitted by the previous primitive
			}
			x, y, hdg, err := prim.EvalAt(u)
			if err != nil {
				return nil, err
			}
			samples = append(samples, Sample{
				S:         prim.S + u,
				X:         poseX + x*cos - y*sin,
				Y:         poseY + x*sin + y*cos,
				Heading:   poseHdg + hdg,
				Curvature: prim.CurvatureAt(u),
			})
		}

		ex, ey, ehdg := prim.EndPose()
		poseX, poseY = poseX+ex*cos-ey*sin, poseY+ex*sin+ey*cos
		poseHdg += ehdg
	}
	return samples, nil
}

// sampleOffsets chooses the local evaluation offsets for one primitive:
// an adaptive march from 0 to Length plus exact hits on any break value
// falling inside the primitive.
func sampleOffsets(g *Primitive, tol float64, breaks []float64) []float64 {
	offsets := []float64{0}
	if g.Type == PrimitiveLine {
		offsets = append(offsets, g.Length)
	} else {
		maxStep := g.Length
		if g.Type == PrimitivePoly3 || g.Type == PrimitiveParamPoly3 {
			// Polynomial curvature passes through zero at inflections;
			// cap the step so flat spots cannot skip the bend beyond.
			maxStep = math.Max(g.Length/16, minSampleStep)
		}
		u := 0.0
		for u < g.Length {
			// A spiral leaving zero curvature still bends within the
			// step, so the density uses the worse endpoint of the
			// candidate window.
			lookahead := math.Min(u+maxStep, g.Length)
			k := math.Max(math.Abs(g.CurvatureAt(u)), math.Abs(g.CurvatureAt(lookahead)))
			step := maxStep
			if k > 1e-9 {
				step = math.Min(maxStep, math.Sqrt(8*tol/k))
			}
			step = math.Max(step, minSampleStep)
			u += step
			if u > g.Length-minSampleStep/2 {
				u = g.Length
			}
			offsets = append(offsets, u)
		}
	}

	for _, s := range breaks {
		u := s - g.S
		if u > evalEps && u < g.Length-evalEps {
			offsets = append(offsets, u)
		}
	}
	sort.Float64s(offsets)
	return dedupOffsets(offsets)
}

// dedupOffsets removes offsets closer than evalEps so the same boundary is
// not emitted twice.
func dedupOffsets(offsets []float64) []float64 {
	out := offsets[:1]
	for _, u := range offsets[1:] {
		if u-out[len(out)-1] > evalEps {
			out = append(out, u)
		}
	}
	return out
}

// sectionBreaks collects the arclength values that must appear exactly in
// a road's sample set: lane-section boundaries and elevation,
// superelevation and lane-offset segment starts.
func sectionBreaks(road *Road) []float64 {
	var breaks []float64
	for _, sec := range road.Sections {
		breaks = append(breaks, sec.S, sec.End)
	}
	for _, profile := range [][]ProfileSegment{road.Elevation, road.Superelevation, road.LaneOffsets} {
		for _, seg := range profile {
			breaks = append(breaks, seg.S)
		}
	}
	sort.Float64s(breaks)
	return breaks
}
