package xodr

import (
	"math"

	"github.com/beetlebugorg/xodr/internal/parser"
)

// Point is a 3D point. In the local planar frame X and Y are map units;
// after geographic remapping X is longitude and Y latitude in degrees,
// with Z unchanged.
type Point struct {
	X, Y, Z float64
}

// Sample is one reconstructed reference-line point with its diagnostic
// quantities: arclength, heading, superelevation roll and plan-view
// curvature. The per-road sample table is the debug-layer surface.
type Sample struct {
	S         float64
	X, Y, Z   float64
	Heading   float64
	Roll      float64
	Curvature float64
}

// LaneSide tells which side of the reference line a lane lies on.
type LaneSide int

const (
	LaneSideLeft LaneSide = iota
	LaneSideRight
)

// String returns "left" or "right".
func (s LaneSide) String() string {
	if s == LaneSideLeft {
		return "left"
	}
	return "right"
}

// LaneMesh is the drawable geometry of one lane over one lane section.
type LaneMesh struct {
	// LaneID is the signed OpenDRIVE lane id (negative right, positive
	// left of the reference line).
	LaneID       int
	SectionIndex int
	Side         LaneSide

	// Type is the OpenDRIVE lane type string ("driving", "sidewalk", ...).
	Type string

	// Inner and Outer are the bounding boundary polylines in increasing
	// s order; Polygon is the closed ring stitched from them.
	Inner, Outer []Point
	Polygon      []Point
}

// Frame is the declared start pose of one plan-view primitive, exposed
// for debug layers that visualize how the document encodes its geometry.
type Frame struct {
	SegmentIndex int
	Type         string
	S            float64
	X, Y, Hdg    float64
	Length       float64
}

// RoadGeometry is the reconstructed renderable geometry of one road.
type RoadGeometry struct {
	// ID is the OpenDRIVE road id.
	ID   string
	Name string

	// ReferenceLine holds the 3D samples spanning the road's full
	// arclength, with exact samples at every primitive, lane-section
	// and profile boundary.
	ReferenceLine []Sample

	Lanes  []LaneMesh
	Frames []Frame

	// Extent is the plan-view bounding box of the road's geometry in
	// the local planar frame.
	Extent Bounds
}

// Bounds is an axis-aligned bounding box in the local planar frame.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Intersects reports whether two bounding boxes overlap.
func (b Bounds) Intersects(other Bounds) bool {
	return b.MinX <= other.MaxX && b.MaxX >= other.MinX &&
		b.MinY <= other.MaxY && b.MaxY >= other.MinY
}

// expand grows the bounds to include the given point.
func (b *Bounds) expand(x, y float64) {
	b.MinX = math.Min(b.MinX, x)
	b.MinY = math.Min(b.MinY, y)
	b.MaxX = math.Max(b.MaxX, x)
	b.MaxY = math.Max(b.MaxY, y)
}

// union returns the smallest bounds covering both boxes.
func (b Bounds) union(other Bounds) Bounds {
	if other.MinX > other.MaxX {
		return b
	}
	b.expand(other.MinX, other.MinY)
	b.expand(other.MaxX, other.MaxY)
	return b
}

func emptyBounds() Bounds {
	return Bounds{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
}

// convertRoad converts an internal road geometry to the public API type
// and computes its plan-view extent.
func convertRoad(in *parser.RoadGeometry) *RoadGeometry {
	out := &RoadGeometry{
		ID:            in.RoadID,
		Name:          in.Name,
		ReferenceLine: make([]Sample, len(in.ReferenceLine)),
		Lanes:         make([]LaneMesh, len(in.Lanes)),
		Frames:        make([]Frame, len(in.Frames)),
		Extent:        emptyBounds(),
	}

	for i, sm := range in.ReferenceLine {
		out.ReferenceLine[i] = Sample{
			S: sm.S, X: sm.X, Y: sm.Y, Z: sm.Z,
			Heading: sm.Heading, Roll: sm.Roll, Curvature: sm.Curvature,
		}
		out.Extent.expand(sm.X, sm.Y)
	}

	for i, lane := range in.Lanes {
		side := LaneSideLeft
		if lane.Side == parser.SideRight {
			side = LaneSideRight
		}
		mesh := LaneMesh{
			LaneID:       lane.LaneID,
			SectionIndex: lane.SectionIndex,
			Side:         side,
			Type:         lane.Type,
			Inner:        convertPoints(lane.Inner),
			Outer:        convertPoints(lane.Outer),
			Polygon:      convertPoints(lane.Polygon),
		}
		for _, p := range mesh.Outer {
			out.Extent.expand(p.X, p.Y)
		}
		out.Lanes[i] = mesh
	}

	for i, f := range in.Frames {
		out.Frames[i] = Frame{
			SegmentIndex: f.SegmentIndex,
			Type:         f.Type.String(),
			S:            f.S,
			X:            f.X, Y: f.Y, Hdg: f.Hdg,
			Length: f.Length,
		}
	}
	return out
}

func convertPoints(in []parser.Point3) []Point {
	out := make([]Point, len(in))
	for i, p := range in {
		out[i] = Point{X: p.X, Y: p.Y, Z: p.Z}
	}
	return out
}
