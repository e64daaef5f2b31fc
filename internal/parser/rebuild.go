package parser

// BuildOptions configures per-road geometry reconstruction. All
// configuration is passed explicitly so concurrent per-road builds are
// deterministic and reproducible.
type BuildOptions struct {
	// Tolerance is the chordal (sagitta) deviation bound ε for adaptive
	// reference-line sampling, in map units. 0 selects the default 0.01.
	Tolerance float64

	// IgnoredLaneTypes suppresses lane meshes for the given OpenDRIVE
	// lane types ("border", "none", ...). Ignored lanes still occupy
	// lateral space so outer lanes stay correctly positioned.
	IgnoredLaneTypes map[string]bool
}

// Frame is the declared start pose of one plan-view primitive, exposed as
// a debug layer for inspecting how a document encodes its geometry.
type Frame struct {
	SegmentIndex int
	Type         PrimitiveType
	S            float64
	X, Y, Hdg    float64
	Length       float64
}

// RoadGeometry is the reconstructed renderable geometry of one road: its
// 3D reference-line samples, per-lane boundary meshes and per-primitive
// debug frames. Derived entirely from the document model; owning it ties
// no lifetime to the document.
type RoadGeometry struct {
	RoadID string
	Name   string

	// ReferenceLine holds the 3D samples spanning [0, Length] in s
	// order, including exact samples at every primitive, lane-section
	// and profile boundary.
	ReferenceLine []Sample

	Lanes  []LaneMesh
	Frames []Frame
}

// BuildRoadGeometry reconstructs one road: reference line, elevation and
// superelevation, lane meshes and debug frames. Pure over its inputs,
// safe to call concurrently for different roads.
//
// The error return is road-scoped (*ErrEmptyGeometry); callers isolate it
// as a warning rather than aborting sibling roads. Lane-scoped problems
// come back in the warning list with the geometry of the healthy lanes.
func BuildRoadGeometry(road *Road, opts BuildOptions) (*RoadGeometry, []Warning, error) {
	samples, err := BuildReferenceLine(road, opts.Tolerance, sectionBreaks(road))
	if err != nil {
		return nil, nil, err
	}
	applyProfiles(road, samples)

	lanes, warnings := buildLanes(road, samples, opts.IgnoredLaneTypes)

	frames := make([]Frame, len(road.PlanView))
	for i, prim := range road.PlanView {
		frames[i] = Frame{
			SegmentIndex: i,
			Type:         prim.Type,
			S:            prim.S,
			X:            prim.X,
			Y:            prim.Y,
			Hdg:          prim.Hdg,
			Length:       prim.Length,
		}
	}

	return &RoadGeometry{
		RoadID:        road.ID,
		Name:          road.Name,
		ReferenceLine: samples,
		Lanes:         lanes,
		Frames:        frames,
	}, warnings, nil
}
