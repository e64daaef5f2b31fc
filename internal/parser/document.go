package parser

// Document represents a complete OpenDRIVE road description.
// This is the top-level structure returned by the parser.
//
// The document is parsed once and treated as read-only afterwards; all
// reconstruction stages derive new structures instead of mutating it.
//
// Reference: OpenDRIVE 1.8.1 §6 (file structure), §7 (roads).
type Document struct {
	Header Header
	Roads  []*Road
}

// Header holds the OpenDRIVE <header> element.
//
// Reference: OpenDRIVE 1.8.1 §6.2.
type Header struct {
	// Inertial bounding offsets of the described network, in local
	// planar units.
	North, South, East, West float64

	// GeoReference is the proj4 projection string from the
	// <geoReference> child, or "" when the document is not
	// georeferenced.
	GeoReference string

	// Offset of the local coordinate frame relative to the projected
	// frame, from the optional <offset> child. Applied before
	// projection; the heading component is recorded but not applied
	// to geometry.
	OffsetX, OffsetY, OffsetZ, OffsetHdg float64
}

// Road represents a single <road> element: its reference-line plan view,
// elevation and superelevation profiles, and lane layout.
//
// Reference: OpenDRIVE 1.8.1 §7 (reference line), §8 (elevation), §9 (lanes).
type Road struct {
	ID     string
	Name   string
	Length float64

	// PlanView holds the reference-line primitives ordered by S.
	// Validation guarantees contiguity: PlanView[i].S + PlanView[i].Length
	// == PlanView[i+1].S within tolerance, PlanView[0].S == 0, and the
	// lengths sum to Length.
	PlanView []*Primitive

	// Elevation holds the <elevationProfile> cubic segments ordered by S.
	Elevation []ProfileSegment

	// Superelevation holds the <lateralProfile> roll-angle cubic
	// segments ordered by S.
	Superelevation []ProfileSegment

	// LaneOffsets holds the <lanes><laneOffset> cubic segments shifting
	// the lane frame origin laterally off the reference line (§9.3).
	LaneOffsets []ProfileSegment

	// Sections holds the <laneSection> elements ordered by S. The last
	// section extends to Length.
	Sections []*LaneSection
}

// ProfileSegment is one cubic segment of an elevation, superelevation or
// lane-offset profile, valid from S to the start of the next segment.
//
// The polynomial is evaluated over the local parameter ds = s - S.
type ProfileSegment struct {
	S          float64
	A, B, C, D float64
}

// Eval evaluates the cubic at local offset ds.
func (p ProfileSegment) Eval(ds float64) float64 {
	return p.A + ds*(p.B+ds*(p.C+ds*p.D))
}

// Slope evaluates the first derivative of the cubic at local offset ds.
func (p ProfileSegment) Slope(ds float64) float64 {
	return p.B + ds*(2*p.C+ds*3*p.D)
}

// evalProfile locates the segment covering s in an ordered, non-overlapping
// segment list and evaluates it. Returns 0 when no segment covers s (a gap
// or a missing profile is a documented degraded mode, not an error).
func evalProfile(segments []ProfileSegment, s float64) float64 {
	i := profileIndex(segments, s)
	if i < 0 {
		return 0
	}
	return segments[i].Eval(s - segments[i].S)
}

// profileIndex returns the index of the segment covering s, or -1.
// Binary search; segments are sorted by S and non-overlapping.
func profileIndex(segments []ProfileSegment, s float64) int {
	lo, hi := 0, len(segments)-1
	idx := -1
	for lo <= hi {
		mid := (lo + hi) / 2
		if segments[mid].S <= s {
			idx = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return idx
}

// LaneSection represents one <laneSection>: the arclength range over which
// the road's lane layout is fixed.
//
// Reference: OpenDRIVE 1.8.1 §9.2.
type LaneSection struct {
	// S is the section start along the road reference line.
	S float64

	// End is the section end: the next section's start, or the road
	// length for the last section. Filled during validation.
	End float64

	// Center is the zero-width reference lane (id 0). Exactly one per
	// section.
	Center *Lane

	// Left holds lanes with positive ids ordered innermost first
	// (id 1, 2, ...). Right holds negative ids ordered innermost first
	// (id -1, -2, ...).
	Left  []*Lane
	Right []*Lane
}

// Lane represents a single <lane> element with its width polynomials.
type Lane struct {
	// ID is the signed OpenDRIVE lane id: negative right of the
	// reference line, positive left, 0 for the center lane.
	ID int

	// Type is the OpenDRIVE lane type string ("driving", "sidewalk",
	// "border", ...). Used for lane-type filtering.
	Type string

	// Widths holds the <width> segments ordered by SOffset, each valid
	// over [SOffset, next SOffset) relative to the section start.
	Widths []WidthSegment
}

// WidthSegment is one cubic width polynomial of a lane, evaluated over
// ds = s - sectionStart - SOffset.
//
// Reference: OpenDRIVE 1.8.1 §9.5.1.
type WidthSegment struct {
	SOffset    float64
	A, B, C, D float64
}

// Width evaluates the lane width at offset ds from the section start,
// selecting the covering width segment. Returns 0 when the lane has no
// width records.
func (l *Lane) Width(ds float64) float64 {
	idx := -1
	for i := range l.Widths {
		if l.Widths[i].SOffset <= ds+widthLookupEps {
			idx = i
		} else {
			break
		}
	}
	if idx < 0 {
		return 0
	}
	w := l.Widths[idx]
	d := ds - w.SOffset
	return w.A + d*(w.B+d*(w.C+d*w.D))
}

// widthLookupEps absorbs floating-point noise at width segment joins so a
// boundary sample lands in the segment that starts there.
const widthLookupEps = 1e-9

// RoadByID returns the road with the given id, or nil.
func (d *Document) RoadByID(id string) *Road {
	for _, r := range d.Roads {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// SectionAt returns the lane section covering arclength s, or nil when the
// road has no sections.
func (r *Road) SectionAt(s float64) *LaneSection {
	var found *LaneSection
	for _, sec := range r.Sections {
		if sec.S <= s {
			found = sec
		} else {
			break
		}
	}
	return found
}
