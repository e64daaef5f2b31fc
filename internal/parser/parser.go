package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Decode reads an OpenDRIVE XML document and returns the typed document
// model of all supported elements. Numeric attributes are parsed as IEEE-754
// doubles. Structural problems (missing required attributes, non-numeric
// values, no center lane, missing pRange) return *ErrMalformedDocument and
// abort the whole load; per-road geometry problems are deferred to
// reconstruction, which isolates them as warnings.
func Decode(r io.Reader) (*Document, error) {
	var raw xmlOpenDrive
	if err := xml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, &ErrMalformedDocument{Reason: err.Error()}
	}
	return buildDocument(&raw)
}

// buildDocument converts the raw XML tree into the validated document model.
func buildDocument(raw *xmlOpenDrive) (*Document, error) {
	doc := &Document{
		Header: Header{
			North:        raw.Header.North,
			South:        raw.Header.South,
			East:         raw.Header.East,
			West:         raw.Header.West,
			GeoReference: strings.TrimSpace(raw.Header.GeoReference),
		},
	}
	if off := raw.Header.Offset; off != nil {
		doc.Header.OffsetX = off.X
		doc.Header.OffsetY = off.Y
		doc.Header.OffsetZ = off.Z
		doc.Header.OffsetHdg = off.Hdg
	}

	doc.Roads = make([]*Road, 0, len(raw.Roads))
	for i := range raw.Roads {
		road, err := buildRoad(&raw.Roads[i])
		if err != nil {
			return nil, err
		}
		doc.Roads = append(doc.Roads, road)
	}

	if err := validateDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func buildRoad(raw *xmlRoad) (*Road, error) {
	if raw.ID == nil {
		return nil, &ErrMalformedDocument{Element: "road", Reason: "missing id attribute"}
	}
	elem := fmt.Sprintf("road %s", *raw.ID)
	if raw.Length == nil {
		return nil, &ErrMalformedDocument{Element: elem, Reason: "missing length attribute"}
	}
	if *raw.Length < 0 {
		return nil, &ErrMalformedDocument{Element: elem, Reason: fmt.Sprintf("negative length %g", *raw.Length)}
	}

	road := &Road{
		ID:     *raw.ID,
		Name:   raw.Name,
		Length: *raw.Length,
	}

	for i := range raw.PlanView {
		prim, err := buildPrimitive(&raw.PlanView[i], elem)
		if err != nil {
			return nil, err
		}
		road.PlanView = append(road.PlanView, prim)
	}

	var err error
	if road.Elevation, err = buildProfile(raw.Elevations, elem+" elevation"); err != nil {
		return nil, err
	}
	if road.Superelevation, err = buildProfile(raw.Superelevation, elem+" superelevation"); err != nil {
		return nil, err
	}
	if road.LaneOffsets, err = buildProfile(raw.LaneOffsets, elem+" laneOffset"); err != nil {
		return nil, err
	}

	for i := range raw.LaneSections {
		section, err := buildSection(&raw.LaneSections[i], elem)
		if err != nil {
			return nil, err
		}
		road.Sections = append(road.Sections, section)
	}

	return road, nil
}

func buildPrimitive(raw *xmlGeometry, roadElem string) (*Primitive, error) {
	elem := roadElem + " geometry"
	for name, v := range map[string]*float64{
		"s": raw.S, "x": raw.X, "y": raw.Y, "hdg": raw.Hdg, "length": raw.Length,
	} {
		if v == nil {
			return nil, &ErrMalformedDocument{Element: elem, Reason: "missing " + name + " attribute"}
		}
	}
	if *raw.Length <= 0 {
		return nil, &ErrMalformedDocument{
			Element: elem,
			Reason:  fmt.Sprintf("non-positive length %g at s=%g", *raw.Length, *raw.S),
		}
	}

	prim := &Primitive{
		S:      *raw.S,
		X:      *raw.X,
		Y:      *raw.Y,
		Hdg:    *raw.Hdg,
		Length: *raw.Length,
	}

	variants := 0
	if raw.Line != nil {
		prim.Type = PrimitiveLine
		variants++
	}
	if raw.Arc != nil {
		prim.Type = PrimitiveArc
		variants++
		if raw.Arc.Curvature == nil {
			return nil, &ErrMalformedDocument{Element: elem, Reason: "arc missing curvature attribute"}
		}
		prim.Curvature = *raw.Arc.Curvature
	}
	if raw.Spiral != nil {
		prim.Type = PrimitiveSpiral
		variants++
		if raw.Spiral.CurvStart == nil || raw.Spiral.CurvEnd == nil {
			return nil, &ErrMalformedDocument{Element: elem, Reason: "spiral missing curvStart/curvEnd attribute"}
		}
		prim.CurvStart = *raw.Spiral.CurvStart
		prim.CurvEnd = *raw.Spiral.CurvEnd
	}
	if raw.Poly3 != nil {
		prim.Type = PrimitivePoly3
		variants++
		if raw.Poly3.A == nil || raw.Poly3.B == nil || raw.Poly3.C == nil || raw.Poly3.D == nil {
			return nil, &ErrMalformedDocument{Element: elem, Reason: "poly3 missing coefficient attribute"}
		}
		prim.A, prim.B, prim.C, prim.D = *raw.Poly3.A, *raw.Poly3.B, *raw.Poly3.C, *raw.Poly3.D
	}
	if raw.ParamPoly3 != nil {
		prim.Type = PrimitiveParamPoly3
		variants++
		pp := raw.ParamPoly3
		for _, v := range []*float64{pp.AU, pp.BU, pp.CU, pp.DU, pp.AV, pp.BV, pp.CV, pp.DV} {
			if v == nil {
				return nil, &ErrMalformedDocument{Element: elem, Reason: "paramPoly3 missing coefficient attribute"}
			}
		}
		prim.AU, prim.BU, prim.CU, prim.DU = *pp.AU, *pp.BU, *pp.CU, *pp.DU
		prim.AV, prim.BV, prim.CV, prim.DV = *pp.AV, *pp.BV, *pp.CV, *pp.DV
		// pRange is a declared per-primitive mode; a document that omits
		// it is rejected rather than guessed at.
		if pp.PRange == nil {
			return nil, &ErrMalformedDocument{Element: elem, Reason: "paramPoly3 missing pRange attribute"}
		}
		switch *pp.PRange {
		case "arcLength":
			prim.PRangeArcLength = true
		case "normalized":
			prim.PRangeArcLength = false
		default:
			return nil, &ErrMalformedDocument{
				Element: elem,
				Reason:  fmt.Sprintf("unknown pRange %q, expected arcLength or normalized", *pp.PRange),
			}
		}
	}

	if variants != 1 {
		return nil, &ErrMalformedDocument{
			Element: elem,
			Reason:  fmt.Sprintf("expected exactly one curve element at s=%g, found %d", prim.S, variants),
		}
	}
	return prim, nil
}

func buildProfile(raws []xmlPoly, elem string) ([]ProfileSegment, error) {
	segments := make([]ProfileSegment, 0, len(raws))
	for i := range raws {
		raw := &raws[i]
		s := raw.S
		if s == nil {
			s = raw.SOffset
		}
		if s == nil {
			return nil, &ErrMalformedDocument{Element: elem, Reason: "missing s attribute"}
		}
		if raw.A == nil || raw.B == nil || raw.C == nil || raw.D == nil {
			return nil, &ErrMalformedDocument{Element: elem, Reason: fmt.Sprintf("missing coefficient attribute at s=%g", *s)}
		}
		segments = append(segments, ProfileSegment{S: *s, A: *raw.A, B: *raw.B, C: *raw.C, D: *raw.D})
	}
	sort.Slice(segments, func(i, j int) bool { return segments[i].S < segments[j].S })
	return segments, nil
}

func buildSection(raw *xmlSection, roadElem string) (*LaneSection, error) {
	elem := roadElem + " laneSection"
	if raw.S == nil {
		return nil, &ErrMalformedDocument{Element: elem, Reason: "missing s attribute"}
	}
	section := &LaneSection{S: *raw.S}

	build := func(raws []xmlLane) ([]*Lane, error) {
		lanes := make([]*Lane, 0, len(raws))
		for i := range raws {
			lane, err := buildLane(&raws[i], elem)
			if err != nil {
				return nil, err
			}
			lanes = append(lanes, lane)
		}
		return lanes, nil
	}

	left, err := build(raw.Left)
	if err != nil {
		return nil, err
	}
	right, err := build(raw.Right)
	if err != nil {
		return nil, err
	}
	center, err := build(raw.Center)
	if err != nil {
		return nil, err
	}

	// Exactly one center lane per section, id 0.
	if len(center) != 1 || center[0].ID != 0 {
		return nil, &ErrMalformedDocument{
			Element: elem,
			Reason:  fmt.Sprintf("expected exactly one center lane with id 0 at s=%g", section.S),
		}
	}
	section.Center = center[0]

	// Order both sides innermost first: left ascending (1, 2, ...),
	// right descending (-1, -2, ...).
	sort.Slice(left, func(i, j int) bool { return left[i].ID < left[j].ID })
	sort.Slice(right, func(i, j int) bool { return right[i].ID > right[j].ID })
	for _, l := range left {
		if l.ID <= 0 {
			return nil, &ErrMalformedDocument{Element: elem, Reason: fmt.Sprintf("left lane with non-positive id %d", l.ID)}
		}
	}
	for _, l := range right {
		if l.ID >= 0 {
			return nil, &ErrMalformedDocument{Element: elem, Reason: fmt.Sprintf("right lane with non-negative id %d", l.ID)}
		}
	}
	section.Left = left
	section.Right = right
	return section, nil
}

func buildLane(raw *xmlLane, elem string) (*Lane, error) {
	if raw.ID == nil {
		return nil, &ErrMalformedDocument{Element: elem, Reason: "lane missing id attribute"}
	}
	lane := &Lane{ID: *raw.ID, Type: raw.Type}
	for i := range raw.Widths {
		w := &raw.Widths[i]
		if w.SOffset == nil {
			return nil, &ErrMalformedDocument{Element: elem, Reason: fmt.Sprintf("lane %d width missing sOffset attribute", lane.ID)}
		}
		if w.A == nil || w.B == nil || w.C == nil || w.D == nil {
			return nil, &ErrMalformedDocument{Element: elem, Reason: fmt.Sprintf("lane %d width missing coefficient attribute", lane.ID)}
		}
		lane.Widths = append(lane.Widths, WidthSegment{SOffset: *w.SOffset, A: *w.A, B: *w.B, C: *w.C, D: *w.D})
	}
	sort.Slice(lane.Widths, func(i, j int) bool { return lane.Widths[i].SOffset < lane.Widths[j].SOffset })
	return lane, nil
}
