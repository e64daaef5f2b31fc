package parser

import (
	"encoding/xml"
)

// Raw decoding structures for the OpenDRIVE XML tree. Required numeric
// attributes are pointers so a missing attribute is distinguishable from
// an explicit zero; buildDocument turns absences into *ErrMalformedDocument.
//
// Unsupported elements (junction, signal, object, railroad) have no fields
// here and are ignored by the decoder, as the format requires.

type xmlOpenDrive struct {
	XMLName xml.Name  `xml:"OpenDRIVE"`
	Header  xmlHeader `xml:"header"`
	Roads   []xmlRoad `xml:"road"`
}

type xmlHeader struct {
	North        float64    `xml:"north,attr"`
	South        float64    `xml:"south,attr"`
	East         float64    `xml:"east,attr"`
	West         float64    `xml:"west,attr"`
	GeoReference string     `xml:"geoReference"`
	Offset       *xmlOffset `xml:"offset"`
}

type xmlOffset struct {
	X   float64 `xml:"x,attr"`
	Y   float64 `xml:"y,attr"`
	Z   float64 `xml:"z,attr"`
	Hdg float64 `xml:"hdg,attr"`
}

type xmlRoad struct {
	ID             *string       `xml:"id,attr"`
	Name           string        `xml:"name,attr"`
	Length         *float64      `xml:"length,attr"`
	PlanView       []xmlGeometry `xml:"planView>geometry"`
	Elevations     []xmlPoly     `xml:"elevationProfile>elevation"`
	Superelevation []xmlPoly     `xml:"lateralProfile>superelevation"`
	LaneOffsets    []xmlPoly     `xml:"lanes>laneOffset"`
	LaneSections   []xmlSection  `xml:"lanes>laneSection"`
}

type xmlGeometry struct {
	S      *float64 `xml:"s,attr"`
	X      *float64 `xml:"x,attr"`
	Y      *float64 `xml:"y,attr"`
	Hdg    *float64 `xml:"hdg,attr"`
	Length *float64 `xml:"length,attr"`

	// Exactly one of the curve children must be present.
	Line       *struct{}      `xml:"line"`
	Arc        *xmlArc        `xml:"arc"`
	Spiral     *xmlSpiral     `xml:"spiral"`
	Poly3      *xmlPoly3      `xml:"poly3"`
	ParamPoly3 *xmlParamPoly3 `xml:"paramPoly3"`
}

type xmlArc struct {
	Curvature *float64 `xml:"curvature,attr"`
}

type xmlSpiral struct {
	CurvStart *float64 `xml:"curvStart,attr"`
	CurvEnd   *float64 `xml:"curvEnd,attr"`
}

type xmlPoly3 struct {
	A *float64 `xml:"a,attr"`
	B *float64 `xml:"b,attr"`
	C *float64 `xml:"c,attr"`
	D *float64 `xml:"d,attr"`
}

type xmlParamPoly3 struct {
	AU     *float64 `xml:"aU,attr"`
	BU     *float64 `xml:"bU,attr"`
	CU     *float64 `xml:"cU,attr"`
	DU     *float64 `xml:"dU,attr"`
	AV     *float64 `xml:"aV,attr"`
	BV     *float64 `xml:"bV,attr"`
	CV     *float64 `xml:"cV,attr"`
	DV     *float64 `xml:"dV,attr"`
	PRange *string  `xml:"pRange,attr"`
}

// xmlPoly covers the profile cubics (elevation, superelevation,
// laneOffset). Some producers write sOffset instead of s; both are
// accepted, s taking precedence.
type xmlPoly struct {
	S       *float64 `xml:"s,attr"`
	SOffset *float64 `xml:"sOffset,attr"`
	A       *float64 `xml:"a,attr"`
	B       *float64 `xml:"b,attr"`
	C       *float64 `xml:"c,attr"`
	D       *float64 `xml:"d,attr"`
}

type xmlSection struct {
	S      *float64  `xml:"s,attr"`
	Left   []xmlLane `xml:"left>lane"`
	Center []xmlLane `xml:"center>lane"`
	Right  []xmlLane `xml:"right>lane"`
}

type xmlLane struct {
	ID     *int       `xml:"id,attr"`
	Type   string     `xml:"type,attr"`
	Widths []xmlWidth `xml:"width"`
}

type xmlWidth struct {
	SOffset *float64 `xml:"sOffset,attr"`
	A       *float64 `xml:"a,attr"`
	B       *float64 `xml:"b,attr"`
	C       *float64 `xml:"c,attr"`
	D       *float64 `xml:"d,attr"`
}
