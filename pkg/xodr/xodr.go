package xodr

import (
	"fmt"
	"io"
	"os"

	"github.com/beetlebugorg/xodr/internal/parser"
)

// Parser parses OpenDRIVE road network documents.
//
// Create a parser with NewParser and use Parse or ParseWithOptions to
// reconstruct networks.
type Parser interface {
	// Parse reads an OpenDRIVE file and returns the reconstructed
	// network.
	//
	// Returns an error if the file cannot be read or the document is
	// structurally malformed. Per-road geometry problems do not fail
	// the parse; they are collected in Network.Warnings.
	Parse(filename string) (*Network, error)

	// ParseWithOptions parses an OpenDRIVE file with custom options.
	//
	// Use ParseOptions to control sampling tolerance, lane filtering,
	// georeferencing and parallel reconstruction.
	ParseWithOptions(filename string, opts ParseOptions) (*Network, error)

	// ParseReader parses an OpenDRIVE document from a reader.
	ParseReader(r io.Reader, opts ParseOptions) (*Network, error)
}

// NewParser creates a new OpenDRIVE parser with default settings.
//
// Example:
//
//	parser := xodr.NewParser()
//	network, err := parser.Parse("town.xodr")
func NewParser() Parser {
	return &parserWrapper{}
}

type parserWrapper struct{}

func (p *parserWrapper) Parse(filename string) (*Network, error) {
	return p.ParseWithOptions(filename, DefaultParseOptions())
}

func (p *parserWrapper) ParseWithOptions(filename string, opts ParseOptions) (*Network, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return p.ParseReader(f, opts)
}

func (p *parserWrapper) ParseReader(r io.Reader, opts ParseOptions) (*Network, error) {
	doc, err := parser.Decode(r)
	if err != nil {
		return nil, err
	}
	return reconstruct(doc, opts)
}

// Header holds the document header: inertial bounding offsets, the
// optional projection string and the optional local-frame offset.
type Header struct {
	North, South, East, West float64

	// GeoReference is the raw proj4 projection string, or "" when the
	// document declares none.
	GeoReference string

	// OffsetX/Y/Z shift the local frame relative to the projected
	// frame and are applied before projection. OffsetHdg is recorded
	// but not applied to geometry.
	OffsetX, OffsetY, OffsetZ, OffsetHdg float64
}

// Warning is a non-fatal reconstruction problem keyed by road id.
// LaneID is non-zero only for lane-scoped warnings.
type Warning struct {
	RoadID string
	LaneID int
	Err    error
}

func (w Warning) String() string {
	return w.Err.Error()
}

// Network represents a reconstructed OpenDRIVE road network.
//
// A network contains per-road renderable geometry (reference lines, lane
// meshes, debug frames), the document header, the structured warning list
// and, when the header declares a valid projection, the geographic
// transform.
//
// All fields are private to maintain encapsulation.
type Network struct {
	header   Header
	roads    []*RoadGeometry
	byID     map[string]*RoadGeometry
	warnings []Warning

	geo          *GeoTransform // nil when ungeoreferenced
	spatialIndex *spatialIndex
	bounds       Bounds
}

// Roads returns the reconstructed geometry of all roads, in document
// order. Roads that failed reconstruction are absent; see Warnings.
func (n *Network) Roads() []*RoadGeometry {
	return n.roads
}

// RoadCount returns the number of successfully reconstructed roads.
func (n *Network) RoadCount() int {
	return len(n.roads)
}

// Road returns the reconstructed geometry of the road with the given id,
// or nil when the road does not exist or failed reconstruction.
func (n *Network) Road(id string) *RoadGeometry {
	return n.byID[id]
}

// Header returns the document header.
func (n *Network) Header() Header {
	return n.header
}

// Warnings returns the structured list of non-fatal reconstruction
// problems, keyed by road id. An empty list means every road and lane
// reconstructed cleanly.
func (n *Network) Warnings() []Warning {
	return n.warnings
}

// Georeferenced reports whether the network carries a valid geographic
// transform. When false the coordinates are local-planar and the caller
// may choose an arbitrary placement; this is a documented degraded mode,
// not an error.
func (n *Network) Georeferenced() bool {
	return n.geo != nil
}

// GeoTransform returns the geographic transform derived from the header
// projection string, or nil when the network is ungeoreferenced.
func (n *Network) GeoTransform() *GeoTransform {
	return n.geo
}

// Bounds returns the plan-view bounding box of all reconstructed
// geometry, in the local planar frame.
func (n *Network) Bounds() Bounds {
	return n.bounds
}
