package xodr

import (
	"fmt"

	"github.com/ctessum/geom/proj"
)

const wgs84 = "+proj=longlat +datum=WGS84 +no_defs"

// GeoTransform converts local planar coordinates to geographic WGS84
// coordinates using the projection declared in the document header.
type GeoTransform struct {
	proj4   string
	offsetX float64
	offsetY float64
	offsetZ float64
	forward proj.Transformer
}

// newGeoTransform parses the header projection string and prepares the
// forward transform to WGS84. An unparseable projection is reported as
// an error; the caller degrades to local coordinates.
func newGeoTransform(header Header) (*GeoTransform, error) {
	src, err := proj.Parse(header.GeoReference)
	if err != nil {
		return nil, fmt.Errorf("failed to parse projection %q: %w", header.GeoReference, err)
	}
	dst, err := proj.Parse(wgs84)
	if err != nil {
		return nil, fmt.Errorf("failed to parse WGS84 projection: %w", err)
	}
	forward, err := src.NewTransform(dst)
	if err != nil {
		return nil, fmt.Errorf("failed to build transform from %q: %w", header.GeoReference, err)
	}
	return &GeoTransform{
		proj4:   header.GeoReference,
		offsetX: header.OffsetX,
		offsetY: header.OffsetY,
		offsetZ: header.OffsetZ,
		forward: forward,
	}, nil
}

// Proj4 returns the source projection string from the document header.
func (g *GeoTransform) Proj4() string {
	return g.proj4
}

// ToGeographic converts a local planar coordinate to WGS84
// longitude/latitude in degrees. The header offset is applied before
// projecting.
func (g *GeoTransform) ToGeographic(x, y float64) (lon, lat float64, err error) {
	lon, lat, err = g.forward(x+g.offsetX, y+g.offsetY)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to project (%g, %g): %w", x, y, err)
	}
	return lon, lat, nil
}

// Elevation converts a local elevation to the projected frame by
// applying the header z offset.
func (g *GeoTransform) Elevation(z float64) float64 {
	return z + g.offsetZ
}
