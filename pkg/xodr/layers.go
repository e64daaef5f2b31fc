package xodr

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Layer names returned by Network.Layers.
const (
	LayerReferenceLines = "referenceLines"
	LayerLaneMeshes     = "laneMeshes"
	LayerFrames         = "frames"
)

// frameAxisLength is the drawn length of the per-primitive frame axes.
const frameAxisLength = 0.5

// Layer groups renderable features of one kind across the network.
type Layer struct {
	Name     string
	Features []LayerFeature
}

// LayerFeature is a tagged polyline or polygon ring in a layer.
//
// Lane is "referenceLine" for reference-line features, the lane id for
// lane meshes and the frame axis name for frame features. Closed marks
// polygon rings.
type LayerFeature struct {
	RoadID string
	Lane   string
	Side   string
	Points []Point
	Closed bool
}

// Layers groups the network into renderable layers: one polyline per
// reference line, one polygon ring per lane mesh and two short axis
// polylines per plan-view primitive start pose.
func (n *Network) Layers() []Layer {
	refLayer := Layer{Name: LayerReferenceLines}
	laneLayer := Layer{Name: LayerLaneMeshes}
	frameLayer := Layer{Name: LayerFrames}

	for _, road := range n.roads {
		refLayer.Features = append(refLayer.Features, LayerFeature{
			RoadID: road.ID,
			Lane:   "referenceLine",
			Points: samplePoints(road.ReferenceLine),
		})
		for _, lane := range road.Lanes {
			laneLayer.Features = append(laneLayer.Features, LayerFeature{
				RoadID: road.ID,
				Lane:   fmt.Sprintf("%d", lane.LaneID),
				Side:   lane.Side.String(),
				Points: lane.Polygon,
				Closed: true,
			})
		}
		for _, frame := range road.Frames {
			frameLayer.Features = append(frameLayer.Features, frameAxes(road.ID, frame)...)
		}
	}

	return []Layer{refLayer, laneLayer, frameLayer}
}

// frameAxes builds unit X and Y axis polylines at a primitive start pose.
func frameAxes(roadID string, frame Frame) []LayerFeature {
	sinH, cosH := math.Sincos(frame.Hdg)
	origin := Point{X: frame.X, Y: frame.Y}
	return []LayerFeature{
		{
			RoadID: roadID,
			Lane:   "frameX",
			Points: []Point{origin, {
				X: frame.X + cosH*frameAxisLength,
				Y: frame.Y + sinH*frameAxisLength,
			}},
		},
		{
			RoadID: roadID,
			Lane:   "frameY",
			Points: []Point{origin, {
				X: frame.X - sinH*frameAxisLength,
				Y: frame.Y + cosH*frameAxisLength,
			}},
		},
	}
}

func samplePoints(samples []Sample) []Point {
	points := make([]Point, len(samples))
	for i, sm := range samples {
		points[i] = Point{X: sm.X, Y: sm.Y, Z: sm.Z}
	}
	return points
}

// GeoJSON exports the network as a GeoJSON feature collection.
//
// Reference lines become LineStrings and lane meshes become Polygons,
// each carrying roadId, laneId and side properties. When the network is
// georeferenced coordinates are WGS84 longitude/latitude; otherwise they
// stay in the local planar frame and the collection is tagged
// `"frame": "local"`.
func (n *Network) GeoJSON() ([]byte, error) {
	fc := geojson.NewFeatureCollection()

	frame := "wgs84"
	if n.geo == nil {
		frame = "local"
	}
	fc.ExtraMembers = geojson.Properties{"frame": frame}

	for _, road := range n.roads {
		line, err := n.lineString(samplePoints(road.ReferenceLine))
		if err != nil {
			return nil, err
		}
		feature := geojson.NewFeature(line)
		feature.Properties["roadId"] = road.ID
		feature.Properties["laneId"] = "referenceLine"
		fc.Append(feature)

		for _, lane := range road.Lanes {
			ring, err := n.lineString(lane.Polygon)
			if err != nil {
				return nil, err
			}
			feature := geojson.NewFeature(orb.Polygon{orb.Ring(ring)})
			feature.Properties["roadId"] = road.ID
			feature.Properties["laneId"] = fmt.Sprintf("%d", lane.LaneID)
			feature.Properties["side"] = lane.Side.String()
			fc.Append(feature)
		}
	}

	return fc.MarshalJSON()
}

// lineString converts points to an orb line string, remapping to
// geographic coordinates when a transform is available.
func (n *Network) lineString(points []Point) (orb.LineString, error) {
	line := make(orb.LineString, len(points))
	for i, p := range points {
		x, y := p.X, p.Y
		if n.geo != nil {
			lon, lat, err := n.geo.ToGeographic(p.X, p.Y)
			if err != nil {
				return nil, err
			}
			x, y = lon, lat
		}
		line[i] = orb.Point{x, y}
	}
	return line, nil
}
