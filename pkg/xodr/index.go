package xodr

import (
	"github.com/dhconnelly/rtreego"
)

// spatialIndex provides O(log n) plan-view queries using an R-tree.
type spatialIndex struct {
	rtree *rtreego.Rtree
	roads []*RoadGeometry
}

// indexedRoad wraps a road for R-tree storage.
type indexedRoad struct {
	road *RoadGeometry
}

// Bounds implements rtreego.Spatial interface.
func (r *indexedRoad) Bounds() rtreego.Rect {
	point := rtreego.Point{r.road.Extent.MinX, r.road.Extent.MinY}

	// R-tree requires non-zero dimensions; degenerate extents get a
	// small epsilon.
	const epsilon = 1e-6
	width := r.road.Extent.MaxX - r.road.Extent.MinX
	height := r.road.Extent.MaxY - r.road.Extent.MinY
	if width < epsilon {
		width = epsilon
	}
	if height < epsilon {
		height = epsilon
	}

	rect, _ := rtreego.NewRect(point, []float64{width, height})
	return rect
}

func newSpatialIndex(roads []*RoadGeometry) *spatialIndex {
	idx := &spatialIndex{roads: roads}
	if len(roads) == 0 {
		return idx
	}
	rtree := rtreego.NewTree(2, 25, 50)
	for _, road := range roads {
		rtree.Insert(&indexedRoad{road: road})
	}
	idx.rtree = rtree
	return idx
}

// RoadsInBounds returns the roads whose plan-view extent intersects the
// given bounding box, in document order.
//
// This is the primary method for viewport-based rendering: only roads
// that could be visible in the viewport are returned.
func (n *Network) RoadsInBounds(bounds Bounds) []*RoadGeometry {
	if n.spatialIndex == nil || n.spatialIndex.rtree == nil {
		// No spatial index, fallback to linear search
		return n.roadsInBoundsLinear(bounds)
	}

	point := rtreego.Point{bounds.MinX, bounds.MinY}
	lengths := []float64{
		bounds.MaxX - bounds.MinX,
		bounds.MaxY - bounds.MinY,
	}
	queryRect, err := rtreego.NewRect(point, lengths)
	if err != nil {
		return n.roadsInBoundsLinear(bounds)
	}

	spatials := n.spatialIndex.rtree.SearchIntersect(queryRect)

	hits := make(map[*RoadGeometry]bool, len(spatials))
	for _, spatial := range spatials {
		hits[spatial.(*indexedRoad).road] = true
	}

	// Preserve document order for deterministic output.
	result := make([]*RoadGeometry, 0, len(hits))
	for _, road := range n.roads {
		if hits[road] {
			result = append(result, road)
		}
	}
	return result
}

func (n *Network) roadsInBoundsLinear(bounds Bounds) []*RoadGeometry {
	var result []*RoadGeometry
	for _, road := range n.roads {
		if road.Extent.Intersects(bounds) {
			result = append(result, road)
		}
	}
	return result
}
