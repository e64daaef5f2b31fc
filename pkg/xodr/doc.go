// Package xodr provides a parser for ASAM OpenDRIVE road network
// descriptions.
//
// This package is designed for road rendering applications. It rebuilds
// renderable geometry from the analytic road description: sampled 3D
// reference lines, per-lane boundary polylines and polygons, and debug
// frames at plan-view segment starts. It provides fast spatial queries
// and a clean API optimized for viewport-based rendering.
//
// # Basic Usage
//
//	parser := xodr.NewParser()
//	network, err := parser.Parse("town.xodr")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Network: %d roads cover %+v\n", network.RoadCount(), network.Bounds())
//
// # Rendering Workflow
//
// The typical rendering workflow uses spatial queries to efficiently
// render only visible roads:
//
//	// 1. Query roads in viewport
//	viewport := xodr.Bounds{
//	    MinX: 0, MaxX: 500,
//	    MinY: 0, MaxY: 500,
//	}
//	visibleRoads := network.RoadsInBounds(viewport)
//
//	// 2. Tessellate lane polygons and draw
//	for _, road := range visibleRoads {
//	    for _, lane := range road.Lanes {
//	        draw(lane.Polygon)
//	    }
//	}
//
// # Geometry Access
//
// Each road carries its sampled reference line and lane meshes:
//
//	for _, road := range network.Roads() {
//	    for _, sm := range road.ReferenceLine {
//	        // sm.S, sm.X, sm.Y, sm.Z, sm.Heading, sm.Roll, sm.Curvature
//	    }
//	    for _, lane := range road.Lanes {
//	        // lane.LaneID, lane.Side, lane.Inner, lane.Outer, lane.Polygon
//	    }
//	}
//
// # Georeferencing
//
// When the document header declares a proj4 projection, the network
// carries a transform to WGS84:
//
//	if network.Georeferenced() {
//	    lon, lat, err := network.GeoTransform().ToGeographic(x, y)
//	    ...
//	}
//
// Documents without a usable projection stay in their local planar
// frame; this is a degraded mode, not an error.
//
// # Warnings
//
// Per-road geometry problems (empty plan views, negative lane widths)
// never fail the parse. They are collected as structured warnings:
//
//	for _, w := range network.Warnings() {
//	    log.Printf("road %s: %v", w.RoadID, w.Err)
//	}
//
// # Export
//
// Layers() groups the network into tagged renderable layers, and
// GeoJSON() exports reference lines and lane polygons as a feature
// collection for GIS tooling.
package xodr
