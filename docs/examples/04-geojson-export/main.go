package main

import (
	"log"
	"os"

	"github.com/beetlebugorg/xodr/pkg/xodr"
)

func main() {
	parser := xodr.NewParser()
	network, err := parser.Parse("town.xodr")
	if err != nil {
		log.Fatal(err)
	}

	// Export reference lines and lane polygons. Coordinates are WGS84
	// when the document is georeferenced, local planar otherwise.
	data, err := network.GeoJSON()
	if err != nil {
		log.Fatal(err)
	}

	if err := os.WriteFile("network.geojson", data, 0o644); err != nil {
		log.Fatal(err)
	}

	log.Printf("wrote network.geojson (%d roads)", network.RoadCount())
}
