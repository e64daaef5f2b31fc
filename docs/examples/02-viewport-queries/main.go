package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/xodr/pkg/xodr"
)

func main() {
	// Parse network
	parser := xodr.NewParser()
	network, err := parser.Parse("town.xodr")
	if err != nil {
		log.Fatal(err)
	}

	// Define viewport (500 m tile around the origin)
	viewport := xodr.Bounds{
		MinX: -250, MaxX: 250,
		MinY: -250, MaxY: 250,
	}

	// Query R-tree index for visible roads (O(log n))
	roads := network.RoadsInBounds(viewport)

	fmt.Printf("Visible roads: %d\n", len(roads))

	for _, road := range roads {
		fmt.Printf("  %s (%s): %d lanes, %d samples\n",
			road.ID, road.Name,
			len(road.Lanes),
			len(road.ReferenceLine))
	}
}
