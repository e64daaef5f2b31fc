package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/xodr/pkg/xodr"
)

func main() {
	// Create parser
	parser := xodr.NewParser()

	// Parse OpenDRIVE file
	network, err := parser.Parse("town.xodr")
	if err != nil {
		log.Fatal(err)
	}

	// Print network info
	fmt.Printf("Roads: %d\n", network.RoadCount())
	fmt.Printf("Georeferenced: %v\n", network.Georeferenced())
	fmt.Printf("Warnings: %d\n", len(network.Warnings()))

	// Get network bounds
	bounds := network.Bounds()
	fmt.Printf("Bounds: [%.2f,%.2f] to [%.2f,%.2f]\n",
		bounds.MinX, bounds.MinY,
		bounds.MaxX, bounds.MaxY)
}
