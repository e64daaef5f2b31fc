package main

import (
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/xodr/pkg/xodr"
)

func main() {
	parser := xodr.NewParser()

	// Skip lane types that are not drivable surface; they still occupy
	// lateral space so the kept lanes stay correctly positioned.
	opts := xodr.DefaultParseOptions()
	opts.IgnoredLaneTypes = []string{"border", "none", "curb"}
	opts.ErrorLog = os.Stderr

	network, err := parser.ParseWithOptions("town.xodr", opts)
	if err != nil {
		log.Fatal(err)
	}

	// Count kept lanes by type
	byType := map[string]int{}
	for _, road := range network.Roads() {
		for _, lane := range road.Lanes {
			byType[lane.Type]++
		}
	}

	for laneType, count := range byType {
		fmt.Printf("%-12s %d\n", laneType, count)
	}

	// Structured warnings: degenerate lanes, empty roads
	for _, w := range network.Warnings() {
		fmt.Printf("warning: road %s: %v\n", w.RoadID, w.Err)
	}
}
