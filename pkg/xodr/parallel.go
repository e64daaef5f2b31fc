package xodr

import (
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/beetlebugorg/xodr/internal/parser"
)

type roadJob struct {
	index int
	road  *parser.Road
}

type roadResult struct {
	index    int
	geometry *parser.RoadGeometry
	warnings []parser.Warning
	err      error
}

// reconstruct builds renderable geometry for every road in the document
// and assembles the network.
func reconstruct(doc *parser.Document, opts ParseOptions) (*Network, error) {
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultParseOptions().Tolerance
	}

	buildOpts := parser.BuildOptions{
		Tolerance:        opts.Tolerance,
		IgnoredLaneTypes: ignoredSet(opts.IgnoredLaneTypes),
	}

	var results []roadResult
	if opts.Parallel && len(doc.Roads) > 1 {
		results = buildParallel(doc.Roads, buildOpts, opts)
	} else {
		results = buildSerial(doc.Roads, buildOpts, opts)
	}

	network := &Network{
		header: Header{
			North:        doc.Header.North,
			South:        doc.Header.South,
			East:         doc.Header.East,
			West:         doc.Header.West,
			GeoReference: doc.Header.GeoReference,
			OffsetX:      doc.Header.OffsetX,
			OffsetY:      doc.Header.OffsetY,
			OffsetZ:      doc.Header.OffsetZ,
			OffsetHdg:    doc.Header.OffsetHdg,
		},
		byID:   make(map[string]*RoadGeometry),
		bounds: emptyBounds(),
	}

	for _, res := range results {
		road := doc.Roads[res.index]
		if res.err != nil {
			logError(opts, "road %s: %v\n", road.ID, res.err)
			network.warnings = append(network.warnings, Warning{
				RoadID: road.ID,
				Err:    res.err,
			})
			continue
		}
		for _, w := range res.warnings {
			logError(opts, "road %s: %v\n", road.ID, w.Err)
			network.warnings = append(network.warnings, Warning{
				RoadID: w.RoadID,
				LaneID: w.LaneID,
				Err:    w.Err,
			})
		}
		rg := convertRoad(res.geometry)
		network.roads = append(network.roads, rg)
		network.byID[rg.ID] = rg
		network.bounds = network.bounds.union(rg.Extent)
	}

	if !opts.ForceLocal && doc.Header.GeoReference != "" {
		geo, err := newGeoTransform(network.header)
		if err != nil {
			logError(opts, "georeference rejected: %v\n", err)
		} else {
			network.geo = geo
		}
	}

	network.spatialIndex = newSpatialIndex(network.roads)

	return network, nil
}

func buildSerial(roads []*parser.Road, buildOpts parser.BuildOptions, opts ParseOptions) []roadResult {
	results := make([]roadResult, 0, len(roads))
	for i, road := range roads {
		results = append(results, buildOne(i, road, buildOpts))
		reportProgress(opts, i+1, len(roads))
	}
	return results
}

// buildParallel reconstructs roads using a worker pool. Results are
// collected by index so the network ordering is deterministic.
func buildParallel(roads []*parser.Road, buildOpts parser.BuildOptions, opts ParseOptions) []roadResult {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(roads) {
		workers = len(roads)
	}

	jobs := make(chan roadJob, len(roads))
	out := make(chan roadResult, len(roads))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				out <- buildOne(job.index, job.road, buildOpts)
			}
		}()
	}

	for i, road := range roads {
		jobs <- roadJob{index: i, road: road}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(out)
	}()

	results := make([]roadResult, 0, len(roads))
	done := 0
	for res := range out {
		results = append(results, res)
		done++
		reportProgress(opts, done, len(roads))
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].index < results[j].index
	})
	return results
}

// buildOne runs inside worker goroutines; logging happens later on the
// collecting goroutine so ErrorLog writers need no locking.
func buildOne(index int, road *parser.Road, buildOpts parser.BuildOptions) roadResult {
	geometry, warnings, err := parser.BuildRoadGeometry(road, buildOpts)
	return roadResult{index: index, geometry: geometry, warnings: warnings, err: err}
}

func ignoredSet(types []string) map[string]bool {
	if len(types) == 0 {
		return nil
	}
	set := make(map[string]bool, len(types))
	for _, t := range types {
		set[t] = true
	}
	return set
}

func reportProgress(opts ParseOptions, done, total int) {
	if opts.Progress != nil {
		opts.Progress(done, total)
	}
}

func logError(opts ParseOptions, format string, args ...interface{}) {
	if opts.ErrorLog != nil {
		fmt.Fprintf(opts.ErrorLog, format, args...)
	}
}
