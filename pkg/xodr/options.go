package xodr

import (
	"io"
	"runtime"
)

// ParseOptions configures parsing and reconstruction behavior.
//
// All configuration travels explicitly with the call so per-road
// reconstruction stays deterministic under concurrent execution.
type ParseOptions struct {
	// Tolerance is the chordal (sagitta) deviation bound for adaptive
	// reference-line sampling, in map units. The default 0.01 matches
	// typical layer display precision.
	Tolerance float64

	// ForceLocal keeps all output in the local planar frame even when
	// the header declares a valid projection.
	ForceLocal bool

	// IgnoredLaneTypes suppresses lane meshes for the given OpenDRIVE
	// lane types (e.g. "border", "none"). Empty means keep all types.
	IgnoredLaneTypes []string

	// Parallel enables concurrent per-road reconstruction.
	// When false roads are reconstructed serially in document order.
	Parallel bool

	// Workers is the number of reconstruction goroutines.
	// If 0, defaults to runtime.NumCPU(). Only used when Parallel is true.
	Workers int

	// Progress is an optional callback for tracking reconstruction
	// progress. Called after each road completes with (done, total).
	Progress func(done, total int)

	// ErrorLog is an optional writer for detailed warning reporting.
	// Road- and lane-scoped reconstruction problems are written here in
	// addition to the structured warning list.
	ErrorLog io.Writer
}

// DefaultParseOptions returns options with sensible defaults.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		Tolerance: 0.01,
		Parallel:  true,
		Workers:   runtime.NumCPU(),
	}
}
