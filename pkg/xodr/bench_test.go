package xodr

import (
	"strings"
	"testing"
)

// Benchmark R-tree viewport queries vs linear scan, and the full parse
// pipeline serial vs parallel.

func benchNetwork(b *testing.B, n int, opts ParseOptions) *Network {
	b.Helper()
	network, err := NewParser().ParseReader(strings.NewReader(manyRoads(n)), opts)
	if err != nil {
		b.Fatal(err)
	}
	return network
}

// BenchmarkRoadsInBounds_Rtree benchmarks viewport queries with the
// R-tree index.
func BenchmarkRoadsInBounds_Rtree(b *testing.B) {
	network := benchNetwork(b, 1000, DefaultParseOptions())
	viewport := Bounds{MinX: 0, MinY: 0, MaxX: 100, MaxY: 50}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = network.RoadsInBounds(viewport)
	}
}

// BenchmarkRoadsInBounds_Linear benchmarks viewport queries with forced
// linear scan.
func BenchmarkRoadsInBounds_Linear(b *testing.B) {
	network := benchNetwork(b, 1000, DefaultParseOptions())
	network.spatialIndex = nil
	viewport := Bounds{MinX: 0, MinY: 0, MaxX: 100, MaxY: 50}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = network.RoadsInBounds(viewport)
	}
}

// BenchmarkParseSerial benchmarks single-goroutine reconstruction.
func BenchmarkParseSerial(b *testing.B) {
	doc := manyRoads(100)
	opts := DefaultParseOptions()
	opts.Parallel = false

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := NewParser().ParseReader(strings.NewReader(doc), opts); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkParseParallel benchmarks worker-pool reconstruction.
func BenchmarkParseParallel(b *testing.B) {
	doc := manyRoads(100)
	opts := DefaultParseOptions()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := NewParser().ParseReader(strings.NewReader(doc), opts); err != nil {
			b.Fatal(err)
		}
	}
}
