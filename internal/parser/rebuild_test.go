package parser

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuildRoadGeometry tests the full per-road pipeline: reference line,
// profiles, lanes and frames.
func TestBuildRoadGeometry(t *testing.T) {
	road := &Road{
		ID:     "12",
		Name:   "Ring",
		Length: 60,
		PlanView: []*Primitive{
			{Type: PrimitiveLine, S: 0, X: 1, Y: 2, Hdg: 0.3, Length: 30},
			{Type: PrimitiveArc, S: 30, Length: 30, Curvature: 0.02},
		},
		Elevation: []ProfileSegment{{S: 0, A: 5}},
		Sections: []*LaneSection{
			{S: 0, End: 60, Center: &Lane{ID: 0}, Right: []*Lane{
				{ID: -1, Type: "driving", Widths: []WidthSegment{{A: 3}}},
			}},
		},
	}

	geometry, warnings, err := BuildRoadGeometry(road, BuildOptions{Tolerance: 0.01})
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, "12", geometry.RoadID)
	assert.Equal(t, "Ring", geometry.Name)

	require.NotEmpty(t, geometry.ReferenceLine)
	assert.Equal(t, 0.0, geometry.ReferenceLine[0].S)
	assert.InDelta(t, 60.0, geometry.ReferenceLine[len(geometry.ReferenceLine)-1].S, 1e-9)
	for _, sm := range geometry.ReferenceLine {
		assert.Equal(t, 5.0, sm.Z)
	}

	require.Len(t, geometry.Lanes, 1)
	assert.Equal(t, -1, geometry.Lanes[0].LaneID)
	assert.Equal(t, SideRight, geometry.Lanes[0].Side)

	require.Len(t, geometry.Frames, 2)
	assert.Equal(t, 0, geometry.Frames[0].SegmentIndex)
	assert.Equal(t, PrimitiveLine, geometry.Frames[0].Type)
	assert.Equal(t, 1.0, geometry.Frames[0].X)
	assert.Equal(t, 0.3, geometry.Frames[0].Hdg)
	assert.Equal(t, PrimitiveArc, geometry.Frames[1].Type)
	assert.Equal(t, 30.0, geometry.Frames[1].S)
}

// TestBuildRoadGeometryEmpty tests that an empty plan view surfaces as a
// road-scoped error for the caller to isolate.
func TestBuildRoadGeometryEmpty(t *testing.T) {
	road := &Road{ID: "3", Length: 10}

	geometry, warnings, err := BuildRoadGeometry(road, BuildOptions{})
	assert.Nil(t, geometry)
	assert.Empty(t, warnings)
	var empty *ErrEmptyGeometry
	require.ErrorAs(t, err, &empty)
	assert.Equal(t, "3", empty.RoadID)
}

// TestBuildRoadGeometryDeterministic tests that two builds of the same
// road produce identical samples.
func TestBuildRoadGeometryDeterministic(t *testing.T) {
	road := &Road{
		ID:     "1",
		Length: 40,
		PlanView: []*Primitive{
			{Type: PrimitiveSpiral, S: 0, Length: 40, CurvStart: 0.01, CurvEnd: 0.05},
		},
	}

	a, _, err := BuildRoadGeometry(road, BuildOptions{Tolerance: 0.01})
	require.NoError(t, err)
	b, _, err := BuildRoadGeometry(road, BuildOptions{Tolerance: 0.01})
	require.NoError(t, err)

	require.Equal(t, len(a.ReferenceLine), len(b.ReferenceLine))
	for i := range a.ReferenceLine {
		assert.Equal(t, a.ReferenceLine[i], b.ReferenceLine[i])
	}
}

// TestBuildRoadGeometryToleranceScaling tests that a tighter tolerance
// produces a denser reference line.
func TestBuildRoadGeometryToleranceScaling(t *testing.T) {
	road := &Road{
		ID:     "1",
		Length: 30 * math.Pi,
		PlanView: []*Primitive{
			{Type: PrimitiveArc, S: 0, Length: 30 * math.Pi, Curvature: 1.0 / 15},
		},
	}

	coarse, _, err := BuildRoadGeometry(road, BuildOptions{Tolerance: 0.1})
	require.NoError(t, err)
	fine, _, err := BuildRoadGeometry(road, BuildOptions{Tolerance: 0.001})
	require.NoError(t, err)

	assert.Greater(t, len(fine.ReferenceLine), 2*len(coarse.ReferenceLine))
}
