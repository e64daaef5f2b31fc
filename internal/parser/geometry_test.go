package parser

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLineEval tests straight-segment evaluation in the local frame.
func TestLineEval(t *testing.T) {
	g := &Primitive{Type: PrimitiveLine, Length: 100}

	x, y, hdg, err := g.EvalAt(0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)
	assert.Equal(t, 0.0, hdg)

	x, y, hdg, err = g.EvalAt(37.5)
	require.NoError(t, err)
	assert.Equal(t, 37.5, x)
	assert.Equal(t, 0.0, y)
	assert.Equal(t, 0.0, hdg)
}

// TestArcEval tests constant-curvature evaluation against the circle
// parametrization.
func TestArcEval(t *testing.T) {
	// Quarter circle of radius 10, turning left.
	g := &Primitive{Type: PrimitiveArc, Length: 10 * math.Pi / 2, Curvature: 0.1}

	x, y, hdg, err := g.EvalAt(g.Length)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, x, 1e-9)
	assert.InDelta(t, 10.0, y, 1e-9)
	assert.InDelta(t, math.Pi/2, hdg, 1e-9)

	// Midpoint at 45 degrees.
	x, y, hdg, err = g.EvalAt(g.Length / 2)
	require.NoError(t, err)
	assert.InDelta(t, 10*math.Sin(math.Pi/4), x, 1e-9)
	assert.InDelta(t, 10*(1-math.Cos(math.Pi/4)), y, 1e-9)
	assert.InDelta(t, math.Pi/4, hdg, 1e-9)
}

// TestArcNegativeCurvature tests that right turns mirror left turns.
func TestArcNegativeCurvature(t *testing.T) {
	left := &Primitive{Type: PrimitiveArc, Length: 20, Curvature: 0.05}
	right := &Primitive{Type: PrimitiveArc, Length: 20, Curvature: -0.05}

	xl, yl, hl, err := left.EvalAt(20)
	require.NoError(t, err)
	xr, yr, hr, err := right.EvalAt(20)
	require.NoError(t, err)

	assert.InDelta(t, xl, xr, 1e-12)
	assert.InDelta(t, -yl, yr, 1e-12)
	assert.InDelta(t, -hl, hr, 1e-12)
}

// TestArcFlatCurvatureConvergence tests that an arc degrades continuously
// into a line as curvature goes to zero instead of blowing up.
func TestArcFlatCurvatureConvergence(t *testing.T) {
	for _, k := range []float64{1e-4, 1e-7, 1e-10, 1e-13, 0} {
		g := &Primitive{Type: PrimitiveArc, Length: 50, Curvature: k}
		x, y, _, err := g.EvalAt(50)
		require.NoError(t, err)
		assert.InDelta(t, 50.0, x, 1e-3, "curvature %g", k)
		// y = κL²/2 + O(κ³)
		assert.InDelta(t, k*50*50/2, y, 1e-6, "curvature %g", k)
	}
}

// TestSpiralEval tests Euler spiral evaluation against independently
// integrated reference coordinates.
func TestSpiralEval(t *testing.T) {
	// Standard entry spiral: straight into curvature 0.05 over 30 m.
	g := &Primitive{Type: PrimitiveSpiral, Length: 30, CurvStart: 0, CurvEnd: 0.05}

	x, y, hdg, err := g.EvalAt(30)
	require.NoError(t, err)
	assert.InDelta(t, 28.355879228140, x, 1e-8)
	assert.InDelta(t, 7.204001358171, y, 1e-8)
	assert.InDelta(t, 0.75, hdg, 1e-12)

	x, y, hdg, err = g.EvalAt(15)
	require.NoError(t, err)
	assert.InDelta(t, 14.947351386089, x, 1e-8)
	assert.InDelta(t, 0.935148418656, y, 1e-8)
	assert.InDelta(t, 0.1875, hdg, 1e-12)
}

// TestSpiralNonzeroStartCurvature tests a spiral that starts curved and
// unwinds through zero, the completing-the-square path.
func TestSpiralNonzeroStartCurvature(t *testing.T) {
	g := &Primitive{Type: PrimitiveSpiral, Length: 40, CurvStart: 0.02, CurvEnd: -0.01}

	x, y, hdg, err := g.EvalAt(40)
	require.NoError(t, err)
	assert.InDelta(t, 39.097667338228, x, 1e-8)
	assert.InDelta(t, 7.928594430397, y, 1e-8)
	assert.InDelta(t, 0.2, hdg, 1e-12)
}

// TestSpiralConstantCurvature tests that a degenerate spiral with equal
// start and end curvature evaluates as the corresponding arc.
func TestSpiralConstantCurvature(t *testing.T) {
	spiral := &Primitive{Type: PrimitiveSpiral, Length: 25, CurvStart: 0.04, CurvEnd: 0.04}
	arc := &Primitive{Type: PrimitiveArc, Length: 25, Curvature: 0.04}

	for _, u := range []float64{0, 5, 12.5, 25} {
		xs, ys, hs, err := spiral.EvalAt(u)
		require.NoError(t, err)
		xa, ya, ha, err := arc.EvalAt(u)
		require.NoError(t, err)
		assert.InDelta(t, xa, xs, 1e-9, "x at %g", u)
		assert.InDelta(t, ya, ys, 1e-9, "y at %g", u)
		assert.InDelta(t, ha, hs, 1e-9, "hdg at %g", u)
	}
}

// TestSpiralAgainstNumericalIntegration cross-checks the Fresnel-based
// evaluation against direct Simpson integration of the tangent field.
func TestSpiralAgainstNumericalIntegration(t *testing.T) {
	cases := []struct{ k0, k1, length float64 }{
		{0, 0.1, 20},
		{-0.05, 0.08, 35},
		{0.1, 0.005, 15},
		{0.03, -0.03, 60},
	}

	for _, tc := range cases {
		g := &Primitive{Type: PrimitiveSpiral, Length: tc.length, CurvStart: tc.k0, CurvEnd: tc.k1}
		cDot := (tc.k1 - tc.k0) / tc.length

		for _, frac := range []float64{0.25, 0.5, 1.0} {
			u := frac * tc.length
			wantX, wantY := integrateTangent(tc.k0, cDot, u)
			x, y, hdg, err := g.EvalAt(u)
			require.NoError(t, err)
			assert.InDelta(t, wantX, x, 1e-8, "x k0=%g k1=%g u=%g", tc.k0, tc.k1, u)
			assert.InDelta(t, wantY, y, 1e-8, "y k0=%g k1=%g u=%g", tc.k0, tc.k1, u)
			assert.InDelta(t, tc.k0*u+cDot*u*u/2, hdg, 1e-10)
		}
	}
}

// integrateTangent integrates (cos θ, sin θ) with θ(t) = k0·t + ċt²/2 by
// composite Simpson. Accuracy near 1e-12 at these path lengths.
func integrateTangent(k0, cDot, u float64) (x, y float64) {
	const n = 20000
	h := u / n
	for i := 0; i <= n; i++ {
		t := float64(i) * h
		w := 4.0
		if i%2 == 0 {
			w = 2.0
		}
		if i == 0 || i == n {
			w = 1.0
		}
		theta := k0*t + cDot*t*t/2
		x += w * math.Cos(theta)
		y += w * math.Sin(theta)
	}
	return x * h / 3, y * h / 3
}

// TestPoly3Eval tests cubic evaluation with the arclength-to-u remap.
func TestPoly3Eval(t *testing.T) {
	// Gentle cubic: v = 0.001·u³. Nearly flat, so u ≈ s.
	g := &Primitive{Type: PrimitivePoly3, Length: 10, D: 0.001}

	x, y, hdg, err := g.EvalAt(10)
	require.NoError(t, err)
	assert.Less(t, x, 10.0)
	assert.Greater(t, x, 9.8)
	assert.InDelta(t, 0.001*x*x*x, y, 1e-9)
	assert.InDelta(t, math.Atan(0.003*x*x), hdg, 1e-9)

	// Arclength along the graph from 0 to x must equal the requested u.
	assert.InDelta(t, 10.0, graphArcLength(g, x), 1e-4)
}

// graphArcLength integrates √(1+v'²) along the cubic graph by Simpson.
func graphArcLength(g *Primitive, upTo float64) float64 {
	const n = 20000
	h := upTo / n
	total := 0.0
	for i := 0; i <= n; i++ {
		u := float64(i) * h
		w := 4.0
		if i%2 == 0 {
			w = 2.0
		}
		if i == 0 || i == n {
			w = 1.0
		}
		dv := g.B + u*(2*g.C+u*3*g.D)
		total += w * math.Sqrt(1+dv*dv)
	}
	return total * h / 3
}

// TestParamPoly3ArcLengthRange tests parametric evaluation in arcLength
// parameter mode.
func TestParamPoly3ArcLengthRange(t *testing.T) {
	// u(p) = p, v(p) = 0: a parametric encoding of a straight line.
	g := &Primitive{
		Type: PrimitiveParamPoly3, Length: 50,
		BU: 1, PRangeArcLength: true,
	}

	x, y, hdg, err := g.EvalAt(20)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, x, 1e-12)
	assert.Equal(t, 0.0, y)
	assert.InDelta(t, 0.0, hdg, 1e-12)
}

// TestParamPoly3NormalizedRange tests that normalized pRange maps the
// full length onto p in [0, 1].
func TestParamPoly3NormalizedRange(t *testing.T) {
	// u(p) = 50p, v(p) = 2p²: p runs [0, 1] over the primitive.
	g := &Primitive{
		Type: PrimitiveParamPoly3, Length: 50,
		BU: 50, CV: 2, PRangeArcLength: false,
	}

	x, y, _, err := g.EvalAt(50)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, x, 1e-12)
	assert.InDelta(t, 2.0, y, 1e-12)

	x, y, hdg, err := g.EvalAt(25)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, x, 1e-12)
	assert.InDelta(t, 0.5, y, 1e-12)
	assert.InDelta(t, math.Atan2(2, 50), hdg, 1e-12)
}

// TestEvalOutOfRange tests the range check and the clamping band.
func TestEvalOutOfRange(t *testing.T) {
	g := &Primitive{Type: PrimitiveLine, Length: 10}

	_, _, _, err := g.EvalAt(-1)
	var oor *ErrOutOfRange
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, -1.0, oor.U)
	assert.Equal(t, 10.0, oor.Length)

	_, _, _, err = g.EvalAt(10.5)
	require.ErrorAs(t, err, &oor)

	// Inside the tolerance band the offset clamps instead of failing.
	x, _, _, err := g.EvalAt(10 + 1e-7)
	require.NoError(t, err)
	assert.Equal(t, 10.0, x)

	x, _, _, err = g.EvalAt(-1e-7)
	require.NoError(t, err)
	assert.Equal(t, 0.0, x)
}

// TestEndPose tests that EndPose matches evaluation at the full length.
func TestEndPose(t *testing.T) {
	g := &Primitive{Type: PrimitiveArc, Length: 12, Curvature: 0.08}
	ex, ey, eh := g.EndPose()
	x, y, hdg, err := g.EvalAt(12)
	require.NoError(t, err)
	assert.Equal(t, x, ex)
	assert.Equal(t, y, ey)
	assert.Equal(t, hdg, eh)
}

// TestCurvatureAt tests the curvature used to drive sampling density.
func TestCurvatureAt(t *testing.T) {
	arc := &Primitive{Type: PrimitiveArc, Length: 10, Curvature: 0.2}
	assert.Equal(t, 0.2, arc.CurvatureAt(5))

	spiral := &Primitive{Type: PrimitiveSpiral, Length: 10, CurvStart: 0, CurvEnd: 0.1}
	assert.InDelta(t, 0.05, spiral.CurvatureAt(5), 1e-12)
	assert.InDelta(t, 0.1, spiral.CurvatureAt(10), 1e-12)

	line := &Primitive{Type: PrimitiveLine, Length: 10}
	assert.Equal(t, 0.0, line.CurvatureAt(5))
}

// TestPrimitiveTypeString tests element-name rendering.
func TestPrimitiveTypeString(t *testing.T) {
	assert.Equal(t, "line", PrimitiveLine.String())
	assert.Equal(t, "arc", PrimitiveArc.String())
	assert.Equal(t, "spiral", PrimitiveSpiral.String())
	assert.Equal(t, "poly3", PrimitivePoly3.String())
	assert.Equal(t, "paramPoly3", PrimitiveParamPoly3.String())
}
