package parser

import (
	"fmt"
	"math"
)

// PrimitiveType identifies the curve type of a plan-view primitive.
// The set is closed by the OpenDRIVE format; dispatch is an explicit
// switch, not dynamic.
type PrimitiveType int

const (
	PrimitiveLine PrimitiveType = iota
	PrimitiveArc
	PrimitiveSpiral
	PrimitivePoly3
	PrimitiveParamPoly3
)

// String returns the OpenDRIVE element name of the primitive type.
func (t PrimitiveType) String() string {
	switch t {
	case PrimitiveLine:
		return "line"
	case PrimitiveArc:
		return "arc"
	case PrimitiveSpiral:
		return "spiral"
	case PrimitivePoly3:
		return "poly3"
	case PrimitiveParamPoly3:
		return "paramPoly3"
	default:
		return "unknown"
	}
}

// Primitive is one <geometry> record of a road plan view: a curve segment
// of the reference line starting at arclength S with the declared global
// start pose (X, Y, Hdg).
//
// Reference: OpenDRIVE 1.8.1 §7.6 (geometry), §7.7 (parametric curves).
type Primitive struct {
	Type   PrimitiveType
	S      float64
	Length float64

	// Declared global start pose of the primitive. Reference-line
	// construction composes poses itself to guarantee continuity; the
	// declared pose seeds the first primitive and feeds debug frames.
	X, Y, Hdg float64

	// Curvature is the constant arc curvature (1/radius, positive for
	// left turns).
	Curvature float64

	// CurvStart, CurvEnd are the spiral curvatures at u=0 and u=Length.
	CurvStart, CurvEnd float64

	// A..D are the poly3 coefficients of v(u).
	A, B, C, D float64

	// AU..DV are the paramPoly3 coefficients of u(p) and v(p).
	AU, BU, CU, DU float64
	AV, BV, CV, DV float64

	// PRangeArcLength selects the paramPoly3 parameter mode: p runs over
	// arclength when true, over [0, 1] when false. The attribute is
	// mandatory in the document; it is never defaulted.
	PRangeArcLength bool
}

// evalEps is the tolerance for evaluation offsets outside [0, Length].
const evalEps = 1e-6

// flatCurvature is the curvature magnitude below which an arc or spiral is
// numerically indistinguishable from a straight line.
const flatCurvature = 1e-12

// EvalAt evaluates the primitive at local arclength offset u and returns
// position and heading in the primitive's own frame: origin at the curve
// start, initial heading along +x. Composition into the road frame is the
// reference-line builder's job.
//
// Offsets outside [0, Length] by more than evalEps return *ErrOutOfRange;
// offsets within the tolerance are clamped.
func (g *Primitive) EvalAt(u float64) (x, y, hdg float64, err error) {
	if u < -evalEps || u > g.Length+evalEps {
		return 0, 0, 0, &ErrOutOfRange{U: u, Length: g.Length}
	}
	u = math.Max(0, math.Min(u, g.Length))

	switch g.Type {
	case PrimitiveLine:
		return u, 0, 0, nil
	case PrimitiveArc:
		x, y, hdg = evalArc(g.Curvature, u)
		return x, y, hdg, nil
	case PrimitiveSpiral:
		x, y, hdg = g.evalSpiral(u)
		return x, y, hdg, nil
	case PrimitivePoly3:
		x, y, hdg = g.evalPoly3(u)
		return x, y, hdg, nil
	case PrimitiveParamPoly3:
		x, y, hdg = g.evalParamPoly3(u)
		return x, y, hdg, nil
	default:
		return 0, 0, 0, fmt.Errorf("unknown primitive type %d", g.Type)
	}
}

// EndPose returns the primitive's local end pose, i.e. EvalAt(Length).
func (g *Primitive) EndPose() (x, y, hdg float64) {
	x, y, hdg, _ = g.EvalAt(g.Length)
	return x, y, hdg
}

// CurvatureAt returns the signed curvature at local offset u. Used to
// drive adaptive sampling density; u is clamped to [0, Length].
func (g *Primitive) CurvatureAt(u float64) float64 {
	u = math.Max(0, math.Min(u, g.Length))
	switch g.Type {
	case PrimitiveArc:
		return g.Curvature
	case PrimitiveSpiral:
		return g.CurvStart + (g.CurvEnd-g.CurvStart)*u/g.Length
	case PrimitivePoly3:
		dv := g.B + u*(2*g.C+u*3*g.D)
		d2v := 2*g.C + 6*g.D*u
		return d2v / math.Pow(1+dv*dv, 1.5)
	case PrimitiveParamPoly3:
		p := g.paramAt(u)
		du := g.BU + p*(2*g.CU+p*3*g.DU)
		dv := g.BV + p*(2*g.CV+p*3*g.DV)
		d2u := 2*g.CU + 6*g.DU*p
		d2v := 2*g.CV + 6*g.DV*p
		denom := math.Pow(du*du+dv*dv, 1.5)
		if denom == 0 {
			return 0
		}
		return (du*d2v - dv*d2u) / denom
	default:
		return 0
	}
}

// evalArc evaluates a constant-curvature arc via the closed-form circular
// parametrization. y uses the half-angle identity 1-cos θ = 2 sin²(θ/2) so
// small curvatures degrade continuously into the line case instead of
// cancelling.
func evalArc(curvature, u float64) (x, y, hdg float64) {
	if math.Abs(curvature) < flatCurvature {
		return u, 0, 0
	}
	theta := curvature * u
	x = math.Sin(theta) / curvature
	half := math.Sin(theta / 2)
	y = 2 * half * half / curvature
	return x, y, theta
}

// evalSpiral evaluates an Euler spiral with curvature varying linearly from
// CurvStart to CurvEnd over the primitive length, via Fresnel integrals.
//
// Completing the square in the tangent angle
//
//	θ(t) = κ₀t + ċt²/2 = (ċ/2)(t+κ₀/ċ)² - κ₀²/(2ċ)
//
// reduces both position integrals to differences of Fresnel integrals
// rotated by the constant φ₀ = -κ₀²/(2ċ).
func (g *Primitive) evalSpiral(u float64) (x, y, hdg float64) {
	cDot := (g.CurvEnd - g.CurvStart) / g.Length
	// Total extra rotation ċL²/2 below the evaluation tolerance: the
	// spiral is an arc at the mean curvature. κ₀ == κ₁ lands here.
	if math.Abs(cDot)*g.Length*g.Length/2 < 1e-9 {
		return evalArc((g.CurvStart+g.CurvEnd)/2, u)
	}
	return clothoid(g.CurvStart, cDot, u)
}

// clothoid evaluates the Euler spiral with start curvature k0 and
// curvature rate cDot > 0 or < 0. Negative rates mirror the curve about
// the local x axis.
func clothoid(k0, cDot, u float64) (x, y, hdg float64) {
	if cDot < 0 {
		x, y, hdg = clothoid(-k0, -cDot, u)
		return x, -y, -hdg
	}
	scale := math.Sqrt(cDot / math.Pi)
	t0 := k0 / cDot
	phi0 := -k0 * k0 / (2 * cDot)

	c1, s1 := fresnel(scale * (u + t0))
	c0, s0 := fresnel(scale * t0)
	ic := (c1 - c0) / scale
	is := (s1 - s0) / scale

	sin0, cos0 := math.Sincos(phi0)
	x = cos0*ic - sin0*is
	y = sin0*ic + cos0*is
	hdg = u * (k0 + cDot*u/2)
	return x, y, hdg
}

// evalPoly3 evaluates the cubic v(u') = a + bu' + cu'² + du'³ at the u'
// reached after arclength u, then reads position and tangent off the
// graph.
func (g *Primitive) evalPoly3(u float64) (x, y, hdg float64) {
	uu := g.poly3UFromArcLength(u)
	v := g.A + uu*(g.B+uu*(g.C+uu*g.D))
	dv := g.B + uu*(2*g.C+uu*3*g.D)
	return uu, v, math.Atan(dv)
}

// poly3UFromArcLength solves the graph parameter u' for a given arclength
// s along the cubic by integrating
//
//	du'/ds = (1 + v'(u')²)^(-1/2)
//
// with classical fixed-step RK4. The ODE is autonomous and smooth; steps
// of at most 5 cm keep the result well inside the sampling tolerance.
func (g *Primitive) poly3UFromArcLength(s float64) float64 {
	if s <= 0 {
		return 0
	}
	deriv := func(u float64) float64 {
		dv := g.B + u*(2*g.C+u*3*g.D)
		return 1 / math.Sqrt(1+dv*dv)
	}
	n := int(s/0.05) + 4
	h := s / float64(n)
	u := 0.0
	for i := 0; i < n; i++ {
		k1 := deriv(u)
		k2 := deriv(u + h/2*k1)
		k3 := deriv(u + h/2*k2)
		k4 := deriv(u + h*k3)
		u += h / 6 * (k1 + 2*k2 + 2*k3 + k4)
	}
	return u
}

// evalParamPoly3 evaluates the independent cubics u(p), v(p) at the
// parameter reached after arclength u. Heading comes from the parametric
// tangent.
func (g *Primitive) evalParamPoly3(u float64) (x, y, hdg float64) {
	p := g.paramAt(u)
	x = g.AU + p*(g.BU+p*(g.CU+p*g.DU))
	y = g.AV + p*(g.BV+p*(g.CV+p*g.DV))
	du := g.BU + p*(2*g.CU+p*3*g.DU)
	dv := g.BV + p*(2*g.CV+p*3*g.DV)
	return x, y, math.Atan2(dv, du)
}

// paramAt maps a local arclength offset to the paramPoly3 parameter
// according to the declared pRange mode.
func (g *Primitive) paramAt(u float64) float64 {
	if g.PRangeArcLength {
		return u
	}
	return u / g.Length
}
