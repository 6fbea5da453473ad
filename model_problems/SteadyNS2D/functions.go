package SteadyNS2D

import (
	"math"

	"github.com/flowsim/sharpib/FEM2D"
)

/*
	Pointwise vector functions parameterize the forcing term, the outer
	boundary values and the wall velocity of each immersed surface.
*/
type VectorFunction interface {
	At(p FEM2D.Point) FEM2D.Point
}

// ValueList evaluates f at a batch of points, typically quadrature point
// lists.
func ValueList(f VectorFunction, pts []FEM2D.Point, out []FEM2D.Point) {
	for i, p := range pts {
		out[i] = f.At(p)
	}
}

// ExactSolution supplies the analytic fields for verification cases.
type ExactSolution interface {
	Velocity(p FEM2D.Point) FEM2D.Point
	Pressure(p FEM2D.Point) float64
}

type NoForce struct{}

func (NoForce) At(p FEM2D.Point) (f FEM2D.Point) { return }

type ConstantVelocity struct {
	V FEM2D.Point
}

func (c ConstantVelocity) At(p FEM2D.Point) FEM2D.Point { return c.V }

// RotatingWall is the rigid rotation wall velocity about a center,
// counterclockwise for positive Omega.
type RotatingWall struct {
	Center FEM2D.Point
	Omega  float64
}

func (w RotatingWall) At(p FEM2D.Point) FEM2D.Point {
	r := p.Sub(w.Center)
	return FEM2D.Point{-w.Omega * r[1], w.Omega * r[0]}
}

/*
	Manufactured solution on [-1,1]^2, divergence free, vanishing on the
	boundary:

		ux =  sin^2(pi x) sin(2 pi y)
		uy = -sin(2 pi x) sin^2(pi y)
		p  =  sin(pi x) sin(pi y)
*/
type MMSSolution struct{}

func (MMSSolution) Velocity(p FEM2D.Point) FEM2D.Point {
	var (
		sx, sy = math.Sin(math.Pi * p[0]), math.Sin(math.Pi * p[1])
	)
	return FEM2D.Point{
		sx * sx * math.Sin(2*math.Pi*p[1]),
		-math.Sin(2*math.Pi*p[0]) * sy * sy,
	}
}

func (MMSSolution) Pressure(p FEM2D.Point) float64 {
	return math.Sin(math.Pi*p[0]) * math.Sin(math.Pi*p[1])
}

// MMSForcing is the body force that makes MMSSolution solve the steady
// Navier-Stokes system at viscosity Nu.
type MMSForcing struct {
	Nu float64
}

func (m MMSForcing) At(p FEM2D.Point) FEM2D.Point {
	var (
		pi       = math.Pi
		x, y     = p[0], p[1]
		sx, cx   = math.Sin(pi * x), math.Cos(pi * x)
		sy, cy   = math.Sin(pi * y), math.Cos(pi * y)
		s2x, c2x = math.Sin(2 * pi * x), math.Cos(2 * pi * x)
		s2y, c2y = math.Sin(2 * pi * y), math.Cos(2 * pi * y)
	)
	var (
		ux = sx * sx * s2y
		uy = -s2x * sy * sy

		dxUx = pi * s2x * s2y
		dyUx = 2 * pi * sx * sx * c2y
		dxUy = -2 * pi * c2x * sy * sy
		dyUy = -pi * s2x * s2y

		lapUx = 2*pi*pi*c2x*s2y - 4*pi*pi*sx*sx*s2y
		lapUy = 4*pi*pi*s2x*sy*sy - 2*pi*pi*s2x*c2y

		dxP = pi * cx * sy
		dyP = pi * sx * cy
	)
	return FEM2D.Point{
		ux*dxUx + uy*dyUx - m.Nu*lapUx + dxP,
		ux*dxUy + uy*dyUy - m.Nu*lapUy + dyP,
	}
}

/*
	Taylor-Couette annular flow between an inner cylinder rotating at
	Omega1 and a fixed outer cylinder:

		utheta(r) = A r + B / r
		A = -Omega1 r1^2 / (r2^2 - r1^2)
		B =  Omega1 r1^2 r2^2 / (r2^2 - r1^2)

	Inside the inner cylinder the fluid rotates rigidly; outside the outer
	cylinder it is at rest.
*/
type TaylorCouetteSolution struct {
	Center FEM2D.Point
	R1, R2 float64
	Omega1 float64
}

func (tc TaylorCouetteSolution) uTheta(r float64) float64 {
	var (
		den = tc.R2*tc.R2 - tc.R1*tc.R1
		A   = -tc.Omega1 * tc.R1 * tc.R1 / den
		B   = tc.Omega1 * tc.R1 * tc.R1 * tc.R2 * tc.R2 / den
	)
	switch {
	case r < tc.R1:
		return tc.Omega1 * r
	case r > tc.R2:
		return 0
	default:
		return A*r + B/r
	}
}

func (tc TaylorCouetteSolution) Velocity(p FEM2D.Point) FEM2D.Point {
	var (
		rv = p.Sub(tc.Center)
		r  = rv.Norm()
	)
	if r < 1e-14 {
		return FEM2D.Point{}
	}
	ut := tc.uTheta(r)
	theta := math.Atan2(rv[1], rv[0])
	return FEM2D.Point{-math.Sin(theta) * ut, math.Cos(theta) * ut}
}

func (tc TaylorCouetteSolution) Pressure(p FEM2D.Point) float64 { return 0 }
