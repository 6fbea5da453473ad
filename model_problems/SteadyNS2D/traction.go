package SteadyNS2D

import (
	"fmt"
	"math"

	"github.com/flowsim/sharpib/FEM2D"
)

/*
	TractionResult carries the surface integrated loads on the immersed
	circles: viscous torque about each center and the pressure force on the
	inner circle at three extrapolation orders.
*/
type TractionResult struct {
	TorqueInner   float64
	TorqueOuter   float64
	ViscousForce  FEM2D.Point
	PressureForce [3]FEM2D.Point
}

func (tr TractionResult) Print() {
	fmt.Printf("total_torque_small %v\n", tr.TorqueInner)
	fmt.Printf("total_torque_large %v\n", tr.TorqueOuter)
	fmt.Printf("fx_v: %v fy_v: %v\n", tr.ViscousForce[0], tr.ViscousForce[1])
	for order, f := range tr.PressureForce {
		fmt.Printf("order %d fx_P: %v fy_P: %v\n", order, f[0], f[1])
	}
}

// sampleVelocity interpolates the present velocity at an arbitrary point.
func (s *SteadyNS) sampleVelocity(p FEM2D.Point) (vel FEM2D.Point, err error) {
	c, err := s.Mesh.FindCellAroundPoint(p)
	if err != nil {
		return
	}
	xi, err := s.Mesh.TransformRealToUnit(c, p)
	if err != nil {
		return
	}
	vel, _ = s.fev.InterpolateAt(s.PresentSolution, c, xi)
	return
}

func (s *SteadyNS) samplePressure(p FEM2D.Point) (pres float64, err error) {
	c, err := s.Mesh.FindCellAroundPoint(p)
	if err != nil {
		return
	}
	xi, err := s.Mesh.TransformRealToUnit(c, p)
	if err != nil {
		return
	}
	_, pres = s.fev.InterpolateAt(s.PresentSolution, c, xi)
	return
}

/*
	ComputeTractionAndTorque integrates the viscous and pressure loads on
	the immersed surfaces of a converged solution.

	The shear rate at the surface is a forward difference of the angular
	velocity between the surface and an offset sample along the outward
	normal; the surface value uses the analytic wall velocity, a
	verification convenience rather than a measurement. Pressure is
	interpolated at offsets dr, 2dr, 3dr and extrapolated back at orders
	0, 1 and 2 to compensate the pressure error adjacent to a sharp edge
	boundary. Arc integration is the trapezoidal rule with spacing
	2 pi r/(N-1).
*/
func (s *SteadyNS) ComputeTractionAndTorque() (tr TractionResult) {
	var (
		mu    = s.Viscosity
		n     = s.NTractionSamples
		inner = s.Surfaces[0]
		dr    = s.Mesh.MinCellDiameter() / math.Sqrt2
	)
	r := inner.Radius
	ds := 2 * math.Pi * r / float64(n-1)
	for i := 0; i < n; i++ {
		var (
			theta = 2 * math.Pi * float64(i) / float64(n)
			nrm   = FEM2D.Point{math.Cos(theta), math.Sin(theta)}
			tang  = FEM2D.Point{-math.Sin(theta), math.Cos(theta)}
			x1    = inner.Center.Add(nrm.Scale(r))
			x2    = x1.Add(nrm.Scale(dr))
		)
		u1 := inner.Wall.At(x1)
		U1 := u1.Dot(tang)
		u2, err := s.sampleVelocity(x2)
		if err != nil {
			panic(err)
		}
		U2 := u2.Dot(tang)
		// radial derivative of the angular velocity utheta/r
		duDr := (U2/(r+dr) - U1/r) / dr
		shear := mu * r * duDr
		tr.TorqueInner += r * shear * ds
		tr.ViscousForce = tr.ViscousForce.Add(tang.Scale(shear * ds))

		// pressure samples away from the surface, extrapolated back
		var press [3]float64
		for o := 0; o < 3; o++ {
			xo := x1.Add(nrm.Scale(float64(o+1) * dr))
			if press[o], err = s.samplePressure(xo); err != nil {
				panic(err)
			}
		}
		var (
			p0 = press[0]
			p1 = press[0] + (press[0] - press[1])
			p2 = press[0] + (press[0] - press[1]) +
				((press[0] - press[1]) - (press[1] - press[2]))
		)
		for o, p := range []float64{p0, p1, p2} {
			tr.PressureForce[o] = tr.PressureForce[o].Add(nrm.Scale(-p * ds))
		}
	}

	if len(s.Surfaces) > 1 {
		outer := s.Surfaces[1]
		r2 := outer.Radius
		ds2 := 2 * math.Pi * r2 / float64(n-1)
		for i := 0; i < n; i++ {
			var (
				theta = 2 * math.Pi * float64(i) / float64(n)
				nrm   = FEM2D.Point{math.Cos(theta), math.Sin(theta)}
				tang  = FEM2D.Point{-math.Sin(theta), math.Cos(theta)}
				x1    = outer.Center.Add(nrm.Scale(r2))
				// one sided sample toward the annulus interior
				x2 = x1.Sub(nrm.Scale(dr))
			)
			U1 := outer.Wall.At(x1).Dot(tang)
			u2, err := s.sampleVelocity(x2)
			if err != nil {
				panic(err)
			}
			U2 := u2.Dot(tang)
			duDr := (U2/(r2-dr) - U1/r2) / dr
			tr.TorqueOuter += r2 * mu * r2 * duDr * ds2
		}
	}
	return
}
