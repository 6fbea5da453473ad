package SteadyNS2D

import (
	"math"
)

// L2Error holds the velocity error norms of a cycle: over the whole
// background mesh and restricted to the annulus between the immersed
// circles, excluding a band of one minimal cell diameter around each.
type L2Error struct {
	Global  float64
	Annulus float64
}

// CalculateL2Error integrates the difference between the finite element
// velocity and the exact solution with the assembly quadrature.
func (s *SteadyNS) CalculateL2Error() (l2 L2Error) {
	var (
		fev  = s.fev
		band = s.Mesh.MinCellDiameter()
	)
	for c := 0; c < s.Mesh.NCells(); c++ {
		fev.Reinit(c)
		state := fev.EvaluateFunction(s.PresentSolution)
		for q, xq := range fev.QuadraturePoints() {
			var (
				uex = s.Exact.Velocity(xq)
				du  = state.Vel[q].Sub(uex)
				dsq = du.Dot(du)
				jxw = fev.JxW(q)
			)
			l2.Global += dsq * jxw
			if len(s.Surfaces) > 1 {
				r := xq.Sub(s.Surfaces[0].Center).Norm()
				if r > s.Surfaces[0].Radius+band && r < s.Surfaces[1].Radius-band {
					l2.Annulus += dsq * jxw
				}
			}
		}
	}
	l2.Global = math.Sqrt(l2.Global)
	l2.Annulus = math.Sqrt(l2.Annulus)
	return
}
