package SteadyNS2D

import (
	"github.com/flowsim/sharpib/FEM2D"
	"github.com/flowsim/sharpib/logger"
	"github.com/flowsim/sharpib/utils"
)

/*
	Circle is an analytically described immersed surface with a prescribed
	wall velocity. Pressure carries no Dirichlet datum on it.
*/
type Circle struct {
	Center FEM2D.Point
	Radius float64
	Wall   VectorFunction
}

// Contains reports whether p lies inside or on the circle.
func (ib Circle) Contains(p FEM2D.Point) bool {
	return p.Sub(ib.Center).Norm() <= ib.Radius
}

// Project gives the normal projection of p onto the circle, the distance to
// it and the outward unit normal.
func (ib Circle) Project(p FEM2D.Point) (proj FEM2D.Point, dist float64, nrm FEM2D.Point) {
	rv := p.Sub(ib.Center)
	rn := rv.Norm()
	if rn < utils.NODETOL {
		// degenerate: p sits at the center; any direction serves
		nrm = FEM2D.Point{1, 0}
	} else {
		nrm = rv.Scale(1 / rn)
	}
	proj = ib.Center.Add(nrm.Scale(ib.Radius))
	dist = p.Sub(proj).Norm()
	return
}

// overrideRecord remembers the pre override diagonal and the written right
// hand side of a rewritten row, so repeated passes over the same assembled
// system overwrite rather than compound.
type overrideRecord struct {
	alpha float64
	rhs   float64
}

/*
	SharpEdge runs after assembly and before the solve, rewriting the
	equations of velocity dofs living in cells cut by an immersed surface.

	The equation at such a dof i becomes a three point mirror stencil: with
	x_proj the projection of the support point onto the surface and
	x_m = x_i + 2 (x_proj - x_i) the mirror point, the row couples u_i to
	the Q1 interpolation of u at x_m inside the cell that contains it. The
	row is scaled by the pre override diagonal so its magnitude tracks the
	neighboring equations.

	On the initial Newton step the right hand side carries the prescribed
	wall velocity; on later steps it is zero, the inhomogeneity having been
	absorbed into the first iterate.
*/
func (s *SteadyNS) SharpEdge(initialStep bool) {
	for _, surf := range s.Surfaces {
		s.sharpEdgeSurface(surf, initialStep)
	}
}

func (s *SteadyNS) sharpEdgeSurface(surf Circle, initialStep bool) {
	var (
		mesh = s.Mesh
		dh   = s.Dofh
	)
	for c := 0; c < mesh.NCells(); c++ {
		dofs := dh.CellDofIndices(c)
		countIn := 0
		for _, g := range dofs {
			if surf.Contains(s.SupportPoints[g]) {
				countIn++
			}
		}
		// the surface cuts the cell iff its dofs straddle it
		if countIn == 0 || countIn == len(dofs) {
			continue
		}

		for k := 0; k < FEM2D.Dim; k++ {
			// stride through the local dofs of velocity component k; the
			// pressure rows stay untouched
			for l := k; l < FEM2D.DofsPerCell; l += FEM2D.NComponents {
				var (
					gi       = dofs[l]
					xi       = s.SupportPoints[gi]
					v        = FEM2D.LocalVertex(l)
					vIndex   = mesh.CellVertices(c)[v]
					adjacent = s.VertexCells[vIndex]
				)
				proj, dist, _ := surf.Project(xi)
				mirror := xi.Add(proj.Sub(xi).Scale(2))

				// find the cell holding the mirror point among the cells
				// around this vertex
				cellFound := -1
				for _, cand := range adjacent {
					xiRef, err := mesh.TransformRealToUnit(cand, mirror)
					if err != nil {
						continue
					}
					if FEM2D.DistanceToUnitCell(xiRef) <= utils.NODETOL {
						cellFound = cand
						break
					}
				}
				if cellFound < 0 {
					// mirror point outside every candidate, e.g. outside
					// the domain; the reference falls through to the last
					// candidate and so do we
					cellFound = adjacent[len(adjacent)-1]
					if _, dup := s.fallbackRows[gi]; !dup {
						s.StencilFallbacks++
						s.fallbackRows[gi] = struct{}{}
					}
					l := logger.Logger()
					l.Warn().
						Int("dof", gi).
						Float64("x", mirror[0]).Float64("y", mirror[1]).
						Msg("sharp_edge: mirror point not found in vertex patch")
				}
				xiStar, _ := mesh.TransformRealToUnit(cellFound, mirror)
				stencilDofs := dh.CellDofIndices(cellFound)

				// row scale from the pre override diagonal; a row already
				// rewritten keeps its original scale
				alpha := s.SystemMatrix.At(gi, gi)
				if rec, seen := s.overriddenRows[gi]; seen {
					alpha = rec.alpha
				}

				// clear the row over the whole vertex patch, a superset of
				// its assembled columns
				for _, cn := range adjacent {
					for _, gj := range dh.CellDofIndices(cn) {
						s.SystemMatrix.Set(gi, gj, 0)
					}
				}

				var rhs float64
				if dist > utils.NODETOL {
					// the row encodes the mirror relation
					// u(x_i) + u(x_m) = 2 g(x_proj) in the scaled form
					// -2 u_i + interp(x_m) = -g
					s.SystemMatrix.Set(gi, gi, -2*alpha)
					for n := k; n < FEM2D.DofsPerCell; n += FEM2D.NComponents {
						s.SystemMatrix.AddAt(gi, stencilDofs[n],
							alpha*FEM2D.SystemShapeValue(n, xiStar))
					}
					if initialStep {
						rhs = -alpha * surf.Wall.At(proj)[k]
					}
				} else {
					// the dof sits exactly on the surface: plain Dirichlet
					s.SystemMatrix.Set(gi, gi, alpha)
					if initialStep {
						rhs = alpha * surf.Wall.At(xi)[k]
					}
				}
				s.SystemRhs.SetVec(gi, rhs)
				s.overriddenRows[gi] = overrideRecord{alpha: alpha, rhs: rhs}
			}
		}
	}
}

/*
	sharpEdgeRhs reapplies only the right hand side part of the override,
	used when re-evaluating the residual during the line search where the
	matrix rows are already rewritten and the rewrite is idempotent.
*/
func (s *SteadyNS) sharpEdgeRhs(initialStep bool) {
	for gi, rec := range s.overriddenRows {
		if initialStep {
			s.SystemRhs.SetVec(gi, rec.rhs)
		} else {
			s.SystemRhs.SetVec(gi, 0)
		}
	}
}
