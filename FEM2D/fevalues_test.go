package FEM2D

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonum.org/v1/gonum/mat"

	"github.com/flowsim/sharpib/utils"
)

// setField fills a global vector from nodal velocity and pressure fields.
func setField(dh *DofHandler, uFn func(p Point) Point, pFn func(p Point) float64) (u *mat.VecDense) {
	u = mat.NewVecDense(dh.NDofs(), nil)
	for v := 0; v < dh.NVert; v++ {
		p := dh.Mesh.Vertices[v]
		vel := uFn(p)
		u.SetVec(dh.VertexDof(v, 0), vel[0])
		u.SetVec(dh.VertexDof(v, 1), vel[1])
		u.SetVec(dh.VertexDof(v, Dim), pFn(p))
	}
	return
}

func TestFEValues(t *testing.T) {
	m := NewHyperRectangle(Point{-1, -1}, Point{1, 1})
	m.RefineGlobal(2)
	dh := NewDofHandler(m)
	fev := NewFEValues(dh, NewGaussRule(3))
	// JxW sums to the cell measure
	{
		fev.Reinit(5)
		var sum float64
		for q := 0; q < fev.Quad.NPoints(); q++ {
			sum += fev.JxW(q)
		}
		assert.InDelta(t, m.Measure(5), sum, 1.e-14)
	}
	// a field linear in x and y is reproduced exactly, including
	// gradients and the vanishing laplacian
	{
		uFn := func(p Point) Point { return Point{2*p[0] + 3*p[1], p[0] - p[1]} }
		pFn := func(p Point) float64 { return 4*p[0] + p[1] }
		u := setField(dh, uFn, pFn)
		for _, c := range []int{0, 7, 15} {
			fev.Reinit(c)
			state := fev.EvaluateFunction(u)
			for q, xq := range fev.QuadraturePoints() {
				exp := uFn(xq)
				assert.InDelta(t, exp[0], state.Vel[q][0], 1.e-13)
				assert.InDelta(t, exp[1], state.Vel[q][1], 1.e-13)
				assert.InDelta(t, 2., state.VelGrad[q][0][0], 1.e-13)
				assert.InDelta(t, 3., state.VelGrad[q][0][1], 1.e-13)
				assert.InDelta(t, 1., state.VelGrad[q][1][0], 1.e-13)
				assert.InDelta(t, -1., state.VelGrad[q][1][1], 1.e-13)
				assert.InDelta(t, 0., state.VelLap[q][0], 1.e-13)
				assert.InDelta(t, 0., state.VelLap[q][1], 1.e-13)
				assert.InDelta(t, pFn(xq), state.P[q], 1.e-13)
				assert.InDelta(t, 4., state.GradP[q][0], 1.e-13)
				assert.InDelta(t, 1., state.GradP[q][1], 1.e-13)
			}
		}
	}
	// the bilinear xy lives in the Q1 space as well
	{
		uFn := func(p Point) Point { return Point{p[0] * p[1], 0} }
		u := setField(dh, uFn, func(Point) float64 { return 0 })
		fev.Reinit(9)
		state := fev.EvaluateFunction(u)
		for q, xq := range fev.QuadraturePoints() {
			assert.InDelta(t, xq[0]*xq[1], state.Vel[q][0], 1.e-13)
			assert.InDelta(t, xq[1], state.VelGrad[q][0][0], 1.e-13)
			assert.InDelta(t, xq[0], state.VelGrad[q][0][1], 1.e-13)
		}
	}
	// pointwise interpolation at an arbitrary reference location
	{
		uFn := func(p Point) Point { return Point{2*p[0] + 3*p[1], p[0] - p[1]} }
		pFn := func(p Point) float64 { return 4*p[0] + p[1] }
		u := setField(dh, uFn, pFn)
		p := Point{0.32, -0.41}
		c, err := m.FindCellAroundPoint(p)
		require.NoError(t, err)
		xi, err := m.TransformRealToUnit(c, p)
		require.NoError(t, err)
		vel, pres := fev.InterpolateAt(u, c, xi)
		assert.InDelta(t, uFn(p)[0], vel[0], 1.e-13)
		assert.InDelta(t, uFn(p)[1], vel[1], 1.e-13)
		assert.InDelta(t, pFn(p), pres, 1.e-13)
	}
}

func TestAffineConstraints(t *testing.T) {
	// Distribute pins constrained entries
	{
		ac := NewAffineConstraints()
		ac.Constrain(1, 2.5)
		u := mat.NewVecDense(3, []float64{1, 1, 1})
		ac.Distribute(u)
		assert.Equal(t, 2.5, u.AtVec(1))
		assert.Equal(t, 1., u.AtVec(0))
	}
	// local to global scatter moves constrained couplings to the rhs
	{
		m := NewHyperRectangle(Point{0, 0}, Point{1, 1})
		dh := NewDofHandler(m)
		ac := NewAffineConstraints()
		dofs := dh.CellDofIndices(0)
		gConstrained := dofs[0]
		gFree := dofs[1]
		ac.Constrain(gConstrained, 2.)

		localM := utils.NewMatrix(DofsPerCell, DofsPerCell)
		for i := 0; i < DofsPerCell; i++ {
			localM.Set(i, i, 1)
		}
		localM.Set(1, 0, 0.5) // free local row 1 couples to constrained local 0
		localR := make([]float64, DofsPerCell)
		K := utils.NewDOK(dh.NDofs(), dh.NDofs())
		rhs := mat.NewVecDense(dh.NDofs(), nil)
		ac.DistributeLocalToGlobal(localM, localR, dofs, K, rhs)

		// the free row lost its coupling into the constrained column and
		// gained the negated inhomogeneity contribution
		assert.Equal(t, 0., K.At(gFree, gConstrained))
		assert.InDelta(t, -2.*0.5, rhs.AtVec(gFree), 1.e-14)
		// the constrained row keeps a diagonal entry scaled by its local
		// diagonal, and a matching rhs so the solve returns the value
		assert.InDelta(t, 1., K.At(gConstrained, gConstrained), 1.e-14)
		assert.InDelta(t, 2., rhs.AtVec(gConstrained), 1.e-14)
	}
}
