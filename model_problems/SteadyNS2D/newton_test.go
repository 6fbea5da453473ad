package SteadyNS2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowsim/sharpib/FEM2D"
	"github.com/flowsim/sharpib/utils"
)

func TestNewtonTrivialFlow(t *testing.T) {
	// no forcing, homogeneous walls, no immersed surface: the zero state
	// satisfies the equations and Newton stops after the first solve
	s := NewSteadyNS(MMS, 1, true, 5, false)
	s.Forcing = NoForce{}
	s.Exact = nil
	state := s.NewtonIterate(1.e-12, 10, true)
	assert.Equal(t, CONVERGED, state)
	assert.Less(t, s.ResidualNorm(), 1.e-12)
	for i := 0; i < s.Dofh.NVelocityDofs(); i++ {
		assert.InDeltaf(t, 0., s.PresentSolution.AtVec(i), 1.e-10, "velocity dof %d", i)
	}
}

func TestMMSConvergence(t *testing.T) {
	if testing.Short() {
		t.Skip("refinement study")
	}
	var errs []float64
	for _, refinement := range []int{3, 4, 5} {
		s := NewSteadyNS(MMS, 1, true, refinement, false)
		state := s.NewtonIterate(1.e-6, 10, true)
		require.NotEqual(t, DIVERGED, state)
		l2 := s.CalculateL2Error()
		errs = append(errs, l2.Global)
	}
	// second order velocity convergence under uniform refinement
	assert.Less(t, errs[1], errs[0])
	assert.Less(t, errs[2], errs[1])
	slope := math.Log2(errs[0]/errs[2]) / 2
	assert.Greaterf(t, slope, 1.5, "L2 error sequence %v", errs)
}

func TestGlobalMassConservation(t *testing.T) {
	s := NewSteadyNS(MMS, 1, true, 3, false)
	state := s.NewtonIterate(1.e-6, 10, true)
	require.NotEqual(t, DIVERGED, state)
	// with the boundary velocity pinned to zero the net divergence
	// integral reduces to a boundary flux and vanishes
	var divInt float64
	for c := 0; c < s.Mesh.NCells(); c++ {
		s.fev.Reinit(c)
		fe := s.fev.EvaluateFunction(s.PresentSolution)
		for q := 0; q < s.fev.Quad.NPoints(); q++ {
			divInt += fe.VelGrad[q].Trace() * s.fev.JxW(q)
		}
	}
	assert.InDelta(t, 0., divInt, 1.e-10)
}

func TestNewtonSingularDof(t *testing.T) {
	// a circle through the vertex (0.25, 0) puts a dof exactly on the
	// surface; its equation degenerates to a plain Dirichlet fix and the
	// converged velocity there equals the wall velocity
	s := NewSteadyNS(TaylorCouette, 1, true, 3, false)
	center := FEM2D.Point{0, 0}
	s.Surfaces = []Circle{{Center: center, Radius: 0.25,
		Wall: RotatingWall{Center: center, Omega: 4}}}
	s.Exact = nil
	s.NewtonIterate(1.e-8, 10, true)

	var vertex int
	found := false
	for v, p := range s.Mesh.Vertices {
		if p.Sub(FEM2D.Point{0.25, 0}).Norm() < utils.NODETOL {
			vertex = v
			found = true
		}
	}
	require.True(t, found)
	// the d = 0 branch must have rewritten both velocity rows
	vx := s.Dofh.VertexDof(vertex, 0)
	vy := s.Dofh.VertexDof(vertex, 1)
	require.Contains(t, s.overriddenRows, vx)
	require.Contains(t, s.overriddenRows, vy)
	// wall velocity at (0.25, 0) is (0, 1) for omega = 4
	assert.InDelta(t, 0., s.PresentSolution.AtVec(vx), 1.e-6)
	assert.InDelta(t, 1., s.PresentSolution.AtVec(vy), 1.e-6)
	assert.False(t, utils.IsNan(s.PresentSolution.RawVector().Data))
}
