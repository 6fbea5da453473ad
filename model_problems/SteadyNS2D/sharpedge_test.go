package SteadyNS2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowsim/sharpib/FEM2D"
)

// assembleCouette builds the assembled, not yet overridden system of the
// Taylor-Couette case.
func assembleCouette(t *testing.T, refinement int) (s *SteadyNS) {
	t.Helper()
	s = NewSteadyNS(TaylorCouette, 1, true, refinement, false)
	s.InitializeSystem()
	s.EvaluationPoint.CopyVec(s.PresentSolution)
	s.AssembleSystem(true)
	return
}

func TestCircleGeometry(t *testing.T) {
	ib := Circle{Center: FEM2D.Point{1, 0}, Radius: 0.5,
		Wall: RotatingWall{Center: FEM2D.Point{1, 0}, Omega: 2}}
	// projection, distance and normal
	{
		proj, dist, nrm := ib.Project(FEM2D.Point{2, 0})
		assert.InDelta(t, 1.5, proj[0], 1.e-14)
		assert.InDelta(t, 0., proj[1], 1.e-14)
		assert.InDelta(t, 0.5, dist, 1.e-14)
		assert.InDelta(t, 1., nrm[0], 1.e-14)
	}
	// containment includes the surface itself
	{
		assert.True(t, ib.Contains(FEM2D.Point{1.5, 0}))
		assert.True(t, ib.Contains(FEM2D.Point{1, 0.2}))
		assert.False(t, ib.Contains(FEM2D.Point{1.6, 0}))
	}
	// rigid rotation wall velocity is tangential
	{
		g := ib.Wall.At(FEM2D.Point{1.5, 0})
		assert.InDelta(t, 0., g[0], 1.e-14)
		assert.InDelta(t, 1., g[1], 1.e-14)
	}
}

func TestSharpEdgeRowScaling(t *testing.T) {
	s := assembleCouette(t, 4)
	preDiag := make([]float64, s.Dofh.NDofs())
	for i := range preDiag {
		preDiag[i] = s.SystemMatrix.At(i, i)
	}
	s.SharpEdge(true)
	require.NotEmpty(t, s.overriddenRows)

	for gi := range s.overriddenRows {
		// pressure equations are never rewritten
		_, comp := s.Dofh.DofVertex(gi)
		assert.Less(t, comp, FEM2D.Dim)

		if _, fb := s.fallbackRows[gi]; fb {
			continue
		}
		ratio := math.Abs(s.SystemMatrix.At(gi, gi)) / math.Abs(preDiag[gi])
		assert.GreaterOrEqualf(t, ratio, 0.5, "diagonal ratio at row %d", gi)
		assert.LessOrEqualf(t, ratio, 4., "diagonal ratio at row %d", gi)

		sum := s.SystemMatrix.RowAbsSum(gi)
		assert.GreaterOrEqualf(t, sum, 0.25*math.Abs(preDiag[gi]), "row sum at row %d", gi)
		assert.LessOrEqualf(t, sum, 4.*math.Abs(preDiag[gi]), "row sum at row %d", gi)
	}
}

func TestSharpEdgeIdempotence(t *testing.T) {
	s := assembleCouette(t, 3)
	s.SharpEdge(true)
	first := s.SystemMatrix.ToDense()
	firstRhs := make([]float64, s.Dofh.NDofs())
	copy(firstRhs, s.SystemRhs.RawVector().Data)

	s.SharpEdge(true)
	second := s.SystemMatrix.ToDense()
	for i, val := range first.Data() {
		assert.InDeltaf(t, val, second.Data()[i], 1.e-12, "matrix entry %d", i)
	}
	for i, val := range firstRhs {
		assert.InDeltaf(t, val, s.SystemRhs.AtVec(i), 1.e-12, "rhs entry %d", i)
	}
}

func TestSharpEdgeRhsSemantics(t *testing.T) {
	s := assembleCouette(t, 3)
	s.SharpEdge(true)
	// every overridden row carries its recorded initial step value
	for gi, rec := range s.overriddenRows {
		assert.Equal(t, rec.rhs, s.SystemRhs.AtVec(gi))
	}
	// on subsequent steps the prescribed value is absorbed into the
	// iterate and the rows read zero
	s.sharpEdgeRhs(false)
	for gi := range s.overriddenRows {
		assert.Equal(t, 0., s.SystemRhs.AtVec(gi))
	}
}

func TestSharpEdgeClassification(t *testing.T) {
	s := assembleCouette(t, 4)
	s.SharpEdge(true)
	inner, outer := s.Surfaces[0], s.Surfaces[1]
	for gi := range s.overriddenRows {
		// an overridden dof lives in at least one cut cell of one of the
		// surfaces
		v, _ := s.Dofh.DofVertex(gi)
		found := false
		for _, c := range s.VertexCells[v] {
			dofs := s.Dofh.CellDofIndices(c)
			for _, surf := range []Circle{inner, outer} {
				countIn := 0
				for _, g := range dofs {
					if surf.Contains(s.SupportPoints[g]) {
						countIn++
					}
				}
				if countIn > 0 && countIn < len(dofs) {
					found = true
				}
			}
		}
		assert.Truef(t, found, "row %d overridden without a cut cell", gi)
	}
	// uncut configurations leave the system untouched
	{
		far := NewSteadyNS(TaylorCouette, 1, true, 3, false)
		far.Surfaces = []Circle{{Center: FEM2D.Point{10, 10}, Radius: 0.1,
			Wall: ConstantVelocity{}}}
		far.InitializeSystem()
		far.EvaluationPoint.CopyVec(far.PresentSolution)
		far.AssembleSystem(true)
		far.SharpEdge(true)
		assert.Empty(t, far.overriddenRows)
	}
}
