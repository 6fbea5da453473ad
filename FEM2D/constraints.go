package FEM2D

import (
	"gonum.org/v1/gonum/mat"

	"github.com/flowsim/sharpib/utils"
)

/*
	AffineConstraints carries Dirichlet constraints on individual dofs,
	either inhomogeneous (prescribed boundary values, used on the initial
	Newton step) or homogeneous (all later steps).

	Constrained rows are condensed out during scatter: the row keeps only a
	diagonal entry sized from the local diagonal so the matrix stays regular,
	and couplings of unconstrained rows to constrained columns move to the
	right hand side.
*/
type AffineConstraints struct {
	lines map[int]float64
}

func NewAffineConstraints() *AffineConstraints {
	return &AffineConstraints{lines: make(map[int]float64)}
}

func (ac *AffineConstraints) Constrain(dof int, val float64) {
	ac.lines[dof] = val
}

func (ac *AffineConstraints) IsConstrained(dof int) bool {
	_, ok := ac.lines[dof]
	return ok
}

func (ac *AffineConstraints) Inhomogeneity(dof int) float64 {
	return ac.lines[dof]
}

func (ac *AffineConstraints) NConstraints() int { return len(ac.lines) }

// Distribute overwrites constrained entries of u with their prescribed
// values.
func (ac *AffineConstraints) Distribute(u *mat.VecDense) {
	for dof, val := range ac.lines {
		u.SetVec(dof, val)
	}
}

// DistributeLocalToGlobal scatters a local matrix and rhs into the global
// system honoring the constraints.
func (ac *AffineConstraints) DistributeLocalToGlobal(localM utils.Matrix, localR []float64,
	dofs utils.Index, K utils.DOK, rhs *mat.VecDense) {
	for i, gi := range dofs {
		if ac.IsConstrained(gi) {
			d := localM.At(i, i)
			K.AddAt(gi, gi, d)
			rhs.SetVec(gi, rhs.AtVec(gi)+d*ac.Inhomogeneity(gi))
			continue
		}
		rhs.SetVec(gi, rhs.AtVec(gi)+localR[i])
		for j, gj := range dofs {
			if ac.IsConstrained(gj) {
				rhs.SetVec(gi, rhs.AtVec(gi)-localM.At(i, j)*ac.Inhomogeneity(gj))
				continue
			}
			K.AddAt(gi, gj, localM.At(i, j))
		}
	}
}

// DistributeLocalRhs scatters a local rhs only; constrained rows are
// dropped.
func (ac *AffineConstraints) DistributeLocalRhs(localR []float64, dofs utils.Index, rhs *mat.VecDense) {
	for i, gi := range dofs {
		if ac.IsConstrained(gi) {
			continue
		}
		rhs.SetVec(gi, rhs.AtVec(gi)+localR[i])
	}
}
