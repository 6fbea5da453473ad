package SteadyNS2D

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/flowsim/sharpib/FEM2D"
	"github.com/flowsim/sharpib/utils"
)

/*
	GLS stabilized assembly of the steady incompressible Navier-Stokes
	residual and Jacobian on Q1/Q1 elements. The PSPG branch is always
	active; the streamline (SUPG) branch and its Jacobian completion follow
	the SUPG toggle.

	The residual sign convention is rhs = -F(u), so the solved update is
	added with a positive step length.
*/
func (s *SteadyNS) assemble(initialStep, assembleMatrix bool) {
	var (
		nu          = s.Viscosity
		fev         = s.fev
		nq          = fev.Quad.NPoints()
		localMatrix = utils.NewMatrix(FEM2D.DofsPerCell, FEM2D.DofsPerCell)
		localRhs    = make([]float64, FEM2D.DofsPerCell)
		rhsForce    = make([]FEM2D.Point, nq)

		phiU  = make([]FEM2D.Point, FEM2D.DofsPerCell)
		gradU = make([]FEM2D.Tensor2, FEM2D.DofsPerCell)
		divU  = make([]float64, FEM2D.DofsPerCell)
		lapU  = make([]FEM2D.Point, FEM2D.DofsPerCell)
		phiP  = make([]float64, FEM2D.DofsPerCell)
		gradP = make([]FEM2D.Point, FEM2D.DofsPerCell)
	)
	if assembleMatrix {
		s.SystemMatrix = utils.NewDOK(s.Dofh.NDofs(), s.Dofh.NDofs())
		s.overriddenRows = make(map[int]overrideRecord)
		s.fallbackRows = make(map[int]struct{})
	}
	s.SystemRhs.Zero()

	constraints := s.ZeroConstraints
	if initialStep {
		constraints = s.NonzeroConstraints
	}

	for c := 0; c < s.Mesh.NCells(); c++ {
		fev.Reinit(c)
		localMatrix.Zero()
		for i := range localRhs {
			localRhs[i] = 0
		}
		state := fev.EvaluateFunction(s.EvaluationPoint)
		ValueList(s.Forcing, fev.QuadraturePoints(), rhsForce)

		// diameter of the ball with the cell's measure
		h := math.Sqrt(4. * s.Mesh.Measure(c) / math.Pi)

		for q := 0; q < nq; q++ {
			var (
				jxw   = fev.JxW(q)
				vel   = state.Vel[q]
				gradV = state.VelGrad[q]
				lapV  = state.VelLap[q]
				pres  = state.P[q]
				gradp = state.GradP[q]
				force = rhsForce[q]
			)
			uMag := math.Max(vel.Norm(), 1e-12)
			tau := 1. / math.Sqrt(math.Pow(2.*uMag/h, 2)+
				9*math.Pow(4*nu/(h*h), 2))

			for k := 0; k < FEM2D.DofsPerCell; k++ {
				phiU[k] = fev.VelShapeValue(k, q)
				gradU[k] = fev.VelShapeGrad(k, q)
				divU[k] = fev.VelShapeDiv(k, q)
				lapU[k] = fev.VelShapeLaplacian(k, q)
				phiP[k] = fev.PShapeValue(k, q)
				gradP[k] = fev.PShapeGrad(k, q)
			}

			convection := gradV.MulVec(vel)
			strongResidual := convection.
				Add(gradp).
				Sub(lapV.Scale(nu)).
				Sub(force)

			if assembleMatrix {
				for j := 0; j < FEM2D.DofsPerCell; j++ {
					strongJac := gradV.MulVec(phiU[j]).
						Add(gradU[j].MulVec(vel)).
						Add(gradP[j]).
						Sub(lapU[j].Scale(nu))

					for i := 0; i < FEM2D.DofsPerCell; i++ {
						entry := (nu*gradU[j].ScalarProduct(gradU[i]) +
							gradV.MulVec(phiU[j]).Dot(phiU[i]) +
							gradU[j].MulVec(vel).Dot(phiU[i]) -
							divU[i]*phiP[j] + phiP[i]*divU[j]) * jxw

						// PSPG GLS term
						entry += tau * strongJac.Dot(gradP[i]) * jxw

						if s.SUPG {
							entry += tau * (strongJac.Dot(gradU[i].MulVec(vel)) +
								strongResidual.Dot(gradU[i].MulVec(phiU[j]))) * jxw
						}
						localMatrix.AddAt(i, j, entry)
					}
				}
			}
			for i := 0; i < FEM2D.DofsPerCell; i++ {
				localRhs[i] += (-nu*gradV.ScalarProduct(gradU[i]) -
					convection.Dot(phiU[i]) +
					pres*divU[i] -
					gradV.Trace()*phiP[i] +
					force.Dot(phiU[i])) * jxw

				// PSPG GLS term
				localRhs[i] += -tau * strongResidual.Dot(gradP[i]) * jxw

				// SUPG GLS term
				if s.SUPG {
					localRhs[i] += -tau * strongResidual.Dot(gradU[i].MulVec(vel)) * jxw
				}
			}
		}

		dofs := fev.CellDofs()
		if assembleMatrix {
			constraints.DistributeLocalToGlobal(localMatrix, localRhs, dofs,
				s.SystemMatrix, s.SystemRhs)
		} else {
			constraints.DistributeLocalRhs(localRhs, dofs, s.SystemRhs)
		}
	}
}

func (s *SteadyNS) AssembleSystem(initialStep bool) {
	s.assemble(initialStep, true)
}

func (s *SteadyNS) AssembleRhs(initialStep bool) {
	s.assemble(initialStep, false)
}

// ResidualNorm is the l2 norm of the assembled right hand side.
func (s *SteadyNS) ResidualNorm() float64 {
	return mat.Norm(s.SystemRhs, 2)
}
