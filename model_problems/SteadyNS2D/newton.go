package SteadyNS2D

import (
	"fmt"

	"github.com/flowsim/sharpib/logger"
)

type NewtonState uint8

const (
	FIRST_STEP NewtonState = iota
	REFINING
	CONVERGED
	DIVERGED
)

func (ns NewtonState) Print() (txt string) {
	switch ns {
	case FIRST_STEP:
		txt = "first step"
	case REFINING:
		txt = "refining"
	case CONVERGED:
		txt = "converged"
	case DIVERGED:
		txt = "diverged"
	}
	return
}

const lineSearchFloor = 1.e-3

/*
	NewtonIterate drives the outer nonlinear loop: assemble, sharp edge
	override, solve, backtracking line search, commit. The initial step
	assembles with the inhomogeneous constraint set and seeds the iterate
	from the first solve; later steps use the homogeneous set and halve the
	step length until the residual decreases, accepting the floor step if
	nothing does.
*/
func (s *SteadyNS) NewtonIterate(tolerance float64, maxIterations int,
	isInitialStep bool) (state NewtonState) {
	var (
		currentRes = 1.0
		lastRes    = 1.0
		firstStep  = isInitialStep
	)
	state = FIRST_STEP
	if !firstStep {
		state = REFINING
	}
	outerIteration := 0
	for (firstStep || currentRes > tolerance) && outerIteration < maxIterations {
		if firstStep {
			s.InitializeSystem()
			s.EvaluationPoint.CopyVec(s.PresentSolution)
			s.AssembleSystem(true)
			s.VerticesCellMapping()
			s.SharpEdge(true)
			if err := s.Solve(true); err != nil {
				panic(err)
			}
			s.PresentSolution.CopyVec(s.NewtonUpdate)
			s.NonzeroConstraints.Distribute(s.PresentSolution)
			firstStep = false
			state = REFINING
			s.EvaluationPoint.CopyVec(s.PresentSolution)
			s.AssembleRhs(false)
			s.sharpEdgeRhs(false)
			currentRes = s.ResidualNorm()
			lastRes = currentRes
		} else {
			if s.verbose {
				fmt.Printf("Newton iteration: %d  - Residual:  %v\n",
					outerIteration, currentRes)
			}
			s.EvaluationPoint.CopyVec(s.PresentSolution)
			s.AssembleSystem(false)
			s.SharpEdge(false)
			if err := s.Solve(false); err != nil {
				panic(err)
			}
			for alpha := 1.0; ; alpha *= 0.5 {
				if alpha < lineSearchFloor {
					alpha = lineSearchFloor
				}
				s.EvaluationPoint.CopyVec(s.PresentSolution)
				s.EvaluationPoint.AddScaledVec(s.EvaluationPoint, alpha, s.NewtonUpdate)
				s.NonzeroConstraints.Distribute(s.EvaluationPoint)
				s.AssembleRhs(false)
				s.sharpEdgeRhs(false)
				currentRes = s.ResidualNorm()
				if s.verbose {
					fmt.Printf("\t\talpha = %6.3f res = %v\n", alpha, currentRes)
				}
				// the floor step is kept as forward progress when no
				// reduction is found
				if currentRes < lastRes || alpha == lineSearchFloor {
					break
				}
			}
			s.PresentSolution.CopyVec(s.EvaluationPoint)
			lastRes = currentRes
		}
		outerIteration++
		l := logger.Logger()
		l.Debug().
			Int("iteration", outerIteration).
			Float64("residual", currentRes).
			Msg("newton")
	}
	if currentRes <= tolerance {
		state = CONVERGED
	} else if outerIteration >= maxIterations {
		state = DIVERGED
	}
	return
}
