package SteadyNS2D

import (
	"fmt"
)

/*
	Solve factors the post override system directly and back substitutes the
	Newton update, then applies the active constraint set to it. A singular
	matrix is fatal to the caller.
*/
func (s *SteadyNS) Solve(initialStep bool) (err error) {
	constraints := s.ZeroConstraints
	if initialStep {
		constraints = s.NonzeroConstraints
	}
	dense := s.SystemMatrix.ToDense()
	x, err := dense.LUSolve(s.SystemRhs.RawVector().Data)
	if err != nil {
		err = fmt.Errorf("direct solve failed: %w", err)
		return
	}
	for i, val := range x {
		s.NewtonUpdate.SetVec(i, val)
	}
	constraints.Distribute(s.NewtonUpdate)
	return
}
