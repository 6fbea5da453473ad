package SteadyNS2D

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/flowsim/sharpib/FEM2D"
	"github.com/flowsim/sharpib/logger"
	"github.com/flowsim/sharpib/utils"
)

/*
	SteadyNS drives the steady incompressible Navier-Stokes solution on a
	background Cartesian mesh with immersed circular boundaries enforced by
	the sharp edge method.

	One Newton step reads the present iterate, assembles the GLS stabilized
	system, rewrites the rows of dofs near an immersed surface, solves for
	the update and line searches the step length.
*/
type SteadyNS struct {
	Case      SimulationCase
	Viscosity float64
	SUPG      bool // Jacobian completeness / streamline term toggle

	Forcing  VectorFunction
	Exact    ExactSolution
	Surfaces []Circle

	Mesh *FEM2D.Mesh
	Dofh *FEM2D.DofHandler
	fev  *FEM2D.FEValues

	ZeroConstraints    *FEM2D.AffineConstraints
	NonzeroConstraints *FEM2D.AffineConstraints

	SupportPoints []FEM2D.Point
	VertexCells   [][]int

	SystemMatrix utils.DOK
	SystemRhs    *mat.VecDense

	PresentSolution *mat.VecDense
	NewtonUpdate    *mat.VecDense
	EvaluationPoint *mat.VecDense

	// rows rewritten by the sharp edge pass over the current assembled
	// system, keyed by global dof
	overriddenRows map[int]overrideRecord
	fallbackRows   map[int]struct{}

	// StencilFallbacks counts mirror points that no candidate cell
	// contained; the last candidate was used for those stencils.
	StencilFallbacks int

	NTractionSamples    int
	NewtonTolerance     float64
	NewtonMaxIterations int

	L2Errors []float64

	// OutputResults, when set, receives the converged solution per
	// refinement cycle.
	OutputResults func(cycle int, solution *mat.VecDense)

	verbose bool
}

func NewSteadyNS(simCase SimulationCase, viscosity float64, supg bool,
	initialRefinement int, verbose bool) (s *SteadyNS) {
	s = &SteadyNS{
		Case:                simCase,
		Viscosity:           viscosity,
		SUPG:                supg,
		NTractionSamples:    100,
		NewtonTolerance:     1.e-6,
		NewtonMaxIterations: 10,
		verbose:             verbose,
	}
	s.Mesh = FEM2D.NewHyperRectangle(FEM2D.Point{-1, -1}, FEM2D.Point{1, 1})
	s.Mesh.RefineGlobal(initialRefinement)

	switch simCase {
	case MMS:
		s.Forcing = MMSForcing{Nu: viscosity}
		s.Exact = MMSSolution{}
	case TaylorCouette:
		s.Forcing = NoForce{}
		center := FEM2D.Point{0, 0}
		omega1 := 1. / innerRadius
		s.Surfaces = []Circle{
			{Center: center, Radius: innerRadius,
				Wall: RotatingWall{Center: center, Omega: omega1}},
			{Center: center, Radius: outerRadius,
				Wall: ConstantVelocity{}},
		}
		s.Exact = TaylorCouetteSolution{
			Center: center, R1: innerRadius, R2: outerRadius, Omega1: omega1,
		}
	case CylinderInChannel:
		s.Forcing = NoForce{}
		s.Surfaces = []Circle{
			{Center: FEM2D.Point{cylinderXShift, 0}, Radius: innerRadius,
				Wall: ConstantVelocity{}},
		}
	}

	s.SetupDofs()

	if verbose {
		fmt.Printf("Steady Navier-Stokes in 2 Dimensions\n")
		fmt.Printf("Solving %s\n", simCase.Print())
		fmt.Printf("Viscosity = %8.5f, Active Cells = %d, Dofs = %d\n\n",
			viscosity, s.Mesh.NCells(), s.Dofh.NDofs())
	}
	return
}

/*
	SetupDofs rebuilds everything derived from the mesh: dof numbering,
	support points, the vertex to cell reverse index and both constraint
	sets. Must run after every mesh change, before InitializeSystem.
*/
func (s *SteadyNS) SetupDofs() {
	s.Dofh = FEM2D.NewDofHandler(s.Mesh)
	s.fev = FEM2D.NewFEValues(s.Dofh, FEM2D.NewGaussRule(3))
	s.SupportPoints = s.Dofh.MapDofsToSupportPoints()
	s.VerticesCellMapping()

	s.NonzeroConstraints = FEM2D.NewAffineConstraints()
	s.ZeroConstraints = FEM2D.NewAffineConstraints()
	switch s.Case {
	case MMS:
		// boundary velocity pinned to the manufactured field
		for id := 0; id < 4; id++ {
			for _, v := range s.Mesh.BoundaryVertices(id) {
				g := MMSSolution{}.Velocity(s.Mesh.Vertices[v])
				for comp := 0; comp < FEM2D.Dim; comp++ {
					s.NonzeroConstraints.Constrain(s.Dofh.VertexDof(v, comp), g[comp])
					s.ZeroConstraints.Constrain(s.Dofh.VertexDof(v, comp), 0)
				}
			}
		}
	case TaylorCouette:
		for id := 0; id < 4; id++ {
			for _, v := range s.Mesh.BoundaryVertices(id) {
				for comp := 0; comp < FEM2D.Dim; comp++ {
					s.NonzeroConstraints.Constrain(s.Dofh.VertexDof(v, comp), 0)
					s.ZeroConstraints.Constrain(s.Dofh.VertexDof(v, comp), 0)
				}
			}
		}
	case CylinderInChannel:
		// inlet on the left face, symmetry top and bottom, free outlet
		for _, v := range s.Mesh.BoundaryVertices(0) {
			s.NonzeroConstraints.Constrain(s.Dofh.VertexDof(v, 0), 1)
			s.NonzeroConstraints.Constrain(s.Dofh.VertexDof(v, 1), 0)
			s.ZeroConstraints.Constrain(s.Dofh.VertexDof(v, 0), 0)
			s.ZeroConstraints.Constrain(s.Dofh.VertexDof(v, 1), 0)
		}
		for _, id := range []int{2, 3} {
			for _, v := range s.Mesh.BoundaryVertices(id) {
				s.NonzeroConstraints.Constrain(s.Dofh.VertexDof(v, 1), 0)
				s.ZeroConstraints.Constrain(s.Dofh.VertexDof(v, 1), 0)
			}
		}
	}
	// The pressure level is free when every boundary carries a velocity
	// Dirichlet condition; pin one pressure dof to keep the factorization
	// regular.
	if s.Case != CylinderInChannel {
		p0 := s.Dofh.VertexDof(0, FEM2D.Dim)
		s.NonzeroConstraints.Constrain(p0, 0)
		s.ZeroConstraints.Constrain(p0, 0)
	}

	l := logger.Logger()
	l.Debug().
		Int("cells", s.Mesh.NCells()).
		Int("dofs", s.Dofh.NDofs()).
		Msg("setup_dofs")
}

// VerticesCellMapping rebuilds the vertex to cell reverse index.
func (s *SteadyNS) VerticesCellMapping() {
	s.VertexCells = s.Mesh.VerticesToCells()
}

// InitializeSystem sizes the global system for the current dof count.
func (s *SteadyNS) InitializeSystem() {
	n := s.Dofh.NDofs()
	s.SystemMatrix = utils.NewDOK(n, n)
	s.SystemRhs = mat.NewVecDense(n, nil)
	if s.PresentSolution == nil || s.PresentSolution.Len() != n {
		s.PresentSolution = mat.NewVecDense(n, nil)
	}
	s.NewtonUpdate = mat.NewVecDense(n, nil)
	s.EvaluationPoint = mat.NewVecDense(n, nil)
	s.overriddenRows = make(map[int]overrideRecord)
	s.fallbackRows = make(map[int]struct{})
}

/*
	Run executes the refinement cycle loop: solve, post process, refine
	uniformly, repeat. Each cycle restarts the Newton iteration with the
	initial step path so the sharp edge right hand side is re-established
	on the new mesh.
*/
func (s *SteadyNS) Run(cycles int) {
	for cycle := 0; cycle < cycles; cycle++ {
		if cycle != 0 {
			s.Mesh.RefineGlobal(1)
			s.PresentSolution = nil
			s.SetupDofs()
		}
		if s.verbose {
			fmt.Printf("cycle: %d\n", cycle)
		}
		state := s.NewtonIterate(s.NewtonTolerance, s.NewtonMaxIterations, true)
		l := logger.Logger()
		l.Info().
			Int("cycle", cycle).
			Str("state", state.Print()).
			Msg("newton_iteration")
		if s.Exact != nil {
			l2 := s.CalculateL2Error()
			s.L2Errors = append(s.L2Errors, l2.Global)
			if s.verbose {
				fmt.Printf("L2Error global is : %v\n", l2.Global)
				if s.Case == TaylorCouette {
					fmt.Printf("L2Error between the 2 cylinders is : %v\n", l2.Annulus)
				}
			}
		}
		if len(s.Surfaces) != 0 {
			tr := s.ComputeTractionAndTorque()
			if s.verbose {
				tr.Print()
			}
		}
		if s.OutputResults != nil {
			s.OutputResults(cycle, s.PresentSolution)
		}
	}
}
