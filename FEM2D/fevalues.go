package FEM2D

import (
	"gonum.org/v1/gonum/mat"

	"github.com/flowsim/sharpib/utils"
)

// Tensor2 is a rank two tensor; for a velocity gradient, row i column j
// holds dv_i/dx_j.
type Tensor2 [2][2]float64

func (t Tensor2) Trace() float64 { return t[0][0] + t[1][1] }

// MulVec computes t·v.
func (t Tensor2) MulVec(v Point) Point {
	return Point{
		t[0][0]*v[0] + t[0][1]*v[1],
		t[1][0]*v[0] + t[1][1]*v[1],
	}
}

// ScalarProduct is the Frobenius inner product t:s.
func (t Tensor2) ScalarProduct(s Tensor2) (r float64) {
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			r += t[i][j] * s[i][j]
		}
	}
	return
}

/*
	FEValues evaluates shape functions, gradients, hessians, quadrature
	point locations and JxW on the currently visited cell. Reference cell
	quantities are tabulated once; Reinit rescales them to the physical
	cell.
*/
type FEValues struct {
	Dofh *DofHandler
	Quad *GaussRule

	refVal  [][]float64 // [q][vertex]
	refGrad [][]Point

	cell      int
	dofs      utils.Index
	qPoints   []Point
	jxw       []float64
	physGrad  [][]Point // [q][vertex]
	hessCross []float64 // [vertex], constant over the cell
}

func NewFEValues(dh *DofHandler, quad *GaussRule) (fv *FEValues) {
	fv = &FEValues{
		Dofh: dh,
		Quad: quad,
		cell: -1,
	}
	nq := quad.NPoints()
	fv.refVal = make([][]float64, nq)
	fv.refGrad = make([][]Point, nq)
	for q := 0; q < nq; q++ {
		fv.refVal[q] = make([]float64, VerticesPerCell)
		fv.refGrad[q] = make([]Point, VerticesPerCell)
		for v := 0; v < VerticesPerCell; v++ {
			fv.refVal[q][v] = ShapeValue(v, quad.Points[q])
			fv.refGrad[q][v] = ShapeGradRef(v, quad.Points[q])
		}
	}
	fv.qPoints = make([]Point, nq)
	fv.jxw = make([]float64, nq)
	fv.physGrad = make([][]Point, nq)
	for q := 0; q < nq; q++ {
		fv.physGrad[q] = make([]Point, VerticesPerCell)
	}
	fv.hessCross = make([]float64, VerticesPerCell)
	return
}

func (fv *FEValues) Reinit(c int) {
	var (
		m      = fv.Dofh.Mesh
		dx, dy = m.Dx, m.Dy
	)
	fv.cell = c
	fv.dofs = fv.Dofh.CellDofIndices(c)
	for q := 0; q < fv.Quad.NPoints(); q++ {
		fv.qPoints[q] = m.TransformUnitToReal(c, fv.Quad.Points[q])
		fv.jxw[q] = fv.Quad.Weights[q] * dx * dy
		for v := 0; v < VerticesPerCell; v++ {
			g := fv.refGrad[q][v]
			fv.physGrad[q][v] = Point{g[0] / dx, g[1] / dy}
		}
	}
	for v := 0; v < VerticesPerCell; v++ {
		fv.hessCross[v] = ShapeHessCrossRef(v) / (dx * dy)
	}
}

func (fv *FEValues) CellDofs() utils.Index     { return fv.dofs }
func (fv *FEValues) QuadraturePoints() []Point { return fv.qPoints }
func (fv *FEValues) JxW(q int) float64         { return fv.jxw[q] }

// Velocity part of system local dof l at quadrature point q.
func (fv *FEValues) VelShapeValue(l, q int) (u Point) {
	comp := LocalComponent(l)
	if comp < Dim {
		u[comp] = fv.refVal[q][LocalVertex(l)]
	}
	return
}

func (fv *FEValues) VelShapeGrad(l, q int) (g Tensor2) {
	comp := LocalComponent(l)
	if comp < Dim {
		pg := fv.physGrad[q][LocalVertex(l)]
		g[comp][0] = pg[0]
		g[comp][1] = pg[1]
	}
	return
}

func (fv *FEValues) VelShapeDiv(l, q int) float64 {
	comp := LocalComponent(l)
	if comp < Dim {
		return fv.physGrad[q][LocalVertex(l)][comp]
	}
	return 0
}

// VelShapeHessian returns the physical hessian of the velocity component
// carried by dof l. Bilinear shapes have no pure second derivatives on axis
// aligned cells, so only the mixed entries survive.
func (fv *FEValues) VelShapeHessian(l, q int) (h Tensor2) {
	comp := LocalComponent(l)
	if comp < Dim {
		c := fv.hessCross[LocalVertex(l)]
		h[0][1] = c
		h[1][0] = c
	}
	return
}

// VelShapeLaplacian is the trace of the per component hessian; identically
// zero here but kept on the assembly path the strong residual requires.
func (fv *FEValues) VelShapeLaplacian(l, q int) (lap Point) {
	comp := LocalComponent(l)
	if comp < Dim {
		h := fv.VelShapeHessian(l, q)
		lap[comp] = h[0][0] + h[1][1]
	}
	return
}

func (fv *FEValues) PShapeValue(l, q int) float64 {
	if LocalComponent(l) == Dim {
		return fv.refVal[q][LocalVertex(l)]
	}
	return 0
}

func (fv *FEValues) PShapeGrad(l, q int) (g Point) {
	if LocalComponent(l) == Dim {
		g = fv.physGrad[q][LocalVertex(l)]
	}
	return
}

// FieldEval holds the interpolated solution state at every quadrature point
// of the current cell.
type FieldEval struct {
	Vel     []Point
	VelGrad []Tensor2
	VelLap  []Point
	P       []float64
	GradP   []Point
}

// EvaluateFunction interpolates the global vector u at the quadrature
// points of the current cell.
func (fv *FEValues) EvaluateFunction(u *mat.VecDense) (fe FieldEval) {
	nq := fv.Quad.NPoints()
	fe = FieldEval{
		Vel:     make([]Point, nq),
		VelGrad: make([]Tensor2, nq),
		VelLap:  make([]Point, nq),
		P:       make([]float64, nq),
		GradP:   make([]Point, nq),
	}
	for q := 0; q < nq; q++ {
		for l, g := range fv.dofs {
			var (
				coef = u.AtVec(g)
				comp = LocalComponent(l)
				v    = LocalVertex(l)
			)
			if coef == 0 {
				continue
			}
			if comp < Dim {
				fe.Vel[q][comp] += coef * fv.refVal[q][v]
				pg := fv.physGrad[q][v]
				fe.VelGrad[q][comp][0] += coef * pg[0]
				fe.VelGrad[q][comp][1] += coef * pg[1]
				h := fv.VelShapeHessian(l, q)
				fe.VelLap[q][comp] += coef * (h[0][0] + h[1][1])
			} else {
				fe.P[q] += coef * fv.refVal[q][v]
				pg := fv.physGrad[q][v]
				fe.GradP[q][0] += coef * pg[0]
				fe.GradP[q][1] += coef * pg[1]
			}
		}
	}
	return
}

// InterpolateAt evaluates velocity and pressure from u at an arbitrary
// reference point xi of cell c.
func (fv *FEValues) InterpolateAt(u *mat.VecDense, c int, xi Point) (vel Point, p float64) {
	dofs := fv.Dofh.CellDofIndices(c)
	for l, g := range dofs {
		var (
			coef = u.AtVec(g)
			comp = LocalComponent(l)
			val  = ShapeValue(LocalVertex(l), xi)
		)
		if comp < Dim {
			vel[comp] += coef * val
		} else {
			p += coef * val
		}
	}
	return
}
