package FEM2D

import (
	"github.com/flowsim/sharpib/utils"
)

/*
	DofHandler numbers the global dofs block wise: the velocity block
	[vx0, vy0, vx1, vy1, ...] first, then one pressure per vertex.
*/
type DofHandler struct {
	Mesh  *Mesh
	NVert int
}

func NewDofHandler(m *Mesh) (dh *DofHandler) {
	dh = &DofHandler{
		Mesh:  m,
		NVert: m.NVertices(),
	}
	return
}

func (dh *DofHandler) NDofs() int         { return NComponents * dh.NVert }
func (dh *DofHandler) NVelocityDofs() int { return Dim * dh.NVert }
func (dh *DofHandler) NPressureDofs() int { return dh.NVert }

// VertexDof maps (vertex, component) to the global dof index.
func (dh *DofHandler) VertexDof(v, comp int) int {
	if comp < Dim {
		return Dim*v + comp
	}
	return Dim*dh.NVert + v
}

// DofVertex inverts VertexDof.
func (dh *DofHandler) DofVertex(g int) (v, comp int) {
	if g < Dim*dh.NVert {
		return g / Dim, g % Dim
	}
	return g - Dim*dh.NVert, Dim
}

// CellDofIndices returns the 12 global dofs of a cell in local order.
func (dh *DofHandler) CellDofIndices(c int) (dofs utils.Index) {
	dofs = utils.NewIndex(DofsPerCell)
	var l int
	for _, v := range dh.Mesh.CellVertices(c) {
		for comp := 0; comp < NComponents; comp++ {
			dofs[l] = dh.VertexDof(v, comp)
			l++
		}
	}
	return
}

// MapDofsToSupportPoints gives the physical location of every dof. For Q1
// these coincide with vertex coordinates.
func (dh *DofHandler) MapDofsToSupportPoints() (pts []Point) {
	pts = make([]Point, dh.NDofs())
	for v := 0; v < dh.NVert; v++ {
		p := dh.Mesh.Vertices[v]
		for comp := 0; comp < NComponents; comp++ {
			pts[dh.VertexDof(v, comp)] = p
		}
	}
	return
}
