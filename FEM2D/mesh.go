package FEM2D

import (
	"fmt"
	"math"
	"sort"

	"github.com/flowsim/sharpib/utils"
)

/*
	Structured quadrilateral background mesh on an axis aligned rectangle.

	Cells and vertices are numbered row major, x fastest. Cell local vertex
	order follows the reference cell: (0,0), (1,0), (0,1), (1,1).
*/
type Mesh struct {
	XMin, XMax, YMin, YMax float64
	Nx, Ny                 int // cell count per direction
	Dx, Dy                 float64
	Vertices               []Point
}

// NewHyperRectangle builds a single cell mesh spanning [p1, p2].
func NewHyperRectangle(p1, p2 Point) (m *Mesh) {
	m = &Mesh{
		XMin: p1[0], XMax: p2[0],
		YMin: p1[1], YMax: p2[1],
		Nx: 1, Ny: 1,
	}
	m.rebuild()
	return
}

// RefineGlobal splits every cell in four, times over.
func (m *Mesh) RefineGlobal(times int) {
	for i := 0; i < times; i++ {
		m.Nx *= 2
		m.Ny *= 2
	}
	m.rebuild()
}

func (m *Mesh) rebuild() {
	m.Dx = (m.XMax - m.XMin) / float64(m.Nx)
	m.Dy = (m.YMax - m.YMin) / float64(m.Ny)
	m.Vertices = make([]Point, (m.Nx+1)*(m.Ny+1))
	var v int
	for j := 0; j <= m.Ny; j++ {
		for i := 0; i <= m.Nx; i++ {
			m.Vertices[v] = Point{m.XMin + float64(i)*m.Dx, m.YMin + float64(j)*m.Dy}
			v++
		}
	}
}

func (m *Mesh) NCells() int    { return m.Nx * m.Ny }
func (m *Mesh) NVertices() int { return len(m.Vertices) }

func (m *Mesh) CellVertices(c int) (verts [4]int) {
	var (
		ci = c % m.Nx
		cj = c / m.Nx
		w  = m.Nx + 1
	)
	verts[0] = cj*w + ci
	verts[1] = cj*w + ci + 1
	verts[2] = (cj+1)*w + ci
	verts[3] = (cj+1)*w + ci + 1
	return
}

func (m *Mesh) Measure(c int) float64 { return m.Dx * m.Dy }

func (m *Mesh) Diameter(c int) float64 { return math.Hypot(m.Dx, m.Dy) }

func (m *Mesh) MinCellDiameter() (d float64) {
	d = math.MaxFloat64
	for c := 0; c < m.NCells(); c++ {
		if dc := m.Diameter(c); dc < d {
			d = dc
		}
	}
	return
}

// CellOrigin is the physical location of the cell's (0,0) reference vertex.
func (m *Mesh) CellOrigin(c int) Point {
	return m.Vertices[m.CellVertices(c)[0]]
}

// FindCellAroundPoint locates the active cell containing p.
func (m *Mesh) FindCellAroundPoint(p Point) (c int, err error) {
	var (
		fi = (p[0] - m.XMin) / m.Dx
		fj = (p[1] - m.YMin) / m.Dy
	)
	if fi < -utils.NODETOL || fj < -utils.NODETOL ||
		fi > float64(m.Nx)+utils.NODETOL || fj > float64(m.Ny)+utils.NODETOL {
		err = fmt.Errorf("point (%v,%v) is outside the mesh", p[0], p[1])
		return
	}
	ci := int(fi)
	cj := int(fj)
	if ci >= m.Nx {
		ci = m.Nx - 1
	}
	if cj >= m.Ny {
		cj = m.Ny - 1
	}
	if ci < 0 {
		ci = 0
	}
	if cj < 0 {
		cj = 0
	}
	c = cj*m.Nx + ci
	return
}

// TransformUnitToReal maps reference coordinates on [0,1]^2 into the cell.
func (m *Mesh) TransformUnitToReal(c int, xi Point) Point {
	o := m.CellOrigin(c)
	return Point{o[0] + xi[0]*m.Dx, o[1] + xi[1]*m.Dy}
}

// TransformRealToUnit inverts the cell mapping. The error return mirrors the
// general curved-cell interface where Newton inversion can fail to converge;
// the affine map here is total.
func (m *Mesh) TransformRealToUnit(c int, p Point) (xi Point, err error) {
	o := m.CellOrigin(c)
	xi = Point{(p[0] - o[0]) / m.Dx, (p[1] - o[1]) / m.Dy}
	return
}

// DistanceToUnitCell is zero when xi lies inside [0,1]^2, else the Linf
// distance to it.
func DistanceToUnitCell(xi Point) (d float64) {
	for i := 0; i < 2; i++ {
		if xi[i] < 0 {
			d = math.Max(d, -xi[i])
		}
		if xi[i] > 1 {
			d = math.Max(d, xi[i]-1)
		}
	}
	return
}

/*
	Boundary ids follow the colorized hyper_rectangle convention:
	0 = x min, 1 = x max, 2 = y min, 3 = y max.
*/
func (m *Mesh) VertexOnBoundary(v, id int) bool {
	p := m.Vertices[v]
	switch id {
	case 0:
		return math.Abs(p[0]-m.XMin) < utils.NODETOL
	case 1:
		return math.Abs(p[0]-m.XMax) < utils.NODETOL
	case 2:
		return math.Abs(p[1]-m.YMin) < utils.NODETOL
	case 3:
		return math.Abs(p[1]-m.YMax) < utils.NODETOL
	}
	return false
}

// BoundaryVertices lists the vertex indices lying on the given boundary id.
func (m *Mesh) BoundaryVertices(id int) (verts utils.Index) {
	for v := range m.Vertices {
		if m.VertexOnBoundary(v, id) {
			verts = append(verts, v)
		}
	}
	return
}

// VerticesToCells builds the reverse index from each vertex to the set of
// active cells incident to it. Rebuilt whenever the mesh changes.
func (m *Mesh) VerticesToCells() (v2c [][]int) {
	sets := make([]map[int]struct{}, m.NVertices())
	for c := 0; c < m.NCells(); c++ {
		for _, v := range m.CellVertices(c) {
			if sets[v] == nil {
				sets[v] = make(map[int]struct{})
			}
			sets[v][c] = struct{}{}
		}
	}
	v2c = make([][]int, m.NVertices())
	for v, set := range sets {
		for c := range set {
			v2c[v] = append(v2c[v], c)
		}
		sort.Ints(v2c[v])
	}
	return
}
