package FEM2D

import (
	"gonum.org/v1/gonum/integrate/quad"
)

// GaussRule is a tensor product Gauss-Legendre rule on the reference cell.
type GaussRule struct {
	N       int // points per direction
	Points  []Point
	Weights []float64
}

func NewGaussRule(n int) (g *GaussRule) {
	var (
		x = make([]float64, n)
		w = make([]float64, n)
	)
	quad.Legendre{}.FixedLocations(x, w, 0, 1)
	g = &GaussRule{N: n}
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			g.Points = append(g.Points, Point{x[i], x[j]})
			g.Weights = append(g.Weights, w[i]*w[j])
		}
	}
	return
}

func (g *GaussRule) NPoints() int { return len(g.Points) }
