package FEM2D

import "math"

type Point [2]float64

func (p Point) X() float64 { return p[0] }
func (p Point) Y() float64 { return p[1] }

func (p Point) Add(q Point) Point { return Point{p[0] + q[0], p[1] + q[1]} }
func (p Point) Sub(q Point) Point { return Point{p[0] - q[0], p[1] - q[1]} }

func (p Point) Scale(a float64) Point { return Point{a * p[0], a * p[1]} }

func (p Point) Dot(q Point) float64 { return p[0]*q[0] + p[1]*q[1] }

func (p Point) Norm() float64 { return math.Hypot(p[0], p[1]) }
