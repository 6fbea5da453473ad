package SteadyNS2D

import "strings"

type SimulationCase uint8

const (
	MMS SimulationCase = iota
	TaylorCouette
	CylinderInChannel
)

func (sc SimulationCase) Print() (txt string) {
	switch sc {
	case MMS:
		txt = "Manufactured Solution (MMS)"
	case TaylorCouette:
		txt = "Taylor-Couette"
	case CylinderInChannel:
		txt = "Cylinder in Channel"
	}
	return
}

func NewSimulationCase(name string) (sc SimulationCase) {
	switch strings.ToLower(name) {
	case "mms":
		sc = MMS
	case "taylorcouette", "couette":
		sc = TaylorCouette
	case "cylinder", "cylinderinchannel":
		sc = CylinderInChannel
	default:
		panic("unknown simulation case: " + name)
	}
	return
}

// Reference case geometry: immersed circle radii and the x offset of the
// channel cylinder.
const (
	innerRadius    = 0.21
	outerRadius    = 0.91
	cylinderXShift = 0.2
)
