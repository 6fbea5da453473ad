package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type InputParameters struct {
	Title               string  `yaml:"Title"`
	Case                string  `yaml:"Case"` // MMS, TaylorCouette or CylinderInChannel
	Viscosity           float64 `yaml:"Viscosity"`
	SUPG                bool    `yaml:"SUPG"`
	InitialRefinement   int     `yaml:"InitialRefinement"`
	Cycles              int     `yaml:"Cycles"`
	NewtonTolerance     float64 `yaml:"NewtonTolerance"`
	NewtonMaxIterations int     `yaml:"NewtonMaxIterations"`
	TractionSamples     int     `yaml:"TractionSamples"`
}

func (ip *InputParameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, ip); err != nil {
		return err
	}
	ip.setDefaults()
	return nil
}

func (ip *InputParameters) setDefaults() {
	if ip.Viscosity == 0 {
		ip.Viscosity = 1
	}
	if ip.InitialRefinement == 0 {
		ip.InitialRefinement = 4
	}
	if ip.Cycles == 0 {
		ip.Cycles = 1
	}
	if ip.NewtonTolerance == 0 {
		ip.NewtonTolerance = 1.e-6
	}
	if ip.NewtonMaxIterations == 0 {
		ip.NewtonMaxIterations = 10
	}
	if ip.TractionSamples == 0 {
		ip.TractionSamples = 100
	}
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t= Case\n", ip.Case)
	fmt.Printf("%8.5f\t\t= Viscosity\n", ip.Viscosity)
	fmt.Printf("[%v]\t\t\t= SUPG\n", ip.SUPG)
	fmt.Printf("[%d]\t\t\t= Initial Refinement\n", ip.InitialRefinement)
	fmt.Printf("[%d]\t\t\t= Cycles\n", ip.Cycles)
	fmt.Printf("%8.2e\t\t= Newton Tolerance\n", ip.NewtonTolerance)
	fmt.Printf("[%d]\t\t\t= Newton Max Iterations\n", ip.NewtonMaxIterations)
	fmt.Printf("[%d]\t\t\t= Traction Samples\n", ip.TractionSamples)
}
