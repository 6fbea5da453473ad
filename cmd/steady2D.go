/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/flowsim/sharpib/InputParameters"
	"github.com/flowsim/sharpib/model_problems/SteadyNS2D"
)

// SteadyCmd represents the steady2D command
var SteadyCmd = &cobra.Command{
	Use:   "steady2D",
	Short: "Two dimensional steady solver with immersed circular boundaries",
	Long:  `Two dimensional steady solver with immersed circular boundaries`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("steady2D called")
		icFile, err := cmd.Flags().GetString("inputConditionsFile")
		if err != nil {
			panic(err)
		}
		prof, _ := cmd.Flags().GetBool("profile")
		if prof {
			defer profile.Start().Stop()
		}
		ip := processInput(icFile)
		ip.Print()
		c := SteadyNS2D.NewSteadyNS(
			SteadyNS2D.NewSimulationCase(ip.Case),
			ip.Viscosity, ip.SUPG, ip.InitialRefinement, true)
		c.NewtonTolerance = ip.NewtonTolerance
		c.NewtonMaxIterations = ip.NewtonMaxIterations
		c.NTractionSamples = ip.TractionSamples
		c.Run(ip.Cycles)
	},
}

func processInput(icFile string) (ip *InputParameters.InputParameters) {
	var (
		err error
	)
	if len(icFile) == 0 {
		err = fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile)")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Taylor Couette"
Case: TaylorCouette # Can be "MMS" or "CylinderInChannel"
Viscosity: 1.
SUPG: true
InitialRefinement: 4
Cycles: 3
NewtonTolerance: 1.e-6
NewtonMaxIterations: 10
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	var data []byte
	if data, err = os.ReadFile(icFile); err != nil {
		panic(err)
	}
	ip = &InputParameters.InputParameters{}
	if err = ip.Parse(data); err != nil {
		panic(err)
	}
	return
}

func init() {
	rootCmd.AddCommand(SteadyCmd)
	SteadyCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- Case\n\t- Viscosity\n\t- InitialRefinement")
	SteadyCmd.Flags().Bool("profile", false, "write a CPU profile of the run")
}
