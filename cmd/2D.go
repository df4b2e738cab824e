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
	"strings"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gofem2d/InputParameters"
	"github.com/notargets/gofem2d/model_problems/AdvectionDiffusion2D"
	"github.com/notargets/gofem2d/solver"
	"github.com/notargets/gofem2d/types"
)

type Model2D struct {
	InputFile      string
	OutputFile     string
	SolverName     string
	Tolerance      float64
	MaxIterations  int
	ParallelDegree int
	PlotFile       string
	GridSize       int
	Contours       int
	ConvergenceCSV string
	Profile        string
	Verbose        bool
}

// TwoDCmd represents the 2D command
var TwoDCmd = &cobra.Command{
	Use:   "2D",
	Short: "Two dimensional advection diffusion solver, reads a problem file and writes the nodal solution",
	Long: `
Reads a problem in YAML or JSON (or the legacy .inp format), assembles and solves
the finite element system and writes {"title", "NN", "T"} to the output file.

gofem2d 2D -I problem.yaml [-o result.json] [--solver lu|denselu|bicgstab] [--plotFile T.png]`,
	Run: func(cmd *cobra.Command, args []string) {
		m2d := NewModel2D()
		if len(m2d.InputFile) == 0 {
			fmt.Printf("error: must supply a problem file (-I, --inputFile)\n")
			fmt.Printf("Example File:%s\n", exampleFile)
			os.Exit(1)
		}
		if err := Run2D(m2d); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

var exampleFile = `
########################################
title: "Two triangles"
eType: tri          # or quad
NE: 2
NN: 4
NEN: 3              # 3 or 6 for tri, 4 or 9 for quad
NGP: 3
functions:          # "?" is zero, x and y are the coordinates
  a: 1
  V1: "?"
  V2: "?"
  c: 0
  f: 1
  exactSoln: "?"
nodes: [[0, 0], [1, 0], [1, 1], [0, 1]]
LtoG: [[0, 1, 2], [0, 2, 3]]
BCs:
  EBC: [{node: 0, data: [0]}, {node: 1, data: [0]}]
  NBC: [{element: 0, face: 1, data: [1.5]}]
  MBC: [{element: 1, face: 2, data: [-1, 0.5]}]
########################################
`

func init() {
	rootCmd.AddCommand(TwoDCmd)
	TwoDCmd.Flags().StringP("inputFile", "I", "", "problem file in YAML, JSON or .inp format")
	TwoDCmd.Flags().StringP("outputFile", "o", "", "solution file, .json or .yaml (default is <input>_output.json)")
	TwoDCmd.Flags().String("solver", "lu", "linear solver: "+strings.Join(solver.SolverNames(), ", "))
	TwoDCmd.Flags().Float64("tolerance", solver.DefaultOptions().Tolerance, "relative residual target of the iterative solver")
	TwoDCmd.Flags().Int("maxIterations", 0, "iteration limit of the iterative solver, 0 is 10 * NN")
	TwoDCmd.Flags().IntP("parallelDegree", "p", 1, "number of go routines used to compute element matrices")
	TwoDCmd.Flags().String("plotFile", "", "write a PNG heat map of the solution")
	TwoDCmd.Flags().Int("gridSize", 200, "samples along each axis of the heat map")
	TwoDCmd.Flags().Int("contours", 10, "contour lines drawn over the heat map, 0 for none")
	TwoDCmd.Flags().String("convergenceCSV", "", "append mesh size and error norms to this CSV file")
	TwoDCmd.Flags().String("profile", "", "write a cpu or mem profile")
	TwoDCmd.Flags().BoolP("verbose", "v", false, "print progress")
	if err := viper.BindPFlags(TwoDCmd.Flags()); err != nil {
		panic(err)
	}
}

// NewModel2D collects the settings, flags override the config file and
// GOFEM2D_* environment variables
func NewModel2D() (m2d *Model2D) {
	return &Model2D{
		InputFile:      viper.GetString("inputFile"),
		OutputFile:     viper.GetString("outputFile"),
		SolverName:     viper.GetString("solver"),
		Tolerance:      viper.GetFloat64("tolerance"),
		MaxIterations:  viper.GetInt("maxIterations"),
		ParallelDegree: viper.GetInt("parallelDegree"),
		PlotFile:       viper.GetString("plotFile"),
		GridSize:       viper.GetInt("gridSize"),
		Contours:       viper.GetInt("contours"),
		ConvergenceCSV: viper.GetString("convergenceCSV"),
		Profile:        viper.GetString("profile"),
		Verbose:        viper.GetBool("verbose"),
	}
}

func Run2D(m2d *Model2D) (err error) {
	var (
		ip    *InputParameters.InputParametersAD2D
		ls    solver.LinearSolver
		c     *AdvectionDiffusion2D.AD2D
		start = time.Now()
	)
	switch strings.ToLower(m2d.Profile) {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	default:
		return types.NewConfigurationError("unknown profile %q, use cpu or mem", m2d.Profile)
	}
	if ip, err = AdvectionDiffusion2D.ReadInput(m2d.InputFile, m2d.Verbose); err != nil {
		return
	}
	ip.SetOutput(m2d.InputFile, m2d.OutputFile)
	if m2d.Verbose {
		ip.Print()
	}
	if ls, err = solver.NewLinearSolver(m2d.SolverName, solver.Options{
		Tolerance:     m2d.Tolerance,
		MaxIterations: m2d.MaxIterations,
		Verbose:       m2d.Verbose,
	}); err != nil {
		return
	}
	if c, err = AdvectionDiffusion2D.NewAD2D(ip, ls, m2d.ParallelDegree, m2d.Verbose); err != nil {
		return
	}
	if err = c.Solve(); err != nil {
		return
	}
	if err = c.Result().Write(ip.Output); err != nil {
		return
	}
	fmt.Printf("Solution written to %s\n", ip.Output)
	if rms, max, ok := c.ErrorNorms(); ok && !m2d.Verbose {
		fmt.Printf("Error against exact solution: RMS = %8.5e, MAX = %8.5e\n", rms, max)
	}
	if len(m2d.ConvergenceCSV) != 0 {
		if err = c.AppendConvergence(m2d.ConvergenceCSV); err != nil {
			return
		}
	}
	if len(m2d.PlotFile) != 0 {
		pm := AdvectionDiffusion2D.DefaultPlotMeta()
		if m2d.GridSize > 1 {
			pm.GridSize = m2d.GridSize
		}
		pm.Contours = m2d.Contours
		if err = c.PlotSolution(m2d.PlotFile, pm); err != nil {
			return
		}
	}
	if m2d.Verbose {
		fmt.Printf("Total time %v\n", time.Since(start))
	}
	return
}
