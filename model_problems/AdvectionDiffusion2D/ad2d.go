package AdvectionDiffusion2D

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/notargets/gofem2d/FEM2D"
	"github.com/notargets/gofem2d/InputParameters"
	"github.com/notargets/gofem2d/functions"
	"github.com/notargets/gofem2d/readfiles"
	"github.com/notargets/gofem2d/solver"
	"github.com/notargets/gofem2d/types"
	"github.com/notargets/gofem2d/utils"
)

/*
	Steady advection diffusion reaction in two dimensions

		-div(a grad T) + V.grad T + c T = f

	solved with continuous Galerkin elements. The pipeline is
		input -> Problem -> Assemble -> ApplyBoundaryConditions -> LinearSolver
*/
type AD2D struct {
	InputFile      string
	Problem        *FEM2D.Problem
	System         *FEM2D.GlobalSystem
	Solver         solver.LinearSolver
	ParallelDegree int // Number of go routines used to compute element matrices
	T              []float64
	verbose        bool
	elapsed        struct {
		assembly, bcs, solve time.Duration
	}
}

// ReadInput loads a problem file, .inp files use the legacy column format and
// everything else is read as YAML or JSON
func ReadInput(filename string, verbose bool) (ip *InputParameters.InputParametersAD2D, err error) {
	var (
		data []byte
	)
	if strings.EqualFold(filepath.Ext(filename), ".inp") {
		if ip, err = readfiles.ReadInpFile(filename, verbose); err != nil {
			return
		}
	} else {
		if verbose {
			fmt.Printf("Reading problem file named: %s\n", filename)
		}
		if data, err = os.ReadFile(filename); err != nil {
			return nil, types.NewInputError("unable to read problem file %s: %v", filename, err)
		}
		ip = &InputParameters.InputParametersAD2D{}
		if err = ip.Parse(data); err != nil {
			return nil, err
		}
	}
	if err = ip.Validate(); err != nil {
		return nil, err
	}
	return
}

// NewProblemFromInput builds the mesh, coefficients and boundary conditions
// described by the parsed input
func NewProblemFromInput(ip *InputParameters.InputParametersAD2D) (p *FEM2D.Problem, err error) {
	var (
		shape   FEM2D.Shape
		et      FEM2D.ElementType
		mesh    *FEM2D.Mesh
		fitter  functions.Fitter
		coef    *functions.CoefficientFunctions
		samples *functions.NodalSamples
		nodes   = make([]FEM2D.Node, len(ip.Nodes))
	)
	if err = ip.Validate(); err != nil {
		return
	}
	if shape, err = FEM2D.NewShape(string(ip.EType)); err != nil {
		return
	}
	if et, err = FEM2D.NewElementType(shape, ip.NEN); err != nil {
		return
	}
	for i, nd := range ip.Nodes {
		nodes[i] = FEM2D.Node{X: nd[0], Y: nd[1]}
	}
	if mesh, err = FEM2D.NewMesh(nodes, ip.LtoG, et); err != nil {
		return
	}
	if ip.UV != nil {
		samples = &functions.NodalSamples{
			X: make([]float64, len(nodes)),
			Y: make([]float64, len(nodes)),
			U: ip.UV[0],
			V: ip.UV[1],
		}
		for i, nd := range nodes {
			samples.X[i], samples.Y[i] = nd.X, nd.Y
		}
	}
	if fitter, err = functions.NewFitter(ip.Fitter, ip.Smoothing); err != nil {
		return
	}
	src := functions.Sources{
		A:         string(ip.Functions.A),
		V1:        string(ip.Functions.V1),
		V2:        string(ip.Functions.V2),
		C:         string(ip.Functions.C),
		F:         string(ip.Functions.F),
		ExactSoln: string(ip.Functions.ExactSoln),
	}
	if coef, err = functions.NewCoefficientFunctions(src, samples, fitter); err != nil {
		return
	}
	p, err = FEM2D.NewProblem(ip.Title, mesh, ip.NGP, coef, convertBCs(ip.BCs))
	return
}

func convertBCs(in InputParameters.BCData) (bcs FEM2D.BCs) {
	for _, row := range in.EBC {
		bcs.EBC = append(bcs.EBC, FEM2D.EssentialBC{Node: row.Node, Value: row.Data[0]})
	}
	for _, row := range in.NBC {
		bcs.NBC = append(bcs.NBC, FEM2D.NaturalBC{Element: row.Element, Face: row.Face, Flux: row.Data[0]})
	}
	for _, row := range in.MBC {
		bcs.MBC = append(bcs.MBC, FEM2D.MixedBC{Element: row.Element, Face: row.Face,
			Alpha: row.Data[0], Beta: row.Data[1]})
	}
	return
}

func NewAD2D(ip *InputParameters.InputParametersAD2D, ls solver.LinearSolver, parallelDegree int,
	verbose bool) (c *AD2D, err error) {
	c = &AD2D{
		Solver:         ls,
		ParallelDegree: parallelDegree,
		verbose:        verbose,
	}
	if c.Problem, err = NewProblemFromInput(ip); err != nil {
		return nil, err
	}
	if c.Solver == nil {
		if c.Solver, err = solver.NewLinearSolver("", solver.DefaultOptions()); err != nil {
			return nil, err
		}
	}
	if verbose {
		fmt.Printf("Advection Diffusion Equation in 2 Dimensions\n")
		c.Problem.Print()
		fmt.Printf("Linear solver: %s\n", c.Solver.Name())
	}
	return
}

// Solve runs assembly, applies the boundary conditions and solves for the
// nodal values of T. Any failure aborts the run with no partial result.
func (c *AD2D) Solve() (err error) {
	var (
		p     = c.Problem
		start = time.Now()
	)
	if c.System, err = FEM2D.Assemble(p,
		FEM2D.WithParallelDegree(c.ParallelDegree), FEM2D.WithVerbose(c.verbose)); err != nil {
		return
	}
	c.elapsed.assembly = time.Since(start)
	for _, w := range p.BoundaryFaceWarnings() {
		log.Printf("warning: %s\n", w)
	}
	if c.verbose {
		fmt.Printf(" * Applying boundary conditions...\n")
	}
	start = time.Now()
	if err = FEM2D.ApplyBoundaryConditions(p, c.System); err != nil {
		return
	}
	c.elapsed.bcs = time.Since(start)
	if c.verbose {
		fmt.Printf(" * Solving the linear system with %s...\n", c.Solver.Name())
	}
	start = time.Now()
	if c.T, err = c.Solver.Solve(c.System.Kc, c.System.F); err != nil {
		return
	}
	c.elapsed.solve = time.Since(start)
	if c.verbose {
		c.PrintFinal()
	}
	return
}

// ErrorNorms compares T at the nodes against the exact solution, ok is false
// when the problem has none
func (c *AD2D) ErrorNorms() (rms, max float64, ok bool) {
	var (
		exact = c.Problem.Coef.Exact
		nodes = c.Problem.Mesh.Nodes
	)
	if exact.Kind() == functions.Zero || c.T == nil {
		return
	}
	diff := make([]float64, len(nodes))
	for i, nd := range nodes {
		diff[i] = c.T[i] - exact.Evaluate(nd.X, nd.Y)
	}
	rms, max = utils.Norms(diff)
	ok = true
	return
}

func (c *AD2D) PrintFinal() {
	log.Printf("Assembly %v, boundary conditions %v, solve %v\n",
		c.elapsed.assembly, c.elapsed.bcs, c.elapsed.solve)
	log.Printf("Relative residual = %8.5e, %s\n",
		solver.Residual(c.System.Kc, c.System.F, c.T), utils.GetMemUsage())
	if rms, max, ok := c.ErrorNorms(); ok {
		fmt.Printf("Error against exact solution: RMS = %8.5e, MAX = %8.5e\n", rms, max)
	}
}
