package solver

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/notargets/gofem2d/types"
	"github.com/notargets/gofem2d/utils"
)

// LinearSolver solves K T = F for the assembled, boundary conditioned system
type LinearSolver interface {
	Solve(K utils.CSR, F []float64) (T []float64, err error)
	Name() string
}

type Options struct {
	Tolerance     float64 // Relative residual target of iterative solvers
	MaxIterations int     // Iteration limit of iterative solvers, 0 is 10 * N
	Verbose       bool
}

func DefaultOptions() Options {
	return Options{Tolerance: 1.e-12}
}

type newSolverFunc func(opts Options) LinearSolver

var solverFactory = map[string]newSolverFunc{
	"lu":       func(opts Options) LinearSolver { return &SparseLU{opts: opts} },
	"denselu":  func(opts Options) LinearSolver { return &DenseLU{opts: opts} },
	"bicgstab": func(opts Options) LinearSolver { return &BiCGSTAB{opts: opts} },
}

// SolverNames lists the registered solver names in sorted order
func SolverNames() (names []string) {
	for name := range solverFactory {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// NewLinearSolver returns the named solver, "" is the sparse LU solver
func NewLinearSolver(name string, opts Options) (ls LinearSolver, err error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = "lu"
	}
	newSolver, ok := solverFactory[name]
	if !ok {
		err = types.NewConfigurationError("unknown linear solver %q, have %s", name,
			strings.Join(SolverNames(), ", "))
		return
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultOptions().Tolerance
	}
	ls = newSolver(opts)
	return
}

func checkSystem(K utils.CSR, F []float64) (N int, err error) {
	nr, nc := K.Dims()
	if nr != nc || nr != len(F) {
		err = types.NewNumericalError("K is %dx%d with a right hand side of length %d", nr, nc, len(F))
		return
	}
	if utils.IsNan(K) || utils.IsNan(F) {
		err = types.NewNumericalError("system contains NaN or Inf entries")
		return
	}
	N = nr
	return
}

func checkSolution(T []float64) error {
	if utils.IsNan(T) {
		return types.NewNumericalError("solution contains NaN or Inf values")
	}
	return nil
}

// Residual returns the 2-norm of F - K T relative to the 2-norm of F
func Residual(K utils.CSR, F, T []float64) (rel float64) {
	var (
		KT        = make([]float64, len(F))
		num, norm float64
	)
	K.MulVec(KT, T)
	for i := range F {
		r := F[i] - KT[i]
		num += r * r
		norm += F[i] * F[i]
	}
	if norm == 0 {
		return math.Sqrt(num)
	}
	return math.Sqrt(num / norm)
}

func logf(opts Options, format string, args ...interface{}) {
	if opts.Verbose {
		fmt.Printf(format, args...)
	}
}
