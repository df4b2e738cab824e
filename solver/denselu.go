package solver

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gofem2d/types"
	"github.com/notargets/gofem2d/utils"
)

// DenseLU is a dense LU factorization with partial pivoting. BLAS and LAPACK
// calls go through gonum, which uses netlib when built with -tags netlib.
// Storage is N*N, it serves small systems and cross checks of SparseLU.
type DenseLU struct {
	opts Options
	cond float64
}

func (s *DenseLU) Name() string { return "denselu" }

// Cond is the condition number estimate of the last factorization
func (s *DenseLU) Cond() float64 { return s.cond }

func (s *DenseLU) Solve(K utils.CSR, F []float64) (T []float64, err error) {
	var (
		N     int
		start = time.Now()
	)
	if N, err = checkSystem(K, F); err != nil {
		return
	}
	var lu mat.LU
	lu.Factorize(K.ToDense())
	s.cond = lu.Cond()
	if math.IsNaN(s.cond) || s.cond >= condLimit {
		err = types.NewNumericalError("matrix is singular or ill conditioned, condition number %g", s.cond)
		return
	}
	x := mat.NewVecDense(N, nil)
	if err = lu.SolveVecTo(x, false, mat.NewVecDense(N, F)); err != nil {
		err = types.NewNumericalError("LU solve: %v", err)
		return
	}
	T = x.RawVector().Data
	if err = checkSolution(T); err != nil {
		return
	}
	logf(s.opts, " * Solved %d equations by dense LU in %v, condition number %8.3g\n", N, time.Since(start), s.cond)
	return
}
