package solver

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gofem2d/types"
	"github.com/notargets/gofem2d/utils"
)

// BiCGSTAB is the stabilized bi-conjugate gradient method with a Jacobi
// (diagonal) right preconditioner, working on K in place in CSR form.
// Advection makes K unsymmetric, so plain CG does not apply.
type BiCGSTAB struct {
	opts       Options
	iterations int
	residual   float64
}

func (s *BiCGSTAB) Name() string { return "bicgstab" }

// Iterations and Residual describe the last solve
func (s *BiCGSTAB) Iterations() int   { return s.iterations }
func (s *BiCGSTAB) Residual() float64 { return s.residual }

func (s *BiCGSTAB) Solve(K utils.CSR, F []float64) (T []float64, err error) {
	var (
		N     int
		start = time.Now()
	)
	if N, err = checkSystem(K, F); err != nil {
		return
	}
	var (
		maxIt = s.opts.MaxIterations
		tol   = s.opts.Tolerance
		bNorm = floats.Norm(F, 2)
		x     = make([]float64, N)
		r     = make([]float64, N)
		rHat  = make([]float64, N)
		p     = make([]float64, N)
		v     = make([]float64, N)
		y     = make([]float64, N)
		z     = make([]float64, N)
		sv    = make([]float64, N)
		tv    = make([]float64, N)
		Minv  = K.Diagonal()
	)
	if maxIt <= 0 {
		maxIt = 10 * N
	}
	for i, d := range Minv {
		if d == 0 {
			Minv[i] = 1
		} else {
			Minv[i] = 1 / d
		}
	}
	if bNorm == 0 {
		s.iterations, s.residual = 0, 0
		return x, nil
	}
	precondition := func(dst, src []float64) {
		floats.MulTo(dst, Minv, src)
	}
	copy(r, F) // x0 = 0
	copy(rHat, r)
	var (
		rho, alpha, omega = 1., 1., 1.
	)
	for it := 1; it <= maxIt; it++ {
		rhoNew := floats.Dot(rHat, r)
		if rhoNew == 0 || math.IsNaN(rhoNew) {
			err = types.NewNumericalError("BiCGSTAB breakdown at iteration %d, rho = %g", it, rhoNew)
			return
		}
		beta := (rhoNew / rho) * (alpha / omega)
		rho = rhoNew
		// p = r + beta*(p - omega*v)
		for i := range p {
			p[i] = r[i] + beta*(p[i]-omega*v[i])
		}
		precondition(y, p)
		K.MulVec(v, y)
		rv := floats.Dot(rHat, v)
		if rv == 0 {
			err = types.NewNumericalError("BiCGSTAB breakdown at iteration %d, (r^,v) = 0", it)
			return
		}
		alpha = rho / rv
		floats.AddScaled(x, alpha, y)
		floats.AddScaledTo(sv, r, -alpha, v)
		if s.residual = floats.Norm(sv, 2) / bNorm; s.residual < tol {
			s.iterations = it
			break
		}
		precondition(z, sv)
		K.MulVec(tv, z)
		tt := floats.Dot(tv, tv)
		if tt == 0 {
			err = types.NewNumericalError("BiCGSTAB breakdown at iteration %d, (t,t) = 0", it)
			return
		}
		omega = floats.Dot(tv, sv) / tt
		floats.AddScaled(x, omega, z)
		floats.AddScaledTo(r, sv, -omega, tv)
		s.iterations = it
		if s.residual = floats.Norm(r, 2) / bNorm; s.residual < tol {
			break
		}
		if omega == 0 {
			err = types.NewNumericalError("BiCGSTAB stagnated at iteration %d", it)
			return
		}
	}
	if !(s.residual < tol) {
		err = types.NewNumericalError("BiCGSTAB did not converge in %d iterations, relative residual %g > %g",
			maxIt, s.residual, tol)
		return
	}
	if err = checkSolution(x); err != nil {
		return
	}
	T = x
	logf(s.opts, " * Solved %d equations by BiCGSTAB in %d iterations, %v, relative residual %8.3g\n",
		N, s.iterations, time.Since(start), s.residual)
	return
}
