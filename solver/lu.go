package solver

import (
	"math"
	"sort"
	"time"

	"github.com/notargets/gofem2d/types"
	"github.com/notargets/gofem2d/utils"
)

const eps = 2.220446049250313e-16

// condLimit is 1/machine epsilon, systems at or above it are treated as
// singular
const condLimit = 1. / eps

// SparseLU is Gaussian elimination with partial pivoting on the rows of K,
// storing only the nonzeros of the factors. Columns are eliminated in natural
// order, so the fill follows the node numbering of the mesh.
type SparseLU struct {
	opts Options
	cond float64
	fill int
}

func (s *SparseLU) Name() string { return "lu" }

// Cond is max|pivot| / min|pivot| of the last factorization, a lower bound
// on the condition number
func (s *SparseLU) Cond() float64 { return s.cond }

// Fill is the number of nonzeros in L and U of the last factorization
func (s *SparseLU) Fill() int { return s.fill }

// sparseRow is a factor row with ascending column indices
type sparseRow struct {
	ind []int
	val []float64
}

func newSparseRow(m map[int]float64) (r sparseRow) {
	r.ind = make([]int, 0, len(m))
	for j := range m {
		r.ind = append(r.ind, j)
	}
	sort.Ints(r.ind)
	r.val = make([]float64, len(r.ind))
	for k, j := range r.ind {
		r.val[k] = m[j]
	}
	return
}

func (s *SparseLU) Solve(K utils.CSR, F []float64) (T []float64, err error) {
	var (
		N     int
		start = time.Now()
	)
	s.cond, s.fill = 0, 0
	if N, err = checkSystem(K, F); err != nil {
		return
	}
	var (
		rows    = make([]map[int]float64, N)  // Active rows, indexed by original row
		colRows = make([]map[int]struct{}, N) // Unpivoted rows with a nonzero in each column
		factors = make([]map[int]float64, N)  // Multipliers of each original row, keyed by step
		perm    = make([]int, N)              // Original row pivoted at each step
		L, U    = make([]sparseRow, N), make([]sparseRow, N)
		normInf float64
	)
	for j := range colRows {
		colRows[j] = make(map[int]struct{})
	}
	for i := 0; i < N; i++ {
		rows[i] = make(map[int]float64)
		factors[i] = make(map[int]float64)
		var rowSum float64
		K.DoRowNonZero(i, func(i, j int, v float64) {
			if v != 0 {
				rows[i][j] = v
				colRows[j][i] = struct{}{}
				rowSum += math.Abs(v)
			}
		})
		normInf = math.Max(normInf, rowSum)
	}
	var (
		pivotTol           = float64(N) * eps * normInf
		minPivot, maxPivot = math.Inf(1), 0.
	)
	for k := 0; k < N; k++ {
		// Largest magnitude in column k, ties go to the lowest row
		p, pv := -1, 0.
		for i := range colRows[k] {
			if v := math.Abs(rows[i][k]); v > pv || (v == pv && p >= 0 && i < p) {
				p, pv = i, v
			}
		}
		if p < 0 || pv <= pivotTol {
			err = types.NewNumericalError("matrix is singular to working precision, pivot %g in column %d", pv, k)
			return
		}
		minPivot, maxPivot = math.Min(minPivot, pv), math.Max(maxPivot, pv)
		perm[k] = p
		pivotRow := rows[p]
		for j := range pivotRow {
			delete(colRows[j], p)
		}
		piv := pivotRow[k]
		for i := range colRows[k] {
			factor := rows[i][k] / piv
			factors[i][k] = factor
			delete(rows[i], k)
			for j, v := range pivotRow {
				if j == k {
					continue
				}
				if _, ok := rows[i][j]; !ok {
					colRows[j][i] = struct{}{}
				}
				rows[i][j] -= factor * v
			}
		}
		colRows[k] = nil
		L[k], U[k] = newSparseRow(factors[p]), newSparseRow(pivotRow)
		rows[p], factors[p] = nil, nil
		s.fill += len(L[k].ind) + len(U[k].ind)
	}
	s.cond = maxPivot / minPivot
	if s.cond >= condLimit {
		err = types.NewNumericalError("matrix is ill conditioned, pivot ratio %g", s.cond)
		return
	}
	// L y = P F, multipliers of step k are keyed by the earlier steps
	y := make([]float64, N)
	for k := 0; k < N; k++ {
		sum := F[perm[k]]
		for n, j := range L[k].ind {
			sum -= L[k].val[n] * y[j]
		}
		y[k] = sum
	}
	// U T = y
	T = make([]float64, N)
	for k := N - 1; k >= 0; k-- {
		var (
			sum  = y[k]
			diag float64
		)
		for n, j := range U[k].ind {
			if j == k {
				diag = U[k].val[n]
				continue
			}
			sum -= U[k].val[n] * T[j]
		}
		T[k] = sum / diag
	}
	if err = checkSolution(T); err != nil {
		T = nil
		return
	}
	logf(s.opts, " * Solved %d equations by sparse LU in %v, nnz(K) = %d, nnz(L+U) = %d\n",
		N, time.Since(start), K.NNZ(), s.fill)
	return
}
