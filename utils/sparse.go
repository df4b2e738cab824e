package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"github.com/james-bowman/sparse/blas"
	"gonum.org/v1/gonum/mat"
)

// DOK is the insertion format, a hash map keyed by (i,j), used while element
// contributions are being scattered.
type DOK struct {
	M        *sparse.DOK
	readOnly bool
	name     string
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{
		sparse.NewDOK(nr, nc),
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix       { return m.M.T() }
func (m DOK) NNZ() int            { return m.M.NNZ() }

func (m *DOK) SetReadOnly(name ...string) DOK {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

// Add accumulates val into entry (i,j), never overwriting what is there
func (m DOK) Add(i, j int, val float64) { // Changes receiver
	m.checkWritable()
	m.checkBounds(i, j)
	m.M.Set(i, j, m.M.At(i, j)+val)
}

func (m DOK) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}

func (m DOK) checkBounds(i, j int) {
	nr, nc := m.Dims()
	if i < 0 || i >= nr || j < 0 || j >= nc {
		panic(fmt.Errorf("index out of bounds: (%d,%d) for matrix %dx%d", i, j, nr, nc))
	}
}

func (m DOK) ToCSR() CSR {
	return CSR{
		M:        m.M.ToCSR(),
		readOnly: m.readOnly,
		name:     m.name,
	}
}

// CSR is the compressed row format, used for row replacement by the boundary
// conditions and handed to the linear solvers.
type CSR struct {
	M        *sparse.CSR
	readOnly bool
	name     string
}

// NewCSRFromDense is used by tests and small problems to build a compressed
// matrix from a row-major data slice, zeros are not stored
func NewCSRFromDense(nr, nc int, data []float64) (R CSR) {
	dok := NewDOK(nr, nc)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			if val := data[i*nc+j]; val != 0 {
				dok.M.Set(i, j, val)
			}
		}
	}
	R = dok.ToCSR()
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m CSR) Dims() (r, c int)              { return m.M.Dims() }
func (m CSR) At(i, j int) float64           { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix                 { return m.M.T() }
func (m CSR) RawMatrix() *blas.SparseMatrix { return m.M.RawMatrix() }
func (m CSR) NNZ() int                      { return m.M.NNZ() }
func (m CSR) Data() []float64 {
	return m.RawMatrix().Data
}

func (m *CSR) SetReadOnly(name ...string) CSR {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

func (m CSR) Set(i, j int, val float64) { // Changes receiver
	m.checkWritable()
	m.M.Set(i, j, val)
}

func (m CSR) AddAt(i, j int, val float64) { // Changes receiver
	m.checkWritable()
	m.M.Set(i, j, m.M.At(i, j)+val)
}

// DoRowNonZero calls fn for every stored entry of row i
func (m CSR) DoRowNonZero(i int, fn func(i, j int, v float64)) {
	raw := m.RawMatrix()
	for k := raw.Indptr[i]; k < raw.Indptr[i+1]; k++ {
		fn(i, raw.Ind[k], raw.Data[k])
	}
}

// ZeroRow clears every stored value of row i, the sparsity pattern is kept
func (m CSR) ZeroRow(i int) { // Changes receiver
	m.checkWritable()
	raw := m.RawMatrix()
	for k := raw.Indptr[i]; k < raw.Indptr[i+1]; k++ {
		raw.Data[k] = 0
	}
}

func (m CSR) Diagonal() (diag []float64) {
	var (
		nr, _ = m.Dims()
	)
	diag = make([]float64, nr)
	for i := 0; i < nr; i++ {
		m.DoRowNonZero(i, func(i, j int, v float64) {
			if i == j {
				diag[i] = v
			}
		})
	}
	return
}

// MulVec computes dst = M*x
func (m CSR) MulVec(dst, x []float64) {
	for i := range dst {
		dst[i] = 0
	}
	// MulVecTo accumulates into dst
	m.M.MulVecTo(dst, false, x)
}

func (m CSR) ToDense() *mat.Dense {
	return m.M.ToDense()
}

func (m CSR) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}
