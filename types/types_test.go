package types

import (
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypes(t *testing.T) {
	{ // Test packed int for edge labeling
		en := NewEdgeKey([2]int{1, 0})
		assert.Equal(t, EdgeKey(1<<32), en)
		assert.Equal(t, [2]int{0, 1}, en.GetVertices(false))

		en = NewEdgeKey([2]int{0, 1})
		assert.Equal(t, EdgeKey(1<<32), en)
		assert.Equal(t, [2]int{0, 1}, en.GetVertices(false))

		en = NewEdgeKey([2]int{100, 1})
		assert.Equal(t, EdgeKey(100*(1<<32)+1), en)
		assert.Equal(t, [2]int{1, 100}, en.GetVertices(false))
		assert.Equal(t, [2]int{100, 1}, en.GetVertices(true))
	}
	{ // Two triangles sharing the diagonal of a unit square
		ec := make(EdgeCount)
		for _, tri := range [][3]int{{0, 1, 2}, {0, 2, 3}} {
			for f := 0; f < 3; f++ {
				ec.Add([2]int{tri[f], tri[(f+1)%3]})
			}
		}
		assert.False(t, ec.IsBoundary([2]int{2, 0}))
		assert.True(t, ec.IsBoundary([2]int{1, 2}))
		keys := ec.BoundaryKeys()
		assert.Equal(t, 4, len(keys))
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		assert.Equal(t, [2]int{0, 1}, keys[0].GetVertices(false))
	}
}

func TestBCFLAG(t *testing.T) {
	assert.Equal(t, "EBC", BC_Essential.String())
	assert.Equal(t, "NBC", BC_Natural.String())
	assert.Equal(t, "MBC", BC_Mixed.String())
	assert.Equal(t, "None", BC_None.String())
}

func TestErrorKinds(t *testing.T) {
	err := NewInputError("element %d out of range", 7)
	assert.True(t, errors.Is(err, ErrInput))
	assert.False(t, errors.Is(err, ErrGeometry))
	assert.Equal(t, "input error: element 7 out of range", err.Error())

	err = fmt.Errorf("assembly: %w", NewGeometryError("detJ = %g", -1.))
	assert.True(t, errors.Is(err, ErrGeometry))

	err = NewNumericalError("matrix is singular")
	assert.True(t, errors.Is(err, ErrNumerical))
	assert.Equal(t, "numerical error: solve phase: matrix is singular", err.Error())
}
