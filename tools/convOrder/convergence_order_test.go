package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	input := `title,NN,NE,NGP,hmax,RMS,MAX
square,81,128,3,0.125,2.5e-04,1.0e-03
square,25,32,3,0.5,4.0e-03,1.6e-02
square,9,8,3,1.0,1.6e-02,6.4e-02
square,25,32,7,0.5,1.0e-03,2.0e-03
square,9,8,7,1.0,8.0e-03,1.6e-02
`
	studies, keys, err := readCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"square3", "square7"}, keys)
	{ // Second order study, rows given out of order
		cs := studies["square3"]
		rmsOrder, maxOrder := cs.Orders()
		assert.Equal(t, []float64{1.0, 0.5, 0.125}, cs.hmax)
		assert.Equal(t, []int{9, 25, 81}, cs.NN)
		assert.InDeltaSlice(t, []float64{2, 2}, rmsOrder, 1e-12)
		assert.InDeltaSlice(t, []float64{2, 2}, maxOrder, 1e-12)
		cs.Print()
	}
	{
		rmsOrder, maxOrder := studies["square7"].Orders()
		assert.InDeltaSlice(t, []float64{3}, rmsOrder, 1e-12)
		assert.InDeltaSlice(t, []float64{3}, maxOrder, 1e-12)
	}
	{
		_, _, err = readCSV(strings.NewReader("title,NN,NE,NGP,hmax,RMS,MAX\nsquare,9,8,3,1.0,bad,0.1\n"))
		assert.Error(t, err)
	}
}
