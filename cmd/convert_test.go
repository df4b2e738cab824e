package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gofem2d/InputParameters"
	"github.com/notargets/gofem2d/readfiles"
	"github.com/notargets/gofem2d/types"
)

var twoTrianglesInp = []byte(`Two triangles
eType   NE   NN   NEN   NGP
2       2    4    3     3
a  V1  V2  c  f  exactSoln
1
?
?
0
1.0
?
Node#   x    y
1   0.0  0.0
2   1.0  0.0
3   1.0  1.0
4   0.0  1.0
Elem#   node1   node2   node3
1   1   2   3
2   1   3   4
nBCdata
3
1  0.0
2  2.5
3  1.0  0.5
nEBCnodes   nNBCfaces   nMBCfaces
2   1   1
EBC Data (Node BCno)
1   1
4   1
NBC Data (Elem Face BCno)
1   2   2
MBC Data (Elem Face BCno)
2   2   3
`)

func TestConvertInp(t *testing.T) {
	dir := t.TempDir()
	inputFile := filepath.Join(dir, "twoTriangles.inp")
	require.NoError(t, os.WriteFile(inputFile, twoTrianglesInp, 0644))
	want, err := readfiles.ReadInp(bytes.NewReader(twoTrianglesInp))
	require.NoError(t, err)
	{ // JSON next to the input by default, and it reads back to the same problem
		written, err := ConvertInp(inputFile, "", false)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "twoTriangles.json"), written)
		data, err := os.ReadFile(written)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("{")))
		var got InputParameters.InputParametersAD2D
		require.NoError(t, got.Parse(data))
		assert.Equal(t, *want, got)

		// The converted file solves like any other problem file
		m2d := &Model2D{InputFile: written, SolverName: "lu", ParallelDegree: 1}
		require.NoError(t, Run2D(m2d))
		_, err = os.Stat(filepath.Join(dir, "twoTriangles_output.json"))
		assert.NoError(t, err)
	}
	{ // YAML by extension
		written, err := ConvertInp(inputFile, filepath.Join(dir, "problem.yml"), true)
		require.NoError(t, err)
		data, err := os.ReadFile(written)
		require.NoError(t, err)
		assert.False(t, bytes.HasPrefix(data, []byte("{")))
		var got InputParameters.InputParametersAD2D
		require.NoError(t, got.Parse(data))
		assert.Equal(t, *want, got)
	}
	{
		_, err := ConvertInp(filepath.Join(dir, "missing.inp"), "", false)
		assert.True(t, errors.Is(err, types.ErrInput))
	}
}
