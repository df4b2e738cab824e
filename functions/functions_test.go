package functions

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gofem2d/types"
)

func TestParseExpression(t *testing.T) {
	eval := func(src string, x, y float64) float64 {
		expr, err := ParseExpression(src)
		require.NoError(t, err, src)
		return expr.Eval(x, y)
	}
	{ // Precedence and associativity
		assert.Equal(t, 7., eval("1+2*3", 0, 0))
		assert.Equal(t, 9., eval("(1+2)*3", 0, 0))
		assert.Equal(t, 2., eval("8/2/2", 0, 0))
		assert.Equal(t, 512., eval("2^3^2", 0, 0))
		assert.Equal(t, 512., eval("2**3**2", 0, 0))
		assert.Equal(t, -4., eval("-x^2", 2, 0))
		assert.Equal(t, 0.5, eval("2^-1", 0, 0))
		assert.Equal(t, 1e-3, eval("1e-3", 0, 0))
		assert.Equal(t, -1., eval("x - y", 2, 3))
		assert.Equal(t, 6., eval("x*y", 2, 3))
	}
	{ // Functions and constants
		assert.InDelta(t, 0., eval("sin(pi)", 0, 0), 1e-15)
		assert.InDelta(t, math.E, eval("exp(1)", 0, 0), 1e-15)
		assert.InDelta(t, 1., eval("log(e)", 0, 0), 1e-15)
		assert.InDelta(t, 3., eval("sqrt(x^2 + y^2)", 3, 0), 1e-15)
		assert.InDelta(t, 8., eval("pow(x, 3)", 2, 0), 1e-15)
		assert.InDelta(t, math.Sin(0.3)*math.Cos(0.7), eval("math.sin(x)*math.cos(y)", 0.3, 0.7), 1e-15)
		assert.InDelta(t, 2.5, eval("abs(-2.5)", 0, 0), 1e-15)
	}
	{ // Constant folding leaves a plain number
		expr, err := ParseExpression("2*pi + 1")
		require.NoError(t, err)
		assert.False(t, HasVariables(expr))
		_, isNumber := expr.(number)
		assert.True(t, isNumber)
		expr, err = ParseExpression("2*pi*x")
		require.NoError(t, err)
		assert.True(t, HasVariables(expr))
	}
	{ // Malformed input is an input error
		for _, src := range []string{"", "1+", "(x", "x)", "foo(x)", "z", "sin(x,y)", "2 $ 3", "pow(x)"} {
			_, err := ParseExpression(src)
			assert.Error(t, err, src)
			assert.True(t, errors.Is(err, types.ErrInput), src)
		}
	}
}

func TestFitters(t *testing.T) {
	var (
		x, y, z []float64
	)
	linear := func(x, y float64) float64 { return 1 + 2*x - 3*y }
	for j := 0; j < 5; j++ {
		for i := 0; i < 5; i++ {
			xx, yy := float64(i)*0.25, float64(j)*0.25
			x, y = append(x, xx), append(y, yy)
			z = append(z, linear(xx, yy)+0.1*math.Sin(3*xx)*math.Cos(2*yy))
		}
	}
	{ // The spline interpolates its samples
		fit, err := ThinPlateFitter{}.Fit(x, y, z)
		require.NoError(t, err)
		for i := range x {
			assert.InDelta(t, z[i], fit.Evaluate(x[i], y[i]), 1e-8)
		}
	}
	{ // and reproduces linear data everywhere
		zl := make([]float64, len(x))
		for i := range x {
			zl[i] = linear(x[i], y[i])
		}
		fit, err := ThinPlateFitter{}.Fit(x, y, zl)
		require.NoError(t, err)
		assert.InDelta(t, linear(0.33, 0.61), fit.Evaluate(0.33, 0.61), 1e-8)
	}
	{ // A cubic fit recovers cubic data
		zc := make([]float64, len(x))
		for i := range x {
			zc[i] = x[i]*x[i]*x[i] - 2*x[i]*y[i] + 0.5
		}
		fit, err := PolynomialFitter{Degree: 3}.Fit(x, y, zc)
		require.NoError(t, err)
		assert.InDelta(t, 0.2*0.2*0.2-2*0.2*0.7+0.5, fit.Evaluate(0.2, 0.7), 1e-10)
	}
	{
		_, err := ThinPlateFitter{}.Fit(x[:2], y[:2], z[:2])
		assert.True(t, errors.Is(err, types.ErrInput))
		_, err = ThinPlateFitter{}.Fit(x, y, z[:3])
		assert.True(t, errors.Is(err, types.ErrInput))
		_, err = NewFitter("spline-of-doom", 0)
		assert.True(t, errors.Is(err, types.ErrConfiguration))
	}
}

func TestCoefficientFunctions(t *testing.T) {
	{
		cf, err := NewCoefficientFunctions(Sources{A: "1", V1: "?", V2: "2*x", C: "", F: "x+y", ExactSoln: "?"}, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, Uniform, cf.A.Kind())
		assert.Equal(t, ClosedForm, cf.V2.Kind())
		assert.Equal(t, Zero, cf.V1.Kind())
		assert.Equal(t, Zero, cf.C.Kind())
		assert.Equal(t, Zero, cf.Exact.Kind())
		assert.Equal(t, 0., cf.V1.Evaluate(3, 4))
		assert.Equal(t, 6., cf.V2.Evaluate(3, 4))
		assert.Equal(t, 7., cf.F.Evaluate(3, 4))
		assert.Equal(t, "0", cf.C.String())
	}
	{ // Expressions free of x and y are folded to one value
		cf, err := NewCoefficientFunctions(Sources{A: "2*pi", C: "sqrt(4) - 2", F: "x"}, &NodalSamples{
			X: []float64{0, 1, 0}, Y: []float64{0, 0, 1}, U: []float64{1, 1, 1}, V: []float64{0, 0, 0},
		}, PolynomialFitter{Degree: 1})
		require.NoError(t, err)
		assert.Equal(t, Uniform, cf.A.Kind())
		assert.Equal(t, 2*math.Pi, cf.A.Evaluate(5, -5))
		assert.Equal(t, Uniform, cf.C.Kind())
		assert.Equal(t, 0., cf.C.Evaluate(1, 1))
		assert.Equal(t, Fitted, cf.F.Kind())
	}
	{ // Fitted coefficients need nodal samples
		_, err := NewCoefficientFunctions(Sources{A: "x"}, nil, nil)
		assert.True(t, errors.Is(err, types.ErrInput))
	}
	{
		samples := &NodalSamples{
			X: []float64{0, 1, 1, 0, 0.5},
			Y: []float64{0, 0, 1, 1, 0.5},
			U: []float64{1, 2, 3, 2, 2},
			V: []float64{0, 0, 0, 0, 0},
		}
		cf, err := NewCoefficientFunctions(Sources{A: "1", V1: "x", V2: "y", F: "x"}, samples, ThinPlateFitter{})
		require.NoError(t, err)
		assert.Equal(t, Fitted, cf.V1.Kind())
		assert.Equal(t, Fitted, cf.F.Kind())
		assert.InDelta(t, 3., cf.V1.Evaluate(1, 1), 1e-9)
		assert.InDelta(t, 0., cf.V2.Evaluate(0.3, 0.2), 1e-9)
		// The U fit is shared
		assert.Equal(t, cf.V1.fit, cf.F.fit)
	}
	{
		_, err := NewCoefficientFunctions(Sources{F: "sin("}, nil, nil)
		assert.True(t, errors.Is(err, types.ErrInput))
		assert.Equal(t, 2.5, Constant(2.5).Evaluate(7, 8))
		assert.Equal(t, "Uniform", Constant(2.5).Kind().String())
	}
}
