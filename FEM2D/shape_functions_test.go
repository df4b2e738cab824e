package FEM2D

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gofem2d/types"
)

func TestElementType(t *testing.T) {
	{
		et, err := NewElementType(Triangle, 6)
		require.NoError(t, err)
		assert.Equal(t, Tri6, et)
		assert.Equal(t, 6, et.NEN())
		assert.Equal(t, "tri6 (quadratic)", et.String())
		et, err = NewElementType(Quadrilateral, 4)
		require.NoError(t, err)
		assert.Equal(t, Quad4, et)
	}
	{
		_, err := NewElementType(Quadrilateral, 8)
		assert.True(t, errors.Is(err, types.ErrConfiguration))
		_, err = NewElementType(Triangle, 4)
		assert.True(t, errors.Is(err, types.ErrConfiguration))
	}
	{
		s, err := NewShape("1")
		require.NoError(t, err)
		assert.Equal(t, Quadrilateral, s)
		s, err = NewShape(" Tri ")
		require.NoError(t, err)
		assert.Equal(t, Triangle, s)
		assert.Equal(t, 2, s.Code())
		_, err = NewShape("hex")
		assert.True(t, errors.Is(err, types.ErrConfiguration))
	}
}

func TestQuadrature(t *testing.T) {
	{
		for _, ngp := range []int{1, 3, 4, 7} {
			qr, err := NewQuadratureRule(Triangle, ngp)
			require.NoError(t, err)
			assert.Equal(t, ngp, len(qr))
			assert.InDelta(t, 0.5, qr.WeightSum(), 1e-10)
		}
		for _, ngp := range []int{1, 4, 9} {
			qr, err := NewQuadratureRule(Quadrilateral, ngp)
			require.NoError(t, err)
			assert.Equal(t, ngp, len(qr))
			assert.InDelta(t, 4.0, qr.WeightSum(), 1e-10)
		}
		// The 16 point weights are tabulated to ten digits
		qr, err := NewQuadratureRule(Quadrilateral, 16)
		require.NoError(t, err)
		assert.InDelta(t, 4.0, qr.WeightSum(), 1e-9)
	}
	{ // Tabulated values, xi fastest
		var (
			g3     = math.Sqrt(3. / 5.)
			a, b   = 0.3478548451, 0.6521451548
			p1, p2 = 0.8611363116, 0.3399810435
		)
		qr, _ := NewQuadratureRule(Quadrilateral, 9)
		assert.Equal(t, QuadratureRule{
			{-g3, -g3, 25. / 81.}, {0., -g3, 40. / 81.}, {g3, -g3, 25. / 81.},
			{-g3, 0., 40. / 81.}, {0., 0., 64. / 81.}, {g3, 0., 40. / 81.},
			{-g3, g3, 25. / 81.}, {0., g3, 40. / 81.}, {g3, g3, 25. / 81.},
		}, qr)
		assert.Equal(t, 0.30864197530864196, qr[0].W)
		qr, _ = NewQuadratureRule(Quadrilateral, 16)
		assert.Equal(t, QuadratureRule{
			{-p1, -p1, a * a}, {-p2, -p1, a * b}, {p2, -p1, a * b}, {p1, -p1, a * a},
			{-p1, -p2, b * a}, {-p2, -p2, b * b}, {p2, -p2, b * b}, {p1, -p2, b * a},
			{-p1, p2, b * a}, {-p2, p2, b * b}, {p2, p2, b * b}, {p1, p2, b * a},
			{-p1, p1, a * a}, {-p2, p1, a * b}, {p2, p1, a * b}, {p1, p1, a * a},
		}, qr)
		qr, _ = NewQuadratureRule(Triangle, 7)
		assert.Equal(t, GaussPoint{0.059715871789770, 0.470142064105115, 0.132394152788 / 2.}, qr[1])
		assert.Equal(t, GaussPoint{0.797426985353087, 0.101286507323456, 0.125939180544 / 2.}, qr[6])
		qr, _ = NewQuadratureRule(Triangle, 4)
		assert.Equal(t, -27./96., qr[0].W)
	}
	{ // Unsupported counts
		_, err := NewQuadratureRule(Triangle, 9)
		assert.True(t, errors.Is(err, types.ErrConfiguration))
		_, err = NewQuadratureRule(Quadrilateral, 3)
		assert.True(t, errors.Is(err, types.ErrConfiguration))
	}
	{ // Callers get a copy of the table
		qr, _ := NewQuadratureRule(Triangle, 1)
		qr[0].W = 100
		qr2, _ := NewQuadratureRule(Triangle, 1)
		assert.Equal(t, 0.5, qr2[0].W)
	}
	{ // Exactness: integrate x^2 y over the reference triangle, = 1/60
		for _, ngp := range []int{4, 7} {
			qr, _ := NewQuadratureRule(Triangle, ngp)
			var sum float64
			for _, gp := range qr {
				sum += gp.W * gp.Xi * gp.Xi * gp.Eta
			}
			assert.InDelta(t, 1./60., sum, 1e-9)
		}
		// and x^2 y^2 over [-1,1]^2, = 4/9
		qr, _ := NewQuadratureRule(Quadrilateral, 9)
		var sum float64
		for _, gp := range qr {
			sum += gp.W * gp.Xi * gp.Xi * gp.Eta * gp.Eta
		}
		assert.InDelta(t, 4./9., sum, 1e-12)
	}
	assert.Equal(t, 0.5, ReferenceArea(Triangle))
	assert.Equal(t, 4.0, ReferenceArea(Quadrilateral))
}

func TestShapeFunctions(t *testing.T) {
	var (
		h = 1.e-6
	)
	for _, et := range []ElementType{Tri3, Tri6, Quad4, Quad9} {
		sf, err := NewShapeFunctions(et)
		require.NoError(t, err)
		nen := et.NEN()
		assert.Equal(t, nen, sf.Nen)
		assert.Equal(t, nen, len(sf.NatCoords))
		var (
			N, dNdXi, dNdEta = make([]float64, nen), make([]float64, nen), make([]float64, nen)
			Np, Nm, d1, d2   = make([]float64, nen), make([]float64, nen), make([]float64, nen), make([]float64, nen)
		)
		points := [][2]float64{{0.1, 0.2}, {0.25, 0.25}, {0.6, 0.3}, {0, 0}}
		if et.Shape == Quadrilateral {
			points = [][2]float64{{-0.3, 0.7}, {0.5, -0.5}, {0.9, 0.1}, {0, 0}}
		}
		for _, pt := range points {
			sf.Eval(pt[0], pt[1], N, dNdXi, dNdEta)
			var sum, sumXi, sumEta float64
			for i := 0; i < nen; i++ {
				sum += N[i]
				sumXi += dNdXi[i]
				sumEta += dNdEta[i]
			}
			// Partition of unity
			assert.InDelta(t, 1., sum, 1e-12, et.String())
			assert.InDelta(t, 0., sumXi, 1e-12, et.String())
			assert.InDelta(t, 0., sumEta, 1e-12, et.String())
			// Derivatives against central differences
			sf.Eval(pt[0]+h, pt[1], Np, d1, d2)
			sf.Eval(pt[0]-h, pt[1], Nm, d1, d2)
			for i := 0; i < nen; i++ {
				assert.InDelta(t, (Np[i]-Nm[i])/(2*h), dNdXi[i], 1e-6, et.String())
			}
			sf.Eval(pt[0], pt[1]+h, Np, d1, d2)
			sf.Eval(pt[0], pt[1]-h, Nm, d1, d2)
			for i := 0; i < nen; i++ {
				assert.InDelta(t, (Np[i]-Nm[i])/(2*h), dNdEta[i], 1e-6, et.String())
			}
		}
		// Each function is one at its own node and zero at the others
		for k, nc := range sf.NatCoords {
			sf.Eval(nc[0], nc[1], N, dNdXi, dNdEta)
			for i := 0; i < nen; i++ {
				if i == k {
					assert.InDelta(t, 1., N[i], 1e-14)
				} else {
					assert.InDelta(t, 0., N[i], 1e-14)
				}
			}
		}
	}
	{
		_, err := NewShapeFunctions(ElementType{Triangle, Order(3)})
		assert.True(t, errors.Is(err, types.ErrConfiguration))
	}
	{ // Quadratic triangle corner derivatives
		sf, _ := NewShapeFunctions(Tri6)
		N, dNdXi, dNdEta := make([]float64, 6), make([]float64, 6), make([]float64, 6)
		sf.Eval(0, 0, N, dNdXi, dNdEta)
		assert.Equal(t, []float64{-3, -1, 0, 4, 0, 0}, dNdXi)
		assert.Equal(t, []float64{-3, 0, -1, 0, 0, 4}, dNdEta)
	}
	{
		sf, _ := NewShapeFunctions(Quad4)
		assert.True(t, sf.Inside(1, -1, 0))
		assert.False(t, sf.Inside(1.1, 0, 1e-8))
		sf, _ = NewShapeFunctions(Tri3)
		assert.True(t, sf.Inside(0.5, 0.5, 1e-12))
		assert.False(t, sf.Inside(0.6, 0.6, 1e-8))
		xi, eta := sf.Centroid()
		assert.Equal(t, 1./3., xi)
		assert.Equal(t, 1./3., eta)
	}
}
