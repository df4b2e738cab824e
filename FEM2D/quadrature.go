package FEM2D

import (
	"math"

	"github.com/notargets/gofem2d/types"
)

type GaussPoint struct {
	Xi, Eta, W float64
}

type QuadratureRule []GaussPoint

var (
	gl2 = math.Sqrt(1. / 3.)
	gl3 = math.Sqrt(3. / 5.)
)

// Gauss-Legendre weights of the 4 point rule as tabulated, variables so the
// 16 point products are rounded from the ten digit values
var (
	gw4a, gw4b = 0.3478548451, 0.6521451548
)

// Quad rules list xi fastest, then eta
var quadratureTables = map[Shape]map[int]QuadratureRule{
	Quadrilateral: {
		1: {{0., 0., 4.}},
		4: {
			{-gl2, -gl2, 1.},
			{gl2, -gl2, 1.},
			{-gl2, gl2, 1.},
			{gl2, gl2, 1.},
		},
		9: {
			{-gl3, -gl3, 25. / 81.},
			{0., -gl3, 40. / 81.},
			{gl3, -gl3, 25. / 81.},
			{-gl3, 0., 40. / 81.},
			{0., 0., 64. / 81.},
			{gl3, 0., 40. / 81.},
			{-gl3, gl3, 25. / 81.},
			{0., gl3, 40. / 81.},
			{gl3, gl3, 25. / 81.},
		},
		16: {
			{-0.8611363116, -0.8611363116, gw4a * gw4a},
			{-0.3399810435, -0.8611363116, gw4a * gw4b},
			{0.3399810435, -0.8611363116, gw4a * gw4b},
			{0.8611363116, -0.8611363116, gw4a * gw4a},
			{-0.8611363116, -0.3399810435, gw4b * gw4a},
			{-0.3399810435, -0.3399810435, gw4b * gw4b},
			{0.3399810435, -0.3399810435, gw4b * gw4b},
			{0.8611363116, -0.3399810435, gw4b * gw4a},
			{-0.8611363116, 0.3399810435, gw4b * gw4a},
			{-0.3399810435, 0.3399810435, gw4b * gw4b},
			{0.3399810435, 0.3399810435, gw4b * gw4b},
			{0.8611363116, 0.3399810435, gw4b * gw4a},
			{-0.8611363116, 0.8611363116, gw4a * gw4a},
			{-0.3399810435, 0.8611363116, gw4a * gw4b},
			{0.3399810435, 0.8611363116, gw4a * gw4b},
			{0.8611363116, 0.8611363116, gw4a * gw4a},
		},
	},
	Triangle: {
		1: {{1. / 3., 1. / 3., 0.5}},
		3: {
			{0.5, 0, 1. / 6.},
			{0, 0.5, 1. / 6.},
			{0.5, 0.5, 1. / 6.},
		},
		4: {
			{1. / 3., 1. / 3., -27. / 96.},
			{0.6, 0.2, 25. / 96.},
			{0.2, 0.6, 25. / 96.},
			{0.2, 0.2, 25. / 96.},
		},
		7: {
			{1. / 3., 1. / 3., 0.225 / 2.},
			{0.059715871789770, 0.470142064105115, 0.132394152788 / 2.},
			{0.470142064105115, 0.059715871789770, 0.132394152788 / 2.},
			{0.470142064105115, 0.470142064105115, 0.132394152788 / 2.},
			{0.101286507323456, 0.797426985353087, 0.125939180544 / 2.},
			{0.101286507323456, 0.101286507323456, 0.125939180544 / 2.},
			{0.797426985353087, 0.101286507323456, 0.125939180544 / 2.},
		},
	},
}

// NewQuadratureRule returns a copy of the tabulated rule, triangles support
// 1, 3, 4 and 7 points and quads 1, 4, 9 and 16
func NewQuadratureRule(shape Shape, ngp int) (qr QuadratureRule, err error) {
	table, ok := quadratureTables[shape][ngp]
	if !ok {
		err = types.NewConfigurationError("no %d point quadrature rule for %s elements", ngp, shape)
		return
	}
	qr = make(QuadratureRule, len(table))
	copy(qr, table)
	return
}

func (qr QuadratureRule) WeightSum() (sum float64) {
	for _, gp := range qr {
		sum += gp.W
	}
	return
}

// ReferenceArea is the area of the reference element, which every rule's
// weights sum to
func ReferenceArea(shape Shape) float64 {
	if shape == Quadrilateral {
		return 4
	}
	return 0.5
}
