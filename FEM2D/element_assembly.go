package FEM2D

import (
	"github.com/notargets/gofem2d/functions"
	"github.com/notargets/gofem2d/types"
	"github.com/notargets/gofem2d/utils"
)

// CalcElement integrates the element stiffness Ke and load Fe of
//
//	-div(a grad T) + V.grad T + c T = f
//
// over one element with the given quadrature rule. coords holds the (x,y) of
// each local node. A non positive Jacobian determinant at any quadrature point
// is a geometry error, the caller attaches the element index.
func CalcElement(coords [][2]float64, coef *functions.CoefficientFunctions, sf ShapeFunctions,
	rule QuadratureRule) (Ke utils.Matrix, Fe []float64, err error) {
	var (
		nen    = sf.Nen
		N      = make([]float64, nen)
		dNdXi  = make([]float64, nen)
		dNdEta = make([]float64, nen)
		DS     = utils.NewMatrix(2, nen, make([]float64, 2*nen))
		X      = utils.NewMatrix(nen, 2)
		dNdx   = make([]float64, nen)
		dNdy   = make([]float64, nen)
	)
	if len(coords) != nen {
		err = types.NewInputError("element has %d coordinates, %v needs %d", len(coords), sf.Type, nen)
		return
	}
	for i, c := range coords {
		X.Set(i, 0, c[0])
		X.Set(i, 1, c[1])
	}
	Ke = utils.NewMatrix(nen, nen)
	Fe = make([]float64, nen)
	KeData := Ke.Data()
	for q, gp := range rule {
		sf.Eval(gp.Xi, gp.Eta, N, dNdXi, dNdEta)
		for i := 0; i < nen; i++ {
			DS.Set(0, i, dNdXi[i])
			DS.Set(1, i, dNdEta[i])
		}
		// J = | dx/dxi  dy/dxi  |
		//     | dx/deta dy/deta |
		J := DS.Mul(X)
		detJ := J.Det()
		if detJ <= 0 {
			err = types.NewGeometryError("non positive Jacobian determinant %g at quadrature point %d", detJ, q)
			return
		}
		var Jinv utils.Matrix
		if Jinv, err = J.Inverse(); err != nil {
			err = types.NewGeometryError("singular Jacobian at quadrature point %d: %v", q, err)
			return
		}
		gDS := Jinv.Mul(DS)
		var x, y float64
		for i := 0; i < nen; i++ {
			x += N[i] * coords[i][0]
			y += N[i] * coords[i][1]
			dNdx[i], dNdy[i] = gDS.At(0, i), gDS.At(1, i)
		}
		var (
			a   = coef.A.Evaluate(x, y)
			V1  = coef.V1.Evaluate(x, y)
			V2  = coef.V2.Evaluate(x, y)
			c   = coef.C.Evaluate(x, y)
			f   = coef.F.Evaluate(x, y)
			wdJ = detJ * gp.W
		)
		for i := 0; i < nen; i++ {
			Fe[i] += N[i] * f * wdJ
			for j := 0; j < nen; j++ {
				KeData[i*nen+j] += (a*(dNdx[i]*dNdx[j]+dNdy[i]*dNdy[j]) +
					N[i]*(V1*dNdx[j]+V2*dNdy[j]) +
					c*N[i]*N[j]) * wdJ
			}
		}
	}
	return
}
