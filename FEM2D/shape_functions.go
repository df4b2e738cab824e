package FEM2D

import (
	"github.com/notargets/gofem2d/types"
)

// ShapeFunc fills the values and the local derivatives of every element shape
// function at (xi,eta)
type ShapeFunc func(xi, eta float64, N, dNdXi, dNdEta []float64)

type ShapeFunctions struct {
	Type      ElementType
	Nen       int
	NatCoords [][2]float64 // Reference coordinates of each local node
	eval      ShapeFunc
}

var shapeFactory = map[ElementType]ShapeFunctions{
	Tri3: {
		Type: Tri3, Nen: 3, eval: tri3,
		NatCoords: [][2]float64{{0, 0}, {1, 0}, {0, 1}},
	},
	Tri6: {
		Type: Tri6, Nen: 6, eval: tri6,
		NatCoords: [][2]float64{{0, 0}, {1, 0}, {0, 1}, {0.5, 0}, {0.5, 0.5}, {0, 0.5}},
	},
	Quad4: {
		Type: Quad4, Nen: 4, eval: quad4,
		NatCoords: [][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}},
	},
	Quad9: {
		Type: Quad9, Nen: 9, eval: quad9,
		NatCoords: [][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1},
			{0, -1}, {1, 0}, {0, 1}, {-1, 0}, {0, 0}},
	},
}

func NewShapeFunctions(et ElementType) (sf ShapeFunctions, err error) {
	var ok bool
	if sf, ok = shapeFactory[et]; !ok {
		err = types.NewConfigurationError("no shape functions for element type %v", et)
	}
	return
}

// Eval is pure, N, dNdXi and dNdEta must have length Nen
func (sf ShapeFunctions) Eval(xi, eta float64, N, dNdXi, dNdEta []float64) {
	sf.eval(xi, eta, N, dNdXi, dNdEta)
}

// Inside reports whether (xi,eta) lies in the reference element, within tol
func (sf ShapeFunctions) Inside(xi, eta, tol float64) bool {
	if sf.Type.Shape == Triangle {
		return xi >= -tol && eta >= -tol && xi+eta <= 1+tol
	}
	return xi >= -1-tol && xi <= 1+tol && eta >= -1-tol && eta <= 1+tol
}

// Centroid of the reference element
func (sf ShapeFunctions) Centroid() (xi, eta float64) {
	if sf.Type.Shape == Triangle {
		return 1. / 3., 1. / 3.
	}
	return 0, 0
}

func tri3(xi, eta float64, N, dNdXi, dNdEta []float64) {
	N[0], N[1], N[2] = 1-xi-eta, xi, eta
	dNdXi[0], dNdXi[1], dNdXi[2] = -1, 1, 0
	dNdEta[0], dNdEta[1], dNdEta[2] = -1, 0, 1
}

// tri6 node order is the corners (0,0), (1,0), (0,1), then the mid sides of
// edges 0-1, 1-2 and 2-0
func tri6(xi, eta float64, N, dNdXi, dNdEta []float64) {
	L := 1 - xi - eta
	N[0] = L * (2*L - 1)
	N[1] = xi * (2*xi - 1)
	N[2] = eta * (2*eta - 1)
	N[3] = 4 * xi * L
	N[4] = 4 * xi * eta
	N[5] = 4 * eta * L

	dNdXi[0] = 1 - 4*L
	dNdXi[1] = 4*xi - 1
	dNdXi[2] = 0
	dNdXi[3] = 4 * (L - xi)
	dNdXi[4] = 4 * eta
	dNdXi[5] = -4 * eta

	dNdEta[0] = 1 - 4*L
	dNdEta[1] = 0
	dNdEta[2] = 4*eta - 1
	dNdEta[3] = -4 * xi
	dNdEta[4] = 4 * xi
	dNdEta[5] = 4 * (L - eta)
}

// quad4 node order is counter clockwise from (-1,-1)
func quad4(xi, eta float64, N, dNdXi, dNdEta []float64) {
	N[0] = 0.25 * (1 - xi) * (1 - eta)
	N[1] = 0.25 * (1 + xi) * (1 - eta)
	N[2] = 0.25 * (1 + xi) * (1 + eta)
	N[3] = 0.25 * (1 - xi) * (1 + eta)

	dNdXi[0] = -0.25 * (1 - eta)
	dNdXi[1] = 0.25 * (1 - eta)
	dNdXi[2] = 0.25 * (1 + eta)
	dNdXi[3] = -0.25 * (1 + eta)

	dNdEta[0] = -0.25 * (1 - xi)
	dNdEta[1] = -0.25 * (1 + xi)
	dNdEta[2] = 0.25 * (1 + xi)
	dNdEta[3] = 0.25 * (1 - xi)
}

// lagrange3 holds the 1D quadratic Lagrange polynomials on the nodes -1, 0, 1
// and their derivatives
func lagrange3(t float64) (l, dl [3]float64) {
	l = [3]float64{0.5 * (t*t - t), 1 - t*t, 0.5 * (t*t + t)}
	dl = [3]float64{t - 0.5, -2 * t, t + 0.5}
	return
}

// quad9Index maps each local node to its (xi, eta) position in the 1D node
// sets: corners, mid sides bottom, right, top, left, then the centre
var quad9Index = [9][2]int{
	{0, 0}, {2, 0}, {2, 2}, {0, 2},
	{1, 0}, {2, 1}, {1, 2}, {0, 1},
	{1, 1},
}

func quad9(xi, eta float64, N, dNdXi, dNdEta []float64) {
	lx, dlx := lagrange3(xi)
	ly, dly := lagrange3(eta)
	for k, ij := range quad9Index {
		i, j := ij[0], ij[1]
		N[k] = lx[i] * ly[j]
		dNdXi[k] = dlx[i] * ly[j]
		dNdEta[k] = lx[i] * dly[j]
	}
}
