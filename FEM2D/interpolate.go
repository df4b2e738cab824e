package FEM2D

import (
	"math"
)

const (
	invMapTol = 1.0e-10
	invMapNit = 25
	insideTol = 1.0e-8
)

// InverseMap finds the reference coordinates of (x,y) in an element by
// Newton iteration on the isoparametric map, starting at the centroid
func (sf ShapeFunctions) InverseMap(coords [][2]float64, x, y float64) (xi, eta float64, ok bool) {
	var (
		nen    = sf.Nen
		N      = make([]float64, nen)
		dNdXi  = make([]float64, nen)
		dNdEta = make([]float64, nen)
	)
	xi, eta = sf.Centroid()
	for it := 0; it < invMapNit; it++ {
		sf.Eval(xi, eta, N, dNdXi, dNdEta)
		var ex, ey, j11, j12, j21, j22 float64
		ex, ey = x, y
		for i := 0; i < nen; i++ {
			ex -= N[i] * coords[i][0]
			ey -= N[i] * coords[i][1]
			j11 += dNdXi[i] * coords[i][0]
			j12 += dNdEta[i] * coords[i][0]
			j21 += dNdXi[i] * coords[i][1]
			j22 += dNdEta[i] * coords[i][1]
		}
		det := j11*j22 - j12*j21
		if det == 0 {
			return
		}
		dXi := (j22*ex - j12*ey) / det
		dEta := (-j21*ex + j11*ey) / det
		xi, eta = xi+dXi, eta+dEta
		if math.Hypot(dXi, dEta) < invMapTol {
			ok = true
			return
		}
	}
	return
}

type bbox struct {
	xmin, xmax, ymin, ymax float64
}

func (b bbox) contains(x, y float64) bool {
	return x >= b.xmin && x <= b.xmax && y >= b.ymin && y <= b.ymax
}

// Locator finds the element containing a point
type Locator struct {
	p     *Problem
	boxes []bbox
}

func NewLocator(p *Problem) (loc *Locator) {
	loc = &Locator{p: p, boxes: make([]bbox, p.NE())}
	for k := range p.Mesh.LtoG {
		b := bbox{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
		for _, c := range p.Mesh.ElementCoords(k) {
			b.xmin, b.xmax = math.Min(b.xmin, c[0]), math.Max(b.xmax, c[0])
			b.ymin, b.ymax = math.Min(b.ymin, c[1]), math.Max(b.ymax, c[1])
		}
		pad := insideTol * math.Max(1, math.Max(b.xmax-b.xmin, b.ymax-b.ymin))
		b.xmin, b.xmax, b.ymin, b.ymax = b.xmin-pad, b.xmax+pad, b.ymin-pad, b.ymax+pad
		loc.boxes[k] = b
	}
	return
}

// Locate returns the first element containing (x,y) with its reference
// coordinates, k is -1 for a point outside the mesh
func (loc *Locator) Locate(x, y float64) (k int, xi, eta float64) {
	sf := loc.p.Shape
	for k = range loc.boxes {
		if !loc.boxes[k].contains(x, y) {
			continue
		}
		var ok bool
		if xi, eta, ok = sf.InverseMap(loc.p.Mesh.ElementCoords(k), x, y); ok && sf.Inside(xi, eta, insideTol) {
			return
		}
	}
	return -1, 0, 0
}

// Interpolate evaluates the finite element field T at (x,y) with the shape
// functions of the containing element, NaN outside the mesh
func (loc *Locator) Interpolate(T []float64, x, y float64) (val float64) {
	k, xi, eta := loc.Locate(x, y)
	if k < 0 {
		return math.NaN()
	}
	var (
		nen    = loc.p.Shape.Nen
		N      = make([]float64, nen)
		dNdXi  = make([]float64, nen)
		dNdEta = make([]float64, nen)
	)
	loc.p.Shape.Eval(xi, eta, N, dNdXi, dNdEta)
	for i, g := range loc.p.Mesh.LtoG[k] {
		val += N[i] * T[g]
	}
	return
}
