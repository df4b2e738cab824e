package functions

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gofem2d/types"
	"github.com/notargets/gofem2d/utils"
)

// Interpolant is a smooth surface fitted to scattered samples
type Interpolant interface {
	Evaluate(x, y float64) float64
}

// Fitter builds an Interpolant from samples z(x,y)
type Fitter interface {
	Fit(x, y, z []float64) (Interpolant, error)
}

// NewFitter returns the fitter registered under name, "" selects the thin
// plate spline
func NewFitter(name string, smoothing float64) (Fitter, error) {
	switch name {
	case "", "tps", "thinplate":
		return ThinPlateFitter{Smoothing: smoothing}, nil
	case "poly", "polynomial":
		return PolynomialFitter{Degree: 3}, nil
	}
	return nil, types.NewConfigurationError("unknown fitter %q, have tps, poly", name)
}

// frame maps coordinates into a unit box around the sample centroid
type frame struct {
	x0, y0, scale float64
}

func newFrame(x, y []float64) (f frame) {
	var (
		xmin, xmax = math.Inf(1), math.Inf(-1)
		ymin, ymax = math.Inf(1), math.Inf(-1)
	)
	for i := range x {
		xmin, xmax = math.Min(xmin, x[i]), math.Max(xmax, x[i])
		ymin, ymax = math.Min(ymin, y[i]), math.Max(ymax, y[i])
	}
	f.x0, f.y0 = 0.5*(xmin+xmax), 0.5*(ymin+ymax)
	f.scale = math.Max(xmax-xmin, ymax-ymin)
	if f.scale < utils.NODETOL {
		f.scale = 1
	}
	return
}

func (f frame) apply(x, y float64) (float64, float64) {
	return (x - f.x0) / f.scale, (y - f.y0) / f.scale
}

func checkSamples(x, y, z []float64, minimum int) error {
	if len(x) != len(y) || len(x) != len(z) {
		return types.NewInputError("sample arrays differ in length: %d, %d, %d", len(x), len(y), len(z))
	}
	if len(x) < minimum {
		return types.NewInputError("need at least %d samples to fit, have %d", minimum, len(x))
	}
	return nil
}

// ThinPlateFitter fits z = Σ wⱼ φ(|p - pⱼ|) + a₀ + a₁x + a₂y with
// φ(r) = r² log r. A Smoothing of zero interpolates the samples exactly.
type ThinPlateFitter struct {
	Smoothing float64
}

type ThinPlateSpline struct {
	frame
	cx, cy, w  []float64
	a0, a1, a2 float64
}

func tpsKernel(r2 float64) float64 {
	if r2 == 0 {
		return 0
	}
	return 0.5 * r2 * math.Log(r2)
}

func (tf ThinPlateFitter) Fit(x, y, z []float64) (Interpolant, error) {
	if err := checkSamples(x, y, z, 3); err != nil {
		return nil, err
	}
	var (
		n   = len(x)
		fr  = newFrame(x, y)
		cx  = make([]float64, n)
		cy  = make([]float64, n)
		A   = mat.NewDense(n+3, n+3, nil)
		rhs = mat.NewVecDense(n+3, nil)
	)
	for i := 0; i < n; i++ {
		cx[i], cy[i] = fr.apply(x[i], y[i])
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			dx, dy := cx[i]-cx[j], cy[i]-cy[j]
			A.Set(i, j, tpsKernel(dx*dx+dy*dy))
		}
		A.Set(i, i, A.At(i, i)+tf.Smoothing)
		A.Set(i, n, 1)
		A.Set(i, n+1, cx[i])
		A.Set(i, n+2, cy[i])
		A.Set(n, i, 1)
		A.Set(n+1, i, cx[i])
		A.Set(n+2, i, cy[i])
		rhs.SetVec(i, z[i])
	}
	var sol mat.VecDense
	if err := solveError(sol.SolveVec(A, rhs)); err != nil {
		return nil, types.NewInputError("unable to fit thin plate spline to %d samples: %v", n, err)
	}
	tps := &ThinPlateSpline{
		frame: fr,
		cx:    cx,
		cy:    cy,
		w:     make([]float64, n),
		a0:    sol.AtVec(n),
		a1:    sol.AtVec(n + 1),
		a2:    sol.AtVec(n + 2),
	}
	for i := range tps.w {
		tps.w[i] = sol.AtVec(i)
	}
	return tps, nil
}

func (tps *ThinPlateSpline) Evaluate(x, y float64) (z float64) {
	x, y = tps.apply(x, y)
	z = tps.a0 + tps.a1*x + tps.a2*y
	for j, w := range tps.w {
		dx, dy := x-tps.cx[j], y-tps.cy[j]
		z += w * tpsKernel(dx*dx+dy*dy)
	}
	return
}

// solveError lets a finite condition number through, the solution is still
// usable as a smooth fit
func solveError(err error) error {
	var cond mat.Condition
	if errors.As(err, &cond) && !math.IsInf(float64(cond), 0) && !math.IsNaN(float64(cond)) {
		return nil
	}
	return err
}

// PolynomialFitter is a least squares fit of the complete polynomial of the
// given degree, used for large sample sets where the dense spline system is
// too costly
type PolynomialFitter struct {
	Degree int
}

type Polynomial struct {
	frame
	degree int
	coeffs []float64
}

func polyTerms(degree int) int { return (degree + 1) * (degree + 2) / 2 }

func polyBasis(degree int, x, y float64, row []float64) {
	var k int
	for d := 0; d <= degree; d++ {
		for j := 0; j <= d; j++ {
			row[k] = math.Pow(x, float64(d-j)) * math.Pow(y, float64(j))
			k++
		}
	}
}

func (pf PolynomialFitter) Fit(x, y, z []float64) (Interpolant, error) {
	if pf.Degree < 0 || pf.Degree > 9 {
		return nil, types.NewConfigurationError("polynomial degree %d", pf.Degree)
	}
	nt := polyTerms(pf.Degree)
	if err := checkSamples(x, y, z, nt); err != nil {
		return nil, err
	}
	var (
		n  = len(x)
		fr = newFrame(x, y)
		A  = mat.NewDense(n, nt, nil)
		b  = mat.NewVecDense(n, nil)
	)
	for i := 0; i < n; i++ {
		xs, ys := fr.apply(x[i], y[i])
		polyBasis(pf.Degree, xs, ys, A.RawRowView(i))
		b.SetVec(i, z[i])
	}
	var sol mat.VecDense
	if err := solveError(sol.SolveVec(A, b)); err != nil {
		return nil, types.NewInputError("unable to fit degree %d polynomial to %d samples: %v", pf.Degree, n, err)
	}
	p := &Polynomial{frame: fr, degree: pf.Degree, coeffs: make([]float64, nt)}
	for i := range p.coeffs {
		p.coeffs[i] = sol.AtVec(i)
	}
	return p, nil
}

func (p *Polynomial) Evaluate(x, y float64) (z float64) {
	var row [64]float64
	x, y = p.apply(x, y)
	basis := row[:len(p.coeffs)]
	polyBasis(p.degree, x, y, basis)
	for i, c := range p.coeffs {
		z += c * basis[i]
	}
	return
}

func (p *Polynomial) String() string {
	return fmt.Sprintf("degree %d polynomial %v", p.degree, p.coeffs)
}
