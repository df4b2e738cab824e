package functions

import (
	"fmt"
	"strings"

	"github.com/notargets/gofem2d/types"
)

type Kind uint8

const (
	Zero Kind = iota
	Uniform
	ClosedForm
	Fitted
)

func (k Kind) String() string {
	switch k {
	case Zero:
		return "Zero"
	case Uniform:
		return "Uniform"
	case ClosedForm:
		return "ClosedForm"
	case Fitted:
		return "Fitted"
	}
	return "Unknown"
}

// Coefficient is one of the PDE coefficient functions of (x,y). The zero
// value is the Zero coefficient.
type Coefficient struct {
	kind   Kind
	val    float64
	expr   Expression
	fit    Interpolant
	source string
}

func NewClosedForm(expr Expression) Coefficient {
	return Coefficient{kind: ClosedForm, expr: expr, source: expr.String()}
}

func NewFitted(fit Interpolant, source string) Coefficient {
	return Coefficient{kind: Fitted, fit: fit, source: source}
}

// Constant is a coefficient with the same value everywhere
func Constant(val float64) Coefficient {
	return Coefficient{kind: Uniform, val: val, source: number(val).String()}
}

func (c Coefficient) Kind() Kind { return c.kind }

func (c Coefficient) Evaluate(x, y float64) float64 {
	switch c.kind {
	case Uniform:
		return c.val
	case ClosedForm:
		return c.expr.Eval(x, y)
	case Fitted:
		return c.fit.Evaluate(x, y)
	}
	return 0
}

func (c Coefficient) String() string {
	if c.kind == Zero {
		return "0"
	}
	return c.source
}

// Sources holds the textual form of each coefficient as read from a problem
// file. "?" (or an empty string) is the zero function, a lone "x" or "y"
// selects the interpolant fitted to the nodal U or V samples.
type Sources struct {
	A         string `json:"a"`
	V1        string `json:"V1"`
	V2        string `json:"V2"`
	C         string `json:"c"`
	F         string `json:"f"`
	ExactSoln string `json:"exactSoln,omitempty"`
}

// NodalSamples are the per node U and V values used by fitted coefficients
type NodalSamples struct {
	X, Y []float64
	U, V []float64
}

// CoefficientFunctions are a, V1, V2, c and f of
//
//	-div(a grad T) + V.grad T + c T = f
//
// plus the optional exact solution. Built once and read only afterwards, so
// safe to evaluate from concurrent element computations.
type CoefficientFunctions struct {
	A, V1, V2, C, F Coefficient
	Exact           Coefficient
}

// NewCoefficientFunctions parses every source. Each sample set is fitted at
// most once and the interpolant is shared by all coefficients referencing it.
// samples and fitter may be nil when no source asks for fitted data.
func NewCoefficientFunctions(src Sources, samples *NodalSamples, fitter Fitter) (cf *CoefficientFunctions, err error) {
	var (
		fits = make(map[string]Interpolant)
	)
	build := func(name, text string) (c Coefficient, err error) {
		text = strings.TrimSpace(text)
		switch text {
		case "", "?":
			return
		case "x", "y":
			var fit Interpolant
			if fit, err = fitSamples(text, samples, fitter, fits); err != nil {
				err = fmt.Errorf("coefficient %s: %w", name, err)
				return
			}
			c = NewFitted(fit, "fitted("+map[string]string{"x": "U", "y": "V"}[text]+")")
			return
		}
		var expr Expression
		if expr, err = ParseExpression(text); err != nil {
			err = fmt.Errorf("coefficient %s: %w", name, err)
			return
		}
		if !HasVariables(expr) {
			c = Constant(expr.Eval(0, 0))
			return
		}
		c = NewClosedForm(expr)
		return
	}
	cf = &CoefficientFunctions{}
	for _, entry := range []struct {
		name string
		text string
		dst  *Coefficient
	}{
		{"a", src.A, &cf.A},
		{"V1", src.V1, &cf.V1},
		{"V2", src.V2, &cf.V2},
		{"c", src.C, &cf.C},
		{"f", src.F, &cf.F},
		{"exactSoln", src.ExactSoln, &cf.Exact},
	} {
		if *entry.dst, err = build(entry.name, entry.text); err != nil {
			return nil, err
		}
	}
	return
}

func fitSamples(which string, samples *NodalSamples, fitter Fitter, fits map[string]Interpolant) (fit Interpolant, err error) {
	var ok bool
	if fit, ok = fits[which]; ok {
		return
	}
	if samples == nil {
		err = types.NewInputError("fitted coefficient %q requires nodal UV data", which)
		return
	}
	if fitter == nil {
		fitter = ThinPlateFitter{}
	}
	z := samples.U
	if which == "y" {
		z = samples.V
	}
	if len(z) != len(samples.X) {
		err = types.NewInputError("have %d nodal samples for %d nodes", len(z), len(samples.X))
		return
	}
	if fit, err = fitter.Fit(samples.X, samples.Y, z); err != nil {
		return
	}
	fits[which] = fit
	return
}

func (cf *CoefficientFunctions) Print() {
	fmt.Printf("a(x,y)  = %s\n", cf.A)
	fmt.Printf("V1(x,y) = %s\n", cf.V1)
	fmt.Printf("V2(x,y) = %s\n", cf.V2)
	fmt.Printf("c(x,y)  = %s\n", cf.C)
	fmt.Printf("f(x,y)  = %s\n", cf.F)
	if cf.Exact.Kind() != Zero {
		fmt.Printf("exact   = %s\n", cf.Exact)
	}
}
