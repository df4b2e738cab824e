package FEM2D

import (
	"fmt"
	"sort"

	"github.com/notargets/gofem2d/functions"
	"github.com/notargets/gofem2d/types"
)

// Problem is everything the assembly pipeline reads. It is immutable once
// built by NewProblem.
type Problem struct {
	Title string
	Mesh  *Mesh
	Shape ShapeFunctions
	Rule  QuadratureRule
	Coef  *functions.CoefficientFunctions
	BCs   BCs
}

func NewProblem(title string, mesh *Mesh, ngp int, coef *functions.CoefficientFunctions, bcs BCs) (p *Problem, err error) {
	if mesh == nil {
		err = types.NewInputError("problem %q has no mesh", title)
		return
	}
	if coef == nil {
		err = types.NewInputError("problem %q has no coefficient functions", title)
		return
	}
	p = &Problem{
		Title: title,
		Mesh:  mesh,
		Coef:  coef,
	}
	if p.Shape, err = NewShapeFunctions(mesh.Type); err != nil {
		return nil, err
	}
	if p.Rule, err = NewQuadratureRule(mesh.Type.Shape, ngp); err != nil {
		return nil, err
	}
	if p.BCs, err = bcs.normalize(mesh); err != nil {
		return nil, err
	}
	return
}

func (p *Problem) NN() int { return p.Mesh.NN() }
func (p *Problem) NE() int { return p.Mesh.NE() }

// BoundaryFaceWarnings lists the natural and mixed conditions placed on a
// face that is shared by two elements. They are applied as given, most often
// they point to a face numbering mistake in the input.
func (p *Problem) BoundaryFaceWarnings() (warnings []string) {
	if p.Mesh.Type.Order != Linear {
		return
	}
	check := func(kind types.BCFLAG, k, f int) {
		if !p.Mesh.IsBoundaryFace(k, f) {
			warnings = append(warnings,
				fmt.Sprintf("%s on element %d face %d is not on the domain boundary", kind, k, f))
		}
	}
	for _, bc := range p.BCs.NBC {
		check(types.BC_Natural, bc.Element, bc.Face)
	}
	for _, bc := range p.BCs.MBC {
		check(types.BC_Mixed, bc.Element, bc.Face)
	}
	return
}

func (p *Problem) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", p.Title)
	fmt.Printf("[%v]\t\t= Element Type\n", p.Mesh.Type)
	fmt.Printf("[%d, %g]\t\t= Quadrature Points, Weight Sum\n", len(p.Rule), p.Rule.WeightSum())
	fmt.Printf("[%d, %d]\t\t= NN, NE\n", p.NN(), p.NE())
	fmt.Printf("[%d, %d, %d]\t\t= EBC, NBC, MBC\n",
		p.BCs.Count(types.BC_Essential), p.BCs.Count(types.BC_Natural), p.BCs.Count(types.BC_Mixed))
	p.Coef.Print()
}

// normalize checks every index and collapses repeated essential conditions.
// A node given two different essential values is an input error.
func (bcs BCs) normalize(mesh *Mesh) (out BCs, err error) {
	var (
		seen = make(map[int]float64)
	)
	for _, bc := range bcs.EBC {
		if bc.Node < 0 || bc.Node >= mesh.NN() {
			err = types.NewInputError("EBC node %d out of range [0,%d)", bc.Node, mesh.NN())
			return
		}
		if val, ok := seen[bc.Node]; ok {
			if val != bc.Value {
				err = types.NewInputError("EBC node %d given conflicting values %v and %v", bc.Node, val, bc.Value)
				return
			}
			continue
		}
		seen[bc.Node] = bc.Value
		out.EBC = append(out.EBC, bc)
	}
	sort.SliceStable(out.EBC, func(i, j int) bool { return out.EBC[i].Node < out.EBC[j].Node })
	for _, bc := range bcs.NBC {
		if _, _, err = mesh.FaceNodes(bc.Element, bc.Face); err != nil {
			err = fmt.Errorf("NBC: %w", err)
			return
		}
	}
	for _, bc := range bcs.MBC {
		if _, _, err = mesh.FaceNodes(bc.Element, bc.Face); err != nil {
			err = fmt.Errorf("MBC: %w", err)
			return
		}
	}
	out.NBC = append([]NaturalBC(nil), bcs.NBC...)
	out.MBC = append([]MixedBC(nil), bcs.MBC...)
	return
}
