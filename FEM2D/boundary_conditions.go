package FEM2D

import (
	"fmt"

	"github.com/notargets/gofem2d/types"
)

// EssentialBC fixes the value of T at a node
type EssentialBC struct {
	Node  int
	Value float64
}

// NaturalBC is a prescribed flux SV along an element face
type NaturalBC struct {
	Element, Face int
	Flux          float64
}

// MixedBC is a Robin condition along an element face, contributing Alpha to
// the face diagonal of K and Beta to F
type MixedBC struct {
	Element, Face int
	Alpha, Beta   float64
}

type BCs struct {
	EBC []EssentialBC
	NBC []NaturalBC
	MBC []MixedBC
}

func (bcs BCs) Count(kind types.BCFLAG) int {
	switch kind {
	case types.BC_Essential:
		return len(bcs.EBC)
	case types.BC_Natural:
		return len(bcs.NBC)
	case types.BC_Mixed:
		return len(bcs.MBC)
	}
	return 0
}

// EdgeLength is the length of face f of element k
func EdgeLength(p *Problem, k, f int) (float64, error) {
	return p.Mesh.EdgeLength(k, f)
}

// ApplyBoundaryConditions modifies the compressed system in the order
// essential, natural, mixed:
//
//	EBC: row n of K is replaced by the identity row, F[n] = value
//	NBC: F[g1] += SV*L/2, F[g2] += SV*L/2
//	MBC: F[g1] += beta*L/2, F[g2] += beta*L/2,
//	     K[g1,g1] -= alpha*L/3, K[g2,g2] -= alpha*L/6
//
// where g1, g2 are the global nodes of the face and L its length. Natural
// and mixed conditions on a face touching an essential node still add to
// that node's row, so the node no longer holds exactly its essential value.
func ApplyBoundaryConditions(p *Problem, sys *GlobalSystem) (err error) {
	var (
		NN = sys.NN()
	)
	if NN != p.NN() {
		return types.NewInputError("system has %d rows, problem has %d nodes", NN, p.NN())
	}
	K := sys.Compress()
	for _, bc := range p.BCs.EBC {
		if bc.Node < 0 || bc.Node >= NN {
			return types.NewInputError("EBC node %d out of range [0,%d)", bc.Node, NN)
		}
		K.ZeroRow(bc.Node)
		K.Set(bc.Node, bc.Node, 1)
		sys.F[bc.Node] = bc.Value
	}
	for _, bc := range p.BCs.NBC {
		var (
			g1, g2 int
			L      float64
		)
		if g1, g2, L, err = faceGeometry(p, bc.Element, bc.Face); err != nil {
			return fmt.Errorf("NBC: %w", err)
		}
		sys.F[g1] += bc.Flux * L / 2
		sys.F[g2] += bc.Flux * L / 2
	}
	for _, bc := range p.BCs.MBC {
		var (
			g1, g2 int
			L      float64
		)
		if g1, g2, L, err = faceGeometry(p, bc.Element, bc.Face); err != nil {
			return fmt.Errorf("MBC: %w", err)
		}
		sys.F[g1] += bc.Beta * L / 2
		sys.F[g2] += bc.Beta * L / 2
		K.AddAt(g1, g1, -bc.Alpha*L/3)
		K.AddAt(g2, g2, -bc.Alpha*L/6)
	}
	return
}

func faceGeometry(p *Problem, k, f int) (g1, g2 int, L float64, err error) {
	if g1, g2, err = p.Mesh.FaceNodes(k, f); err != nil {
		return
	}
	L, err = p.Mesh.EdgeLength(k, f)
	return
}
