package FEM2D

import (
	"math"

	"github.com/notargets/gofem2d/types"
)

type Node struct {
	X, Y float64
}

// Mesh is the node table and the element connectivity, local nodes are
// listed counter clockwise with the corners first
type Mesh struct {
	Nodes []Node
	LtoG  [][]int
	Type  ElementType
	edges types.EdgeCount
}

func NewMesh(nodes []Node, LtoG [][]int, et ElementType) (m *Mesh, err error) {
	var (
		NN, NE = len(nodes), len(LtoG)
		nen    = et.NEN()
	)
	if nen == 0 {
		err = types.NewConfigurationError("unsupported element type %v", et)
		return
	}
	if NN == 0 || NE == 0 {
		err = types.NewInputError("mesh needs nodes and elements, have NN = %d, NE = %d", NN, NE)
		return
	}
	for k, conn := range LtoG {
		if len(conn) != nen {
			err = types.NewInputError("element %d has %d nodes, %v elements have %d", k, len(conn), et, nen)
			return
		}
		for _, g := range conn {
			if g < 0 || g >= NN {
				err = types.NewInputError("element %d references node %d, valid range is [0,%d)", k, g, NN)
				return
			}
		}
	}
	for i, nd := range nodes {
		if math.IsNaN(nd.X) || math.IsNaN(nd.Y) || math.IsInf(nd.X, 0) || math.IsInf(nd.Y, 0) {
			err = types.NewInputError("node %d has non finite coordinates (%v, %v)", i, nd.X, nd.Y)
			return
		}
	}
	m = &Mesh{
		Nodes: nodes,
		LtoG:  LtoG,
		Type:  et,
		edges: make(types.EdgeCount),
	}
	nc := et.Shape.NumCorners()
	for _, conn := range LtoG {
		for f := 0; f < nc; f++ {
			m.edges.Add([2]int{conn[f], conn[(f+1)%nc]})
		}
	}
	return
}

func (m *Mesh) NN() int { return len(m.Nodes) }
func (m *Mesh) NE() int { return len(m.LtoG) }

// ElementCoords returns the (x,y) of each local node of element k
func (m *Mesh) ElementCoords(k int) (coords [][2]float64) {
	coords = make([][2]float64, len(m.LtoG[k]))
	for i, g := range m.LtoG[k] {
		coords[i] = [2]float64{m.Nodes[g].X, m.Nodes[g].Y}
	}
	return
}

// FaceNodes returns the global nodes of face f of element k, the edge from
// local node f to local node (f+1) mod NEN
func (m *Mesh) FaceNodes(k, f int) (g1, g2 int, err error) {
	if k < 0 || k >= m.NE() {
		err = types.NewInputError("element %d out of range [0,%d)", k, m.NE())
		return
	}
	nen := len(m.LtoG[k])
	if f < 0 || f >= nen {
		err = types.NewInputError("face %d of element %d out of range [0,%d)", f, k, nen)
		return
	}
	g1, g2 = m.LtoG[k][f], m.LtoG[k][(f+1)%nen]
	return
}

// EdgeLength is the straight line distance between the two face nodes
func (m *Mesh) EdgeLength(k, f int) (L float64, err error) {
	var g1, g2 int
	if g1, g2, err = m.FaceNodes(k, f); err != nil {
		return
	}
	L = math.Hypot(m.Nodes[g2].X-m.Nodes[g1].X, m.Nodes[g2].Y-m.Nodes[g1].Y)
	return
}

// IsBoundaryFace reports whether the face is a corner to corner edge owned by
// a single element
func (m *Mesh) IsBoundaryFace(k, f int) bool {
	g1, g2, err := m.FaceNodes(k, f)
	if err != nil {
		return false
	}
	return m.edges.IsBoundary([2]int{g1, g2})
}

// BoundaryEdges returns the global node pairs of every boundary edge
func (m *Mesh) BoundaryEdges() (edges [][2]int) {
	for _, key := range m.edges.BoundaryKeys() {
		edges = append(edges, key.GetVertices(false))
	}
	return
}

// Bounds of the node coordinates
func (m *Mesh) Bounds() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, nd := range m.Nodes {
		xmin, xmax = math.Min(xmin, nd.X), math.Max(xmax, nd.X)
		ymin, ymax = math.Min(ymin, nd.Y), math.Max(ymax, nd.Y)
	}
	return
}

// MaxEdgeLength is the largest corner to corner edge, the mesh size h
func (m *Mesh) MaxEdgeLength() (h float64) {
	for key := range m.edges {
		v := key.GetVertices(false)
		a, b := m.Nodes[v[0]], m.Nodes[v[1]]
		h = math.Max(h, math.Hypot(b.X-a.X, b.Y-a.Y))
	}
	return
}
