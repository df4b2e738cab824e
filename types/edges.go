package types

import (
	"fmt"
	"math"
)

/*
EdgeKey is an always positive number that stores an edge's vertices as indices in a way that can be compared
An edge between vertices [4] and [0] will always be stored as [0,4], in the ascending order of the index values
*/
type EdgeKey uint64

func NewEdgeKey(verts [2]int) (packed EdgeKey) {
	// This packs two index coordinates into two 32 bit unsigned integers to act as a hash and an indirect access method
	var (
		limit = math.MaxUint32
	)
	for _, vert := range verts {
		if vert < 0 || vert > limit {
			panic(fmt.Errorf("unable to pack two ints into a uint64, have %d and %d as inputs",
				verts[0], verts[1]))
		}
	}
	var i1, i2 int
	if verts[0] <= verts[1] {
		i1, i2 = verts[0], verts[1]
	} else {
		i1, i2 = verts[1], verts[0]
	}
	packed = EdgeKey(i1 + i2<<32)
	return
}

func (ek EdgeKey) GetVertices(rev bool) (verts [2]int) {
	var (
		enTmp EdgeKey
	)
	enTmp = ek >> 32
	verts[1] = int(enTmp)
	verts[0] = int(ek - enTmp*(1<<32))
	if rev {
		verts[0], verts[1] = verts[1], verts[0]
	}
	return
}

// EdgeCount tallies how many element faces share each edge. Edges seen once
// lie on the domain boundary.
type EdgeCount map[EdgeKey]int

func (ec EdgeCount) Add(verts [2]int) {
	ec[NewEdgeKey(verts)]++
}

func (ec EdgeCount) IsBoundary(verts [2]int) bool {
	return ec[NewEdgeKey(verts)] == 1
}

// BoundaryKeys returns the keys of all edges with a single owner
func (ec EdgeCount) BoundaryKeys() (keys []EdgeKey) {
	for key, count := range ec {
		if count == 1 {
			keys = append(keys, key)
		}
	}
	return
}
