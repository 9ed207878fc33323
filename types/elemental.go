package types

import (
	"fmt"
	"math"
)

// NFaces is the number of sides of a triangular cell
const NFaces = 3

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

func (ek EdgeKey) String() string {
	verts := ek.GetVertices(false)
	return fmt.Sprintf("{%d,%d}", verts[0], verts[1])
}

/*
An EdgeInt stores the side vertices in the original order of the vertices, so that it can be recovered with it's direction
*/
type EdgeInt int64

// MaxEdgeIntVertex is the largest vertex index an EdgeInt can hold
const MaxEdgeIntVertex = math.MaxUint32 >> 1

func NewEdgeInt(verts [2]int) (packed EdgeInt) {
	// This packs two index coordinates into two 31 bit unsigned integers to act as a hash and an indirect access method
	var (
		limit = MaxEdgeIntVertex // leaves room for the sign bit of an int64
		sign  bool
	)
	for _, vert := range verts {
		if vert < 0 || vert > limit {
			panic(fmt.Errorf("unable to pack two ints into an int64, have %d and %d as inputs",
				verts[0], verts[1]))
		}
	}
	var i1, i2 int
	if verts[0] <= verts[1] {
		i1, i2 = verts[0], verts[1]
	} else {
		sign = true
		i1, i2 = verts[1], verts[0]
	}
	packed = EdgeInt(i1 + i2<<32)
	if sign {
		packed = -packed
	}
	return
}

func (e EdgeInt) GetVertices() (verts [2]int) {
	var (
		eTmp EdgeInt
		sign bool
	)
	if e < 0 {
		sign = true
		e = -e
	}
	eTmp = e >> 32
	verts[1] = int(eTmp)
	verts[0] = int(e - eTmp*(1<<32))
	if sign {
		verts[0], verts[1] = verts[1], verts[0]
	}
	return
}

// SideVertices returns the vertices of local side j of a triangle in the cell's winding order.
// Side j runs from vertex j to vertex (j+1)%3.
func SideVertices(verts [NFaces]int, j int) [2]int {
	return [2]int{verts[j], verts[(j+1)%NFaces]}
}

// CellSides returns the oriented sides of a triangle
func CellSides(verts [NFaces]int) (sides [NFaces]EdgeInt) {
	for j := 0; j < NFaces; j++ {
		sides[j] = NewEdgeInt(SideVertices(verts, j))
	}
	return
}

// CellSideKeys returns the orientation free keys of a triangle's sides, two cells
// touch across a side when they hold an equal key
func CellSideKeys(verts [NFaces]int) (keys [NFaces]EdgeKey) {
	for j := 0; j < NFaces; j++ {
		keys[j] = NewEdgeKey(SideVertices(verts, j))
	}
	return
}
