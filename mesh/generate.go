package mesh

import (
	"github.com/pkg/errors"

	"github.com/notargets/meshneighbors/types"
)

// MeshType selects a structured triangulation produced by Generate
type MeshType uint8

const (
	Rectangle MeshType = iota
	Torus
	Fan
)

var MeshTypeNames = map[string]MeshType{
	"rectangle": Rectangle,
	"rect":      Rectangle,
	"torus":     Torus,
	"fan":       Fan,
}

func (mt MeshType) String() string {
	return [...]string{"Rectangle", "Torus", "Fan"}[mt]
}

// Generate builds a structured triangulation. For Rectangle and Torus, nx and ny count quads
// along each direction, each quad is split in two triangles. For Fan, nx counts triangles around
// a central vertex and ny != 0 closes the fan.
func Generate(mt MeshType, nx, ny int) (m *Mesh, err error) {
	switch mt {
	case Rectangle:
		if nx < 1 || ny < 1 {
			return nil, errors.Errorf("rectangle needs at least one quad each way, have %d x %d", nx, ny)
		}
		return NewMeshFromCells(rectangleCells(nx, ny, false))
	case Torus:
		if nx < 3 || ny < 3 {
			return nil, errors.Errorf("torus needs at least 3 quads each way, have %d x %d", nx, ny)
		}
		return NewMeshFromCells(rectangleCells(nx, ny, true))
	case Fan:
		if nx < 1 || (ny != 0 && nx < 3) {
			return nil, errors.Errorf("fan can not be built with %d triangles", nx)
		}
		return NewMeshFromCells(fanCells(nx, ny != 0))
	}
	return nil, errors.Errorf("unknown mesh type %d", mt)
}

func rectangleCells(nx, ny int, periodic bool) (EToV [][types.NFaces]int) {
	var (
		stride = nx + 1
	)
	if periodic {
		stride = nx
	}
	vert := func(i, j int) int {
		if periodic {
			i, j = i%nx, j%ny
		}
		return j*stride + i
	}
	EToV = make([][types.NFaces]int, 0, 2*nx*ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			a, b, c, d := vert(i, j), vert(i+1, j), vert(i+1, j+1), vert(i, j+1)
			EToV = append(EToV, [types.NFaces]int{a, b, c}, [types.NFaces]int{a, c, d})
		}
	}
	return
}

func fanCells(n int, closed bool) (EToV [][types.NFaces]int) {
	// Vertex 0 is the hub, the rim runs 1..n+1 when open and 1..n when closed
	EToV = make([][types.NFaces]int, n)
	for i := 0; i < n; i++ {
		next := i + 2
		if closed && next > n {
			next = 1
		}
		EToV[i] = [types.NFaces]int{0, i + 1, next}
	}
	return
}

// Join returns a mesh holding the cells of a followed by the cells of b, with b's vertices
// offset past a's so the two parts share nothing
func Join(a, b *Mesh) (m *Mesh, err error) {
	EToV := make([][types.NFaces]int, 0, a.K()+b.K())
	EToV = append(EToV, a.EToV...)
	for _, verts := range b.EToV {
		for j := range verts {
			verts[j] += a.NumVertices
		}
		EToV = append(EToV, verts)
	}
	return NewMeshFromCells(EToV)
}
