// Package mesh holds a triangulation given only by its cell to vertex connectivity (EToV),
// along with the input conditioning done before neighbor discovery: index base shifting,
// validation and removal of excluded cells.
package mesh

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"

	"github.com/notargets/meshneighbors/types"
	"github.com/notargets/meshneighbors/utils"
)

// Mesh is an ordered set of triangles, EToV[k] holds the 0-indexed vertices of cell k in a
// consistent winding order
type Mesh struct {
	EToV        [][types.NFaces]int
	NumVertices int         // One past the largest vertex index referenced
	CellIDs     utils.Index // Row of each cell in the originating cell matrix
}

// CellError reports a cell that can not take part in neighbor discovery
type CellError struct {
	Cell     int
	Vertices []int
	Reason   string
}

func (e *CellError) Error() string {
	return fmt.Sprintf("cell %d %v: %s", e.Cell, e.Vertices, e.Reason)
}

// NewMesh builds a mesh from raw integer rows. indexBase is the index of the first vertex
// in the rows (0 or 1), all vertex indices are shifted to be 0-indexed.
func NewMesh(rows [][]int, indexBase int) (m *Mesh, err error) {
	if indexBase != 0 && indexBase != 1 {
		err = errors.Errorf("index base must be 0 or 1, have %d", indexBase)
		return
	}
	EToV := make([][types.NFaces]int, len(rows))
	for k, row := range rows {
		if len(row) != types.NFaces {
			err = &CellError{Cell: k, Vertices: row,
				Reason: fmt.Sprintf("have %d vertices, triangles need %d", len(row), types.NFaces)}
			return
		}
		for j, v := range row {
			EToV[k][j] = v - indexBase
		}
	}
	return NewMeshFromCells(EToV)
}

// NewMeshFromCells builds a mesh from 0-indexed cells, the cells are not copied
func NewMeshFromCells(EToV [][types.NFaces]int) (m *Mesh, err error) {
	m = &Mesh{
		EToV:    EToV,
		CellIDs: utils.NewRange(0, len(EToV)-1),
	}
	if err = m.Validate(); err != nil {
		return nil, err
	}
	return
}

// K is the number of cells
func (m *Mesh) K() int { return len(m.EToV) }

// Validate checks every cell and refreshes NumVertices
func (m *Mesh) Validate() (err error) {
	m.NumVertices = 0
	for k, verts := range m.EToV {
		for _, v := range verts {
			switch {
			case v < 0:
				return &CellError{Cell: k, Vertices: verts[:],
					Reason: "negative vertex index, check the index base of the input"}
			case v > types.MaxEdgeIntVertex:
				return &CellError{Cell: k, Vertices: verts[:],
					Reason: fmt.Sprintf("vertex index larger than %d", types.MaxEdgeIntVertex)}
			}
			if v+1 > m.NumVertices {
				m.NumVertices = v + 1
			}
		}
		if verts[0] == verts[1] || verts[1] == verts[2] || verts[2] == verts[0] {
			return &CellError{Cell: k, Vertices: verts[:], Reason: "degenerate cell, a vertex is repeated"}
		}
	}
	return
}

// RemoveCells returns a new mesh without the cells at the given positions. Surviving cells
// keep their order and are compacted, CellIDs tracks where each came from. Repeated
// positions are removed once.
func (m *Mesh) RemoveCells(bad []int) (mr *Mesh, err error) {
	var (
		K      = m.K()
		remove = make([]bool, K)
	)
	for _, k := range bad {
		if k < 0 || k >= K {
			err = errors.Errorf("cell %d can not be removed, mesh has %d cells", k, K)
			return
		}
		remove[k] = true
	}
	mr = &Mesh{
		EToV:    make([][types.NFaces]int, 0, K),
		CellIDs: make(utils.Index, 0, K),
	}
	for k := 0; k < K; k++ {
		if remove[k] {
			continue
		}
		mr.EToV = append(mr.EToV, m.EToV[k])
		mr.CellIDs = append(mr.CellIDs, m.CellIDs[k])
	}
	// Vertices are not renumbered, isolated vertices keep their indices
	mr.NumVertices = m.NumVertices
	return
}

// UnusedVertices lists vertex indices below NumVertices that no cell references
func (m *Mesh) UnusedVertices() (unused utils.Index) {
	used := make([]bool, m.NumVertices)
	for _, verts := range m.EToV {
		for _, v := range verts {
			used[v] = true
		}
	}
	for v, u := range used {
		if !u {
			unused = append(unused, v)
		}
	}
	return
}

// SharedSides counts how many cells hold each side, keyed by the sorted vertex pair
func (m *Mesh) SharedSides() (counts map[types.EdgeKey]int) {
	counts = make(map[types.EdgeKey]int, 3*m.K()/2)
	for _, verts := range m.EToV {
		for _, key := range types.CellSideKeys(verts) {
			counts[key]++
		}
	}
	return
}

// NonManifoldSides returns the sides held by more than two cells, sorted
func (m *Mesh) NonManifoldSides() (sides []types.EdgeKey) {
	for key, count := range m.SharedSides() {
		if count > 2 {
			sides = append(sides, key)
		}
	}
	sort.Slice(sides, func(i, j int) bool { return sides[i] < sides[j] })
	return
}
