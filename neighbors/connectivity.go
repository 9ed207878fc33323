package neighbors

import (
	"github.com/pkg/errors"

	"github.com/notargets/meshneighbors/types"
)

// Connectivity is the side adjacency of a mesh. EToE[k][j] is the cell across side j of cell k
// and EToF[k][j] the side of that cell facing cell k, both are Boundary on the mesh boundary.
type Connectivity struct {
	EToE, EToF [][types.NFaces]int
	Components int // Number of separately seeded waves needed to reach every cell
	Waves      int
}

func NewConnectivity(K int) (c *Connectivity) {
	c = &Connectivity{
		EToE: make([][types.NFaces]int, K),
		EToF: make([][types.NFaces]int, K),
	}
	for k := 0; k < K; k++ {
		c.EToE[k] = [types.NFaces]int{Boundary, Boundary, Boundary}
		c.EToF[k] = [types.NFaces]int{Boundary, Boundary, Boundary}
	}
	return
}

func (c *Connectivity) K() int { return len(c.EToE) }

// connect records that side p of cell e and side q of cell o are the same side
func (c *Connectivity) connect(e, p, o, q int) (err error) {
	if err = c.setSlot(e, p, o, q); err != nil {
		return
	}
	return c.setSlot(o, q, e, p)
}

// setSlot writes a slot once, writing the value it already holds is allowed
func (c *Connectivity) setSlot(k, j, nbr, nbrSide int) error {
	have := [2]int{c.EToE[k][j], c.EToF[k][j]}
	switch have {
	case [2]int{Boundary, Boundary}:
		c.EToE[k][j], c.EToF[k][j] = nbr, nbrSide
		return nil
	case [2]int{nbr, nbrSide}:
		return nil
	}
	return &NonManifoldError{Cell: k, Side: j, Have: have, Conflict: [2]int{nbr, nbrSide}}
}

// BoundarySides counts the sides with no neighbor
func (c *Connectivity) BoundarySides() (n int) {
	for _, nbrs := range c.EToE {
		for _, nbr := range nbrs {
			if nbr == Boundary {
				n++
			}
		}
	}
	return
}

// InteriorSides counts the sides shared by two cells, each once
func (c *Connectivity) InteriorSides() int {
	return (types.NFaces*c.K() - c.BoundarySides()) / 2
}

// WindingConflicts counts the interior sides traversed in the same direction by both cells
// holding them, which is zero when EToV is consistently wound
func (c *Connectivity) WindingConflicts(EToV [][types.NFaces]int) (n int) {
	for k, nbrs := range c.EToE {
		sides := types.CellSides(EToV[k])
		for j, nbr := range nbrs {
			if nbr <= k {
				continue
			}
			if sides[j] == types.CellSides(EToV[nbr])[c.EToF[k][j]] {
				n++
			}
		}
	}
	return
}

// Verify checks that every connection is mutual and paired side to side, and that no cell
// neighbors itself
func (c *Connectivity) Verify() (err error) {
	var (
		K = c.K()
	)
	if len(c.EToF) != K {
		return errors.Errorf("EToE has %d cells, EToF has %d", K, len(c.EToF))
	}
	for k := 0; k < K; k++ {
		for j := 0; j < types.NFaces; j++ {
			nbr, nbrSide := c.EToE[k][j], c.EToF[k][j]
			switch {
			case nbr == Boundary && nbrSide == Boundary:
				continue
			case nbr == Boundary || nbrSide == Boundary:
				return errors.Errorf("cell %d side %d is half boundary: neighbor %d, neighbor side %d",
					k, j, nbr, nbrSide)
			case nbr < 0 || nbr >= K || nbrSide < 0 || nbrSide >= types.NFaces:
				return errors.Errorf("cell %d side %d points outside of the mesh: neighbor %d, neighbor side %d",
					k, j, nbr, nbrSide)
			case nbr == k:
				return errors.Errorf("cell %d neighbors itself across side %d", k, j)
			case c.EToE[nbr][nbrSide] != k || c.EToF[nbr][nbrSide] != j:
				return errors.Errorf("cell %d side %d connects to cell %d side %d, which connects back to cell %d side %d",
					k, j, nbr, nbrSide, c.EToE[nbr][nbrSide], c.EToF[nbr][nbrSide])
			}
		}
	}
	return
}
