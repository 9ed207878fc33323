package neighbors

import "fmt"

// NonManifoldError is returned when a side is shared by more than two cells. The slot
// (Cell, Side) already holds Have and the wave found another claimant, Conflict.
type NonManifoldError struct {
	Cell, Side int
	Have       [2]int // Neighbor cell and neighbor side already recorded
	Conflict   [2]int // Neighbor cell and neighbor side found later
}

func (e *NonManifoldError) Error() string {
	return fmt.Sprintf("side %d of cell %d is shared by more than two cells: connected to cell %d side %d, also matches cell %d side %d",
		e.Side, e.Cell, e.Have[0], e.Have[1], e.Conflict[0], e.Conflict[1])
}

// DisconnectedError is returned when connectivity is required and the wave started at Seed
// dies out before reaching every cell
type DisconnectedError struct {
	Seed      int
	Reached   int // Cells reached from Seed
	Total     int
	Unreached int // Lowest index cell not reached
}

func (e *DisconnectedError) Error() string {
	return fmt.Sprintf("mesh is disconnected: %d of %d cells reached from cell %d, cell %d is not connected to them",
		e.Reached, e.Total, e.Seed, e.Unreached)
}
