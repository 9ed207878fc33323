package neighbors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/meshneighbors/types"
)

func twoCells(t *testing.T) *Connectivity {
	c, err := FindNeighbors([][types.NFaces]int{{0, 1, 2}, {1, 3, 2}})
	require.NoError(t, err)
	return c
}

func TestConnectivity(t *testing.T) {
	{ // Slots are written once, rewriting the same value is allowed
		c := NewConnectivity(3)
		require.NoError(t, c.connect(0, 1, 1, 2))
		require.NoError(t, c.connect(1, 2, 0, 1))
		err := c.connect(0, 1, 2, 0)
		require.Error(t, err)
		assert.IsType(t, &NonManifoldError{}, err)
		assert.Contains(t, err.Error(), "side 1 of cell 0")
	}
	{ // Verify catches corrupted maps
		c := twoCells(t)
		require.NoError(t, c.Verify())

		c.EToF[0][1] = 0
		assert.Error(t, c.Verify())

		c = twoCells(t)
		c.EToE[0][0] = 0
		c.EToF[0][0] = 0
		assert.Contains(t, c.Verify().Error(), "neighbors itself")

		c = twoCells(t)
		c.EToE[1][0] = 7
		c.EToF[1][0] = 0
		assert.Contains(t, c.Verify().Error(), "outside of the mesh")

		c = twoCells(t)
		c.EToF[1][1] = 2
		assert.Contains(t, c.Verify().Error(), "half boundary")
	}
}

func TestWindingConflicts(t *testing.T) {
	{ // Consistently wound cells traverse their shared side in opposite directions
		c := twoCells(t)
		assert.Equal(t, 0, c.WindingConflicts([][types.NFaces]int{{0, 1, 2}, {1, 3, 2}}))
	}
	{
		EToV := [][types.NFaces]int{{0, 1, 2}, {1, 2, 3}}
		c, err := FindNeighbors(EToV)
		require.NoError(t, err)
		assert.Equal(t, 1, c.WindingConflicts(EToV))
	}
}

func TestConnectivityExports(t *testing.T) {
	c := twoCells(t)
	{ // Dense matrices
		EToE, EToF := c.Dense()
		r, cols := EToE.Dims()
		assert.Equal(t, 2, r)
		assert.Equal(t, 3, cols)
		assert.Equal(t, 1., EToE.At(0, 1))
		assert.Equal(t, -1., EToE.At(0, 0))
		assert.Equal(t, 2., EToF.At(0, 1))
		assert.Equal(t, 1., EToF.At(1, 2))
	}
	{ // Dual graph and its components
		g := c.DualGraph()
		assert.Equal(t, 2, g.Nodes().Len())
		assert.True(t, g.HasEdgeBetween(0, 1))
		assert.Equal(t, [][]int{{0, 1}}, c.ConnectedComponents())
	}
	{ // Cell adjacency holds the local side plus one
		A := c.Adjacency()
		assert.Equal(t, 2, A.NNZ())
		assert.Equal(t, 2., A.At(0, 1))
		assert.Equal(t, 3., A.At(1, 0))
		assert.Equal(t, 0., A.At(0, 0))
		assert.Nil(t, NewConnectivity(0).Adjacency())
	}
	{ // Bitset
		s := newCellSet(130)
		s.add(0)
		s.add(129)
		assert.True(t, s.has(0))
		assert.True(t, s.has(129))
		assert.False(t, s.has(64))
	}
}
