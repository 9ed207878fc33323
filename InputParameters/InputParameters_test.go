package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	{ // Values in the file replace the defaults, the rest are kept
		ip := NewNeighborParameters()
		require.NoError(t, ip.Parse([]byte(`
Title: "strip"
GridFile: mesh.txt
IndexBase: 0
ExcludeFile: bad.txt
Seed: -1
ParallelDegree: 4
RequireConnected: true
`)))
		assert.Equal(t, "strip", ip.Title)
		assert.Equal(t, "mesh.txt", ip.GridFile)
		assert.Equal(t, 0, ip.IndexBase)
		assert.Equal(t, "bad.txt", ip.ExcludeFile)
		assert.Equal(t, -1, ip.Seed)
		assert.Equal(t, 4, ip.ParallelDegree)
		assert.True(t, ip.RequireConnected)
		assert.Equal(t, "EToE.txt", ip.NeighborsFile)
		assert.Equal(t, "EToF.txt", ip.NeighborSidesFile)
		assert.Equal(t, "EToV.txt", ip.CellsFile)
		assert.Empty(t, ip.CellMapFile)
	}
	{
		ip := NewNeighborParameters()
		assert.Error(t, ip.Parse([]byte("Seed: [1, 2")))
		assert.Error(t, ip.Parse([]byte("Seed: notanumber")))
	}
}
