package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypes(t *testing.T) {
	{ // Test packed int for edge labeling
		en := NewEdgeKey([2]int{1, 0})
		assert.Equal(t, EdgeKey(1<<32), en)
		assert.Equal(t, [2]int{0, 1}, en.GetVertices(false))

		en = NewEdgeKey([2]int{0, 1})
		assert.Equal(t, EdgeKey(1<<32), en)
		assert.Equal(t, [2]int{0, 1}, en.GetVertices(false))
		assert.Equal(t, [2]int{1, 0}, en.GetVertices(true))

		en = NewEdgeKey([2]int{100, 1})
		assert.Equal(t, EdgeKey(100*(1<<32)+1), en)
		assert.Equal(t, [2]int{1, 100}, en.GetVertices(false))
		assert.Equal(t, "{1,100}", en.String())

		// Test maximum/minimum indices
		en = NewEdgeKey([2]int{1<<32 - 1, 1})
		assert.Equal(t, EdgeKey((1<<32-1)<<32+1), en)
		assert.Equal(t, [2]int{1, 1<<32 - 1}, en.GetVertices(false))

		assert.Panics(t, func() { NewEdgeKey([2]int{-1, 2}) })
	}
	{ // Oriented edges keep their direction and share a key with the reversed edge
		e := NewEdgeInt([2]int{7, 3})
		assert.True(t, e < 0)
		assert.Equal(t, [2]int{7, 3}, e.GetVertices())
		er := NewEdgeInt([2]int{3, 7})
		assert.Equal(t, [2]int{3, 7}, er.GetVertices())
		assert.Equal(t, NewEdgeKey(e.GetVertices()), NewEdgeKey(er.GetVertices()))

		assert.Panics(t, func() { NewEdgeInt([2]int{0, MaxEdgeIntVertex + 1}) })
	}
}

func TestCellSides(t *testing.T) {
	verts := [NFaces]int{4, 9, 2}
	assert.Equal(t, [2]int{4, 9}, SideVertices(verts, 0))
	assert.Equal(t, [2]int{9, 2}, SideVertices(verts, 1))
	assert.Equal(t, [2]int{2, 4}, SideVertices(verts, 2))

	sides := CellSides(verts)
	keys := CellSideKeys(verts)
	for j := 0; j < NFaces; j++ {
		assert.Equal(t, SideVertices(verts, j), sides[j].GetVertices())
		assert.Equal(t, NewEdgeKey(sides[j].GetVertices()), keys[j])
	}
	{ // Two cells wound consistently traverse their shared side in opposite directions
		c0, c1 := [NFaces]int{0, 1, 2}, [NFaces]int{1, 3, 2}
		s0, s1 := CellSides(c0), CellSides(c1)
		assert.Equal(t, [2]int{1, 2}, s0[1].GetVertices())
		assert.Equal(t, [2]int{2, 1}, s1[2].GetVertices())
		assert.Equal(t, CellSideKeys(c0)[1], CellSideKeys(c1)[2])
	}
}
