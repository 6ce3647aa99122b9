package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTileEdgeKey(t *testing.T) {
	{ // Round trip for every endpoint of a 6-tile mesh
		for tile := 0; tile < 6; tile++ {
			for edge := North; edge <= West; edge++ {
				tk := NewTileEdgeKey(tile, edge)
				assert.Equal(t, tile, tk.Tile())
				assert.Equal(t, edge, tk.Edge())
			}
		}
	}
	{ // Keys are distinct and comparable
		seen := make(map[TileEdgeKey]bool)
		for tile := 0; tile < 6; tile++ {
			for edge := North; edge <= West; edge++ {
				tk := NewTileEdgeKey(tile, edge)
				assert.False(t, seen[tk])
				seen[tk] = true
			}
		}
	}
	{ // Out of range input panics
		assert.Panics(t, func() { NewTileEdgeKey(-1, North) })
		assert.Panics(t, func() { NewTileEdgeKey(0, EdgeLabel(9)) })
	}
}

func TestNameMaps(t *testing.T) {
	assert.Equal(t, North, EdgeNameMap["N"])
	assert.Equal(t, West, EdgeNameMap["W"])
	assert.Equal(t, "E", East.String())
	assert.Equal(t, OpTransposeReverse, OpNameMap["TR"])
	assert.Equal(t, "TR", OpTransposeReverse.String())
	{ // Only R and TR reverse
		assert.False(t, OpNone.Reverses())
		assert.False(t, OpTranspose.Reverses())
		assert.True(t, OpReverse.Reverses())
		assert.True(t, OpTransposeReverse.Reverses())
	}
}
