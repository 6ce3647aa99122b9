package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/areanddee/cubedsphere/types"
)

func TestBuildSchedule(t *testing.T) {
	sched, err := BuildSchedule()
	require.NoError(t, err)
	{ // 4 stages of 3 adjacencies
		assert.Equal(t, NumStages, len(sched))
		for _, stage := range sched {
			assert.Equal(t, NumAdjacenciesPerStage, len(stage))
		}
	}
	{ // Coverage: all 24 (tile,edge) endpoints appear exactly once
		count := make(map[types.TileEdgeKey]int)
		for _, stage := range sched {
			for _, adj := range stage {
				count[adj.A]++
				count[adj.B]++
			}
		}
		assert.Equal(t, NumTiles*NumEdgesPerTile, len(count))
		for tile := 0; tile < NumTiles; tile++ {
			for edge := types.North; edge <= types.West; edge++ {
				tk := types.NewTileEdgeKey(tile, edge)
				assert.Equal(t, 1, count[tk], "endpoint %s", tk)
			}
		}
	}
	{ // Stage disjointness: no endpoint twice within one stage
		for si, stage := range sched {
			seen := make(map[types.TileEdgeKey]bool)
			for _, adj := range stage {
				assert.False(t, seen[adj.A], "stage %d endpoint %s", si, adj.A)
				assert.False(t, seen[adj.B], "stage %d endpoint %s", si, adj.B)
				seen[adj.A] = true
				seen[adj.B] = true
			}
		}
	}
}

func TestScheduleValidation(t *testing.T) {
	base, err := BuildSchedule()
	require.NoError(t, err)
	{ // A stage missing one adjacency fails
		broken := Schedule{base[0], base[1], base[2], base[3][:2]}
		err := broken.Validate()
		require.Error(t, err)
		assert.IsType(t, &ScheduleError{}, err)
	}
	{ // A duplicated adjacency fails on coverage
		broken := Schedule{base[0], base[1], base[2],
			Stage{base[3][0], base[3][1], base[0][0]}}
		err := broken.Validate()
		require.Error(t, err)
		assert.IsType(t, &ScheduleError{}, err)
	}
	{ // Moving an adjacency into a stage that reuses its tile edges fails
		// disjointness: stage 0 already touches (0,N) and (1,N)
		broken := Schedule{
			Stage{base[0][0], base[0][1], NewAdjacency(0, types.North, 1, types.North, types.OpReverse)},
			base[1], base[2], base[3],
		}
		err := broken.Validate()
		require.Error(t, err)
	}
	{ // An unknown transform tag fails
		broken := Schedule{
			Stage{base[0][0], base[0][1],
				Adjacency{A: base[0][2].A, B: base[0][2].B, Op: types.TransformOp(7)}},
			base[1], base[2], base[3],
		}
		err := broken.Validate()
		require.Error(t, err)
	}
	{ // A self-paired edge fails
		broken := Schedule{
			Stage{base[0][0], base[0][1], NewAdjacency(2, types.South, 2, types.South, types.OpNone)},
			base[1], base[2], base[3],
		}
		err := broken.Validate()
		require.Error(t, err)
	}
}
