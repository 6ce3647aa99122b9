package mesh

import (
	"fmt"

	"github.com/james-bowman/sparse"

	"github.com/areanddee/cubedsphere/types"
)

const (
	NumStages              = 4
	NumAdjacenciesPerStage = 3
	NumAdjacencies         = NumStages * NumAdjacenciesPerStage
)

// ScheduleError reports a communication schedule that violates the coverage
// or stage disjointness invariants.
type ScheduleError struct {
	Reason string
}

func (e *ScheduleError) Error() string {
	return "invalid communication schedule: " + e.Reason
}

/*
Adjacency pairs two tile edges with the orientation transform relating them.
Exchange across an adjacency is bidirectional: each side supplies the other's
ghost data from its own interior, transformed by Op.
*/
type Adjacency struct {
	A, B types.TileEdgeKey
	Op   types.TransformOp
}

func NewAdjacency(tileA int, edgeA types.EdgeLabel, tileB int, edgeB types.EdgeLabel,
	op types.TransformOp) Adjacency {
	return Adjacency{
		A:  types.NewTileEdgeKey(tileA, edgeA),
		B:  types.NewTileEdgeKey(tileB, edgeB),
		Op: op,
	}
}

func (adj Adjacency) String() string {
	return fmt.Sprintf("%s <-> %s [%s]", adj.A, adj.B, adj.Op)
}

// Stage groups adjacencies whose edges touch disjoint (tile,edge) endpoints,
// so its members can execute in any order, or concurrently, with identical
// results.
type Stage []Adjacency

// Schedule is the full ordered set of stages covering the cube's 12
// edge-adjacencies. It is immutable after construction.
type Schedule []Stage

/*
BuildSchedule returns the hand-authored connectivity of the cube-sphere mesh:
12 edge-adjacencies in 4 non-interfering stages. The topology is fixed data,
not computed; the transform tags record how each neighbor pair's local edge
coordinates relate. The table is validated before being returned.
*/
func BuildSchedule() (sched Schedule, err error) {
	sched = Schedule{
		Stage{
			NewAdjacency(0, types.North, 1, types.North, types.OpReverse),
			NewAdjacency(3, types.East, 4, types.West, types.OpNone),
			NewAdjacency(2, types.South, 5, types.East, types.OpTransposeReverse),
		},
		Stage{
			NewAdjacency(0, types.East, 4, types.North, types.OpTranspose),
			NewAdjacency(2, types.East, 3, types.West, types.OpNone),
			NewAdjacency(1, types.South, 5, types.North, types.OpNone),
		},
		Stage{
			NewAdjacency(0, types.West, 2, types.North, types.OpTransposeReverse),
			NewAdjacency(1, types.West, 4, types.East, types.OpNone),
			NewAdjacency(3, types.South, 5, types.South, types.OpReverse),
		},
		Stage{
			NewAdjacency(0, types.South, 3, types.North, types.OpNone),
			NewAdjacency(1, types.East, 2, types.West, types.OpNone),
			NewAdjacency(4, types.South, 5, types.West, types.OpTranspose),
		},
	}
	if err = sched.Validate(); err != nil {
		return nil, err
	}
	return
}

/*
Validate checks the structural invariants of the schedule:
  - 4 stages of 3 adjacencies each
  - every (tile,edge) endpoint of the mesh appears in exactly one adjacency
  - no endpoint appears twice within one stage
  - every transform tag is in the recognized set

Endpoint coverage is verified independently of the authored grouping through
an endpoint-by-adjacency incidence product: with E the 24x12 incidence
matrix, diag(E*Et) counts the adjacencies each endpoint participates in, and
coverage holds exactly when every diagonal entry is 1.
*/
func (sched Schedule) Validate() error {
	var (
		nEndpoints = NumTiles * NumEdgesPerTile
	)
	if len(sched) != NumStages {
		return &ScheduleError{Reason: fmt.Sprintf("have %d stages, want %d", len(sched), NumStages)}
	}
	var nAdj int
	for _, stage := range sched {
		nAdj += len(stage)
	}
	if nAdj != NumAdjacencies {
		return &ScheduleError{Reason: fmt.Sprintf("have %d adjacencies, want %d", nAdj, NumAdjacencies)}
	}
	SpETmp := sparse.NewDOK(nEndpoints, nAdj)
	var sk int
	for si, stage := range sched {
		if len(stage) != NumAdjacenciesPerStage {
			return &ScheduleError{Reason: fmt.Sprintf("stage %d has %d adjacencies, want %d",
				si, len(stage), NumAdjacenciesPerStage)}
		}
		seen := make(map[types.TileEdgeKey]bool)
		for _, adj := range stage {
			if adj.Op > types.OpTransposeReverse {
				return &ScheduleError{Reason: fmt.Sprintf("adjacency %s carries an unknown transform tag %d",
					adj, adj.Op)}
			}
			if adj.A == adj.B {
				return &ScheduleError{Reason: fmt.Sprintf("adjacency %s pairs an edge with itself", adj)}
			}
			for _, tk := range [2]types.TileEdgeKey{adj.A, adj.B} {
				if tk.Tile() >= NumTiles {
					return &ScheduleError{Reason: fmt.Sprintf("endpoint %s names tile %d outside 0..%d",
						tk, tk.Tile(), NumTiles-1)}
				}
				if seen[tk] {
					return &ScheduleError{Reason: fmt.Sprintf("endpoint %s appears twice within stage %d", tk, si)}
				}
				seen[tk] = true
				SpETmp.Set(tk.Tile()*NumEdgesPerTile+int(tk.Edge()), sk, 1)
			}
			sk++
		}
	}
	SpE := SpETmp.ToCSR()
	SpEEt := sparse.NewCSR(nEndpoints, nEndpoints, nil, nil, nil)
	SpEEt.Mul(SpE, SpE.T())
	for i := 0; i < nEndpoints; i++ {
		count := SpEEt.At(i, i)
		if count != 1 {
			tk := types.NewTileEdgeKey(i/NumEdgesPerTile, types.EdgeLabel(i%NumEdgesPerTile))
			return &ScheduleError{Reason: fmt.Sprintf("endpoint %s appears in %g adjacencies, want exactly 1",
				tk, count)}
		}
	}
	return nil
}
