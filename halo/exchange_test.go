package halo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/areanddee/cubedsphere/mesh"
	"github.com/areanddee/cubedsphere/types"
	"github.com/areanddee/cubedsphere/utils"
)

func buildTestExchange(t *testing.T, n int, opts ...Option) *Exchanger {
	sched, err := mesh.BuildSchedule()
	require.NoError(t, err)
	ex, err := BuildExchange(sched, n, opts...)
	require.NoError(t, err)
	return ex
}

func TestExchangeScenario(t *testing.T) {
	// Adjacency ((0,N) <-> (1,N), op=R): each side's north halo is the
	// other side's north interior row, reversed
	var (
		n  = 4
		ex = buildTestExchange(t, n)
		f  = mesh.NewField(n)
	)
	f.SetInteriorRow(0, 0, []float64{1, 2, 3, 4})
	f.SetInteriorRow(1, 0, []float64{5, 6, 7, 8})
	r, err := ex.Apply(f)
	require.NoError(t, err)
	assert.Equal(t, []float64{8, 7, 6, 5}, f.Halo(0, types.North))
	assert.Equal(t, []float64{4, 3, 2, 1}, f.Halo(1, types.North))
	// Apply mutates in place and returns the same Field
	assert.Same(t, f, r)
}

func TestExchangeAgainstPrimitives(t *testing.T) {
	// The specialized pipeline must agree with the pure edge primitives:
	// for every adjacency, each side's halo equals the other side's
	// extracted boundary data under the adjacency's transform
	var (
		n  = 5
		ex = buildTestExchange(t, n)
		f  = mesh.NewField(n)
	)
	f.InitGradient()
	before := f.Copy()
	_, err := ex.Apply(f)
	require.NoError(t, err)
	sched, err := mesh.BuildSchedule()
	require.NoError(t, err)
	for _, stage := range sched {
		for _, adj := range stage {
			dataA := mesh.ExtractEdge(before.Tiles[adj.A.Tile()], adj.A.Edge(), n)
			dataB := mesh.ExtractEdge(before.Tiles[adj.B.Tile()], adj.B.Edge(), n)
			toB, err := mesh.Transform(dataA, adj.Op)
			require.NoError(t, err)
			toA, err := mesh.Transform(dataB, adj.Op)
			require.NoError(t, err)
			assert.Equal(t, toB.DataP, f.Halo(adj.B.Tile(), adj.B.Edge()), "adjacency %s", adj)
			assert.Equal(t, toA.DataP, f.Halo(adj.A.Tile(), adj.A.Edge()), "adjacency %s", adj)
		}
	}
	{ // Interiors are never written by the exchange
		for tile := 0; tile < mesh.NumTiles; tile++ {
			for i := 0; i < n; i++ {
				assert.Equal(t, before.InteriorRow(tile, i), f.InteriorRow(tile, i))
			}
		}
	}
}

func TestExchangeIdempotence(t *testing.T) {
	var (
		n  = 8
		ex = buildTestExchange(t, n)
		f  = mesh.NewField(n)
	)
	f.InitRandom()
	_, err := ex.Apply(f)
	require.NoError(t, err)
	once := f.Copy()
	_, err = ex.Apply(f)
	require.NoError(t, err)
	for tile := 0; tile < mesh.NumTiles; tile++ {
		assert.Equal(t, once.Tiles[tile].DataP, f.Tiles[tile].DataP, "tile %d", tile)
	}
}

func permutations3() [][3]int {
	return [][3]int{
		{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
	}
}

func TestExchangeOrderIndependence(t *testing.T) {
	// Stage disjointness licenses any execution order within a stage: all
	// 3! orders of every stage must produce an identical Field
	var (
		n = 6
	)
	base, err := mesh.BuildSchedule()
	require.NoError(t, err)
	seed := mesh.NewField(n)
	seed.InitRandom()
	reference := applyWithSchedule(t, base, n, seed)
	for si := range base {
		for _, perm := range permutations3() {
			permuted := make(mesh.Schedule, len(base))
			copy(permuted, base)
			permuted[si] = mesh.Stage{base[si][perm[0]], base[si][perm[1]], base[si][perm[2]]}
			got := applyWithSchedule(t, permuted, n, seed)
			for tile := 0; tile < mesh.NumTiles; tile++ {
				assert.Equal(t, reference.Tiles[tile].DataP, got.Tiles[tile].DataP,
					"stage %d order %v tile %d", si, perm, tile)
			}
		}
	}
}

func applyWithSchedule(t *testing.T, sched mesh.Schedule, n int, seed *mesh.Field) *mesh.Field {
	ex, err := BuildExchange(sched, n)
	require.NoError(t, err)
	f := seed.Copy()
	_, err = ex.Apply(f)
	require.NoError(t, err)
	return f
}

func TestStageParallelMatchesSequential(t *testing.T) {
	var (
		n   = 32
		seq = buildTestExchange(t, n)
		par = buildTestExchange(t, n, StageParallel(true))
	)
	seed := mesh.NewField(n)
	seed.InitRandom()
	fSeq, fPar := seed.Copy(), seed.Copy()
	_, err := seq.Apply(fSeq)
	require.NoError(t, err)
	_, err = par.Apply(fPar)
	require.NoError(t, err)
	for tile := 0; tile < mesh.NumTiles; tile++ {
		assert.Equal(t, fSeq.Tiles[tile].DataP, fPar.Tiles[tile].DataP, "tile %d", tile)
	}
}

func TestBuildExchangeFailures(t *testing.T) {
	base, err := mesh.BuildSchedule()
	require.NoError(t, err)
	{ // A schedule missing one adjacency fails before any Field is processed
		broken := mesh.Schedule{base[0], base[1], base[2], base[3][:2]}
		_, err := BuildExchange(broken, 4)
		require.Error(t, err)
		var ce *ConfigurationError
		require.True(t, errors.As(err, &ce))
		var se *mesh.ScheduleError
		assert.True(t, errors.As(err, &se))
	}
	{ // Non-positive resolution fails
		_, err := BuildExchange(base, 0)
		require.Error(t, err)
		var ce *ConfigurationError
		assert.True(t, errors.As(err, &ce))
	}
}

func TestApplyShapeErrors(t *testing.T) {
	var (
		ex = buildTestExchange(t, 4)
	)
	{ // Wrong resolution
		f := mesh.NewField(5)
		_, err := ex.Apply(f)
		require.Error(t, err)
		var se *ShapeError
		assert.True(t, errors.As(err, &se))
	}
	{ // Wrong tile count
		f := &mesh.Field{N: 4, Tiles: make([]utils.Matrix, 5)}
		for i := range f.Tiles {
			f.Tiles[i] = utils.NewMatrix(6, 6)
		}
		_, err := ex.Apply(f)
		require.Error(t, err)
		var se *ShapeError
		assert.True(t, errors.As(err, &se))
	}
}
