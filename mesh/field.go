package mesh

import (
	"fmt"
	"math/rand"

	"github.com/areanddee/cubedsphere/types"
	"github.com/areanddee/cubedsphere/utils"
)

const (
	NumTiles        = 6
	NumEdgesPerTile = 4
)

/*
Field holds the 6 cube-sphere tiles as (N+2)x(N+2) grids: an NxN interior
surrounded by a one-cell halo border. Interiors are owned by the solver; halo
cells are undefined until an exchange runs and are overwritten on every
exchange. Corner halo cells are never filled.
*/
type Field struct {
	N     int // Interior resolution, identical across tiles
	Tiles []utils.Matrix
}

func NewField(n int) (f *Field) {
	if n < 1 {
		panic(fmt.Errorf("interior resolution must be positive, have %d", n))
	}
	f = &Field{
		N:     n,
		Tiles: make([]utils.Matrix, NumTiles),
	}
	for t := range f.Tiles {
		f.Tiles[t] = utils.NewMatrix(n+2, n+2)
	}
	return
}

func (f *Field) Copy() (r *Field) {
	r = &Field{
		N:     f.N,
		Tiles: make([]utils.Matrix, len(f.Tiles)),
	}
	for t := range f.Tiles {
		r.Tiles[t] = f.Tiles[t].Copy()
	}
	return
}

// CheckShape verifies the declared tile count and per-tile grid dimensions
// against interior resolution n.
func (f *Field) CheckShape(n int) error {
	if len(f.Tiles) != NumTiles {
		return fmt.Errorf("field has %d tiles, want %d", len(f.Tiles), NumTiles)
	}
	for t, tile := range f.Tiles {
		nr, nc := tile.Dims()
		if nr != n+2 || nc != n+2 {
			return fmt.Errorf("tile %d is %dx%d, want %dx%d for N=%d",
				t, nr, nc, n+2, n+2, n)
		}
	}
	return nil
}

// Interior accessors use 0-based interior coordinates, so row 0 is the
// northernmost interior row. The one-cell halo offset is handled here.
func (f *Field) InteriorAt(tile, i, j int) float64 {
	return f.Tiles[tile].At(i+1, j+1)
}

func (f *Field) SetInteriorAt(tile, i, j int, val float64) {
	f.Tiles[tile].Set(i+1, j+1, val)
}

func (f *Field) InteriorRow(tile, i int) (data []float64) {
	data = make([]float64, f.N)
	for j := 0; j < f.N; j++ {
		data[j] = f.InteriorAt(tile, i, j)
	}
	return
}

func (f *Field) SetInteriorRow(tile, i int, data []float64) {
	if len(data) != f.N {
		panic(fmt.Errorf("row length %d does not match interior resolution %d", len(data), f.N))
	}
	for j, val := range data {
		f.SetInteriorAt(tile, i, j, val)
	}
}

// Halo reads the ghost cells just outside edge, in the canonical edge
// traversal order (west to east for N/S, north to south for E/W).
func (f *Field) Halo(tile int, edge types.EdgeLabel) (data []float64) {
	var (
		gI = EdgeGhostIndices(edge, f.N)
		tD = f.Tiles[tile].DataP
	)
	data = make([]float64, f.N)
	for k, ind := range gI {
		data[k] = tD[ind]
	}
	return
}

// Synthetic interior initializers for drivers and benchmarks

func (f *Field) InitTileID() {
	for t := 0; t < len(f.Tiles); t++ {
		for i := 0; i < f.N; i++ {
			for j := 0; j < f.N; j++ {
				f.SetInteriorAt(t, i, j, float64(t))
			}
		}
	}
}

func (f *Field) InitGradient() {
	for t := 0; t < len(f.Tiles); t++ {
		for i := 0; i < f.N; i++ {
			for j := 0; j < f.N; j++ {
				f.SetInteriorAt(t, i, j, float64(t*f.N*f.N+i*f.N+j))
			}
		}
	}
}

func (f *Field) InitRandom() {
	for t := 0; t < len(f.Tiles); t++ {
		for i := 0; i < f.N; i++ {
			for j := 0; j < f.N; j++ {
				f.SetInteriorAt(t, i, j, rand.Float64())
			}
		}
	}
}
