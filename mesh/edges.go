package mesh

import (
	"fmt"

	"github.com/areanddee/cubedsphere/types"
	"github.com/areanddee/cubedsphere/utils"
)

/*
Edge addressing for a single (N+2)x(N+2) tile grid, stored row-major. The
interior occupies rows and columns 1..N; the outermost ring holds the halo.
Both the interior and ghost index lists exclude the four corner cells and
share one direction-to-axis mapping:

	North = top interior row      (row 1, traversed west to east)
	South = bottom interior row   (row N)
	East  = rightmost column      (column N, traversed north to south)
	West  = leftmost column       (column 1)
*/

// EdgeInteriorIndices returns raw-data indices of the outermost interior
// cells along edge, in canonical traversal order.
func EdgeInteriorIndices(edge types.EdgeLabel, n int) (I utils.Index) {
	var (
		stride = n + 2
	)
	I = utils.NewIndex(n)
	switch edge {
	case types.North:
		for k := 0; k < n; k++ {
			I[k] = 1*stride + (k + 1)
		}
	case types.South:
		for k := 0; k < n; k++ {
			I[k] = n*stride + (k + 1)
		}
	case types.East:
		for k := 0; k < n; k++ {
			I[k] = (k+1)*stride + n
		}
	case types.West:
		for k := 0; k < n; k++ {
			I[k] = (k+1)*stride + 1
		}
	default:
		panic(fmt.Errorf("unknown edge label %d", edge))
	}
	return
}

// EdgeGhostIndices returns raw-data indices of the halo cells just outside
// edge, in the same traversal order as EdgeInteriorIndices.
func EdgeGhostIndices(edge types.EdgeLabel, n int) (I utils.Index) {
	var (
		stride = n + 2
	)
	I = utils.NewIndex(n)
	switch edge {
	case types.North:
		for k := 0; k < n; k++ {
			I[k] = k + 1
		}
	case types.South:
		for k := 0; k < n; k++ {
			I[k] = (n+1)*stride + (k + 1)
		}
	case types.East:
		for k := 0; k < n; k++ {
			I[k] = (k+1)*stride + (n + 1)
		}
	case types.West:
		for k := 0; k < n; k++ {
			I[k] = (k + 1) * stride
		}
	default:
		panic(fmt.Errorf("unknown edge label %d", edge))
	}
	return
}

// ExtractEdge returns the boundary data of the outermost interior row or
// column at edge, excluding corners and halo cells. The input tile is not
// modified.
func ExtractEdge(tile utils.Matrix, edge types.EdgeLabel, n int) (V utils.Vector) {
	var (
		I    = EdgeInteriorIndices(edge, n)
		data = make([]float64, n)
	)
	for k, ind := range I {
		data[k] = tile.DataP[ind]
	}
	V = utils.NewVector(n, data)
	return
}

// WriteGhost returns a copy of tile with only the halo cells outside edge
// replaced by data. Interior cells, corners and the other halos are
// unchanged; the input tile is not modified.
func WriteGhost(tile utils.Matrix, edge types.EdgeLabel, data utils.Vector, n int) (R utils.Matrix) {
	if data.Len() != n {
		panic(fmt.Errorf("ghost data length %d does not match interior resolution %d", data.Len(), n))
	}
	var (
		I = EdgeGhostIndices(edge, n)
	)
	R = tile.Copy()
	for k, ind := range I {
		R.DataP[ind] = data.DataP[k]
	}
	return
}
