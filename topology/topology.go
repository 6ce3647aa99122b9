/*
Package topology validates the mapping of cube-sphere tiles onto physical
compute units and produces the tile-to-unit assignment consumed once at
setup. The exchange engine itself is agnostic to the mapping; physical
cross-unit transfer is the responsibility of the execution context.
*/
package topology

import (
	"fmt"

	"github.com/areanddee/cubedsphere/mesh"
	"github.com/areanddee/cubedsphere/utils"
)

// ConfigError reports an invalid tile/unit configuration.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }

type Topology struct {
	TilesPerFace int
	NumTiles     int
	NumUnits     int
	TilesPerUnit int
	Assignment   *utils.PartitionMap // contiguous tile -> unit buckets
}

/*
ValidateTopology checks that numUnits compute units can host the mesh's
tiles with a whole number of tiles per unit. Only single-tile faces are
supported: refinement to multiple tiles per face is future work for scaling
beyond 6 units.
*/
func ValidateTopology(tilesPerFace, numUnits int) (tp *Topology, err error) {
	if tilesPerFace != 1 {
		return nil, &ConfigError{Msg: fmt.Sprintf(
			"tilesPerFace = %d is not yet supported: only tilesPerFace = 1 (6 tiles total) is implemented",
			tilesPerFace)}
	}
	numTiles := mesh.NumTiles * tilesPerFace * tilesPerFace
	if numUnits < 1 {
		return nil, &ConfigError{Msg: fmt.Sprintf("numUnits = %d, need at least 1", numUnits)}
	}
	if numUnits > numTiles {
		return nil, &ConfigError{Msg: fmt.Sprintf(
			"numUnits = %d exceeds numTiles = %d: cannot have more units than tiles",
			numUnits, numTiles)}
	}
	if numTiles%numUnits != 0 {
		var validCounts []int
		for d := 1; d <= numTiles; d++ {
			if numTiles%d == 0 {
				validCounts = append(validCounts, d)
			}
		}
		return nil, &ConfigError{Msg: fmt.Sprintf(
			"numTiles = %d is not evenly divisible by numUnits = %d, valid unit counts are %v",
			numTiles, numUnits, validCounts)}
	}
	tp = &Topology{
		TilesPerFace: tilesPerFace,
		NumTiles:     numTiles,
		NumUnits:     numUnits,
		TilesPerUnit: numTiles / numUnits,
		Assignment:   utils.NewPartitionMap(numUnits, numTiles),
	}
	return
}

// UnitFor returns the compute unit hosting tile.
func (tp *Topology) UnitFor(tile int) (unit int) {
	unit, _, _ = tp.Assignment.GetBucket(tile)
	return
}

func (tp *Topology) Print() {
	fmt.Printf("Tile configuration:\n")
	fmt.Printf("  tilesPerFace: %d\n", tp.TilesPerFace)
	fmt.Printf("  total tiles: %d (%d faces x %d tiles/face)\n",
		tp.NumTiles, mesh.NumTiles, tp.TilesPerFace*tp.TilesPerFace)
	fmt.Printf("  units: %d, tiles per unit: %d\n", tp.NumUnits, tp.TilesPerUnit)
	for n := 0; n < tp.NumUnits; n++ {
		kMin, kMax := tp.Assignment.GetBucketRange(n)
		fmt.Printf("  unit %d hosts tiles [%d..%d)\n", n, kMin, kMax)
	}
}
