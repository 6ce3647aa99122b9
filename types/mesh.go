package types

import (
	"fmt"
)

type EdgeLabel uint8

const (
	North EdgeLabel = iota
	East
	South
	West
)

var EdgeNameMap = map[string]EdgeLabel{
	"N": North,
	"E": East,
	"S": South,
	"W": West,
}

func (el EdgeLabel) String() string {
	switch el {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	}
	return "unknown"
}

/*
TransformOp labels the orientation transform relating the boundary data of two
adjacent tiles. The tag set carries four symbols to match the connectivity
table, though only two distinct behaviors exist: N and T leave the data
unchanged, R and TR invert the element order. The T/TR tags are kept separate
so that a future table extension with genuinely transpose-requiring
adjacencies does not change the schedule format.
*/
type TransformOp uint8

const (
	OpNone TransformOp = iota
	OpTranspose
	OpReverse
	OpTransposeReverse
)

var OpNameMap = map[string]TransformOp{
	"N":  OpNone,
	"T":  OpTranspose,
	"R":  OpReverse,
	"TR": OpTransposeReverse,
}

func (op TransformOp) String() string {
	switch op {
	case OpNone:
		return "N"
	case OpTranspose:
		return "T"
	case OpReverse:
		return "R"
	case OpTransposeReverse:
		return "TR"
	}
	return "unknown"
}

// Reverses reports whether the op inverts element order along the edge.
func (op TransformOp) Reverses() bool {
	return op == OpReverse || op == OpTransposeReverse
}

/*
TileEdgeKey is an always positive number that packs a (tile, edge) endpoint
into a single comparable value, so endpoints can be used as map keys and
compared for the coverage and disjointness checks on the schedule
*/
type TileEdgeKey uint32

func NewTileEdgeKey(tile int, edge EdgeLabel) (packed TileEdgeKey) {
	// This packs a tile index and an edge label into one uint32 to act as a
	// hash and an indirect access method
	var (
		limit = 1 << 16
	)
	if tile < 0 || tile >= limit {
		panic(fmt.Errorf("unable to pack tile index into a TileEdgeKey, have %d as input", tile))
	}
	if edge > West {
		panic(fmt.Errorf("unable to pack edge label into a TileEdgeKey, have %d as input", edge))
	}
	packed = TileEdgeKey(tile<<8 + int(edge))
	return
}

func (tk TileEdgeKey) Tile() int {
	return int(tk >> 8)
}

func (tk TileEdgeKey) Edge() EdgeLabel {
	return EdgeLabel(tk & 0xff)
}

func (tk TileEdgeKey) String() string {
	return fmt.Sprintf("(%d,%s)", tk.Tile(), tk.Edge())
}
