package mesh

import (
	"fmt"

	"github.com/areanddee/cubedsphere/types"
	"github.com/areanddee/cubedsphere/utils"
)

// UnsupportedOperationError reports a transform tag outside the recognized
// set {N, T, R, TR}.
type UnsupportedOperationError struct {
	Op types.TransformOp
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("unsupported orientation transform tag: %d", e.Op)
}

/*
Transform maps boundary data to the orientation expected by the neighboring
tile. N and T leave the data unchanged; R and TR invert the element order.
Every op is self-inverse: applying it twice returns the original data. The
input vector is not modified.
*/
func Transform(data utils.Vector, op types.TransformOp) (R utils.Vector, err error) {
	switch op {
	case types.OpNone, types.OpTranspose:
		R = data.Copy()
	case types.OpReverse, types.OpTransposeReverse:
		var (
			n = data.Len()
			d = make([]float64, n)
		)
		for i, val := range data.DataP {
			d[n-1-i] = val
		}
		R = utils.NewVector(n, d)
	default:
		err = &UnsupportedOperationError{Op: op}
	}
	return
}
