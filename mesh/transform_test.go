package mesh

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/areanddee/cubedsphere/types"
	"github.com/areanddee/cubedsphere/utils"
)

func TestTransform(t *testing.T) {
	var (
		d = utils.NewVector(4, []float64{1, 2, 3, 4})
	)
	{ // N and T are the identity behavior
		for _, op := range []types.TransformOp{types.OpNone, types.OpTranspose} {
			R, err := Transform(d, op)
			require.NoError(t, err)
			assert.Equal(t, []float64{1, 2, 3, 4}, R.DataP)
		}
	}
	{ // R and TR invert element order
		for _, op := range []types.TransformOp{types.OpReverse, types.OpTransposeReverse} {
			R, err := Transform(d, op)
			require.NoError(t, err)
			assert.Equal(t, []float64{4, 3, 2, 1}, R.DataP)
		}
	}
	{ // Involution: applying any op twice returns the original data
		for _, op := range []types.TransformOp{types.OpNone, types.OpTranspose,
			types.OpReverse, types.OpTransposeReverse} {
			once, err := Transform(d, op)
			require.NoError(t, err)
			twice, err := Transform(once, op)
			require.NoError(t, err)
			assert.Equal(t, d.DataP, twice.DataP)
		}
	}
	{ // Purity: the input is never modified
		assert.Equal(t, []float64{1, 2, 3, 4}, d.DataP)
	}
	{ // Unknown tags fail
		_, err := Transform(d, types.TransformOp(9))
		require.Error(t, err)
		var uoe *UnsupportedOperationError
		assert.True(t, errors.As(err, &uoe))
	}
}
