package cmd

import (
	"testing"

	"github.com/magiconair/properties/assert"

	"github.com/areanddee/cubedsphere/InputParameters"
)

func TestExchangeParameters(t *testing.T) {
	var (
		err error
	)
	fileInput := []byte(`
Title: Scalar Halo Exchange
N: 128
Steps: 500
TilesPerFace: 1
NumUnits: 6
DeviceType: cpu # Can be gpu
StageParallel: true
InitType: gradient # Can be tileid or random
`)
	var input InputParameters.ExchangeParameters
	if err = input.Parse(fileInput); err != nil {
		panic(err)
	}
	assert.Equal(t, input.N, 128)
	assert.Equal(t, input.Steps, 500)
	assert.Equal(t, input.NumUnits, 6)
	assert.Equal(t, input.StageParallel, true)
	assert.Equal(t, input.InitType, "gradient")
	input.Print()
}
