package mesh

import (
	"math"
	"time"

	"github.com/notargets/avs/chart2d"
	"github.com/notargets/avs/geometry"
	avsUtils "github.com/notargets/avs/utils"

	"github.com/areanddee/cubedsphere/utils"
)

// Display positions of the 6 tiles, unfolded into a cross. Layout is for
// visualization only and carries no connectivity meaning.
var tileOrigins = [NumTiles][2]float64{
	{0.0, 0.0},  // tile 0
	{1.1, 0.0},  // tile 1
	{2.2, 0.0},  // tile 2
	{3.3, 0.0},  // tile 3
	{3.3, 1.1},  // tile 4
	{1.1, -1.1}, // tile 5
}

// BuildPlotMesh triangulates the interior cells of all 6 tiles into one
// TriMesh, splitting each quad cell into two triangles.
func BuildPlotMesh(f *Field) (tMesh geometry.TriMesh) {
	var (
		n        = f.N
		nVerts   = (n + 1) * (n + 1)
		cellSize = 1. / float64(n)
	)
	tMesh = geometry.TriMesh{
		XY:       make([]float32, 2*NumTiles*nVerts),
		TriVerts: make([][3]int64, 2*NumTiles*n*n),
	}
	var sk int
	for t := 0; t < NumTiles; t++ {
		base := t * nVerts
		for i := 0; i <= n; i++ {
			for j := 0; j <= n; j++ {
				iv := base + i*(n+1) + j
				tMesh.XY[2*iv] = float32(tileOrigins[t][0] + float64(j)*cellSize)
				tMesh.XY[2*iv+1] = float32(tileOrigins[t][1] + float64(n-i)*cellSize)
			}
		}
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				v00 := int64(base + i*(n+1) + j)
				v01 := v00 + 1
				v10 := v00 + int64(n+1)
				v11 := v10 + 1
				tMesh.TriVerts[sk] = [3]int64{v00, v10, v11}
				tMesh.TriVerts[sk+1] = [3]int64{v00, v11, v01}
				sk += 2
			}
		}
	}
	return
}

// PlotField opens a live chart of the unfolded cube and holds it for
// waitTime. Never called on the per-step hot path.
func PlotField(f *Field, waitTime time.Duration) {
	var (
		pMesh      = BuildPlotMesh(f)
		xMin, xMax = float32(math.MaxFloat32), -float32(math.MaxFloat32)
		yMin, yMax = float32(math.MaxFloat32), -float32(math.MaxFloat32)
	)
	lenXY := len(pMesh.XY) / 2
	for i := 0; i < lenXY; i++ {
		x, y := pMesh.XY[2*i], pMesh.XY[2*i+1]
		if x < xMin {
			xMin = x
		}
		if x > xMax {
			xMax = x
		}
		if y < yMin {
			yMin = y
		}
		if y > yMax {
			yMax = y
		}
	}
	cc := chart2d.NewChart2D(xMin, xMax, yMin, yMax, 1920, 1080,
		avsUtils.WHITE, avsUtils.BLACK, 0.9)
	cc.AddTriMesh(pMesh)
	utils.SleepFor(int(waitTime.Milliseconds()))
}
