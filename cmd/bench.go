/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/areanddee/cubedsphere/halo"
	"github.com/areanddee/cubedsphere/mesh"
)

// BenchCmd represents the bench command
var BenchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Sweep tile resolutions and chart per-step exchange latency",
	Long: `Builds one exchange pipeline per resolution in the sweep, times the
per-step replay over a synthetic field, and writes a PNG latency chart with a
CSV of the raw numbers next to it.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("bench called")
		ns, _ := cmd.Flags().GetIntSlice("resolutions")
		steps, _ := cmd.Flags().GetInt("steps")
		plotFile, _ := cmd.Flags().GetString("plotFile")
		parallel, _ := cmd.Flags().GetBool("parallel")
		RunBench(ns, steps, plotFile, parallel)
	},
}

func init() {
	rootCmd.AddCommand(BenchCmd)
	BenchCmd.Flags().IntSlice("resolutions", []int{16, 32, 64, 128, 256}, "interior resolutions to sweep")
	BenchCmd.Flags().Int("steps", 1000, "exchange steps per resolution")
	BenchCmd.Flags().String("plotFile", "exchange-latency.png", "PNG destination for the latency chart")
	BenchCmd.Flags().BoolP("parallel", "p", false, "time the stage-parallel pipeline instead of sequential")
}

func RunBench(ns []int, steps int, plotFile string, parallel bool) {
	var (
		runID = uuid.New()
		pts   = make(plotter.XYs, len(ns))
	)
	sched, err := mesh.BuildSchedule()
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	for i, n := range ns {
		ex, err := halo.BuildExchange(sched, n, halo.StageParallel(parallel))
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		f := mesh.NewField(n)
		f.InitGradient()
		start := time.Now()
		for step := 0; step < steps; step++ {
			if _, err = ex.Apply(f); err != nil {
				fmt.Printf("error: %s\n", err.Error())
				os.Exit(1)
			}
		}
		usPerStep := float64(time.Since(start).Microseconds()) / float64(steps)
		pts[i].X, pts[i].Y = float64(n), usPerStep
		fmt.Printf("N = %4d: %8.2f us/step\n", n, usPerStep)
	}
	writeBenchCSV(csvNameFor(plotFile), runID, steps, parallel, pts)
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Halo exchange latency, run %s", runID)
	p.X.Label.Text = "N (interior resolution)"
	p.Y.Label.Text = "us per step"
	line, err := plotter.NewLine(pts)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	line.Width = vg.Points(1)
	p.Add(plotter.NewGrid(), line)
	if err = p.Save(8*vg.Inch, 6*vg.Inch, plotFile); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	fmt.Printf("wrote %s and %s\n", plotFile, csvNameFor(plotFile))
}

func csvNameFor(plotFile string) string {
	return plotFile + ".csv"
}

func writeBenchCSV(fileName string, runID uuid.UUID, steps int, parallel bool, pts plotter.XYs) {
	file, err := os.Create(fileName)
	if err != nil {
		panic(err)
	}
	defer file.Close()
	fmt.Fprintf(file, "# run %s, %d steps per point, parallel=%v\n", runID, steps, parallel)
	fmt.Fprintf(file, "N,us_per_step\n")
	for _, pt := range pts {
		fmt.Fprintf(file, "%d,%f\n", int(pt.X), pt.Y)
	}
}
