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
	"io/ioutil"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/areanddee/cubedsphere/InputParameters"
	"github.com/areanddee/cubedsphere/halo"
	"github.com/areanddee/cubedsphere/mesh"
	"github.com/areanddee/cubedsphere/topology"
)

type ModelExchange struct {
	ParamsFile string
	Graph      bool
	Verbose    bool
	Profile    bool
	Delay      time.Duration
}

// ExchangeCmd represents the exchange command
var ExchangeCmd = &cobra.Command{
	Use:   "exchange",
	Short: "Run the cube-sphere halo exchange time step loop",
	Long: `Builds the 12-adjacency communication schedule, specializes the
exchange pipeline once at setup, then replays it for the requested number of
time steps over a synthetic field.

cubedsphere exchange -n 64 --steps 1000`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("exchange called")
		me := &ModelExchange{}
		if me.ParamsFile, err = cmd.Flags().GetString("paramsFile"); err != nil {
			panic(err)
		}
		me.Graph, _ = cmd.Flags().GetBool("graph")
		me.Verbose, _ = cmd.Flags().GetBool("verbose")
		me.Profile, _ = cmd.Flags().GetBool("profile")
		dr, _ := cmd.Flags().GetInt("delay")
		me.Delay = time.Duration(dr) * time.Millisecond
		ep := processExchangeInput(cmd, me)
		RunExchange(me, ep)
	},
}

func processExchangeInput(cmd *cobra.Command, me *ModelExchange) (ep *InputParameters.ExchangeParameters) {
	var (
		err error
	)
	ep = &InputParameters.ExchangeParameters{
		Title:        "Scalar Halo Exchange",
		N:            64,
		Steps:        100,
		TilesPerFace: 1,
		NumUnits:     1,
		DeviceType:   "cpu",
		InitType:     "tileid",
	}
	if len(me.ParamsFile) != 0 {
		var data []byte
		if data, err = ioutil.ReadFile(me.ParamsFile); err != nil {
			panic(err)
		}
		if err = ep.Parse(data); err != nil {
			panic(err)
		}
	}
	// Command line flags override the parameters file
	if cmd.Flags().Changed("n") {
		ep.N, _ = cmd.Flags().GetInt("n")
	}
	if cmd.Flags().Changed("steps") {
		ep.Steps, _ = cmd.Flags().GetInt("steps")
	}
	if cmd.Flags().Changed("units") {
		ep.NumUnits, _ = cmd.Flags().GetInt("units")
	}
	if cmd.Flags().Changed("parallel") {
		ep.StageParallel, _ = cmd.Flags().GetBool("parallel")
	}
	return
}

func init() {
	rootCmd.AddCommand(ExchangeCmd)
	ExchangeCmd.Flags().StringP("paramsFile", "I", "", "YAML file of run parameters like:\n\t- N\n\t- Steps\n\t- NumUnits")
	ExchangeCmd.Flags().IntP("n", "n", 64, "interior resolution of each tile")
	ExchangeCmd.Flags().Int("steps", 100, "number of exchange time steps to run")
	ExchangeCmd.Flags().Int("units", 1, "number of compute units hosting the 6 tiles")
	ExchangeCmd.Flags().BoolP("parallel", "p", false, "run each stage's adjacencies on goroutines")
	ExchangeCmd.Flags().BoolP("graph", "g", false, "display the unfolded cube mesh after the run")
	ExchangeCmd.Flags().IntP("delay", "d", 5000, "milliseconds to hold the plot open")
	ExchangeCmd.Flags().BoolP("verbose", "v", false, "print the specialized exchange pipeline")
	ExchangeCmd.Flags().Bool("profile", false, "write a CPU profile for the run")
}

func RunExchange(me *ModelExchange, ep *InputParameters.ExchangeParameters) {
	var (
		err error
	)
	if me.Profile {
		defer profile.Start(profile.CPUProfile).Stop()
	}
	ep.Print()
	tp, err := topology.ValidateTopology(ep.TilesPerFace, ep.NumUnits)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	tp.Print()
	sched, err := mesh.BuildSchedule()
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	ex, err := halo.BuildExchange(sched, ep.N, halo.StageParallel(ep.StageParallel))
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	if me.Verbose {
		ex.Describe()
	}
	f := mesh.NewField(ep.N)
	if err = initField(f, ep.InitType); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	var (
		start         = time.Now()
		printInterval = ep.Steps / 10
	)
	if printInterval == 0 {
		printInterval = 1
	}
	for step := 1; step <= ep.Steps; step++ {
		if _, err = ex.Apply(f); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		if step%printInterval == 0 {
			elapsed := time.Since(start)
			fmt.Printf("step %6d, %8.2f us/step\n", step,
				float64(elapsed.Microseconds())/float64(step))
		}
	}
	elapsed := time.Since(start)
	fmt.Printf("%d steps in %v, %8.2f us/step, N=%d, units=%d\n",
		ep.Steps, elapsed, float64(elapsed.Microseconds())/float64(ep.Steps),
		ep.N, ep.NumUnits)
	if me.Graph {
		mesh.PlotField(f, me.Delay)
	}
}

func initField(f *mesh.Field, initType string) error {
	switch initType {
	case "tileid":
		f.InitTileID()
	case "gradient":
		f.InitGradient()
	case "random":
		f.InitRandom()
	default:
		return fmt.Errorf("unknown InitType %q, recognized values are tileid, gradient, random", initType)
	}
	return nil
}
