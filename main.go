package main

import "github.com/areanddee/cubedsphere/cmd"

func main() {
	cmd.Execute()
}
