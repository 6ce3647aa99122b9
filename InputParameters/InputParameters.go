package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type ExchangeParameters struct {
	Title         string `yaml:"Title"`
	N             int    `yaml:"N"`
	Steps         int    `yaml:"Steps"`
	TilesPerFace  int    `yaml:"TilesPerFace"`
	NumUnits      int    `yaml:"NumUnits"`
	DeviceType    string `yaml:"DeviceType"`
	StageParallel bool   `yaml:"StageParallel"`
	InitType      string `yaml:"InitType"`
}

func (ep *ExchangeParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ep)
}

func (ep *ExchangeParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ep.Title)
	fmt.Printf("[%d]\t\t\t= N (interior resolution)\n", ep.N)
	fmt.Printf("[%d]\t\t\t= Steps\n", ep.Steps)
	fmt.Printf("[%d]\t\t\t= TilesPerFace\n", ep.TilesPerFace)
	fmt.Printf("[%d]\t\t\t= NumUnits\n", ep.NumUnits)
	fmt.Printf("[%s]\t\t\t= DeviceType\n", ep.DeviceType)
	fmt.Printf("[%v]\t\t\t= StageParallel\n", ep.StageParallel)
	fmt.Printf("[%s]\t\t= InitType\n", ep.InitType)
}
