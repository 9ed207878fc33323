package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file, keys match the field names
type NeighborParameters struct {
	Title             string `json:"Title"`
	GridFile          string `json:"GridFile"`
	IndexBase         int    `json:"IndexBase"`   // Index base of text matrix grids, 0 or 1
	ExcludeFile       string `json:"ExcludeFile"` // 0-based positions of cells to remove before discovery
	NeighborsFile     string `json:"NeighborsFile"`
	NeighborSidesFile string `json:"NeighborSidesFile"`
	CellsFile         string `json:"CellsFile"`
	CellMapFile       string `json:"CellMapFile"`
	Seed              int    `json:"Seed"`
	ParallelDegree    int    `json:"ParallelDegree"` // 0 uses every CPU
	RequireConnected  bool   `json:"RequireConnected"`
	CrossCheck        bool   `json:"CrossCheck"`
}

func NewNeighborParameters() *NeighborParameters {
	return &NeighborParameters{
		IndexBase:         1,
		NeighborsFile:     "EToE.txt",
		NeighborSidesFile: "EToF.txt",
		CellsFile:         "EToV.txt",
	}
}

// Parse overlays the values present in the YAML data on ip
func (ip *NeighborParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *NeighborParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t= Grid File\n", ip.GridFile)
	fmt.Printf("[%d]\t\t\t= Index Base\n", ip.IndexBase)
	if len(ip.ExcludeFile) != 0 {
		fmt.Printf("[%s]\t\t= Exclude File\n", ip.ExcludeFile)
	}
	fmt.Printf("[%s, %s, %s]\t= Output Files\n", ip.NeighborsFile, ip.NeighborSidesFile, ip.CellsFile)
	if len(ip.CellMapFile) != 0 {
		fmt.Printf("[%s]\t\t= Cell Map File\n", ip.CellMapFile)
	}
	fmt.Printf("[%d]\t\t\t= Seed\n", ip.Seed)
	fmt.Printf("[%d]\t\t\t= Parallel Degree\n", ip.ParallelDegree)
	fmt.Printf("[%v]\t\t\t= Require Connected\n", ip.RequireConnected)
}
