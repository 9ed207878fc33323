/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

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
	"runtime"
	"slices"

	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/notargets/meshneighbors/InputParameters"
	"github.com/notargets/meshneighbors/logger"
	"github.com/notargets/meshneighbors/mesh"
	"github.com/notargets/meshneighbors/neighbors"
	"github.com/notargets/meshneighbors/readfiles"
	"github.com/notargets/meshneighbors/types"
	"github.com/notargets/meshneighbors/utils"
)

type ModelNeighbors struct {
	Verbose bool
	Profile string // cpu, mem or empty
	Perf    bool   // Count CPU instructions spent finding neighbors
}

// Stats summarizes a neighbors run
type Stats struct {
	Cells, Excluded     int
	UnusedVertices      int
	WindingConflicts    int
	Components, Waves   int
	ComponentSizes      []int // Cells in each component of a disconnected mesh
	BoundarySides       int
	InteriorSides       int
	AdjacencyNonZeros   int
	Instructions        uint64
	InstructionsCounted bool
}

func (st *Stats) Print() {
	fmt.Printf("[%d]\t\t\t= Cells\n", st.Cells)
	if st.Excluded != 0 {
		fmt.Printf("[%d]\t\t\t= Excluded Cells\n", st.Excluded)
	}
	if st.UnusedVertices != 0 {
		fmt.Printf("[%d]\t\t\t= Unused Vertices\n", st.UnusedVertices)
	}
	if st.WindingConflicts != 0 {
		fmt.Printf("[%d]\t\t\t= Winding Conflicts\n", st.WindingConflicts)
	}
	fmt.Printf("[%d]\t\t\t= Components\n", st.Components)
	if len(st.ComponentSizes) != 0 {
		fmt.Printf("%v\t\t\t= Component Sizes\n", st.ComponentSizes)
	}
	fmt.Printf("[%d]\t\t\t= Waves\n", st.Waves)
	fmt.Printf("[%d]\t\t\t= Boundary Sides\n", st.BoundarySides)
	fmt.Printf("[%d]\t\t\t= Interior Sides\n", st.InteriorSides)
	fmt.Printf("[%d]\t\t\t= Cell Adjacency Non Zeros\n", st.AdjacencyNonZeros)
	if st.InstructionsCounted {
		fmt.Printf("[%d]\t\t= CPU Instructions\n", st.Instructions)
	}
}

// NeighborsCmd represents the neighbors command
var NeighborsCmd = &cobra.Command{
	Use:   "neighbors",
	Short: "Find the neighbor of every side of every triangle in a mesh",
	Long: `
Reads a triangle to vertex matrix, one triangle per line, or the cells of an SU2 (.su2) or
Gambit neutral (.neu) grid file, and writes three matrices with one row per triangle:
the neighboring triangle across each side, the side of that neighbor facing back, and the
0-indexed triangle to vertex matrix. Boundary sides are -1.

meshneighbors neighbors -F mesh.txt -x exclude.txt`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return viper.BindPFlags(cmd.Flags())
	},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		mn := &ModelNeighbors{}
		mn.Verbose = viper.GetBool("verbose")
		mn.Profile = viper.GetString("profile")
		mn.Perf = viper.GetBool("perf")
		var ip *InputParameters.NeighborParameters
		if ip, err = processInput(viper.GetViper()); err != nil {
			return
		}
		var log *zap.Logger
		if log, err = logger.New(mn.Verbose); err != nil {
			return
		}
		defer log.Sync()
		switch mn.Profile {
		case "":
		case "cpu":
			defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
		case "mem":
			defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
		default:
			return errors.Errorf("unknown profile %q, use cpu or mem", mn.Profile)
		}
		if mn.Verbose {
			ip.Print()
		}
		var st *Stats
		if st, err = RunNeighbors(ip, mn, log); err != nil {
			return
		}
		st.Print()
		return
	},
}

func init() {
	rootCmd.AddCommand(NeighborsCmd)
	defaults := InputParameters.NewNeighborParameters()
	NeighborsCmd.Flags().StringP("gridFile", "F", "", "grid file: triangle to vertex text matrix, SU2 (.su2) or Gambit (.neu)")
	NeighborsCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file for run parameters, flags override its values")
	NeighborsCmd.Flags().IntP("indexBase", "b", defaults.IndexBase, "index base of a text matrix grid file, 0 or 1")
	NeighborsCmd.Flags().StringP("excludeFile", "x", "", "file of 0-based triangle positions to remove before finding neighbors")
	NeighborsCmd.Flags().String("neighborsFile", defaults.NeighborsFile, "output file for the neighboring triangles (EToE)")
	NeighborsCmd.Flags().String("neighborSidesFile", defaults.NeighborSidesFile, "output file for the neighbor sides (EToF)")
	NeighborsCmd.Flags().String("cellsFile", defaults.CellsFile, "output file for the 0-indexed triangles (EToV)")
	NeighborsCmd.Flags().String("cellMapFile", "", "output file for the input position of each surviving triangle")
	NeighborsCmd.Flags().IntP("seed", "s", defaults.Seed, "triangle the search starts from, -1 picks one at random")
	NeighborsCmd.Flags().IntP("parallelDegree", "p", defaults.ParallelDegree, "number of concurrent comparisons, 0 uses every CPU")
	NeighborsCmd.Flags().Bool("requireConnected", false, "fail when the mesh is not connected")
	NeighborsCmd.Flags().Bool("crossCheck", false, "check the result against a sparse matrix computation of the same map")
	NeighborsCmd.Flags().String("profile", "", "write a cpu or mem profile to the current directory")
	NeighborsCmd.Flags().Bool("perf", false, "count CPU instructions spent finding neighbors (linux)")
}

const exampleFile = `
########################################
Title: "Test Case"
GridFile: mesh.txt
IndexBase: 1
ExcludeFile: exclude.txt # Optional
NeighborsFile: EToE.txt
NeighborSidesFile: EToF.txt
CellsFile: EToV.txt
Seed: 0 # -1 picks a random triangle
ParallelDegree: 0 # 0 uses every CPU
########################################
`

// processInput reads the run parameters file, if any, then applies every value set by flag,
// environment or config file
func processInput(v *viper.Viper) (ip *InputParameters.NeighborParameters, err error) {
	ip = InputParameters.NewNeighborParameters()
	if ipFile := v.GetString("inputParametersFile"); len(ipFile) != 0 {
		var data []byte
		if data, err = os.ReadFile(ipFile); err != nil {
			return nil, errors.Wrap(err, "unable to read input parameters file")
		}
		if err = ip.Parse(data); err != nil {
			return nil, errors.Wrapf(err, "parsing %s", ipFile)
		}
	}
	for key, p := range map[string]*string{
		"gridFile":          &ip.GridFile,
		"excludeFile":       &ip.ExcludeFile,
		"neighborsFile":     &ip.NeighborsFile,
		"neighborSidesFile": &ip.NeighborSidesFile,
		"cellsFile":         &ip.CellsFile,
		"cellMapFile":       &ip.CellMapFile,
	} {
		if v.IsSet(key) {
			*p = v.GetString(key)
		}
	}
	for key, p := range map[string]*int{
		"indexBase":      &ip.IndexBase,
		"seed":           &ip.Seed,
		"parallelDegree": &ip.ParallelDegree,
	} {
		if v.IsSet(key) {
			*p = v.GetInt(key)
		}
	}
	for key, p := range map[string]*bool{
		"requireConnected": &ip.RequireConnected,
		"crossCheck":       &ip.CrossCheck,
	} {
		if v.IsSet(key) {
			*p = v.GetBool(key)
		}
	}
	if len(ip.GridFile) == 0 {
		return nil, errors.Errorf("must supply a grid file (-F, --gridFile) or an input parameters file (-I) like:%s",
			exampleFile)
	}
	return
}

// RunNeighbors reads the grid, removes excluded cells, finds the side adjacency and writes it
func RunNeighbors(ip *InputParameters.NeighborParameters, mn *ModelNeighbors, log *zap.Logger) (st *Stats, err error) {
	var (
		rows [][]int
		gf   readfiles.GridFormat
		m    *mesh.Mesh
		c    *neighbors.Connectivity
	)
	if mn == nil {
		mn = &ModelNeighbors{}
	}
	if rows, gf, err = readfiles.ReadCellFile(ip.GridFile); err != nil {
		return
	}
	if m, err = mesh.NewMesh(rows, gf.IndexBase(ip.IndexBase)); err != nil {
		return nil, errors.Wrapf(err, "grid file %s", ip.GridFile)
	}
	log.Info("read grid", zap.String("file", ip.GridFile), zap.Stringer("format", gf),
		zap.Int("cells", m.K()), zap.Int("vertices", m.NumVertices))
	st = &Stats{}
	if len(ip.ExcludeFile) != 0 {
		var bad utils.Index
		if bad, err = readfiles.ReadIndexListFile(ip.ExcludeFile); err != nil {
			return nil, err
		}
		nIn := m.K()
		if m, err = m.RemoveCells(bad); err != nil {
			return nil, errors.Wrapf(err, "exclude file %s", ip.ExcludeFile)
		}
		st.Excluded = nIn - m.K()
		log.Info("removed cells", zap.Int("removed", st.Excluded), zap.Int("remaining", m.K()))
	}
	if unused := m.UnusedVertices(); len(unused) != 0 {
		st.UnusedVertices = len(unused)
		log.Warn("vertices are not used by any cell", zap.Int("count", len(unused)),
			zap.Ints("first", unused[:min(len(unused), 10)]))
	}
	config := &neighbors.FinderConfig{
		Seed:             ip.Seed,
		ParallelDegree:   ip.ParallelDegree,
		RequireConnected: ip.RequireConnected,
		Logger:           log,
	}
	if config.ParallelDegree == 0 {
		config.ParallelDegree = runtime.NumCPU()
	}
	find := func() (err error) {
		c, err = neighbors.NewFinder(config).Find(m.EToV)
		return
	}
	if mn.Perf {
		st.Instructions, st.InstructionsCounted, err = countInstructions(find)
		if err == nil && !st.InstructionsCounted {
			log.Warn("CPU instruction counter is not available")
		}
	} else {
		err = find()
	}
	if err != nil {
		var nmErr *neighbors.NonManifoldError
		if errors.As(err, &nmErr) {
			for _, side := range m.NonManifoldSides() {
				log.Error("side is shared by more than two cells", zap.Stringer("vertices", side))
			}
		}
		return nil, err
	}
	if err = c.Verify(); err != nil {
		return nil, errors.Wrap(err, "neighbor map is inconsistent")
	}
	if c.Components > 1 {
		for i, cells := range c.ConnectedComponents() {
			st.ComponentSizes = append(st.ComponentSizes, len(cells))
			log.Info("component", zap.Int("number", i), zap.Int("firstCell", cells[0]), zap.Int("cells", len(cells)))
		}
	}
	if st.WindingConflicts = c.WindingConflicts(m.EToV); st.WindingConflicts != 0 {
		log.Warn("neighboring cells are not wound consistently", zap.Int("sides", st.WindingConflicts))
	}
	if ip.CrossCheck {
		if err = crossCheck(m, c); err != nil {
			return nil, err
		}
		log.Info("cross check passed")
	}
	if mn.Verbose {
		log.Debug("memory", zap.String("usage", utils.GetMemUsage()))
	}
	if err = writeOutputs(ip, m, c); err != nil {
		return nil, err
	}
	st.Cells = m.K()
	st.Components = c.Components
	st.Waves = c.Waves
	st.BoundarySides = c.BoundarySides()
	st.InteriorSides = c.InteriorSides()
	if A := c.Adjacency(); A != nil {
		st.AdjacencyNonZeros = A.NNZ()
	}
	return
}

func crossCheck(m *mesh.Mesh, c *neighbors.Connectivity) (err error) {
	var g *neighbors.Connectivity
	if g, err = neighbors.ConnectGlobal(m.EToV); err != nil {
		return errors.Wrap(err, "cross check")
	}
	if !slices.Equal(c.EToE, g.EToE) || !slices.Equal(c.EToF, g.EToF) {
		return errors.New("cross check failed, sparse matrix neighbors differ")
	}
	return
}

func writeOutputs(ip *InputParameters.NeighborParameters, m *mesh.Mesh, c *neighbors.Connectivity) (err error) {
	for _, out := range []struct {
		file string
		rows [][types.NFaces]int
	}{
		{ip.NeighborsFile, c.EToE},
		{ip.NeighborSidesFile, c.EToF},
		{ip.CellsFile, m.EToV},
	} {
		if err = readfiles.WriteIntMatrixFile(out.file, out.rows); err != nil {
			return
		}
	}
	if len(ip.CellMapFile) != 0 {
		err = readfiles.WriteIndexFile(ip.CellMapFile, m.CellIDs)
	}
	return
}
