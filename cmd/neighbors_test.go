package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/notargets/meshneighbors/InputParameters"
	"github.com/notargets/meshneighbors/neighbors"
	"github.com/notargets/meshneighbors/readfiles"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	fileName := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(fileName, []byte(contents), 0644))
	return fileName
}

func readMatrix(t *testing.T, fileName string) [][]int {
	file, err := os.Open(fileName)
	require.NoError(t, err)
	defer file.Close()
	rows, err := readfiles.ReadIntMatrix(file, fileName)
	require.NoError(t, err)
	return rows
}

func outputParameters(dir, gridFile string) *InputParameters.NeighborParameters {
	ip := InputParameters.NewNeighborParameters()
	ip.GridFile = gridFile
	ip.NeighborsFile = filepath.Join(dir, "EToE.txt")
	ip.NeighborSidesFile = filepath.Join(dir, "EToF.txt")
	ip.CellsFile = filepath.Join(dir, "EToV.txt")
	return ip
}

func TestProcessInput(t *testing.T) {
	dir := t.TempDir()
	{ // A grid file is required
		_, err := processInput(viper.New())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must supply a grid file")
	}
	{ // Parameters file values, overridden by values set in viper
		ipFile := writeFile(t, dir, "input.yaml", `
Title: "Test Case"
GridFile: mesh.txt
IndexBase: 0
Seed: 3
RequireConnected: true
`)
		v := viper.New()
		v.Set("inputParametersFile", ipFile)
		v.Set("seed", 5)
		v.Set("cellMapFile", "map.txt")
		ip, err := processInput(v)
		require.NoError(t, err)
		assert.Equal(t, "mesh.txt", ip.GridFile)
		assert.Equal(t, 0, ip.IndexBase)
		assert.Equal(t, 5, ip.Seed)
		assert.True(t, ip.RequireConnected)
		assert.Equal(t, "map.txt", ip.CellMapFile)
		assert.Equal(t, "EToE.txt", ip.NeighborsFile)
	}
	{ // Missing parameters file
		v := viper.New()
		v.Set("inputParametersFile", filepath.Join(dir, "missing.yaml"))
		_, err := processInput(v)
		assert.Error(t, err)
	}
}

func TestRunNeighbors(t *testing.T) {
	dir := t.TempDir()
	gridFile := writeFile(t, dir, "mesh.txt", "# three triangles\n1 2 3\n2 4 3\n4 5 3\n")
	{ // Excluding the first triangle leaves two that share one side
		ip := outputParameters(dir, gridFile)
		ip.ExcludeFile = writeFile(t, dir, "exclude.txt", "0\n")
		ip.CellMapFile = filepath.Join(dir, "map.txt")
		ip.CrossCheck = true
		st, err := RunNeighbors(ip, nil, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, Stats{
			Cells:             2,
			Excluded:          1,
			UnusedVertices:    1,
			Components:        1,
			Waves:             2,
			BoundarySides:     4,
			InteriorSides:     1,
			AdjacencyNonZeros: 2,
		}, *st)
		assert.Equal(t, [][]int{{-1, 1, -1}, {-1, -1, 0}}, readMatrix(t, ip.NeighborsFile))
		assert.Equal(t, [][]int{{-1, 2, -1}, {-1, -1, 1}}, readMatrix(t, ip.NeighborSidesFile))
		assert.Equal(t, [][]int{{1, 3, 2}, {3, 4, 2}}, readMatrix(t, ip.CellsFile))
		assert.Equal(t, [][]int{{1}, {2}}, readMatrix(t, ip.CellMapFile))
	}
	{ // Without exclusion all three are connected in a strip
		ip := outputParameters(dir, gridFile)
		st, err := RunNeighbors(ip, &ModelNeighbors{Perf: true}, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, 3, st.Cells)
		assert.Equal(t, 2, st.InteriorSides)
		assert.Equal(t, [][]int{{-1, 1, -1}, {-1, 2, 0}, {-1, -1, 1}}, readMatrix(t, ip.NeighborsFile))
	}
	{ // Input errors
		ip := outputParameters(dir, writeFile(t, dir, "bad.txt", "1 2 3\n2 4\n"))
		_, err := RunNeighbors(ip, nil, zap.NewNop())
		assert.Error(t, err)

		ip = outputParameters(dir, gridFile)
		ip.ExcludeFile = writeFile(t, dir, "exclude_range.txt", "3\n")
		_, err = RunNeighbors(ip, nil, zap.NewNop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "can not be removed")

		ip = outputParameters(dir, filepath.Join(dir, "missing.txt"))
		_, err = RunNeighbors(ip, nil, zap.NewNop())
		assert.Error(t, err)
	}
	{ // A side shared by three triangles
		var nmErr *neighbors.NonManifoldError
		ip := outputParameters(dir, writeFile(t, dir, "fin.txt", "1 2 3\n2 1 4\n1 2 5\n"))
		core, logs := observer.New(zapcore.InfoLevel)
		_, err := RunNeighbors(ip, &ModelNeighbors{Perf: true}, zap.New(core))
		require.Error(t, err)
		assert.True(t, errors.As(err, &nmErr))
		// A failed search is not reported as a missing instruction counter
		assert.Equal(t, 0, logs.FilterMessage("CPU instruction counter is not available").Len())
		assert.Equal(t, 1, logs.FilterMessage("side is shared by more than two cells").Len())
	}
	{ // Two separate triangles
		var discErr *neighbors.DisconnectedError
		ip := outputParameters(dir, writeFile(t, dir, "apart.txt", "1 2 3\n4 5 6\n"))
		st, err := RunNeighbors(ip, nil, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, 2, st.Components)
		assert.Equal(t, []int{1, 1}, st.ComponentSizes)
		ip.RequireConnected = true
		_, err = RunNeighbors(ip, nil, zap.NewNop())
		require.Error(t, err)
		assert.True(t, errors.As(err, &discErr))
	}
}

func TestRunGenerate(t *testing.T) {
	dir := t.TempDir()
	{ // A generated torus is closed
		mg := &ModelGenerate{MeshType: "torus", NX: 4, NY: 3, IndexBase: 0, OutFile: filepath.Join(dir, "torus.txt")}
		m, err := RunGenerate(mg)
		require.NoError(t, err)
		assert.Equal(t, 24, m.K())
		ip := outputParameters(dir, mg.OutFile)
		ip.IndexBase = 0
		ip.ParallelDegree = 2
		ip.Seed = neighbors.RandomSeed
		st, err := RunNeighbors(ip, nil, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, 0, st.BoundarySides)
		assert.Equal(t, 36, st.InteriorSides)
		assert.Equal(t, 72, st.AdjacencyNonZeros)
	}
	{ // 1-based output
		mg := &ModelGenerate{MeshType: "Fan", NX: 2, NY: 0, IndexBase: 1, OutFile: filepath.Join(dir, "fan.txt")}
		_, err := RunGenerate(mg)
		require.NoError(t, err)
		assert.Equal(t, [][]int{{1, 2, 3}, {1, 3, 4}}, readMatrix(t, mg.OutFile))
	}
	{
		_, err := RunGenerate(&ModelGenerate{MeshType: "sphere", NX: 2, NY: 2, IndexBase: 1})
		assert.Error(t, err)
		_, err = RunGenerate(&ModelGenerate{MeshType: "rect", NX: 2, NY: 2, IndexBase: 2})
		assert.Error(t, err)
	}
}
