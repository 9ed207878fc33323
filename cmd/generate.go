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
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/notargets/meshneighbors/mesh"
	"github.com/notargets/meshneighbors/readfiles"
	"github.com/notargets/meshneighbors/types"
)

type ModelGenerate struct {
	MeshType  string
	NX, NY    int
	IndexBase int
	OutFile   string
}

// GenerateCmd represents the generate command
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a structured triangle mesh as a triangle to vertex matrix",
	Long: `
Writes a rectangle or torus of nx by ny quads, each split in two triangles, or a fan of nx
triangles around a central vertex, closed when ny is not zero.

meshneighbors generate -t torus --nx 100 --ny 100 -o torus.txt`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		mg := &ModelGenerate{}
		mg.MeshType, _ = cmd.Flags().GetString("type")
		mg.NX, _ = cmd.Flags().GetInt("nx")
		mg.NY, _ = cmd.Flags().GetInt("ny")
		mg.IndexBase, _ = cmd.Flags().GetInt("indexBase")
		mg.OutFile, _ = cmd.Flags().GetString("output")
		var m *mesh.Mesh
		if m, err = RunGenerate(mg); err != nil {
			return
		}
		fmt.Printf("[%s]\t\t= Mesh Type\n", mg.MeshType)
		fmt.Printf("[%d]\t\t\t= Cells\n", m.K())
		fmt.Printf("[%d]\t\t\t= Vertices\n", m.NumVertices)
		fmt.Printf("[%s]\t\t= Output File\n", mg.OutFile)
		return
	},
}

func init() {
	rootCmd.AddCommand(GenerateCmd)
	GenerateCmd.Flags().StringP("type", "t", "rectangle", "mesh type: rectangle, torus or fan")
	GenerateCmd.Flags().Int("nx", 10, "quads along x, or triangles in a fan")
	GenerateCmd.Flags().Int("ny", 10, "quads along y, for a fan not zero closes it")
	GenerateCmd.Flags().IntP("indexBase", "b", 1, "index base of the written vertex indices, 0 or 1")
	GenerateCmd.Flags().StringP("output", "o", "cells.txt", "output file")
}

func RunGenerate(mg *ModelGenerate) (m *mesh.Mesh, err error) {
	mt, ok := mesh.MeshTypeNames[strings.ToLower(mg.MeshType)]
	if !ok {
		return nil, errors.Errorf("unknown mesh type %q", mg.MeshType)
	}
	if mg.IndexBase != 0 && mg.IndexBase != 1 {
		return nil, errors.Errorf("index base must be 0 or 1, have %d", mg.IndexBase)
	}
	if m, err = mesh.Generate(mt, mg.NX, mg.NY); err != nil {
		return
	}
	rows := make([][types.NFaces]int, m.K())
	for k, verts := range m.EToV {
		for j, v := range verts {
			rows[k][j] = v + mg.IndexBase
		}
	}
	err = readfiles.WriteIntMatrixFile(mg.OutFile, rows)
	return
}
