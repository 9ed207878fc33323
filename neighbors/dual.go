package neighbors

import (
	"sort"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/meshneighbors/types"
)

// Dense returns EToE and EToF as K x 3 matrices
func (c *Connectivity) Dense() (EToE, EToF *mat.Dense) {
	var (
		K = c.K()
	)
	if K == 0 {
		return
	}
	EToE, EToF = mat.NewDense(K, types.NFaces, nil), mat.NewDense(K, types.NFaces, nil)
	for k := 0; k < K; k++ {
		for j := 0; j < types.NFaces; j++ {
			EToE.Set(k, j, float64(c.EToE[k][j]))
			EToF.Set(k, j, float64(c.EToF[k][j]))
		}
	}
	return
}

// DualGraph has a node per cell and an edge between every pair of cells sharing a side
func (c *Connectivity) DualGraph() (g *simple.UndirectedGraph) {
	g = simple.NewUndirectedGraph()
	for k := range c.EToE {
		g.AddNode(simple.Node(k))
	}
	for k, nbrs := range c.EToE {
		for _, nbr := range nbrs {
			if nbr > k {
				g.SetEdge(g.NewEdge(simple.Node(k), simple.Node(nbr)))
			}
		}
	}
	return
}

// ConnectedComponents lists the cells of each connected region of the mesh, sorted within each
// component, components ordered by their lowest cell
func (c *Connectivity) ConnectedComponents() (comps [][]int) {
	for _, nodes := range topo.ConnectedComponents(c.DualGraph()) {
		cells := make([]int, len(nodes))
		for i, n := range nodes {
			cells[i] = int(n.ID())
		}
		sort.Ints(cells)
		comps = append(comps, cells)
	}
	sort.Slice(comps, func(i, j int) bool { return comps[i][0] < comps[j][0] })
	return
}

// Adjacency is the K x K cell to cell matrix, entry (k,nbr) holds the local side of k facing nbr
// plus one. An empty mesh has no adjacency matrix.
func (c *Connectivity) Adjacency() (A *sparse.CSR) {
	var (
		K = c.K()
	)
	if K == 0 {
		return
	}
	dok := sparse.NewDOK(K, K)
	for k, nbrs := range c.EToE {
		for j, nbr := range nbrs {
			if nbr != Boundary {
				dok.Set(k, nbr, float64(j+1))
			}
		}
	}
	return dok.ToCSR()
}
