package neighbors

import (
	"github.com/james-bowman/sparse"
	"github.com/pkg/errors"

	"github.com/notargets/meshneighbors/types"
)

// ConnectGlobal computes the same side adjacency as Find without a wavefront. Every side is a
// row of a sparse face to vertex incidence matrix, FToV, and two sides are the same side when
// they share both vertices, where FToV * FToV^T holds a 2. It needs memory for the whole face
// to face product and is used to cross check Find.
func ConnectGlobal(EToV [][types.NFaces]int) (c *Connectivity, err error) {
	var (
		K          = len(EToV)
		TotalFaces = types.NFaces * K
		Nv         int
	)
	c = NewConnectivity(K)
	if K == 0 {
		return
	}
	for k, verts := range EToV {
		for _, v := range verts {
			if v < 0 {
				return nil, errors.Errorf("cell %d has negative vertex %d", k, v)
			}
			if v+1 > Nv {
				Nv = v + 1
			}
		}
	}
	SpFToVTmp := sparse.NewDOK(TotalFaces, Nv)
	var sk int
	for k := 0; k < K; k++ {
		for face := 0; face < types.NFaces; face++ {
			fv := types.SideVertices(EToV[k], face)
			SpFToVTmp.Set(sk, fv[0], 1)
			SpFToVTmp.Set(sk, fv[1], 1)
			sk++
		}
	}
	SpFToV := SpFToVTmp.ToCSR()
	SpFToF := sparse.NewCSR(TotalFaces, TotalFaces, nil, nil, nil)
	SpFToF.Mul(SpFToV, SpFToV.T())
	SpFToF.DoNonZero(func(f1, f2 int, v float64) {
		if err != nil || f2 <= f1 || v != 2 {
			return
		}
		err = c.connect(f1/types.NFaces, f1%types.NFaces, f2/types.NFaces, f2%types.NFaces)
	})
	if err != nil {
		return nil, err
	}
	return
}
