package readfiles

import (
	"fmt"
	"io"
)

// ReadGambitCells reads the element section of a 2D Gambit neutral file. Vertex indices are
// returned as found in the file, Gambit node numbers are 1-based.
func ReadGambitCells(r io.Reader, name string) (rows [][]int, err error) {
	var (
		lr           = newLineReader(r, name)
		Nv, K, Nsd   int
		Nmats, Nbcs  int
		dum          int
		line         string
		n, ind, typ  int
		nfaces       int
		n1, n2, n3   int
		headerFields = 6
	)
	// Skip first six lines
	if err = lr.skipLines(6); err != nil {
		return
	}
	if line, err = lr.mustGetLine(); err != nil {
		return
	}
	/*
		Nv      // num nodes in mesh
		K       // num elements
		Nmats   // num material groups
		Nbcs    // num boundary groups
		Nsd;    // num space dimensions
	*/
	if n, err = fmt.Sscanf(line, "%d %d %d %d %d %d", &Nv, &K, &Nmats, &Nbcs, &Nsd, &dum); err != nil || n < headerFields {
		return nil, lr.errorf("read fewer than %d dimensions, read %d, line: %s", headerFields, n, line)
	}
	if Nv < 0 || K < 0 {
		return nil, lr.errorf("negative node or element count, line: %s", line)
	}
	if Nsd != 2 {
		return nil, lr.errorf("only 2 dimensional grids have triangle cells, have %d space dimensions", Nsd)
	}
	// ENDOFSECTION, NODAL COORDINATES, the coordinates, ENDOFSECTION, ELEMENTS/CELLS
	if err = lr.skipLines(2 + Nv + 2); err != nil {
		return
	}
	//-------------------------------------
	//    ELEMENTS/CELLS 2.4.6
	//      1  3  3        1       2       3
	//      2  3  3        3       2       4
	//-------------------------------------
	rows = make([][]int, K)
	for i := 0; i < K; i++ {
		if line, err = lr.mustGetLine(); err != nil {
			return nil, err
		}
		nargs := 6
		if n, err = fmt.Sscanf(line, "%d %d %d %d %d %d", &ind, &typ, &nfaces, &n1, &n2, &n3); err != nil || n < nargs {
			return nil, lr.errorf("read fewer than required dimensions, read %d, need %d, line: %s", n, nargs, line)
		}
		if typ != 3 || nfaces != 3 {
			return nil, lr.errorf("element type %d with %d nodes, only triangles are supported", typ, nfaces)
		}
		if ind < 1 || ind > K {
			return nil, lr.errorf("element number %d out of range [1,%d]", ind, K)
		}
		rows[ind-1] = []int{n1, n2, n3}
	}
	for k, row := range rows {
		if row == nil {
			return nil, &ParseError{File: name, Msg: fmt.Sprintf("element %d is missing", k+1)}
		}
	}
	return
}
