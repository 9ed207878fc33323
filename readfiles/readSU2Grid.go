package readfiles

import (
	"fmt"
	"io"
	"strings"
)

// From here: https://su2code.github.io/docs_v7/Mesh-File/
type SU2ElementType uint8

const (
	ELType_LINE          SU2ElementType = 3
	ELType_Triangle      SU2ElementType = 5
	ELType_Quadrilateral SU2ElementType = 9
)

func (et SU2ElementType) String() string {
	switch et {
	case ELType_LINE:
		return "line"
	case ELType_Triangle:
		return "triangle"
	case ELType_Quadrilateral:
		return "quadrilateral"
	}
	return fmt.Sprintf("unknown (%d)", uint8(et))
}

// ReadSU2Cells reads the element section of a 2D SU2 grid. Vertex indices are returned as
// found in the file, SU2 indices are 0-based. Coordinates and markers are not read.
func ReadSU2Cells(r io.Reader, name string) (rows [][]int, err error) {
	var (
		lr  = newLineReader(r, name)
		dim int
		K   int
	)
	if dim, err = lr.readNumber("NDIME"); err != nil {
		return
	}
	if dim != 2 {
		return nil, lr.errorf("only 2 dimensional grids have triangle cells, NDIME is %d", dim)
	}
	if K, err = lr.readNumber("NELEM"); err != nil {
		return
	}
	if K < 0 {
		return nil, lr.errorf("negative element count %d", K)
	}
	rows = make([][]int, K)
	for k := 0; k < K; k++ {
		var (
			line       string
			n, nType   int
			v1, v2, v3 int
		)
		if line, err = lr.mustGetLine(); err != nil {
			return nil, err
		}
		if n, err = fmt.Sscanf(line, "%d %d %d %d", &nType, &v1, &v2, &v3); err != nil || n != 4 {
			return nil, lr.errorf("unable to read vertices from [%s]", line)
		}
		if nType != int(ELType_Triangle) {
			return nil, lr.errorf("%s element, only triangles (%d) are supported", SU2ElementType(nType), ELType_Triangle)
		}
		rows[k] = []int{v1, v2, v3}
	}
	return
}

func (lr *lineReader) getLineNoComments() (line string, err error) {
	for {
		if line, err = lr.mustGetLine(); err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if len(line) != 0 && !isComment(line) {
			return
		}
	}
}

func (lr *lineReader) getToken(label string) (token string, err error) {
	var (
		line string
	)
	if line, err = lr.getLineNoComments(); err != nil {
		return
	}
	ind := strings.Index(line, "=")
	if ind < 0 {
		return "", lr.errorf("badly formed input line [%s], should have an =", line)
	}
	if key := strings.TrimSpace(line[:ind]); key != label {
		return "", lr.errorf("expected %s, found %s", label, key)
	}
	token = line[ind+1:]
	return
}

func (lr *lineReader) readNumber(label string) (num int, err error) {
	var (
		token string
	)
	if token, err = lr.getToken(label); err != nil {
		return
	}
	if _, err = fmt.Sscanf(token, "%d", &num); err != nil {
		return 0, lr.errorf("unable to read number from token: [%s]", token)
	}
	return
}
