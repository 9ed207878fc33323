package readfiles

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// GridFormat identifies the layout of a cell input file
type GridFormat uint8

const (
	TextMatrix GridFormat = iota // One row of vertex indices per cell
	SU2                          // SU2 native grid, .su2
	Gambit                       // Gambit neutral file, .neu
)

func (gf GridFormat) String() string {
	return [...]string{"TextMatrix", "SU2", "Gambit"}[gf]
}

// NewGridFormat picks the format from the file extension
func NewGridFormat(filename string) GridFormat {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".su2":
		return SU2
	case ".neu":
		return Gambit
	default:
		return TextMatrix
	}
}

// IndexBase is the index of the first vertex in files of this format. Text matrices carry no
// convention of their own, so textBase is returned for them.
func (gf GridFormat) IndexBase(textBase int) int {
	switch gf {
	case SU2:
		return 0
	case Gambit:
		return 1
	default:
		return textBase
	}
}

// ReadCells reads the cell to vertex rows of a grid in the given format
func ReadCells(r io.Reader, name string, gf GridFormat) (rows [][]int, err error) {
	switch gf {
	case SU2:
		return ReadSU2Cells(r, name)
	case Gambit:
		return ReadGambitCells(r, name)
	default:
		return ReadIntMatrix(r, name)
	}
}

// ReadCellFile reads the cell rows of a grid file, the format follows the file extension
func ReadCellFile(filename string) (rows [][]int, gf GridFormat, err error) {
	var file *os.File
	gf = NewGridFormat(filename)
	if file, err = os.Open(filename); err != nil {
		err = errors.Wrap(err, "unable to open grid file")
		return
	}
	defer file.Close()
	rows, err = ReadCells(file, filename, gf)
	return
}
