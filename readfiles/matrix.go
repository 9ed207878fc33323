package readfiles

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/notargets/meshneighbors/types"
	"github.com/notargets/meshneighbors/utils"
)

// ReadIntMatrix reads a whitespace separated integer matrix, one row per line. Blank lines and
// lines starting with # or % are skipped. Every row must have the width of the first one.
func ReadIntMatrix(r io.Reader, name string) (rows [][]int, err error) {
	var (
		lr    = newLineReader(r, name)
		line  string
		width = -1
	)
	for {
		if line, err = lr.getLine(); err != nil {
			if err == io.EOF {
				err = nil
			}
			return
		}
		line = strings.TrimSpace(line)
		if len(line) == 0 || isComment(line) {
			continue
		}
		fields := strings.Fields(line)
		if width < 0 {
			width = len(fields)
		} else if len(fields) != width {
			return nil, lr.errorf("row has %d entries, previous rows have %d", len(fields), width)
		}
		row := make([]int, width)
		for j, field := range fields {
			if row[j], err = strconv.Atoi(field); err != nil {
				return nil, lr.errorf("entry %d [%s] is not an integer", j, field)
			}
		}
		rows = append(rows, row)
	}
}

// ReadIndexList reads integers separated by any whitespace, comments are skipped as in ReadIntMatrix
func ReadIndexList(r io.Reader, name string) (I utils.Index, err error) {
	var (
		lr   = newLineReader(r, name)
		line string
		val  int
	)
	I = utils.Index{}
	for {
		if line, err = lr.getLine(); err != nil {
			if err == io.EOF {
				err = nil
			}
			return
		}
		line = strings.TrimSpace(line)
		if isComment(line) {
			continue
		}
		for _, field := range strings.Fields(line) {
			if val, err = strconv.Atoi(field); err != nil {
				return nil, lr.errorf("[%s] is not an integer", field)
			}
			I = append(I, val)
		}
	}
}

// WriteIntMatrix writes one space separated row per cell
func WriteIntMatrix(w io.Writer, rows [][types.NFaces]int) (err error) {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 64)
	for _, row := range rows {
		buf = buf[:0]
		for j, val := range row {
			if j != 0 {
				buf = append(buf, ' ')
			}
			buf = strconv.AppendInt(buf, int64(val), 10)
		}
		buf = append(buf, '\n')
		if _, err = bw.Write(buf); err != nil {
			return
		}
	}
	return bw.Flush()
}

// WriteIndex writes one value per line
func WriteIndex(w io.Writer, I utils.Index) (err error) {
	bw := bufio.NewWriter(w)
	for _, val := range I {
		if _, err = bw.WriteString(strconv.Itoa(val) + "\n"); err != nil {
			return
		}
	}
	return bw.Flush()
}

func ReadIndexListFile(filename string) (I utils.Index, err error) {
	var file *os.File
	if file, err = os.Open(filename); err != nil {
		return nil, errors.Wrap(err, "unable to open index file")
	}
	defer file.Close()
	return ReadIndexList(file, filename)
}

func WriteIntMatrixFile(filename string, rows [][types.NFaces]int) (err error) {
	var file *os.File
	if file, err = os.Create(filename); err != nil {
		return errors.Wrap(err, "unable to create output file")
	}
	if err = WriteIntMatrix(file, rows); err != nil {
		file.Close()
		return errors.Wrapf(err, "writing %s", filename)
	}
	return file.Close()
}

func WriteIndexFile(filename string, I utils.Index) (err error) {
	var file *os.File
	if file, err = os.Create(filename); err != nil {
		return errors.Wrap(err, "unable to create output file")
	}
	if err = WriteIndex(file, I); err != nil {
		file.Close()
		return errors.Wrapf(err, "writing %s", filename)
	}
	return file.Close()
}
