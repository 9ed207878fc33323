package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseError locates a malformed line in an input file
type ParseError struct {
	File string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", e.File, e.Msg)
	}
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

type lineReader struct {
	reader *bufio.Reader
	name   string
	line   int
}

func newLineReader(r io.Reader, name string) *lineReader {
	return &lineReader{
		reader: bufio.NewReader(r),
		name:   name,
	}
}

func (lr *lineReader) errorf(format string, args ...interface{}) error {
	return &ParseError{File: lr.name, Line: lr.line, Msg: fmt.Sprintf(format, args...)}
}

// getLine returns the next line without its line ending, io.EOF once the input is exhausted
func (lr *lineReader) getLine() (line string, err error) {
	line, err = lr.reader.ReadString('\n')
	if err != nil {
		if err != io.EOF || len(line) == 0 {
			return
		}
		err = nil // Last line with no newline
	}
	lr.line++
	line = strings.TrimRight(line, "\r\n")
	return
}

// mustGetLine is getLine for sections whose length is known in advance
func (lr *lineReader) mustGetLine() (line string, err error) {
	if line, err = lr.getLine(); err == io.EOF {
		err = lr.errorf("early end of file")
	}
	return
}

func (lr *lineReader) skipLines(n int) (err error) {
	for i := 0; i < n; i++ {
		if _, err = lr.mustGetLine(); err != nil {
			return
		}
	}
	return
}

func isComment(line string) bool {
	return strings.HasPrefix(line, "#") || strings.HasPrefix(line, "%")
}
