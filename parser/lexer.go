package parser

import (
	"strings"

	"github.com/robinvdvleuten/stmtsplit/ast"
)

// Cell is a single comma separated value, with quotes removed.
type Cell struct {
	Value  string
	Quoted bool
	Pos    ast.Position
}

// Row is one logical line of a statement export. A blank line is a row
// without cells.
type Row struct {
	Line  int
	Cells []Cell
}

// Values returns the plain cell values of the row.
func (r Row) Values() []string {
	values := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		values[i] = c.Value
	}
	return values
}

// Lexer splits a statement export into rows and cells.
//
// Cells are separated by commas. A cell starting with a double quote runs until
// the matching closing quote, may contain commas and newlines, and uses a
// doubled quote ("") for a literal quote. Text between a closing quote and the
// next comma is appended to the cell as-is.
type Lexer struct {
	source   []byte
	filename string
	pos      int
	line     int
	column   int
}

// NewLexer creates a new lexer for the given source.
func NewLexer(source []byte, filename string) *Lexer {
	return &Lexer{
		source:   source,
		filename: filename,
		line:     1,
		column:   1,
	}
}

// ScanAll tokenizes the entire source. A trailing newline does not start a new
// row.
func (l *Lexer) ScanAll() ([]Row, error) {
	var rows []Row

	for l.pos < len(l.source) {
		row, err := l.scanRow()
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// scanRow scans cells until the end of the current line.
func (l *Lexer) scanRow() (Row, error) {
	row := Row{Line: l.line}

	if l.atLineEnd() {
		l.skipLineEnd()
		return row, nil
	}

	for {
		cell, err := l.scanCell()
		if err != nil {
			return Row{}, err
		}
		row.Cells = append(row.Cells, cell)

		if l.pos >= len(l.source) {
			return row, nil
		}
		if l.atLineEnd() {
			l.skipLineEnd()
			return row, nil
		}

		// Only a comma can stop a cell before the end of the line.
		l.advance()
	}
}

// scanCell scans one cell up to (not including) the next comma or line end.
func (l *Lexer) scanCell() (Cell, error) {
	cell := Cell{Pos: l.position()}

	if l.peek() != '"' {
		start := l.pos
		for l.pos < len(l.source) && l.peek() != ',' && !l.atLineEnd() {
			l.advance()
		}
		cell.Value = string(l.source[start:l.pos])
		return cell, nil
	}

	cell.Quoted = true
	l.advance()

	var buf strings.Builder
	for {
		if l.pos >= len(l.source) {
			return Cell{}, &FormatError{
				Pos:      cell.Pos,
				Value:    buf.String(),
				Expected: "closing double quote",
			}
		}

		ch := l.advance()
		if ch != '"' {
			buf.WriteByte(ch)
			continue
		}
		if l.peek() == '"' {
			l.advance()
			buf.WriteByte('"')
			continue
		}
		break
	}

	for l.pos < len(l.source) && l.peek() != ',' && !l.atLineEnd() {
		buf.WriteByte(l.advance())
	}

	cell.Value = buf.String()
	return cell, nil
}

func (l *Lexer) position() ast.Position {
	return ast.Position{Filename: l.filename, Line: l.line, Column: l.column}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.source) {
		return 0
	}
	return l.source[l.pos]
}

// atLineEnd reports whether the lexer sits on "\n" or "\r\n".
func (l *Lexer) atLineEnd() bool {
	switch l.peek() {
	case '\n':
		return true
	case '\r':
		return l.pos+1 < len(l.source) && l.source[l.pos+1] == '\n'
	}
	return false
}

func (l *Lexer) skipLineEnd() {
	if l.peek() == '\r' {
		l.advance()
	}
	l.advance()
}

func (l *Lexer) advance() byte {
	ch := l.source[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}
