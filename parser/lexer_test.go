package parser

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func scanValues(t *testing.T, source string) [][]string {
	t.Helper()
	rows, err := NewLexer([]byte(source), "test.csv").ScanAll()
	assert.NoError(t, err)

	values := make([][]string, len(rows))
	for i, row := range rows {
		values[i] = row.Values()
	}
	return values
}

func TestLexer(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected [][]string
	}{
		{"Empty", "", [][]string{}},
		{"SingleCell", "a\n", [][]string{{"a"}}},
		{"NoTrailingNewline", "a,b", [][]string{{"a", "b"}}},
		{"EmptyCells", ",,x\n", [][]string{{"", "", "x"}}},
		{"TrailingComma", "a,\n", [][]string{{"a", ""}}},
		{"BlankLine", "a\n\nb\n", [][]string{{"a"}, {}, {"b"}}},
		{"Quoted", `"a,b","c"` + "\n", [][]string{{"a,b", "c"}}},
		{"EscapedQuote", `"say ""hi"""` + "\n", [][]string{{`say "hi"`}}},
		{"EmptyQuoted", `""` + "\n", [][]string{{""}}},
		{"Multiline", "\"a\nb\",c\n", [][]string{{"a\nb", "c"}}},
		{"TextAfterQuote", `"a"b,c` + "\n", [][]string{{"ab", "c"}}},
		{"CRLF", "a,b\r\nc\r\n", [][]string{{"a", "b"}, {"c"}}},
		{"LoneCarriageReturn", "a\rb\n", [][]string{{"a\rb"}}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := scanValues(t, test.source)
			assert.Equal(t, len(test.expected), len(got))
			for i := range test.expected {
				assert.Equal(t, len(test.expected[i]), len(got[i]), "row %d", i)
				for j := range test.expected[i] {
					assert.Equal(t, test.expected[i][j], got[i][j])
				}
			}
		})
	}
}

func TestLexerPositions(t *testing.T) {
	rows, err := NewLexer([]byte("a,\"b\nc\",d\n\nx,y\n"), "test.csv").ScanAll()
	assert.NoError(t, err)
	assert.Equal(t, 3, len(rows))

	assert.Equal(t, 1, rows[0].Line)
	assert.Equal(t, 3, rows[0].Cells[1].Pos.Column)
	assert.True(t, rows[0].Cells[1].Quoted)
	assert.False(t, rows[0].Cells[0].Quoted)
	assert.Equal(t, 2, rows[0].Cells[2].Pos.Line)
	assert.Equal(t, 4, rows[0].Cells[2].Pos.Column)

	assert.Equal(t, 3, rows[1].Line)
	assert.Equal(t, 0, len(rows[1].Cells))

	assert.Equal(t, 4, rows[2].Line)
	assert.Equal(t, "test.csv", rows[2].Cells[1].Pos.Filename)
	assert.Equal(t, 3, rows[2].Cells[1].Pos.Column)
}

func TestLexerUnterminatedQuote(t *testing.T) {
	_, err := NewLexer([]byte("a\n\"open,b\n"), "test.csv").ScanAll()

	var formatErr *FormatError
	assert.True(t, errors.As(err, &formatErr))
	assert.Equal(t, 2, formatErr.Pos.Line)
	assert.Equal(t, 1, formatErr.Pos.Column)
	assert.Equal(t, "open,b\n", formatErr.Value)
}
