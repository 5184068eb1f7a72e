package output

import (
	"bytes"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/muesli/termenv"
)

func TestStylesPlainWriter(t *testing.T) {
	styles := NewStyles(&bytes.Buffer{})

	assert.Equal(t, "/tmp/2020.txt", styles.FilePath("/tmp/2020.txt"))
	assert.Equal(t, "2020", styles.Year("2020"))
	assert.Equal(t, "$1.00", styles.Amount("$1.00"))
	assert.Equal(t, "-$1.00", styles.Debit("-$1.00"))
	assert.Equal(t, "Year", styles.Keyword("Year"))
	assert.Equal(t, "├─ ", styles.Dim("├─ "))
	assert.Equal(t, "5ms", styles.Timing("5ms", false))
	assert.Equal(t, "500ms", styles.Timing("500ms", true))
}

func TestStylesColor(t *testing.T) {
	styles := &Styles{output: termenv.NewOutput(&bytes.Buffer{}, termenv.WithProfile(termenv.ANSI))}

	styled := styles.Debit("-$1.00")
	assert.NotEqual(t, "-$1.00", styled)
	assert.Contains(t, styled, "-$1.00")
	assert.Contains(t, styles.Keyword("Year"), "\x1b[")
}
