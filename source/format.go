package source

import (
	"strconv"
	"strings"
)

const indent = "    "

// FormatError renders a diagnostic message against a source and a byte
// position into the three-line form used throughout this module:
//
//	<message>, line <N>:
//	    <line text>
//	    <spaces><caret>
//
// The caret is preceded by one space per byte between the line start and
// the position, so it lines up under the byte the matcher actually stopped
// at.
func FormatError(message string, src *Source, pos int) string {
	if src == nil {
		return message
	}

	line, col := src.LineCol(pos)
	text := src.Line(pos)

	var b strings.Builder
	b.WriteString(message)
	b.WriteString(", line ")
	b.WriteString(strconv.Itoa(line))
	b.WriteString(":\n")
	b.WriteString(indent)
	b.Write(text)
	b.WriteString("\n")
	b.WriteString(indent)
	b.WriteString(strings.Repeat(" ", col-1))
	b.WriteString("^")
	return b.String()
}

