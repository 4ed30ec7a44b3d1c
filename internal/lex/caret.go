package lex

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// CaretLine renders sourceLine followed by a second line with a single '^'
// under the rune at the given 1-based column. Full-width and combining
// characters would otherwise throw off a naive byte- or rune-count caret, so
// each rune's display width is measured via x/text/width before the column.
func CaretLine(sourceLine string, col int) string {
	runes := []rune(sourceLine)
	if col < 1 {
		col = 1
	}

	visualCol := 0
	for i := 0; i < col-1 && i < len(runes); i++ {
		visualCol += runeWidth(runes[i])
	}

	var sb strings.Builder
	sb.WriteString(sourceLine)
	sb.WriteRune('\n')
	sb.WriteString(strings.Repeat(" ", visualCol))
	sb.WriteRune('^')
	return sb.String()
}

// runeWidth returns the number of terminal columns r occupies: 2 for
// East-Asian wide/fullwidth runes, 0 for non-spacing combining marks
// (Unicode category Mn), 1 otherwise.
func runeWidth(r rune) int {
	if unicode.Is(unicode.Mn, r) {
		return 0
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}
