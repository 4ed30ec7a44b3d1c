package symtab

import (
	"strconv"
	"strings"
)

// SizeOf implements spec.md §4.5's size_of(type): int/bool are 4 bytes,
// float is 8, void/empty is 0, array(T, n) is n * size_of(T) parsed
// depth-aware so nested arrays such as array(array(int, 5), 3) resolve
// correctly, and any other type string is 4 with ok=false signaling the
// caller should log a warning.
func SizeOf(typeString string) (size int, ok bool) {
	switch typeString {
	case "int", "bool":
		return 4, true
	case "float":
		return 8, true
	case "void", "":
		return 0, true
	}

	if elem, n, isArray := ParseArrayType(typeString); isArray {
		elemSize, elemOK := SizeOf(elem)
		return n * elemSize, elemOK
	}

	return 4, false
}

// ParseArrayType recognizes the canonical "array(T, n)" rendering produced
// by ast.ArrayType.Render and splits it into its element-type substring and
// size, scanning for the separating comma at paren depth 0 so the comma
// inside a nested array element type such as array(int, 5) doesn't
// confuse the split. Exported so internal/tac can recover an ArrayAccess's
// element type without re-deriving the array grammar itself.
func ParseArrayType(typeString string) (element string, size int, ok bool) {
	const prefix = "array("
	if !strings.HasPrefix(typeString, prefix) || !strings.HasSuffix(typeString, ")") {
		return "", 0, false
	}

	inner := typeString[len(prefix) : len(typeString)-1]

	depth := 0
	splitAt := -1
	for i, r := range inner {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				splitAt = i
			}
		}
		if splitAt >= 0 {
			break
		}
	}
	if splitAt < 0 {
		return "", 0, false
	}

	element = strings.TrimSpace(inner[:splitAt])
	sizeText := strings.TrimSpace(inner[splitAt+1:])
	n, err := strconv.Atoi(sizeText)
	if err != nil {
		return "", 0, false
	}
	return element, n, true
}
