package sheet

import (
	"fmt"
)

// ColumnName converts a 1-based column number to its letter name (1 → "A", 27 → "AA").
func ColumnName(n int) string {
	if n < 1 {
		return ""
	}
	var name []byte
	for n > 0 {
		n--
		name = append([]byte{byte('A' + n%26)}, name...)
		n /= 26
	}
	return string(name)
}

// ColumnNumber converts a column letter name back to its 1-based number.
func ColumnNumber(name string) (int, error) {
	if name == "" {
		return 0, fmt.Errorf("empty column name")
	}
	n := 0
	for _, r := range name {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("invalid column name %q", name)
		}
		n = n*26 + int(r-'A') + 1
	}
	return n, nil
}

// CompletionColumn returns the column holding the done flag paired with col.
// Only the last letter moves back one code point, so "D" → "C" and "AB" → "AA".
func CompletionColumn(col string) string {
	return shiftLast(col, -1)
}

// NextColumn is the inverse of CompletionColumn.
func NextColumn(col string) string {
	return shiftLast(col, 1)
}

func shiftLast(col string, delta int) string {
	if col == "" {
		return col
	}
	b := []byte(col)
	b[len(b)-1] = byte(int(b[len(b)-1]) + delta)
	return string(b)
}
