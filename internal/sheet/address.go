// Package sheet maps calendar dates to the cells of the planner spreadsheet.
//
// The sheet holds one 10-row block per week of the month for daily tasks, and
// a fixed five-row habit table whose completion flags live in one column per
// day of the month. Everything here is a pure function of its arguments.
package sheet

import (
	"fmt"
	"strconv"
	"strings"
)

// CellAddress is an A1-style spreadsheet coordinate.
type CellAddress struct {
	Column string
	Row    int
}

// String returns the A1 reference, e.g. "AB53".
func (a CellAddress) String() string {
	return a.Column + strconv.Itoa(a.Row)
}

// IsZero reports whether the address is unset.
func (a CellAddress) IsZero() bool {
	return a.Column == "" && a.Row == 0
}

// ParseCellAddress parses an A1 reference such as "D43" or "ab7".
func ParseCellAddress(ref string) (CellAddress, error) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	split := strings.IndexFunc(ref, func(r rune) bool { return r >= '0' && r <= '9' })
	if split <= 0 {
		return CellAddress{}, fmt.Errorf("invalid cell reference %q", ref)
	}

	column := ref[:split]
	for _, r := range column {
		if r < 'A' || r > 'Z' {
			return CellAddress{}, fmt.Errorf("invalid column in cell reference %q", ref)
		}
	}

	row, err := strconv.Atoi(ref[split:])
	if err != nil || row < 1 {
		return CellAddress{}, fmt.Errorf("invalid row in cell reference %q", ref)
	}

	return CellAddress{Column: column, Row: row}, nil
}
