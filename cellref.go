package budgetfill

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// CellRef identifies a single cell. Row and Col are 0-based.
type CellRef struct {
	Sheet string
	Row   int
	Col   int
}

// NewCellRef creates a CellRef from 0-based coordinates.
func NewCellRef(sheet string, row, col int) CellRef {
	return CellRef{Sheet: sheet, Row: row, Col: col}
}

// SheetRef creates a CellRef from 1-based sheet coordinates, the way rows and
// columns are numbered in a Layout.
func SheetRef(sheet string, row, col int) CellRef {
	return CellRef{Sheet: sheet, Row: row - 1, Col: col - 1}
}

// ParseCellRef parses "A1", "$B$5" or "Sheet1!C3".
func ParseCellRef(s string) (CellRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CellRef{}, fmt.Errorf("empty cell reference")
	}
	var sheet string
	cellPart := s
	if idx := strings.LastIndex(s, "!"); idx >= 0 {
		sheet = strings.Trim(s[:idx], "'")
		cellPart = s[idx+1:]
	}
	col, row, err := excelize.CellNameToCoordinates(strings.ReplaceAll(cellPart, "$", ""))
	if err != nil {
		return CellRef{}, fmt.Errorf("invalid cell reference %q: %w", s, err)
	}
	return CellRef{Sheet: sheet, Row: row - 1, Col: col - 1}, nil
}

// CellName returns the A1-style name without the sheet.
func (c CellRef) CellName() string {
	name, err := excelize.CoordinatesToCellName(c.Col+1, c.Row+1)
	if err != nil {
		return fmt.Sprintf("R%dC%d", c.Row+1, c.Col+1)
	}
	return name
}

// String formats the reference as "Sheet1!A1", or "A1" with no sheet.
func (c CellRef) String() string {
	if c.Sheet != "" {
		return c.Sheet + "!" + c.CellName()
	}
	return c.CellName()
}

// AreaRef is a rectangular range between two cells, both inclusive.
type AreaRef struct {
	First CellRef
	Last  CellRef
}

// ParseAreaRef parses "A1:C5" or "Sheet1!A1:C5".
func ParseAreaRef(s string) (AreaRef, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return AreaRef{}, fmt.Errorf("invalid area reference (missing ':'): %q", s)
	}
	first, err := ParseCellRef(parts[0])
	if err != nil {
		return AreaRef{}, fmt.Errorf("invalid area reference %q: %w", s, err)
	}
	last, err := ParseCellRef(parts[1])
	if err != nil {
		return AreaRef{}, fmt.Errorf("invalid area reference %q: %w", s, err)
	}
	if last.Sheet == "" {
		last.Sheet = first.Sheet
	}
	return AreaRef{First: first, Last: last}, nil
}

// Contains reports whether ref lies inside the area. An area without a sheet
// matches any sheet.
func (a AreaRef) Contains(ref CellRef) bool {
	if a.First.Sheet != "" && a.First.Sheet != ref.Sheet {
		return false
	}
	return ref.Row >= a.First.Row && ref.Row <= a.Last.Row &&
		ref.Col >= a.First.Col && ref.Col <= a.Last.Col
}

// Rows returns the 1-based first and last rows of the area.
func (a AreaRef) Rows() (first, last int) {
	return a.First.Row + 1, a.Last.Row + 1
}

// String formats the area as "Sheet1!A1:C5" or "A1:C5".
func (a AreaRef) String() string {
	if a.First.Sheet != "" {
		return a.First.Sheet + "!" + a.First.CellName() + ":" + a.Last.CellName()
	}
	return a.First.CellName() + ":" + a.Last.CellName()
}
