// Package route plans carriage moves across the sorter grid.
//
// The grid has three start cells on top (S1..S3), three rows of bins
// numbered 1..9 left to right and top to bottom, and a drop zone
// (Destination) under the bottom row. The drop zone spans the whole
// width: the carriage enters it straight down from 7, 8 or 9 and keeps
// that column.
package route

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Cell is one position of the carriage
type Cell uint8

const (
	S1 Cell = iota
	S2
	S3
	Bin1
	Bin2
	Bin3
	Bin4
	Bin5
	Bin6
	Bin7
	Bin8
	Bin9
	Destination

	numCells
)

// Grid geometry
const (
	Columns        = 3
	DestinationRow = 4
)

var ErrUnknownCell = errors.New("route: unknown cell")

// ParseCell accepts "S1".."S3", "1".."9" and "D", "Dest", "Destino" or
// "Destination", case-insensitively.
func ParseCell(s string) (Cell, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	switch name {
	case "S1":
		return S1, nil
	case "S2":
		return S2, nil
	case "S3":
		return S3, nil
	case "D", "DEST", "DESTINO", "DESTINATION":
		return Destination, nil
	}
	n, err := strconv.Atoi(name)
	if err != nil || n < 1 || n > 9 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCell, s)
	}
	return Bin1 + Cell(n-1), nil
}

// ParseCells parses a list of cell names
func ParseCells(names []string) ([]Cell, error) {
	cells := make([]Cell, 0, len(names))
	for _, name := range names {
		c, err := ParseCell(name)
		if err != nil {
			return nil, err
		}
		cells = append(cells, c)
	}
	return cells, nil
}

func (c Cell) String() string {
	switch {
	case c <= S3:
		return "S" + strconv.Itoa(int(c)+1)
	case c <= Bin9:
		return strconv.Itoa(int(c-Bin1) + 1)
	case c == Destination:
		return "Destino"
	default:
		return "Cell(" + strconv.Itoa(int(c)) + ")"
	}
}

// Valid returns true for the thirteen cells of the grid
func (c Cell) Valid() bool {
	return c < numCells
}

// IsStart returns true for S1..S3
func (c Cell) IsStart() bool {
	return c <= S3
}

// Coord returns the row and column of c. Destination reports the
// middle column; the planner tracks the real one.
func (c Cell) Coord() (row, col int) {
	switch {
	case c == Destination:
		return DestinationRow, 1
	default:
		i := int(c)
		return i / Columns, i % Columns
	}
}

// cellAt is the inverse of Coord for the rows above the drop zone
func cellAt(row, col int) (Cell, bool) {
	if row < 0 || row >= DestinationRow || col < 0 || col >= Columns {
		return 0, false
	}
	return Cell(row*Columns + col), true
}

// feedsDestination returns true for the bottom row
func feedsDestination(c Cell) bool {
	return c == Bin7 || c == Bin8 || c == Bin9
}
