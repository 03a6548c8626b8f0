package sheet

import (
	"fmt"
	"strconv"
	"strings"
)

// Grid is the cell store: a mapping from coordinate to cell built once
// from pipe-separated input text and never mutated during evaluation.
type Grid struct {
	cells   map[Coordinate]*Cell
	rowCols []int // populated columns per row, preserving the input shape
}

// Load builds a grid from input text: one line per row, columns split
// on '|'. Column position maps to the letter (A, B, C, ...) and line
// index to the row number. An entry starting with '=' is stored as a
// formula; anything else must parse as a number.
func Load(input string) (*Grid, error) {
	lines := strings.Split(input, "\n")

	// a single trailing newline is input formatting, not an empty row
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	grid := &Grid{
		cells:   make(map[Coordinate]*Cell),
		rowCols: make([]int, 0, len(lines)),
	}

	for row, line := range lines {
		columns := strings.Split(line, "|")
		for column, text := range columns {
			coord := Coordinate{Column: column, Row: row}

			if strings.HasPrefix(text, "=") {
				grid.cells[coord] = &Cell{Kind: CellFormula, Formula: text[1:]}
				continue
			}

			value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
			if err != nil {
				return nil, NewSheetError(ErrorCodeLiteral,
					fmt.Sprintf("cell %s is not a number: %q", coord, text))
			}
			grid.cells[coord] = &Cell{Kind: CellLiteral, Value: value}
		}
		grid.rowCols = append(grid.rowCols, len(columns))
	}

	return grid, nil
}

// Get returns the cell at a coordinate. A coordinate outside the
// populated grid is a not-found error, never a default value.
func (g *Grid) Get(coord Coordinate) (*Cell, error) {
	cell, ok := g.cells[coord]
	if !ok {
		return nil, NewSheetError(ErrorCodeNotFound,
			fmt.Sprintf("cell %s does not exist", coord))
	}
	return cell, nil
}

// Rows returns the number of rows loaded from the input
func (g *Grid) Rows() int {
	return len(g.rowCols)
}

// Columns returns the number of populated columns in a row. Rows may
// be ragged; coordinates past a row's end are simply not found.
func (g *Grid) Columns(row int) int {
	if row < 0 || row >= len(g.rowCols) {
		return 0
	}
	return g.rowCols[row]
}
