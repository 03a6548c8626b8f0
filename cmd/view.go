package cmd

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"gridcalc/internal/sheet"
)

var viewCmd = &cobra.Command{
	Use:   "view <input>",
	Short: "Browse the evaluated grid in the terminal",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		grid, err := sheet.Load(string(data))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		values, err := evaluateAll(grid)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if err := runViewer(grid, values); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

// evaluateAll computes every cell up front, before the screen takes
// over the terminal.
func evaluateAll(grid *sheet.Grid) ([][]string, error) {
	e := sheet.NewEvaluator(grid)

	values := make([][]string, grid.Rows())
	for row := range values {
		values[row] = make([]string, grid.Columns(row))
		for column := range values[row] {
			value, err := e.Evaluate(sheet.Coordinate{Column: column, Row: row})
			if err != nil {
				return nil, err
			}
			values[row][column] = sheet.FormatValue(value)
		}
	}
	return values, nil
}

type viewer struct {
	grid   *sheet.Grid
	values [][]string

	curRow int
	curCol int
}

const (
	viewCellWidth = 12
	viewGutter    = 5
)

func runViewer(grid *sheet.Grid, values [][]string) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("cannot create screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("cannot init screen: %w", err)
	}
	defer s.Fini()

	s.SetStyle(tcell.StyleDefault)
	s.Clear()

	v := &viewer{grid: grid, values: values}

	for {
		v.draw(s)
		switch ev := s.PollEvent().(type) {
		case *tcell.EventResize:
			s.Sync()
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return nil
			}
		}
	}
}

// handleKey moves the cursor or quits; returns true to exit the loop
func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEsc, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		v.moveCursor(-1, 0)
	case tcell.KeyDown:
		v.moveCursor(1, 0)
	case tcell.KeyLeft:
		v.moveCursor(0, -1)
	case tcell.KeyRight:
		v.moveCursor(0, 1)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'k':
			v.moveCursor(-1, 0)
		case 'j':
			v.moveCursor(1, 0)
		case 'h':
			v.moveCursor(0, -1)
		case 'l':
			v.moveCursor(0, 1)
		}
	}
	return false
}

func (v *viewer) moveCursor(dRow, dCol int) {
	row := v.curRow + dRow
	if row < 0 || row >= v.grid.Rows() {
		return
	}
	v.curRow = row

	// clamp into the row since rows may be ragged
	col := v.curCol + dCol
	if col < 0 {
		col = 0
	}
	if max := v.grid.Columns(row) - 1; col > max {
		col = max
	}
	v.curCol = col
}

func (v *viewer) draw(s tcell.Screen) {
	s.Clear()

	headerStyle := tcell.StyleDefault.Bold(true)
	cellStyle := tcell.StyleDefault
	cursorStyle := tcell.StyleDefault.Reverse(true)

	// column headers
	maxCols := 0
	for row := 0; row < v.grid.Rows(); row++ {
		if cols := v.grid.Columns(row); cols > maxCols {
			maxCols = cols
		}
	}
	for col := 0; col < maxCols; col++ {
		drawText(s, viewGutter+col*viewCellWidth, 0, headerStyle, sheet.ColumnName(col))
	}

	// rows: number gutter plus evaluated values
	for row := range v.values {
		drawText(s, 0, row+1, headerStyle, fmt.Sprintf("%d", row))
		for col, value := range v.values[row] {
			style := cellStyle
			if row == v.curRow && col == v.curCol {
				style = cursorStyle
			}
			drawText(s, viewGutter+col*viewCellWidth, row+1, style, pad(value, viewCellWidth-1))
		}
	}

	// status line: selected cell with its source text
	coord := sheet.Coordinate{Column: v.curCol, Row: v.curRow}
	status := fmt.Sprintf("%s = %s", coord, v.cellSource(coord))
	drawText(s, 0, v.grid.Rows()+2, cellStyle, status)
	drawText(s, 0, v.grid.Rows()+3, cellStyle, "arrows/hjkl move, q quits")

	s.Show()
}

func (v *viewer) cellSource(coord sheet.Coordinate) string {
	cell, err := v.grid.Get(coord)
	if err != nil {
		return ""
	}
	if cell.Kind == sheet.CellFormula {
		return "=" + cell.Formula
	}
	return sheet.FormatValue(cell.Value)
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range text {
		s.SetContent(x+i, y, r, nil, style)
	}
}

func pad(text string, width int) string {
	for len(text) < width {
		text += " "
	}
	return text
}
