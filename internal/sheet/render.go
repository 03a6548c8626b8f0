package sheet

import (
	"fmt"
	"strconv"
	"strings"
)

// cellWidth is the minimum rendered width of one cell
const cellWidth = 10

// FormatValue renders a value with the shortest representation that
// round-trips, so whole numbers print without a decimal point.
func FormatValue(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}

// RenderGrid evaluates every cell in row-major order and renders the
// grid as text: each value left-justified in a fixed-width column
// followed by '|', one line per row. The first evaluation error aborts
// the render.
func RenderGrid(grid *Grid, e *Evaluator) (string, error) {
	var b strings.Builder

	for row := 0; row < grid.Rows(); row++ {
		for column := 0; column < grid.Columns(row); column++ {
			value, err := e.Evaluate(Coordinate{Column: column, Row: row})
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&b, "%-*s|", cellWidth, FormatValue(value))
		}
		b.WriteByte('\n')
	}

	return b.String(), nil
}
