package sheet

// Evaluator computes cell values against a grid. Each top-level
// Evaluate starts a fresh reference chain, so cycle detection reports
// the path as seen from the requested cell.
type Evaluator struct {
	grid      *Grid
	functions *BuiltinFunctions
	visiting  []Coordinate // reference chain of the current evaluation
}

// NewEvaluator creates an evaluator with the default built-in functions
func NewEvaluator(grid *Grid) *Evaluator {
	return &Evaluator{grid: grid, functions: NewDefaultBuiltinFunctions()}
}

// NewEvaluatorWithFunctions creates an evaluator with a caller-supplied
// function set, usually to pin the random source in tests.
func NewEvaluatorWithFunctions(grid *Grid, functions *BuiltinFunctions) *Evaluator {
	return &Evaluator{grid: grid, functions: functions}
}

// Evaluate computes the value of the cell at the given coordinate.
// Formula cells are re-evaluated on every call; only the parsed tree is
// cached between calls.
func (e *Evaluator) Evaluate(coord Coordinate) (float64, error) {
	e.visiting = e.visiting[:0]
	return e.evalCell(coord)
}

// resolveRef evaluates a referenced cell, failing when the reference
// closes a cycle in the current chain.
func (e *Evaluator) resolveRef(coord Coordinate) (float64, error) {
	if e.isVisiting(coord) {
		return 0, NewCycleError(e.cyclePath(coord))
	}
	return e.evalCell(coord)
}

func (e *Evaluator) evalCell(coord Coordinate) (float64, error) {
	cell, err := e.grid.Get(coord)
	if err != nil {
		return 0, err
	}

	if cell.Kind == CellLiteral {
		return cell.Value, nil
	}

	if cell.ast == nil {
		ast, err := ParseFormula(cell.Formula)
		if err != nil {
			return 0, err
		}
		cell.ast = ast
	}

	e.visiting = append(e.visiting, coord)
	value, err := cell.ast.Eval(e)
	e.visiting = e.visiting[:len(e.visiting)-1]
	return value, err
}

// cyclePath returns the chain from the first occurrence of the repeated
// coordinate through the repeat itself, e.g. A0 -> C0 -> B0 -> A0.
func (e *Evaluator) cyclePath(coord Coordinate) []Coordinate {
	start := 0
	for i, c := range e.visiting {
		if c == coord {
			start = i
			break
		}
	}

	path := make([]Coordinate, 0, len(e.visiting)-start+1)
	path = append(path, e.visiting[start:]...)
	return append(path, coord)
}

func (e *Evaluator) isVisiting(coord Coordinate) bool {
	for _, c := range e.visiting {
		if c == coord {
			return true
		}
	}
	return false
}
