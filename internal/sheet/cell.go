package sheet

// CellKind tells a literal cell from a formula cell
type CellKind uint8

const (
	CellLiteral CellKind = 0
	CellFormula CellKind = 1
)

// Cell represents one grid slot: a numeric literal or an unevaluated
// formula. Cells are immutable after load except for the parsed-AST
// cache, which lets a formula be parsed once per run no matter how
// often it is referenced.
type Cell struct {
	Kind    CellKind
	Value   float64 // literal value when Kind == CellLiteral
	Formula string  // formula text without the '=' when Kind == CellFormula

	ast ASTNode // parse cache, formula cells only
}
