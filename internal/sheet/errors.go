package sheet

import (
	"fmt"
	"strings"
)

// ErrorCode classifies engine failures
type ErrorCode uint8

const (
	ErrorCodeLex      ErrorCode = 1 // unrecognized character in formula text
	ErrorCodeParse    ErrorCode = 2 // malformed grammar
	ErrorCodeLiteral  ErrorCode = 3 // non-numeric literal cell text
	ErrorCodeNotFound ErrorCode = 4 // reference to a coordinate absent from the grid
	ErrorCodeFunction ErrorCode = 5 // unknown function or wrong argument count
	ErrorCodeCycle    ErrorCode = 6 // circular reference chain
)

// ErrorMapper maps error codes to their string representations
var ErrorMapper = map[ErrorCode]string{
	ErrorCodeLex:      "lex error",
	ErrorCodeParse:    "parse error",
	ErrorCodeLiteral:  "literal parse error",
	ErrorCodeNotFound: "not found",
	ErrorCodeFunction: "function error",
	ErrorCodeCycle:    "cycle detected",
}

// SheetError preserves the error code so callers can tell failure kinds
// apart. Cycle errors additionally carry the coordinate path in the
// order the cells were entered.
type SheetError struct {
	Code    ErrorCode
	Message string
	Path    []Coordinate // set for ErrorCodeCycle only
}

func (e *SheetError) Error() string {
	if e.Code == ErrorCodeCycle {
		return fmt.Sprintf("Cycle detected, %q", formatCyclePath(e.Path))
	}
	if e.Message != "" {
		return e.Message
	}
	return ErrorMapper[e.Code]
}

func NewSheetError(code ErrorCode, message string) *SheetError {
	if message == "" {
		message = ErrorMapper[code]
	}
	return &SheetError{
		Code:    code,
		Message: message,
	}
}

// NewCycleError builds a cycle error from the evaluation path. The path
// must start at the re-entered coordinate and end with its repeat.
func NewCycleError(path []Coordinate) *SheetError {
	return &SheetError{
		Code: ErrorCodeCycle,
		Path: path,
	}
}

// formatCyclePath renders a cycle trace like "A0 -> C0 -> B0 -> A0"
func formatCyclePath(path []Coordinate) string {
	names := make([]string, len(path))
	for i, coord := range path {
		names[i] = coord.String()
	}
	return strings.Join(names, " -> ")
}
