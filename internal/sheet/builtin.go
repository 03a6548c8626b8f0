package sheet

import (
	"fmt"
	"math/rand"
	"strings"
)

// RandomGenerator provides random number generation for testing
type RandomGenerator interface {
	Float64() float64
}

// DefaultRandomGenerator uses the standard library's process-seeded
// generator, so random and randbetween vary between runs.
type DefaultRandomGenerator struct{}

func (d *DefaultRandomGenerator) Float64() float64 {
	return rand.Float64()
}

// BuiltinFunctions contains the engine's built-in functions
type BuiltinFunctions struct {
	rng RandomGenerator
}

// NewDefaultBuiltinFunctions creates a BuiltinFunctions with the
// default random source
func NewDefaultBuiltinFunctions() *BuiltinFunctions {
	return &BuiltinFunctions{rng: &DefaultRandomGenerator{}}
}

// NewBuiltinFunctions creates a BuiltinFunctions with the given random
// source
func NewBuiltinFunctions(rng RandomGenerator) *BuiltinFunctions {
	return &BuiltinFunctions{rng: rng}
}

// Call invokes a built-in function by name with already-evaluated
// arguments. Function names are case-insensitive. An unknown name or
// a wrong argument count fails with a function error.
func (bf *BuiltinFunctions) Call(name string, args ...float64) (float64, error) {
	switch strings.ToLower(name) {
	case "sum":
		return bf.Sum(args...)
	case "average":
		return bf.Average(args...)
	case "max":
		return bf.Max(args...)
	case "min":
		return bf.Min(args...)
	case "if":
		return bf.If(args...)
	case "random":
		return bf.Random(args...)
	case "randbetween":
		return bf.RandBetween(args...)
	default:
		return 0, NewSheetError(ErrorCodeFunction, fmt.Sprintf("unknown function: %s", name))
	}
}

func (bf *BuiltinFunctions) Sum(args ...float64) (float64, error) {
	if len(args) == 0 {
		return 0, NewSheetError(ErrorCodeFunction, "sum expects at least 1 argument")
	}
	sum := 0.0
	for _, arg := range args {
		sum += arg
	}
	return sum, nil
}

func (bf *BuiltinFunctions) Average(args ...float64) (float64, error) {
	if len(args) == 0 {
		return 0, NewSheetError(ErrorCodeFunction, "average expects at least 1 argument")
	}
	sum := 0.0
	for _, arg := range args {
		sum += arg
	}
	return sum / float64(len(args)), nil
}

func (bf *BuiltinFunctions) Max(args ...float64) (float64, error) {
	if len(args) == 0 {
		return 0, NewSheetError(ErrorCodeFunction, "max expects at least 1 argument")
	}
	max := args[0]
	for _, arg := range args[1:] {
		if arg > max {
			max = arg
		}
	}
	return max, nil
}

func (bf *BuiltinFunctions) Min(args ...float64) (float64, error) {
	if len(args) == 0 {
		return 0, NewSheetError(ErrorCodeFunction, "min expects at least 1 argument")
	}
	min := args[0]
	for _, arg := range args[1:] {
		if arg < min {
			min = arg
		}
	}
	return min, nil
}

// If selects the second argument when the condition is nonzero and the
// third when it is zero
func (bf *BuiltinFunctions) If(args ...float64) (float64, error) {
	if len(args) != 3 {
		return 0, NewSheetError(ErrorCodeFunction, "if expects exactly 3 arguments")
	}
	if args[0] != 0 {
		return args[1], nil
	}
	return args[2], nil
}

// Random returns a uniform value in [0, 1)
func (bf *BuiltinFunctions) Random(args ...float64) (float64, error) {
	if len(args) != 0 {
		return 0, NewSheetError(ErrorCodeFunction, "random takes no arguments")
	}
	return bf.rng.Float64(), nil
}

// RandBetween returns a uniform value in [lo, hi)
func (bf *BuiltinFunctions) RandBetween(args ...float64) (float64, error) {
	if len(args) != 2 {
		return 0, NewSheetError(ErrorCodeFunction, "randbetween expects exactly 2 arguments")
	}
	lo, hi := args[0], args[1]
	if lo >= hi {
		return 0, NewSheetError(ErrorCodeFunction,
			"first argument of randbetween must be smaller than the second")
	}
	return lo + bf.rng.Float64()*(hi-lo), nil
}
