package sheet

import (
	"errors"
	"math"
	"testing"
)

func mustLoad(t *testing.T, input string) *Grid {
	t.Helper()
	grid, err := Load(input)
	if err != nil {
		t.Fatalf("Load(%q) failed: %v", input, err)
	}
	return grid
}

func TestEvaluateLiterals(t *testing.T) {
	grid := mustLoad(t, "1|2.5|-3")
	e := NewEvaluator(grid)

	tests := []struct {
		coord Coordinate
		want  float64
	}{
		{Coordinate{Column: 0, Row: 0}, 1},
		{Coordinate{Column: 1, Row: 0}, 2.5},
		{Coordinate{Column: 2, Row: 0}, -3},
	}

	for _, tt := range tests {
		got, err := e.Evaluate(tt.coord)
		if err != nil {
			t.Fatalf("Evaluate(%s) failed: %v", tt.coord, err)
		}
		if got != tt.want {
			t.Errorf("Evaluate(%s) = %v, want %v", tt.coord, got, tt.want)
		}
	}
}

func TestEvaluateFormulas(t *testing.T) {
	tests := []struct {
		name  string
		input string
		coord Coordinate
		want  float64
	}{
		{
			name:  "precedence",
			input: "=1 + 2 * 3",
			coord: Coordinate{Column: 0, Row: 0},
			want:  7,
		},
		{
			name:  "nested parentheses",
			input: "=((10 * 5) + (20 / 4)) - ((8 + 2) * 3)",
			coord: Coordinate{Column: 0, Row: 0},
			want:  25,
		},
		{
			name:  "cell references",
			input: "1|2|=A0+B0",
			coord: Coordinate{Column: 2, Row: 0},
			want:  3,
		},
		{
			name:  "references across rows",
			input: "10|20\n=A0*B0",
			coord: Coordinate{Column: 0, Row: 1},
			want:  200,
		},
		{
			name:  "diamond reference shape",
			input: "1|=A0|=A0|=B0+C0",
			coord: Coordinate{Column: 3, Row: 0},
			want:  2,
		},
		{
			name:  "function over references",
			input: "3|78|=max(A0, B0, 45)",
			coord: Coordinate{Column: 2, Row: 0},
			want:  78,
		},
		{
			name:  "if selects a referenced value",
			input: "1|10|20|=if(A0, B0, C0)",
			coord: Coordinate{Column: 3, Row: 0},
			want:  10,
		},
		{
			name:  "unary minus on a reference",
			input: "5|=-A0",
			coord: Coordinate{Column: 1, Row: 0},
			want:  -5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := mustLoad(t, tt.input)
			got, err := NewEvaluator(grid).Evaluate(tt.coord)
			if err != nil {
				t.Fatalf("Evaluate(%s) failed: %v", tt.coord, err)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%s) = %v, want %v", tt.coord, got, tt.want)
			}
		})
	}
}

func TestEvaluateDivisionByZero(t *testing.T) {
	grid := mustLoad(t, "=1/0|=-1/0|=0/0")
	e := NewEvaluator(grid)

	if got, err := e.Evaluate(Coordinate{Column: 0, Row: 0}); err != nil || !math.IsInf(got, 1) {
		t.Errorf("1/0: got (%v, %v), want +Inf", got, err)
	}
	if got, err := e.Evaluate(Coordinate{Column: 1, Row: 0}); err != nil || !math.IsInf(got, -1) {
		t.Errorf("-1/0: got (%v, %v), want -Inf", got, err)
	}
	if got, err := e.Evaluate(Coordinate{Column: 2, Row: 0}); err != nil || !math.IsNaN(got) {
		t.Errorf("0/0: got (%v, %v), want NaN", got, err)
	}
}

func TestEvaluateCycles(t *testing.T) {
	tests := []struct {
		name  string
		input string
		coord Coordinate
		want  string
	}{
		{
			name:  "self reference",
			input: "=A0",
			coord: Coordinate{Column: 0, Row: 0},
			want:  `Cycle detected, "A0 -> A0"`,
		},
		{
			name:  "two cell cycle",
			input: "=B0|=A0",
			coord: Coordinate{Column: 0, Row: 0},
			want:  `Cycle detected, "A0 -> B0 -> A0"`,
		},
		{
			name:  "four cell cycle",
			input: "=D0 + 1|=A0 + 1|=B0 + 1|=C0 + 1",
			coord: Coordinate{Column: 0, Row: 0},
			want:  `Cycle detected, "A0 -> D0 -> C0 -> B0 -> A0"`,
		},
		{
			name:  "cycle entered from outside",
			input: "=B0|=C0|=B0",
			coord: Coordinate{Column: 0, Row: 0},
			want:  `Cycle detected, "B0 -> C0 -> B0"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := mustLoad(t, tt.input)
			_, err := NewEvaluator(grid).Evaluate(tt.coord)
			if err == nil {
				t.Fatalf("Evaluate(%s) succeeded, want cycle error", tt.coord)
			}
			if err.Error() != tt.want {
				t.Errorf("got error %q, want %q", err.Error(), tt.want)
			}
			var sheetErr *SheetError
			if !errors.As(err, &sheetErr) || sheetErr.Code != ErrorCodeCycle {
				t.Errorf("got code %v, want ErrorCodeCycle", err)
			}
		})
	}
}

func TestEvaluateFreshChainPerCall(t *testing.T) {
	// B0 and C0 both read A0: sharing is fine, only re-entry is a cycle
	grid := mustLoad(t, "1|=A0|=A0")
	e := NewEvaluator(grid)

	for _, coord := range []Coordinate{
		{Column: 1, Row: 0},
		{Column: 2, Row: 0},
		{Column: 1, Row: 0},
	} {
		got, err := e.Evaluate(coord)
		if err != nil {
			t.Fatalf("Evaluate(%s) failed: %v", coord, err)
		}
		if got != 1 {
			t.Errorf("Evaluate(%s) = %v, want 1", coord, got)
		}
	}
}

func TestEvaluateMissingReference(t *testing.T) {
	grid := mustLoad(t, "=Z9")
	_, err := NewEvaluator(grid).Evaluate(Coordinate{Column: 0, Row: 0})
	if err == nil {
		t.Fatal("Evaluate succeeded, want error")
	}
	if got, want := err.Error(), "cell Z9 does not exist"; got != want {
		t.Errorf("got error %q, want %q", got, want)
	}
}

func TestEvaluateUnknownFunction(t *testing.T) {
	grid := mustLoad(t, "=vlookup(1, 2)")
	_, err := NewEvaluator(grid).Evaluate(Coordinate{Column: 0, Row: 0})
	if err == nil {
		t.Fatal("Evaluate succeeded, want error")
	}
	if got, want := err.Error(), "unknown function: vlookup"; got != want {
		t.Errorf("got error %q, want %q", got, want)
	}
}

func TestEvaluateStubbedRandom(t *testing.T) {
	grid := mustLoad(t, "=random()|=randbetween(10, 20)")
	e := NewEvaluatorWithFunctions(grid, NewBuiltinFunctions(&stubRandom{value: 0.5}))

	if got, err := e.Evaluate(Coordinate{Column: 0, Row: 0}); err != nil || got != 0.5 {
		t.Errorf("random(): got (%v, %v), want 0.5", got, err)
	}
	if got, err := e.Evaluate(Coordinate{Column: 1, Row: 0}); err != nil || got != 15 {
		t.Errorf("randbetween(10, 20): got (%v, %v), want 15", got, err)
	}
}

func BenchmarkEvaluateGrid(b *testing.B) {
	grid, err := Load("1|2|=A0+B0|=sum(A0, B0, C0)\n=D0*2|=A1+C0|=average(A0, B0, C0, D0)|=max(A1, B1, C1)")
	if err != nil {
		b.Fatalf("Load failed: %v", err)
	}
	e := NewEvaluator(grid)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for row := 0; row < grid.Rows(); row++ {
			for column := 0; column < grid.Columns(row); column++ {
				if _, err := e.Evaluate(Coordinate{Column: column, Row: row}); err != nil {
					b.Fatal(err)
				}
			}
		}
	}
}
