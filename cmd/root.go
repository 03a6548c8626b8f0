package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gridcalc",
	Short: "Evaluate pipe-separated grids of numbers and formulas",
	Long: `gridcalc reads a grid of cells from a text file, evaluates every
formula, and prints the resulting values.

Input format: one line per row, columns separated by '|'. A cell is
either a number or a formula starting with '='. Formulas may use
+ - * /, parentheses, cell references like A0 or B12, and the
functions sum, average, max, min, if, random, and randbetween.

Examples:
  gridcalc eval sheet.txt
  gridcalc eval sheet.txt --output result.txt
  gridcalc view sheet.txt`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
