package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gridcalc/internal/sheet"
)

var evalOutput string

var evalCmd = &cobra.Command{
	Use:   "eval <input>",
	Short: "Evaluate a grid file and print the computed values",
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

		rendered, err := sheet.RenderGrid(grid, sheet.NewEvaluator(grid))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if evalOutput != "" {
			if err := os.WriteFile(evalOutput, []byte(rendered), 0o644); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			fmt.Printf("Output saved to: %s\n", evalOutput)
			return
		}

		fmt.Print(rendered)
	},
}

func init() {
	evalCmd.Flags().StringVarP(&evalOutput, "output", "o", "", "write the rendered grid to a file instead of stdout")
	rootCmd.AddCommand(evalCmd)
}
