package main

import "gridcalc/cmd"

func main() {
	cmd.Execute()
}
