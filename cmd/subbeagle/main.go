// Package main provides the subbeagle CLI application.
// subbeagle keeps or removes samples from Beagle genotype likelihood files.
package main

import "github.com/gnames/subbeagle/cmd"

func main() {
	cmd.Execute()
}
