// Package main provides the mosca CLI application.
// mosca reconciles multi-omics annotation and quantification outputs
// into per-sample and cross-sample reports.
package main

import (
	"github.com/raseique/MOSCA/cmd"
)

func main() {
	cmd.Execute()
}
