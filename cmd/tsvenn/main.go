// Package main is the entry point for the tsvenn CLI binary.
package main

import (
	"os"

	"github.com/nao1215/tsvenn/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
