package main

import (
	"os"

	"github.com/DefiantLabs/acb-tax-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
