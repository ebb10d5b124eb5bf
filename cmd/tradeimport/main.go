package main

import (
	"os"

	"github.com/alenon/tradeimport/cmd/tradeimport/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
