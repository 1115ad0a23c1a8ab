package main

import (
	"os"

	"github.com/rustyeddy/alphafx/cmd/alphafx/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
