package main

import (
	"os"

	"github.com/spigell/creator-roster/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
