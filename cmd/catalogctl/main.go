package main

import (
	"os"

	"github.com/trashquiz/trashquiz/cmd/catalogctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
