package main

import (
	"os"

	"github.com/porjo/srdiff/commands"
)

func main() {
	defer commands.Close()

	if err := commands.Execute(); err != nil {
		commands.Close()
		os.Exit(1)
	}
}
