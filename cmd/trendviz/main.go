package main

import (
	"os"

	"trendviz/cmd/trendviz/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
