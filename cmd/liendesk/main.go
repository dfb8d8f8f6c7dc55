package main

import (
	"os"

	"liendesk/cmd/liendesk/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
