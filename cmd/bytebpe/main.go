package main

import (
	"os"

	"github.com/leo-du/bytebpe/cmd/bytebpe/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
