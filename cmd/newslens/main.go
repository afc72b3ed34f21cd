package main

import (
	"os"

	"github.com/wonny/newslens/cmd/newslens/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
