package main

import (
	"fmt"
	"os"

	"habit-bot/internal/cli"
	"habit-bot/internal/config"
)

func main() {
	root := cli.NewRootCommand(config.NewLoader(), buildApp)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
