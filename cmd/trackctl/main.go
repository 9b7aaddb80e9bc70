package main

import (
	"os"

	"telegram-session-counter/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
