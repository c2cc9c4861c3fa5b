package main

import (
	"os"

	"github.com/andrewpaige1/thoughtcatcher-api/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
