package main

import (
	"os"

	"github.com/softlock/unvault/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
