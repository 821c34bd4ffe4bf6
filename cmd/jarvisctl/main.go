package main

import (
	"os"

	"github.com/ASoldo/jarvisctl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
