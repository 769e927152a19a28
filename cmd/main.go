package main

import (
	"os"

	"github.com/adanyl0v/launchpad/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
