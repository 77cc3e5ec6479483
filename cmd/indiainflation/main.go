package main

import (
	"os"

	"github.com/devdev758/indiainflation/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
