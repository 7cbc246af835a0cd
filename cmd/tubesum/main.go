package main

import (
	"os"

	"github.com/aydinemre/tubesum/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
