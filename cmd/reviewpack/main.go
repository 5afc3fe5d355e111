package main

import (
	"os"

	"github.com/dshills/reviewpack/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
