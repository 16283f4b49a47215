package main

import (
	"os"

	"github.com/dshills/censor/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
