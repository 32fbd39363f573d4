package main

import (
	"os"

	"github.com/dshills/pathwatch/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
