package main

import (
	"os"

	"github.com/dnd-it/find-changes/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
