package main

import (
	"os"

	"github.com/baaaaaaaka/cellview/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
