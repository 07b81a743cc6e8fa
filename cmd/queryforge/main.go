package main

import (
	"os"

	"github.com/graphfoundry/queryforge/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
