package main

import (
	"os"

	"github.com/idilsaglam/todobrowser/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:]))
}
