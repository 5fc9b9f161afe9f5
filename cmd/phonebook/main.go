package main

import (
	"os"

	"github.com/idilsaglam/phonebook/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:]))
}
