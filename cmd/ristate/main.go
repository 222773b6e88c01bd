package main

import (
	"os"

	"github.com/grovetools/ristate/cmd"
)

func main() {
	os.Exit(cmd.Execute(os.Args[1:]))
}
