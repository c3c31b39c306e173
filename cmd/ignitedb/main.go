// Command ignitedb is a minimal command-line front end over the
// ignitedb engine: get/set/rm against the engine rooted in the
// current working directory.
package main

import (
	"os"

	"ignitedb/internal/cli"
)

func main() {
	dir, err := os.Getwd()
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	os.Exit(cli.Run(os.Stdin, os.Stdout, os.Stderr, os.Args, dir))
}
