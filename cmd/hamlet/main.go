package main

import (
	"fmt"
	"os"

	"github.com/pmclSF/hamlet-sub002/cmd/hamlet/migrate"
)

var version = "dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "migrate":
		os.Exit(migrate.Run(os.Args[2:]))
	case "version":
		fmt.Println(version)
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand: %s\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `hamlet — source-to-source test-framework translator

Usage:
  hamlet migrate --source <name> --target <name> [--root dir] [--json]
                 [--continue] [--retry-failed] [--experimental-ir] [--verbose]
  hamlet version

Known frameworks: cypress, playwright, jest, vitest, junit4, junit5, pytest, unittest`)
}
