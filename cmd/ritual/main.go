// Package main is the single-binary entrypoint for ritual.
// One binary, one local database, no accounts.
package main

import "github.com/ritual-sh/ritual/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
