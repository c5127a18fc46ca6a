package main

import (
	"github.com/Jayman971/ma-bibliotheque-api/internal/cli"
)

// set at build time with -ldflags "-X main.GitTag=..."
var GitTag string

func main() {
	version := GitTag
	if version == "" {
		version = "dev"
	}
	cli.Execute(version)
}
