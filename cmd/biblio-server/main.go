package main

import (
	"log"

	"github.com/Jayman971/ma-bibliotheque-api/internal/server"
)

// Set at build time with -ldflags.
var (
	GitCommit string
	GitTag    string
	BuildTime string
)

func main() {
	app, err := server.NewApp(GitCommit, GitTag, BuildTime)
	if err != nil {
		log.Fatal("application failed to initialize: ", err)
	}
	err = app.Run()
	if err != nil {
		log.Fatal("application exited. check logs for more details. ", err)
	}
}
