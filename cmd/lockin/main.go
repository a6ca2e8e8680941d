package main

import (
	"os"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/lockin/app"
	"github.com/ayoisaiah/lockin/internal/log"
	"github.com/ayoisaiah/lockin/internal/pathutil"
)

func run(args []string) error {
	err := pathutil.Initialize()
	if err != nil {
		return err
	}

	log.Init()

	return app.Get().Run(args)
}

func main() {
	err := run(os.Args)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
