package main

import (
	"log"
	"os"

	"github.com/trezcool/coachdesk/apps/api/di"
	"github.com/trezcool/coachdesk/core/dashboard"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	c := di.New(nil)

	var cli commandLine
	err := c.Invoke(func(dashboardSvc *dashboard.Service) {
		cli = commandLine{
			dashboardSvc: dashboardSvc,
			out:          os.Stdout,
		}
	})
	errAndDie(err)

	// start CLI
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
