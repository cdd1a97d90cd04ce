package main

import (
	"github.com/docsight/docsight/internal/server"
	"github.com/docsight/docsight/internal/util"
	"github.com/docsight/docsight/pkg/logger"
	"github.com/docsight/docsight/pkg/logger/console"

	_ "github.com/lib/pq"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
