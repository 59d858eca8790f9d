package main

import (
	"github.com/doublelucky/compass/internal/server"
	"github.com/doublelucky/compass/internal/util"
	"github.com/doublelucky/compass/pkg/logger"
	"github.com/doublelucky/compass/pkg/logger/console"
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
