package main

import (
	"autoblog/cmd/handlers"
	"autoblog/internal/logger"
)

func main() {
	logger.Init()
	handlers.Execute()
}
