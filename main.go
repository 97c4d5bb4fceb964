package main

import (
	"prikkr/core/logger"
	"prikkr/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", "error", err)
	}
}
