package main

import (
	"os"

	"github.com/edudesk/edudesk/internal/pkg/logger"
	"github.com/edudesk/edudesk/internal/server"
)

func main() {
	srv, err := server.New()
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}
