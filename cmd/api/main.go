package main

import (
	"os"

	"github.com/oguzk/acadrecord/internal/pkg/logger"
	"github.com/oguzk/acadrecord/internal/server"
)

// @title AcadRecord API
// @version 1.0
// @description Academic record-keeping backend for teacher CSV uploads

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
