package main

import (
	"os"

	"github.com/yigit/cems/internal/pkg/logger"
	"github.com/yigit/cems/internal/server"
)

// @title CEMS API
// @version 1.0
// @description College Event Management System: events, registrations, contact desk and chatbot

// @contact.name CEMS Support
// @contact.email support@cems.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer followed by the token returned by signup or login

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run blocks until a shutdown signal arrives
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
