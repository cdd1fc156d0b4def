package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/emirhan/coursehub/internal/pkg/logger"
	"github.com/emirhan/coursehub/internal/server"
)

// @title CourseHub API
// @version 1.0
// @description Course enrollment management API with prerequisite and capacity control
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@coursehub.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// A missing .env is fine; config falls back to defaults and real env vars
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("No .env file found")
	}

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
}
