package main

import (
	"context"
	"os"

	"github.com/spf13/pflag"
	"github.com/yigit/unifms/internal/pkg/logger"
	"github.com/yigit/unifms/internal/server"
)

//go:generate swag init --dir ../../ --generalInfo cmd/api/main.go --output ../../docs

// @title University Faculty Management API
// @version 1.0
// @description Role-based API for departments, courses, faculty, publications and enrollments.

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.

func main() {
	configPath := pflag.StringP("config", "c", "configs/config.yaml", "path to the YAML configuration file")
	pflag.Parse()

	srv, err := server.NewServer(context.Background(), *configPath)
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
