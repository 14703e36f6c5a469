// Package main provides the tidal elevations HTTP server.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/mqquiroz/pyTMD/internal/adapter/deltat"
	"github.com/mqquiroz/pyTMD/internal/config"
	httpHandler "github.com/mqquiroz/pyTMD/internal/http"
	"github.com/mqquiroz/pyTMD/internal/usecase"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("tidal-elevations-api version %s\n", version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting tidal elevations API server...")
	log.Printf("Listen address: %s", cfg.Addr)
	log.Printf("Data directory: %s", cfg.DataDir)
	log.Printf("Default model: %s", cfg.DefaultModel)

	var dt usecase.DeltaTimeSource
	if cfg.DeltaTimeFile != "" {
		table, err := deltat.Load(cfg.DeltaTimeFile)
		if err != nil {
			log.Fatalf("Failed to load delta time table: %v", err)
		}
		first, last := table.Span()
		log.Printf("Delta time table: %s (MJD %.0f to %.0f)", cfg.DeltaTimeFile, first, last)
		dt = table
	} else {
		log.Printf("No delta time table configured; GOT class models are unavailable")
	}

	service := usecase.NewService(cfg.DataDir, dt)
	router := httpHandler.SetupRouter(service, cfg.DefaultModel, cfg.CORSOrigins)

	log.Printf("Server listening on %s", cfg.Addr)
	log.Printf("API endpoints:")
	log.Printf("  - POST /v1/tides/elevations")
	log.Printf("  - GET  /v1/models")
	log.Printf("  - GET  /v1/constituents")
	log.Printf("  - GET  /metrics")

	if err := router.Run(cfg.Addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
