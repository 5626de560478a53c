package main

import (
	"log"
	"net/http"
	_ "net/http/pprof"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"gopower/adapters/stats/engine"
	"gopower/app"
	"gopower/internal/config"
	"gopower/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	service := app.NewPowerService(engine.NewTTestEngine())

	server, err := ui.NewServer(service, appConfig)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	var g errgroup.Group
	g.Go(func() error {
		return server.Run(":" + appConfig.Server.Port)
	})
	if appConfig.Profiling.Enabled {
		g.Go(func() error {
			log.Printf("[pprof] listening on :%s", appConfig.Profiling.Port)
			return http.ListenAndServe(":"+appConfig.Profiling.Port, nil)
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
