package ui

import (
	"embed"
	"fmt"
	"html/template"
	"log"

	"github.com/gin-gonic/gin"

	"gopower/app"
	"gopower/internal/config"
)

//go:embed templates/*
var embeddedFiles embed.FS

// Server is the interactive calculator web server: one HTML page backed by
// JSON endpoints for the two estimators and the effect-size sweep.
type Server struct {
	router    *gin.Engine
	service   *app.PowerService
	templates *template.Template
	defaults  config.StudyConfig
	guideHTML template.HTML
}

// NewServer creates the calculator server.
func NewServer(service *app.PowerService, cfg *config.Config) (*Server, error) {
	gin.SetMode(cfg.Server.GinMode)

	templates, err := template.New("").Funcs(template.FuncMap{
		"pct": func(v float64) string { return fmt.Sprintf("%.0f%%", v*100) },
		"f2":  func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"f3":  func(v float64) string { return fmt.Sprintf("%.3f", v) },
	}).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		router:    gin.Default(),
		service:   service,
		templates: templates,
		defaults:  cfg.Study,
		guideHTML: renderGuide(),
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)

	// API endpoints for the calculator
	s.router.POST("/api/power", s.handlePower)
	s.router.POST("/api/sample-size", s.handleSampleSize)
	s.router.POST("/api/power/sweep", s.handleSweep)
	s.router.POST("/api/power/sweep/export", s.handleSweepExport)
}

// Router exposes the underlying handler for tests and embedding.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP server on the given address and blocks.
func (s *Server) Run(addr string) error {
	log.Printf("[ui] power calculator listening on %s", addr)
	return s.router.Run(addr)
}
