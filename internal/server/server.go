package server

import (
	"github.com/gin-gonic/gin"

	"github.com/Fodders-Dev/RadioAtlas/config"
	"github.com/Fodders-Dev/RadioAtlas/internal/extractor"
)

// Server handles HTTP requests for the extractor.
type Server struct {
	cfg       *config.Config
	router    *gin.Engine
	extractor *extractor.Extractor
}

// New creates a new HTTP server instance.
func New(cfg *config.Config, ex *extractor.Extractor) *Server {
	s := &Server{
		cfg:       cfg,
		extractor: ex,
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	s.setupRoutes(router)
	s.router = router

	return s
}

func (s *Server) setupRoutes(router *gin.Engine) {
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(405, ErrorResponse{Error: "method not allowed"})
	})

	router.GET("/health", s.health)
	router.GET("/extract", maxInFlight(s.cfg.Server.MaxInFlight), s.extract)
}

// Start runs the server on the given port, blocking until it exits.
func (s *Server) Start(port string) error {
	return s.router.Run(":" + port)
}
