package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Fodders-Dev/RadioAtlas/internal/engine"
	"github.com/Fodders-Dev/RadioAtlas/internal/policy"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// extract resolves the url query parameter into a flattened extraction
// response. Engine parse failures are the caller's problem (400);
// rate limiting and transport failures are upstream conditions (502).
func (s *Server) extract(c *gin.Context) {
	url := strings.TrimSpace(c.Query("url"))
	if url == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "url is required"})
		return
	}

	if policy.IsBlocked(url) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "blocked host"})
		return
	}

	result, err := s.extractor.Extract(c.Request.Context(), url)
	if err != nil {
		status := http.StatusBadGateway
		if engine.IsParseError(err) {
			status = http.StatusBadRequest
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
