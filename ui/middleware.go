package ui

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

// setupMiddleware configures Gin middleware and the embedded static files
func (s *Server) setupMiddleware() error {
	s.router.Use(gin.Logger())
	s.router.Use(gin.Recovery())

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		return fmt.Errorf("failed to create static filesystem: %w", err)
	}
	s.router.StaticFS("/static", http.FS(staticFS))
	return nil
}
