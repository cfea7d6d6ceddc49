// Package ui serves the dashboard page, its server-rendered charts and the embedded assets.
package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"gohappy/adapters/api"
	"gohappy/app"
	"gohappy/internal"
	"gohappy/ports"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

//go:embed templates/*.html static content/*.md
var embeddedFiles embed.FS

var logger = internal.DefaultLogger.With("UI")

// Server represents the web server for the dashboard
type Server struct {
	router    *gin.Engine
	dashboard *app.DashboardService
	source    ports.DatasetSource
	templates *template.Template
	about     template.HTML
}

// NewServer creates the web server. api is mounted under /api when not nil.
func NewServer(dashboard *app.DashboardService, source ports.DatasetSource, apiHandler http.Handler) (*Server, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	about, err := renderMarkdown("content/about.md")
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:    gin.New(),
		dashboard: dashboard,
		source:    source,
		templates: templates,
		about:     about,
	}

	if err := s.setupMiddleware(); err != nil {
		return nil, err
	}
	s.setupRoutes(apiHandler)
	return s, nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes(apiHandler http.Handler) {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/charts/scatter.png", s.handleScatterPNG)
	s.router.GET("/charts/heatmap.png", s.handleHeatmapPNG)
	s.router.GET("/export.xlsx", s.handleExport)

	if apiHandler != nil {
		s.router.Any(api.Prefix+"/*path", gin.WrapH(apiHandler))
	}
}

// Handler returns the server as an http.Handler
func (s *Server) Handler() http.Handler {
	return s.router
}


func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"json": toJSON,
		"slug": slug,
	}

	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return templates, nil
}

// renderMarkdown converts an embedded markdown document to HTML
func renderMarkdown(name string) (template.HTML, error) {
	md, err := fs.ReadFile(embeddedFiles, name)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	return template.HTML(markdown.ToHTML(md, p, renderer)), nil
}

// renderTemplate executes a template into a buffer first so a failure never leaves a partial page
func (s *Server) renderTemplate(c *gin.Context, name string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		logger.Error("template error for %s: %v", name, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "template rendering failed"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
