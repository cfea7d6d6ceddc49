package ui

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"gohappy/adapters/excel"
	"gohappy/app"
	"gohappy/internal/charts"
	"gohappy/internal/errors"

	"github.com/gin-gonic/gin"
)

// handleIndex renders the page for the query selection. A request without any
// selection parameter gets the initial selection.
func (s *Server) handleIndex(c *gin.Context) {
	sel := app.InitialSelection()
	if hasSelection(c) {
		sel = app.Selection{}
		if err := c.ShouldBindQuery(&sel); err != nil {
			s.abortWithError(c, errors.InvalidInput(err.Error()))
			return
		}
	}

	view, err := s.dashboard.Dashboard(c.Request.Context(), sel)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	s.renderTemplate(c, "index.html", newPageData(view, s.about))
}

func hasSelection(c *gin.Context) bool {
	for _, key := range []string{"country", "year", "first", "second"} {
		if _, ok := c.GetQuery(key); ok {
			return true
		}
	}
	return false
}

// handleScatterPNG renders the feature comparison on the server
func (s *Server) handleScatterPNG(c *gin.Context) {
	panel, err := s.dashboard.ScatterPlot(c.Request.Context(), c.Query("country"), c.Query("first"), c.Query("second"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	if panel.Overlay.Shown {
		s.abortWithError(c, errors.Unprocessable(panel.Overlay.Message))
		return
	}

	var buf bytes.Buffer
	err = charts.ScatterPNG(&buf, charts.Scatter{
		Title:  panel.Title,
		XLabel: panel.First,
		YLabel: panel.Second,
		Years:  panel.Years,
		X:      panel.X,
		Y:      panel.Y,
		Line:   panel.Line,
	}, charts.DefaultWidth, charts.DefaultHeight)
	if err != nil {
		s.abortWithError(c, errors.Wrap(err, "failed to render scatter chart"))
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// handleHeatmapPNG renders the correlation matrix on the server
func (s *Server) handleHeatmapPNG(c *gin.Context) {
	panel, err := s.dashboard.Heatmap(c.Request.Context(), c.Query("country"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	if panel.Overlay.Shown {
		s.abortWithError(c, errors.Unprocessable(panel.Overlay.Message))
		return
	}

	var buf bytes.Buffer
	err = charts.HeatmapPNG(&buf, charts.Heatmap{
		Title:  panel.Title,
		Labels: panel.Labels,
		Matrix: panel.Matrix,
	}, charts.DefaultHeatmapSize, charts.DefaultHeatmapSize)
	if err != nil {
		s.abortWithError(c, errors.Wrap(err, "failed to render heatmap"))
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// handleExport downloads the records as a workbook, with the correlation sheet
// when a known country is selected
func (s *Server) handleExport(c *gin.Context) {
	ds, err := s.source.Load(c.Request.Context())
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	country := strings.TrimSpace(c.Query("country"))
	if country != "" && !ds.HasCountry(country) {
		s.abortWithError(c, errors.NotFound(fmt.Sprintf("country %q", country)))
		return
	}

	var buf bytes.Buffer
	if err := excel.WriteWorkbook(&buf, ds, country); err != nil {
		s.abortWithError(c, errors.Wrap(err, "failed to export workbook"))
		return
	}

	filename := "world-happiness.xlsx"
	if country != "" {
		filename = "world-happiness-" + strings.ToLower(strings.ReplaceAll(country, " ", "-")) + ".xlsx"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (s *Server) abortWithError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
}
