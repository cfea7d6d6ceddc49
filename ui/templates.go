package ui

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"gohappy/app"
)

// pageData is the model of the dashboard template
type pageData struct {
	View  *app.DashboardView
	About template.HTML

	// chart and export links for the current selection
	ScatterURL template.URL
	HeatmapURL template.URL
	ExportURL  template.URL
}

func newPageData(view *app.DashboardView, about template.HTML) pageData {
	sel := view.Selection
	byCountry := url.Values{"country": {sel.Country}}.Encode()
	comparison := url.Values{"country": {sel.Country}, "first": {sel.First}, "second": {sel.Second}}.Encode()

	return pageData{
		View:       view,
		About:      about,
		ScatterURL: template.URL("/charts/scatter.png?" + comparison),
		HeatmapURL: template.URL("/charts/heatmap.png?" + byCountry),
		ExportURL:  template.URL("/export.xlsx?" + byCountry),
	}
}

// toJSON embeds a figure in a script block. encoding/json escapes <, > and &,
// so the output cannot close the surrounding tag.
func toJSON(v interface{}) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}

// slug turns a label into a CSS class fragment
func slug(v interface{}) string {
	return strings.ReplaceAll(strings.ToLower(fmt.Sprint(v)), " ", "-")
}
