package app

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"sync"

	"gohappy/domain/core"
	"gohappy/domain/correlation"
	"gohappy/domain/figure"
	"gohappy/domain/happiness"
	"gohappy/internal/analysis"
	"gohappy/ports"

	"golang.org/x/sync/errgroup"
)

// Overlay messages
const (
	msgNoCountryAndYear = "No country and year selected"
	msgNoCountry        = "No country selected"
	msgNoYear           = "No year selected"
	msgSelectTwo        = "Select two features to compare"
	msgChooseTwo        = "Please choose at least two features"
)

func msgNoDataForYear(country, year string) string {
	return fmt.Sprintf("No data found for %s in Year %s", country, year)
}

func msgNoData(country string) string {
	return fmt.Sprintf("No data found for %s", country)
}

func msgNotEnough(first, second happiness.Feature, country string) string {
	return fmt.Sprintf("Not enough data to compare %s and %s for %s", first.Label(), second.Label(), country)
}

// DashboardService assembles the dashboard panels from the current dataset.
// Incomplete selections produce overlays, not errors.
type DashboardService struct {
	source ports.DatasetSource

	mapMu      sync.Mutex
	mapDataset *happiness.Dataset
	mapPanel   *WorldMapPanel
}

// NewDashboardService creates a dashboard service over a dataset source
func NewDashboardService(source ports.DatasetSource) *DashboardService {
	return &DashboardService{source: source}
}

// Options lists the countries, years and features offered by the page
func (s *DashboardService) Options(ctx context.Context) (*OptionsPanel, error) {
	ds, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &OptionsPanel{
		Countries: ds.CountryNames(),
		Years:     ds.Years(),
		Features:  happiness.Labels(),
		Initial:   InitialSelection(),
	}, nil
}

// CountryDetail builds one card per feature for a country in a year
func (s *DashboardService) CountryDetail(ctx context.Context, country, year string) (*DetailPanel, error) {
	ds, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	switch {
	case country == "" && year == "":
		return &DetailPanel{Overlay: showOverlay(msgNoCountryAndYear)}, nil
	case country == "":
		return &DetailPanel{Overlay: showOverlay(msgNoCountry)}, nil
	case year == "":
		return &DetailPanel{Overlay: showOverlay(msgNoYear)}, nil
	}

	y, err := strconv.Atoi(year)
	if err != nil {
		return &DetailPanel{Overlay: showOverlay(msgNoYear)}, nil
	}

	rec, ok := ds.ForCountryYear(country, y)
	if !ok {
		return &DetailPanel{Overlay: showOverlay(msgNoDataForYear(country, year))}, nil
	}

	cards := make([]DetailCard, 0, happiness.FeatureCount)
	for _, f := range happiness.AllFeatures() {
		card := DetailCard{Feature: f.Key(), Title: f.Label(), Value: formatCardValue(rec.Value(f))}
		if rank, ok := ds.Rank(country, y, f); ok {
			card.Rank = rank.Position
			card.Total = rank.Total
		}
		if summary, err := analysis.Summarize(ds.Series(country, f)); err == nil {
			card.History = &summary
		}
		cards = append(cards, card)
	}

	return &DetailPanel{
		Title: fmt.Sprintf("General Information about %s for Year %s", country, year),
		Cards: cards,
	}, nil
}

func formatCardValue(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%4.2f", v)
}

// Explanation describes the correlation between two features of a country
func (s *DashboardService) Explanation(ctx context.Context, country, first, second string) (*ExplanationPanel, error) {
	ds, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	if country == "" {
		return &ExplanationPanel{Overlay: showOverlay(msgNoCountry)}, nil
	}
	f1, f2, ok := parsePair(first, second)
	if !ok {
		return &ExplanationPanel{Overlay: showOverlay(msgSelectTwo)}, nil
	}
	if !ds.HasCountry(country) {
		return &ExplanationPanel{Overlay: showOverlay(msgNoData(country))}, nil
	}

	r, n, err := analysis.Pearson(ds.Series(country, f1), ds.Series(country, f2))
	if err != nil {
		if core.IsInsufficientData(err) {
			return &ExplanationPanel{Overlay: showOverlay(msgNotEnough(f1, f2, country)), N: n}, nil
		}
		return nil, err
	}

	positive, category := correlation.Classify(r)
	panel := &ExplanationPanel{
		Simplified:      correlation.SimplifiedExplanation(r, f1.Label(), f2.Label(), country),
		Category:        category,
		ScientificLabel: correlation.ScientificLabel(category),
		Significance:    fmt.Sprintf("Significance: %4.2f", r),
		ScientificText:  correlation.ScientificExplanation(positive),
		Coefficient:     r,
		N:               n,
	}
	if p := analysis.PValue(r, n); !math.IsNaN(p) {
		panel.PValue = figure.Float(p)
	}
	return panel, nil
}

// Heatmap computes the feature correlation matrix of a country
func (s *DashboardService) Heatmap(ctx context.Context, country string) (*HeatmapPanel, error) {
	ds, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	if country == "" {
		return &HeatmapPanel{Overlay: showOverlay(msgNoCountry)}, nil
	}
	if !ds.HasCountry(country) {
		return &HeatmapPanel{Overlay: showOverlay(msgNoData(country))}, nil
	}

	features := happiness.AllFeatures()
	columns := make([][]float64, len(features))
	for i, f := range features {
		columns[i] = ds.Series(country, f)
	}
	matrix := analysis.RoundMatrix(analysis.CorrelationMatrix(columns), 2)
	labels := happiness.Labels()

	return &HeatmapPanel{
		Title:  fmt.Sprintf("Correlation Information about %s", country),
		Labels: labels,
		Matrix: matrix,
		Figure: heatmapFigure(labels, matrix),
	}, nil
}

// ScatterPlot compares two features of a country across its years.
// While the overlay is shown the panel carries the sample figure.
func (s *DashboardService) ScatterPlot(ctx context.Context, country, first, second string) (*ScatterPanel, error) {
	ds, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	overlay := func(message string) (*ScatterPanel, error) {
		return &ScatterPanel{Overlay: showOverlay(message), Figure: figure.SampleScatter()}, nil
	}

	if country == "" {
		return overlay(msgNoCountry)
	}
	f1, f2, ok := parsePair(first, second)
	if !ok {
		return overlay(msgChooseTwo)
	}
	if !ds.HasCountry(country) {
		return overlay(msgNoData(country))
	}

	var years []int
	var x, y []float64
	for _, rec := range ds.ForCountry(country) {
		if !rec.Has(f1) || !rec.Has(f2) {
			continue
		}
		years = append(years, rec.Year)
		x = append(x, rec.Value(f1))
		y = append(y, rec.Value(f2))
	}
	if len(years) == 0 {
		return overlay(msgNotEnough(f1, f2, country))
	}

	panel := &ScatterPanel{
		Title:  fmt.Sprintf("Comparing %s and %s for %s", f1.Label(), f2.Label(), country),
		First:  f1.Label(),
		Second: f2.Label(),
		Years:  years,
		X:      x,
		Y:      y,
	}
	if line, err := analysis.FitLine(x, y); err == nil {
		panel.Line = &line
	}
	panel.Figure = scatterFigure(country, f1, f2, years, x, y, panel.Line)
	return panel, nil
}

// WorldMap returns the life ladder choropleth. It is rebuilt only when the dataset changes.
func (s *DashboardService) WorldMap(ctx context.Context) (*WorldMapPanel, error) {
	ds, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	s.mapMu.Lock()
	defer s.mapMu.Unlock()
	if s.mapDataset != ds {
		s.mapPanel = &WorldMapPanel{Years: ds.Years(), Figure: worldMapFigure(ds)}
		s.mapDataset = ds
	}
	return s.mapPanel, nil
}

// Dashboard computes every panel of the page concurrently
func (s *DashboardService) Dashboard(ctx context.Context, sel Selection) (*DashboardView, error) {
	sel = sel.Normalize()
	view := &DashboardView{Selection: sel}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		view.Options, err = s.Options(ctx)
		return err
	})
	g.Go(func() (err error) {
		view.Detail, err = s.CountryDetail(ctx, sel.Country, sel.Year)
		return err
	})
	g.Go(func() (err error) {
		view.Explanation, err = s.Explanation(ctx, sel.Country, sel.First, sel.Second)
		return err
	})
	g.Go(func() (err error) {
		view.Heatmap, err = s.Heatmap(ctx, sel.Country)
		return err
	})
	g.Go(func() (err error) {
		view.Scatter, err = s.ScatterPlot(ctx, sel.Country, sel.First, sel.Second)
		return err
	})
	g.Go(func() (err error) {
		view.WorldMap, err = s.WorldMap(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return view, nil
}

// parsePair resolves two feature names; both must be known
func parsePair(first, second string) (happiness.Feature, happiness.Feature, bool) {
	f1, err1 := happiness.ParseFeature(first)
	f2, err2 := happiness.ParseFeature(second)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return f1, f2, true
}
