package app

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"gohappy/domain/correlation"
	"gohappy/domain/figure"
	"gohappy/domain/happiness"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// staticSource serves a fixed dataset
type staticSource struct {
	ds *happiness.Dataset
}

func (s staticSource) Load(ctx context.Context) (*happiness.Dataset, error) {
	return s.ds, nil
}

type mockSource struct {
	mock.Mock
}

func (m *mockSource) Load(ctx context.Context) (*happiness.Dataset, error) {
	args := m.Called(ctx)
	ds, _ := args.Get(0).(*happiness.Dataset)
	return ds, args.Error(1)
}

func record(country, code string, year int, values map[happiness.Feature]float64) happiness.Record {
	rec := happiness.NewRecord(country, year)
	rec.CountryCode = code
	for f, v := range values {
		rec.Values[f] = v
	}
	return rec
}

// testDataset: Switzerland reports three years with life ladder and generosity moving together,
// Denmark one year without generosity, Germany one year.
func testDataset(t *testing.T) *happiness.Dataset {
	t.Helper()
	ds, err := happiness.NewDataset([]happiness.Record{
		record("Switzerland", "CHE", 2019, map[happiness.Feature]float64{happiness.LifeLadder: 7.5, happiness.Generosity: 0.1, happiness.LogGDP: 11.0}),
		record("Switzerland", "CHE", 2020, map[happiness.Feature]float64{happiness.LifeLadder: 7.6, happiness.Generosity: 0.2, happiness.LogGDP: 11.2}),
		record("Switzerland", "CHE", 2021, map[happiness.Feature]float64{happiness.LifeLadder: 7.7, happiness.Generosity: 0.3, happiness.LogGDP: 11.1}),
		record("Denmark", "", 2020, map[happiness.Feature]float64{happiness.LifeLadder: 7.8}),
		record("Germany", "DEU", 2020, map[happiness.Feature]float64{happiness.LifeLadder: 7.0}),
	})
	require.NoError(t, err)
	return ds
}

func newTestService(t *testing.T) *DashboardService {
	return NewDashboardService(staticSource{ds: testDataset(t)})
}

func TestOptions(t *testing.T) {
	opts, err := newTestService(t).Options(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Denmark", "Germany", "Switzerland"}, opts.Countries)
	assert.Equal(t, []int{2019, 2020, 2021}, opts.Years)
	assert.Len(t, opts.Features, happiness.FeatureCount)
	assert.Equal(t, InitialSelection(), opts.Initial)
	assert.Equal(t, "Switzerland", opts.Initial.Country)
	assert.Equal(t, "2020", opts.Initial.Year)
}

func TestCountryDetail_Overlays(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name    string
		country string
		year    string
		message string
	}{
		{"nothing selected", "", "", "No country and year selected"},
		{"no country", "", "2020", "No country selected"},
		{"no year", "Switzerland", "", "No year selected"},
		{"non numeric year", "Switzerland", "latest", "No year selected"},
		{"year without data", "Switzerland", "2005", "No data found for Switzerland in Year 2005"},
		{"unknown country", "Atlantis", "2020", "No data found for Atlantis in Year 2020"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			panel, err := svc.CountryDetail(context.Background(), tt.country, tt.year)
			require.NoError(t, err)
			assert.True(t, panel.Overlay.Shown)
			assert.Equal(t, tt.message, panel.Overlay.Message)
			assert.Empty(t, panel.Title)
			assert.Empty(t, panel.Cards)
		})
	}
}

func TestCountryDetail_Cards(t *testing.T) {
	panel, err := newTestService(t).CountryDetail(context.Background(), "Switzerland", "2020")
	require.NoError(t, err)

	assert.False(t, panel.Overlay.Shown)
	assert.Equal(t, "General Information about Switzerland for Year 2020", panel.Title)
	require.Len(t, panel.Cards, happiness.FeatureCount)

	ladder := panel.Cards[happiness.LifeLadder]
	assert.Equal(t, "Life Ladder", ladder.Title)
	assert.Equal(t, "7.60", ladder.Value)
	assert.Equal(t, 2, ladder.Rank, "Denmark is ahead in 2020")
	assert.Equal(t, 3, ladder.Total)
	require.NotNil(t, ladder.History)
	assert.Equal(t, 3, ladder.History.Count)
	assert.InDelta(t, 7.6, ladder.History.Mean, 1e-9)

	generosity := panel.Cards[happiness.Generosity]
	assert.Equal(t, "0.20", generosity.Value)
	assert.Equal(t, 1, generosity.Rank)
	assert.True(t, generosity.Ranked())

	corruption := panel.Cards[happiness.Corruption]
	assert.Equal(t, "n/a", corruption.Value)
	assert.False(t, corruption.Ranked())
	assert.Equal(t, 3, corruption.Total)
	assert.Nil(t, corruption.History)
}

func TestExplanation(t *testing.T) {
	panel, err := newTestService(t).Explanation(context.Background(), "Switzerland", "Life Ladder", "generosity")
	require.NoError(t, err)

	assert.False(t, panel.Overlay.Shown)
	assert.Equal(t, correlation.VeryStrong, panel.Category)
	assert.Equal(t, "The Correlation is very strong: The higher Life Ladder the higher is Generosity in Switzerland", panel.Simplified)
	assert.Equal(t, "Very Strong Significance", panel.ScientificLabel)
	assert.Equal(t, "Significance: 1.00", panel.Significance)
	assert.Equal(t, "A positive correlation means that if one value increases so does the other one.", panel.ScientificText)
	assert.Equal(t, 3, panel.N)
	assert.NotNil(t, panel.PValue)
}

func TestExplanation_Overlays(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name    string
		country string
		first   string
		second  string
		message string
	}{
		{"no country", "", "Life Ladder", "Generosity", "No country selected"},
		{"unknown feature", "Switzerland", "Life Ladder", "Happiness", "Select two features to compare"},
		{"missing feature", "Switzerland", "", "Generosity", "Select two features to compare"},
		{"unknown country", "Atlantis", "Life Ladder", "Generosity", "No data found for Atlantis"},
		{"single year", "Denmark", "Life Ladder", "Generosity", "Not enough data to compare Life Ladder and Generosity for Denmark"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			panel, err := svc.Explanation(context.Background(), tt.country, tt.first, tt.second)
			require.NoError(t, err)
			assert.True(t, panel.Overlay.Shown)
			assert.Equal(t, tt.message, panel.Overlay.Message)
			assert.Empty(t, panel.Simplified)
		})
	}
}

func TestHeatmap(t *testing.T) {
	svc := newTestService(t)

	panel, err := svc.Heatmap(context.Background(), "Switzerland")
	require.NoError(t, err)
	assert.False(t, panel.Overlay.Shown)
	assert.Equal(t, "Correlation Information about Switzerland", panel.Title)
	assert.Equal(t, happiness.Labels(), panel.Labels)
	require.Len(t, panel.Matrix, happiness.FeatureCount)

	assert.Equal(t, 1.0, panel.Matrix[happiness.LifeLadder][happiness.LifeLadder])
	assert.Equal(t, 1.0, panel.Matrix[happiness.LifeLadder][happiness.Generosity])
	assert.Equal(t, 0.5, panel.Matrix[happiness.LifeLadder][happiness.LogGDP])
	assert.True(t, math.IsNaN(panel.Matrix[happiness.Corruption][happiness.Corruption]))

	require.Len(t, panel.Figure.Data, 1)
	assert.Equal(t, "heatmap", panel.Figure.Data[0].Type)
	assert.Equal(t, "Blues", panel.Figure.Data[0].ColorScale)
	assert.Equal(t, "top", panel.Figure.Layout.XAxis.Side)

	raw, err := json.Marshal(panel)
	require.NoError(t, err, "NaN cells must not break encoding")
	doc := gjson.ParseBytes(raw)
	assert.Equal(t, "null", doc.Get("figure.data.0.z.6.6").Raw)
	assert.Equal(t, 1.0, doc.Get("figure.data.0.z.0.5").Float())

	for country, message := range map[string]string{"": "No country selected", "Atlantis": "No data found for Atlantis"} {
		panel, err := svc.Heatmap(context.Background(), country)
		require.NoError(t, err)
		assert.True(t, panel.Overlay.Shown)
		assert.Equal(t, message, panel.Overlay.Message)
	}
}

func TestScatterPlot(t *testing.T) {
	panel, err := newTestService(t).ScatterPlot(context.Background(), "Switzerland", "Life Ladder", "Generosity")
	require.NoError(t, err)

	assert.False(t, panel.Overlay.Shown)
	assert.Equal(t, "Comparing Life Ladder and Generosity for Switzerland", panel.Title)
	assert.Equal(t, []int{2019, 2020, 2021}, panel.Years)
	require.NotNil(t, panel.Line)
	assert.InDelta(t, 1.0, panel.Line.Beta, 1e-9)
	assert.InDelta(t, 1.0, panel.Line.RSquared, 1e-9)

	require.Len(t, panel.Figure.Data, 2)
	points := panel.Figure.Data[0]
	assert.Equal(t, "markers+text", points.Mode)
	assert.Equal(t, "top center", points.TextPosition)
	assert.Equal(t, []string{"2019", "2020", "2021"}, points.Text)
	assert.Equal(t, "lines", panel.Figure.Data[1].Mode)
	assert.Equal(t, "Life Ladder", panel.Figure.Layout.XAxis.Title)
}

func TestScatterPlot_OverlayShowsSample(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name    string
		country string
		first   string
		second  string
		message string
	}{
		{"no country", "", "Life Ladder", "Generosity", "No country selected"},
		{"one feature", "Switzerland", "Life Ladder", "", "Please choose at least two features"},
		{"unknown country", "Atlantis", "Life Ladder", "Generosity", "No data found for Atlantis"},
		{"no complete pairs", "Denmark", "Life Ladder", "Generosity", "Not enough data to compare Life Ladder and Generosity for Denmark"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			panel, err := svc.ScatterPlot(context.Background(), tt.country, tt.first, tt.second)
			require.NoError(t, err)
			assert.True(t, panel.Overlay.Shown)
			assert.Equal(t, tt.message, panel.Overlay.Message)
			assert.Equal(t, figure.SampleScatter(), panel.Figure)
		})
	}
}

func TestScatterPlot_SinglePointHasNoTrendline(t *testing.T) {
	panel, err := newTestService(t).ScatterPlot(context.Background(), "Germany", "Life Ladder", "Life Ladder")
	require.NoError(t, err)
	assert.False(t, panel.Overlay.Shown)
	assert.Nil(t, panel.Line)
	assert.Len(t, panel.Figure.Data, 1)
}

func TestWorldMap(t *testing.T) {
	svc := newTestService(t)

	panel, err := svc.WorldMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{2019, 2020, 2021}, panel.Years)
	require.Len(t, panel.Figure.Frames, 3)
	require.Len(t, panel.Figure.Layout.Sliders, 1)
	assert.Len(t, panel.Figure.Layout.Sliders[0].Steps, 3)

	frame := panel.Figure.Frames[1]
	assert.Equal(t, "2020", frame.Name)
	require.Len(t, frame.Data, 1)
	trace := frame.Data[0]
	assert.Equal(t, "choropleth", trace.Type)
	assert.Equal(t, []string{"DEU", "CHE"}, trace.Locations, "records without a code are skipped")
	assert.Equal(t, []float64{7.0, 7.6}, trace.Z)
	assert.Equal(t, 7.0, *trace.ZMin)
	assert.Equal(t, 7.7, *trace.ZMax)
	assert.Contains(t, trace.HoverText[1], "Switzerland")

	assert.Equal(t, "equirectangular", panel.Figure.Layout.Geo.Projection.Type)
	assert.False(t, panel.Figure.Layout.Geo.ShowFrame)
	assert.Equal(t, panel.Figure.Frames[0].Data, panel.Figure.Data)

	again, err := svc.WorldMap(context.Background())
	require.NoError(t, err)
	assert.Same(t, panel, again)
}

func TestDashboard(t *testing.T) {
	view, err := newTestService(t).Dashboard(context.Background(), Selection{
		Country: " Switzerland ",
		Year:    "2020",
		First:   "Life Ladder",
		Second:  "Generosity",
	})
	require.NoError(t, err)

	assert.Equal(t, "Switzerland", view.Selection.Country)
	assert.NotNil(t, view.Options)
	assert.False(t, view.Detail.Overlay.Shown)
	assert.False(t, view.Explanation.Overlay.Shown)
	assert.False(t, view.Heatmap.Overlay.Shown)
	assert.False(t, view.Scatter.Overlay.Shown)
	assert.NotNil(t, view.WorldMap)

	_, err = json.Marshal(view)
	assert.NoError(t, err)
}

func TestDashboard_SourceError(t *testing.T) {
	src := new(mockSource)
	src.On("Load", mock.Anything).Return(nil, errors.New("disk on fire"))

	_, err := NewDashboardService(src).Dashboard(context.Background(), InitialSelection())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
}
