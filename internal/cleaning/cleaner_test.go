package cleaning

import (
	"testing"

	"gohappy/domain/happiness"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Alpha3(name string) (string, bool) {
	args := m.Called(name)
	return args.String(0), args.Bool(1)
}

func TestCorrectedNames(t *testing.T) {
	assert.Len(t, CorrectedNames, 17)
	assert.Equal(t, "Turkey", CorrectedNames["Turkiye"])
	assert.Equal(t, "Somalia", CorrectedNames["Somaliland region"])
	assert.ElementsMatch(t, []string{"Kosovo", "Ivory Coast"}, RemovedNames)
}

func TestClean(t *testing.T) {
	resolver := new(mockResolver)
	resolver.On("Alpha3", "Switzerland").Return("CHE", true)
	resolver.On("Alpha3", "Turkey").Return("TUR", true)
	resolver.On("Alpha3", "Russian Federation").Return("RUS", true)
	resolver.On("Alpha3", "Neverland").Return("", false)

	input := []happiness.Record{
		happiness.NewRecord("Switzerland", 2020),
		happiness.NewRecord("Kosovo", 2020),
		happiness.NewRecord("Turkiye", 2019),
		happiness.NewRecord("Turkiye", 2020),
		happiness.NewRecord("Ivory Coast", 2020),
		happiness.NewRecord("Russia", 2020),
		happiness.NewRecord("Neverland", 2020),
	}
	input[0].Values[happiness.LifeLadder] = 7.5

	out, report := NewCleaner(resolver).Clean(input)

	require.Len(t, out, 5)
	assert.Equal(t, "Switzerland", out[0].CountryName)
	assert.Equal(t, "CHE", out[0].CountryCode)
	assert.Equal(t, 7.5, out[0].Value(happiness.LifeLadder))
	assert.Equal(t, "Turkey", out[1].CountryName)
	assert.Equal(t, "TUR", out[2].CountryCode)
	assert.Equal(t, "Russian Federation", out[3].CountryName)
	assert.Equal(t, "RUS", out[3].CountryCode)
	assert.Empty(t, out[4].CountryCode)

	assert.Equal(t, 7, report.Input)
	assert.Equal(t, 5, report.Output)
	assert.Equal(t, []string{"Ivory Coast", "Kosovo"}, report.Removed)
	assert.Equal(t, []string{"Russia", "Turkiye"}, report.Renamed)
	assert.Equal(t, []string{"Neverland"}, report.Unresolved)

	// input untouched
	assert.Equal(t, "Turkiye", input[2].CountryName)
	resolver.AssertExpectations(t)
}

func TestClean_KeepsExistingCode(t *testing.T) {
	resolver := new(mockResolver)

	rec := happiness.NewRecord("Switzerland", 2020)
	rec.CountryCode = "CHE"

	out, report := NewCleaner(resolver).Clean([]happiness.Record{rec})
	require.Len(t, out, 1)
	assert.Equal(t, "CHE", out[0].CountryCode)
	assert.Empty(t, report.Unresolved)
	resolver.AssertNotCalled(t, "Alpha3", mock.Anything)
}
