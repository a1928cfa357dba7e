package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []CityResult {
	danger := Statistics{RiskLevel: RiskDanger, Reasons: []string{ReasonHeavyPrecipitation}}
	safe := Statistics{RiskLevel: RiskSafe, Reasons: []string{}}
	return []CityResult{
		{Location: Location{City: "Porto Alegre"}, Stats: &danger},
		{Location: Location{City: "Canoas"}, Stats: &safe},
		{Location: Location{City: "Pelotas"}, Stats: nil}, // fetch failed
	}
}

func TestFilter_NoCriteriaReturnsAll(t *testing.T) {
	results := sampleResults()

	filtered := Filter(results, "", "")

	assert.Equal(t, results, filtered)
}

func TestFilter_ByRiskLevel(t *testing.T) {
	filtered := Filter(sampleResults(), "DANGER", "")

	require.Len(t, filtered, 1)
	assert.Equal(t, "Porto Alegre", filtered[0].City)
}

func TestFilter_RiskLevelSkipsCitiesWithoutStats(t *testing.T) {
	filtered := Filter(sampleResults(), "SAFE", "")

	require.Len(t, filtered, 1)
	assert.Equal(t, "Canoas", filtered[0].City)
}

func TestFilter_ByCityCaseInsensitive(t *testing.T) {
	filtered := Filter(sampleResults(), "", "pOrTo aLeGrE")

	require.Len(t, filtered, 1)
	assert.Equal(t, "Porto Alegre", filtered[0].City)
}

func TestFilter_CityMatchIsExactNotSubstring(t *testing.T) {
	filtered := Filter(sampleResults(), "", "Porto")

	assert.Empty(t, filtered)
}

func TestFilter_CombinedCriteria(t *testing.T) {
	filtered := Filter(sampleResults(), "SAFE", "canoas")
	require.Len(t, filtered, 1)
	assert.Equal(t, "Canoas", filtered[0].City)

	assert.Empty(t, Filter(sampleResults(), "DANGER", "canoas"))
}

func TestFilter_NoMatchReturnsEmptyNotNil(t *testing.T) {
	filtered := Filter(sampleResults(), "CAUTION", "")

	assert.NotNil(t, filtered)
	assert.Empty(t, filtered)
}
