package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surge/internal/geo"
)

func setupHeatmapService(t *testing.T) *HeatmapService {
	t.Helper()
	store, _ := setupStore(t)
	return NewHeatmapService(store, testConfig().Heatmap)
}

func TestHeatmap_MatchesGenerator(t *testing.T) {
	svc := setupHeatmapService(t)

	pts := svc.Heatmap("San Francisco", fixedNow, geo.TimeframeNextHour)
	assert.NotEmpty(t, pts)
	assert.Equal(t, pts, svc.Heatmap("San Francisco", fixedNow, geo.TimeframeNextHour))
	assert.Len(t, svc.Cities(), 3)
}

func TestDemandZones_RankedAndLimited(t *testing.T) {
	svc := setupHeatmapService(t)

	zones := svc.DemandZones("New York", fixedNow, geo.TimeframeNextHour, 0)
	require.Len(t, zones, 5)
	for i := 1; i < len(zones); i++ {
		assert.GreaterOrEqual(t, zones[i-1].Demand, zones[i].Demand)
	}
	for _, z := range zones {
		assert.Len(t, z.Geohash, 6)
		assert.Positive(t, z.PointCount)
	}

	assert.Len(t, svc.DemandZones("New York", fixedNow, geo.TimeframeNextHour, 2), 2)
}

func TestIncentives_ScoredAgainstDemand(t *testing.T) {
	svc := setupHeatmapService(t)

	sf, err := svc.Incentives(context.Background(), "San Francisco", fixedNow, geo.TimeframeNextHour)
	require.NoError(t, err)
	require.Len(t, sf, 2)
	for _, inc := range sf {
		assert.Equal(t, "San Francisco", inc.City)
		assert.Positive(t, inc.DemandScore, inc.ID)
	}

	all, err := svc.Incentives(context.Background(), "", fixedNow, geo.TimeframeNextHour)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}
