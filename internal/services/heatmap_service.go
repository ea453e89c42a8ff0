package services

import (
	"context"
	"time"

	"surge/internal/config"
	"surge/internal/domain/entities"
	"surge/internal/geo"
	"surge/internal/repository"
)

// HeatmapService serves the generated demand views: the heatmap itself, the
// ranked demand zones and the incentives scored against current demand.
type HeatmapService struct {
	refs repository.ReferenceData
	gen  *geo.HeatmapGenerator
	cfg  config.HeatmapConfig
}

func NewHeatmapService(refs repository.ReferenceData, cfg config.HeatmapConfig) *HeatmapService {
	return &HeatmapService{
		refs: refs,
		gen:  geo.NewHeatmapGenerator(cfg.PointsPerRadius, cfg.OffsetScale, cfg.DefaultCity),
		cfg:  cfg,
	}
}

func (s *HeatmapService) Cities() []entities.City {
	return geo.Cities()
}

func (s *HeatmapService) Heatmap(city string, date time.Time, timeframe string) []entities.HeatmapPoint {
	return s.gen.Generate(city, date, timeframe)
}

// DemandZones returns the limit busiest geohash cells of the heatmap. A
// non-positive limit uses the configured default.
func (s *HeatmapService) DemandZones(city string, date time.Time, timeframe string, limit int) []entities.DemandZone {
	if limit <= 0 {
		limit = s.cfg.DemandZoneLimit
	}
	idx := geo.NewDemandIndex(s.cfg.GeohashPrecision, s.gen.Generate(city, date, timeframe))
	return idx.TopCells(limit)
}

// Incentives returns the stored incentives with DemandScore set from the
// heatmap of each incentive's own city. When city is non-empty only that
// city's incentives are returned.
func (s *HeatmapService) Incentives(ctx context.Context, city string, date time.Time, timeframe string) ([]entities.Incentive, error) {
	all, err := s.refs.Incentives(ctx)
	if err != nil {
		return nil, err
	}

	want := ""
	if city != "" {
		want = geo.ResolveCity(city, s.cfg.DefaultCity).Name
	}

	indexes := make(map[string]*geo.DemandIndex)
	out := make([]entities.Incentive, 0, len(all))
	for _, inc := range all {
		home := geo.ResolveCity(inc.City, s.cfg.DefaultCity).Name
		if want != "" && home != want {
			continue
		}
		idx, ok := indexes[home]
		if !ok {
			idx = geo.NewDemandIndex(s.cfg.GeohashPrecision, s.gen.Generate(home, date, timeframe))
			indexes[home] = idx
		}
		inc.DemandScore = idx.ScoreNear(inc.Position.Lat(), inc.Position.Lon(), s.cfg.IncentiveRadiusKm)
		out = append(out, inc)
	}
	return out, nil
}
