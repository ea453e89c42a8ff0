package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"surge/internal/config"
	"surge/internal/domain/entities"
	"surge/internal/geo"
	"surge/internal/repository"
	"surge/pkg/utils"
)

const (
	historyNoiseSpan   = 0.4
	predictionBaseConf = 0.9
	predictionConfStep = 0.08
	predictionMinConf  = 0.4
)

// SurgeService answers the surge read operations and produces the
// surge-updates poll.
type SurgeService struct {
	refs    repository.ReferenceData
	pricing config.PricingConfig
	city    string
	rnd     Randomizer
	now     func() time.Time
}

func NewSurgeService(refs repository.ReferenceData, pricing config.PricingConfig, defaultCity string, rnd Randomizer) *SurgeService {
	return &SurgeService{
		refs:    refs,
		pricing: pricing,
		city:    defaultCity,
		rnd:     rnd,
		now:     time.Now,
	}
}

// WithClock replaces the time source.
func (s *SurgeService) WithClock(now func() time.Time) *SurgeService {
	s.now = now
	return s
}

// SurgeData returns the stored surge areas, restricted to city when it is
// non-empty.
func (s *SurgeService) SurgeData(ctx context.Context, city string) ([]entities.SurgeArea, error) {
	areas, err := s.refs.SurgeData(ctx)
	if err != nil {
		return nil, err
	}
	if city == "" {
		return areas, nil
	}
	out := make([]entities.SurgeArea, 0, len(areas))
	for _, a := range areas {
		if strings.EqualFold(a.City, city) {
			out = append(out, a)
		}
	}
	return out, nil
}

// SurgeEvents returns the stored events, restricted to city when it is
// non-empty.
func (s *SurgeService) SurgeEvents(ctx context.Context, city string) ([]entities.SurgeEvent, error) {
	events, err := s.refs.SurgeEvents(ctx)
	if err != nil {
		return nil, err
	}
	if city == "" {
		return events, nil
	}
	out := make([]entities.SurgeEvent, 0, len(events))
	for _, e := range events {
		if strings.EqualFold(e.City, city) {
			out = append(out, e)
		}
	}
	return out, nil
}

// HistoricalSurgeData returns the stored series for routeID (every route
// when routeID is empty). With a non-nil date it instead synthesizes the 24
// hourly samples of that day.
func (s *SurgeService) HistoricalSurgeData(ctx context.Context, routeID string, date *time.Time) ([]entities.SurgeSample, error) {
	if date != nil {
		if routeID == "" {
			routeID = s.pricing.DefaultRouteID
		}
		return HistoricalSeries(routeID, *date, s.pricing.SurgePriceMax), nil
	}

	samples, err := s.refs.HistoricalSurgeData(ctx)
	if err != nil {
		return nil, err
	}
	if routeID == "" {
		return samples, nil
	}
	out := make([]entities.SurgeSample, 0, len(samples))
	for _, smp := range samples {
		if smp.RouteID == routeID {
			out = append(out, smp)
		}
	}
	return out, nil
}

// HistoricalSeries synthesizes one sample per hour of date's UTC day. The
// same (routeID, day) always yields the same series.
func HistoricalSeries(routeID string, date time.Time, maxMultiplier float64) []entities.SurgeSample {
	day := date.UTC().Truncate(24 * time.Hour)
	key := day.Format("2006-01-02")
	weekend := geo.IsWeekend(day)

	out := make([]entities.SurgeSample, 24)
	for h := 0; h < 24; h++ {
		hv := utils.HashString(fmt.Sprintf("%s-%s-%d", routeID, key, h))
		noise := (utils.HashFraction(hv, 1, 1000) - 0.5) * historyNoiseSpan
		m := utils.Clamp(diurnalBase(h, weekend)+noise, 1.0, maxMultiplier)
		out[h] = entities.SurgeSample{
			RouteID:    routeID,
			Timestamp:  day.Add(time.Duration(h) * time.Hour),
			Multiplier: utils.Round1(m),
		}
	}
	return out
}

// diurnalBase is the typical multiplier for an hour of the day before noise.
func diurnalBase(hour int, weekend bool) float64 {
	switch {
	case hour < 5:
		if weekend {
			return 1.6
		}
		return 1.05
	case hour < 7:
		return 1.1
	case hour < 9:
		if weekend {
			return 1.1
		}
		return 1.8
	case hour < 16:
		return 1.25
	case hour < 19:
		if weekend {
			return 1.35
		}
		return 1.9
	case hour < 22:
		return 1.4
	default:
		if weekend {
			return 1.7
		}
		return 1.45
	}
}

// PredictedSurgeData forecasts one multiplier per hour of the timeframe
// horizon, starting at the hour after date. Unknown cities use the default
// city.
func (s *SurgeService) PredictedSurgeData(city string, date time.Time, timeframe string) []entities.SurgePrediction {
	resolved := geo.ResolveCity(city, s.city).Name
	start := date.Truncate(time.Hour)
	hours := geo.TimeframeHours(timeframe)

	out := make([]entities.SurgePrediction, hours)
	for i := 0; i < hours; i++ {
		at := start.Add(time.Duration(i+1) * time.Hour)
		intensity := geo.AverageIntensity(resolved, at, timeframe)
		m := utils.Clamp(1+intensity*(s.pricing.SurgePriceMax-1)*0.75, 1.0, s.pricing.SurgePriceMax)
		conf := math.Max(predictionMinConf, predictionBaseConf-predictionConfStep*float64(i))
		out[i] = entities.SurgePrediction{
			City:       resolved,
			Timestamp:  at,
			Multiplier: utils.Round1(m),
			Confidence: utils.Round2(conf),
		}
	}
	return out
}

// Update produces one surge-updates event for routeID with a multiplier in
// [1.0, 2.0] at one decimal.
func (s *SurgeService) Update(routeID string) entities.SurgeUpdate {
	if routeID == "" {
		routeID = s.pricing.DefaultRouteID
	}
	return entities.SurgeUpdate{
		RouteID:    routeID,
		Timestamp:  s.now().UTC(),
		Multiplier: utils.Round1(1 + s.rnd.Float64()),
	}
}
