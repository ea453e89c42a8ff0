package geo

import (
	"fmt"
	"math"
	"time"

	"surge/internal/domain/entities"
	"surge/pkg/utils"
)

const (
	minPointValue = 0.1
	maxPointValue = 1.0
	noiseSpan     = 0.3
)

// HeatmapGenerator produces deterministic demand points around each hotspot
// of a city. Every coordinate and value is derived from a string hash of the
// inputs, so identical (city, date, timeframe) requests always return the
// same points in the same order.
//
// Go Learning Note — Pure Functions and Concurrency:
// The generator only holds immutable settings. Generate allocates its own
// output and reads shared package tables without writing them, so one
// instance can serve every request goroutine with no locking.
type HeatmapGenerator struct {
	pointsPerRadius float64
	offsetScale     float64
	defaultCity     string
}

// NewHeatmapGenerator builds a generator. pointsPerRadius is the number of
// candidate points per unit of hotspot radius; offsetScale converts one unit
// of radius to degrees.
func NewHeatmapGenerator(pointsPerRadius, offsetScale float64, defaultCity string) *HeatmapGenerator {
	return &HeatmapGenerator{
		pointsPerRadius: pointsPerRadius,
		offsetScale:     offsetScale,
		defaultCity:     defaultCity,
	}
}

// Generate returns the heatmap for city at date over the timeframe horizon.
// Points that land on water are dropped, so the result may be shorter than
// the candidate count.
func (g *HeatmapGenerator) Generate(city string, date time.Time, timeframe string) []entities.HeatmapPoint {
	resolved := ResolveCity(city, g.defaultCity).Name
	fence := FenceFor(resolved)

	var points []entities.HeatmapPoint
	for _, h := range Hotspots(resolved) {
		intensity := AdjustIntensity(h, date, timeframe)
		n := int(math.Floor(h.Radius * g.pointsPerRadius))

		for i := 0; i < n; i++ {
			seed := fmt.Sprintf("%s-%.4f-%.4f-%d-%d", resolved, h.Longitude, h.Latitude, i, date.Day())
			hv := utils.HashString(seed)

			angle := utils.HashFraction(hv, 1, 1000) * 2 * math.Pi
			// sqrt spreads points evenly over the disk area.
			rFrac := math.Sqrt(utils.HashFraction(hv, 1000, 1000))
			noise := (utils.HashFraction(hv, 1000000, 100) - 0.5) * noiseSpan

			offset := rFrac * h.Radius * g.offsetScale
			lon := h.Longitude + offset*math.Cos(angle)
			lat := h.Latitude + offset*math.Sin(angle)

			if !fence.IsLand(lon, lat) {
				continue
			}

			value := utils.Clamp(intensity*(1-rFrac)+noise, minPointValue, maxPointValue)
			points = append(points, entities.HeatmapPoint{
				Position: entities.NewPosition(lon, lat),
				Value:    math.Round(value*1000) / 1000,
			})
		}
	}
	return points
}

// AverageIntensity is the mean adjusted hotspot intensity for city at the
// given time, used to turn the demand model into a surge multiplier.
func AverageIntensity(city string, at time.Time, timeframe string) float64 {
	hs := Hotspots(city)
	if len(hs) == 0 {
		return 0
	}
	var sum float64
	for _, h := range hs {
		sum += AdjustIntensity(h, at, timeframe)
	}
	return sum / float64(len(hs))
}
