package geo

import (
	"time"

	"surge/internal/domain/entities"
	"surge/pkg/utils"
)

// Timeframe labels accepted by the heatmap and prediction operations.
const (
	TimeframeNextHour       = "Next Hour"
	TimeframeNextThreeHours = "Next 3 Hours"
	TimeframeNextSixHours   = "Next 6 Hours"
)

const (
	rushHourBoost = 1.3
	minIntensity  = 0.3
	maxIntensity  = 1.0
)

var weekendFactor = map[entities.Zone]float64{
	entities.ZoneBusiness:      0.6,
	entities.ZoneEntertainment: 1.3,
	entities.ZoneResidential:   1.1,
	entities.ZoneTransit:       0.9,
	entities.ZoneAirport:       1.0,
}

// TimeframeFactor smooths demand over longer horizons. Unknown labels are
// treated as "Next Hour".
func TimeframeFactor(label string) float64 {
	switch label {
	case TimeframeNextThreeHours:
		return 0.8
	case TimeframeNextSixHours:
		return 0.6
	default:
		return 1.0
	}
}

// TimeframeHours is the forecast horizon of a label in whole hours.
func TimeframeHours(label string) int {
	switch label {
	case TimeframeNextThreeHours:
		return 3
	case TimeframeNextSixHours:
		return 6
	default:
		return 1
	}
}

// IsWeekend reports Saturday or Sunday.
func IsWeekend(at time.Time) bool {
	wd := at.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsRushHour reports the weekday commute windows [07:00, 09:00) and
// [16:00, 19:00).
func IsRushHour(at time.Time) bool {
	if IsWeekend(at) {
		return false
	}
	h := at.Hour()
	return (h >= 7 && h < 9) || (h >= 16 && h < 19)
}

// AdjustIntensity scales a hotspot's base intensity for the day of week,
// hour of day and forecast horizon, clamped to [0.3, 1.0].
func AdjustIntensity(h entities.Hotspot, at time.Time, timeframe string) float64 {
	v := h.Intensity
	if IsWeekend(at) {
		if f, ok := weekendFactor[h.Zone]; ok {
			v *= f
		}
	} else if IsRushHour(at) {
		v *= rushHourBoost
	}
	v *= TimeframeFactor(timeframe)
	return utils.Clamp(v, minIntensity, maxIntensity)
}
