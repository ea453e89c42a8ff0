package entities

import "time"

// SurgeArea is a current surge reading for a named area of a city.
type SurgeArea struct {
	ID          string    `json:"id"`
	City        string    `json:"city"`
	Name        string    `json:"name"`
	Position    Position  `json:"position"`
	Multiplier  float64   `json:"multiplier"`
	DemandLevel string    `json:"demandLevel"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SurgeSample is one point of a route's multiplier time series.
type SurgeSample struct {
	RouteID    string    `json:"routeId"`
	Timestamp  time.Time `json:"timestamp"`
	Multiplier float64   `json:"multiplier"`
}

// SurgePrediction is a forecast multiplier for one hour of a city.
type SurgePrediction struct {
	City       string    `json:"city"`
	Timestamp  time.Time `json:"timestamp"`
	Multiplier float64   `json:"multiplier"`
	Confidence float64   `json:"confidence"`
}

// SurgeEvent is a scheduled happening expected to move demand.
type SurgeEvent struct {
	ID                 string    `json:"id"`
	City               string    `json:"city"`
	Name               string    `json:"name"`
	Type               string    `json:"type"`
	Position           Position  `json:"position"`
	StartTime          time.Time `json:"startTime"`
	EndTime            time.Time `json:"endTime"`
	ExpectedMultiplier float64   `json:"expectedMultiplier"`
}

// Incentive rewards drivers for repositioning toward a location.
type Incentive struct {
	ID          string    `json:"id"`
	City        string    `json:"city"`
	Position    Position  `json:"position"`
	Bonus       float64   `json:"bonus"`
	Description string    `json:"description"`
	ExpiresAt   time.Time `json:"expiresAt"`
	DemandScore float64   `json:"demandScore"`
}

// SurgeUpdate is one synthetic event on the surge-updates poll.
type SurgeUpdate struct {
	RouteID    string    `json:"routeId"`
	Timestamp  time.Time `json:"timestamp"`
	Multiplier float64   `json:"multiplier"`
}

// DemandZone is a geohash cell ranked by the summed heatmap value inside it.
type DemandZone struct {
	Geohash    string   `json:"geohash"`
	Center     Position `json:"center"`
	Demand     float64  `json:"demand"`
	PointCount int      `json:"pointCount"`
}
