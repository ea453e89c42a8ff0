package entities

// Document is the persisted state layout: one JSON object whose top-level
// keys are the collections the API reads and mutates.
type Document struct {
	SurgeData                   []SurgeArea       `json:"surgeData"`
	HistoricalSurgeData         []SurgeSample     `json:"historicalSurgeData"`
	PredictedSurgeData          []SurgePrediction `json:"predictedSurgeData"`
	DriverHeatmapData           []HeatmapPoint    `json:"driverHeatmapData"`
	DriverPositioningIncentives []Incentive       `json:"driverPositioningIncentives"`
	UserPreferences             UserPreferences   `json:"userPreferences"`
	PriceLocks                  []PriceLock       `json:"priceLocks"`
	SurgeEvents                 []SurgeEvent      `json:"surgeEvents"`
	Notifications               []Notification    `json:"notifications"`
	Routes                      []Route           `json:"routes"`
}
