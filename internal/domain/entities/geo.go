// Package entities defines the core domain models for the surge-pricing API.
// These structs represent the business concepts (cities, hotspots, price
// locks, notifications, surge samples) and live in the innermost layer of the
// architecture. They have no dependencies on storage, HTTP, or services.
//
// Go Learning Note — "internal/" directory:
// Packages under internal/ cannot be imported by code outside this module. Go
// enforces this at the compiler level, which keeps the domain model private
// to this service.
package entities

// Position is a (longitude, latitude) pair. It serializes as a two-element
// JSON array, the layout map clients expect for point data.
//
// Go Learning Note — Array Types:
// [2]float64 is a fixed-size array, not a slice. It is a value type (copied
// on assignment), compares with ==, and encoding/json renders it as [lon,lat].
type Position [2]float64

// NewPosition builds a Position from longitude and latitude.
func NewPosition(lon, lat float64) Position {
	return Position{lon, lat}
}

func (p Position) Lon() float64 { return p[0] }
func (p Position) Lat() float64 { return p[1] }

// HeatmapPoint is one weighted sample of driver demand. Value is always in
// [0.1, 1.0]. Points are regenerated per request and never persisted outside
// the seed reference set.
type HeatmapPoint struct {
	Position Position `json:"position"`
	Value    float64  `json:"value"`
}

// Zone is the semantic category of a hotspot. Weekend and rush-hour demand
// adjustments depend on it.
type Zone string

const (
	ZoneBusiness      Zone = "business"
	ZoneEntertainment Zone = "entertainment"
	ZoneResidential   Zone = "residential"
	ZoneTransit       Zone = "transit"
	ZoneAirport       Zone = "airport"
)

// Hotspot is a static demand center with a baseline intensity in [0,1] and an
// influence radius in abstract units (one unit spans OffsetScale degrees).
type Hotspot struct {
	Name      string  `json:"name"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Intensity float64 `json:"intensity"`
	Radius    float64 `json:"radius"`
	Zone      Zone    `json:"zone"`
}

// City is static reference data that selects the hotspot set and geofence.
type City struct {
	Name        string  `json:"name"`
	Longitude   float64 `json:"longitude"`
	Latitude    float64 `json:"latitude"`
	DefaultZoom float64 `json:"defaultZoom"`
}
