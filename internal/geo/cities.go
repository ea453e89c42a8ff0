// Package geo holds the geographic reference data and generators behind the
// surge maps: static cities and their demand hotspots, per-city water
// geofences, the deterministic heatmap generator, and geohash bucketing of
// generated points.
package geo

import (
	"strings"

	"surge/internal/domain/entities"
)

// DefaultCity is used whenever a request names a city we have no data for.
const DefaultCity = "San Francisco"

var cities = []entities.City{
	{Name: "San Francisco", Longitude: -122.4194, Latitude: 37.7749, DefaultZoom: 12},
	{Name: "New York", Longitude: -73.9857, Latitude: 40.7484, DefaultZoom: 12},
	{Name: "Chicago", Longitude: -87.6298, Latitude: 41.8781, DefaultZoom: 12},
}

var hotspots = map[string][]entities.Hotspot{
	"San Francisco": {
		{Name: "Financial District", Longitude: -122.4000, Latitude: 37.7946, Intensity: 0.9, Radius: 1.0, Zone: entities.ZoneBusiness},
		{Name: "SoMa", Longitude: -122.4000, Latitude: 37.7785, Intensity: 0.8, Radius: 1.0, Zone: entities.ZoneBusiness},
		{Name: "Union Square", Longitude: -122.4075, Latitude: 37.7880, Intensity: 0.85, Radius: 0.8, Zone: entities.ZoneEntertainment},
		{Name: "Mission District", Longitude: -122.4194, Latitude: 37.7599, Intensity: 0.7, Radius: 1.2, Zone: entities.ZoneEntertainment},
		{Name: "Caltrain 4th & King", Longitude: -122.3942, Latitude: 37.7766, Intensity: 0.6, Radius: 0.5, Zone: entities.ZoneTransit},
		{Name: "Sunset", Longitude: -122.4950, Latitude: 37.7530, Intensity: 0.4, Radius: 1.5, Zone: entities.ZoneResidential},
		{Name: "SFO", Longitude: -122.3790, Latitude: 37.6213, Intensity: 0.75, Radius: 1.0, Zone: entities.ZoneAirport},
	},
	"New York": {
		{Name: "Midtown", Longitude: -73.9857, Latitude: 40.7484, Intensity: 0.95, Radius: 1.0, Zone: entities.ZoneBusiness},
		{Name: "Financial District", Longitude: -74.0090, Latitude: 40.7075, Intensity: 0.85, Radius: 0.8, Zone: entities.ZoneBusiness},
		{Name: "Times Square", Longitude: -73.9855, Latitude: 40.7580, Intensity: 0.9, Radius: 0.6, Zone: entities.ZoneEntertainment},
		{Name: "Grand Central", Longitude: -73.9772, Latitude: 40.7527, Intensity: 0.8, Radius: 0.5, Zone: entities.ZoneTransit},
		{Name: "Williamsburg", Longitude: -73.9570, Latitude: 40.7081, Intensity: 0.6, Radius: 1.2, Zone: entities.ZoneResidential},
		{Name: "Upper West Side", Longitude: -73.9754, Latitude: 40.7870, Intensity: 0.5, Radius: 1.0, Zone: entities.ZoneResidential},
		{Name: "JFK", Longitude: -73.7781, Latitude: 40.6413, Intensity: 0.8, Radius: 1.0, Zone: entities.ZoneAirport},
	},
	"Chicago": {
		{Name: "The Loop", Longitude: -87.6298, Latitude: 41.8781, Intensity: 0.9, Radius: 1.0, Zone: entities.ZoneBusiness},
		{Name: "River North", Longitude: -87.6340, Latitude: 41.8924, Intensity: 0.8, Radius: 0.8, Zone: entities.ZoneEntertainment},
		{Name: "Wrigleyville", Longitude: -87.6553, Latitude: 41.9484, Intensity: 0.7, Radius: 0.7, Zone: entities.ZoneEntertainment},
		{Name: "Union Station", Longitude: -87.6400, Latitude: 41.8789, Intensity: 0.65, Radius: 0.5, Zone: entities.ZoneTransit},
		{Name: "Hyde Park", Longitude: -87.5900, Latitude: 41.7943, Intensity: 0.45, Radius: 1.2, Zone: entities.ZoneResidential},
		{Name: "O'Hare", Longitude: -87.9073, Latitude: 41.9742, Intensity: 0.85, Radius: 1.0, Zone: entities.ZoneAirport},
	},
}

// Cities returns the supported cities in display order.
func Cities() []entities.City {
	out := make([]entities.City, len(cities))
	copy(out, cities)
	return out
}

// LookupCity finds a city by case-insensitive name.
func LookupCity(name string) (entities.City, bool) {
	name = strings.TrimSpace(name)
	for _, c := range cities {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return entities.City{}, false
}

// ResolveCity returns the named city, else fallback, else DefaultCity.
func ResolveCity(name, fallback string) entities.City {
	if c, ok := LookupCity(name); ok {
		return c
	}
	if c, ok := LookupCity(fallback); ok {
		return c
	}
	c, _ := LookupCity(DefaultCity)
	return c
}

// Hotspots returns a copy of the hotspot list for an exact city name.
func Hotspots(city string) []entities.Hotspot {
	src := hotspots[city]
	out := make([]entities.Hotspot, len(src))
	copy(out, src)
	return out
}
