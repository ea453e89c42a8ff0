package geo

import (
	"github.com/golang/geo/s2"
)

// Geofence classifies coordinates as land or water for one city. Water is a
// set of s2 loops (ocean, bays, rivers, lakes); anything outside every loop
// is land.
//
// Go Learning Note — "github.com/golang/geo/s2":
// s2 models geometry on the sphere rather than a flat lat/lon grid, so
// containment stays correct near the antimeridian and at any latitude.
// s2.Loop is a closed polygon; Normalize flips a loop that was built
// clockwise so that it encloses the smaller of the two regions.
type Geofence struct {
	City  string
	water []*s2.Loop
}

// IsLand reports whether (lon, lat) falls outside every water zone.
func (g *Geofence) IsLand(lon, lat float64) bool {
	p := s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lon))
	for _, loop := range g.water {
		if loop.ContainsPoint(p) {
			return false
		}
	}
	return true
}

// waterZones holds water polygons as [lon, lat] vertex rings per city.
var waterZones = map[string][][][2]float64{
	"San Francisco": {
		// Pacific Ocean
		{{-123.20, 37.60}, {-122.512, 37.60}, {-122.512, 37.86}, {-123.20, 37.86}},
		// Bay, east of the Embarcadero
		{{-122.387, 37.74}, {-122.30, 37.74}, {-122.30, 37.84}, {-122.387, 37.84}},
		// Bay, north waterfront
		{{-122.48, 37.812}, {-122.387, 37.812}, {-122.387, 37.84}, {-122.48, 37.84}},
	},
	"New York": {
		// Hudson River
		{{-74.035, 40.70}, {-74.020, 40.70}, {-73.962, 40.83}, {-73.970, 40.83}},
		// East River
		{{-73.995, 40.70}, {-73.978, 40.70}, {-73.950, 40.77}, {-73.962, 40.77}},
	},
	"Chicago": {
		// Lake Michigan, following the shoreline south to north
		{
			{-87.60, 41.60}, {-86.80, 41.60}, {-86.80, 42.10}, {-87.66, 42.10},
			{-87.63, 41.95}, {-87.612, 41.88}, {-87.58, 41.80}, {-87.53, 41.70},
		},
	},
}

var geofences = buildGeofences()

func buildGeofences() map[string]*Geofence {
	out := make(map[string]*Geofence, len(waterZones))
	for city, rings := range waterZones {
		g := &Geofence{City: city}
		for _, ring := range rings {
			pts := make([]s2.Point, len(ring))
			for i, v := range ring {
				pts[i] = s2.PointFromLatLng(s2.LatLngFromDegrees(v[1], v[0]))
			}
			loop := s2.LoopFromPoints(pts)
			loop.Normalize()
			g.water = append(g.water, loop)
		}
		out[city] = g
	}
	return out
}

// FenceFor returns the geofence for city, falling back to DefaultCity.
func FenceFor(city string) *Geofence {
	if g, ok := geofences[city]; ok {
		return g
	}
	return geofences[DefaultCity]
}
