package geo

import (
	"math"
	"sort"

	"surge/internal/domain/entities"
	"surge/pkg/utils"
)

// DemandIndex buckets heatmap points into geohash cells so demand can be
// ranked by area and summed around a location without scanning every point.
// An index is built once per request and never modified, so it needs no
// locking.
//
// Go Learning Note — Nested Maps vs Slices:
// cells maps geohash → points in that cell. Lookups by cell are O(1), and a
// proximity query only walks the 3×3 block of cells around the target.
type DemandIndex struct {
	precision int
	cells     map[string][]entities.HeatmapPoint
	total     int
}

// NewDemandIndex indexes points at the given geohash precision.
func NewDemandIndex(precision int, points []entities.HeatmapPoint) *DemandIndex {
	idx := &DemandIndex{
		precision: precision,
		cells:     make(map[string][]entities.HeatmapPoint),
	}
	for _, p := range points {
		gh := Encode(p.Position.Lat(), p.Position.Lon(), precision)
		idx.cells[gh] = append(idx.cells[gh], p)
		idx.total++
	}
	return idx
}

// Count returns the number of indexed points.
func (d *DemandIndex) Count() int {
	return d.total
}

// Cell returns the geohash cell that (lat, lon) falls in.
func (d *DemandIndex) Cell(lat, lon float64) string {
	return Encode(lat, lon, d.precision)
}

// TopCells ranks cells by summed point value, highest first; ties break on
// geohash so the order is stable. A non-positive limit returns every cell.
func (d *DemandIndex) TopCells(limit int) []entities.DemandZone {
	zones := make([]entities.DemandZone, 0, len(d.cells))
	for gh, pts := range d.cells {
		var sum float64
		for _, p := range pts {
			sum += p.Value
		}
		lat, lon := Decode(gh)
		zones = append(zones, entities.DemandZone{
			Geohash:    gh,
			Center:     entities.NewPosition(lon, lat),
			Demand:     math.Round(sum*1000) / 1000,
			PointCount: len(pts),
		})
	}

	sort.Slice(zones, func(i, j int) bool {
		if zones[i].Demand != zones[j].Demand {
			return zones[i].Demand > zones[j].Demand
		}
		return zones[i].Geohash < zones[j].Geohash
	})

	if limit > 0 && len(zones) > limit {
		zones = zones[:limit]
	}
	return zones
}

// ScoreNear sums the value of points within radiusKm of (lat, lon).
//
// Strategy: coarse filter on the 3×3 block of cells around the target, then
// an exact great-circle distance check. radiusKm should not exceed the cell
// size at the index precision or edge points will be missed.
func (d *DemandIndex) ScoreNear(lat, lon, radiusKm float64) float64 {
	var sum float64
	for _, gh := range AllNeighbors(d.Cell(lat, lon)) {
		for _, p := range d.cells[gh] {
			if utils.HaversineDistance(lat, lon, p.Position.Lat(), p.Position.Lon()) <= radiusKm {
				sum += p.Value
			}
		}
	}
	return math.Round(sum*1000) / 1000
}
