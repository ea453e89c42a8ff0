package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"surge/internal/domain/entities"
	"surge/internal/geo"
	"surge/internal/repository"
)

var ErrNoDriverPositions = errors.New("no reference driver positions available")

// DriverService simulates driver locations for the driver-positions poll by
// sampling the stored heatmap points.
type DriverService struct {
	refs      repository.ReferenceData
	rnd       Randomizer
	count     int
	precision int
}

func NewDriverService(refs repository.ReferenceData, rnd Randomizer, count, geohashPrecision int) *DriverService {
	return &DriverService{
		refs:      refs,
		rnd:       rnd,
		count:     count,
		precision: geohashPrecision,
	}
}

// Positions returns count drivers. Positions are drawn with replacement, so
// two drivers may share a point.
func (s *DriverService) Positions(ctx context.Context) ([]entities.DriverPosition, error) {
	points, err := s.refs.DriverHeatmapData(ctx)
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, ErrNoDriverPositions
	}

	out := make([]entities.DriverPosition, s.count)
	for i := range out {
		p := points[s.rnd.IntN(len(points))]
		out[i] = entities.DriverPosition{
			ID:       fmt.Sprintf("driver-%d", i+1),
			Position: p.Position,
			// Floor keeps the rounded heading below 360.
			Heading: math.Floor(s.rnd.Float64()*3600) / 10,
			Status:  entities.DriverStatuses[s.rnd.IntN(len(entities.DriverStatuses))],
			Geohash: geo.Encode(p.Position.Lat(), p.Position.Lon(), s.precision),
		}
	}
	return out, nil
}
