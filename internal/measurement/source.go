// Package measurement resolves the latest AQI reading for a ward or the
// all-wards aggregate. Readings are borrowed views of external data: fetched
// fresh per dispatch cycle and never persisted here.
package measurement

import (
	"context"
	"fmt"

	"aqi-notifier/internal/models"
)

// AggregateWindow is how many daily summary rows back the all-wards mean and
// maximum look.
const AggregateWindow = 4

// WardCache is the collector-published latest-reading cache. A miss returns
// (nil, nil).
type WardCache interface {
	Latest(ctx context.Context, wardNo string) (*models.Measurement, error)
}

// DailyStore is the daily aggregate table behind the cache.
type DailyStore interface {
	LatestDailyForWard(ctx context.Context, wardNo string) (*models.DailySummary, error)
	LatestDaily(ctx context.Context, limit int) ([]models.DailySummary, error)
}

// Source resolves measurements, preferring the live cache and falling back to
// the daily table.
type Source struct {
	cache WardCache
	daily DailyStore
}

func NewSource(cache WardCache, daily DailyStore) *Source {
	return &Source{cache: cache, daily: daily}
}

// LatestForWard returns the freshest measurement for a ward, or nil when no
// data exists anywhere. Absence propagates as nil, never as a zero-valued
// measurement.
func (s *Source) LatestForWard(ctx context.Context, wardNo string) (*models.Measurement, error) {
	if s.cache != nil {
		m, err := s.cache.Latest(ctx, wardNo)
		if err == nil && m != nil {
			return m, nil
		}
		// cache errors degrade to the daily fallback
	}

	row, err := s.daily.LatestDailyForWard(ctx, wardNo)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}

	name := row.WardName
	if name == "" {
		name = fmt.Sprintf("Ward %s", wardNo)
	}
	return &models.Measurement{
		WardNo:   &row.WardNo,
		WardName: name,
		AQI:      row.AvgAQI,
		PM25:     row.AvgPM25,
		PM10:     row.AvgPM10,
	}, nil
}

// LatestAggregate returns the last limit daily rows ordered by date
// descending.
func (s *Source) LatestAggregate(ctx context.Context, limit int) ([]models.DailySummary, error) {
	return s.daily.LatestDaily(ctx, limit)
}

// Average synthesizes the city-wide measurement as the arithmetic mean of
// AQI, PM2.5 and PM10 across the rows. Returns nil for an empty window.
func Average(rows []models.DailySummary) *models.Measurement {
	if len(rows) == 0 {
		return nil
	}
	var aqi, pm25, pm10 float64
	for _, r := range rows {
		aqi += r.AvgAQI
		pm25 += r.AvgPM25
		pm10 += r.AvgPM10
	}
	n := float64(len(rows))
	return &models.Measurement{
		WardName: "All Wards (Average)",
		AQI:      aqi / n,
		PM25:     pm25 / n,
		PM10:     pm10 / n,
	}
}

// MaxAQI returns the highest AQI across the rows, 0 for an empty window.
func MaxAQI(rows []models.DailySummary) float64 {
	max := 0.0
	for _, r := range rows {
		if r.AvgAQI > max {
			max = r.AvgAQI
		}
	}
	return max
}
