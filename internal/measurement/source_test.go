package measurement

import (
	"context"
	"errors"
	"testing"

	"aqi-notifier/internal/models"
)

type fakeCache struct {
	readings map[string]*models.Measurement
	err      error
}

func (f *fakeCache) Latest(_ context.Context, wardNo string) (*models.Measurement, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.readings[wardNo], nil
}

type fakeDaily struct {
	byWard map[string]*models.DailySummary
	rows   []models.DailySummary
	err    error
}

func (f *fakeDaily) LatestDailyForWard(_ context.Context, wardNo string) (*models.DailySummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byWard[wardNo], nil
}

func (f *fakeDaily) LatestDaily(_ context.Context, limit int) ([]models.DailySummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.rows) > limit {
		return f.rows[:limit], nil
	}
	return f.rows, nil
}

func TestLatestForWardPrefersCache(t *testing.T) {
	cached := &models.Measurement{WardName: "Ward 5", AQI: 180}
	src := NewSource(
		&fakeCache{readings: map[string]*models.Measurement{"5": cached}},
		&fakeDaily{byWard: map[string]*models.DailySummary{"5": {WardNo: "5", AvgAQI: 90}}},
	)

	m, err := src.LatestForWard(context.Background(), "5")
	if err != nil {
		t.Fatal(err)
	}
	if m == nil || m.AQI != 180 {
		t.Errorf("expected cached reading, got %+v", m)
	}
}

func TestLatestForWardFallsBackToDaily(t *testing.T) {
	daily := &fakeDaily{byWard: map[string]*models.DailySummary{
		"7": {WardNo: "7", WardName: "Shivaji Nagar", AvgAQI: 120, AvgPM25: 55.5, AvgPM10: 90},
	}}

	tests := []struct {
		name  string
		cache WardCache
	}{
		{"cache miss", &fakeCache{}},
		{"cache error", &fakeCache{err: errors.New("redis down")}},
		{"no cache", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewSource(tt.cache, daily)
			m, err := src.LatestForWard(context.Background(), "7")
			if err != nil {
				t.Fatal(err)
			}
			if m == nil || m.WardName != "Shivaji Nagar" || m.AQI != 120 {
				t.Errorf("expected daily fallback, got %+v", m)
			}
		})
	}
}

func TestLatestForWardAbsenceIsNil(t *testing.T) {
	src := NewSource(&fakeCache{}, &fakeDaily{})
	m, err := src.LatestForWard(context.Background(), "99")
	if err != nil {
		t.Fatal(err)
	}
	if m != nil {
		t.Errorf("ward with no data must resolve to nil, got %+v", m)
	}
}

func TestLatestForWardFallbackNamesUnnamedWard(t *testing.T) {
	src := NewSource(nil, &fakeDaily{byWard: map[string]*models.DailySummary{
		"3": {WardNo: "3", AvgAQI: 60},
	}})
	m, err := src.LatestForWard(context.Background(), "3")
	if err != nil {
		t.Fatal(err)
	}
	if m.WardName != "Ward 3" {
		t.Errorf("WardName = %q, want %q", m.WardName, "Ward 3")
	}
}

func TestAverage(t *testing.T) {
	rows := []models.DailySummary{
		{AvgAQI: 100, AvgPM25: 40, AvgPM10: 80},
		{AvgAQI: 200, AvgPM25: 60, AvgPM10: 100},
		{AvgAQI: 150, AvgPM25: 50, AvgPM10: 90},
		{AvgAQI: 50, AvgPM25: 10, AvgPM10: 30},
	}

	m := Average(rows)
	if m == nil {
		t.Fatal("Average returned nil for non-empty rows")
	}
	if m.AQI != 125 {
		t.Errorf("average AQI = %v, want 125", m.AQI)
	}
	if m.PM25 != 40 || m.PM10 != 75 {
		t.Errorf("average PM2.5/PM10 = %v/%v, want 40/75", m.PM25, m.PM10)
	}
	if m.WardName != "All Wards (Average)" {
		t.Errorf("WardName = %q", m.WardName)
	}
}

func TestAverageEmptyIsNil(t *testing.T) {
	if m := Average(nil); m != nil {
		t.Errorf("empty window must yield nil, got %+v", m)
	}
}

func TestMaxAQI(t *testing.T) {
	rows := []models.DailySummary{{AvgAQI: 100}, {AvgAQI: 250}, {AvgAQI: 180}}
	if got := MaxAQI(rows); got != 250 {
		t.Errorf("MaxAQI = %v, want 250", got)
	}
	if got := MaxAQI(nil); got != 0 {
		t.Errorf("MaxAQI(nil) = %v, want 0", got)
	}
}
