package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"aqi-notifier/internal/models"
)

// LatestDailyForWard returns the most recent ward_aqi_daily row for a ward,
// or nil when the ward has no data.
func (d *DB) LatestDailyForWard(ctx context.Context, wardNo string) (*models.DailySummary, error) {
	query := `
	SELECT ward_no, ward_name, date, avg_aqi, avg_pm25, avg_pm10
	FROM ward_aqi_daily
	WHERE ward_no = $1
	ORDER BY date DESC
	LIMIT 1`

	var row models.DailySummary
	err := d.Pool.QueryRow(ctx, query, wardNo).Scan(
		&row.WardNo, &row.WardName, &row.Date, &row.AvgAQI, &row.AvgPM25, &row.AvgPM10,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get daily AQI for ward %s: %w", wardNo, err)
	}
	return &row, nil
}

// LatestDaily returns the last limit ward_aqi_daily rows ordered by date
// descending, used to synthesize the all-wards aggregate.
func (d *DB) LatestDaily(ctx context.Context, limit int) ([]models.DailySummary, error) {
	query := `
	SELECT ward_no, ward_name, date, avg_aqi, avg_pm25, avg_pm10
	FROM ward_aqi_daily
	ORDER BY date DESC
	LIMIT $1`

	rows, err := d.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily AQI rows: %w", err)
	}
	defer rows.Close()

	var out []models.DailySummary
	for rows.Next() {
		var row models.DailySummary
		if err := rows.Scan(
			&row.WardNo, &row.WardName, &row.Date, &row.AvgAQI, &row.AvgPM25, &row.AvgPM10,
		); err != nil {
			return nil, fmt.Errorf("failed to scan daily AQI row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
