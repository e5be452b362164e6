package models

import "time"

// Measurement is the latest reading for a ward, or a synthesized all-wards
// aggregate. Fetched fresh per dispatch cycle and never persisted here.
type Measurement struct {
	WardNo   *string `json:"ward_no,omitempty"`
	WardName string  `json:"ward_name"`
	AQI      float64 `json:"aqi"`
	PM25     float64 `json:"pm25"`
	PM10     float64 `json:"pm10"`
}

// DailySummary is one ward_aqi_daily row.
type DailySummary struct {
	WardNo   string    `json:"ward_no"`
	WardName string    `json:"ward_name"`
	Date     time.Time `json:"date"`
	AvgAQI   float64   `json:"avg_aqi"`
	AvgPM25  float64   `json:"avg_pm25"`
	AvgPM10  float64   `json:"avg_pm10"`
}
