// Package severity classifies an AQI value into a discrete health-advisory
// band. The six bands partition [0, inf) with inclusive upper bounds.
package severity

import "math"

// Band is one severity tier. Level is ordered 1 (Good) through 6 (Hazardous).
type Band struct {
	Level  int
	Label  string
	Emoji  string
	Color  string
	Advice string
}

var bands = []struct {
	max  float64
	band Band
}{
	{50, Band{1, "Good", "🟢", "#22c55e",
		"Air quality is satisfactory. Enjoy outdoor activities!"}},
	{100, Band{2, "Moderate", "🟡", "#eab308",
		"Air quality is acceptable. Sensitive individuals may experience minor breathing discomfort."}},
	{150, Band{3, "Unhealthy for Sensitive Groups", "🟠", "#f97316",
		"Children, elderly, and people with respiratory issues should avoid prolonged outdoor activities."}},
	{200, Band{4, "Unhealthy", "🔴", "#ef4444",
		"Everyone may experience health effects. Avoid outdoor activities. Use N95 masks if going out."}},
	{300, Band{5, "Very Unhealthy", "🟣", "#a855f7",
		"Health alert: Everyone may experience serious health effects. Stay indoors. Use air purifiers."}},
}

var hazardous = Band{6, "Hazardous", "⚫", "#52525b",
	"Emergency conditions: Avoid all outdoor activities. Keep windows closed. Use air purifiers."}

// Classify maps an AQI value to its Band. Total over all inputs: negative or
// NaN values clamp to the lowest band, never an error.
func Classify(aqi float64) Band {
	if math.IsNaN(aqi) || aqi < 0 {
		aqi = 0
	}
	for _, b := range bands {
		if aqi <= b.max {
			return b.band
		}
	}
	return hazardous
}

// Precautions returns the tiered precaution text for an AQI value. The tiers
// intentionally differ from the Classify bands (five brackets, keyed to the
// precaution messages rather than the health-advisory ladder).
func Precautions(aqi float64) string {
	switch {
	case aqi <= 100:
		return precautionsSafe
	case aqi <= 150:
		return precautionsModerate
	case aqi <= 200:
		return precautionsUnhealthy
	case aqi <= 300:
		return precautionsVeryUnhealthy
	default:
		return precautionsHazardous
	}
}

const (
	precautionsSafe = `✅ *Current Air Quality is Safe*

You can:
• Enjoy outdoor activities
• Open windows for ventilation
• Exercise outdoors
• No special precautions needed`

	precautionsModerate = `⚠️ *Moderate Air Quality*

Precautions:
• Sensitive groups should limit outdoor activities
• Keep windows slightly open
• Monitor air quality regularly
• Consider using air purifiers`

	precautionsUnhealthy = `🔴 *Unhealthy Air Quality*

Precautions:
• Avoid outdoor activities
• Keep windows closed
• Use N95 masks if going out
• Use air purifiers indoors
• Children and elderly stay indoors`

	precautionsVeryUnhealthy = `🟣 *Very Unhealthy Air Quality*

Critical Precautions:
• Stay indoors at all times
• Keep all windows and doors closed
• Use air purifiers with HEPA filters
• Wear N95 masks if you must go out
• Avoid physical exertion
• Monitor health symptoms`

	precautionsHazardous = `⚫ *Hazardous Air Quality - EMERGENCY*

Emergency Precautions:
• DO NOT go outside
• Keep all windows and doors sealed
• Use air purifiers in all rooms
• If you must go out, use N99 masks
• Seek medical help if experiencing breathing difficulties
• Call emergency helpline: 108`
)
