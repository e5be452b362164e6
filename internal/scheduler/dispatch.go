package scheduler

import (
	"context"
	"time"

	"aqi-notifier/internal/gateway"
	"aqi-notifier/internal/measurement"
	"aqi-notifier/internal/models"
	"aqi-notifier/internal/render"
)

// PrecautionGate is the AQI value above which the chat channel piggybacks a
// precautions message on the regular update pass. Intentionally lower than
// the critical-alert gate.
const PrecautionGate = 150

// SubscriptionStore is the subscriber repository surface the schedulers
// consume. An empty frequency lists all active cadences.
type SubscriptionStore interface {
	ListActive(ctx context.Context, frequency string) ([]models.Subscription, error)
	MarkSent(ctx context.Context, id string, at time.Time) error
}

// MeasurementSource resolves ward and aggregate readings.
type MeasurementSource interface {
	LatestForWard(ctx context.Context, wardNo string) (*models.Measurement, error)
	LatestAggregate(ctx context.Context, limit int) ([]models.DailySummary, error)
}

// ChatSender is the chat-channel gateway adapter.
type ChatSender interface {
	IsConfigured() bool
	Send(ctx context.Context, phone, body string) gateway.Outcome
}

// MailSender is the email-channel gateway adapter.
type MailSender interface {
	IsConfigured() bool
	Send(ctx context.Context, to string, payload render.EmailPayload) gateway.Outcome
}

// resolveMeasurement returns the reading a subscription should be notified
// about: its ward's latest reading, or the all-wards mean when no ward is
// set. Absence of data resolves to nil, never to a zero measurement.
func resolveMeasurement(ctx context.Context, source MeasurementSource, sub models.Subscription) (*models.Measurement, error) {
	if sub.WardNo != nil && *sub.WardNo != "" {
		return source.LatestForWard(ctx, *sub.WardNo)
	}
	rows, err := source.LatestAggregate(ctx, measurement.AggregateWindow)
	if err != nil {
		return nil, err
	}
	return measurement.Average(rows), nil
}

// dedupe merges subscription buckets keeping the first occurrence of each id,
// in insertion order.
func dedupe(buckets ...[]models.Subscription) []models.Subscription {
	seen := make(map[string]bool)
	var out []models.Subscription
	for _, bucket := range buckets {
		for _, sub := range bucket {
			if sub.ID == "" || seen[sub.ID] {
				continue
			}
			seen[sub.ID] = true
			out = append(out, sub)
		}
	}
	return out
}
