package models

import (
	"time"
)

// Channel identifies a delivery channel and selects the backing table.
type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelEmail    Channel = "email"
)

// Subscription kinds. "aqi_updates" receives the regular update, "alerts_only"
// receives only high-AQI messages, "all" receives both.
const (
	KindUpdates    = "aqi_updates"
	KindAlertsOnly = "alerts_only"
	KindAll        = "all"
)

// Subscription frequencies. WhatsApp subscriptions are additionally polled on
// a fixed short interval regardless of frequency.
const (
	FrequencyDaily      = "daily"
	FrequencyHourly     = "hourly"
	FrequencyAlertsOnly = "alerts_only"
)

// Subscription is one subscriber row. Address holds a phone number for the
// WhatsApp channel and an email address for the email channel. A nil WardNo
// means the subscriber gets the all-wards aggregate.
type Subscription struct {
	ID             string     `json:"id"`
	Address        string     `json:"address"`
	WardNo         *string    `json:"ward_no,omitempty"`
	Type           string     `json:"subscription_type"`
	Frequency      string     `json:"frequency"`
	IsActive       bool       `json:"is_active"`
	AlertThreshold *float64   `json:"alert_threshold,omitempty"`
	LastSentAt     *time.Time `json:"last_sent_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// WantsUpdates reports whether the subscription kind includes the regular
// AQI update message.
func (s Subscription) WantsUpdates() bool {
	return s.Type == KindUpdates || s.Type == KindAll
}

// WantsAlerts reports whether the subscription kind includes high-AQI
// precaution messages.
func (s Subscription) WantsAlerts() bool {
	return s.Type == KindUpdates || s.Type == KindAll || s.Type == KindAlertsOnly
}

// Threshold returns the AQI value a critical alert must strictly exceed for
// this subscription.
func (s Subscription) Threshold() float64 {
	if s.AlertThreshold != nil {
		return *s.AlertThreshold
	}
	return DefaultAlertThreshold
}

// DefaultAlertThreshold is the critical-alert gate used when a subscription
// carries no threshold of its own.
const DefaultAlertThreshold = 200
