package scheduler

import (
	"context"
	"time"

	"aqi-notifier/internal/logging"
	"aqi-notifier/internal/measurement"
	"aqi-notifier/internal/models"
	"aqi-notifier/internal/render"
	"aqi-notifier/internal/severity"
)

// Email orchestrates the email channel: a daily digest at a fixed
// local-morning time and an hourly critical-alert check.
type Email struct {
	store         SubscriptionStore
	source        MeasurementSource
	sender        MailSender
	logger        *logging.Logger
	runner        *Runner
	dailyHour     int
	dailyMinute   int
	criticalEvery time.Duration
	now           func() time.Time
}

func NewEmail(store SubscriptionStore, source MeasurementSource, sender MailSender, logger *logging.Logger, dailyHour, dailyMinute int, criticalEvery time.Duration) *Email {
	return &Email{
		store:         store,
		source:        source,
		sender:        sender,
		logger:        logger,
		runner:        NewRunner(logger),
		dailyHour:     dailyHour,
		dailyMinute:   dailyMinute,
		criticalEvery: criticalEvery,
		now:           time.Now,
	}
}

// Start registers and launches both jobs. Returns false without starting
// anything when the SMTP group is not configured.
func (e *Email) Start() bool {
	if !e.sender.IsConfigured() {
		e.logger.Warnf("Email service not configured. Email scheduler will not start.")
		return false
	}

	e.runner.Add("email_daily_digest", DailyAt{Hour: e.dailyHour, Minute: e.dailyMinute}, e.SendDailyUpdates)
	e.runner.Add("email_critical_alerts", Interval{Every: e.criticalEvery}, e.SendCriticalAlerts)
	e.runner.Start()
	e.logger.Infof("Email scheduler started (daily %02d:%02d, critical every %s)",
		e.dailyHour, e.dailyMinute, e.criticalEvery)
	return true
}

// Shutdown stops future firings; in-flight dispatch attempts drain.
func (e *Email) Shutdown() {
	e.runner.Shutdown()
	e.logger.Infof("Email scheduler stopped")
}

// SendDailyUpdates is one daily-digest firing over the daily cadence bucket.
func (e *Email) SendDailyUpdates(ctx context.Context) {
	e.logger.Infof("Starting daily AQI Email updates")

	subs, err := e.store.ListActive(ctx, models.FrequencyDaily)
	if err != nil {
		e.logger.Errorf("Error fetching email subscriptions: %v", err)
		return
	}
	e.logger.Infof("Found %d daily email subscriptions", len(subs))

	for _, sub := range subs {
		e.dispatchUpdate(ctx, sub)
	}
	e.logger.Infof("Completed daily AQI Email updates")
}

func (e *Email) dispatchUpdate(ctx context.Context, sub models.Subscription) {
	if sub.Address == "" {
		return
	}
	if !sub.WantsUpdates() {
		return
	}

	m, err := resolveMeasurement(ctx, e.source, sub)
	if err != nil {
		e.logger.Errorf("Error resolving AQI data for %s: %v", sub.Address, err)
		return
	}
	if m == nil {
		e.logger.Warnf("No AQI data found for subscription %s, skipping", sub.ID)
		return
	}

	band := severity.Classify(m.AQI)
	out := e.sender.Send(ctx, sub.Address, render.EmailUpdate(*m, band, m.WardName))
	if !out.Success {
		e.logger.Errorf("Failed to send AQI update email to %s: %s", sub.Address, out.Err)
		return
	}

	e.logger.Infof("Sent AQI update email to %s for %s", sub.Address, m.WardName)
	if err := e.store.MarkSent(ctx, sub.ID, e.now().UTC()); err != nil {
		e.logger.Errorf("Failed to update last_sent_at for %s: %v", sub.ID, err)
	}
}

// SendCriticalAlerts is one critical-check firing: the alerts_only and hourly
// cadence buckets are merged, de-duplicated by subscription id, and each
// subscriber is alerted only when the resolved AQI strictly exceeds its
// threshold.
func (e *Email) SendCriticalAlerts(ctx context.Context) {
	e.logger.Infof("Checking for critical AQI email alerts")

	alertSubs, err := e.store.ListActive(ctx, models.FrequencyAlertsOnly)
	if err != nil {
		e.logger.Errorf("Error fetching alerts_only subscriptions: %v", err)
		alertSubs = nil
	}
	hourlySubs, err := e.store.ListActive(ctx, models.FrequencyHourly)
	if err != nil {
		e.logger.Errorf("Error fetching hourly subscriptions: %v", err)
		hourlySubs = nil
	}

	subs := dedupe(alertSubs, hourlySubs)
	e.logger.Infof("Found %d email subscriptions for critical alerts", len(subs))

	for _, sub := range subs {
		e.dispatchCritical(ctx, sub)
	}
}

func (e *Email) dispatchCritical(ctx context.Context, sub models.Subscription) {
	if sub.Address == "" {
		return
	}

	var m *models.Measurement
	if sub.WardNo != nil && *sub.WardNo != "" {
		ward, err := e.source.LatestForWard(ctx, *sub.WardNo)
		if err != nil {
			e.logger.Errorf("Error resolving AQI data for %s: %v", sub.Address, err)
			return
		}
		if ward == nil {
			return
		}
		m = ward
	} else {
		rows, err := e.source.LatestAggregate(ctx, measurement.AggregateWindow)
		if err != nil {
			e.logger.Errorf("Error checking critical alerts: %v", err)
			return
		}
		if len(rows) == 0 {
			return
		}
		// The city-wide check uses the worst ward, not the mean.
		m = &models.Measurement{WardName: "Multiple Wards", AQI: measurement.MaxAQI(rows)}
	}

	if m.AQI <= sub.Threshold() {
		return
	}

	band := severity.Classify(m.AQI)
	out := e.sender.Send(ctx, sub.Address, render.EmailUpdate(*m, band, m.WardName))
	if !out.Success {
		e.logger.Errorf("Failed to send critical alert email to %s: %s", sub.Address, out.Err)
		return
	}

	e.logger.Infof("Sent critical alert email to %s for %s (AQI: %.0f)", sub.Address, m.WardName, m.AQI)
	if err := e.store.MarkSent(ctx, sub.ID, e.now().UTC()); err != nil {
		e.logger.Errorf("Failed to update last_sent_at for %s: %v", sub.ID, err)
	}
}
