package scheduler

import (
	"context"
	"time"

	"aqi-notifier/internal/logging"
	"aqi-notifier/internal/models"
	"aqi-notifier/internal/render"
	"aqi-notifier/internal/severity"
)

// WhatsApp orchestrates the chat channel: one recurring job on a short fixed
// interval sending AQI updates to every active subscription, with a second
// precautions message folded into the same pass when AQI is high.
type WhatsApp struct {
	store    SubscriptionStore
	source   MeasurementSource
	sender   ChatSender
	logger   *logging.Logger
	runner   *Runner
	interval time.Duration
	now      func() time.Time
}

// NewWhatsApp wires the chat-channel scheduler. Dependencies are injected;
// nothing here is a process-wide singleton.
func NewWhatsApp(store SubscriptionStore, source MeasurementSource, sender ChatSender, logger *logging.Logger, interval time.Duration) *WhatsApp {
	return &WhatsApp{
		store:    store,
		source:   source,
		sender:   sender,
		logger:   logger,
		runner:   NewRunner(logger),
		interval: interval,
		now:      time.Now,
	}
}

// Start registers and launches the update job. Returns false without
// starting anything when the gateway is not configured.
func (w *WhatsApp) Start() bool {
	if !w.sender.IsConfigured() {
		w.logger.Warnf("Twilio not configured. WhatsApp scheduler will not start.")
		return false
	}

	w.runner.Add("whatsapp_aqi_updates", Interval{Every: w.interval}, w.SendUpdates)
	w.runner.Start()
	w.logger.Infof("WhatsApp scheduler started (every %s)", w.interval)
	return true
}

// Shutdown stops future firings; in-flight dispatch attempts drain.
func (w *WhatsApp) Shutdown() {
	w.runner.Shutdown()
	w.logger.Infof("WhatsApp scheduler stopped")
}

// SendUpdates is one firing: pull every active subscription regardless of
// frequency (the channel polls on a single fixed cadence) and dispatch to
// each independently.
func (w *WhatsApp) SendUpdates(ctx context.Context) {
	w.logger.Infof("Starting AQI WhatsApp updates")

	subs, err := w.store.ListActive(ctx, "")
	if err != nil {
		w.logger.Errorf("Error fetching WhatsApp subscriptions: %v", err)
		return
	}
	w.logger.Infof("Found %d active WhatsApp subscriptions", len(subs))

	for _, sub := range subs {
		w.dispatch(ctx, sub)
	}
	w.logger.Infof("Completed AQI WhatsApp updates")
}

// dispatch handles one subscriber. Failures are logged and contained; they
// never abort the loop over remaining subscribers.
func (w *WhatsApp) dispatch(ctx context.Context, sub models.Subscription) {
	if sub.Address == "" {
		return
	}

	m, err := resolveMeasurement(ctx, w.source, sub)
	if err != nil {
		w.logger.Errorf("Error resolving AQI data for %s: %v", sub.Address, err)
		return
	}
	if m == nil {
		w.logger.Warnf("No AQI data found for subscription %s, skipping", sub.ID)
		return
	}

	band := severity.Classify(m.AQI)
	delivered := false

	if sub.WantsUpdates() {
		out := w.sender.Send(ctx, sub.Address, render.WhatsAppUpdate(*m, band, m.WardName))
		if out.Success {
			delivered = true
			w.logger.Infof("Sent AQI update to %s for %s (sid=%s)", sub.Address, m.WardName, out.SID)
		} else {
			w.logger.Errorf("Failed to send AQI update to %s: %s", sub.Address, out.Err)
		}
	}

	// Second, independent precautions attempt when AQI is high.
	if m.AQI > PrecautionGate && sub.WantsAlerts() {
		out := w.sender.Send(ctx, sub.Address, render.WhatsAppPrecautions(m.AQI, m.WardName))
		if out.Success {
			delivered = true
			w.logger.Infof("Sent precautions to %s for %s", sub.Address, m.WardName)
		} else {
			w.logger.Errorf("Failed to send precautions to %s: %s", sub.Address, out.Err)
		}
	}

	// last_sent_at moves only when something was actually delivered.
	if delivered {
		if err := w.store.MarkSent(ctx, sub.ID, w.now().UTC()); err != nil {
			w.logger.Errorf("Failed to update last_sent_at for %s: %v", sub.ID, err)
		}
	}
}
