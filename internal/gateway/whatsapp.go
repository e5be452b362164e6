package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"golang.org/x/time/rate"

	"aqi-notifier/internal/config"
)

const sendTimeout = 10 * time.Second

// WhatsApp sends chat messages through the Twilio WhatsApp API. A missing
// credential group leaves the adapter unconfigured; the owning scheduler must
// check IsConfigured once at startup and not start at all when false.
type WhatsApp struct {
	client      *twilio.RestClient
	from        string
	countryCode string
	limiter     *rate.Limiter
}

// NewWhatsApp builds the adapter from config. Returns an unconfigured adapter
// (nil client) when the credential group is incomplete.
func NewWhatsApp(cfg config.Config) *WhatsApp {
	perSecond := cfg.WhatsApp.RatePerSecond
	if perSecond <= 0 {
		perSecond = 1
	}
	w := &WhatsApp{
		from:        cfg.WhatsApp.From,
		countryCode: cfg.WhatsApp.CountryCode,
		limiter:     rate.NewLimiter(rate.Limit(perSecond), perSecond),
	}
	if !cfg.WhatsAppConfigured() {
		return w
	}

	rc := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.WhatsApp.AccountSID,
		Password: cfg.WhatsApp.AuthToken,
	})
	rc.Client.SetTimeout(sendTimeout)
	w.client = rc
	return w
}

// IsConfigured reports whether Twilio credentials are fully present.
func (w *WhatsApp) IsConfigured() bool {
	return w.client != nil
}

// FormatPhone normalizes a phone number to E.164. Numbers already carrying a
// leading + pass through; bare 10-digit numbers get the configured country
// code; digits already starting with the country code are corrected rather
// than double-prefixed.
func (w *WhatsApp) FormatPhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if strings.HasPrefix(phone, "+") {
		return phone
	}

	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()

	switch {
	case len(d) == 10:
		return "+" + w.countryCode + d
	case len(d) == len(w.countryCode)+10 && strings.HasPrefix(d, w.countryCode):
		return "+" + d
	default:
		return "+" + d
	}
}

// Send delivers one WhatsApp message. Exactly one outbound attempt, no
// internal retry; all Twilio errors are converted to a failed Outcome.
func (w *WhatsApp) Send(ctx context.Context, phone, body string) Outcome {
	if !w.IsConfigured() {
		return failed(errors.New("twilio service not configured"), 0)
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if err := w.limiter.Wait(ctx); err != nil {
		return failed(fmt.Errorf("rate limit wait: %w", err), 0)
	}

	to := "whatsapp:" + w.FormatPhone(phone)
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(w.from)
	params.SetBody(body)

	msg, err := w.client.Api.CreateMessage(params)
	if err != nil {
		var restErr *twilioclient.TwilioRestError
		if errors.As(err, &restErr) {
			return failed(err, restErr.Code)
		}
		return failed(err, 0)
	}

	out := succeeded("", "", to)
	if msg.Sid != nil {
		out.SID = *msg.Sid
	}
	if msg.Status != nil {
		out.Status = *msg.Status
	}
	return out
}
