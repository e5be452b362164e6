package gateway

import (
	"context"
	"testing"

	"aqi-notifier/internal/config"
)

func newTestAdapter() *WhatsApp {
	var cfg config.Config
	cfg.WhatsApp.CountryCode = "91"
	cfg.WhatsApp.RatePerSecond = 1
	return NewWhatsApp(cfg)
}

func TestFormatPhone(t *testing.T) {
	w := newTestAdapter()

	tests := []struct {
		in   string
		want string
	}{
		{"9167285340", "+919167285340"},
		{"+919167285340", "+919167285340"}, // idempotent
		{"919167285340", "+919167285340"},  // country code present, unprefixed
		{"91672-85340", "+919167285340"},   // non-digits stripped
		{" 9167285340 ", "+919167285340"},
		{"+14155238886", "+14155238886"},
		{"4155238886", "+914155238886"}, // 10 digits always get the default code
	}
	for _, tt := range tests {
		if got := w.FormatPhone(tt.in); got != tt.want {
			t.Errorf("FormatPhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPhoneIdempotent(t *testing.T) {
	w := newTestAdapter()
	for _, in := range []string{"9167285340", "919167285340", "+919167285340"} {
		once := w.FormatPhone(in)
		if twice := w.FormatPhone(once); twice != once {
			t.Errorf("FormatPhone not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

func TestUnconfiguredAdapterNeverSends(t *testing.T) {
	w := newTestAdapter()
	if w.IsConfigured() {
		t.Fatal("adapter without credentials must report unconfigured")
	}

	out := w.Send(context.Background(), "9167285340", "hello")
	if out.Success {
		t.Error("unconfigured adapter must fail the attempt")
	}
	if out.Err == "" {
		t.Error("failure outcome must carry a diagnostic")
	}
}

func TestConfiguredFlag(t *testing.T) {
	var cfg config.Config
	cfg.WhatsApp.AccountSID = "ACxxxx"
	cfg.WhatsApp.AuthToken = "token"
	cfg.WhatsApp.From = "whatsapp:+14155238886"
	cfg.WhatsApp.CountryCode = "91"
	cfg.WhatsApp.RatePerSecond = 1

	if !NewWhatsApp(cfg).IsConfigured() {
		t.Error("complete credential group must report configured")
	}

	cfg.WhatsApp.From = ""
	if NewWhatsApp(cfg).IsConfigured() {
		t.Error("partial credential group must report unconfigured")
	}
}
