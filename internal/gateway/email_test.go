package gateway

import (
	"context"
	"strings"
	"testing"

	"aqi-notifier/internal/config"
	"aqi-notifier/internal/render"
)

func newTestEmail() *Email {
	var cfg config.Config
	cfg.Email.SMTPServer = "smtp.example.com"
	cfg.Email.SMTPPort = 587
	cfg.Email.Username = "notifier@example.com"
	cfg.Email.Password = "secret"
	cfg.Email.FromEmail = "notifier@example.com"
	cfg.Email.FromName = "JanDrishti AQI Updates"
	return NewEmail(cfg)
}

func TestEmailConfiguredFlag(t *testing.T) {
	if !newTestEmail().IsConfigured() {
		t.Error("complete SMTP group must report configured")
	}

	var cfg config.Config
	cfg.Email.SMTPServer = "smtp.example.com"
	cfg.Email.SMTPPort = 587
	if NewEmail(cfg).IsConfigured() {
		t.Error("missing login/secret must report unconfigured")
	}
}

func TestEmailUnconfiguredSendFails(t *testing.T) {
	e := NewEmail(config.Config{})
	out := e.Send(context.Background(), "user@example.com", render.EmailPayload{Subject: "s"})
	if out.Success || out.Err == "" {
		t.Errorf("unconfigured send must fail with a diagnostic, got %+v", out)
	}
}

func TestEmailRejectsInvalidAddress(t *testing.T) {
	out := newTestEmail().Send(context.Background(), "not-an-address", render.EmailPayload{Subject: "s"})
	if out.Success {
		t.Error("invalid address must fail before any transport attempt")
	}
	if !strings.Contains(out.Err, "invalid email address") {
		t.Errorf("unexpected diagnostic: %q", out.Err)
	}
}

func TestComposeMultipartAlternative(t *testing.T) {
	e := newTestEmail()
	msg := string(e.compose("user@example.com", render.EmailPayload{
		Subject: "AQI Update",
		HTML:    "<html><body>hi</body></html>",
		Text:    "hi",
	}))

	for _, want := range []string{
		"From: JanDrishti AQI Updates <notifier@example.com>",
		"To: user@example.com",
		"Subject: AQI Update",
		"Content-Type: multipart/alternative",
		"Content-Type: text/plain",
		"Content-Type: text/html",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("composed message missing %q", want)
		}
	}

	// plain text part must precede the HTML part
	if strings.Index(msg, "text/plain") > strings.Index(msg, "text/html") {
		t.Error("plain-text alternative must come before the HTML part")
	}
}
