package gateway

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"aqi-notifier/internal/config"
	"aqi-notifier/internal/render"
)

// Email sends multipart/alternative mail over SMTP with STARTTLS.
type Email struct {
	server     string
	port       int
	username   string
	password   string
	fromEmail  string
	fromName   string
	configured bool
}

// NewEmail builds the adapter from config. An incomplete SMTP group leaves
// the adapter unconfigured.
func NewEmail(cfg config.Config) *Email {
	return &Email{
		server:     cfg.Email.SMTPServer,
		port:       cfg.Email.SMTPPort,
		username:   cfg.Email.Username,
		password:   cfg.Email.Password,
		fromEmail:  cfg.Email.FromEmail,
		fromName:   cfg.Email.FromName,
		configured: cfg.EmailConfigured(),
	}
}

// IsConfigured reports whether the SMTP credential group is complete.
func (e *Email) IsConfigured() bool {
	return e.configured
}

// Send delivers one email with an HTML body and a plain-text alternative.
// One attempt, bounded timeout, every transport error becomes a failed
// Outcome.
func (e *Email) Send(ctx context.Context, to string, payload render.EmailPayload) Outcome {
	if !e.configured {
		return failed(errors.New("email service not configured"), 0)
	}
	if !strings.Contains(to, "@") {
		return failed(fmt.Errorf("invalid email address: %s", to), 0)
	}

	if err := e.deliver(ctx, to, e.compose(to, payload)); err != nil {
		return failed(fmt.Errorf("failed to send email to %s: %w", to, err), 0)
	}
	return succeeded("", "delivered", to)
}

// compose builds the multipart/alternative MIME message: plain text first,
// HTML last so capable clients prefer it.
func (e *Email) compose(to string, payload render.EmailPayload) []byte {
	const boundary = "aqi-notifier-alt"

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", e.fromName, e.fromEmail)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", payload.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(payload.Text)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(payload.HTML)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String())
}

// deliver speaks SMTP with STARTTLS under a connection deadline derived from
// ctx, capped at the adapter's send timeout.
func (e *Email) deliver(ctx context.Context, to string, msg []byte) error {
	addr := fmt.Sprintf("%s:%d", e.server, e.port)

	dialer := net.Dialer{Timeout: sendTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(sendTimeout)
	}
	_ = conn.SetDeadline(deadline)

	client, err := smtp.NewClient(conn, e.server)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: e.server}); err != nil {
		return fmt.Errorf("starttls: %w", err)
	}
	auth := smtp.PlainAuth("", e.username, e.password, e.server)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := client.Mail(e.fromEmail); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}
	wc, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := wc.Write(msg); err != nil {
		wc.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("smtp close: %w", err)
	}
	return client.Quit()
}
