package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	DB struct {
		DSN string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	WhatsApp struct {
		AccountSID     string
		AuthToken      string
		From           string // format: whatsapp:+14155238886
		CountryCode    string // default dialing prefix for bare 10-digit numbers
		RatePerSecond  int
		UpdateInterval time.Duration
	}
	Email struct {
		SMTPServer    string
		SMTPPort      int
		Username      string
		Password      string
		FromEmail     string
		FromName      string
		DailyHour     int
		DailyMinute   int
		CriticalEvery time.Duration
	}
	API struct {
		Port     string
		BasePath string
	}
	Logging struct {
		Dir   string
		Level string
	}
}

// WhatsAppConfigured reports whether the WhatsApp credential group is
// complete. An incomplete group disables the channel instead of erroring.
func (c Config) WhatsAppConfigured() bool {
	return c.WhatsApp.AccountSID != "" && c.WhatsApp.AuthToken != "" && c.WhatsApp.From != ""
}

// EmailConfigured reports whether the SMTP credential group is complete.
func (c Config) EmailConfigured() bool {
	return c.Email.SMTPServer != "" && c.Email.SMTPPort != 0 &&
		c.Email.Username != "" && c.Email.Password != ""
}

// Load reads environment variables, applies defaults, and returns a Config.
func Load() (Config, error) {
	// Load .env if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config

	// Database DSN
	cfg.DB.DSN = os.Getenv("DB_DSN")

	// Redis (latest ward readings cache)
	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if db, err := strconv.Atoi(os.Getenv("REDIS_DB")); err == nil {
		cfg.Redis.DB = db
	}

	// Twilio WhatsApp settings
	cfg.WhatsApp.AccountSID = os.Getenv("TWILIO_ACCOUNT_SID")
	cfg.WhatsApp.AuthToken = os.Getenv("TWILIO_AUTH_TOKEN")
	cfg.WhatsApp.From = os.Getenv("TWILIO_WHATSAPP_FROM")
	cfg.WhatsApp.CountryCode = os.Getenv("WHATSAPP_COUNTRY_CODE")
	if r, err := strconv.Atoi(os.Getenv("WHATSAPP_RATE_PER_SECOND")); err == nil {
		cfg.WhatsApp.RatePerSecond = r
	}
	if m, err := strconv.Atoi(os.Getenv("WHATSAPP_UPDATE_MINUTES")); err == nil && m > 0 {
		cfg.WhatsApp.UpdateInterval = time.Duration(m) * time.Minute
	}

	// Email settings
	cfg.Email.SMTPServer = os.Getenv("SMTP_SERVER")
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil {
		cfg.Email.SMTPPort = p
	}
	cfg.Email.Username = os.Getenv("SMTP_EMAIL")
	cfg.Email.Password = os.Getenv("SMTP_PASSWORD")
	cfg.Email.FromEmail = os.Getenv("FROM_EMAIL")
	cfg.Email.FromName = os.Getenv("FROM_NAME")
	if h, err := strconv.Atoi(os.Getenv("EMAIL_DAILY_HOUR")); err == nil {
		cfg.Email.DailyHour = h
	} else {
		cfg.Email.DailyHour = 8
	}
	if m, err := strconv.Atoi(os.Getenv("EMAIL_DAILY_MINUTE")); err == nil {
		cfg.Email.DailyMinute = m
	}

	// API settings
	cfg.API.Port = os.Getenv("API_PORT")
	cfg.API.BasePath = os.Getenv("API_BASE_PATH")

	// Logging
	cfg.Logging.Dir = os.Getenv("LOG_DIR")
	cfg.Logging.Level = os.Getenv("LOG_LEVEL")

	// Validate required settings
	missing := []string{}
	if cfg.DB.DSN == "" {
		missing = append(missing, "DB_DSN")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required configurations: %v", missing)
	}

	// Apply defaults
	if cfg.WhatsApp.CountryCode == "" {
		cfg.WhatsApp.CountryCode = "91"
	}
	if cfg.WhatsApp.RatePerSecond == 0 {
		cfg.WhatsApp.RatePerSecond = 1
	}
	if cfg.WhatsApp.UpdateInterval == 0 {
		cfg.WhatsApp.UpdateInterval = 5 * time.Minute
	}
	cfg.Email.CriticalEvery = time.Hour
	if cfg.Email.SMTPServer == "" {
		cfg.Email.SMTPServer = "smtp.gmail.com"
	}
	if cfg.Email.SMTPPort == 0 {
		cfg.Email.SMTPPort = 587
	}
	if cfg.Email.FromEmail == "" {
		cfg.Email.FromEmail = cfg.Email.Username
	}
	if cfg.Email.FromName == "" {
		cfg.Email.FromName = "JanDrishti AQI Updates"
	}
	if cfg.API.Port == "" {
		cfg.API.Port = ":8080"
	}
	if cfg.API.BasePath == "" {
		cfg.API.BasePath = "/api/v1"
	}
	if cfg.Logging.Dir == "" {
		cfg.Logging.Dir = "logs"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	return cfg, nil
}
