package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"aqi-notifier/internal/api"
	"aqi-notifier/internal/cache"
	"aqi-notifier/internal/config"
	"aqi-notifier/internal/db"
	"aqi-notifier/internal/gateway"
	"aqi-notifier/internal/logging"
	"aqi-notifier/internal/measurement"
	"aqi-notifier/internal/models"
	"aqi-notifier/internal/scheduler"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Close()

	// Connect to database
	dbConn, err := db.New(cfg.DB.DSN)
	if err != nil {
		logger.Errorf("Failed to connect to database: %v", err)
		log.Fatalf("Database connection failed: %v", err)
	}
	defer dbConn.Close()

	// Latest ward readings cache (optional)
	wards := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer wards.Close()
	if !wards.Enabled() {
		logger.Warnf("Redis not configured, latest ward readings served from daily aggregates only")
	}
	source := measurement.NewSource(wards, dbConn)

	// Gateway adapters
	whatsapp := gateway.NewWhatsApp(cfg)
	email := gateway.NewEmail(cfg)

	// Channel schedulers; an unconfigured channel never starts
	whatsappSched := scheduler.NewWhatsApp(
		db.NewSubscriptionStore(dbConn, models.ChannelWhatsApp),
		source, whatsapp, logger, cfg.WhatsApp.UpdateInterval,
	)
	emailSched := scheduler.NewEmail(
		db.NewSubscriptionStore(dbConn, models.ChannelEmail),
		source, email, logger,
		cfg.Email.DailyHour, cfg.Email.DailyMinute, cfg.Email.CriticalEvery,
	)
	whatsappRunning := whatsappSched.Start()
	emailRunning := emailSched.Start()
	if !whatsappRunning && !emailRunning {
		logger.Warnf("No delivery channel configured, running API only")
	}

	// Start API server
	router := api.NewRouter(dbConn, logger, cfg, whatsapp, email)
	go func() {
		logger.Infof("Starting API server on %s", cfg.API.Port)
		if err := router.Run(cfg.API.Port); err != nil {
			logger.Errorf("API server failed: %v", err)
		}
	}()

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	logger.Infof("Shutting down...")
	if whatsappRunning {
		whatsappSched.Shutdown()
	}
	if emailRunning {
		emailSched.Shutdown()
	}
	logger.Infof("Service stopped")
}
