package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aqi-notifier/internal/config"
	"aqi-notifier/internal/db"
	"aqi-notifier/internal/gateway"
	"aqi-notifier/internal/logging"
	"aqi-notifier/internal/models"
)

// NewRouter builds the subscription-management API.
func NewRouter(dbConn *db.DB, logger *logging.Logger, cfg config.Config, whatsapp *gateway.WhatsApp, email *gateway.Email) *gin.Engine {
	r := gin.Default()
	h := &Handler{
		whatsappStore: db.NewSubscriptionStore(dbConn, models.ChannelWhatsApp),
		emailStore:    db.NewSubscriptionStore(dbConn, models.ChannelEmail),
		whatsapp:      whatsapp,
		email:         email,
		logger:        logger,
	}

	base := r.Group(cfg.API.BasePath)
	{
		base.POST("/subscriptions/whatsapp", h.SubscribeWhatsApp)
		base.POST("/subscriptions/email", h.SubscribeEmail)
		base.GET("/subscriptions/:channel", h.ListSubscriptions)
		base.DELETE("/subscriptions/:channel/:id", h.Unsubscribe)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}
