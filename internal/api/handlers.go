package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"aqi-notifier/internal/db"
	"aqi-notifier/internal/gateway"
	"aqi-notifier/internal/logging"
	"aqi-notifier/internal/models"
	"aqi-notifier/internal/render"
)

type Handler struct {
	whatsappStore *db.SubscriptionStore
	emailStore    *db.SubscriptionStore
	whatsapp      *gateway.WhatsApp
	email         *gateway.Email
	logger        *logging.Logger
}

type subscribeRequest struct {
	PhoneNumber    string   `json:"phone_number"`
	Email          string   `json:"email"`
	WardNo         *string  `json:"ward_no,omitempty"`
	Type           string   `json:"subscription_type"`
	Frequency      string   `json:"frequency"`
	AlertThreshold *float64 `json:"alert_threshold,omitempty"`
}

func (r *subscribeRequest) applyDefaults() {
	if r.Type == "" {
		r.Type = models.KindUpdates
	}
	if r.Frequency == "" {
		r.Frequency = models.FrequencyDaily
	}
}

func validKind(kind string) bool {
	return kind == models.KindUpdates || kind == models.KindAlertsOnly || kind == models.KindAll
}

func validFrequency(freq string) bool {
	return freq == models.FrequencyDaily || freq == models.FrequencyHourly || freq == models.FrequencyAlertsOnly
}

// SubscribeWhatsApp creates (or reactivates) a WhatsApp subscription. The
// phone number is normalized to E.164 before storage.
func (h *Handler) SubscribeWhatsApp(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("Invalid request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.applyDefaults()
	if req.PhoneNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone_number is required"})
		return
	}
	if !validKind(req.Type) || !validFrequency(req.Frequency) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subscription_type or frequency"})
		return
	}

	sub, err := h.whatsappStore.Create(c.Request.Context(), models.Subscription{
		Address:        h.whatsapp.FormatPhone(req.PhoneNumber),
		WardNo:         req.WardNo,
		Type:           req.Type,
		Frequency:      req.Frequency,
		AlertThreshold: req.AlertThreshold,
	})
	if err != nil {
		h.logger.Errorf("Create WhatsApp subscription failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.logger.Infof("Created WhatsApp subscription %s", sub.ID)
	c.JSON(http.StatusCreated, sub)
}

// SubscribeEmail creates (or reactivates) an email subscription and sends a
// welcome email best-effort.
func (h *Handler) SubscribeEmail(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("Invalid request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.applyDefaults()
	if !strings.Contains(req.Email, "@") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "valid email is required"})
		return
	}
	if !validKind(req.Type) || !validFrequency(req.Frequency) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subscription_type or frequency"})
		return
	}

	sub, err := h.emailStore.Create(c.Request.Context(), models.Subscription{
		Address:        req.Email,
		WardNo:         req.WardNo,
		Type:           req.Type,
		Frequency:      req.Frequency,
		AlertThreshold: req.AlertThreshold,
	})
	if err != nil {
		h.logger.Errorf("Create email subscription failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if h.email.IsConfigured() {
		if out := h.email.Send(c.Request.Context(), sub.Address, render.EmailWelcome(sub.WardNo)); !out.Success {
			h.logger.Warnf("Welcome email to %s failed: %s", sub.Address, out.Err)
		}
	}

	h.logger.Infof("Created email subscription %s", sub.ID)
	c.JSON(http.StatusCreated, sub)
}

// ListSubscriptions returns all active subscriptions for a channel.
func (h *Handler) ListSubscriptions(c *gin.Context) {
	store, ok := h.storeFor(c.Param("channel"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown channel"})
		return
	}

	subs, err := store.ListActive(c.Request.Context(), c.Query("frequency"))
	if err != nil {
		h.logger.Errorf("List subscriptions failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, subs)
}

// Unsubscribe deactivates a subscription. Rows are never deleted.
func (h *Handler) Unsubscribe(c *gin.Context) {
	store, ok := h.storeFor(c.Param("channel"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown channel"})
		return
	}

	id := c.Param("id")
	if err := store.Deactivate(c.Request.Context(), id); err != nil {
		h.logger.Errorf("Deactivate subscription %s failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.logger.Infof("Deactivated %s subscription %s", c.Param("channel"), id)
	c.JSON(http.StatusOK, gin.H{"message": "unsubscribed"})
}

func (h *Handler) storeFor(channel string) (*db.SubscriptionStore, bool) {
	switch models.Channel(channel) {
	case models.ChannelWhatsApp:
		return h.whatsappStore, true
	case models.ChannelEmail:
		return h.emailStore, true
	default:
		return nil, false
	}
}
