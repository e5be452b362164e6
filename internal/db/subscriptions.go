package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"aqi-notifier/internal/models"
)

// SubscriptionStore reads and updates subscriber rows for one channel. Each
// channel has its own table; the store binds table and address column once at
// construction.
type SubscriptionStore struct {
	db         *DB
	channel    models.Channel
	table      string
	addressCol string
}

// NewSubscriptionStore returns a store bound to the channel's table.
func NewSubscriptionStore(db *DB, channel models.Channel) *SubscriptionStore {
	table, addressCol := "email_subscriptions", "email"
	if channel == models.ChannelWhatsApp {
		table, addressCol = "whatsapp_subscriptions", "phone_number"
	}
	return &SubscriptionStore{db: db, channel: channel, table: table, addressCol: addressCol}
}

// Channel returns the channel this store is bound to.
func (s *SubscriptionStore) Channel() models.Channel {
	return s.channel
}

// ListActive returns active subscriptions, optionally filtered by frequency.
// An empty frequency returns all active rows across cadences.
func (s *SubscriptionStore) ListActive(ctx context.Context, frequency string) ([]models.Subscription, error) {
	query := fmt.Sprintf(`
	SELECT id, %s, ward_no, subscription_type, frequency, is_active,
	       alert_threshold, last_sent_at, created_at
	FROM %s
	WHERE is_active = true`, s.addressCol, s.table)

	var rows pgx.Rows
	var err error
	if frequency != "" {
		rows, err = s.db.Pool.Query(ctx, query+" AND frequency = $1", frequency)
	} else {
		rows, err = s.db.Pool.Query(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %s subscriptions: %w", s.channel, err)
	}
	defer rows.Close()

	var subs []models.Subscription
	for rows.Next() {
		var sub models.Subscription
		var id uuid.UUID
		if err := rows.Scan(
			&id,
			&sub.Address,
			&sub.WardNo,
			&sub.Type,
			&sub.Frequency,
			&sub.IsActive,
			&sub.AlertThreshold,
			&sub.LastSentAt,
			&sub.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		sub.ID = id.String()
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// MarkSent stamps last_sent_at for a subscription. Best-effort: callers log
// and continue on failure.
func (s *SubscriptionStore) MarkSent(ctx context.Context, id string, at time.Time) error {
	idUUID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid subscription ID %q: %w", id, err)
	}

	query := fmt.Sprintf(`UPDATE %s SET last_sent_at = $1 WHERE id = $2`, s.table)
	if _, err := s.db.Pool.Exec(ctx, query, at, idUUID); err != nil {
		return fmt.Errorf("failed to mark subscription %s sent: %w", id, err)
	}
	return nil
}

// Create inserts a subscription, or reactivates and updates the existing row
// when the address is already subscribed.
func (s *SubscriptionStore) Create(ctx context.Context, sub models.Subscription) (models.Subscription, error) {
	existing, err := s.GetByAddress(ctx, sub.Address)
	if err != nil {
		return models.Subscription{}, err
	}
	if existing != nil {
		query := fmt.Sprintf(`
		UPDATE %s
		SET ward_no = $1, subscription_type = $2, frequency = $3,
		    alert_threshold = $4, is_active = true
		WHERE id = $5`, s.table)
		idUUID, _ := uuid.Parse(existing.ID)
		if _, err := s.db.Pool.Exec(ctx, query,
			sub.WardNo, sub.Type, sub.Frequency, sub.AlertThreshold, idUUID); err != nil {
			return models.Subscription{}, fmt.Errorf("failed to update subscription: %w", err)
		}
		existing.WardNo = sub.WardNo
		existing.Type = sub.Type
		existing.Frequency = sub.Frequency
		existing.AlertThreshold = sub.AlertThreshold
		existing.IsActive = true
		return *existing, nil
	}

	newID := uuid.New()
	query := fmt.Sprintf(`
	INSERT INTO %s (id, %s, ward_no, subscription_type, frequency, is_active,
	                alert_threshold, created_at)
	VALUES ($1, $2, $3, $4, $5, true, $6, NOW())
	RETURNING created_at`, s.table, s.addressCol)

	if err := s.db.Pool.QueryRow(ctx, query,
		newID, sub.Address, sub.WardNo, sub.Type, sub.Frequency, sub.AlertThreshold,
	).Scan(&sub.CreatedAt); err != nil {
		return models.Subscription{}, fmt.Errorf("failed to create subscription: %w", err)
	}
	sub.ID = newID.String()
	sub.IsActive = true
	return sub, nil
}

// GetByAddress returns the subscription for an address, active or not, or nil
// when none exists.
func (s *SubscriptionStore) GetByAddress(ctx context.Context, address string) (*models.Subscription, error) {
	query := fmt.Sprintf(`
	SELECT id, %s, ward_no, subscription_type, frequency, is_active,
	       alert_threshold, last_sent_at, created_at
	FROM %s
	WHERE %s = $1`, s.addressCol, s.table, s.addressCol)

	var sub models.Subscription
	var id uuid.UUID
	err := s.db.Pool.QueryRow(ctx, query, address).Scan(
		&id,
		&sub.Address,
		&sub.WardNo,
		&sub.Type,
		&sub.Frequency,
		&sub.IsActive,
		&sub.AlertThreshold,
		&sub.LastSentAt,
		&sub.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription by address: %w", err)
	}
	sub.ID = id.String()
	return &sub, nil
}

// Deactivate soft-disables a subscription. The scheduler never deletes rows.
func (s *SubscriptionStore) Deactivate(ctx context.Context, id string) error {
	idUUID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid subscription ID %q: %w", id, err)
	}
	query := fmt.Sprintf(`UPDATE %s SET is_active = false WHERE id = $1`, s.table)
	if _, err := s.db.Pool.Exec(ctx, query, idUUID); err != nil {
		return fmt.Errorf("failed to deactivate subscription %s: %w", id, err)
	}
	return nil
}
