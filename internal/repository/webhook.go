package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-drive/internal/domain"
)

// WebhookRepo stores provider webhook events.
type WebhookRepo struct {
	db *pgxpool.Pool
}

// NewWebhookRepo creates a new WebhookRepo.
func NewWebhookRepo(db *pgxpool.Pool) *WebhookRepo {
	return &WebhookRepo{db: db}
}

// InsertEvent - insert a received webhook event.
func (r *WebhookRepo) InsertEvent(ctx context.Context, e *domain.WebhookEvent) error {
	err := r.db.QueryRow(ctx, `
        INSERT INTO webhook_events (event_type, delivery_id, merchant_id, status, payload, processed_at, processing_time_ms)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `, e.EventType, e.DeliveryID, e.MerchantID, e.Status, e.Payload, e.ProcessedAt, e.ProcessingTimeMs).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("insert webhook event: %w", err)
	}
	return nil
}

// ListRecent - list the most recently processed webhook events.
func (r *WebhookRepo) ListRecent(ctx context.Context, limit int) ([]domain.WebhookEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx, `
        SELECT id, event_type, delivery_id, merchant_id, status, payload, processed_at, processing_time_ms
        FROM webhook_events
        ORDER BY processed_at DESC
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("list webhook events: %w", err)
	}
	defer rows.Close()

	var out []domain.WebhookEvent
	for rows.Next() {
		var e domain.WebhookEvent
		if err := rows.Scan(&e.ID, &e.EventType, &e.DeliveryID, &e.MerchantID,
			&e.Status, &e.Payload, &e.ProcessedAt, &e.ProcessingTimeMs); err != nil {
			return nil, fmt.Errorf("scan webhook event: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list webhook events: %w", err)
	}
	return out, nil
}
