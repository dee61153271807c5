package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-drive/internal/domain"
)

// DeliveryRepo stores booked provider deliveries.
type DeliveryRepo struct {
	db *pgxpool.Pool
}

// NewDeliveryRepo creates a new DeliveryRepo.
func NewDeliveryRepo(db *pgxpool.Pool) *DeliveryRepo {
	return &DeliveryRepo{db: db}
}

// Insert - insert a newly booked delivery.
func (r *DeliveryRepo) Insert(ctx context.Context, d *domain.Delivery) error {
	err := r.db.QueryRow(ctx, `
        INSERT INTO deliveries (provider_id, order_reference, status, fee_amount, fee_currency, tracking_url, scheduled_at, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
        RETURNING id
    `, d.ProviderID, d.OrderReference, string(d.Status), d.FeeAmount, d.FeeCurrency, d.TrackingURL, d.ScheduledAt).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

// GetByProviderID - get a delivery by its provider id.
func (r *DeliveryRepo) GetByProviderID(ctx context.Context, providerID string) (*domain.Delivery, error) {
	row := r.db.QueryRow(ctx, `
        SELECT id, provider_id, order_reference, status, fee_amount, fee_currency, tracking_url, scheduled_at, created_at, updated_at
        FROM deliveries
        WHERE provider_id = $1
    `, providerID)

	var d domain.Delivery
	var status string
	err := row.Scan(&d.ID, &d.ProviderID, &d.OrderReference, &status,
		&d.FeeAmount, &d.FeeCurrency, &d.TrackingURL, &d.ScheduledAt, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery by provider id %q: %w", providerID, err)
	}
	d.Status = domain.DeliveryStatus(status)
	return &d, nil
}

// GetByOrderReference - get a delivery by its merchant order reference.
func (r *DeliveryRepo) GetByOrderReference(ctx context.Context, ref string) (*domain.Delivery, error) {
	row := r.db.QueryRow(ctx, `
        SELECT id, provider_id, order_reference, status, fee_amount, fee_currency, tracking_url, scheduled_at, created_at, updated_at
        FROM deliveries
        WHERE order_reference = $1
    `, ref)

	var d domain.Delivery
	var status string
	err := row.Scan(&d.ID, &d.ProviderID, &d.OrderReference, &status,
		&d.FeeAmount, &d.FeeCurrency, &d.TrackingURL, &d.ScheduledAt, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery by order reference %q: %w", ref, err)
	}
	d.Status = domain.DeliveryStatus(status)
	return &d, nil
}

// UpdateStatus - update the provider-reported status of a delivery.
func (r *DeliveryRepo) UpdateStatus(ctx context.Context, providerID string, status domain.DeliveryStatus) error {
	ct, err := r.db.Exec(ctx, `
        UPDATE deliveries
        SET status = $2, updated_at = now()
        WHERE provider_id = $1
    `, providerID, string(status))
	if err != nil {
		return fmt.Errorf("update delivery status %q: %w", providerID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("delivery %q not found", providerID)
	}
	return nil
}

// List - list stored deliveries, newest first.
func (r *DeliveryRepo) List(ctx context.Context, limit, offset int) ([]domain.Delivery, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(ctx, `
        SELECT id, provider_id, order_reference, status, fee_amount, fee_currency, tracking_url, scheduled_at, created_at, updated_at
        FROM deliveries
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2
    `, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()

	var out []domain.Delivery
	for rows.Next() {
		var d domain.Delivery
		var status string
		if err := rows.Scan(&d.ID, &d.ProviderID, &d.OrderReference, &status,
			&d.FeeAmount, &d.FeeCurrency, &d.TrackingURL, &d.ScheduledAt, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		d.Status = domain.DeliveryStatus(status)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	return out, nil
}
