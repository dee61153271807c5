package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"storefront-drive/internal/domain"
	"storefront-drive/internal/logx"
	"storefront-drive/internal/webhook"
)

// WebhookHandler ingests provider webhook events and serves the received
// event log.
type WebhookHandler struct {
	processor webhookProcessor
	events    eventReader
	secret    string
	logger    logx.Logger
}

// NewWebhookHandler creates a new WebhookHandler. An empty secret disables
// signature verification.
func NewWebhookHandler(logger logx.Logger, p webhookProcessor, events eventReader, secret string) *WebhookHandler {
	return &WebhookHandler{processor: p, events: events, secret: secret, logger: logger}
}

// Receive handles POST /api/wolt/webhooks.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	receivedAt := time.Now()

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, bodyLimit))
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "unreadable body")
		return
	}

	if h.secret != "" {
		sig := r.Header.Get(webhook.SignatureHeader)
		if sig == "" {
			writeError(h.logger, w, r, http.StatusUnauthorized, "missing signature")
			return
		}
		if !webhook.Verify(h.secret, raw, sig) {
			writeError(h.logger, w, r, http.StatusUnauthorized, "invalid signature")
			return
		}
	} else {
		h.logger.Warn("webhook secret not configured, skipping signature verification")
	}

	var e webhook.Event
	if err := json.Unmarshal(raw, &e); err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.processor.Handle(r.Context(), e, raw, receivedAt); err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(h.logger, w, r, http.StatusOK, map[string]any{
		"received":    true,
		"event_type":  e.EventType,
		"delivery_id": e.DeliveryID,
	})
}

type webhookEventDTO struct {
	ID               int64           `json:"id"`
	EventType        string          `json:"event_type"`
	DeliveryID       string          `json:"delivery_id"`
	MerchantID       string          `json:"merchant_id"`
	Status           string          `json:"status"`
	Payload          json.RawMessage `json:"payload,omitempty"`
	ProcessedAt      time.Time       `json:"processed_at"`
	ProcessingTimeMs int64           `json:"processing_time_ms"`
}

// ListEvents handles GET /api/wolt/webhooks.
func (h *WebhookHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.ListRecent(r.Context(), queryInt(r, "limit", 100))
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]webhookEventDTO, 0, len(events))
	for _, e := range events {
		out = append(out, webhookEventToResponse(e))
	}
	writeJSON(h.logger, w, r, http.StatusOK, map[string]any{"events": out})
}

func webhookEventToResponse(e domain.WebhookEvent) webhookEventDTO {
	return webhookEventDTO{
		ID:               e.ID,
		EventType:        e.EventType,
		DeliveryID:       e.DeliveryID,
		MerchantID:       e.MerchantID,
		Status:           e.Status,
		Payload:          json.RawMessage(e.Payload),
		ProcessedAt:      e.ProcessedAt,
		ProcessingTimeMs: e.ProcessingTimeMs,
	}
}
