package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-drive/internal/domain"
	"storefront-drive/internal/logx"
	"storefront-drive/internal/webhook"
)

type stubProcessor struct {
	events []webhook.Event
	err    error
}

func (s *stubProcessor) Handle(_ context.Context, e webhook.Event, _ []byte, _ time.Time) error {
	s.events = append(s.events, e)
	return s.err
}

type stubEventReader struct {
	events []domain.WebhookEvent
	err    error
}

func (s *stubEventReader) ListRecent(context.Context, int) ([]domain.WebhookEvent, error) {
	return s.events, s.err
}

const webhookBody = `{"event_type":"delivery.delivered","delivery_id":"wd-1","merchant_id":"m-1"}`

func TestWebhookHandler_Receive_OK(t *testing.T) {
	t.Parallel()

	proc := &stubProcessor{}
	h := NewWebhookHandler(logx.Nop(), proc, &stubEventReader{}, "")

	req := httptest.NewRequest(http.MethodPost, "/api/wolt/webhooks", strings.NewReader(webhookBody))
	rr := httptest.NewRecorder()

	h.Receive(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"received":true,"event_type":"delivery.delivered","delivery_id":"wd-1"}`, rr.Body.String())
	require.Len(t, proc.events, 1)
	assert.Equal(t, "wd-1", proc.events[0].DeliveryID)
}

func TestWebhookHandler_Receive_ValidSignature(t *testing.T) {
	t.Parallel()

	proc := &stubProcessor{}
	h := NewWebhookHandler(logx.Nop(), proc, &stubEventReader{}, "hook-secret")

	req := httptest.NewRequest(http.MethodPost, "/api/wolt/webhooks", strings.NewReader(webhookBody))
	req.Header.Set(webhook.SignatureHeader, webhook.Sign("hook-secret", []byte(webhookBody)))
	rr := httptest.NewRecorder()

	h.Receive(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, proc.events, 1)
}

func TestWebhookHandler_Receive_MissingSignature(t *testing.T) {
	t.Parallel()

	proc := &stubProcessor{}
	h := NewWebhookHandler(logx.Nop(), proc, &stubEventReader{}, "hook-secret")

	req := httptest.NewRequest(http.MethodPost, "/api/wolt/webhooks", strings.NewReader(webhookBody))
	rr := httptest.NewRecorder()

	h.Receive(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Empty(t, proc.events)
}

func TestWebhookHandler_Receive_InvalidSignature(t *testing.T) {
	t.Parallel()

	proc := &stubProcessor{}
	h := NewWebhookHandler(logx.Nop(), proc, &stubEventReader{}, "hook-secret")

	req := httptest.NewRequest(http.MethodPost, "/api/wolt/webhooks", strings.NewReader(webhookBody))
	req.Header.Set(webhook.SignatureHeader, webhook.Sign("wrong-secret", []byte(webhookBody)))
	rr := httptest.NewRecorder()

	h.Receive(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Empty(t, proc.events)
}

func TestWebhookHandler_Receive_InvalidJSON(t *testing.T) {
	t.Parallel()

	h := NewWebhookHandler(logx.Nop(), &stubProcessor{}, &stubEventReader{}, "")

	req := httptest.NewRequest(http.MethodPost, "/api/wolt/webhooks", strings.NewReader("not-json"))
	rr := httptest.NewRecorder()

	h.Receive(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestWebhookHandler_ListEvents(t *testing.T) {
	t.Parallel()

	events := &stubEventReader{events: []domain.WebhookEvent{{
		ID:          1,
		EventType:   "delivery.delivered",
		DeliveryID:  "wd-1",
		MerchantID:  "m-1",
		Status:      "success",
		Payload:     []byte(`{"event_type":"delivery.delivered"}`),
		ProcessedAt: time.Date(2025, 11, 18, 12, 0, 0, 0, time.UTC),
	}}}
	h := NewWebhookHandler(logx.Nop(), &stubProcessor{}, events, "")

	rr := httptest.NewRecorder()
	h.ListEvents(rr, httptest.NewRequest(http.MethodGet, "/api/wolt/webhooks", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"delivery.delivered"`)
	assert.Contains(t, rr.Body.String(), `"wd-1"`)
}

func TestWebhookHandler_ListEvents_Error(t *testing.T) {
	t.Parallel()

	h := NewWebhookHandler(logx.Nop(), &stubProcessor{}, &stubEventReader{err: errors.New("db down")}, "")

	rr := httptest.NewRecorder()
	h.ListEvents(rr, httptest.NewRequest(http.MethodGet, "/api/wolt/webhooks", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
