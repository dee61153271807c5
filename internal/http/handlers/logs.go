package handlers

import (
	"net/http"

	"storefront-drive/internal/apilog"
	"storefront-drive/internal/logx"
)

// LogsHandler serves the capped provider-negotiation log feed.
type LogsHandler struct {
	sink   logReader
	logger logx.Logger
}

// NewLogsHandler creates a new LogsHandler.
func NewLogsHandler(logger logx.Logger, sink logReader) *LogsHandler {
	return &LogsHandler{sink: sink, logger: logger}
}

// List handles GET /api/logs.
func (h *LogsHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.sink.List(r.Context(), queryInt(r, "limit", apilog.MaxEntries))
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, map[string]any{"logs": entries})
}
