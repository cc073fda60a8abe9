package server

import (
	"encoding/json"
	"net/http"
	"time"
)

type handlers struct {
	tracked   Status
	bots      BotlistStatus
	startedAt time.Time
}

// handleHealthz responds to liveness probes.
func (h *handlers) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleStatus reports the tracked streams and exclusion set size.
func (h *handlers) handleStatus(w http.ResponseWriter, _ *http.Request) {
	streams := h.tracked.Active()
	if streams == nil {
		streams = []string{}
	}
	resp := map[string]any{
		"uptime_seconds": int(time.Since(h.startedAt).Seconds()),
		"tracked":        streams,
		"botlist_size":   h.bots.Size(),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
