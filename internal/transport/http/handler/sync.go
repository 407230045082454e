package handler

import (
	"net/http"
	"time"

	"onbid-goods-api/internal/syncer"
	"onbid-goods-api/internal/transport/http/response"
)

// SyncHandler exposes the state of the background synchronization job.
type SyncHandler struct {
	tracker *syncer.StatusTracker
	sync    *syncer.Syncer
}

// NewSyncHandler creates a new sync-status handler. sync may be nil when
// the background job is disabled.
func NewSyncHandler(tracker *syncer.StatusTracker, sync *syncer.Syncer) *SyncHandler {
	return &SyncHandler{tracker: tracker, sync: sync}
}

// Status handles GET /api/v1/goods/sync-status
func (h *SyncHandler) Status(w http.ResponseWriter, r *http.Request) {
	payload := map[string]interface{}{
		"success":              true,
		"lastSyncedAt":         nil,
		"nextSyncAt":           nil,
		"secondsUntilNextSync": h.tracker.SecondsUntilNextSync(),
		"intervalSeconds":      int64(h.tracker.Interval() / time.Second),
		"running":              h.sync != nil && h.sync.Running(),
	}

	if last, ok := h.tracker.LastSyncedAt(); ok {
		payload["lastSyncedAt"] = last
	}
	if next, ok := h.tracker.NextSyncAt(); ok {
		payload["nextSyncAt"] = next
	}

	response.OK(w, payload)
}
