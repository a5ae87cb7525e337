package handler

import (
	"net/http"
)

// HealthHandler reports process, database and storage status.
type HealthHandler struct {
	db             interface{ Connected() bool }
	storageEnabled bool
}

func NewHealthHandler(db interface{ Connected() bool }, storageEnabled bool) *HealthHandler {
	return &HealthHandler{db: db, storageEnabled: storageEnabled}
}

func (h *HealthHandler) Status(w http.ResponseWriter, _ *http.Request) {
	db := "disconnected"
	status := http.StatusServiceUnavailable
	if h.db.Connected() {
		db = "connected"
		status = http.StatusOK
	}
	writeJSON(w, status, map[string]interface{}{
		"success": status == http.StatusOK,
		"status":  "ok",
		"db":      db,
		"services": map[string]bool{
			"storage": h.storageEnabled,
		},
	})
}
