package handlers

import (
	"context"
	"net/http"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db pinger
}

func NewHealthHandler(db pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "Service unhealthy")
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "ok"}, "Everything is O.K")
}
