package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dhruvrajput1/letmecook2.0/internal/middleware"
	"github.com/dhruvrajput1/letmecook2.0/internal/models"
)

type channelStatsRepository interface {
	GetChannelStats(ctx context.Context, ownerID uuid.UUID) (*models.ChannelStats, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Video, error)
}

// DashboardHandler serves channel-owner views: aggregate stats and the
// full upload list, unpublished videos included.
type DashboardHandler struct {
	stats channelStatsRepository
}

func NewDashboardHandler(stats channelStatsRepository) *DashboardHandler {
	return &DashboardHandler{stats: stats}
}

func (h *DashboardHandler) ChannelStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.GetChannelStats(r.Context(), middleware.GetUser(r.Context()).ID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, stats, "Channel stats fetched successfully")
}

func (h *DashboardHandler) ChannelVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := h.stats.ListByOwner(r.Context(), middleware.GetUser(r.Context()).ID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, videos, "Channel videos fetched successfully")
}
