package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dhruvrajput1/letmecook2.0/internal/middleware"
	"github.com/dhruvrajput1/letmecook2.0/internal/models"
)

type likeRepository interface {
	Toggle(ctx context.Context, actor uuid.UUID, target models.LikeTarget, targetID uuid.UUID) (bool, error)
	ListLikedVideos(ctx context.Context, actor uuid.UUID) ([]models.LikedVideo, error)
}

type LikeHandler struct {
	likes likeRepository
}

func NewLikeHandler(likes likeRepository) *LikeHandler {
	return &LikeHandler{likes: likes}
}

func (h *LikeHandler) ToggleVideo(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "videoId", models.LikeTargetVideo)
}

func (h *LikeHandler) ToggleComment(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "commentId", models.LikeTargetComment)
}

func (h *LikeHandler) ToggleTweet(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "tweetId", models.LikeTargetTweet)
}

func (h *LikeHandler) toggle(w http.ResponseWriter, r *http.Request, param string, target models.LikeTarget) {
	targetID, ok := uuidParam(w, r, param)
	if !ok {
		return
	}

	liked, err := h.likes.Toggle(r.Context(), middleware.GetUser(r.Context()).ID, target, targetID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	message := "Unliked successfully"
	if liked {
		message = "Liked successfully"
	}
	respond(w, http.StatusOK, map[string]bool{"isLiked": liked}, message)
}

func (h *LikeHandler) LikedVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := h.likes.ListLikedVideos(r.Context(), middleware.GetUser(r.Context()).ID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, videos, "Liked videos fetched successfully")
}
