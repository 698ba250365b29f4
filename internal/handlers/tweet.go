package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dhruvrajput1/letmecook2.0/internal/middleware"
	"github.com/dhruvrajput1/letmecook2.0/internal/models"
)

type tweetRepository interface {
	Create(ctx context.Context, tweet *models.Tweet) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tweet, error)
	ListByUser(ctx context.Context, ownerID, viewerID uuid.UUID) ([]models.TweetView, error)
	Update(ctx context.Context, id uuid.UUID, content string) (*models.Tweet, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type TweetHandler struct {
	tweets tweetRepository
}

func NewTweetHandler(tweets tweetRepository) *TweetHandler {
	return &TweetHandler{tweets: tweets}
}

func (h *TweetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.TweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		respondError(w, http.StatusBadRequest, "Content is required")
		return
	}

	tweet := &models.Tweet{
		OwnerID: middleware.GetUser(r.Context()).ID,
		Content: req.Content,
	}
	if err := h.tweets.Create(r.Context(), tweet); err != nil {
		handleServiceError(w, err)
		return
	}

	respond(w, http.StatusCreated, tweet, "Tweet created successfully")
}

func (h *TweetHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := uuidParam(w, r, "userId")
	if !ok {
		return
	}

	tweets, err := h.tweets.ListByUser(r.Context(), ownerID, middleware.GetUser(r.Context()).ID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, tweets, "Tweets fetched successfully")
}

func (h *TweetHandler) Update(w http.ResponseWriter, r *http.Request) {
	tweetID, ok := uuidParam(w, r, "tweetId")
	if !ok {
		return
	}

	var req models.TweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		respondError(w, http.StatusBadRequest, "Content is required")
		return
	}

	if forbidden := h.guardOwner(w, r, tweetID); forbidden {
		return
	}

	tweet, err := h.tweets.Update(r.Context(), tweetID, req.Content)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, tweet, "Tweet updated successfully")
}

func (h *TweetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tweetID, ok := uuidParam(w, r, "tweetId")
	if !ok {
		return
	}

	if forbidden := h.guardOwner(w, r, tweetID); forbidden {
		return
	}

	if err := h.tweets.Delete(r.Context(), tweetID); err != nil {
		handleServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, nil, "Tweet deleted successfully")
}

func (h *TweetHandler) guardOwner(w http.ResponseWriter, r *http.Request, tweetID uuid.UUID) bool {
	tweet, err := h.tweets.GetByID(r.Context(), tweetID)
	if err != nil {
		handleServiceError(w, err)
		return true
	}
	if tweet.OwnerID != middleware.GetUser(r.Context()).ID {
		respondError(w, http.StatusUnauthorized, "You are not authorized to modify this tweet")
		return true
	}
	return false
}
