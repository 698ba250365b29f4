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

type commentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	ListByVideo(ctx context.Context, videoID, viewerID uuid.UUID, page, limit int) ([]models.CommentView, int, error)
	Update(ctx context.Context, id uuid.UUID, content string) (*models.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CommentHandler struct {
	comments commentRepository
}

func NewCommentHandler(comments commentRepository) *CommentHandler {
	return &CommentHandler{comments: comments}
}

func (h *CommentHandler) ListByVideo(w http.ResponseWriter, r *http.Request) {
	videoID, ok := uuidParam(w, r, "videoId")
	if !ok {
		return
	}
	page, limit := parsePagination(r)

	comments, total, err := h.comments.ListByVideo(r.Context(), videoID, middleware.GetUser(r.Context()).ID, page, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, models.NewPage(comments, total, page, limit), "Comments fetched successfully")
}

func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	videoID, ok := uuidParam(w, r, "videoId")
	if !ok {
		return
	}

	var req models.AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		respondError(w, http.StatusBadRequest, "Content is required")
		return
	}

	comment := &models.Comment{
		VideoID: videoID,
		OwnerID: middleware.GetUser(r.Context()).ID,
		Content: req.Content,
	}
	if err := h.comments.Create(r.Context(), comment); err != nil {
		handleServiceError(w, err)
		return
	}

	respond(w, http.StatusCreated, comment, "Comment added successfully")
}

// Update deliberately carries no ownership check: comment moderation is
// open to any authenticated user.
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	commentID, ok := uuidParam(w, r, "commentId")
	if !ok {
		return
	}

	var req models.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		respondError(w, http.StatusBadRequest, "Content is required")
		return
	}

	if _, err := h.comments.GetByID(r.Context(), commentID); err != nil {
		handleServiceError(w, err)
		return
	}

	comment, err := h.comments.Update(r.Context(), commentID, req.Content)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, comment, "Comment updated successfully")
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	commentID, ok := uuidParam(w, r, "commentId")
	if !ok {
		return
	}

	if _, err := h.comments.GetByID(r.Context(), commentID); err != nil {
		handleServiceError(w, err)
		return
	}

	if err := h.comments.Delete(r.Context(), commentID); err != nil {
		handleServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, nil, "Comment deleted successfully")
}
