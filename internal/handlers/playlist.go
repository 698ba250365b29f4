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

type playlistRepository interface {
	Create(ctx context.Context, playlist *models.Playlist) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Playlist, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.PlaylistView, error)
	ContainsVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error)
	AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error
	RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error
	Update(ctx context.Context, id uuid.UUID, name, description string) (*models.Playlist, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PlaylistHandler struct {
	playlists playlistRepository
}

func NewPlaylistHandler(playlists playlistRepository) *PlaylistHandler {
	return &PlaylistHandler{playlists: playlists}
}

func (h *PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.PlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Description) == "" {
		respondError(w, http.StatusBadRequest, "Name and description are required")
		return
	}

	playlist := &models.Playlist{
		OwnerID:     middleware.GetUser(r.Context()).ID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.playlists.Create(r.Context(), playlist); err != nil {
		handleServiceError(w, err)
		return
	}

	respond(w, http.StatusCreated, playlist, "Playlist created successfully")
}

func (h *PlaylistHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := uuidParam(w, r, "userId")
	if !ok {
		return
	}

	playlists, err := h.playlists.ListByUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, playlists, "Playlists fetched successfully")
}

func (h *PlaylistHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	playlistID, ok := uuidParam(w, r, "playlistId")
	if !ok {
		return
	}

	playlist, err := h.playlists.GetByID(r.Context(), playlistID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, playlist, "Playlist fetched successfully")
}

func (h *PlaylistHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	playlistID, videoID, ok := h.pairParams(w, r)
	if !ok {
		return
	}

	if forbidden := h.guardOwner(w, r, playlistID); forbidden {
		return
	}

	exists, err := h.playlists.ContainsVideo(r.Context(), playlistID, videoID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if exists {
		respondError(w, http.StatusConflict, "Video already exists in playlist")
		return
	}

	if err := h.playlists.AddVideo(r.Context(), playlistID, videoID); err != nil {
		handleServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, nil, "Video added to playlist successfully")
}

func (h *PlaylistHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	playlistID, videoID, ok := h.pairParams(w, r)
	if !ok {
		return
	}

	if forbidden := h.guardOwner(w, r, playlistID); forbidden {
		return
	}

	if err := h.playlists.RemoveVideo(r.Context(), playlistID, videoID); err != nil {
		handleServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, nil, "Video removed from playlist successfully")
}

func (h *PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) {
	playlistID, ok := uuidParam(w, r, "playlistId")
	if !ok {
		return
	}

	var req models.PlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Description) == "" {
		respondError(w, http.StatusBadRequest, "Name and description are required")
		return
	}

	if forbidden := h.guardOwner(w, r, playlistID); forbidden {
		return
	}

	playlist, err := h.playlists.Update(r.Context(), playlistID, req.Name, req.Description)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, playlist, "Playlist updated successfully")
}

func (h *PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	playlistID, ok := uuidParam(w, r, "playlistId")
	if !ok {
		return
	}

	if forbidden := h.guardOwner(w, r, playlistID); forbidden {
		return
	}

	if err := h.playlists.Delete(r.Context(), playlistID); err != nil {
		handleServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, nil, "Playlist deleted successfully")
}

func (h *PlaylistHandler) pairParams(w http.ResponseWriter, r *http.Request) (playlistID, videoID uuid.UUID, ok bool) {
	playlistID, ok = uuidParam(w, r, "playlistId")
	if !ok {
		return
	}
	videoID, ok = uuidParam(w, r, "videoId")
	return
}

func (h *PlaylistHandler) guardOwner(w http.ResponseWriter, r *http.Request, playlistID uuid.UUID) bool {
	playlist, err := h.playlists.GetByID(r.Context(), playlistID)
	if err != nil {
		handleServiceError(w, err)
		return true
	}
	if playlist.OwnerID != middleware.GetUser(r.Context()).ID {
		respondError(w, http.StatusUnauthorized, "You are not authorized to modify this playlist")
		return true
	}
	return false
}
