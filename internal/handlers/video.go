package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/dhruvrajput1/letmecook2.0/internal/middleware"
	"github.com/dhruvrajput1/letmecook2.0/internal/models"
)

const maxVideoUpload = 200 * 1024 * 1024 // 200MB per publish request

type videoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error)
	GetView(ctx context.Context, id, viewerID uuid.UUID) (*models.VideoView, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, q models.VideoListQuery) ([]models.VideoListItem, int, error)
	UpdateMetadata(ctx context.Context, id uuid.UUID, title, description, thumbnailURL, thumbnailPublicID string) (*models.Video, error)
	TogglePublish(ctx context.Context, id uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type watchHistoryRecorder interface {
	AddToWatchHistory(ctx context.Context, userID, videoID uuid.UUID) error
}

type VideoHandler struct {
	videoRepo videoRepository
	history   watchHistoryRecorder
	media     mediaStore
}

func NewVideoHandler(videoRepo videoRepository, history watchHistoryRecorder, media mediaStore) *VideoHandler {
	return &VideoHandler{videoRepo: videoRepo, history: history, media: media}
}

func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	q := models.VideoListQuery{
		Search:   r.URL.Query().Get("query"),
		SortBy:   r.URL.Query().Get("sortBy"),
		SortDesc: r.URL.Query().Get("sortType") != "asc",
		Page:     page,
		Limit:    limit,
	}

	if userIDStr := r.URL.Query().Get("userId"); userIDStr != "" {
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid userId")
			return
		}
		q.OwnerID = &userID
	}

	videos, total, err := h.videoRepo.List(r.Context(), q)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, models.NewPage(videos, total, page, limit), "Videos fetched successfully")
}

func (h *VideoHandler) Publish(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxVideoUpload)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	title := r.FormValue("title")
	description := r.FormValue("description")
	if title == "" || description == "" {
		respondError(w, http.StatusBadRequest, "Title and description are required")
		return
	}

	videoFile, videoHeader, err := r.FormFile("videoFile")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Video file is required")
		return
	}
	defer videoFile.Close()

	thumbFile, thumbHeader, err := r.FormFile("thumbnail")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Thumbnail file is required")
		return
	}
	defer thumbFile.Close()

	videoURL, videoKey, err := uploadMedia(r.Context(), h.media, videoFile, videoHeader, "videos")
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error while uploading video")
		return
	}

	thumbURL, thumbKey, err := uploadMedia(r.Context(), h.media, thumbFile, thumbHeader, "thumbnails")
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error while uploading thumbnail")
		return
	}

	duration, _ := strconv.ParseFloat(r.FormValue("duration"), 64)

	user := middleware.GetUser(r.Context())
	video := &models.Video{
		OwnerID:           user.ID,
		VideoURL:          videoURL,
		VideoPublicID:     videoKey,
		ThumbnailURL:      thumbURL,
		ThumbnailPublicID: thumbKey,
		Title:             title,
		Description:       description,
		Duration:          duration,
		IsPublished:       false,
	}

	if err := h.videoRepo.Create(r.Context(), video); err != nil {
		handleServiceError(w, err)
		return
	}

	respond(w, http.StatusCreated, video, "Video published successfully")
}

// GetByID serves the watch page: the denormalized view plus two coupled
// side effects — the view counter bump and, for signed-in viewers, the
// watch-history entry.
func (h *VideoHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	videoID, ok := uuidParam(w, r, "videoId")
	if !ok {
		return
	}

	viewerID := uuid.Nil
	viewer := middleware.GetUser(r.Context())
	if viewer != nil {
		viewerID = viewer.ID
	}

	view, err := h.videoRepo.GetView(r.Context(), videoID, viewerID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if err := h.videoRepo.IncrementViews(r.Context(), videoID); err != nil {
		handleServiceError(w, err)
		return
	}

	if viewer != nil {
		if err := h.history.AddToWatchHistory(r.Context(), viewer.ID, videoID); err != nil {
			handleServiceError(w, err)
			return
		}
	}

	respond(w, http.StatusOK, view, "Video fetched successfully")
}

func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	videoID, ok := uuidParam(w, r, "videoId")
	if !ok {
		return
	}

	video, forbidden := h.ownedVideo(w, r, videoID)
	if forbidden {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageUpload)
	if err := r.ParseMultipartForm(maxImageUpload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	title := r.FormValue("title")
	description := r.FormValue("description")
	if title == "" || description == "" {
		respondError(w, http.StatusBadRequest, "Title and description are required")
		return
	}

	thumbFile, thumbHeader, err := r.FormFile("thumbnail")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Thumbnail file is required")
		return
	}
	defer thumbFile.Close()

	// The old thumbnail goes first; if the media host refuses, the video
	// record is left untouched.
	if err := h.media.Delete(r.Context(), video.ThumbnailPublicID); err != nil {
		respondError(w, http.StatusInternalServerError, "Error while deleting old thumbnail")
		return
	}

	thumbURL, thumbKey, err := uploadMedia(r.Context(), h.media, thumbFile, thumbHeader, "thumbnails")
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error while uploading thumbnail")
		return
	}

	updated, err := h.videoRepo.UpdateMetadata(r.Context(), videoID, title, description, thumbURL, thumbKey)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, updated, "Video updated successfully")
}

// Delete destroys the media assets first; a media-host failure skips the
// database delete entirely.
func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	videoID, ok := uuidParam(w, r, "videoId")
	if !ok {
		return
	}

	video, forbidden := h.ownedVideo(w, r, videoID)
	if forbidden {
		return
	}

	if err := h.media.Delete(r.Context(), video.VideoPublicID); err != nil {
		respondError(w, http.StatusInternalServerError, "Error while deleting video")
		return
	}
	if err := h.media.Delete(r.Context(), video.ThumbnailPublicID); err != nil {
		respondError(w, http.StatusInternalServerError, "Error while deleting video")
		return
	}

	if err := h.videoRepo.Delete(r.Context(), videoID); err != nil {
		handleServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, nil, "Video deleted successfully")
}

func (h *VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	videoID, ok := uuidParam(w, r, "videoId")
	if !ok {
		return
	}

	if _, forbidden := h.ownedVideo(w, r, videoID); forbidden {
		return
	}

	isPublished, err := h.videoRepo.TogglePublish(r.Context(), videoID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, map[string]bool{"isPublished": isPublished}, "Publish status toggled successfully")
}

// ownedVideo loads the video and enforces the ownership gate, writing the
// error response itself when the caller may not proceed.
func (h *VideoHandler) ownedVideo(w http.ResponseWriter, r *http.Request, videoID uuid.UUID) (*models.Video, bool) {
	video, err := h.videoRepo.GetByID(r.Context(), videoID)
	if err != nil {
		handleServiceError(w, err)
		return nil, true
	}

	user := middleware.GetUser(r.Context())
	if video.OwnerID != user.ID {
		respondError(w, http.StatusUnauthorized, "You are not authorized to modify this video")
		return nil, true
	}
	return video, false
}
