package handlers

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dhruvrajput1/letmecook2.0/internal/middleware"
	"github.com/dhruvrajput1/letmecook2.0/internal/models"
	"github.com/dhruvrajput1/letmecook2.0/internal/services"
)

const maxImageUpload = 10 * 1024 * 1024 // 10MB per image

type authFlows interface {
	Register(ctx context.Context, p services.RegisterParams) (*models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.User, *models.AuthTokens, error)
	Refresh(ctx context.Context, presented string) (*models.AuthTokens, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	ChangePassword(ctx context.Context, userID uuid.UUID, req models.ChangePasswordRequest) error
}

type userRepository interface {
	UpdateAccount(ctx context.Context, userID uuid.UUID, fullName, email string) (*models.User, error)
	UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) (*models.User, error)
	UpdateCoverImage(ctx context.Context, userID uuid.UUID, coverImageURL string) (*models.User, error)
	GetChannelProfile(ctx context.Context, username string, viewerID uuid.UUID) (*models.ChannelProfile, error)
	GetWatchHistory(ctx context.Context, userID uuid.UUID) ([]models.VideoListItem, error)
}

type mediaStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// CookieConfig controls the auth cookie pair set on login and refresh.
type CookieConfig struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type UserHandler struct {
	auth     authFlows
	userRepo userRepository
	media    mediaStore
	cookies  CookieConfig
}

func NewUserHandler(auth authFlows, userRepo userRepository, media mediaStore, cookies CookieConfig) *UserHandler {
	return &UserHandler{auth: auth, userRepo: userRepo, media: media, cookies: cookies}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 2*maxImageUpload)
	if err := r.ParseMultipartForm(2 * maxImageUpload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	avatarURL, _, ok := h.uploadFormFile(w, r, "avatar", "avatars")
	if !ok {
		return
	}

	var coverImageURL *string
	if _, _, err := r.FormFile("coverImage"); err == nil {
		url, _, ok := h.uploadFormFile(w, r, "coverImage", "covers")
		if !ok {
			return
		}
		coverImageURL = &url
	}

	user, err := h.auth.Register(r.Context(), services.RegisterParams{
		Username:      r.FormValue("username"),
		Email:         r.FormValue("email"),
		Password:      r.FormValue("password"),
		FullName:      r.FormValue("fullName"),
		AvatarURL:     avatarURL,
		CoverImageURL: coverImageURL,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respond(w, http.StatusCreated, user, "User registered successfully")
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, tokens, err := h.auth.Login(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.setAuthCookies(w, tokens)
	respond(w, http.StatusOK, map[string]any{
		"user":         user,
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	}, "Logged in successfully")
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	if err := h.auth.Logout(r.Context(), user.ID); err != nil {
		handleServiceError(w, err)
		return
	}

	h.clearAuthCookies(w)
	respond(w, http.StatusOK, struct{}{}, "User logged out successfully")
}

// Refresh accepts the refresh token from the cookie or the body, in that
// order, and re-issues both cookies on success.
func (h *UserHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	presented := ""
	if cookie, err := r.Cookie(middleware.RefreshTokenCookie); err == nil {
		presented = cookie.Value
	}
	if presented == "" {
		var req models.RefreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			presented = req.RefreshToken
		}
	}

	tokens, err := h.auth.Refresh(r.Context(), presented)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.setAuthCookies(w, tokens)
	respond(w, http.StatusOK, tokens, "Access token refreshed successfully")
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user := middleware.GetUser(r.Context())
	if err := h.auth.ChangePassword(r.Context(), user.ID, req); err != nil {
		handleServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, struct{}{}, "Password updated successfully")
}

func (h *UserHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, middleware.GetUser(r.Context()), "Current user fetched successfully")
}

func (h *UserHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FullName == "" || req.Email == "" {
		respondError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	user := middleware.GetUser(r.Context())
	updated, err := h.userRepo.UpdateAccount(r.Context(), user.ID, req.FullName, req.Email)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, updated, "Account details updated successfully")
}

func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "avatar", "avatars", h.userRepo.UpdateAvatar, "User avatar updated successfully")
}

func (h *UserHandler) UpdateCoverImage(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "coverImage", "covers", h.userRepo.UpdateCoverImage, "User cover image updated successfully")
}

func (h *UserHandler) updateImage(
	w http.ResponseWriter,
	r *http.Request,
	field, folder string,
	update func(ctx context.Context, userID uuid.UUID, url string) (*models.User, error),
	message string,
) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageUpload)
	if err := r.ParseMultipartForm(maxImageUpload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	url, _, ok := h.uploadFormFile(w, r, field, folder)
	if !ok {
		return
	}

	user := middleware.GetUser(r.Context())
	updated, err := update(r.Context(), user.ID, url)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, updated, message)
}

func (h *UserHandler) ChannelProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		respondError(w, http.StatusBadRequest, "Username is required")
		return
	}

	viewerID := uuid.Nil
	if viewer := middleware.GetUser(r.Context()); viewer != nil {
		viewerID = viewer.ID
	}

	profile, err := h.userRepo.GetChannelProfile(r.Context(), username, viewerID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, profile, "User channel fetched successfully")
}

func (h *UserHandler) WatchHistory(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	history, err := h.userRepo.GetWatchHistory(r.Context(), user.ID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, history, "User watch history fetched successfully")
}

// uploadFormFile pushes one multipart file to the media store and returns
// the public URL and storage key. A missing file or upload failure is
// reported to the client and ok=false returned.
func (h *UserHandler) uploadFormFile(w http.ResponseWriter, r *http.Request, field, folder string) (url, key string, ok bool) {
	file, header, err := r.FormFile(field)
	if err != nil {
		respondError(w, http.StatusBadRequest, field+" file is required")
		return "", "", false
	}
	defer file.Close()

	url, key, err = uploadMedia(r.Context(), h.media, file, header, folder)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error while uploading "+field)
		return "", "", false
	}
	return url, key, true
}

// uploadMedia stores a multipart file under a fresh key in the given folder.
func uploadMedia(ctx context.Context, media mediaStore, file multipart.File, header *multipart.FileHeader, folder string) (url, key string, err error) {
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key = folder + "/" + uuid.New().String() + filepath.Ext(header.Filename)
	url, err = media.Upload(ctx, key, file, contentType)
	return url, key, err
}

func (h *UserHandler) setAuthCookies(w http.ResponseWriter, tokens *models.AuthTokens) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    tokens.AccessToken,
		Path:     "/",
		MaxAge:   int(h.cookies.AccessTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteNoneMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.RefreshTokenCookie,
		Value:    tokens.RefreshToken,
		Path:     "/",
		MaxAge:   int(h.cookies.RefreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteNoneMode,
	})
}

func (h *UserHandler) clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{middleware.AccessTokenCookie, middleware.RefreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.cookies.Secure,
			SameSite: http.SameSiteNoneMode,
		})
	}
}
