package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dhruvrajput1/letmecook2.0/internal/models"
)

type stubPlaylistRepo struct {
	playlist *models.Playlist
	contains bool
	addErr   error
	added    bool
	removed  bool
	updated  bool
	deleted  bool
}

func (s *stubPlaylistRepo) Create(ctx context.Context, playlist *models.Playlist) error {
	playlist.ID = uuid.New()
	s.playlist = playlist
	return nil
}

func (s *stubPlaylistRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Playlist, error) {
	if s.playlist == nil || s.playlist.ID != id {
		return nil, pgx.ErrNoRows
	}
	return s.playlist, nil
}

func (s *stubPlaylistRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.PlaylistView, error) {
	return []models.PlaylistView{}, nil
}

func (s *stubPlaylistRepo) ContainsVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error) {
	return s.contains, nil
}

func (s *stubPlaylistRepo) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	if s.addErr != nil {
		return s.addErr
	}
	s.added = true
	return nil
}

func (s *stubPlaylistRepo) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	s.removed = true
	return nil
}

func (s *stubPlaylistRepo) Update(ctx context.Context, id uuid.UUID, name, description string) (*models.Playlist, error) {
	s.updated = true
	s.playlist.Name = name
	s.playlist.Description = description
	return s.playlist, nil
}

func (s *stubPlaylistRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.deleted = true
	return nil
}

func seedPlaylist(ownerID uuid.UUID) *models.Playlist {
	return &models.Playlist{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        "Watch later",
		Description: "Videos for the weekend",
	}
}

func addVideoRequest(playlist *models.Playlist, videoID uuid.UUID, caller *models.User) *http.Request {
	req := httptest.NewRequest(http.MethodPatch,
		"/api/v1/playlist/add/"+videoID.String()+"/"+playlist.ID.String(), nil)
	req = withURLParams(req, map[string]string{
		"playlistId": playlist.ID.String(),
		"videoId":    videoID.String(),
	})
	return withUser(req, caller)
}

func TestPlaylistAddVideo_DuplicateConflicts(t *testing.T) {
	owner := uuid.New()
	playlist := seedPlaylist(owner)
	repo := &stubPlaylistRepo{playlist: playlist, contains: true}
	h := NewPlaylistHandler(repo)

	rr := httptest.NewRecorder()
	h.AddVideo(rr, addVideoRequest(playlist, uuid.New(), &models.User{ID: owner}))

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, rr.Code)
	}
	if repo.added {
		t.Fatal("a duplicate video must not be added")
	}
}

func TestPlaylistAddVideo_Success(t *testing.T) {
	owner := uuid.New()
	playlist := seedPlaylist(owner)
	repo := &stubPlaylistRepo{playlist: playlist}
	h := NewPlaylistHandler(repo)

	rr := httptest.NewRecorder()
	h.AddVideo(rr, addVideoRequest(playlist, uuid.New(), &models.User{ID: owner}))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if !repo.added {
		t.Fatal("expected the video to be added")
	}
}

func TestPlaylistAddVideo_MissingVideoNotFound(t *testing.T) {
	owner := uuid.New()
	playlist := seedPlaylist(owner)
	repo := &stubPlaylistRepo{
		playlist: playlist,
		// The insert trips the videos foreign key when the id is unknown.
		addErr: &pgconn.PgError{Code: "23503", ConstraintName: "playlist_videos_video_id_fkey"},
	}
	h := NewPlaylistHandler(repo)

	rr := httptest.NewRecorder()
	h.AddVideo(rr, addVideoRequest(playlist, uuid.New(), &models.User{ID: owner}))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
	if repo.added {
		t.Fatal("a nonexistent video must not be added")
	}
}

func TestPlaylistAddVideo_NonOwnerRejected(t *testing.T) {
	playlist := seedPlaylist(uuid.New())
	repo := &stubPlaylistRepo{playlist: playlist}
	h := NewPlaylistHandler(repo)

	rr := httptest.NewRecorder()
	h.AddVideo(rr, addVideoRequest(playlist, uuid.New(), &models.User{ID: uuid.New()}))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
	if repo.added {
		t.Fatal("non-owners must not modify the playlist")
	}
}

func TestPlaylistUpdate_NonOwnerRejected(t *testing.T) {
	playlist := seedPlaylist(uuid.New())
	repo := &stubPlaylistRepo{playlist: playlist}
	h := NewPlaylistHandler(repo)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/playlist/"+playlist.ID.String(),
		strings.NewReader(`{"name":"Stolen","description":"Not mine"}`))
	req = withURLParams(req, map[string]string{"playlistId": playlist.ID.String()})
	req = withUser(req, &models.User{ID: uuid.New()})

	rr := httptest.NewRecorder()
	h.Update(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
	if repo.updated {
		t.Fatal("non-owners must not modify the playlist")
	}
}

func TestPlaylistDelete_Owner(t *testing.T) {
	owner := uuid.New()
	playlist := seedPlaylist(owner)
	repo := &stubPlaylistRepo{playlist: playlist}
	h := NewPlaylistHandler(repo)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/playlist/"+playlist.ID.String(), nil)
	req = withURLParams(req, map[string]string{"playlistId": playlist.ID.String()})
	req = withUser(req, &models.User{ID: owner})

	rr := httptest.NewRecorder()
	h.Delete(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if !repo.deleted {
		t.Fatal("expected the playlist to be deleted")
	}
}

func TestPlaylistCreate_BlankFieldsRejected(t *testing.T) {
	repo := &stubPlaylistRepo{}
	h := NewPlaylistHandler(repo)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/playlist/", strings.NewReader(`{"name":"","description":"  "}`))
	req = withUser(req, &models.User{ID: uuid.New()})

	rr := httptest.NewRecorder()
	h.Create(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	if repo.playlist != nil {
		t.Fatal("no playlist may be created from blank fields")
	}
}
