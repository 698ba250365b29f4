package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/dhruvrajput1/letmecook2.0/internal/models"
)

// stubLikeRepo mimics the real toggle: presence in the set flips each call.
type stubLikeRepo struct {
	liked map[string]bool
}

func newStubLikeRepo() *stubLikeRepo {
	return &stubLikeRepo{liked: map[string]bool{}}
}

func (s *stubLikeRepo) Toggle(ctx context.Context, actor uuid.UUID, target models.LikeTarget, targetID uuid.UUID) (bool, error) {
	key := actor.String() + string(target) + targetID.String()
	s.liked[key] = !s.liked[key]
	return s.liked[key], nil
}

func (s *stubLikeRepo) ListLikedVideos(ctx context.Context, actor uuid.UUID) ([]models.LikedVideo, error) {
	return []models.LikedVideo{}, nil
}

func toggleRequest(t *testing.T, h *LikeHandler, actor *models.User, videoID uuid.UUID) bool {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/likes/toggle/v/"+videoID.String(), nil)
	req = withURLParams(req, map[string]string{"videoId": videoID.String()})
	req = withUser(req, actor)

	rr := httptest.NewRecorder()
	h.ToggleVideo(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var payload models.APIResponse
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	data, ok := payload.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected data shape: %T", payload.Data)
	}
	liked, ok := data["isLiked"].(bool)
	if !ok {
		t.Fatal("response must carry the resulting isLiked state")
	}
	return liked
}

func TestLikeToggle_AlternatesState(t *testing.T) {
	h := NewLikeHandler(newStubLikeRepo())
	actor := &models.User{ID: uuid.New()}
	videoID := uuid.New()

	for i, want := range []bool{true, false, true} {
		if got := toggleRequest(t, h, actor, videoID); got != want {
			t.Fatalf("toggle %d: expected isLiked=%v, got %v", i+1, want, got)
		}
	}
}

func TestLikeToggle_PerActorState(t *testing.T) {
	h := NewLikeHandler(newStubLikeRepo())
	videoID := uuid.New()

	first := &models.User{ID: uuid.New()}
	second := &models.User{ID: uuid.New()}

	if !toggleRequest(t, h, first, videoID) {
		t.Fatal("first actor's toggle must turn the like on")
	}
	if !toggleRequest(t, h, second, videoID) {
		t.Fatal("second actor's state is independent of the first")
	}
	if toggleRequest(t, h, first, videoID) {
		t.Fatal("first actor's second toggle must turn the like off")
	}
}

func TestLikeToggle_InvalidTargetID(t *testing.T) {
	h := NewLikeHandler(newStubLikeRepo())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/likes/toggle/v/banana", nil)
	req = withURLParams(req, map[string]string{"videoId": "banana"})
	req = withUser(req, &models.User{ID: uuid.New()})

	rr := httptest.NewRecorder()
	h.ToggleVideo(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}
