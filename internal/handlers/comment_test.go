package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dhruvrajput1/letmecook2.0/internal/models"
)

type stubCommentRepo struct {
	comment *models.Comment
	updated bool
	deleted bool
}

func (s *stubCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	comment.ID = uuid.New()
	s.comment = comment
	return nil
}

func (s *stubCommentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	if s.comment == nil || s.comment.ID != id {
		return nil, pgx.ErrNoRows
	}
	return s.comment, nil
}

func (s *stubCommentRepo) ListByVideo(ctx context.Context, videoID, viewerID uuid.UUID, page, limit int) ([]models.CommentView, int, error) {
	return nil, 0, nil
}

func (s *stubCommentRepo) Update(ctx context.Context, id uuid.UUID, content string) (*models.Comment, error) {
	s.updated = true
	s.comment.Content = content
	return s.comment, nil
}

func (s *stubCommentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.deleted = true
	return nil
}

func TestCommentAdd_EmptyContentRejected(t *testing.T) {
	repo := &stubCommentRepo{}
	h := NewCommentHandler(repo)

	videoID := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/comments/"+videoID.String(), strings.NewReader(`{"content":"   "}`))
	req = withURLParams(req, map[string]string{"videoId": videoID.String()})
	req = withUser(req, &models.User{ID: uuid.New()})

	rr := httptest.NewRecorder()
	h.Add(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	if repo.comment != nil {
		t.Fatal("no comment may be created from blank content")
	}
}

func TestCommentAdd_Success(t *testing.T) {
	repo := &stubCommentRepo{}
	h := NewCommentHandler(repo)

	author := &models.User{ID: uuid.New()}
	videoID := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/comments/"+videoID.String(), strings.NewReader(`{"content":"great video"}`))
	req = withURLParams(req, map[string]string{"videoId": videoID.String()})
	req = withUser(req, author)

	rr := httptest.NewRecorder()
	h.Add(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, rr.Code)
	}
	if repo.comment == nil || repo.comment.OwnerID != author.ID || repo.comment.VideoID != videoID {
		t.Fatal("comment must be attributed to the caller and the video")
	}
}

// Comment moderation is open: any authenticated user may edit or remove any
// comment, so no ownership rejection happens here.
func TestCommentUpdate_NonOwnerAllowed(t *testing.T) {
	comment := &models.Comment{ID: uuid.New(), OwnerID: uuid.New(), Content: "original"}
	repo := &stubCommentRepo{comment: comment}
	h := NewCommentHandler(repo)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/comments/c/"+comment.ID.String(), strings.NewReader(`{"content":"edited"}`))
	req = withURLParams(req, map[string]string{"commentId": comment.ID.String()})
	req = withUser(req, &models.User{ID: uuid.New()}) // not the author

	rr := httptest.NewRecorder()
	h.Update(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if !repo.updated || comment.Content != "edited" {
		t.Fatal("expected the comment content to change")
	}
}

func TestCommentDelete_NonOwnerAllowed(t *testing.T) {
	comment := &models.Comment{ID: uuid.New(), OwnerID: uuid.New(), Content: "spam"}
	repo := &stubCommentRepo{comment: comment}
	h := NewCommentHandler(repo)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/comments/c/"+comment.ID.String(), nil)
	req = withURLParams(req, map[string]string{"commentId": comment.ID.String()})
	req = withUser(req, &models.User{ID: uuid.New()})

	rr := httptest.NewRecorder()
	h.Delete(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if !repo.deleted {
		t.Fatal("expected the comment to be deleted")
	}
}

func TestCommentDelete_MissingComment(t *testing.T) {
	repo := &stubCommentRepo{}
	h := NewCommentHandler(repo)

	commentID := uuid.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/comments/c/"+commentID.String(), nil)
	req = withURLParams(req, map[string]string{"commentId": commentID.String()})
	req = withUser(req, &models.User{ID: uuid.New()})

	rr := httptest.NewRecorder()
	h.Delete(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
	if repo.deleted {
		t.Fatal("nothing to delete for a missing comment")
	}
}
