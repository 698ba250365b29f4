package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dhruvrajput1/letmecook2.0/internal/models"
)

type stubResolver struct {
	user *models.User
}

func (s *stubResolver) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, pgx.ErrNoRows
	}
	return s.user, nil
}

func newTestJWTAuth(user *models.User) *JWTAuth {
	return NewJWTAuth("access-secret", "refresh-secret", 15*time.Minute, 10*24*time.Hour, &stubResolver{user: user})
}

func testUser() *models.User {
	refresh := "stored-refresh-token"
	return &models.User{
		ID:           uuid.New(),
		Username:     "chaiaurcode",
		Email:        "chai@example.com",
		FullName:     "Chai Aur Code",
		PasswordHash: "$2a$12$notarealhash",
		RefreshToken: &refresh,
	}
}

func TestExtractAccessToken_CookieTakesPrecedence(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "cookie-token"})
	req.Header.Set("Authorization", "Bearer header-token")

	if got := ExtractAccessToken(req); got != "cookie-token" {
		t.Fatalf("expected cookie token, got %q", got)
	}
}

func TestExtractAccessToken_FallsBackToBearerHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer header-token")

	if got := ExtractAccessToken(req); got != "header-token" {
		t.Fatalf("expected header token, got %q", got)
	}
}

func TestExtractAccessToken_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := ExtractAccessToken(req); got != "" {
		t.Fatalf("expected empty token, got %q", got)
	}

	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	if got := ExtractAccessToken(req); got != "" {
		t.Fatalf("expected empty token for non-Bearer scheme, got %q", got)
	}
}

func TestMiddleware_MissingToken(t *testing.T) {
	auth := newTestJWTAuth(testUser())

	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a token")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestMiddleware_InvalidToken(t *testing.T) {
	auth := newTestJWTAuth(testUser())

	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a bad token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestMiddleware_WrongSigningSecret(t *testing.T) {
	user := testUser()
	auth := newTestJWTAuth(user)

	other := NewJWTAuth("other-secret", "other-refresh", 15*time.Minute, time.Hour, nil)
	token, err := other.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a foreign-signed token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestMiddleware_ExpiredToken(t *testing.T) {
	user := testUser()
	expired := NewJWTAuth("access-secret", "refresh-secret", -time.Minute, time.Hour, nil)
	token, err := expired.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	auth := newTestJWTAuth(user)
	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with an expired token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestMiddleware_ResolvesUserAndStripsCredentials(t *testing.T) {
	user := testUser()
	auth := newTestJWTAuth(user)

	token, err := auth.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	var resolved *models.User
	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resolved = GetUser(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: token})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if resolved == nil || resolved.ID != user.ID {
		t.Fatal("expected resolved user on context")
	}
	if resolved.PasswordHash != "" || resolved.RefreshToken != nil {
		t.Fatal("credential fields must not travel on the context")
	}
}

func TestMiddleware_DeletedAccount(t *testing.T) {
	user := testUser()
	auth := newTestJWTAuth(nil) // resolver knows no one

	token, err := auth.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for a deleted account")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestOptionalMiddleware_AnonymousContinues(t *testing.T) {
	auth := newTestJWTAuth(testUser())

	var called bool
	handler := auth.OptionalMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if GetUser(r.Context()) != nil {
			t.Fatal("anonymous request must carry no user")
		}
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if !called {
		t.Fatal("handler must run for anonymous requests")
	}
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}

func TestOptionalMiddleware_BadTokenContinuesAnonymously(t *testing.T) {
	auth := newTestJWTAuth(testUser())

	var called bool
	handler := auth.OptionalMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if GetUser(r.Context()) != nil {
			t.Fatal("invalid token must degrade to anonymous")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if !called {
		t.Fatal("handler must run despite the bad token")
	}
}

func TestOptionalMiddleware_ValidTokenAttachesUser(t *testing.T) {
	user := testUser()
	auth := newTestJWTAuth(user)

	token, err := auth.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	handler := auth.OptionalMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resolved := GetUser(r.Context())
		if resolved == nil || resolved.ID != user.ID {
			t.Fatal("expected resolved user on context")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: token})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}

func TestGenerateRefreshToken_UniquePerIssue(t *testing.T) {
	auth := newTestJWTAuth(nil)
	userID := uuid.New()

	// Back-to-back issues land within the same second; the tokens must
	// still differ so rotation can distinguish old from new.
	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		token, err := auth.GenerateRefreshToken(userID)
		if err != nil {
			t.Fatalf("failed to sign refresh token: %v", err)
		}
		if seen[token] {
			t.Fatalf("issue %d produced a duplicate refresh token", i+1)
		}
		seen[token] = true

		parsed, err := auth.ParseRefreshToken(token)
		if err != nil {
			t.Fatalf("failed to parse refresh token: %v", err)
		}
		if parsed != userID {
			t.Fatalf("expected user id %s, got %s", userID, parsed)
		}
	}
}

func TestRefreshTokenParse_RoundTrip(t *testing.T) {
	auth := newTestJWTAuth(nil)
	userID := uuid.New()

	token, err := auth.GenerateRefreshToken(userID)
	if err != nil {
		t.Fatalf("failed to sign refresh token: %v", err)
	}

	parsed, err := auth.ParseRefreshToken(token)
	if err != nil {
		t.Fatalf("failed to parse refresh token: %v", err)
	}
	if parsed != userID {
		t.Fatalf("expected user id %s, got %s", userID, parsed)
	}

	// An access token must not pass as a refresh token: different secret.
	access, err := auth.GenerateAccessToken(&models.User{ID: userID})
	if err != nil {
		t.Fatalf("failed to sign access token: %v", err)
	}
	if _, err := auth.ParseRefreshToken(access); err == nil {
		t.Fatal("access token must not verify against the refresh secret")
	}
}
