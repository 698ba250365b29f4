package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dhruvrajput1/letmecook2.0/internal/models"
)

type contextKey string

const UserKey contextKey = "user"

const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// userResolver looks up the live account behind a verified token.
type userResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// JWTAuth issues and verifies the access/refresh token pair and gates
// requests on a valid access token.
type JWTAuth struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	users         userResolver
}

func NewJWTAuth(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration, users userResolver) *JWTAuth {
	return &JWTAuth{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		users:         users,
	}
}

func (j *JWTAuth) AccessTTL() time.Duration  { return j.accessTTL }
func (j *JWTAuth) RefreshTTL() time.Duration { return j.refreshTTL }

// GenerateAccessToken signs a short-lived token carrying the identity fields
// the frontend renders without a second fetch.
func (j *JWTAuth) GenerateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":   user.ID.String(),
		"username":  user.Username,
		"email":     user.Email,
		"full_name": user.FullName,
		"exp":       now.Add(j.accessTTL).Unix(),
		"iat":       now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.accessSecret)
}

// GenerateRefreshToken signs a long-lived token carrying only the identity
// id. The jti claim makes every issued token unique, so rotation always
// produces a value distinct from the one it replaces even within the same
// second.
func (j *JWTAuth) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"jti":     uuid.NewString(),
		"exp":     now.Add(j.refreshTTL).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.refreshSecret)
}

func (j *JWTAuth) ParseAccessToken(tokenStr string) (uuid.UUID, error) {
	return parseUserID(tokenStr, j.accessSecret)
}

func (j *JWTAuth) ParseRefreshToken(tokenStr string) (uuid.UUID, error) {
	return parseUserID(tokenStr, j.refreshSecret)
}

func parseUserID(tokenStr string, secret []byte) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, errors.New("invalid token claims")
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing user ID in token")
	}

	return uuid.Parse(userIDStr)
}

// ExtractAccessToken pulls the access token off the request; the cookie
// takes precedence over the Authorization header.
func ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// Middleware rejects requests without a valid access token. The embedded id
// is re-resolved to a live account on every request; credential fields never
// travel on the context.
func (j *JWTAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := ExtractAccessToken(r)
		if tokenStr == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		user, err := j.resolve(r.Context(), tokenStr)
		if err != nil {
			if strings.Contains(err.Error(), "expired") {
				writeError(w, http.StatusUnauthorized, "Token has expired")
			} else {
				writeError(w, http.StatusUnauthorized, "Invalid access token")
			}
			return
		}

		ctx := context.WithValue(r.Context(), UserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalMiddleware attaches the caller identity when a valid token is
// presented and continues anonymously otherwise. Read views use it so
// viewer-relative flags come back false instead of the request failing.
func (j *JWTAuth) OptionalMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := ExtractAccessToken(r)
		if tokenStr == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := j.resolve(r.Context(), tokenStr)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), UserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (j *JWTAuth) resolve(ctx context.Context, tokenStr string) (*models.User, error) {
	userID, err := j.ParseAccessToken(tokenStr)
	if err != nil {
		return nil, err
	}

	user, err := j.users.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.New("account no longer exists")
	}

	// The context carries an identity projection, never credentials.
	projection := *user
	projection.PasswordHash = ""
	projection.RefreshToken = nil
	return &projection, nil
}

// GetUser extracts the resolved caller from the request context. Nil means
// the request is anonymous.
func GetUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(UserKey).(*models.User)
	return user
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.APIErrorResponse{
		StatusCode: status,
		Success:    false,
		Message:    message,
		Errors:     []string{},
	})
}
