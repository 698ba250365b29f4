package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/dhruvrajput1/letmecook2.0/internal/middleware"
	"github.com/dhruvrajput1/letmecook2.0/internal/models"
)

// userStore is the credential-store surface the auth flows need.
type userStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	SetRefreshToken(ctx context.Context, userID uuid.UUID, token *string) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

type AuthService struct {
	users userStore
	jwt   *middleware.JWTAuth
}

func NewAuthService(users userStore, jwt *middleware.JWTAuth) *AuthService {
	return &AuthService{users: users, jwt: jwt}
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type RegisterParams struct {
	Username      string
	Email         string
	Password      string
	FullName      string
	AvatarURL     string
	CoverImageURL *string
}

// Register creates an account. Identity fields are case-normalized; the
// password is hashed here and nowhere else.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (*models.User, error) {
	fieldErrors := []string{}
	if strings.TrimSpace(p.Username) == "" {
		fieldErrors = append(fieldErrors, "username is required")
	}
	if !emailRegex.MatchString(p.Email) {
		fieldErrors = append(fieldErrors, "invalid email format")
	}
	if strings.TrimSpace(p.Password) == "" {
		fieldErrors = append(fieldErrors, "password is required")
	}
	if strings.TrimSpace(p.FullName) == "" {
		fieldErrors = append(fieldErrors, "full name is required")
	}
	if p.AvatarURL == "" {
		fieldErrors = append(fieldErrors, "avatar is required")
	}
	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Message: "All fields are required", Errors: fieldErrors}
	}

	username := strings.ToLower(strings.TrimSpace(p.Username))
	email := strings.ToLower(strings.TrimSpace(p.Email))

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &ConflictError{Message: "User already exists"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:      username,
		Email:         email,
		FullName:      strings.TrimSpace(p.FullName),
		AvatarURL:     p.AvatarURL,
		CoverImageURL: p.CoverImageURL,
		PasswordHash:  string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates by username or email and rotates the token pair.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.User, *models.AuthTokens, error) {
	if req.Username == "" && req.Email == "" {
		return nil, nil, &ValidationError{Message: "username or email is required"}
	}

	user, err := s.users.GetByUsernameOrEmail(ctx,
		strings.ToLower(req.Username), strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, &NotFoundError{Message: "User not found"}
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, &UnauthorizedError{Message: "Invalid credentials"}
	}

	tokens, err := s.rotate(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// Refresh verifies the presented refresh token, requires it to byte-match
// the single stored value, and rotates the pair. Any earlier refresh token
// dies with the rotation.
func (s *AuthService) Refresh(ctx context.Context, presented string) (*models.AuthTokens, error) {
	if presented == "" {
		return nil, &UnauthorizedError{Message: "Unauthorized request"}
	}

	userID, err := s.jwt.ParseRefreshToken(presented)
	if err != nil {
		return nil, &UnauthorizedError{Message: "Invalid refresh token"}
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, &UnauthorizedError{Message: "Invalid refresh token"}
	}

	if user.RefreshToken == nil || *user.RefreshToken != presented {
		return nil, &UnauthorizedError{Message: "Refresh token is expired or used"}
	}

	return s.rotate(ctx, user)
}

// Logout clears the stored refresh token so any outstanding one is rejected.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.users.SetRefreshToken(ctx, userID, nil)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req models.ChangePasswordRequest) error {
	if strings.TrimSpace(req.NewPassword) == "" {
		return &ValidationError{Message: "New password is required"}
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &NotFoundError{Message: "User not found"}
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return &ValidationError{Message: "Invalid old password"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 12)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.users.UpdatePassword(ctx, userID, string(hash))
}

// rotate issues a fresh pair and persists the refresh token as the sole
// valid one for the account.
func (s *AuthService) rotate(ctx context.Context, user *models.User) (*models.AuthTokens, error) {
	accessToken, err := s.jwt.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwt.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.users.SetRefreshToken(ctx, user.ID, &refreshToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &models.AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
