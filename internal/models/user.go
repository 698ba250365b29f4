package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName"`
	AvatarURL     string    `json:"avatar"`
	CoverImageURL *string   `json:"coverImage"`
	PasswordHash  string    `json:"-"`
	RefreshToken  *string   `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// OwnerSummary is the reduced projection of an account embedded in read
// views. It never carries credentials.
type OwnerSummary struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	AvatarURL string    `json:"avatar"`
}

// ChannelProfile is the viewer-relative channel page for an account.
type ChannelProfile struct {
	ID                        uuid.UUID `json:"id"`
	Username                  string    `json:"username"`
	FullName                  string    `json:"fullName"`
	AvatarURL                 string    `json:"avatar"`
	CoverImageURL             *string   `json:"coverImage"`
	SubscribersCount          int       `json:"subscribersCount"`
	ChannelsSubscribedToCount int       `json:"channelsSubscribedToCount"`
	IsSubscribed              bool      `json:"isSubscribed"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type UpdateAccountRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}
