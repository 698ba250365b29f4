package models

import (
	"time"

	"github.com/google/uuid"
)

type Video struct {
	ID                uuid.UUID `json:"id"`
	OwnerID           uuid.UUID `json:"owner"`
	VideoURL          string    `json:"videoFile"`
	VideoPublicID     string    `json:"-"`
	ThumbnailURL      string    `json:"thumbnail"`
	ThumbnailPublicID string    `json:"-"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Duration          float64   `json:"duration"`
	Views             int64     `json:"views"`
	IsPublished       bool      `json:"isPublished"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// VideoOwner extends the owner summary with channel stats relative to the
// viewer, as shown on a watch page.
type VideoOwner struct {
	OwnerSummary
	SubscribersCount int  `json:"subscribersCount"`
	IsSubscribed     bool `json:"isSubscribed"`
}

// VideoView is the denormalized watch-page projection of a single video.
type VideoView struct {
	ID          uuid.UUID  `json:"id"`
	VideoURL    string     `json:"videoFile"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Duration    float64    `json:"duration"`
	Views       int64      `json:"views"`
	CreatedAt   time.Time  `json:"createdAt"`
	Owner       VideoOwner `json:"owner"`
	LikesCount  int        `json:"likesCount"`
	IsLiked     bool       `json:"isLiked"`
}

// VideoListItem is one row of the video listing, with the owner folded in.
type VideoListItem struct {
	ID           uuid.UUID    `json:"id"`
	VideoURL     string       `json:"videoFile"`
	ThumbnailURL string       `json:"thumbnail"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Duration     float64      `json:"duration"`
	Views        int64        `json:"views"`
	IsPublished  bool         `json:"isPublished"`
	CreatedAt    time.Time    `json:"createdAt"`
	Owner        OwnerSummary `json:"owner"`
}

// VideoListQuery captures the listing filters after validation.
type VideoListQuery struct {
	Search   string
	OwnerID  *uuid.UUID
	SortBy   string // one of "views", "created_at", "duration"
	SortDesc bool
	Page     int
	Limit    int
}

type UpdateVideoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
