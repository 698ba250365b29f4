package models

import (
	"time"

	"github.com/google/uuid"
)

type Playlist struct {
	ID          uuid.UUID   `json:"id"`
	OwnerID     uuid.UUID   `json:"owner"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	VideoIDs    []uuid.UUID `json:"videos"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// PlaylistView embeds the owner summary and video summaries for listing.
type PlaylistView struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Owner       OwnerSummary    `json:"owner"`
	Videos      []PlaylistVideo `json:"videos"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type PlaylistVideo struct {
	ID           uuid.UUID    `json:"id"`
	VideoURL     string       `json:"videoFile"`
	ThumbnailURL string       `json:"thumbnail"`
	Title        string       `json:"title"`
	Views        int64        `json:"views"`
	Owner        OwnerSummary `json:"owner"`
}

type PlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
