package models

import (
	"time"

	"github.com/google/uuid"
)

// LikeTarget discriminates what a like row points at. Exactly one target
// column is set per row.
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetTweet   LikeTarget = "tweet"
)

// LikedVideo is one row of the viewer's liked-videos listing.
type LikedVideo struct {
	ID           uuid.UUID    `json:"id"`
	VideoURL     string       `json:"videoFile"`
	ThumbnailURL string       `json:"thumbnail"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Duration     float64      `json:"duration"`
	Views        int64        `json:"views"`
	CreatedAt    time.Time    `json:"createdAt"`
	Owner        OwnerSummary `json:"ownerDetails"`
}
