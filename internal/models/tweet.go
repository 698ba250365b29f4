package models

import (
	"time"

	"github.com/google/uuid"
)

type Tweet struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type TweetView struct {
	ID         uuid.UUID    `json:"id"`
	Content    string       `json:"content"`
	CreatedAt  time.Time    `json:"createdAt"`
	Owner      OwnerSummary `json:"owner"`
	LikesCount int          `json:"likesCount"`
	IsLiked    bool         `json:"isLiked"`
}

type TweetRequest struct {
	Content string `json:"content"`
}
