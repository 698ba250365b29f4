package models

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID        uuid.UUID `json:"id"`
	VideoID   uuid.UUID `json:"video"`
	OwnerID   uuid.UUID `json:"owner"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CommentView is a comment with its owner summary and like state folded in.
type CommentView struct {
	ID         uuid.UUID    `json:"id"`
	Content    string       `json:"content"`
	CreatedAt  time.Time    `json:"createdAt"`
	Owner      OwnerSummary `json:"owner"`
	LikesCount int          `json:"likesCount"`
	IsLiked    bool         `json:"isLiked"`
}

type AddCommentRequest struct {
	Content string `json:"content"`
}

type UpdateCommentRequest struct {
	Content string `json:"content"`
}
