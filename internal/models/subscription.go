package models

import (
	"time"

	"github.com/google/uuid"
)

type Subscription struct {
	ID           uuid.UUID `json:"id"`
	SubscriberID uuid.UUID `json:"subscriber"`
	ChannelID    uuid.UUID `json:"channel"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ChannelStats is the owner-facing dashboard aggregate.
type ChannelStats struct {
	TotalVideos      int   `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalSubscribers int   `json:"totalSubscribers"`
	TotalLikes       int   `json:"totalLikes"`
}
