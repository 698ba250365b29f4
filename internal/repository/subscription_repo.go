package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dhruvrajput1/letmecook2.0/internal/models"
)

type SubscriptionRepo struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepo(pool *pgxpool.Pool) *SubscriptionRepo {
	return &SubscriptionRepo{pool: pool}
}

// Toggle flips the (subscriber, channel) relation. The unique constraint on
// the pair absorbs concurrent inserts.
func (r *SubscriptionRepo) Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2",
		subscriberID, channelID,
	)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO subscriptions (id, subscriber_id, channel_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (subscriber_id, channel_id) DO NOTHING`,
		uuid.New(), subscriberID, channelID,
	)
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListSubscribers returns the account summaries subscribed to a channel.
func (r *SubscriptionRepo) ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]models.OwnerSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.username, u.full_name, u.avatar_url
		FROM subscriptions s
		JOIN users u ON u.id = s.subscriber_id
		WHERE s.channel_id = $1
		ORDER BY s.created_at DESC`,
		channelID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAccountSummaries(rows)
}

// ListSubscribedChannels returns the channels a user is subscribed to.
func (r *SubscriptionRepo) ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]models.OwnerSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.username, u.full_name, u.avatar_url
		FROM subscriptions s
		JOIN users u ON u.id = s.channel_id
		WHERE s.subscriber_id = $1
		ORDER BY s.created_at DESC`,
		subscriberID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAccountSummaries(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanAccountSummaries(rows rowScanner) ([]models.OwnerSummary, error) {
	summaries := make([]models.OwnerSummary, 0)
	for rows.Next() {
		var s models.OwnerSummary
		if err := rows.Scan(&s.ID, &s.Username, &s.FullName, &s.AvatarURL); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
