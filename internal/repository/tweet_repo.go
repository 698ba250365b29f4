package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dhruvrajput1/letmecook2.0/internal/models"
)

type TweetRepo struct {
	pool *pgxpool.Pool
}

func NewTweetRepo(pool *pgxpool.Pool) *TweetRepo {
	return &TweetRepo{pool: pool}
}

func (r *TweetRepo) Create(ctx context.Context, tweet *models.Tweet) error {
	query := `
		INSERT INTO tweets (id, owner_id, content)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`

	tweet.ID = uuid.New()

	return r.pool.QueryRow(ctx, query,
		tweet.ID, tweet.OwnerID, tweet.Content,
	).Scan(&tweet.CreatedAt, &tweet.UpdatedAt)
}

func (r *TweetRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tweet, error) {
	tweet := &models.Tweet{}
	query := `SELECT id, owner_id, content, created_at, updated_at FROM tweets WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&tweet.ID, &tweet.OwnerID, &tweet.Content, &tweet.CreatedAt, &tweet.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return tweet, nil
}

// ListByUser returns a user's tweets newest first with owner summary and
// viewer-relative like state.
func (r *TweetRepo) ListByUser(ctx context.Context, userID, viewerID uuid.UUID) ([]models.TweetView, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT t.id, t.content, t.created_at,
		       o.id, o.username, o.full_name, o.avatar_url,
		       (SELECT COUNT(*) FROM likes l WHERE l.tweet_id = t.id) AS likes_count,
		       EXISTS(SELECT 1 FROM likes l WHERE l.tweet_id = t.id AND l.liked_by = $2) AS is_liked
		FROM tweets t
		JOIN users o ON o.id = t.owner_id
		WHERE t.owner_id = $1
		ORDER BY t.created_at DESC`,
		userID, viewerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]models.TweetView, 0)
	for rows.Next() {
		var v models.TweetView
		if err := rows.Scan(
			&v.ID, &v.Content, &v.CreatedAt,
			&v.Owner.ID, &v.Owner.Username, &v.Owner.FullName, &v.Owner.AvatarURL,
			&v.LikesCount, &v.IsLiked,
		); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

func (r *TweetRepo) Update(ctx context.Context, id uuid.UUID, content string) (*models.Tweet, error) {
	tweet := &models.Tweet{}
	query := `
		UPDATE tweets SET content = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, owner_id, content, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, content, id).Scan(
		&tweet.ID, &tweet.OwnerID, &tweet.Content, &tweet.CreatedAt, &tweet.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return tweet, nil
}

func (r *TweetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM tweets WHERE id = $1", id)
	return err
}
