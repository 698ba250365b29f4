package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dhruvrajput1/letmecook2.0/internal/models"
)

type LikeRepo struct {
	pool *pgxpool.Pool
}

func NewLikeRepo(pool *pgxpool.Pool) *LikeRepo {
	return &LikeRepo{pool: pool}
}

var likeTargetColumns = map[models.LikeTarget]string{
	models.LikeTargetVideo:   "video_id",
	models.LikeTargetComment: "comment_id",
	models.LikeTargetTweet:   "tweet_id",
}

// Toggle flips the like state for (actor, target). Existing row deleted →
// off; no row → insert → on. The partial unique indexes absorb concurrent
// inserts for the same pair, so two racing toggles cannot leave duplicates.
func (r *LikeRepo) Toggle(ctx context.Context, actor uuid.UUID, target models.LikeTarget, targetID uuid.UUID) (bool, error) {
	col, ok := likeTargetColumns[target]
	if !ok {
		return false, fmt.Errorf("unknown like target %q", target)
	}

	tag, err := r.pool.Exec(ctx,
		fmt.Sprintf("DELETE FROM likes WHERE liked_by = $1 AND %s = $2", col),
		actor, targetID,
	)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	_, err = r.pool.Exec(ctx,
		fmt.Sprintf(`INSERT INTO likes (id, liked_by, %s) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`, col),
		uuid.New(), actor, targetID,
	)
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListLikedVideos returns the videos the actor has liked, newest like first,
// with each video's owner summary joined in.
func (r *LikeRepo) ListLikedVideos(ctx context.Context, actor uuid.UUID) ([]models.LikedVideo, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT v.id, v.video_url, v.thumbnail_url, v.title, v.description, v.duration,
		       v.views, v.created_at,
		       o.id, o.username, o.full_name, o.avatar_url
		FROM likes l
		JOIN videos v ON v.id = l.video_id
		JOIN users o ON o.id = v.owner_id
		WHERE l.liked_by = $1 AND l.video_id IS NOT NULL
		ORDER BY l.created_at DESC`,
		actor,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	videos := make([]models.LikedVideo, 0)
	for rows.Next() {
		var v models.LikedVideo
		if err := rows.Scan(
			&v.ID, &v.VideoURL, &v.ThumbnailURL, &v.Title, &v.Description, &v.Duration,
			&v.Views, &v.CreatedAt,
			&v.Owner.ID, &v.Owner.Username, &v.Owner.FullName, &v.Owner.AvatarURL,
		); err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}
