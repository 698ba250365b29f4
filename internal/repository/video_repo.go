package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dhruvrajput1/letmecook2.0/internal/models"
)

type VideoRepo struct {
	pool *pgxpool.Pool
}

func NewVideoRepo(pool *pgxpool.Pool) *VideoRepo {
	return &VideoRepo{pool: pool}
}

// sortColumns is the allow-list for the listing endpoint. Anything else
// falls back to created_at.
var sortColumns = map[string]string{
	"views":     "v.views",
	"createdAt": "v.created_at",
	"duration":  "v.duration",
}

func (r *VideoRepo) Create(ctx context.Context, video *models.Video) error {
	query := `
		INSERT INTO videos (id, owner_id, video_url, video_public_id, thumbnail_url, thumbnail_public_id,
		                    title, description, duration, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING views, created_at, updated_at`

	video.ID = uuid.New()

	return r.pool.QueryRow(ctx, query,
		video.ID, video.OwnerID, video.VideoURL, video.VideoPublicID,
		video.ThumbnailURL, video.ThumbnailPublicID,
		video.Title, video.Description, video.Duration, video.IsPublished,
	).Scan(&video.Views, &video.CreatedAt, &video.UpdatedAt)
}

func (r *VideoRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	video := &models.Video{}
	query := `
		SELECT id, owner_id, video_url, video_public_id, thumbnail_url, thumbnail_public_id,
		       title, description, duration, views, is_published, created_at, updated_at
		FROM videos WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&video.ID, &video.OwnerID, &video.VideoURL, &video.VideoPublicID,
		&video.ThumbnailURL, &video.ThumbnailPublicID,
		&video.Title, &video.Description, &video.Duration, &video.Views,
		&video.IsPublished, &video.CreatedAt, &video.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return video, nil
}

// GetView assembles the watch-page projection for one video: owner summary
// with subscriber stats, like count, and viewer-relative flags. viewerID may
// be uuid.Nil, which yields isLiked/isSubscribed = false.
func (r *VideoRepo) GetView(ctx context.Context, id, viewerID uuid.UUID) (*models.VideoView, error) {
	query := `
		SELECT v.id, v.video_url, v.title, v.description, v.duration, v.views, v.created_at,
		       o.id, o.username, o.full_name, o.avatar_url,
		       (SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = o.id) AS subscribers_count,
		       EXISTS(SELECT 1 FROM subscriptions s WHERE s.channel_id = o.id AND s.subscriber_id = $2) AS is_subscribed,
		       (SELECT COUNT(*) FROM likes l WHERE l.video_id = v.id) AS likes_count,
		       EXISTS(SELECT 1 FROM likes l WHERE l.video_id = v.id AND l.liked_by = $2) AS is_liked
		FROM videos v
		JOIN users o ON o.id = v.owner_id
		WHERE v.id = $1`

	view := &models.VideoView{}
	err := r.pool.QueryRow(ctx, query, id, viewerID).Scan(
		&view.ID, &view.VideoURL, &view.Title, &view.Description, &view.Duration,
		&view.Views, &view.CreatedAt,
		&view.Owner.ID, &view.Owner.Username, &view.Owner.FullName, &view.Owner.AvatarURL,
		&view.Owner.SubscribersCount, &view.Owner.IsSubscribed,
		&view.LikesCount, &view.IsLiked,
	)
	if err != nil {
		return nil, err
	}
	return view, nil
}

// IncrementViews bumps the view counter by exactly one.
func (r *VideoRepo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "UPDATE videos SET views = views + 1 WHERE id = $1", id)
	return err
}

// List returns published videos matching the query filters, paginated, with
// the owner summary joined in.
func (r *VideoRepo) List(ctx context.Context, q models.VideoListQuery) ([]models.VideoListItem, int, error) {
	where := "v.is_published = TRUE"
	args := []any{}
	argN := 1

	if q.Search != "" {
		where += fmt.Sprintf(" AND (v.title ILIKE $%d OR v.description ILIKE $%d)", argN, argN)
		args = append(args, "%"+q.Search+"%")
		argN++
	}
	if q.OwnerID != nil {
		where += fmt.Sprintf(" AND v.owner_id = $%d", argN)
		args = append(args, *q.OwnerID)
		argN++
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM videos v WHERE " + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sortCol, ok := sortColumns[q.SortBy]
	if !ok {
		sortCol = "v.created_at"
		q.SortDesc = true
	}
	direction := "ASC"
	if q.SortDesc {
		direction = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT v.id, v.video_url, v.thumbnail_url, v.title, v.description, v.duration,
		       v.views, v.is_published, v.created_at,
		       o.id, o.username, o.full_name, o.avatar_url
		FROM videos v
		JOIN users o ON o.id = v.owner_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d`,
		where, sortCol, direction, argN, argN+1,
	)
	args = append(args, q.Limit, (q.Page-1)*q.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]models.VideoListItem, 0)
	for rows.Next() {
		var item models.VideoListItem
		if err := rows.Scan(
			&item.ID, &item.VideoURL, &item.ThumbnailURL, &item.Title, &item.Description,
			&item.Duration, &item.Views, &item.IsPublished, &item.CreatedAt,
			&item.Owner.ID, &item.Owner.Username, &item.Owner.FullName, &item.Owner.AvatarURL,
		); err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	return items, total, rows.Err()
}

// ListByOwner returns all of an owner's videos including unpublished ones,
// for the dashboard.
func (r *VideoRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Video, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, video_url, video_public_id, thumbnail_url, thumbnail_public_id,
		       title, description, duration, views, is_published, created_at, updated_at
		FROM videos
		WHERE owner_id = $1
		ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	videos := make([]models.Video, 0)
	for rows.Next() {
		var v models.Video
		if err := rows.Scan(
			&v.ID, &v.OwnerID, &v.VideoURL, &v.VideoPublicID, &v.ThumbnailURL, &v.ThumbnailPublicID,
			&v.Title, &v.Description, &v.Duration, &v.Views, &v.IsPublished, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

func (r *VideoRepo) UpdateMetadata(ctx context.Context, id uuid.UUID, title, description, thumbnailURL, thumbnailPublicID string) (*models.Video, error) {
	_, err := r.pool.Exec(ctx, `
		UPDATE videos
		SET title = $1, description = $2, thumbnail_url = $3, thumbnail_public_id = $4, updated_at = NOW()
		WHERE id = $5`,
		title, description, thumbnailURL, thumbnailPublicID, id,
	)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *VideoRepo) TogglePublish(ctx context.Context, id uuid.UUID) (bool, error) {
	var isPublished bool
	err := r.pool.QueryRow(ctx, `
		UPDATE videos SET is_published = NOT is_published, updated_at = NOW()
		WHERE id = $1
		RETURNING is_published`,
		id,
	).Scan(&isPublished)
	return isPublished, err
}

// Delete removes the video row; likes, comments, playlist entries and watch
// history rows go with it via ON DELETE CASCADE.
func (r *VideoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM videos WHERE id = $1", id)
	return err
}

// GetChannelStats aggregates the dashboard numbers for one channel.
func (r *VideoRepo) GetChannelStats(ctx context.Context, ownerID uuid.UUID) (*models.ChannelStats, error) {
	stats := &models.ChannelStats{}
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM videos WHERE owner_id = $1) AS total_videos,
			(SELECT COALESCE(SUM(views), 0) FROM videos WHERE owner_id = $1) AS total_views,
			(SELECT COUNT(*) FROM subscriptions WHERE channel_id = $1) AS total_subscribers,
			(SELECT COUNT(*) FROM likes l JOIN videos v ON v.id = l.video_id WHERE v.owner_id = $1) AS total_likes`,
		ownerID,
	).Scan(&stats.TotalVideos, &stats.TotalViews, &stats.TotalSubscribers, &stats.TotalLikes)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
