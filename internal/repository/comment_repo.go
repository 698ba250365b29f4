package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dhruvrajput1/letmecook2.0/internal/models"
)

type CommentRepo struct {
	pool *pgxpool.Pool
}

func NewCommentRepo(pool *pgxpool.Pool) *CommentRepo {
	return &CommentRepo{pool: pool}
}

func (r *CommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, video_id, owner_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	comment.ID = uuid.New()

	return r.pool.QueryRow(ctx, query,
		comment.ID, comment.VideoID, comment.OwnerID, comment.Content,
	).Scan(&comment.CreatedAt, &comment.UpdatedAt)
}

func (r *CommentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	comment := &models.Comment{}
	query := `SELECT id, video_id, owner_id, content, created_at, updated_at FROM comments WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&comment.ID, &comment.VideoID, &comment.OwnerID, &comment.Content,
		&comment.CreatedAt, &comment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// ListByVideo returns a video's comments newest first, with the owner
// summary and viewer-relative like state joined in.
func (r *CommentRepo) ListByVideo(ctx context.Context, videoID, viewerID uuid.UUID, page, limit int) ([]models.CommentView, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM comments WHERE video_id = $1", videoID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.content, c.created_at,
		       o.id, o.username, o.full_name, o.avatar_url,
		       (SELECT COUNT(*) FROM likes l WHERE l.comment_id = c.id) AS likes_count,
		       EXISTS(SELECT 1 FROM likes l WHERE l.comment_id = c.id AND l.liked_by = $2) AS is_liked
		FROM comments c
		JOIN users o ON o.id = c.owner_id
		WHERE c.video_id = $1
		ORDER BY c.created_at DESC
		LIMIT $3 OFFSET $4`,
		videoID, viewerID, limit, (page-1)*limit,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	views := make([]models.CommentView, 0)
	for rows.Next() {
		var v models.CommentView
		if err := rows.Scan(
			&v.ID, &v.Content, &v.CreatedAt,
			&v.Owner.ID, &v.Owner.Username, &v.Owner.FullName, &v.Owner.AvatarURL,
			&v.LikesCount, &v.IsLiked,
		); err != nil {
			return nil, 0, err
		}
		views = append(views, v)
	}
	return views, total, rows.Err()
}

func (r *CommentRepo) Update(ctx context.Context, id uuid.UUID, content string) (*models.Comment, error) {
	comment := &models.Comment{}
	query := `
		UPDATE comments SET content = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, video_id, owner_id, content, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, content, id).Scan(
		&comment.ID, &comment.VideoID, &comment.OwnerID, &comment.Content,
		&comment.CreatedAt, &comment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *CommentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM comments WHERE id = $1", id)
	return err
}
