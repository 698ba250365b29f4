package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dhruvrajput1/letmecook2.0/internal/models"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `id, username, email, full_name, avatar_url, cover_image_url, password_hash, refresh_token, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.FullName, &user.AvatarURL,
		&user.CoverImageURL, &user.PasswordHash, &user.RefreshToken,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, username, email, full_name, avatar_url, cover_image_url, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	user.ID = uuid.New()

	return r.pool.QueryRow(ctx, query,
		user.ID, user.Username, user.Email, user.FullName, user.AvatarURL,
		user.CoverImageURL, user.PasswordHash,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

// GetByUsernameOrEmail supports login with either identifier.
func (r *UserRepo) GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 OR email = $2 LIMIT 1`
	return scanUser(r.pool.QueryRow(ctx, query, username, email))
}

// ExistsByUsernameOrEmail backs the registration uniqueness check.
func (r *UserRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 OR email = $2)`,
		username, email,
	).Scan(&exists)
	return exists, err
}

// SetRefreshToken replaces the single live refresh token for the account.
// Passing nil clears it (logout).
func (r *UserRepo) SetRefreshToken(ctx context.Context, userID uuid.UUID, token *string) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE users SET refresh_token = $1, updated_at = NOW() WHERE id = $2",
		token, userID,
	)
	return err
}

func (r *UserRepo) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2",
		passwordHash, userID,
	)
	return err
}

func (r *UserRepo) UpdateAccount(ctx context.Context, userID uuid.UUID, fullName, email string) (*models.User, error) {
	query := `UPDATE users SET full_name = $1, email = $2, updated_at = NOW() WHERE id = $3 RETURNING ` + userColumns
	return scanUser(r.pool.QueryRow(ctx, query, fullName, email, userID))
}

func (r *UserRepo) UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) (*models.User, error) {
	query := `UPDATE users SET avatar_url = $1, updated_at = NOW() WHERE id = $2 RETURNING ` + userColumns
	return scanUser(r.pool.QueryRow(ctx, query, avatarURL, userID))
}

func (r *UserRepo) UpdateCoverImage(ctx context.Context, userID uuid.UUID, coverImageURL string) (*models.User, error) {
	query := `UPDATE users SET cover_image_url = $1, updated_at = NOW() WHERE id = $2 RETURNING ` + userColumns
	return scanUser(r.pool.QueryRow(ctx, query, coverImageURL, userID))
}

// GetChannelProfile assembles the viewer-relative channel page in one query.
// viewerID may be uuid.Nil for anonymous viewers, in which case isSubscribed
// is always false.
func (r *UserRepo) GetChannelProfile(ctx context.Context, username string, viewerID uuid.UUID) (*models.ChannelProfile, error) {
	query := `
		SELECT u.id, u.username, u.full_name, u.avatar_url, u.cover_image_url,
		       (SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.id) AS subscribers_count,
		       (SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = u.id) AS subscribed_to_count,
		       EXISTS(SELECT 1 FROM subscriptions s WHERE s.channel_id = u.id AND s.subscriber_id = $2) AS is_subscribed
		FROM users u
		WHERE u.username = $1`

	p := &models.ChannelProfile{}
	err := r.pool.QueryRow(ctx, query, username, viewerID).Scan(
		&p.ID, &p.Username, &p.FullName, &p.AvatarURL, &p.CoverImageURL,
		&p.SubscribersCount, &p.ChannelsSubscribedToCount, &p.IsSubscribed,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// AddToWatchHistory records a view with set semantics: re-watching a video
// leaves a single row in place.
func (r *UserRepo) AddToWatchHistory(ctx context.Context, userID, videoID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO watch_history (user_id, video_id, watched_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, video_id) DO NOTHING`,
		userID, videoID,
	)
	return err
}

// GetWatchHistory joins the history to videos and their owner summaries,
// most recently watched first. Videos deleted since watching simply drop out
// of the join.
func (r *UserRepo) GetWatchHistory(ctx context.Context, userID uuid.UUID) ([]models.VideoListItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT v.id, v.video_url, v.thumbnail_url, v.title, v.description, v.duration,
		       v.views, v.is_published, v.created_at,
		       o.id, o.username, o.full_name, o.avatar_url
		FROM watch_history wh
		JOIN videos v ON v.id = wh.video_id
		JOIN users o ON o.id = v.owner_id
		WHERE wh.user_id = $1
		ORDER BY wh.watched_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
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
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
