package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dhruvrajput1/letmecook2.0/internal/models"
)

type PlaylistRepo struct {
	pool *pgxpool.Pool
}

func NewPlaylistRepo(pool *pgxpool.Pool) *PlaylistRepo {
	return &PlaylistRepo{pool: pool}
}

func (r *PlaylistRepo) Create(ctx context.Context, playlist *models.Playlist) error {
	query := `
		INSERT INTO playlists (id, owner_id, name, description)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	playlist.ID = uuid.New()
	playlist.VideoIDs = []uuid.UUID{}

	return r.pool.QueryRow(ctx, query,
		playlist.ID, playlist.OwnerID, playlist.Name, playlist.Description,
	).Scan(&playlist.CreatedAt, &playlist.UpdatedAt)
}

func (r *PlaylistRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Playlist, error) {
	playlist := &models.Playlist{}
	query := `SELECT id, owner_id, name, description, created_at, updated_at FROM playlists WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&playlist.ID, &playlist.OwnerID, &playlist.Name, &playlist.Description,
		&playlist.CreatedAt, &playlist.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		"SELECT video_id FROM playlist_videos WHERE playlist_id = $1 ORDER BY added_at",
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	playlist.VideoIDs = make([]uuid.UUID, 0)
	for rows.Next() {
		var videoID uuid.UUID
		if err := rows.Scan(&videoID); err != nil {
			return nil, err
		}
		playlist.VideoIDs = append(playlist.VideoIDs, videoID)
	}
	return playlist, rows.Err()
}

// ListByUser returns a user's playlists with owner and video summaries
// embedded. Two queries: playlists+owner, then all member videos in one go.
func (r *PlaylistRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.PlaylistView, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.name, p.description, p.created_at,
		       o.id, o.username, o.full_name, o.avatar_url
		FROM playlists p
		JOIN users o ON o.id = p.owner_id
		WHERE p.owner_id = $1
		ORDER BY p.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]models.PlaylistView, 0)
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var v models.PlaylistView
		if err := rows.Scan(
			&v.ID, &v.Name, &v.Description, &v.CreatedAt,
			&v.Owner.ID, &v.Owner.Username, &v.Owner.FullName, &v.Owner.AvatarURL,
		); err != nil {
			return nil, err
		}
		v.Videos = []models.PlaylistVideo{}
		index[v.ID] = len(views)
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return views, nil
	}

	videoRows, err := r.pool.Query(ctx, `
		SELECT pv.playlist_id, v.id, v.video_url, v.thumbnail_url, v.title, v.views,
		       o.id, o.username, o.full_name, o.avatar_url
		FROM playlist_videos pv
		JOIN playlists p ON p.id = pv.playlist_id
		JOIN videos v ON v.id = pv.video_id
		JOIN users o ON o.id = v.owner_id
		WHERE p.owner_id = $1
		ORDER BY pv.added_at`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer videoRows.Close()

	for videoRows.Next() {
		var playlistID uuid.UUID
		var pv models.PlaylistVideo
		if err := videoRows.Scan(
			&playlistID, &pv.ID, &pv.VideoURL, &pv.ThumbnailURL, &pv.Title, &pv.Views,
			&pv.Owner.ID, &pv.Owner.Username, &pv.Owner.FullName, &pv.Owner.AvatarURL,
		); err != nil {
			return nil, err
		}
		if i, ok := index[playlistID]; ok {
			views[i].Videos = append(views[i].Videos, pv)
		}
	}
	return views, videoRows.Err()
}

// ContainsVideo backs the duplicate-insert check.
func (r *PlaylistRepo) ContainsVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM playlist_videos WHERE playlist_id = $1 AND video_id = $2)",
		playlistID, videoID,
	).Scan(&exists)
	return exists, err
}

func (r *PlaylistRepo) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		"INSERT INTO playlist_videos (playlist_id, video_id) VALUES ($1, $2)",
		playlistID, videoID,
	)
	return err
}

func (r *PlaylistRepo) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		"DELETE FROM playlist_videos WHERE playlist_id = $1 AND video_id = $2",
		playlistID, videoID,
	)
	return err
}

func (r *PlaylistRepo) Update(ctx context.Context, id uuid.UUID, name, description string) (*models.Playlist, error) {
	_, err := r.pool.Exec(ctx,
		"UPDATE playlists SET name = $1, description = $2, updated_at = NOW() WHERE id = $3",
		name, description, id,
	)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *PlaylistRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM playlists WHERE id = $1", id)
	return err
}
