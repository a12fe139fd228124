package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/example/channel-scheduler/internal/persistence"
)

// TitleRepository implements persistence.TitleRepository using SQLite.
type TitleRepository struct {
	store *Store
	now   func() time.Time
}

// NewTitleRepository creates a title repository backed by the store.
func NewTitleRepository(store *Store) *TitleRepository {
	return &TitleRepository{store: store, now: time.Now}
}

// GetTitle retrieves the channel's title row.
func (r *TitleRepository) GetTitle(ctx context.Context, channelID string) (persistence.ChannelTitle, error) {
	row := r.store.db.QueryRowContext(ctx, `
		SELECT channel_id, title, created_at, updated_at
		FROM channel_titles
		WHERE channel_id = ?`, channelID,
	)
	return scanTitle(row)
}

// UpsertTitle creates or replaces the channel's title.
func (r *TitleRepository) UpsertTitle(ctx context.Context, channelID, title string) error {
	now := r.now().UTC().Format(time.RFC3339)
	_, err := r.store.db.ExecContext(ctx, `
		INSERT INTO channel_titles (channel_id, title, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (channel_id) DO UPDATE SET title = excluded.title, updated_at = excluded.updated_at`,
		channelID, title, now, now,
	)
	return mapError(err)
}

// DeleteTitle removes the channel's title row. Deleting an absent title is
// not an error; clear must be idempotent for untitled channels.
func (r *TitleRepository) DeleteTitle(ctx context.Context, channelID string) error {
	_, err := r.store.db.ExecContext(ctx, "DELETE FROM channel_titles WHERE channel_id = ?", channelID)
	return mapError(err)
}

// ListTitles returns every channel title ordered by title.
func (r *TitleRepository) ListTitles(ctx context.Context) ([]persistence.ChannelTitle, error) {
	rows, err := r.store.db.QueryContext(ctx, `
		SELECT channel_id, title, created_at, updated_at
		FROM channel_titles
		ORDER BY title ASC, channel_id ASC`,
	)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var titles []persistence.ChannelTitle
	for rows.Next() {
		title, err := scanTitle(rows)
		if err != nil {
			return nil, err
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return titles, nil
}

func scanTitle(row rowScanner) (persistence.ChannelTitle, error) {
	var title persistence.ChannelTitle
	var createdStr, updatedStr string

	err := row.Scan(&title.ChannelID, &title.Title, &createdStr, &updatedStr)
	if err != nil {
		return persistence.ChannelTitle{}, mapError(err)
	}

	if title.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return persistence.ChannelTitle{}, fmt.Errorf("parse created_at: %w", err)
	}
	if title.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr); err != nil {
		return persistence.ChannelTitle{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return title, nil
}
