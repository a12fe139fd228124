package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/channel-scheduler/internal/persistence"
)

// BookingRepository implements persistence.BookingRepository using SQLite.
type BookingRepository struct {
	store *Store
}

// NewBookingRepository creates a booking repository backed by the store.
func NewBookingRepository(store *Store) *BookingRepository {
	return &BookingRepository{store: store}
}

// InsertBooking stores a new booking. Conflicts on the (channel_id, slot_time)
// unique index surface as persistence.ErrDuplicate.
func (r *BookingRepository) InsertBooking(ctx context.Context, booking persistence.Booking) error {
	if booking.ID == "" {
		return persistence.ErrConstraintViolation
	}

	_, err := r.store.db.ExecContext(ctx, `
		INSERT INTO bookings (id, channel_id, identity_key, display_name, slot_time, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		booking.ID,
		booking.ChannelID,
		booking.IdentityKey,
		booking.DisplayName,
		booking.SlotTime.UTC().Format(time.RFC3339),
		booking.CreatedAt.UTC().Format(time.RFC3339),
	)
	return mapError(err)
}

// FindBookingAt retrieves the booking occupying the exact slot in a channel.
func (r *BookingRepository) FindBookingAt(ctx context.Context, channelID string, slot time.Time) (persistence.Booking, error) {
	row := r.store.db.QueryRowContext(ctx, `
		SELECT id, channel_id, identity_key, display_name, slot_time, created_at
		FROM bookings
		WHERE channel_id = ? AND slot_time = ?`,
		channelID, slot.UTC().Format(time.RFC3339),
	)
	return scanBooking(row)
}

// ListBookings returns the channel's bookings ordered by ascending slot time.
func (r *BookingRepository) ListBookings(ctx context.Context, channelID string, filter persistence.BookingFilter) ([]persistence.Booking, error) {
	query := `
		SELECT id, channel_id, identity_key, display_name, slot_time, created_at
		FROM bookings
		WHERE channel_id = ?`
	args := []any{channelID}

	if filter.From != nil {
		query += " AND slot_time >= ?"
		args = append(args, filter.From.UTC().Format(time.RFC3339))
	}
	if filter.Until != nil {
		query += " AND slot_time < ?"
		args = append(args, filter.Until.UTC().Format(time.RFC3339))
	}
	query += " ORDER BY slot_time ASC, id ASC"

	rows, err := r.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var bookings []persistence.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return bookings, nil
}

// DeleteBookingsForIdentity removes an identity's bookings, optionally
// restricted to slots at or after from, and reports the count removed.
func (r *BookingRepository) DeleteBookingsForIdentity(ctx context.Context, channelID, identityKey string, from *time.Time) (int64, error) {
	query := "DELETE FROM bookings WHERE channel_id = ? AND identity_key = ?"
	args := []any{channelID, identityKey}
	if from != nil {
		query += " AND slot_time >= ?"
		args = append(args, from.UTC().Format(time.RFC3339))
	}

	result, err := r.store.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, mapError(err)
	}
	return rowsAffected(result)
}

// DeleteBookingAt removes the identity's booking at the exact slot, reporting
// whether a matching row existed.
func (r *BookingRepository) DeleteBookingAt(ctx context.Context, channelID, identityKey string, slot time.Time) (bool, error) {
	result, err := r.store.db.ExecContext(ctx, `
		DELETE FROM bookings
		WHERE channel_id = ? AND identity_key = ? AND slot_time = ?`,
		channelID, identityKey, slot.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, mapError(err)
	}
	n, err := rowsAffected(result)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteBookingsBefore purges bookings with slots strictly before the cutoff.
func (r *BookingRepository) DeleteBookingsBefore(ctx context.Context, channelID string, cutoff time.Time) (int64, error) {
	result, err := r.store.db.ExecContext(ctx,
		"DELETE FROM bookings WHERE channel_id = ? AND slot_time < ?",
		channelID, cutoff.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, mapError(err)
	}
	return rowsAffected(result)
}

// DeleteBookingsForChannel removes every booking in the channel.
func (r *BookingRepository) DeleteBookingsForChannel(ctx context.Context, channelID string) (int64, error) {
	result, err := r.store.db.ExecContext(ctx, "DELETE FROM bookings WHERE channel_id = ?", channelID)
	if err != nil {
		return 0, mapError(err)
	}
	return rowsAffected(result)
}

// DeleteBooking removes one booking row by id.
func (r *BookingRepository) DeleteBooking(ctx context.Context, id string) error {
	result, err := r.store.db.ExecContext(ctx, "DELETE FROM bookings WHERE id = ?", id)
	if err != nil {
		return mapError(err)
	}
	n, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if n == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// ListChannelIDs returns the distinct channel ids holding bookings.
func (r *BookingRepository) ListChannelIDs(ctx context.Context) ([]string, error) {
	rows, err := r.store.db.QueryContext(ctx,
		"SELECT DISTINCT channel_id FROM bookings ORDER BY channel_id ASC")
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, mapError(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return ids, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (persistence.Booking, error) {
	var booking persistence.Booking
	var slotStr, createdStr string

	err := row.Scan(
		&booking.ID,
		&booking.ChannelID,
		&booking.IdentityKey,
		&booking.DisplayName,
		&slotStr,
		&createdStr,
	)
	if err != nil {
		return persistence.Booking{}, mapError(err)
	}

	if booking.SlotTime, err = time.Parse(time.RFC3339, slotStr); err != nil {
		return persistence.Booking{}, fmt.Errorf("parse slot_time: %w", err)
	}
	if booking.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return persistence.Booking{}, fmt.Errorf("parse created_at: %w", err)
	}
	return booking, nil
}

func rowsAffected(result sql.Result) (int64, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read rows affected: %w", err)
	}
	return n, nil
}
