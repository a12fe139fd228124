package persistence

import (
	"context"
	"time"
)

// BookingFilter narrows booking queries by slot time.
type BookingFilter struct {
	// From keeps bookings with SlotTime at or after the instant.
	From *time.Time
	// Until keeps bookings with SlotTime strictly before the instant.
	Until *time.Time
}

// BookingRepository stores slot reservations partitioned by channel. Listing
// always returns bookings in ascending slot order.
type BookingRepository interface {
	// InsertBooking stores a new booking. A booking already occupying the
	// same (channel, slot) pair yields ErrDuplicate.
	InsertBooking(ctx context.Context, booking Booking) error
	FindBookingAt(ctx context.Context, channelID string, slot time.Time) (Booking, error)
	ListBookings(ctx context.Context, channelID string, filter BookingFilter) ([]Booking, error)
	// DeleteBookingsForIdentity removes an identity's bookings in a channel,
	// optionally restricted to slots at or after from, and reports how many
	// rows were removed.
	DeleteBookingsForIdentity(ctx context.Context, channelID, identityKey string, from *time.Time) (int64, error)
	// DeleteBookingAt removes the identity's booking at the exact slot and
	// reports whether one existed.
	DeleteBookingAt(ctx context.Context, channelID, identityKey string, slot time.Time) (bool, error)
	// DeleteBookingsBefore purges every booking in the channel with a slot
	// strictly before the cutoff.
	DeleteBookingsBefore(ctx context.Context, channelID string, cutoff time.Time) (int64, error)
	DeleteBookingsForChannel(ctx context.Context, channelID string) (int64, error)
	// DeleteBooking removes a single booking row by id.
	DeleteBooking(ctx context.Context, id string) error
	// ListChannelIDs returns every channel id that currently holds at
	// least one booking.
	ListChannelIDs(ctx context.Context) ([]string, error)
}

// TitleRepository stores the per-channel display title.
type TitleRepository interface {
	GetTitle(ctx context.Context, channelID string) (ChannelTitle, error)
	UpsertTitle(ctx context.Context, channelID, title string) error
	DeleteTitle(ctx context.Context, channelID string) error
	ListTitles(ctx context.Context) ([]ChannelTitle, error)
}
