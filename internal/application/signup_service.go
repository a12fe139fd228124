// Package application implements the command engine of the signup bot. Each
// command runs to completion independently against the store; the engine
// holds no state between invocations.
//
// User input problems (bad hour, occupied slot, no matching booking) are
// reported as ordinary replies, never as errors. Errors returned by the
// engine always indicate a failing collaborator.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/channel-scheduler/internal/discord"
	"github.com/example/channel-scheduler/internal/persistence"
	"github.com/example/channel-scheduler/internal/scheduler"
)

// Fixed reply lines shared with the dispatch layer.
const (
	MsgInvalidHour    = "Please provide a valid hour between 0-23 (e.g. 14 for 2 PM)."
	MsgInvalidDay     = "Please provide a valid day between 1-31."
	MsgSlotTaken      = "That time is already booked in this channel!"
	MsgNoSignups      = "_No signups for upcoming times._\nUse `/add` with an hour (and optionally a day) to sign up."
	MsgNoUpcoming     = "No upcoming signups in this channel."
	MsgCleared        = "All signups and the title for this channel have been deleted."
	MsgUnknownCommand = "Unknown command."
)

// BookingStore is the slice of persistence.BookingRepository the engine uses.
type BookingStore interface {
	InsertBooking(ctx context.Context, booking persistence.Booking) error
	ListBookings(ctx context.Context, channelID string, filter persistence.BookingFilter) ([]persistence.Booking, error)
	DeleteBookingsForIdentity(ctx context.Context, channelID, identityKey string, from *time.Time) (int64, error)
	DeleteBookingAt(ctx context.Context, channelID, identityKey string, slot time.Time) (bool, error)
	DeleteBookingsBefore(ctx context.Context, channelID string, cutoff time.Time) (int64, error)
	DeleteBookingsForChannel(ctx context.Context, channelID string) (int64, error)
}

// TitleStore is the slice of persistence.TitleRepository the engine uses.
type TitleStore interface {
	GetTitle(ctx context.Context, channelID string) (persistence.ChannelTitle, error)
	UpsertTitle(ctx context.Context, channelID, title string) error
	DeleteTitle(ctx context.Context, channelID string) error
}

// ChannelDirectory resolves a channel id to its external display name, used
// only for best-effort title auto-provisioning.
type ChannelDirectory interface {
	LookupChannelName(ctx context.Context, channelID string) (string, error)
}

// SignupService orchestrates slot resolution, identity resolution and the
// store to implement the channel commands.
type SignupService struct {
	bookings    BookingStore
	titles      TitleStore
	directory   ChannelDirectory
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewSignupService wires the engine's dependencies. directory may be nil, in
// which case channels stay untitled until someone runs settitle.
func NewSignupService(bookings BookingStore, titles TitleStore, directory ChannelDirectory, idGenerator func() string, now func() time.Time, logger *slog.Logger) *SignupService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &SignupService{
		bookings:    bookings,
		titles:      titles,
		directory:   directory,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

// Add books a slot for the caller or a named stand-in. An occupied slot is
// detected by the store's unique (channel, slot) constraint, so two
// concurrent adds for the same instant cannot both succeed.
func (s *SignupService) Add(ctx context.Context, params AddParams) (Reply, error) {
	logger := serviceLogger(ctx, s.logger, "add", "channel_id", params.ChannelID)
	s.ensureTitle(ctx, logger, params.ChannelID)

	now := s.now().UTC()
	slot, err := scheduler.ResolveSlot(params.Hour, params.Day, now)
	if err != nil {
		return rejectSlotError(err)
	}

	identity := scheduler.ResolveIdentity(params.Caller.ID, params.Caller.Name, params.Name)

	booking := persistence.Booking{
		ID:          s.idGenerator(),
		ChannelID:   params.ChannelID,
		IdentityKey: identity.Key,
		DisplayName: identity.DisplayName,
		SlotTime:    slot,
		CreatedAt:   now,
	}
	if err := s.bookings.InsertBooking(ctx, booking); err != nil {
		if errors.Is(err, persistence.ErrDuplicate) {
			return Reply{Text: MsgSlotTaken}, nil
		}
		logger.ErrorContext(ctx, "failed to insert booking", "error", err, "error_kind", ErrorKind(err))
		return Reply{}, fmt.Errorf("insert booking: %w", err)
	}

	logger.InfoContext(ctx, "booking created", "identity", identity.Key, "slot", slot)

	subject := "You have"
	if identity.Custom {
		subject = discord.Bold(identity.DisplayName) + " has"
	}
	return Reply{Text: fmt.Sprintf("%s been added for %s at %s (%s).",
		subject, dayLabel(params.Day), hourLabel(params.Hour), discord.Timestamp(slot))}, nil
}

// Remove deletes bookings for the caller or a named stand-in. Without an
// hour every upcoming booking for the identity goes; with an hour only the
// booking at the resolved instant is removed, and the reply distinguishes a
// removal from a miss.
func (s *SignupService) Remove(ctx context.Context, params RemoveParams) (Reply, error) {
	logger := serviceLogger(ctx, s.logger, "remove", "channel_id", params.ChannelID)
	s.ensureTitle(ctx, logger, params.ChannelID)

	identity := scheduler.ResolveIdentity(params.Caller.ID, params.Caller.Name, params.Name)
	now := s.now().UTC()

	if params.Hour == nil {
		count, err := s.bookings.DeleteBookingsForIdentity(ctx, params.ChannelID, identity.Key, &now)
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete bookings", "error", err, "error_kind", ErrorKind(err))
			return Reply{}, fmt.Errorf("delete bookings: %w", err)
		}
		logger.InfoContext(ctx, "bookings removed", "identity", identity.Key, "count", count)
		return Reply{Text: fmt.Sprintf("%s been removed from %d upcoming slot(s) for this channel.",
			removeSubject(identity), count)}, nil
	}

	slot, err := scheduler.ResolveSlot(*params.Hour, params.Day, now)
	if err != nil {
		return rejectSlotError(err)
	}

	removed, err := s.bookings.DeleteBookingAt(ctx, params.ChannelID, identity.Key, slot)
	if err != nil {
		logger.ErrorContext(ctx, "failed to delete booking", "error", err, "error_kind", ErrorKind(err))
		return Reply{}, fmt.Errorf("delete booking: %w", err)
	}
	if !removed {
		if identity.Custom {
			return Reply{Text: discord.Bold(identity.DisplayName) + " is not signed up for that time."}, nil
		}
		return Reply{Text: "You are not signed up for that time."}, nil
	}

	logger.InfoContext(ctx, "booking removed", "identity", identity.Key, "slot", slot)
	return Reply{Text: fmt.Sprintf("%s been removed from %s at %s.",
		removeSubject(identity), dayLabel(params.Day), hourLabel(*params.Hour))}, nil
}

// List purges expired bookings, then renders the channel title and every
// remaining booking in ascending slot order.
func (s *SignupService) List(ctx context.Context, params ChannelParams) (Reply, error) {
	logger := serviceLogger(ctx, s.logger, "list", "channel_id", params.ChannelID)
	s.ensureTitle(ctx, logger, params.ChannelID)

	now := s.now().UTC()
	purged, err := s.bookings.DeleteBookingsBefore(ctx, params.ChannelID, now)
	if err != nil {
		logger.ErrorContext(ctx, "failed to purge expired bookings", "error", err, "error_kind", ErrorKind(err))
		return Reply{}, fmt.Errorf("purge expired bookings: %w", err)
	}
	if purged > 0 {
		logger.InfoContext(ctx, "expired bookings purged", "count", purged)
	}

	var lines []string
	title, err := s.titles.GetTitle(ctx, params.ChannelID)
	switch {
	case err == nil:
		lines = append(lines, discord.Bold(title.Title))
	case errors.Is(err, persistence.ErrNotFound):
		// untitled channel, no heading
	default:
		logger.ErrorContext(ctx, "failed to load title", "error", err, "error_kind", ErrorKind(err))
		return Reply{}, fmt.Errorf("load title: %w", err)
	}

	bookings, err := s.bookings.ListBookings(ctx, params.ChannelID, persistence.BookingFilter{From: &now})
	if err != nil {
		logger.ErrorContext(ctx, "failed to list bookings", "error", err, "error_kind", ErrorKind(err))
		return Reply{}, fmt.Errorf("list bookings: %w", err)
	}

	if len(bookings) == 0 {
		lines = append(lines, MsgNoSignups)
		return Reply{Text: strings.Join(lines, "\n")}, nil
	}

	for _, booking := range bookings {
		lines = append(lines, fmt.Sprintf("• %s — day %d at %s (%s)",
			renderIdentity(booking),
			booking.SlotTime.Day(),
			hourLabel(booking.SlotTime.Hour()),
			discord.Timestamp(booking.SlotTime)))
	}
	return Reply{Text: strings.Join(lines, "\n")}, nil
}

// Next reports the single soonest upcoming booking with a countdown.
func (s *SignupService) Next(ctx context.Context, params ChannelParams) (Reply, error) {
	logger := serviceLogger(ctx, s.logger, "next", "channel_id", params.ChannelID)
	s.ensureTitle(ctx, logger, params.ChannelID)

	now := s.now().UTC()
	bookings, err := s.bookings.ListBookings(ctx, params.ChannelID, persistence.BookingFilter{From: &now})
	if err != nil {
		logger.ErrorContext(ctx, "failed to list bookings", "error", err, "error_kind", ErrorKind(err))
		return Reply{}, fmt.Errorf("list bookings: %w", err)
	}
	if len(bookings) == 0 {
		return Reply{Text: MsgNoUpcoming}, nil
	}

	next := bookings[0]
	return Reply{Text: fmt.Sprintf("Next up: %s at %s (%s).",
		renderIdentity(next),
		discord.Timestamp(next.SlotTime),
		scheduler.FormatCountdown(next.SlotTime, now))}, nil
}

// SetTitle replaces the channel's title unconditionally.
func (s *SignupService) SetTitle(ctx context.Context, params TitleParams) (Reply, error) {
	logger := serviceLogger(ctx, s.logger, "settitle", "channel_id", params.ChannelID)

	if err := s.titles.UpsertTitle(ctx, params.ChannelID, params.Title); err != nil {
		logger.ErrorContext(ctx, "failed to upsert title", "error", err, "error_kind", ErrorKind(err))
		return Reply{}, fmt.Errorf("upsert title: %w", err)
	}
	return Reply{Text: fmt.Sprintf("List title set to: %s", discord.Bold(params.Title))}, nil
}

// Configure replaces the title and wipes every booking in the channel: a
// destructive reset combined with a rename.
func (s *SignupService) Configure(ctx context.Context, params TitleParams) (Reply, error) {
	logger := serviceLogger(ctx, s.logger, "config", "channel_id", params.ChannelID)

	if err := s.titles.UpsertTitle(ctx, params.ChannelID, params.Title); err != nil {
		logger.ErrorContext(ctx, "failed to upsert title", "error", err, "error_kind", ErrorKind(err))
		return Reply{}, fmt.Errorf("upsert title: %w", err)
	}
	count, err := s.bookings.DeleteBookingsForChannel(ctx, params.ChannelID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to clear bookings", "error", err, "error_kind", ErrorKind(err))
		return Reply{}, fmt.Errorf("clear bookings: %w", err)
	}
	logger.InfoContext(ctx, "channel reconfigured", "cleared", count)
	return Reply{Text: fmt.Sprintf("Configuration set! New list title: %s and all previous signups were cleared.",
		discord.Bold(params.Title))}, nil
}

// Clear deletes every booking and the title, returning the channel to the
// untitled state.
func (s *SignupService) Clear(ctx context.Context, params ChannelParams) (Reply, error) {
	logger := serviceLogger(ctx, s.logger, "clear", "channel_id", params.ChannelID)

	if _, err := s.bookings.DeleteBookingsForChannel(ctx, params.ChannelID); err != nil {
		logger.ErrorContext(ctx, "failed to clear bookings", "error", err, "error_kind", ErrorKind(err))
		return Reply{}, fmt.Errorf("clear bookings: %w", err)
	}
	if err := s.titles.DeleteTitle(ctx, params.ChannelID); err != nil {
		logger.ErrorContext(ctx, "failed to delete title", "error", err, "error_kind", ErrorKind(err))
		return Reply{}, fmt.Errorf("delete title: %w", err)
	}
	logger.InfoContext(ctx, "channel cleared")
	return Reply{Text: MsgCleared}, nil
}

// ensureTitle provisions a title for untitled channels from the external
// channel name. The step is best-effort: any failure leaves the channel
// untitled and the command proceeds.
func (s *SignupService) ensureTitle(ctx context.Context, logger *slog.Logger, channelID string) {
	if s.titles == nil {
		return
	}
	if _, err := s.titles.GetTitle(ctx, channelID); err == nil {
		return
	} else if !errors.Is(err, persistence.ErrNotFound) {
		logger.WarnContext(ctx, "title lookup failed", "error", err)
		return
	}

	if s.directory == nil {
		return
	}
	name, err := s.directory.LookupChannelName(ctx, channelID)
	if err != nil || name == "" {
		if err != nil {
			logger.WarnContext(ctx, "channel name lookup failed", "error", err)
		}
		return
	}
	if err := s.titles.UpsertTitle(ctx, channelID, name); err != nil {
		logger.WarnContext(ctx, "title provisioning failed", "error", err)
	}
}

func rejectSlotError(err error) (Reply, error) {
	switch {
	case errors.Is(err, scheduler.ErrInvalidHour):
		return Reply{Text: MsgInvalidHour}, nil
	case errors.Is(err, scheduler.ErrInvalidDay):
		return Reply{Text: MsgInvalidDay}, nil
	}
	return Reply{}, err
}

func removeSubject(identity scheduler.Identity) string {
	if identity.Custom {
		return discord.Bold(identity.DisplayName) + " has"
	}
	return "You have"
}

// renderIdentity shows caller-derived identities as platform mentions and
// custom-named identities as bold text.
func renderIdentity(booking persistence.Booking) string {
	if strings.HasPrefix(booking.IdentityKey, scheduler.CustomKeyPrefix) {
		return discord.Bold(booking.DisplayName)
	}
	return discord.Mention(booking.IdentityKey)
}

// dayLabel keeps the wording the user used: an explicit day is echoed back,
// otherwise "today".
func dayLabel(day *int) string {
	if day != nil {
		return fmt.Sprintf("day %d", *day)
	}
	return "today"
}

func hourLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}
