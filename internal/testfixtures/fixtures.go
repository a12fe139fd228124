// Package testfixtures provides deterministic clocks, identifier
// generators, record builders and a SQLite harness shared by the
// integration-style tests.
package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/channel-scheduler/internal/persistence"
)

var (
	bookingCounter uint64
	titleCounter   uint64
)

var referenceTime = time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// BookingOption configures the generated booking fixture.
type BookingOption func(*persistence.Booking)

// NewBookingFixture returns a deterministic booking one hour past the
// reference time, staggered so repeated calls never collide on a slot.
func NewBookingFixture(opts ...BookingOption) persistence.Booking {
	idx := atomic.AddUint64(&bookingCounter, 1)
	booking := persistence.Booking{
		ID:          fmt.Sprintf("booking-%03d", idx),
		ChannelID:   "channel-001",
		IdentityKey: fmt.Sprintf("user-%03d", idx),
		DisplayName: fmt.Sprintf("User %03d", idx),
		SlotTime:    referenceTime.Add(time.Duration(idx) * time.Hour),
		CreatedAt:   referenceTime,
	}
	for _, opt := range opts {
		opt(&booking)
	}
	return booking
}

// WithBookingChannel overrides the booking's channel.
func WithBookingChannel(channelID string) BookingOption {
	return func(b *persistence.Booking) {
		b.ChannelID = channelID
	}
}

// WithBookingIdentity overrides the booking's identity key and display name.
func WithBookingIdentity(key, displayName string) BookingOption {
	return func(b *persistence.Booking) {
		b.IdentityKey = key
		b.DisplayName = displayName
	}
}

// WithBookingSlot overrides the booking's slot time.
func WithBookingSlot(slot time.Time) BookingOption {
	return func(b *persistence.Booking) {
		b.SlotTime = slot
	}
}

// TitleOption configures the generated title fixture.
type TitleOption func(*persistence.ChannelTitle)

// NewTitleFixture returns a deterministic channel title.
func NewTitleFixture(opts ...TitleOption) persistence.ChannelTitle {
	idx := atomic.AddUint64(&titleCounter, 1)
	title := persistence.ChannelTitle{
		ChannelID: fmt.Sprintf("channel-%03d", idx),
		Title:     fmt.Sprintf("Title %03d", idx),
		CreatedAt: referenceTime,
		UpdatedAt: referenceTime,
	}
	for _, opt := range opts {
		opt(&title)
	}
	return title
}

// WithTitleChannel overrides the title's channel.
func WithTitleChannel(channelID string) TitleOption {
	return func(t *persistence.ChannelTitle) {
		t.ChannelID = channelID
	}
}

// WithTitleText overrides the title text.
func WithTitleText(text string) TitleOption {
	return func(t *persistence.ChannelTitle) {
		t.Title = text
	}
}
