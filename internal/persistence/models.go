package persistence

import "time"

// Booking represents one reserved slot within a channel.
type Booking struct {
	ID          string
	ChannelID   string
	IdentityKey string
	DisplayName string
	SlotTime    time.Time
	CreatedAt   time.Time
}

// ChannelTitle is the optional display title attached to a channel.
type ChannelTitle struct {
	ChannelID string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
