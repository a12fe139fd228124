package application

// Caller identifies the authenticated party issuing a command.
type Caller struct {
	ID   string
	Name string
}

// Reply is the single human-readable message returned to the channel.
// Rejections and successes share the shape; only the wording differs.
type Reply struct {
	Text string
}

// AddParams carries the arguments of an add command. Name, when set, books
// the slot for a stand-in instead of the caller.
type AddParams struct {
	ChannelID string
	Caller    Caller
	Hour      int
	Day       *int
	Name      string
}

// RemoveParams carries the arguments of a remove command. A nil Hour removes
// every upcoming booking for the identity; otherwise only the booking at the
// resolved instant is targeted.
type RemoveParams struct {
	ChannelID string
	Caller    Caller
	Hour      *int
	Day       *int
	Name      string
}

// ChannelParams addresses a whole-channel command (list, next, clear).
type ChannelParams struct {
	ChannelID string
	Caller    Caller
}

// TitleParams carries the arguments of settitle and config.
type TitleParams struct {
	ChannelID string
	Caller    Caller
	Title     string
}
