// Package discord covers the wire-level Discord concerns: interaction
// payloads, request signature verification, reply markup and the REST
// client used to look up channel names.
package discord

import "encoding/json"

// Interaction types delivered to the webhook endpoint.
const (
	InteractionPing               = 1
	InteractionApplicationCommand = 2
)

// Interaction response types.
const (
	ResponsePong           = 1
	ResponseChannelMessage = 4
)

// Interaction is the inbound webhook payload. Only the fields the bot
// consumes are mapped.
type Interaction struct {
	Type      int          `json:"type"`
	ChannelID string       `json:"channel_id"`
	GuildID   string       `json:"guild_id"`
	Member    *Member      `json:"member"`
	User      *User        `json:"user"`
	Data      *CommandData `json:"data"`
}

// Member wraps the guild member that invoked the command.
type Member struct {
	User User   `json:"user"`
	Nick string `json:"nick"`
}

// User identifies a Discord account.
type User struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	GlobalName string `json:"global_name"`
}

// CommandData carries the slash command name and its options.
type CommandData struct {
	Name    string          `json:"name"`
	Options []CommandOption `json:"options"`
}

// CommandOption is a single named option. Value stays raw so integer and
// string options can be decoded by the consumer that knows the type.
type CommandOption struct {
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value"`
}

// CallerID returns the invoking user's id, regardless of whether the
// command arrived from a guild channel or a direct message.
func (i Interaction) CallerID() string {
	if i.Member != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// CallerName returns the invoking user's display name, preferring the
// global display name over the login username.
func (i Interaction) CallerName() string {
	var user User
	switch {
	case i.Member != nil:
		user = i.Member.User
	case i.User != nil:
		user = *i.User
	default:
		return ""
	}
	if user.GlobalName != "" {
		return user.GlobalName
	}
	return user.Username
}

// InteractionResponse is the payload returned to Discord.
type InteractionResponse struct {
	Type int           `json:"type"`
	Data *MessageReply `json:"data,omitempty"`
}

// MessageReply is the message body of a ResponseChannelMessage response.
type MessageReply struct {
	Content string `json:"content"`
}

// Pong is the fixed answer to a verification ping.
func Pong() InteractionResponse {
	return InteractionResponse{Type: ResponsePong}
}

// Message builds a channel message response with the given content.
func Message(content string) InteractionResponse {
	return InteractionResponse{Type: ResponseChannelMessage, Data: &MessageReply{Content: content}}
}
