package discord

import (
	"fmt"
	"time"
)

// Timestamp renders the instant as Discord timestamp markup, which clients
// display in the viewer's local timezone.
func Timestamp(t time.Time) string {
	return fmt.Sprintf("<t:%d:f>", t.Unix())
}

// Mention renders a user mention for the given platform user id.
func Mention(userID string) string {
	return fmt.Sprintf("<@%s>", userID)
}

// Bold wraps text in bold markup.
func Bold(text string) string {
	return "**" + text + "**"
}
