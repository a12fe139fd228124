// Package http exposes the bot's two HTTP surfaces.
//
// The interaction endpoint receives Discord webhook calls:
//   - POST /interactions: signature-verified interaction payloads. Pings are
//     answered with a pong; slash commands (add, remove, list, next,
//     settitle, config, clear) are dispatched to the signup engine and
//     answered with a channel message.
//
// The dashboard API serves a read/write JSON view of the same data:
//   - GET /api/schedule: every channel with its title and upcoming bookings.
//   - PUT /api/channels/{channelID}/title: set the channel title.
//   - DELETE /api/channels/{channelID}: clear the channel's bookings and title.
//   - POST /api/channels/{channelID}/bookings: book a slot for a named entry.
//   - DELETE /api/bookings/{bookingID}: remove a single booking.
//   - GET /api/channels/{channelID}/calendar.ics: iCalendar export.
//   - GET /health: liveness plus a database ping.
//
// Request/response DTOs live alongside their handlers.
package http
