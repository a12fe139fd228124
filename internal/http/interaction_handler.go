package http

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/example/channel-scheduler/internal/application"
	"github.com/example/channel-scheduler/internal/discord"
)

// Discord retries unanswered interactions, so payloads stay small. The cap
// guards against misdirected uploads.
const maxInteractionBody = 1 << 20

const (
	msgCommandFailed  = "Something went wrong while processing your command. Please try again."
	msgInvalidName    = "Please provide a name of at most 80 characters."
	msgInvalidTitle   = "Please provide a title of at most 100 characters."
	msgInvalidOptions = "Invalid command options."
)

// CommandEngine is the slice of the signup service the dispatcher needs.
type CommandEngine interface {
	Add(ctx context.Context, params application.AddParams) (application.Reply, error)
	Remove(ctx context.Context, params application.RemoveParams) (application.Reply, error)
	List(ctx context.Context, params application.ChannelParams) (application.Reply, error)
	Next(ctx context.Context, params application.ChannelParams) (application.Reply, error)
	SetTitle(ctx context.Context, params application.TitleParams) (application.Reply, error)
	Configure(ctx context.Context, params application.TitleParams) (application.Reply, error)
	Clear(ctx context.Context, params application.ChannelParams) (application.Reply, error)
}

// InteractionHandler terminates the Discord interactions webhook: it
// verifies request signatures, answers pings and dispatches slash commands
// to the engine.
type InteractionHandler struct {
	engine    CommandEngine
	publicKey ed25519.PublicKey
	logger    *slog.Logger
	responder responder
}

func NewInteractionHandler(engine CommandEngine, publicKey ed25519.PublicKey, logger *slog.Logger) *InteractionHandler {
	logger = defaultLogger(logger)
	return &InteractionHandler{
		engine:    engine,
		publicKey: publicKey,
		logger:    logger,
		responder: newResponder(logger),
	}
}

// Handle processes one interaction request. Discord requires a 401 for any
// request whose signature does not verify.
func (h *InteractionHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := handlerLogger(ctx, h.logger, "interactions", "")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxInteractionBody))
	if err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	signature := r.Header.Get(discord.HeaderSignature)
	timestamp := r.Header.Get(discord.HeaderTimestamp)
	if !discord.VerifySignature(h.publicKey, signature, timestamp, body) {
		logger.WarnContext(ctx, "rejected interaction with invalid signature")
		h.responder.writeError(ctx, w, http.StatusUnauthorized, errors.New("invalid request signature"))
		return
	}

	var interaction discord.Interaction
	if err := json.Unmarshal(body, &interaction); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	switch interaction.Type {
	case discord.InteractionPing:
		logger.InfoContext(ctx, "answered verification ping")
		h.responder.writeJSON(ctx, w, http.StatusOK, discord.Pong())
	case discord.InteractionApplicationCommand:
		content := h.dispatch(ctx, logger, interaction)
		h.responder.writeJSON(ctx, w, http.StatusOK, discord.Message(content))
	default:
		h.responder.writeError(ctx, w, http.StatusBadRequest, errors.New("unsupported interaction type"))
	}
}

// dispatch runs a slash command and always produces user-facing text.
// Engine errors collapse into a generic failure line; the details go to
// the log only.
func (h *InteractionHandler) dispatch(ctx context.Context, logger *slog.Logger, interaction discord.Interaction) string {
	if interaction.Data == nil {
		return application.MsgUnknownCommand
	}
	data := *interaction.Data
	caller := application.Caller{ID: interaction.CallerID(), Name: interaction.CallerName()}
	channel := application.ChannelParams{ChannelID: interaction.ChannelID, Caller: caller}

	var reply application.Reply
	var err error
	switch data.Name {
	case "add":
		args, argErr := discord.DecodeAddArgs(data)
		if argErr != nil {
			return argumentMessage(argErr)
		}
		reply, err = h.engine.Add(ctx, application.AddParams{
			ChannelID: interaction.ChannelID,
			Caller:    caller,
			Hour:      args.Hour,
			Day:       args.Day,
			Name:      args.Name,
		})
	case "remove":
		args, argErr := discord.DecodeRemoveArgs(data)
		if argErr != nil {
			return argumentMessage(argErr)
		}
		reply, err = h.engine.Remove(ctx, application.RemoveParams{
			ChannelID: interaction.ChannelID,
			Caller:    caller,
			Hour:      args.Hour,
			Day:       args.Day,
			Name:      args.Name,
		})
	case "list":
		reply, err = h.engine.List(ctx, channel)
	case "next":
		reply, err = h.engine.Next(ctx, channel)
	case "settitle":
		args, argErr := discord.DecodeTitleArgs(data)
		if argErr != nil {
			return argumentMessage(argErr)
		}
		reply, err = h.engine.SetTitle(ctx, application.TitleParams{
			ChannelID: interaction.ChannelID,
			Caller:    caller,
			Title:     args.Title,
		})
	case "config":
		args, argErr := discord.DecodeTitleArgs(data)
		if argErr != nil {
			return argumentMessage(argErr)
		}
		reply, err = h.engine.Configure(ctx, application.TitleParams{
			ChannelID: interaction.ChannelID,
			Caller:    caller,
			Title:     args.Title,
		})
	case "clear":
		reply, err = h.engine.Clear(ctx, channel)
	default:
		logger.WarnContext(ctx, "unknown command", "command", data.Name)
		return application.MsgUnknownCommand
	}

	if err != nil {
		logger.ErrorContext(ctx, "command failed", "command", data.Name, "error", err)
		return msgCommandFailed
	}
	return reply.Text
}

func argumentMessage(err error) string {
	switch {
	case errors.Is(err, discord.ErrBadHour):
		return application.MsgInvalidHour
	case errors.Is(err, discord.ErrBadDay):
		return application.MsgInvalidDay
	case errors.Is(err, discord.ErrBadName):
		return msgInvalidName
	case errors.Is(err, discord.ErrBadTitle):
		return msgInvalidTitle
	}
	return msgInvalidOptions
}
