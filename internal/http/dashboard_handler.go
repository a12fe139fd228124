package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/example/channel-scheduler/internal/persistence"
	"github.com/example/channel-scheduler/internal/scheduler"
)

var dashboardValidate = validator.New()

// DashboardHandler serves the JSON view of the schedule used by the web
// dashboard. It talks to the repositories directly; the Discord reply
// formatting of the command engine has no place here.
type DashboardHandler struct {
	bookings    persistence.BookingRepository
	titles      persistence.TitleRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
	responder   responder
}

func NewDashboardHandler(bookings persistence.BookingRepository, titles persistence.TitleRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *DashboardHandler {
	if now == nil {
		now = time.Now
	}
	logger = defaultLogger(logger)
	return &DashboardHandler{
		bookings:    bookings,
		titles:      titles,
		idGenerator: idGenerator,
		now:         now,
		logger:      logger,
		responder:   newResponder(logger),
	}
}

type bookingDTO struct {
	ID          string    `json:"id"`
	ChannelID   string    `json:"channel_id"`
	IdentityKey string    `json:"identity_key"`
	DisplayName string    `json:"display_name"`
	SlotTime    time.Time `json:"slot_time"`
}

type channelScheduleDTO struct {
	ChannelID string       `json:"channel_id"`
	Title     string       `json:"title,omitempty"`
	Bookings  []bookingDTO `json:"bookings"`
}

type scheduleResponse struct {
	Channels []channelScheduleDTO `json:"channels"`
}

// Schedule returns every known channel with its title and upcoming
// bookings. Channels appear if they hold bookings or carry a title.
func (h *DashboardHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := handlerLogger(ctx, h.logger, "dashboard", "schedule")

	channelIDs, err := h.bookings.ListChannelIDs(ctx)
	if err != nil {
		h.responder.handleStoreError(ctx, w, err)
		return
	}
	titles, err := h.titles.ListTitles(ctx)
	if err != nil {
		h.responder.handleStoreError(ctx, w, err)
		return
	}

	titleByChannel := make(map[string]string, len(titles))
	for _, title := range titles {
		titleByChannel[title.ChannelID] = title.Title
	}
	seen := make(map[string]bool, len(channelIDs))
	for _, id := range channelIDs {
		seen[id] = true
	}
	for _, title := range titles {
		if !seen[title.ChannelID] {
			channelIDs = append(channelIDs, title.ChannelID)
		}
	}

	now := h.now().UTC()
	channels := make([]channelScheduleDTO, 0, len(channelIDs))
	for _, channelID := range channelIDs {
		bookings, err := h.bookings.ListBookings(ctx, channelID, persistence.BookingFilter{From: &now})
		if err != nil {
			h.responder.handleStoreError(ctx, w, err)
			return
		}
		dto := channelScheduleDTO{
			ChannelID: channelID,
			Title:     titleByChannel[channelID],
			Bookings:  make([]bookingDTO, 0, len(bookings)),
		}
		for _, booking := range bookings {
			dto.Bookings = append(dto.Bookings, toBookingDTO(booking))
		}
		channels = append(channels, dto)
	}

	logger.InfoContext(ctx, "schedule served", "channels", len(channels))
	h.responder.writeJSON(ctx, w, http.StatusOK, scheduleResponse{Channels: channels})
}

type setTitleRequest struct {
	Title string `json:"title" validate:"required,max=100"`
}

// SetTitle replaces the channel title.
func (h *DashboardHandler) SetTitle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	channelID := chi.URLParam(r, "channelID")
	logger := handlerLogger(ctx, h.logger, "dashboard", "set_title", "channel_id", channelID)

	var req setTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}
	if err := dashboardValidate.Struct(req); err != nil {
		h.responder.writeError(ctx, w, http.StatusUnprocessableEntity, errors.New("title is required and at most 100 characters"))
		return
	}

	if err := h.titles.UpsertTitle(ctx, channelID, req.Title); err != nil {
		h.responder.handleStoreError(ctx, w, err)
		return
	}
	logger.InfoContext(ctx, "title set")
	h.responder.writeJSON(ctx, w, http.StatusOK, map[string]string{
		"channel_id": channelID,
		"title":      req.Title,
	})
}

// ClearChannel removes every booking and the title of a channel.
func (h *DashboardHandler) ClearChannel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	channelID := chi.URLParam(r, "channelID")
	logger := handlerLogger(ctx, h.logger, "dashboard", "clear_channel", "channel_id", channelID)

	count, err := h.bookings.DeleteBookingsForChannel(ctx, channelID)
	if err != nil {
		h.responder.handleStoreError(ctx, w, err)
		return
	}
	if err := h.titles.DeleteTitle(ctx, channelID); err != nil {
		h.responder.handleStoreError(ctx, w, err)
		return
	}
	logger.InfoContext(ctx, "channel cleared", "bookings_removed", count)
	h.responder.writeJSON(ctx, w, http.StatusNoContent, nil)
}

type createBookingRequest struct {
	Name string `json:"name" validate:"required,max=80"`
	Hour int    `json:"hour" validate:"min=0,max=23"`
	Day  *int   `json:"day" validate:"omitempty,min=1,max=31"`
}

// CreateBooking books a slot for a named entry. The slot resolves exactly
// like the slash command: next future occurrence, one month out when the
// requested time already passed.
func (h *DashboardHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	channelID := chi.URLParam(r, "channelID")
	logger := handlerLogger(ctx, h.logger, "dashboard", "create_booking", "channel_id", channelID)

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}
	if err := dashboardValidate.Struct(req); err != nil {
		h.responder.writeError(ctx, w, http.StatusUnprocessableEntity, errors.New("name is required; hour must be 0-23 and day 1-31"))
		return
	}

	now := h.now().UTC()
	slot, err := scheduler.ResolveSlot(req.Hour, req.Day, now)
	if err != nil {
		h.responder.writeError(ctx, w, http.StatusUnprocessableEntity, err)
		return
	}
	identity := scheduler.ResolveIdentity("", "", req.Name)

	booking := persistence.Booking{
		ID:          h.idGenerator(),
		ChannelID:   channelID,
		IdentityKey: identity.Key,
		DisplayName: identity.DisplayName,
		SlotTime:    slot,
		CreatedAt:   now,
	}
	if err := h.bookings.InsertBooking(ctx, booking); err != nil {
		h.responder.handleStoreError(ctx, w, err)
		return
	}

	logger.InfoContext(ctx, "booking created", "booking_id", booking.ID, "slot", slot)
	h.responder.writeJSON(ctx, w, http.StatusCreated, toBookingDTO(booking))
}

// DeleteBooking removes one booking by id.
func (h *DashboardHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	bookingID := chi.URLParam(r, "bookingID")
	logger := handlerLogger(ctx, h.logger, "dashboard", "delete_booking", "booking_id", bookingID)

	if err := h.bookings.DeleteBooking(ctx, bookingID); err != nil {
		h.responder.handleStoreError(ctx, w, err)
		return
	}
	logger.InfoContext(ctx, "booking deleted")
	h.responder.writeJSON(ctx, w, http.StatusNoContent, nil)
}

// Calendar exports the channel's upcoming bookings as an iCalendar feed.
// Each booking becomes a one-hour event.
func (h *DashboardHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	channelID := chi.URLParam(r, "channelID")
	logger := handlerLogger(ctx, h.logger, "dashboard", "calendar", "channel_id", channelID)

	now := h.now().UTC()
	bookings, err := h.bookings.ListBookings(ctx, channelID, persistence.BookingFilter{From: &now})
	if err != nil {
		h.responder.handleStoreError(ctx, w, err)
		return
	}

	calendarName := channelID
	title, err := h.titles.GetTitle(ctx, channelID)
	switch {
	case err == nil:
		calendarName = title.Title
	case errors.Is(err, persistence.ErrNotFound):
	default:
		h.responder.handleStoreError(ctx, w, err)
		return
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//channel-scheduler//EN")
	cal.SetName(calendarName)
	for _, booking := range bookings {
		event := cal.AddEvent(booking.ID)
		event.SetDtStampTime(booking.CreatedAt)
		event.SetCreatedTime(booking.CreatedAt)
		event.SetStartAt(booking.SlotTime)
		event.SetEndAt(booking.SlotTime.Add(time.Hour))
		event.SetSummary(fmt.Sprintf("%s signup", booking.DisplayName))
	}

	logger.InfoContext(ctx, "calendar exported", "events", len(bookings))
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", channelID+".ics"))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(cal.Serialize())); err != nil {
		logger.ErrorContext(ctx, "failed to write calendar", "error", err)
	}
}

func toBookingDTO(booking persistence.Booking) bookingDTO {
	return bookingDTO{
		ID:          booking.ID,
		ChannelID:   booking.ChannelID,
		IdentityKey: booking.IdentityKey,
		DisplayName: booking.DisplayName,
		SlotTime:    booking.SlotTime,
	}
}
