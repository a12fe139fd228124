package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/channel-scheduler/internal/persistence"
)

func TestBookingRepository_InsertAndFind(t *testing.T) {
	t.Parallel()

	repo := NewBookingRepository(openTestStore(t))
	ctx := context.Background()
	slot := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)

	if err := repo.InsertBooking(ctx, testBooking("b1", "c1", "user-1", slot)); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	found, err := repo.FindBookingAt(ctx, "c1", slot)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.ID != "b1" || found.IdentityKey != "user-1" {
		t.Fatalf("unexpected booking: %+v", found)
	}
	if !found.SlotTime.Equal(slot) {
		t.Fatalf("slot time mismatch: %v", found.SlotTime)
	}
}

func TestBookingRepository_FindMissingReturnsNotFound(t *testing.T) {
	t.Parallel()

	repo := NewBookingRepository(openTestStore(t))
	_, err := repo.FindBookingAt(context.Background(), "c1", time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC))
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBookingRepository_DuplicateSlotRejected(t *testing.T) {
	t.Parallel()

	repo := NewBookingRepository(openTestStore(t))
	ctx := context.Background()
	slot := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)

	if err := repo.InsertBooking(ctx, testBooking("b1", "c1", "user-1", slot)); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	err := repo.InsertBooking(ctx, testBooking("b2", "c1", "user-2", slot))
	if !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	// Same slot in a different channel is fine.
	if err := repo.InsertBooking(ctx, testBooking("b3", "c2", "user-2", slot)); err != nil {
		t.Fatalf("cross-channel insert failed: %v", err)
	}

	bookings, err := repo.ListBookings(ctx, "c1", persistence.BookingFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(bookings) != 1 {
		t.Fatalf("expected exactly one booking in c1, got %d", len(bookings))
	}
}

func TestBookingRepository_ListOrderedAndFiltered(t *testing.T) {
	t.Parallel()

	repo := NewBookingRepository(openTestStore(t))
	ctx := context.Background()

	slots := []time.Time{
		time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 2, 10, 0, 0, 0, time.UTC),
	}
	for i, slot := range slots {
		booking := testBooking(string(rune('a'+i)), "c1", "user-1", slot)
		if err := repo.InsertBooking(ctx, booking); err != nil {
			t.Fatalf("insert %d failed: %v", i, err)
		}
	}

	bookings, err := repo.ListBookings(ctx, "c1", persistence.BookingFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(bookings) != 3 {
		t.Fatalf("expected 3 bookings, got %d", len(bookings))
	}
	for i := 1; i < len(bookings); i++ {
		if bookings[i].SlotTime.Before(bookings[i-1].SlotTime) {
			t.Fatalf("bookings not in ascending slot order: %v", bookings)
		}
	}

	from := time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC)
	upcoming, err := repo.ListBookings(ctx, "c1", persistence.BookingFilter{From: &from})
	if err != nil {
		t.Fatalf("filtered list failed: %v", err)
	}
	if len(upcoming) != 2 {
		t.Fatalf("expected 2 bookings at or after %v, got %d", from, len(upcoming))
	}
}

func TestBookingRepository_DeleteForIdentity(t *testing.T) {
	t.Parallel()

	repo := NewBookingRepository(openTestStore(t))
	ctx := context.Background()
	now := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	seed := []persistence.Booking{
		testBooking("b1", "c1", "user-1", now.Add(24*time.Hour)),
		testBooking("b2", "c1", "user-1", now.Add(48*time.Hour)),
		testBooking("b3", "c1", "user-1", now.Add(-24*time.Hour)),
		testBooking("b4", "c1", "user-2", now.Add(72*time.Hour)),
	}
	for _, booking := range seed {
		if err := repo.InsertBooking(ctx, booking); err != nil {
			t.Fatalf("insert %s failed: %v", booking.ID, err)
		}
	}

	// From-bounded delete leaves the expired row and other identities alone.
	count, err := repo.DeleteBookingsForIdentity(ctx, "c1", "user-1", &now)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 deletions, got %d", count)
	}

	remaining, err := repo.ListBookings(ctx, "c1", persistence.BookingFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(remaining) != 2 {
		t.Fatalf("expected 2 remaining bookings, got %d", len(remaining))
	}
}

func TestBookingRepository_DeleteBookingAt(t *testing.T) {
	t.Parallel()

	repo := NewBookingRepository(openTestStore(t))
	ctx := context.Background()
	slot := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)

	if err := repo.InsertBooking(ctx, testBooking("b1", "c1", "user-1", slot)); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	// Wrong identity does not remove the row.
	removed, err := repo.DeleteBookingAt(ctx, "c1", "user-2", slot)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if removed {
		t.Fatal("expected no deletion for mismatched identity")
	}

	removed, err = repo.DeleteBookingAt(ctx, "c1", "user-1", slot)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !removed {
		t.Fatal("expected deletion for matching identity and slot")
	}

	removed, err = repo.DeleteBookingAt(ctx, "c1", "user-1", slot)
	if err != nil {
		t.Fatalf("repeat delete failed: %v", err)
	}
	if removed {
		t.Fatal("expected second delete to report no match")
	}
}

func TestBookingRepository_DeleteBefore(t *testing.T) {
	t.Parallel()

	repo := NewBookingRepository(openTestStore(t))
	ctx := context.Background()
	cutoff := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

	if err := repo.InsertBooking(ctx, testBooking("b1", "c1", "user-1", cutoff.Add(-time.Hour))); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if err := repo.InsertBooking(ctx, testBooking("b2", "c1", "user-1", cutoff)); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if err := repo.InsertBooking(ctx, testBooking("b3", "c1", "user-1", cutoff.Add(time.Hour))); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	count, err := repo.DeleteBookingsBefore(ctx, "c1", cutoff)
	if err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 purged booking, got %d", count)
	}

	remaining, err := repo.ListBookings(ctx, "c1", persistence.BookingFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(remaining) != 2 {
		t.Fatalf("expected bookings at and after cutoff to survive, got %d", len(remaining))
	}
}

func TestBookingRepository_DeleteForChannelAndByID(t *testing.T) {
	t.Parallel()

	repo := NewBookingRepository(openTestStore(t))
	ctx := context.Background()
	slot := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)

	if err := repo.InsertBooking(ctx, testBooking("b1", "c1", "user-1", slot)); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if err := repo.InsertBooking(ctx, testBooking("b2", "c1", "user-2", slot.Add(time.Hour))); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if err := repo.InsertBooking(ctx, testBooking("b3", "c2", "user-1", slot)); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	count, err := repo.DeleteBookingsForChannel(ctx, "c1")
	if err != nil {
		t.Fatalf("channel delete failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 deletions, got %d", count)
	}

	if err := repo.DeleteBooking(ctx, "b3"); err != nil {
		t.Fatalf("delete by id failed: %v", err)
	}
	if err := repo.DeleteBooking(ctx, "b3"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing id, got %v", err)
	}
}

func TestBookingRepository_ListChannelIDs(t *testing.T) {
	t.Parallel()

	repo := NewBookingRepository(openTestStore(t))
	ctx := context.Background()
	slot := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)

	ids, err := repo.ListChannelIDs(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no channels, got %v", ids)
	}

	seed := []persistence.Booking{
		testBooking("b1", "c2", "user-1", slot),
		testBooking("b2", "c1", "user-1", slot),
		testBooking("b3", "c1", "user-2", slot.Add(time.Hour)),
	}
	for _, booking := range seed {
		if err := repo.InsertBooking(ctx, booking); err != nil {
			t.Fatalf("insert %s failed: %v", booking.ID, err)
		}
	}

	ids, err = repo.ListChannelIDs(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "c1" || ids[1] != "c2" {
		t.Fatalf("expected distinct sorted channel ids, got %v", ids)
	}
}
