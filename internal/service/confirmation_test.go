package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"bookingdesk/internal/backend"
	"bookingdesk/internal/domain"
)

func validGuest() domain.GuestDetails {
	return domain.GuestDetails{
		Name:    "Ada Obi",
		Email:   "ada@example.com",
		Phone:   "+234 801 234 5678",
		Channel: domain.ChannelWalkIn,
	}
}

func TestBookingConfirmer_Success_RecordsJournalAndConsumes(t *testing.T) {
	t.Parallel()

	client := &fakeBookingClient{booking: domain.Booking{
		BookingID:  "bk-1",
		TotalPrice: 21500,
		Segments:   []domain.BookedSegment{{BookingTypeID: "bt1295"}, {BookingTypeID: "bt1295"}},
	}}
	locks := newFakeLocks()
	journal := &fakeJournal{}
	c := NewBookingConfirmer(client, locks, journal, time.Second, nil)

	booking, err := c.Confirm(context.Background(), ConfirmRequest{
		SessionID:     "sess-1",
		VehicleID:     "veh-1",
		CalculationID: "calc-abc",
		Guest:         validGuest(),
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if booking.CalculationID != "calc-abc" || booking.VehicleID != "veh-1" {
		t.Errorf("expected ids filled from request, got %+v", booking)
	}
	if locks.consumed["calc-abc"] != "bk-1" {
		t.Errorf("expected calculation marked consumed by bk-1, got %v", locks.consumed)
	}
	if len(locks.held) != 0 {
		t.Errorf("expected lock released, still held: %v", locks.held)
	}
	if len(journal.entries) != 1 {
		t.Fatalf("expected one journal entry, got %d", len(journal.entries))
	}
	entry := journal.entries[0]
	if entry.SegmentCount != 2 || entry.PaymentMethod != domain.PaymentMethodCash {
		t.Errorf("unexpected journal entry: %+v", entry)
	}

	_, err = c.Confirm(context.Background(), ConfirmRequest{CalculationID: "calc-abc", Guest: validGuest()})
	if !errors.Is(err, ErrCalculationConsumed) {
		t.Fatalf("expected second confirm to be refused, got %v", err)
	}
	if !IsCalculationUnusable(err) || IsCalculationExpired(err) {
		t.Errorf("expected consumed calculation to be unusable but not expired, got %v", err)
	}
	if client.calls != 1 {
		t.Errorf("expected one backend call, got %d", client.calls)
	}
}

func TestBookingConfirmer_ExpiryClassification(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		err        error
		wantExpiry bool
	}{
		{name: "gone", err: &backend.StatusError{StatusCode: http.StatusGone}, wantExpiry: true},
		{name: "expired code", err: &backend.StatusError{StatusCode: http.StatusBadRequest, Code: "CALCULATION_EXPIRED"}, wantExpiry: true},
		{name: "not found code", err: &backend.StatusError{StatusCode: http.StatusNotFound, Code: "CALCULATION_NOT_FOUND"}, wantExpiry: true},
		{name: "server error", err: &backend.StatusError{StatusCode: http.StatusBadGateway}},
		{name: "transport", err: errors.New("timeout")},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			locks := newFakeLocks()
			c := NewBookingConfirmer(&fakeBookingClient{err: tc.err}, locks, nil, time.Second, nil)
			_, err := c.Confirm(context.Background(), ConfirmRequest{CalculationID: "calc-1", Guest: validGuest()})

			if !errors.Is(err, ErrConfirmation) {
				t.Fatalf("expected ErrConfirmation, got %v", err)
			}
			if got := IsCalculationExpired(err); got != tc.wantExpiry {
				t.Errorf("expected expiry=%v, got %v (%v)", tc.wantExpiry, got, err)
			}
			if len(locks.consumed) != 0 {
				t.Error("expected failed confirmation not to consume the calculation")
			}
			if len(locks.held) != 0 {
				t.Error("expected lock released after failure")
			}
		})
	}
}

func TestBookingConfirmer_LockHeldElsewhere(t *testing.T) {
	t.Parallel()

	locks := newFakeLocks()
	locks.held["calc-1"] = true
	client := &fakeBookingClient{}
	c := NewBookingConfirmer(client, locks, nil, time.Second, nil)

	_, err := c.Confirm(context.Background(), ConfirmRequest{CalculationID: "calc-1", Guest: validGuest()})
	if !errors.Is(err, ErrConfirmationLocked) {
		t.Fatalf("expected ErrConfirmationLocked, got %v", err)
	}
	if client.calls != 0 {
		t.Errorf("expected no backend call, got %d", client.calls)
	}
}

func TestBookingConfirmer_RedisDownStillConfirms(t *testing.T) {
	t.Parallel()

	locks := newFakeLocks()
	locks.acquireErr = errors.New("redis: connection refused")
	client := &fakeBookingClient{booking: domain.Booking{BookingID: "bk-2"}}
	journal := &fakeJournal{createErr: errors.New("db down")}
	c := NewBookingConfirmer(client, locks, journal, time.Second, nil)

	booking, err := c.Confirm(context.Background(), ConfirmRequest{CalculationID: "calc-2", Guest: validGuest(), SegmentCount: 1})
	if err != nil {
		t.Fatalf("expected confirmation to proceed, got: %v", err)
	}
	if booking.BookingID != "bk-2" {
		t.Errorf("unexpected booking: %+v", booking)
	}
}

func TestBookingConfirmer_InvalidGuest_NoBackendCall(t *testing.T) {
	t.Parallel()

	client := &fakeBookingClient{}
	c := NewBookingConfirmer(client, nil, nil, time.Second, nil)

	guest := validGuest()
	guest.Email = "not-an-email"
	_, err := c.Confirm(context.Background(), ConfirmRequest{CalculationID: "calc-1", Guest: guest})
	if !errors.Is(err, ErrValidation) || !errors.Is(err, ErrInvalidGuestDetails) {
		t.Fatalf("expected guest validation error, got %v", err)
	}
	if client.calls != 0 {
		t.Errorf("expected no backend call, got %d", client.calls)
	}
}
