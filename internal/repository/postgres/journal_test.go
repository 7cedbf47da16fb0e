package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"bookingdesk/internal/domain"
	"bookingdesk/internal/repository"
)

var journalColumns = []string{
	"id", "session_id", "booking_id", "vehicle_id", "calculation_id",
	"total_price", "segment_count", "guest_email", "channel", "payment_method", "created_at",
}

func newMockJournal(t *testing.T) (*JournalRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewJournalRepository(db), mock
}

func TestJournalRepository_Create(t *testing.T) {
	t.Parallel()

	repo, mock := newMockJournal(t)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	entry := &domain.JournalEntry{
		ID:            "jr-1",
		SessionID:     "sess-1",
		BookingID:     "bk-1",
		VehicleID:     "veh-1",
		CalculationID: "calc-abc",
		TotalPrice:    21500,
		SegmentCount:  2,
		GuestEmail:    "ada@example.com",
		Channel:       domain.ChannelWalkIn,
		PaymentMethod: domain.PaymentMethodCash,
		CreatedAt:     now,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO booking_journal")).
		WithArgs("jr-1", "sess-1", "bk-1", "veh-1", "calc-abc", 21500.0, 2, "ada@example.com",
			domain.ChannelWalkIn, domain.PaymentMethodCash, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), entry); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestJournalRepository_GetByBookingID_NotFound(t *testing.T) {
	t.Parallel()

	repo, mock := newMockJournal(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM booking_journal WHERE booking_id = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(journalColumns))

	_, err := repo.GetByBookingID(context.Background(), "missing")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestJournalRepository_ListRecent(t *testing.T) {
	t.Parallel()

	repo, mock := newMockJournal(t)
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WithArgs(defaultJournalLimit).
		WillReturnRows(sqlmock.NewRows(journalColumns).
			AddRow("jr-2", "sess-2", "bk-2", "veh-2", "calc-2", 30000.0, 1, "b@example.com", "PHONE_CALL", "CARD", now).
			AddRow("jr-1", "sess-1", "bk-1", "veh-1", "calc-1", 21500.0, 2, "a@example.com", "WALK_IN", "CASH", now.Add(-time.Hour)))

	entries, err := repo.ListRecent(context.Background(), 0)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].BookingID != "bk-2" || entries[0].Channel != domain.ChannelPhoneCall {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
