package postgres

import (
	"context"
	"database/sql"
	"errors"

	"bookingdesk/internal/domain"
	"bookingdesk/internal/repository"
)

const defaultJournalLimit = 50

// JournalRepository is a PostgreSQL implementation of repository.JournalRepository.
type JournalRepository struct {
	q Querier
}

// NewJournalRepository creates a new PostgreSQL journal repository.
func NewJournalRepository(db *sql.DB) *JournalRepository {
	return &JournalRepository{q: db}
}

// Create persists a new journal entry.
func (r *JournalRepository) Create(ctx context.Context, entry *domain.JournalEntry) error {
	query := `
		INSERT INTO booking_journal (
			id, session_id, booking_id, vehicle_id, calculation_id,
			total_price, segment_count, guest_email, channel, payment_method, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.q.ExecContext(ctx, query,
		entry.ID,
		entry.SessionID,
		entry.BookingID,
		entry.VehicleID,
		entry.CalculationID,
		entry.TotalPrice,
		entry.SegmentCount,
		entry.GuestEmail,
		entry.Channel,
		entry.PaymentMethod,
		entry.CreatedAt,
	)

	return err
}

// GetByBookingID retrieves the entry for a booking.
func (r *JournalRepository) GetByBookingID(ctx context.Context, bookingID string) (*domain.JournalEntry, error) {
	query := `
		SELECT id, session_id, booking_id, vehicle_id, calculation_id,
			total_price, segment_count, guest_email, channel, payment_method, created_at
		FROM booking_journal WHERE booking_id = $1
	`

	entry, err := scanJournalEntry(r.q.QueryRowContext(ctx, query, bookingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return entry, nil
}

// ListRecent returns the newest entries first. Non-positive limits use the default.
func (r *JournalRepository) ListRecent(ctx context.Context, limit int) ([]*domain.JournalEntry, error) {
	if limit <= 0 {
		limit = defaultJournalLimit
	}

	query := `
		SELECT id, session_id, booking_id, vehicle_id, calculation_id,
			total_price, segment_count, guest_email, channel, payment_method, created_at
		FROM booking_journal
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.q.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.JournalEntry, 0)
	for rows.Next() {
		entry, err := scanJournalEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJournalEntry(row rowScanner) (*domain.JournalEntry, error) {
	var entry domain.JournalEntry
	err := row.Scan(
		&entry.ID,
		&entry.SessionID,
		&entry.BookingID,
		&entry.VehicleID,
		&entry.CalculationID,
		&entry.TotalPrice,
		&entry.SegmentCount,
		&entry.GuestEmail,
		&entry.Channel,
		&entry.PaymentMethod,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
