package repository

import (
	"context"

	"bookingdesk/internal/domain"
)

// JournalRepository persists bookings created through the console.
type JournalRepository interface {
	// Create persists a new journal entry.
	Create(ctx context.Context, entry *domain.JournalEntry) error

	// GetByBookingID retrieves the entry for a booking.
	GetByBookingID(ctx context.Context, bookingID string) (*domain.JournalEntry, error)

	// ListRecent returns the newest entries first.
	ListRecent(ctx context.Context, limit int) ([]*domain.JournalEntry, error)
}
