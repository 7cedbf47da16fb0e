package service

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"bookingdesk/internal/domain"
)

type fakeSearchClient struct {
	mu      sync.Mutex
	queries []url.Values
	page    domain.Page
	err     error
}

func (f *fakeSearchClient) SearchVehicles(ctx context.Context, q url.Values) (domain.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	return f.page, f.err
}

func (f *fakeSearchClient) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

type fakeCalcClient struct {
	calc domain.Calculation
	err  error
}

func (f *fakeCalcClient) Calculate(ctx context.Context, vehicleID string, segments []domain.Segment) (domain.Calculation, error) {
	return f.calc, f.err
}

type fakeBookingClient struct {
	calls   int32
	booking domain.Booking
	err     error
}

func (f *fakeBookingClient) CreateBooking(ctx context.Context, calculationID string, guest domain.GuestDetails, method domain.PaymentMethod) (domain.Booking, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.booking, f.err
}

type fakeLocks struct {
	mu         sync.Mutex
	held       map[string]bool
	consumed   map[string]string
	acquireErr error
}

func newFakeLocks() *fakeLocks {
	return &fakeLocks{held: map[string]bool{}, consumed: map[string]string{}}
}

func (f *fakeLocks) AcquireConfirmLock(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.acquireErr != nil {
		return false, f.acquireErr
	}
	if f.held[id] {
		return false, nil
	}
	f.held[id] = true
	return true, nil
}

func (f *fakeLocks) ReleaseConfirmLock(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.held, id)
	return nil
}

func (f *fakeLocks) MarkConsumed(ctx context.Context, id, bookingID string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.consumed[id] = bookingID
	return nil
}

func (f *fakeLocks) ConsumedBy(ctx context.Context, id string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.consumed[id]
	return b, ok, nil
}

type fakeJournal struct {
	mu        sync.Mutex
	entries   []*domain.JournalEntry
	createErr error
}

func (f *fakeJournal) Create(ctx context.Context, e *domain.JournalEntry) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeJournal) GetByBookingID(ctx context.Context, id string) (*domain.JournalEntry, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeJournal) ListRecent(ctx context.Context, limit int) ([]*domain.JournalEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries, nil
}
