package tests

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"bookingdesk/internal/domain"
	"bookingdesk/internal/redis"
	"bookingdesk/internal/repository"
	"bookingdesk/internal/service"
	"bookingdesk/internal/wizard"
)

// ──────────────────────────────────────────────
// MOCK MARKETPLACE BACKEND
// ──────────────────────────────────────────────

// MockBackend is a mock of the marketplace API client. Hooks override the
// default behaviour per call and may block to simulate slow responses.
type MockBackend struct {
	mu           sync.Mutex
	page         domain.Page
	calcSegments map[string][]domain.Segment
	nextCalc     int

	// Counters for verification
	SearchCallCount    int32
	CalculateCallCount int32
	BookingCallCount   int32

	// Error injection
	SearchError    error
	CalculateError error
	BookingError   error

	// Hooks
	OnSearch    func(query url.Values) (domain.Page, error)
	OnCalculate func(vehicleID string, segments []domain.Segment) (domain.Calculation, error)
	OnBooking   func(calculationID string) (domain.Booking, error)

	LastQuery url.Values
}

// NewMockBackend creates a mock backend serving page for every search.
func NewMockBackend(page domain.Page) *MockBackend {
	return &MockBackend{
		page:         page,
		calcSegments: make(map[string][]domain.Segment),
	}
}

func (m *MockBackend) SearchVehicles(ctx context.Context, query url.Values) (domain.Page, error) {
	atomic.AddInt32(&m.SearchCallCount, 1)
	m.mu.Lock()
	m.LastQuery = query
	hook := m.OnSearch
	m.mu.Unlock()

	if hook != nil {
		return hook(query)
	}
	if m.SearchError != nil {
		return domain.Page{}, m.SearchError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.page, nil
}

func (m *MockBackend) Calculate(ctx context.Context, vehicleID string, segments []domain.Segment) (domain.Calculation, error) {
	atomic.AddInt32(&m.CalculateCallCount, 1)
	if m.OnCalculate != nil {
		return m.OnCalculate(vehicleID, segments)
	}
	if m.CalculateError != nil {
		return domain.Calculation{}, m.CalculateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextCalc++
	id := fmt.Sprintf("calc-%d", m.nextCalc)
	m.calcSegments[id] = segments
	base := 20000.0 * float64(len(segments))
	return domain.Calculation{
		CalculationID:        id,
		BasePrice:            base,
		PlatformFeeAmount:    1500,
		FinalPrice:           base + 1500,
		AppliedGeofenceNames: []string{},
	}, nil
}

// RegisterCalculation makes a calculation id known to CreateBooking.
func (m *MockBackend) RegisterCalculation(id string, segments []domain.Segment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calcSegments[id] = segments
}

func (m *MockBackend) CreateBooking(ctx context.Context, calculationID string, guest domain.GuestDetails, method domain.PaymentMethod) (domain.Booking, error) {
	atomic.AddInt32(&m.BookingCallCount, 1)
	if m.OnBooking != nil {
		return m.OnBooking(calculationID)
	}
	if m.BookingError != nil {
		return domain.Booking{}, m.BookingError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	segments := m.calcSegments[calculationID]
	booked := make([]domain.BookedSegment, 0, len(segments))
	for _, s := range segments {
		booked = append(booked, domain.BookedSegment{
			BookingTypeID:   s.BookingTypeID,
			StartDate:       s.StartDate,
			StartTime:       s.StartTime,
			PickupLocation:  s.Pickup.Input(),
			DropoffLocation: s.Dropoff.Input(),
		})
	}
	return domain.Booking{
		BookingID:          "bk-" + calculationID,
		CalculationID:      calculationID,
		Status:             domain.BookingStatusConfirmed,
		TotalPrice:         20000*float64(len(segments)) + 1500,
		BookedAt:           time.Now(),
		Segments:           booked,
		PrimaryPhoneNumber: guest.Phone,
	}, nil
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of redis.LockStoreInterface.
type MockLockStore struct {
	mu       sync.Mutex
	locks    map[string]bool
	consumed map[string]string

	AcquireCallCount int32
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks:    make(map[string]bool),
		consumed: make(map[string]string),
	}
}

func (m *MockLockStore) AcquireConfirmLock(ctx context.Context, calculationID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[calculationID] {
		return false, nil
	}
	m.locks[calculationID] = true
	return true, nil
}

func (m *MockLockStore) ReleaseConfirmLock(ctx context.Context, calculationID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, calculationID)
	return nil
}

func (m *MockLockStore) MarkConsumed(ctx context.Context, calculationID, bookingID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.consumed[calculationID] = bookingID
	return nil
}

func (m *MockLockStore) ConsumedBy(ctx context.Context, calculationID string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	bookingID, ok := m.consumed[calculationID]
	return bookingID, ok, nil
}

// ──────────────────────────────────────────────
// MOCK JOURNAL REPOSITORY
// ──────────────────────────────────────────────

// MockJournalRepository is a mock implementation of JournalRepository.
type MockJournalRepository struct {
	mu      sync.RWMutex
	entries []*domain.JournalEntry

	CreateCallCount int32
	CreateError     error
}

// NewMockJournalRepository creates a new mock journal repository.
func NewMockJournalRepository() *MockJournalRepository {
	return &MockJournalRepository{}
}

func (m *MockJournalRepository) Create(ctx context.Context, entry *domain.JournalEntry) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockJournalRepository) GetByBookingID(ctx context.Context, bookingID string) (*domain.JournalEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.entries {
		if e.BookingID == bookingID {
			found := *e
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockJournalRepository) ListRecent(ctx context.Context, limit int) ([]*domain.JournalEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.JournalEntry, 0, len(m.entries))
	for i := len(m.entries) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		out = append(out, m.entries[i])
	}
	return out, nil
}

// ──────────────────────────────────────────────
// MOCK GEOCODER
// ──────────────────────────────────────────────

// MockGeocoder resolves from a fixed table.
type MockGeocoder struct {
	mu     sync.Mutex
	places map[string]domain.Place

	ResolveCallCount int32
	ResolveError     error
	OnResolve        func(text string)
}

// NewMockGeocoder creates a geocoder that knows places by label and by place id.
func NewMockGeocoder(places ...domain.Place) *MockGeocoder {
	m := &MockGeocoder{places: make(map[string]domain.Place)}
	for _, p := range places {
		m.places[p.Label] = p
		if p.PlaceID != "" {
			m.places[p.PlaceID] = p
		}
	}
	return m
}

func (m *MockGeocoder) Resolve(ctx context.Context, text string) (domain.Place, bool, error) {
	atomic.AddInt32(&m.ResolveCallCount, 1)
	if m.OnResolve != nil {
		m.OnResolve(text)
	}
	if m.ResolveError != nil {
		return domain.Place{}, false, m.ResolveError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.places[text]
	return p, ok, nil
}

func (m *MockGeocoder) Place(ctx context.Context, placeID string) (domain.Place, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.places[placeID]
	if !ok {
		return domain.Place{}, fmt.Errorf("place %s: NOT_FOUND", placeID)
	}
	return p, nil
}

// ──────────────────────────────────────────────
// FIXTURES
// ──────────────────────────────────────────────

// Ensure mocks implement interfaces.
var (
	_ redis.LockStoreInterface     = (*MockLockStore)(nil)
	_ repository.JournalRepository = (*MockJournalRepository)(nil)
	_ wizard.Geocoder              = (*MockGeocoder)(nil)
)

// Harness wires a controller to real services backed by mocks.
type Harness struct {
	Backend  *MockBackend
	Locks    *MockLockStore
	Journal  *MockJournalRepository
	Geocoder *MockGeocoder
	Wizard   *wizard.Controller
}

// NewHarness builds a controller serving page from the mock backend.
func NewHarness(page domain.Page) *Harness {
	backend := NewMockBackend(page)
	locks := NewMockLockStore()
	journal := NewMockJournalRepository()
	geocoder := NewMockGeocoder(
		domain.Place{Label: "Ikeja, Lagos", PlaceID: "pl-ikeja", Coordinates: domain.Coordinates{Lat: 6.6018, Lng: 3.3515}},
		domain.Place{Label: "Lekki Phase 1, Lagos", PlaceID: "pl-lekki", Coordinates: domain.Coordinates{Lat: 6.4474, Lng: 3.4723}},
	)

	ctrl := wizard.NewController("sess-test", wizard.Deps{
		Searcher:      service.NewVehicleSearchService(backend, 12, nil),
		Pricer:        service.NewCalculationRequester(backend, nil),
		Confirmer:     service.NewBookingConfirmer(backend, locks, journal, time.Second, nil),
		Geocoder:      geocoder,
		DebounceDelay: 20 * time.Millisecond,
	})

	return &Harness{Backend: backend, Locks: locks, Journal: journal, Geocoder: geocoder, Wizard: ctrl}
}

// SamplePage returns a page with a bookable and an unbookable vehicle.
func SamplePage() domain.Page {
	return domain.Page{
		Items: []domain.VehicleSearchResult{
			{
				ID:         "veh-camry",
				Identifier: "LAG-123",
				Name:       "Toyota Camry",
				PricingOptions: []domain.PricingOption{
					{BookingTypeID: "bt1295", BookingTypeName: "Hourly", Price: 20000},
				},
			},
			{ID: "veh-bus", Name: "Coaster Bus"},
		},
		PageSize:   12,
		TotalItems: 2,
		TotalPages: 1,
	}
}

// ValidGuest returns guest details that pass validation.
func ValidGuest() domain.GuestDetails {
	return domain.GuestDetails{
		Name:    "Ada Obi",
		Email:   "ada@example.com",
		Phone:   "+2348012345678",
		Channel: domain.ChannelPhoneCall,
	}
}
