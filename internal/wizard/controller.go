package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"bookingdesk/internal/domain"
	"bookingdesk/internal/logger"
	"bookingdesk/internal/service"
)

const defaultMaxNotices = 20

// Searcher runs vehicle searches.
type Searcher interface {
	Search(ctx context.Context, filters domain.SearchFilters) (domain.Page, error)
}

// Pricer requests price calculations.
type Pricer interface {
	Calculate(ctx context.Context, vehicleID string, segments []domain.Segment) (domain.Calculation, error)
}

// Confirmer converts calculations into bookings.
type Confirmer interface {
	Confirm(ctx context.Context, req service.ConfirmRequest) (domain.Booking, error)
}

// Geocoder resolves typed addresses and selected predictions.
type Geocoder interface {
	Resolve(ctx context.Context, text string) (domain.Place, bool, error)
	Place(ctx context.Context, placeID string) (domain.Place, error)
}

// Notifier turns outcomes into operator notices.
type Notifier interface {
	FromError(ctx context.Context, sessionID string, err error) domain.Notice
	BookingConfirmed(ctx context.Context, sessionID string, booking domain.Booking) domain.Notice
}

// Deps contains the collaborators of a Controller. Geocoder and Notifier may be nil.
type Deps struct {
	Searcher      Searcher
	Pricer        Pricer
	Confirmer     Confirmer
	Geocoder      Geocoder
	Notifier      Notifier
	Log           *logger.Logger
	DebounceDelay time.Duration
	MaxNotices    int
}

// Controller drives one operator's booking wizard.
//
// State is guarded by mu, which is never held across a collaborator call.
// Searches and pricing requests take a ticket from searchSeq and priceSeq;
// a response is applied only if its ticket is still the latest, so the
// most recent request wins regardless of arrival order.
type Controller struct {
	id        string
	searcher  Searcher
	pricer    Pricer
	confirmer Confirmer
	geocoder  Geocoder
	notifier  Notifier
	log       *logger.Logger

	mu         sync.Mutex
	step       Step
	searchSeq  uint64
	priceSeq   uint64
	searching  bool
	pricing    bool
	confirming bool
	notices    []domain.Notice
	maxNotices int
	lastActive time.Time

	debouncer *Debouncer[domain.SearchFilters]
}

// NewController creates a Controller on the search step.
func NewController(id string, deps Deps) *Controller {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = service.NewNotificationService(log)
	}
	maxNotices := deps.MaxNotices
	if maxNotices <= 0 {
		maxNotices = defaultMaxNotices
	}

	c := &Controller{
		id:         id,
		searcher:   deps.Searcher,
		pricer:     deps.Pricer,
		confirmer:  deps.Confirmer,
		geocoder:   deps.Geocoder,
		notifier:   notifier,
		log:        log.WithSession(id),
		step:       SearchStep{},
		maxNotices: maxNotices,
		lastActive: time.Now(),
	}
	c.debouncer = NewDebouncer(deps.DebounceDelay, func(ticket uint64, f domain.SearchFilters) {
		_, _ = c.search(context.Background(), f, ticket)
	})
	return c
}

// ID returns the session id.
func (c *Controller) ID() string {
	return c.id
}

// Step returns the current step.
func (c *Controller) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// LastActive returns when the session was last used.
func (c *Controller) LastActive() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActive
}

// Close cancels any pending debounced search.
func (c *Controller) Close() {
	c.debouncer.Cancel()
}

// ──────────────────────────────────────────────
// SEARCH
// ──────────────────────────────────────────────

// SubmitSearch runs a search immediately, replacing any queued one.
// A proximity search without a date window is rejected before dispatch.
func (c *Controller) SubmitSearch(ctx context.Context, filters domain.SearchFilters) (domain.Page, error) {
	c.debouncer.Cancel()
	return c.search(ctx, filters, 0)
}

// QueueSearch schedules a search after the debounce delay. Only the last
// queued filters are searched. Outcomes show up in the session view.
func (c *Controller) QueueSearch(filters domain.SearchFilters) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	if err := c.requireSearchable(); err != nil {
		return 0, c.fail(context.Background(), err)
	}
	return c.debouncer.Push(filters), nil
}

// ChangePage fetches another page of the current results.
func (c *Controller) ChangePage(ctx context.Context, page int) (domain.Page, error) {
	c.mu.Lock()
	results, ok := c.step.(ResultsStep)
	if !ok {
		err := c.fail(ctx, service.ErrInvalidStep)
		c.mu.Unlock()
		return domain.Page{}, err
	}
	filters := results.Filters.WithPage(page)
	c.mu.Unlock()

	c.debouncer.Cancel()
	return c.search(ctx, filters, 0)
}

// search dispatches filters. A non-zero queued ticket comes from the
// debouncer and is dropped if a submit or cancel replaced it before c.mu
// was taken.
func (c *Controller) search(ctx context.Context, filters domain.SearchFilters, queued uint64) (domain.Page, error) {
	c.mu.Lock()
	if queued != 0 && c.debouncer.Superseded(queued) {
		c.mu.Unlock()
		return domain.Page{}, service.ErrSuperseded
	}
	c.touch()
	if err := c.requireSearchable(); err != nil {
		err = c.fail(ctx, err)
		c.mu.Unlock()
		return domain.Page{}, err
	}
	if err := service.ValidateSearchFilters(filters); err != nil {
		err = c.fail(ctx, err)
		c.mu.Unlock()
		return domain.Page{}, err
	}
	c.searchSeq++
	ticket := c.searchSeq
	c.searching = true
	c.mu.Unlock()

	page, err := c.searcher.Search(ctx, filters)

	c.mu.Lock()
	defer c.mu.Unlock()

	if ticket != c.searchSeq {
		return domain.Page{}, service.ErrSuperseded
	}
	c.searching = false
	if err != nil {
		return domain.Page{}, c.fail(ctx, err)
	}
	if c.requireSearchable() != nil {
		return domain.Page{}, service.ErrSuperseded
	}
	if page.Items == nil {
		page.Items = []domain.VehicleSearchResult{}
	}
	c.step = ResultsStep{Filters: filters, Page: page}
	return page, nil
}

func (c *Controller) requireSearchable() error {
	switch c.step.(type) {
	case SearchStep, ResultsStep:
		return nil
	default:
		return service.ErrInvalidStep
	}
}

// cancelSearch drops any in-flight or queued search.
func (c *Controller) cancelSearch() {
	c.searchSeq++
	c.searching = false
	c.debouncer.Cancel()
}

// ──────────────────────────────────────────────
// VEHICLE AND SEGMENTS
// ──────────────────────────────────────────────

// SelectVehicle moves from results to details with one segment seeded from
// the search filters. The booking type is left for the operator to pick.
func (c *Controller) SelectVehicle(ctx context.Context, vehicleID string) (domain.VehicleSearchResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	results, ok := c.step.(ResultsStep)
	if !ok {
		return domain.VehicleSearchResult{}, c.fail(ctx, service.ErrInvalidStep)
	}
	vehicle, found := results.Page.Find(vehicleID)
	if !found {
		return domain.VehicleSearchResult{}, c.fail(ctx, service.Validation(service.ErrVehicleNotFound))
	}
	if !vehicle.Bookable() {
		return domain.VehicleSearchResult{}, c.fail(ctx, service.Validation(service.ErrVehicleNotBookable))
	}

	c.cancelSearch()
	c.invalidatePricing()
	c.step = DetailsStep{
		Filters:  results.Filters,
		Page:     results.Page,
		Segments: NewSegmentCollection(vehicle, seedSegment(results.Filters)),
	}
	return vehicle, nil
}

func seedSegment(f domain.SearchFilters) domain.Segment {
	pickup := domain.NewAddress(f.Location)
	if f.Pickup != nil {
		pickup = domain.ResolvedAddress(domain.Place{Label: f.Location, Coordinates: *f.Pickup})
	}
	return domain.Segment{
		StartDate: f.StartDate,
		StartTime: f.StartTime,
		Pickup:    pickup,
	}
}

// AddSegment appends a segment and returns its index.
func (c *Controller) AddSegment(ctx context.Context) (int, error) {
	var index int
	err := c.editSegments(ctx, func(s *SegmentCollection) error {
		index = s.AddSegment()
		return nil
	})
	return index, err
}

// RemoveSegment deletes a segment. Removing the only segment fails and
// changes nothing.
func (c *Controller) RemoveSegment(ctx context.Context, index int) error {
	return c.editSegments(ctx, func(s *SegmentCollection) error {
		return s.RemoveSegment(index)
	})
}

// UpdateSegment sets one field of a segment.
func (c *Controller) UpdateSegment(ctx context.Context, index int, field SegmentField, value string) error {
	return c.editSegments(ctx, func(s *SegmentCollection) error {
		return s.UpdateField(index, field, value)
	})
}

// SetLocation resolves a segment address to a place the caller already has.
func (c *Controller) SetLocation(ctx context.Context, index int, kind domain.LocationKind, place domain.Place) error {
	return c.editSegments(ctx, func(s *SegmentCollection) error {
		return s.SetLocation(index, kind, place)
	})
}

// ResolveLocation geocodes the typed text of a segment address. The result is
// dropped if the segment was removed or its text changed meanwhile.
func (c *Controller) ResolveLocation(ctx context.Context, index int, kind domain.LocationKind) (domain.Place, error) {
	c.mu.Lock()
	key, addr, err := c.lookupAddress(index, kind)
	if err == nil && c.geocoder == nil {
		err = service.ErrGeocodingUnavailable
	}
	if err == nil && addr.Input() == "" {
		err = service.Validation(service.ErrLocationNotFound)
	}
	if err != nil {
		err = c.fail(ctx, err)
		c.mu.Unlock()
		return domain.Place{}, err
	}
	text := addr.Input()
	c.mu.Unlock()

	place, found, err := c.geocoder.Resolve(ctx, text)
	if err != nil {
		return domain.Place{}, c.failLocked(ctx, fmt.Errorf("%w: %w", service.ErrGeocoding, err))
	}
	if !found {
		return domain.Place{}, c.failLocked(ctx, service.Validation(service.ErrLocationNotFound))
	}

	err = c.editSegmentByKey(ctx, key, func(s *SegmentCollection, i int) error {
		current, err := s.Address(i, kind)
		if err != nil {
			return err
		}
		if current.Input() != text {
			return service.ErrSuperseded
		}
		return s.SetLocation(i, kind, place)
	})
	if err != nil {
		return domain.Place{}, err
	}
	return place, nil
}

// SelectPlace resolves a segment address from an autocomplete prediction.
func (c *Controller) SelectPlace(ctx context.Context, index int, kind domain.LocationKind, placeID string) (domain.Place, error) {
	c.mu.Lock()
	key, _, err := c.lookupAddress(index, kind)
	if err == nil && c.geocoder == nil {
		err = service.ErrGeocodingUnavailable
	}
	if err != nil {
		err = c.fail(ctx, err)
		c.mu.Unlock()
		return domain.Place{}, err
	}
	c.mu.Unlock()

	place, err := c.geocoder.Place(ctx, placeID)
	if err != nil {
		return domain.Place{}, c.failLocked(ctx, fmt.Errorf("%w: %w", service.ErrGeocoding, err))
	}

	err = c.editSegmentByKey(ctx, key, func(s *SegmentCollection, i int) error {
		return s.SetLocation(i, kind, place)
	})
	if err != nil {
		return domain.Place{}, err
	}
	return place, nil
}

func (c *Controller) lookupAddress(index int, kind domain.LocationKind) (string, domain.Address, error) {
	details, err := c.editableDetails()
	if err != nil {
		return "", domain.Address{}, err
	}
	if !kind.Valid() {
		return "", domain.Address{}, service.Validation(fmt.Errorf("%w: %q", service.ErrInvalidSegmentField, kind))
	}
	key, err := details.Segments.Key(index)
	if err != nil {
		return "", domain.Address{}, err
	}
	addr, err := details.Segments.Address(index, kind)
	return key, addr, err
}

// editSegments applies a segment mutation. Any successful mutation discards the
// live calculation and any pricing request in flight; from the confirm step it
// returns the wizard to details.
func (c *Controller) editSegments(ctx context.Context, fn func(*SegmentCollection) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	if c.confirming {
		return c.fail(ctx, service.ErrConfirmInFlight)
	}
	details, err := c.editableDetails()
	if err != nil {
		return c.fail(ctx, err)
	}
	if err := fn(details.Segments); err != nil {
		return c.fail(ctx, err)
	}
	c.invalidatePricing()
	c.step = details
	return nil
}

func (c *Controller) editSegmentByKey(ctx context.Context, key string, fn func(*SegmentCollection, int) error) error {
	return c.editSegments(ctx, func(s *SegmentCollection) error {
		i, ok := s.IndexOf(key)
		if !ok {
			return service.ErrSuperseded
		}
		return fn(s, i)
	})
}

func (c *Controller) editableDetails() (DetailsStep, error) {
	switch s := c.step.(type) {
	case DetailsStep:
		return s, nil
	case ConfirmStep:
		return s.details, nil
	default:
		return DetailsStep{}, service.ErrInvalidStep
	}
}

func (c *Controller) invalidatePricing() {
	c.priceSeq++
	c.pricing = false
}

// ──────────────────────────────────────────────
// PRICING, CONFIRMATION AND NAVIGATION
// ──────────────────────────────────────────────

// RequestPricing asks the server to price the current segments and moves to
// the confirm step. Every segment needs a booking type the vehicle offers.
func (c *Controller) RequestPricing(ctx context.Context) (domain.Calculation, error) {
	c.mu.Lock()
	c.touch()
	details, ok := c.step.(DetailsStep)
	if !ok {
		err := c.fail(ctx, service.ErrInvalidStep)
		c.mu.Unlock()
		return domain.Calculation{}, err
	}
	if err := details.Segments.ValidateForPricing(); err != nil {
		err = c.fail(ctx, err)
		c.mu.Unlock()
		return domain.Calculation{}, err
	}
	c.priceSeq++
	ticket := c.priceSeq
	c.pricing = true
	vehicleID := details.Vehicle().ID
	segments := details.Segments.Segments()
	c.mu.Unlock()

	calc, err := c.pricer.Calculate(ctx, vehicleID, segments)

	c.mu.Lock()
	defer c.mu.Unlock()

	if ticket != c.priceSeq {
		return domain.Calculation{}, service.ErrSuperseded
	}
	c.pricing = false
	if err != nil {
		return domain.Calculation{}, c.fail(ctx, err)
	}
	current, ok := c.step.(DetailsStep)
	if !ok {
		return domain.Calculation{}, service.ErrSuperseded
	}
	c.step = newConfirmStep(current, calc)
	return calc, nil
}

// Confirm converts the live calculation into a booking. Only one confirmation
// may be outstanding. If the server reports the calculation expired the wizard
// returns to details with the segments intact; other failures keep the
// calculation so the operator can retry.
func (c *Controller) Confirm(ctx context.Context, guest domain.GuestDetails, method domain.PaymentMethod) (domain.Booking, error) {
	c.mu.Lock()
	c.touch()
	if c.confirming {
		err := c.fail(ctx, service.ErrConfirmInFlight)
		c.mu.Unlock()
		return domain.Booking{}, err
	}
	confirm, ok := c.step.(ConfirmStep)
	if !ok {
		err := c.fail(ctx, service.ErrNoCalculation)
		c.mu.Unlock()
		return domain.Booking{}, err
	}
	if err := service.ValidateGuestDetails(guest); err != nil {
		err = c.fail(ctx, err)
		c.mu.Unlock()
		return domain.Booking{}, err
	}
	pm, err := service.ValidatePaymentMethod(string(method))
	if err != nil {
		err = c.fail(ctx, err)
		c.mu.Unlock()
		return domain.Booking{}, err
	}
	c.confirming = true
	req := service.ConfirmRequest{
		SessionID:     c.id,
		VehicleID:     confirm.details.Vehicle().ID,
		CalculationID: confirm.calc.CalculationID,
		Guest:         guest,
		PaymentMethod: pm,
		SegmentCount:  confirm.details.Segments.Len(),
	}
	c.mu.Unlock()

	booking, err := c.confirmer.Confirm(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.confirming = false

	if err != nil {
		if service.IsCalculationUnusable(err) {
			c.invalidatePricing()
			c.step = confirm.details
		}
		return domain.Booking{}, c.fail(ctx, err)
	}

	c.invalidatePricing()
	c.step = SuccessStep{
		Booking:     booking,
		Vehicle:     confirm.details.Vehicle(),
		Calculation: confirm.calc,
	}
	c.addNotice(c.notifier.BookingConfirmed(ctx, c.id, booking))
	return booking, nil
}

// Back moves one step back: confirm to details (discarding the calculation),
// details to results, results to search.
func (c *Controller) Back(ctx context.Context) (StepKind, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	if c.confirming {
		return c.step.Kind(), c.fail(ctx, service.ErrConfirmInFlight)
	}
	switch s := c.step.(type) {
	case ConfirmStep:
		c.invalidatePricing()
		c.step = s.details
	case DetailsStep:
		c.invalidatePricing()
		c.step = ResultsStep{Filters: s.Filters, Page: s.Page}
	case ResultsStep:
		c.cancelSearch()
		c.step = SearchStep{Filters: s.Filters}
	default:
		return c.step.Kind(), c.fail(ctx, service.ErrInvalidStep)
	}
	return c.step.Kind(), nil
}

// Reset starts a new booking after a successful one.
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	if _, ok := c.step.(SuccessStep); !ok {
		return c.fail(ctx, service.ErrInvalidStep)
	}
	c.cancelSearch()
	c.invalidatePricing()
	c.notices = nil
	c.step = SearchStep{}
	return nil
}

// Summary renders the confirmation text for the booking just created.
func (c *Controller) Summary() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.step.(SuccessStep)
	if !ok {
		return "", service.ErrInvalidStep
	}
	return service.FormatBookingSummary(s.Booking, s.Vehicle, s.Calculation), nil
}

// ──────────────────────────────────────────────
// NOTICES
// ──────────────────────────────────────────────

// DismissNotice removes a notice. It reports whether the notice existed.
func (c *Controller) DismissNotice(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, n := range c.notices {
		if n.ID == id {
			c.notices = append(c.notices[:i], c.notices[i+1:]...)
			return true
		}
	}
	return false
}

// fail records a notice for err and returns it. Superseded results are
// dropped silently. Callers hold mu.
func (c *Controller) fail(ctx context.Context, err error) error {
	if errors.Is(err, service.ErrSuperseded) {
		return err
	}
	c.addNotice(c.notifier.FromError(ctx, c.id, err))
	return err
}

func (c *Controller) failLocked(ctx context.Context, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fail(ctx, err)
}

func (c *Controller) addNotice(n domain.Notice) {
	c.notices = append(c.notices, n)
	if over := len(c.notices) - c.maxNotices; over > 0 {
		c.notices = c.notices[over:]
	}
}

func (c *Controller) touch() {
	c.lastActive = time.Now()
}
