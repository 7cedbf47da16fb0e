package wizard

import (
	"time"

	"bookingdesk/internal/domain"
)

// View is a read-only snapshot of a session for the console.
type View struct {
	SessionID   string                      `json:"sessionId"`
	Step        StepKind                    `json:"step"`
	Filters     *domain.SearchFilters       `json:"filters,omitempty"`
	Results     *domain.Page                `json:"results,omitempty"`
	Vehicle     *domain.VehicleSearchResult `json:"vehicle,omitempty"`
	Segments    []SegmentView               `json:"segments,omitempty"`
	Calculation *CalculationView            `json:"calculation,omitempty"`
	Booking     *domain.Booking             `json:"booking,omitempty"`
	Notices     []domain.Notice             `json:"notices"`
	Searching   bool                        `json:"searching"`
	Pricing     bool                        `json:"pricing"`
	Confirming  bool                        `json:"confirming"`
	CanPrice    bool                        `json:"canPrice"`
	CanConfirm  bool                        `json:"canConfirm"`
	LastActive  time.Time                   `json:"lastActive"`
}

// SegmentView is a segment with its address states spelled out.
type SegmentView struct {
	Index         int         `json:"index"`
	BookingTypeID string      `json:"bookingTypeId"`
	StartDate     string      `json:"startDate"`
	StartTime     string      `json:"startTime"`
	Pickup        AddressView `json:"pickup"`
	Dropoff       AddressView `json:"dropoff"`
}

// AddressView shows typed text, its state and coordinates when resolved.
type AddressView struct {
	Input       string              `json:"input"`
	State       domain.AddressState `json:"state"`
	Coordinates *domain.Coordinates `json:"coordinates,omitempty"`
}

// CalculationView is a calculation with display line items.
type CalculationView struct {
	domain.Calculation
	LineItems []domain.LineItem `json:"lineItems"`
}

// View returns a snapshot of the session.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		SessionID:  c.id,
		Step:       c.step.Kind(),
		Notices:    append([]domain.Notice{}, c.notices...),
		Searching:  c.searching,
		Pricing:    c.pricing,
		Confirming: c.confirming,
		LastActive: c.lastActive,
	}

	switch s := c.step.(type) {
	case SearchStep:
		v.Filters = &s.Filters
	case ResultsStep:
		v.Filters = &s.Filters
		v.Results = &s.Page
	case DetailsStep:
		fillDetails(&v, s)
		v.CanPrice = s.Segments.ValidateForPricing() == nil
	case ConfirmStep:
		fillDetails(&v, s.details)
		v.Calculation = &CalculationView{Calculation: s.calc, LineItems: s.calc.LineItems()}
		v.CanConfirm = !c.confirming
	case SuccessStep:
		v.Vehicle = &s.Vehicle
		v.Booking = &s.Booking
	}
	return v
}

func fillDetails(v *View, s DetailsStep) {
	vehicle := s.Vehicle()
	v.Filters = &s.Filters
	v.Vehicle = &vehicle
	for i, seg := range s.Segments.Segments() {
		v.Segments = append(v.Segments, SegmentView{
			Index:         i,
			BookingTypeID: seg.BookingTypeID,
			StartDate:     seg.StartDate,
			StartTime:     seg.StartTime,
			Pickup:        addressView(seg.Pickup),
			Dropoff:       addressView(seg.Dropoff),
		})
	}
}

func addressView(a domain.Address) AddressView {
	av := AddressView{Input: a.Input(), State: a.State()}
	if coords, ok := a.Coordinates(); ok {
		av.Coordinates = &coords
	}
	return av
}
