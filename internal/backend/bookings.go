package backend

import (
	"context"
	"net/url"

	"bookingdesk/internal/domain"
)

// SearchVehicles runs GET /vehicles/search with a prepared query.
func (c *Client) SearchVehicles(ctx context.Context, query url.Values) (domain.Page, error) {
	var page pageDTO
	if err := c.get(ctx, "/vehicles/search", query, &page); err != nil {
		return domain.Page{}, err
	}
	return page.toDomain(), nil
}

// Calculate requests a price calculation for the ordered segments.
func (c *Client) Calculate(ctx context.Context, vehicleID string, segments []domain.Segment) (domain.Calculation, error) {
	req := calculateRequest{
		VehicleID: vehicleID,
		Segments:  make([]segmentDTO, 0, len(segments)),
	}
	for _, s := range segments {
		req.Segments = append(req.Segments, segmentFromDomain(s))
	}

	var calc calculationDTO
	if err := c.post(ctx, "/bookings/calculate", req, &calc); err != nil {
		return domain.Calculation{}, err
	}
	return calc.toDomain(), nil
}

// CreateBooking converts a calculation into a booking.
func (c *Client) CreateBooking(ctx context.Context, calculationID string, guest domain.GuestDetails, method domain.PaymentMethod) (domain.Booking, error) {
	req := createBookingRequest{
		CalculationID: calculationID,
		GuestDetails: guestDTO{
			FullName:    guest.Name,
			Email:       guest.Email,
			PhoneNumber: guest.Phone,
			Channel:     string(guest.Channel),
			Purpose:     guest.Purpose,
		},
		PaymentMethod: string(method),
	}

	var booking bookingDTO
	if err := c.post(ctx, "/bookings", req, &booking); err != nil {
		return domain.Booking{}, err
	}
	out := booking.toDomain()
	if out.BookingID != "" {
		out.InvoiceURL = c.InvoiceURL(out.BookingID)
	}
	return out, nil
}
