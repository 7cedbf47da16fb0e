package domain

import "time"

// JournalEntry records a booking created through the console.
type JournalEntry struct {
	ID            string         `json:"id"`
	SessionID     string         `json:"sessionId"`
	BookingID     string         `json:"bookingId"`
	VehicleID     string         `json:"vehicleId"`
	CalculationID string         `json:"calculationId"`
	TotalPrice    float64        `json:"totalPrice"`
	SegmentCount  int            `json:"segmentCount"`
	GuestEmail    string         `json:"guestEmail"`
	Channel       BookingChannel `json:"channel"`
	PaymentMethod PaymentMethod  `json:"paymentMethod"`
	CreatedAt     time.Time      `json:"createdAt"`
}
