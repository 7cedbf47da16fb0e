package domain

import "time"

// BookingChannel records how the guest reached the business.
type BookingChannel string

const (
	ChannelWebsite           BookingChannel = "WEBSITE"
	ChannelReferral          BookingChannel = "REFERRAL"
	ChannelSocialMedia       BookingChannel = "SOCIAL_MEDIA"
	ChannelWalkIn            BookingChannel = "WALK_IN"
	ChannelPhoneCall         BookingChannel = "PHONE_CALL"
	ChannelReturningCustomer BookingChannel = "RETURNING_CUSTOMER"
	ChannelOther             BookingChannel = "OTHER"
)

// BookingChannels lists the accepted channels.
var BookingChannels = []BookingChannel{
	ChannelWebsite,
	ChannelReferral,
	ChannelSocialMedia,
	ChannelWalkIn,
	ChannelPhoneCall,
	ChannelReturningCustomer,
	ChannelOther,
}

// Valid reports whether c is one of the accepted channels.
func (c BookingChannel) Valid() bool {
	for _, known := range BookingChannels {
		if c == known {
			return true
		}
	}
	return false
}

// PaymentMethod is how the guest will settle the booking.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodWallet       PaymentMethod = "WALLET"
)

// GuestDetails identifies the person the booking is made for.
type GuestDetails struct {
	Name    string         `json:"name" validate:"notblank"`
	Email   string         `json:"email" validate:"required,email"`
	Phone   string         `json:"phone" validate:"required,phone"`
	Channel BookingChannel `json:"channel" validate:"channel"`
	Purpose string         `json:"purpose,omitempty"`
}

// BookingStatus is the server-side status of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
)

// BookedSegment is a segment as recorded on the booking.
type BookedSegment struct {
	BookingTypeID   string       `json:"bookingTypeId"`
	StartDate       string       `json:"startDate"`
	StartTime       string       `json:"startTime"`
	PickupLocation  string       `json:"pickupLocation"`
	PickupCoords    *Coordinates `json:"pickupCoordinates,omitempty"`
	DropoffLocation string       `json:"dropoffLocation"`
	DropoffCoords   *Coordinates `json:"dropoffCoordinates,omitempty"`
}

// Booking is the confirmed result of a calculation.
type Booking struct {
	BookingID          string          `json:"bookingId"`
	VehicleID          string          `json:"vehicleId"`
	CalculationID      string          `json:"calculationId"`
	Status             BookingStatus   `json:"status"`
	TotalPrice         float64         `json:"totalPrice"`
	BookedAt           time.Time       `json:"bookedAt"`
	Segments           []BookedSegment `json:"segments"`
	PrimaryPhoneNumber string          `json:"primaryPhoneNumber,omitempty"`
	InvoiceURL         string          `json:"invoiceUrl,omitempty"`
}
