package service

import (
	"errors"
	"fmt"

	"bookingdesk/internal/domain"
)

// Error classes. Every error surfaced to the operator matches exactly one of
// these with errors.Is, alongside a more specific sentinel where one applies.
var (
	// ErrValidation is returned for input rejected locally, before any network call.
	ErrValidation = errors.New("validation error")

	// ErrSearch is returned when a vehicle search fails.
	ErrSearch = errors.New("search error")

	// ErrPricing is returned when a price calculation fails.
	ErrPricing = errors.New("pricing error")

	// ErrConfirmation is returned when converting a calculation into a booking fails.
	ErrConfirmation = errors.New("confirmation error")

	// ErrUpload is reserved for document uploads handled by adjacent screens.
	ErrUpload = errors.New("upload error")

	// ErrGeocoding is returned when an address cannot be resolved.
	ErrGeocoding = errors.New("geocoding error")
)

var (
	// ErrProximityWindow is returned when pickup coordinates are given without both dates.
	ErrProximityWindow = errors.New("proximity search requires start and end dates")

	// ErrBookingTypeMissing is returned when a segment has no booking type.
	ErrBookingTypeMissing = errors.New("segment booking type is required")

	// ErrBookingTypeUnsupported is returned when a segment's booking type is not offered by the vehicle.
	ErrBookingTypeUnsupported = errors.New("booking type not offered by vehicle")

	// ErrVehicleNotBookable is returned when selecting a vehicle without pricing options.
	ErrVehicleNotBookable = errors.New("vehicle has no pricing options")

	// ErrVehicleNotFound is returned when the selected vehicle is not on the current page.
	ErrVehicleNotFound = errors.New("vehicle not in current results")

	// ErrInvalidGuestDetails is returned when guest name, email, phone or channel is invalid.
	ErrInvalidGuestDetails = errors.New("invalid guest details")

	// ErrInvalidPaymentMethod is returned when payment method is invalid.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrLastSegment is returned when removing the only segment.
	ErrLastSegment = errors.New("a booking needs at least one segment")

	// ErrSegmentIndex is returned for an out of range segment index.
	ErrSegmentIndex = errors.New("segment index out of range")

	// ErrInvalidSegmentField is returned when updating an unknown segment field.
	ErrInvalidSegmentField = errors.New("unknown segment field")

	// ErrLocationNotFound is returned when geocoding finds no match.
	ErrLocationNotFound = errors.New("location not found")

	// ErrPricingRejected is returned when the server refuses to price the segments.
	ErrPricingRejected = errors.New("pricing rejected")

	// ErrMissingCalculationID is returned when the server prices without issuing an id.
	ErrMissingCalculationID = errors.New("calculation id missing from response")

	// ErrCalculationExpired is returned when the server no longer honours a calculation.
	ErrCalculationExpired = errors.New("calculation expired")

	// ErrCalculationConsumed is returned when a calculation already produced a booking.
	ErrCalculationConsumed = errors.New("calculation already used")

	// ErrConfirmationLocked is returned when another confirmation for the calculation is running.
	ErrConfirmationLocked = errors.New("calculation is being confirmed elsewhere")
)

// Flow errors. These come from the wizard state machine rather than a collaborator.
var (
	// ErrInvalidStep is returned when an operation is not available on the current step.
	ErrInvalidStep = errors.New("operation not available on current step")

	// ErrNoCalculation is returned when confirming without a live calculation.
	ErrNoCalculation = errors.New("no live calculation")

	// ErrConfirmInFlight is returned for a second confirm while one is outstanding.
	ErrConfirmInFlight = errors.New("confirmation already in progress")

	// ErrSuperseded is returned when a newer request replaced this one. It is never shown.
	ErrSuperseded = errors.New("request superseded")

	// ErrSessionNotFound is returned for unknown wizard sessions.
	ErrSessionNotFound = errors.New("session not found")

	// ErrGeocodingUnavailable is returned when no geocoder is configured.
	ErrGeocodingUnavailable = errors.New("geocoding unavailable")
)

// classify wraps a specific error with its class so both match errors.Is.
func classify(class, err error) error {
	return fmt.Errorf("%w: %w", class, err)
}

// Validation wraps err as a validation error.
func Validation(err error) error {
	return classify(ErrValidation, err)
}

// NoticeKind maps an error to the notice kind shown to the operator.
func NoticeKind(err error) domain.NoticeKind {
	switch {
	case errors.Is(err, ErrValidation):
		return domain.NoticeValidation
	case errors.Is(err, ErrSearch):
		return domain.NoticeSearch
	case errors.Is(err, ErrPricing):
		return domain.NoticePricing
	case errors.Is(err, ErrConfirmation):
		return domain.NoticeConfirmation
	case errors.Is(err, ErrUpload):
		return domain.NoticeUpload
	case errors.Is(err, ErrGeocoding), errors.Is(err, ErrGeocodingUnavailable):
		return domain.NoticeGeocoding
	default:
		return domain.NoticeError
	}
}
