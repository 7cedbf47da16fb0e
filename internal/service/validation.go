package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"bookingdesk/internal/domain"
)

// ValidateSearchFilters rejects a proximity search without a date window.
func ValidateSearchFilters(f domain.SearchFilters) error {
	if f.HasProximity() && (f.StartDate == "" || f.EndDate == "") {
		return Validation(ErrProximityWindow)
	}
	return nil
}

// ValidateSegmentForPricing checks that a segment's booking type is set and offered by the vehicle.
func ValidateSegmentForPricing(index int, seg domain.Segment, vehicle domain.VehicleSearchResult) error {
	if seg.BookingTypeID == "" {
		return Validation(fmt.Errorf("segment %d: %w", index+1, ErrBookingTypeMissing))
	}
	if !vehicle.SupportsBookingType(seg.BookingTypeID) {
		return Validation(fmt.Errorf("segment %d: %w", index+1, ErrBookingTypeUnsupported))
	}
	return nil
}

// ValidateGuestDetails checks the guest fields required to confirm a booking.
func ValidateGuestDetails(g domain.GuestDetails) error {
	err := guestValidator.Struct(g)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return Validation(fmt.Errorf("%w: %w", ErrInvalidGuestDetails, err))
	}
	return Validation(fmt.Errorf("%w: %s", ErrInvalidGuestDetails, guestFieldMessage(fieldErrs[0])))
}

// ValidatePaymentMethod validates and returns the payment method.
// Defaults to CASH if empty.
func ValidatePaymentMethod(method string) (domain.PaymentMethod, error) {
	if method == "" {
		return domain.PaymentMethodCash, nil
	}

	pm := domain.PaymentMethod(strings.ToUpper(method))
	switch pm {
	case domain.PaymentMethodCash, domain.PaymentMethodCard, domain.PaymentMethodBankTransfer, domain.PaymentMethodWallet:
		return pm, nil
	default:
		return "", Validation(ErrInvalidPaymentMethod)
	}
}

var (
	guestValidator  = newGuestValidator()
	phoneSeparators = strings.NewReplacer(" ", "", "-", "")
	phonePattern    = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

func newGuestValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validateNotBlank)
	_ = v.RegisterValidation("phone", validatePhone)
	_ = v.RegisterValidation("channel", validateChannel)
	return v
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// validatePhone accepts an optional leading + followed by 7 to 15 digits,
// ignoring spaces and dashes.
func validatePhone(fl validator.FieldLevel) bool {
	phone := phoneSeparators.Replace(strings.TrimSpace(fl.Field().String()))
	return phonePattern.MatchString(phone)
}

func validateChannel(fl validator.FieldLevel) bool {
	return domain.BookingChannel(fl.Field().String()).Valid()
}

func guestFieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fe.Field() + " is required"
	case "channel":
		return fmt.Sprintf("unknown channel %q", fe.Value())
	default:
		return fe.Field() + " is invalid"
	}
}
