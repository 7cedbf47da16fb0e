package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"bookingdesk/internal/backend"
	"bookingdesk/internal/domain"
	"bookingdesk/internal/logger"
	"bookingdesk/internal/redis"
	"bookingdesk/internal/repository"
)

const consumedCalculationTTL = 24 * time.Hour

// expiryCodes are backend error codes meaning the calculation can no longer be used.
var expiryCodes = map[string]bool{
	"CALCULATION_EXPIRED":   true,
	"CALCULATION_INVALID":   true,
	"CALCULATION_NOT_FOUND": true,
}

// BookingClient is the backend surface used for confirmation.
type BookingClient interface {
	CreateBooking(ctx context.Context, calculationID string, guest domain.GuestDetails, method domain.PaymentMethod) (domain.Booking, error)
}

// ConfirmRequest contains the parameters for confirming a calculation.
type ConfirmRequest struct {
	SessionID     string
	VehicleID     string
	CalculationID string
	Guest         domain.GuestDetails
	PaymentMethod domain.PaymentMethod
	SegmentCount  int
}

// BookingConfirmer converts a live calculation into a booking.
type BookingConfirmer struct {
	client  BookingClient
	locks   redis.LockStoreInterface
	journal repository.JournalRepository
	lockTTL time.Duration
	log     *logger.Logger
}

// NewBookingConfirmer creates a new BookingConfirmer. locks and journal may be nil.
func NewBookingConfirmer(client BookingClient, locks redis.LockStoreInterface, journal repository.JournalRepository, lockTTL time.Duration, log *logger.Logger) *BookingConfirmer {
	if lockTTL <= 0 {
		lockTTL = 30 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &BookingConfirmer{
		client:  client,
		locks:   locks,
		journal: journal,
		lockTTL: lockTTL,
		log:     log,
	}
}

// Confirm creates the booking. A calculation is used at most once.
func (c *BookingConfirmer) Confirm(ctx context.Context, req ConfirmRequest) (domain.Booking, error) {
	if req.CalculationID == "" {
		return domain.Booking{}, ErrNoCalculation
	}
	if err := ValidateGuestDetails(req.Guest); err != nil {
		return domain.Booking{}, err
	}
	method := req.PaymentMethod
	if method == "" {
		method = domain.PaymentMethodCash
	}
	if _, err := ValidatePaymentMethod(string(method)); err != nil {
		return domain.Booking{}, err
	}

	log := c.log.WithSession(req.SessionID).WithField("calculation_id", req.CalculationID)

	if c.locks != nil {
		release, err := c.acquire(ctx, req.CalculationID, log)
		if err != nil {
			return domain.Booking{}, err
		}
		defer release()
	}

	booking, err := c.client.CreateBooking(ctx, req.CalculationID, req.Guest, method)
	if err != nil {
		log.WithError(err).Warn("booking confirmation failed")
		if isExpiry(err) {
			return domain.Booking{}, classify(ErrConfirmation, classify(ErrCalculationExpired, err))
		}
		return domain.Booking{}, classify(ErrConfirmation, err)
	}
	if booking.CalculationID == "" {
		booking.CalculationID = req.CalculationID
	}
	if booking.VehicleID == "" {
		booking.VehicleID = req.VehicleID
	}

	if c.locks != nil {
		if err := c.locks.MarkConsumed(ctx, req.CalculationID, booking.BookingID, consumedCalculationTTL); err != nil {
			log.WithError(err).Warn("failed to mark calculation consumed")
		}
	}
	c.record(ctx, req, booking, method, log)

	log.WithField("booking_id", booking.BookingID).Info("booking confirmed")
	return booking, nil
}

// acquire takes the cross-replica confirmation lock. Redis failures degrade to
// the session-local guard rather than blocking the operator.
func (c *BookingConfirmer) acquire(ctx context.Context, calculationID string, log *logger.Logger) (func(), error) {
	noop := func() {}

	if bookingID, used, err := c.locks.ConsumedBy(ctx, calculationID); err != nil {
		log.WithError(err).Warn("consumed check failed")
	} else if used {
		log.WithField("booking_id", bookingID).Warn("calculation already confirmed")
		return noop, classify(ErrConfirmation, ErrCalculationConsumed)
	}

	ok, err := c.locks.AcquireConfirmLock(ctx, calculationID, c.lockTTL)
	if err != nil {
		log.WithError(err).Warn("confirm lock unavailable")
		return noop, nil
	}
	if !ok {
		return noop, classify(ErrConfirmation, ErrConfirmationLocked)
	}
	return func() {
		// Released on a fresh context so a cancelled request still frees the lock.
		if err := c.locks.ReleaseConfirmLock(context.Background(), calculationID); err != nil {
			log.WithError(err).Warn("failed to release confirm lock")
		}
	}, nil
}

func (c *BookingConfirmer) record(ctx context.Context, req ConfirmRequest, booking domain.Booking, method domain.PaymentMethod, log *logger.Logger) {
	if c.journal == nil {
		return
	}
	segments := len(booking.Segments)
	if segments == 0 {
		segments = req.SegmentCount
	}
	entry := &domain.JournalEntry{
		ID:            uuid.New().String(),
		SessionID:     req.SessionID,
		BookingID:     booking.BookingID,
		VehicleID:     booking.VehicleID,
		CalculationID: booking.CalculationID,
		TotalPrice:    booking.TotalPrice,
		SegmentCount:  segments,
		GuestEmail:    req.Guest.Email,
		Channel:       req.Guest.Channel,
		PaymentMethod: method,
		CreatedAt:     time.Now().UTC(),
	}
	if err := c.journal.Create(ctx, entry); err != nil {
		log.WithError(err).Error("failed to record booking journal entry")
	}
}

func isExpiry(err error) bool {
	se, ok := backend.AsStatusError(err)
	if !ok {
		return false
	}
	return se.StatusCode == http.StatusGone || expiryCodes[se.Code]
}

// IsCalculationExpired reports whether err means the calculation must be re-requested.
func IsCalculationExpired(err error) bool {
	return errors.Is(err, ErrCalculationExpired)
}

// IsCalculationUnusable reports whether err means the current calculation can
// no longer confirm a booking, either because it expired or because it was
// already consumed.
func IsCalculationUnusable(err error) bool {
	return IsCalculationExpired(err) || errors.Is(err, ErrCalculationConsumed)
}
