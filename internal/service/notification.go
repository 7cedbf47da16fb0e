package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"bookingdesk/internal/domain"
	"bookingdesk/internal/logger"
)

// NotificationService builds operator notices and records them in the log.
// Delivery is the console's job: notices are returned with the session view.
type NotificationService struct {
	log *logger.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(log *logger.Logger) *NotificationService {
	if log == nil {
		log = logger.Nop()
	}
	return &NotificationService{log: log}
}

// FromError builds the notice for a failed operation.
func (s *NotificationService) FromError(ctx context.Context, sessionID string, err error) domain.Notice {
	kind := NoticeKind(err)
	notice := domain.Notice{
		ID:        uuid.New().String(),
		Kind:      kind,
		Title:     noticeTitle(kind, err),
		Message:   err.Error(),
		CreatedAt: time.Now(),
	}
	s.log.WithSession(sessionID).WithError(err).WithField("kind", kind).Warn(notice.Title)
	return notice
}

// BookingConfirmed builds the success notice for a new booking.
func (s *NotificationService) BookingConfirmed(ctx context.Context, sessionID string, booking domain.Booking) domain.Notice {
	notice := domain.Notice{
		ID:        uuid.New().String(),
		Kind:      domain.NoticeSuccess,
		Title:     "Booking confirmed",
		Message:   "Booking " + booking.BookingID + " was created.",
		CreatedAt: time.Now(),
	}
	s.log.WithSession(sessionID).WithField("booking_id", booking.BookingID).Info(notice.Title)
	return notice
}

func noticeTitle(kind domain.NoticeKind, err error) string {
	switch kind {
	case domain.NoticeValidation:
		return "Check the form"
	case domain.NoticeSearch:
		return "Search failed"
	case domain.NoticePricing:
		return "Could not price booking"
	case domain.NoticeConfirmation:
		if errors.Is(err, ErrCalculationExpired) {
			return "Price expired, please recalculate"
		}
		return "Could not confirm booking"
	case domain.NoticeUpload:
		return "Upload failed"
	case domain.NoticeGeocoding:
		return "Could not find that address"
	default:
		return "Something went wrong"
	}
}
