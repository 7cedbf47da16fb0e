package service

import (
	"context"
	"net/http"

	"bookingdesk/internal/backend"
	"bookingdesk/internal/domain"
	"bookingdesk/internal/logger"
)

// CalculationClient is the backend surface used for pricing.
type CalculationClient interface {
	Calculate(ctx context.Context, vehicleID string, segments []domain.Segment) (domain.Calculation, error)
}

// CalculationRequester asks the server to price a set of segments.
type CalculationRequester struct {
	client CalculationClient
	log    *logger.Logger
}

// NewCalculationRequester creates a new CalculationRequester.
func NewCalculationRequester(client CalculationClient, log *logger.Logger) *CalculationRequester {
	if log == nil {
		log = logger.Nop()
	}
	return &CalculationRequester{client: client, log: log}
}

// Calculate prices the ordered segments for a vehicle. The returned totals are
// the server's and are never adjusted.
func (r *CalculationRequester) Calculate(ctx context.Context, vehicleID string, segments []domain.Segment) (domain.Calculation, error) {
	if vehicleID == "" {
		return domain.Calculation{}, Validation(ErrVehicleNotFound)
	}
	if len(segments) == 0 {
		return domain.Calculation{}, Validation(ErrLastSegment)
	}

	calc, err := r.client.Calculate(ctx, vehicleID, segments)
	if err != nil {
		r.log.WithError(err).WithFields(map[string]any{
			"vehicle_id": vehicleID,
			"segments":   len(segments),
		}).Warn("price calculation failed")

		if se, ok := backend.AsStatusError(err); ok && se.StatusCode >= http.StatusBadRequest && se.StatusCode < http.StatusInternalServerError {
			return domain.Calculation{}, classify(ErrPricing, classify(ErrPricingRejected, err))
		}
		return domain.Calculation{}, classify(ErrPricing, err)
	}
	if calc.CalculationID == "" {
		return domain.Calculation{}, classify(ErrPricing, ErrMissingCalculationID)
	}

	r.log.WithFields(map[string]any{
		"vehicle_id":     vehicleID,
		"calculation_id": calc.CalculationID,
		"final_price":    calc.FinalPrice,
	}).Info("price calculated")

	return calc, nil
}
