package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bookingdesk/internal/domain"
	"bookingdesk/internal/geocode"
	"bookingdesk/internal/service"
)

// PlaceFinder looks up address predictions and place details.
type PlaceFinder interface {
	Predict(ctx context.Context, input string) ([]geocode.Prediction, error)
	Place(ctx context.Context, placeID string) (domain.Place, error)
}

// PlacesHandler serves address autocomplete for the segment editor.
type PlacesHandler struct {
	finder PlaceFinder
}

// NewPlacesHandler creates a new PlacesHandler. finder may be nil when no
// maps key is configured.
func NewPlacesHandler(finder PlaceFinder) *PlacesHandler {
	return &PlacesHandler{finder: finder}
}

// Predictions handles GET /v1/places/predictions?input=
func (h *PlacesHandler) Predictions(c *gin.Context) {
	if h.finder == nil {
		respondError(c, service.ErrGeocodingUnavailable)
		return
	}
	input := strings.TrimSpace(c.Query("input"))
	if input == "" {
		respondJSON(c, http.StatusOK, gin.H{"items": []geocode.Prediction{}})
		return
	}

	items, err := h.finder.Predict(c.Request.Context(), input)
	if err != nil {
		respondError(c, geocodingError(err))
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"items": items})
}

// Place handles GET /v1/places/:placeId
func (h *PlacesHandler) Place(c *gin.Context) {
	if h.finder == nil {
		respondError(c, service.ErrGeocodingUnavailable)
		return
	}

	place, err := h.finder.Place(c.Request.Context(), c.Param("placeId"))
	if err != nil {
		respondError(c, geocodingError(err))
		return
	}
	respondJSON(c, http.StatusOK, place)
}

func geocodingError(err error) error {
	if errors.Is(err, geocode.ErrDisabled) {
		return service.ErrGeocodingUnavailable
	}
	return fmt.Errorf("%w: %w", service.ErrGeocoding, err)
}
