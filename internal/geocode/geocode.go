package geocode

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"

	"bookingdesk/internal/config"
	"bookingdesk/internal/domain"
)

// ErrDisabled is returned when no Maps API key is configured.
var ErrDisabled = errors.New("geocoding disabled")

// Prediction is an autocomplete suggestion.
type Prediction struct {
	PlaceID       string `json:"placeId"`
	Description   string `json:"description"`
	MainText      string `json:"mainText"`
	SecondaryText string `json:"secondaryText"`
}

// Service resolves free text into places through Google Maps.
type Service struct {
	client   *maps.Client
	region   string
	language string
}

// NewService creates a Service. Extra options are passed to the Maps client.
func NewService(cfg config.MapsConfig, opts ...maps.ClientOption) (*Service, error) {
	if cfg.APIKey == "" {
		return nil, ErrDisabled
	}
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(cfg.APIKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &Service{client: client, region: cfg.Region, language: cfg.Language}, nil
}

// Predict returns autocomplete suggestions for partial input.
func (s *Service) Predict(ctx context.Context, input string) ([]Prediction, error) {
	req := &maps.PlaceAutocompleteRequest{
		Input:    input,
		Language: s.language,
	}
	if s.region != "" {
		req.Components = map[maps.Component][]string{maps.ComponentCountry: {s.region}}
	}

	resp, err := s.client.PlaceAutocomplete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("places autocomplete: %w", err)
	}

	out := make([]Prediction, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		out = append(out, Prediction{
			PlaceID:       p.PlaceID,
			Description:   p.Description,
			MainText:      p.StructuredFormatting.MainText,
			SecondaryText: p.StructuredFormatting.SecondaryText,
		})
	}
	return out, nil
}

// Place looks up a prediction's coordinates.
func (s *Service) Place(ctx context.Context, placeID string) (domain.Place, error) {
	resp, err := s.client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
		PlaceID:  placeID,
		Language: s.language,
		Fields: []maps.PlaceDetailsFieldMask{
			maps.PlaceDetailsFieldMaskPlaceID,
			maps.PlaceDetailsFieldMaskName,
			maps.PlaceDetailsFieldMaskFormattedAddress,
			maps.PlaceDetailsFieldMaskGeometry,
		},
	})
	if err != nil {
		return domain.Place{}, fmt.Errorf("place details: %w", err)
	}

	label := resp.FormattedAddress
	if label == "" {
		label = resp.Name
	}
	return domain.Place{
		Label:       label,
		PlaceID:     resp.PlaceID,
		Coordinates: domain.Coordinates{Lat: resp.Geometry.Location.Lat, Lng: resp.Geometry.Location.Lng},
	}, nil
}

// Resolve geocodes free text. The bool is false when nothing matched.
func (s *Service) Resolve(ctx context.Context, text string) (domain.Place, bool, error) {
	results, err := s.client.Geocode(ctx, &maps.GeocodingRequest{
		Address:  text,
		Region:   s.region,
		Language: s.language,
	})
	if err != nil {
		return domain.Place{}, false, fmt.Errorf("geocode: %w", err)
	}
	if len(results) == 0 {
		return domain.Place{}, false, nil
	}

	r := results[0]
	return domain.Place{
		Label:       r.FormattedAddress,
		PlaceID:     r.PlaceID,
		Coordinates: domain.Coordinates{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
	}, true, nil
}
