package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"googlemaps.github.io/maps"

	"bookingdesk/internal/config"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := NewService(config.MapsConfig{APIKey: "test-key", Region: "ng", Language: "en"}, maps.WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return svc
}

func TestNewService_DisabledWithoutKey(t *testing.T) {
	t.Parallel()

	_, err := NewService(config.MapsConfig{})
	if !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}

func TestService_Resolve(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/maps/api/geocode/json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("region") != "ng" {
			t.Errorf("expected region bias, got %q", r.URL.Query().Get("region"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"OK","results":[{
			"formatted_address":"Ikeja, Lagos, Nigeria",
			"place_id":"pl-ikeja",
			"geometry":{"location":{"lat":6.6018,"lng":3.3515}}
		}]}`))
	})

	place, ok, err := svc.Resolve(context.Background(), "Ikeja")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !ok {
		t.Fatal("expected a match")
	}
	if place.Label != "Ikeja, Lagos, Nigeria" || place.Coordinates.Lat != 6.6018 {
		t.Errorf("unexpected place: %+v", place)
	}
}

func TestService_Resolve_NoMatch(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	})

	_, ok, err := svc.Resolve(context.Background(), "nowhere at all")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if ok {
		t.Error("expected no match")
	}
}

func TestService_Predict(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/maps/api/place/autocomplete/json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"OK","predictions":[{
			"description":"Lekki Phase 1, Lagos",
			"place_id":"pl-lekki",
			"structured_formatting":{"main_text":"Lekki Phase 1","secondary_text":"Lagos"}
		}]}`))
	})

	preds, err := svc.Predict(context.Background(), "Lekk")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(preds) != 1 || preds[0].PlaceID != "pl-lekki" || preds[0].MainText != "Lekki Phase 1" {
		t.Errorf("unexpected predictions: %+v", preds)
	}
}

func TestService_Place(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/maps/api/place/details/json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"OK","result":{
			"place_id":"pl-lekki","name":"Lekki Phase 1",
			"formatted_address":"Lekki Phase 1, Lagos, Nigeria",
			"geometry":{"location":{"lat":6.4474,"lng":3.4723}}
		}}`))
	})

	place, err := svc.Place(context.Background(), "pl-lekki")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if place.Label != "Lekki Phase 1, Lagos, Nigeria" || place.Coordinates.Lng != 3.4723 {
		t.Errorf("unexpected place: %+v", place)
	}
}
