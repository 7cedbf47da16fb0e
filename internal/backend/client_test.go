package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"bookingdesk/internal/config"
	"bookingdesk/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.BackendConfig{BaseURL: srv.URL + "/", APIToken: "ops-token", Timeout: 5 * time.Second})
}

func TestClient_SearchVehicles_DecodesPage(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/vehicles/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotQuery = r.URL.Query()
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"items": [{
				"id": "veh-1", "identifier": "LAG-123", "name": "Toyota Camry",
				"photos": [{"url": "a.jpg", "isPrimary": true}],
				"pricingOptions": [{"bookingTypeId": "bt1295", "bookingTypeName": "Hourly", "price": 20000}]
			}],
			"page": 0, "size": 12, "totalItems": 1, "totalPages": 1
		}`))
	})

	page, err := client.SearchVehicles(context.Background(), url.Values{"city": {"Lagos"}})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if gotQuery.Get("city") != "Lagos" {
		t.Errorf("expected city query param, got %v", gotQuery)
	}
	if gotAuth != "Bearer ops-token" {
		t.Errorf("expected bearer token, got %q", gotAuth)
	}
	if len(page.Items) != 1 || page.Items[0].PricingOptions[0].Price != 20000 {
		t.Fatalf("unexpected page: %+v", page)
	}
	if !page.Items[0].Photos[0].Primary {
		t.Error("expected primary flag to be decoded")
	}
	if page.PageSize != 12 {
		t.Errorf("expected page size 12, got %d", page.PageSize)
	}
}

func TestClient_Calculate_OmitsUnresolvedCoordinates(t *testing.T) {
	t.Parallel()

	var body calculateRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/bookings/calculate" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_, _ = w.Write([]byte(`{"calculationId":"calc-abc","basePrice":20000,"finalPrice":21500,"platformFeeAmount":1500}`))
	})

	resolved := domain.ResolvedAddress(domain.Place{Label: "Ikeja", Coordinates: domain.Coordinates{Lat: 6.6, Lng: 3.35}})
	segments := []domain.Segment{
		{BookingTypeID: "bt1295", StartDate: "2024-05-01", StartTime: "09:00", Pickup: resolved, Dropoff: domain.NewAddress("Yaba")},
		{BookingTypeID: "bt1295", StartDate: "2024-05-02", StartTime: "10:00", Pickup: resolved.Edit("Ikeja GRA"), Dropoff: resolved},
	}

	calc, err := client.Calculate(context.Background(), "veh-1", segments)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if calc.CalculationID != "calc-abc" || calc.FinalPrice != 21500 {
		t.Errorf("unexpected calculation: %+v", calc)
	}
	if calc.AppliedGeofenceNames == nil {
		t.Error("expected empty geofence list, got nil")
	}

	if len(body.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(body.Segments))
	}
	if body.Segments[0].PickupCoordinates == nil {
		t.Error("expected resolved pickup to carry coordinates")
	}
	if body.Segments[0].DropoffCoordinates != nil {
		t.Error("expected unresolved dropoff to be sent without coordinates")
	}
	if body.Segments[1].PickupCoordinates != nil {
		t.Error("expected edited pickup to be sent without coordinates")
	}
	if body.Segments[1].PickupLocation != "Ikeja GRA" {
		t.Errorf("expected edited text to be sent, got %q", body.Segments[1].PickupLocation)
	}
}

func TestClient_StatusError(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		status      int
		body        string
		wantCode    string
		wantMessage string
	}{
		{name: "structured", status: http.StatusGone, body: `{"code":"CALCULATION_EXPIRED","message":"calculation expired"}`, wantCode: "CALCULATION_EXPIRED", wantMessage: "calculation expired"},
		{name: "error field", status: http.StatusBadRequest, body: `{"error":"segments required"}`, wantMessage: "segments required"},
		{name: "plain text", status: http.StatusBadGateway, body: "upstream down", wantMessage: "upstream down"},
		{name: "empty", status: http.StatusServiceUnavailable, body: "", wantMessage: "Service Unavailable"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			_, err := client.CreateBooking(context.Background(), "calc-1", domain.GuestDetails{}, domain.PaymentMethodCash)
			se, ok := AsStatusError(err)
			if !ok {
				t.Fatalf("expected StatusError, got %v", err)
			}
			if se.StatusCode != tc.status || se.Code != tc.wantCode || se.Message != tc.wantMessage {
				t.Errorf("unexpected status error: %+v", se)
			}
		})
	}
}

func TestClient_CreateBooking_SetsInvoiceURL(t *testing.T) {
	t.Parallel()

	var body createBookingRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = w.Write([]byte(`{"bookingId":"bk-9","calculationId":"calc-1","status":"CONFIRMED","totalPrice":21500,
			"segments":[{"bookingTypeId":"bt1295","startDate":"2024-05-01","pickupLocation":"Ikeja"}]}`))
	})

	booking, err := client.CreateBooking(context.Background(), "calc-1", domain.GuestDetails{
		Name: "Ada Obi", Email: "ada@example.com", Phone: "+2348012345678", Channel: domain.ChannelWalkIn,
	}, domain.PaymentMethodCard)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if body.GuestDetails.FullName != "Ada Obi" || body.PaymentMethod != "CARD" {
		t.Errorf("unexpected request body: %+v", body)
	}
	if booking.InvoiceURL != client.InvoiceURL("bk-9") {
		t.Errorf("expected invoice url %s, got %s", client.InvoiceURL("bk-9"), booking.InvoiceURL)
	}
	if len(booking.Segments) != 1 || booking.Segments[0].PickupLocation != "Ikeja" {
		t.Errorf("unexpected segments: %+v", booking.Segments)
	}
}

func TestClient_VehicleModels_FillsMakeID(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/vehicle-makes/mk-1/models" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[{"id":"md-1","name":"Corolla"}]`))
	})

	models, err := client.VehicleModels(context.Background(), "mk-1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(models) != 1 || models[0].MakeID != "mk-1" {
		t.Errorf("unexpected models: %+v", models)
	}
}
