package service

import (
	"context"
	"errors"
	"testing"

	"bookingdesk/internal/domain"
)

func TestBuildSearchQuery_Deterministic(t *testing.T) {
	t.Parallel()

	filters := domain.SearchFilters{
		Pickup:    &domain.Coordinates{Lat: 6.5, Lng: 3.3},
		StartDate: "2024-05-01",
		EndDate:   "2024-05-03",
		City:      "Lagos",
		Seats:     4,
	}

	first := BuildSearchQuery(filters, 12).Encode()
	second := BuildSearchQuery(filters, 12).Encode()
	if first != second {
		t.Fatalf("expected identical queries, got %q and %q", first, second)
	}

	q := BuildSearchQuery(filters, 12)
	if q.Get("lat") != "6.5" || q.Get("lng") != "3.3" {
		t.Errorf("expected coordinates in query, got %v", q)
	}
	if q.Has("hostName") || q.Has("maxPrice") || q.Has("makeId") {
		t.Errorf("expected empty filters to be omitted, got %v", q)
	}
	if q.Get("size") != "12" || q.Get("page") != "0" {
		t.Errorf("expected page=0 size=12, got %v", q)
	}
}

func TestVehicleSearchService_ProximityWithoutEndDate_NoNetworkCall(t *testing.T) {
	t.Parallel()

	client := &fakeSearchClient{}
	svc := NewVehicleSearchService(client, 12, nil)

	_, err := svc.Search(context.Background(), domain.SearchFilters{
		Pickup:    &domain.Coordinates{Lat: 6.5, Lng: 3.3},
		StartDate: "2024-05-01",
	})
	if !errors.Is(err, ErrValidation) || !errors.Is(err, ErrProximityWindow) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if client.calls() != 0 {
		t.Errorf("expected no backend call, got %d", client.calls())
	}
}

func TestVehicleSearchService_EmptyResultIsNotAnError(t *testing.T) {
	t.Parallel()

	client := &fakeSearchClient{page: domain.Page{TotalItems: 0}}
	svc := NewVehicleSearchService(client, 12, nil)

	page, err := svc.Search(context.Background(), domain.SearchFilters{City: "Abuja"})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if page.Items == nil || len(page.Items) != 0 {
		t.Errorf("expected empty non-nil items, got %#v", page.Items)
	}
	if page.PageSize != 12 {
		t.Errorf("expected page size 12, got %d", page.PageSize)
	}
}

func TestVehicleSearchService_BackendFailureIsSearchError(t *testing.T) {
	t.Parallel()

	client := &fakeSearchClient{err: errors.New("connection refused")}
	svc := NewVehicleSearchService(client, 12, nil)

	_, err := svc.Search(context.Background(), domain.SearchFilters{})
	if !errors.Is(err, ErrSearch) {
		t.Fatalf("expected ErrSearch, got %v", err)
	}
}

func TestVehicleSearchService_NormalizesPhotosAndKeepsOrder(t *testing.T) {
	t.Parallel()

	client := &fakeSearchClient{page: domain.Page{Items: []domain.VehicleSearchResult{
		{ID: "b", Photos: []domain.Photo{{URL: "1", Primary: true}, {URL: "2", Primary: true}}},
		{ID: "a"},
	}}}
	svc := NewVehicleSearchService(client, 12, nil)

	page, err := svc.Search(context.Background(), domain.SearchFilters{})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if page.Items[0].ID != "b" || page.Items[1].ID != "a" {
		t.Errorf("expected server order preserved, got %s,%s", page.Items[0].ID, page.Items[1].ID)
	}
	if page.Items[0].Photos[1].Primary {
		t.Error("expected second primary flag to be cleared")
	}
}
