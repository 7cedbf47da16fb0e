package service

import (
	"context"
	"net/url"
	"strconv"

	"bookingdesk/internal/domain"
	"bookingdesk/internal/logger"
)

// VehicleSearchClient is the backend surface used for searching.
type VehicleSearchClient interface {
	SearchVehicles(ctx context.Context, query url.Values) (domain.Page, error)
}

// VehicleSearchService runs vehicle searches against the marketplace.
type VehicleSearchService struct {
	client   VehicleSearchClient
	pageSize int
	log      *logger.Logger
}

// NewVehicleSearchService creates a new VehicleSearchService.
func NewVehicleSearchService(client VehicleSearchClient, pageSize int, log *logger.Logger) *VehicleSearchService {
	if pageSize <= 0 {
		pageSize = 12
	}
	if log == nil {
		log = logger.Nop()
	}
	return &VehicleSearchService{client: client, pageSize: pageSize, log: log}
}

// Search returns one page of vehicles matching filters. No matches is an empty
// page, not an error.
func (s *VehicleSearchService) Search(ctx context.Context, filters domain.SearchFilters) (domain.Page, error) {
	if err := ValidateSearchFilters(filters); err != nil {
		return domain.Page{}, err
	}

	page, err := s.client.SearchVehicles(ctx, BuildSearchQuery(filters, s.pageSize))
	if err != nil {
		s.log.WithError(err).WithField("page", filters.Page).Warn("vehicle search failed")
		return domain.Page{}, classify(ErrSearch, err)
	}

	items := make([]domain.VehicleSearchResult, 0, len(page.Items))
	for _, v := range page.Items {
		v.Photos = domain.NormalizePhotos(v.Photos)
		if v.PricingOptions == nil {
			v.PricingOptions = []domain.PricingOption{}
		}
		items = append(items, v)
	}
	page.Items = items
	if page.PageSize == 0 {
		page.PageSize = s.pageSize
	}
	return page, nil
}

// BuildSearchQuery encodes filters as query parameters. Empty filters are
// omitted and the encoding is deterministic for equal inputs.
func BuildSearchQuery(f domain.SearchFilters, pageSize int) url.Values {
	q := url.Values{}
	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}

	if f.Pickup != nil {
		q.Set("lat", strconv.FormatFloat(f.Pickup.Lat, 'f', -1, 64))
		q.Set("lng", strconv.FormatFloat(f.Pickup.Lng, 'f', -1, 64))
	}
	set("location", f.Location)
	set("startDate", f.StartDate)
	set("startTime", f.StartTime)
	set("endDate", f.EndDate)
	set("endTime", f.EndTime)
	if f.Seats > 0 {
		q.Set("seats", strconv.Itoa(f.Seats))
	}
	set("vehicleTypeId", f.VehicleTypeID)
	set("makeId", f.MakeID)
	set("modelId", f.ModelID)
	set("hostName", f.HostName)
	set("search", f.VehicleName)
	set("city", f.City)
	if f.MaxPrice > 0 {
		q.Set("maxPrice", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}
	q.Set("page", strconv.Itoa(f.Page))
	q.Set("size", strconv.Itoa(pageSize))
	return q
}
