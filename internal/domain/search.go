package domain

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// SearchFilters describes one vehicle search submission.
// Dates are YYYY-MM-DD and times HH:MM, both as the operator entered them.
type SearchFilters struct {
	Location      string       `json:"location,omitempty"`
	Pickup        *Coordinates `json:"pickup,omitempty"`
	StartDate     string       `json:"startDate,omitempty"`
	StartTime     string       `json:"startTime,omitempty"`
	EndDate       string       `json:"endDate,omitempty"`
	EndTime       string       `json:"endTime,omitempty"`
	Seats         int          `json:"seats,omitempty"`
	VehicleTypeID string       `json:"vehicleTypeId,omitempty"`
	MakeID        string       `json:"makeId,omitempty"`
	ModelID       string       `json:"modelId,omitempty"`
	HostName      string       `json:"hostName,omitempty"`
	VehicleName   string       `json:"vehicleName,omitempty"`
	City          string       `json:"city,omitempty"`
	MaxPrice      float64      `json:"maxPrice,omitempty"`
	Page          int          `json:"page"`
}

// HasProximity reports whether the search is anchored to pickup coordinates.
func (f SearchFilters) HasProximity() bool {
	return f.Pickup != nil
}

// WithPage returns a copy of the filters targeting another page.
func (f SearchFilters) WithPage(page int) SearchFilters {
	if page < 0 {
		page = 0
	}
	f.Page = page
	return f
}

// Photo is a vehicle image reference.
type Photo struct {
	URL     string `json:"url"`
	Primary bool   `json:"primary"`
}

// PricingOption is one booking type a vehicle can be booked under.
type PricingOption struct {
	BookingTypeID   string  `json:"bookingTypeId"`
	BookingTypeName string  `json:"bookingTypeName"`
	Price           float64 `json:"price"`
	FeeType         string  `json:"feeType,omitempty"`
}

// VehicleSearchResult is a vehicle returned by a search.
type VehicleSearchResult struct {
	ID             string          `json:"id"`
	Identifier     string          `json:"identifier"`
	Name           string          `json:"name"`
	City           string          `json:"city,omitempty"`
	Seats          int             `json:"seats,omitempty"`
	Photos         []Photo         `json:"photos"`
	PricingOptions []PricingOption `json:"pricingOptions"`
}

// Bookable reports whether the vehicle has at least one pricing option.
func (v VehicleSearchResult) Bookable() bool {
	return len(v.PricingOptions) > 0
}

// SupportsBookingType reports whether bookingTypeID is one of the vehicle's options.
func (v VehicleSearchResult) SupportsBookingType(bookingTypeID string) bool {
	for _, opt := range v.PricingOptions {
		if opt.BookingTypeID == bookingTypeID {
			return true
		}
	}
	return false
}

// StartingPrice returns the lowest option price. It is a display hint only.
func (v VehicleSearchResult) StartingPrice() (float64, bool) {
	if len(v.PricingOptions) == 0 {
		return 0, false
	}
	lowest := v.PricingOptions[0].Price
	for _, opt := range v.PricingOptions[1:] {
		if opt.Price < lowest {
			lowest = opt.Price
		}
	}
	return lowest, true
}

// PrimaryPhoto returns the primary photo, falling back to the first one.
func (v VehicleSearchResult) PrimaryPhoto() (Photo, bool) {
	for _, p := range v.Photos {
		if p.Primary {
			return p, true
		}
	}
	if len(v.Photos) > 0 {
		return v.Photos[0], true
	}
	return Photo{}, false
}

// NormalizePhotos keeps at most one primary photo, the first one flagged.
func NormalizePhotos(photos []Photo) []Photo {
	out := make([]Photo, len(photos))
	seen := false
	for i, p := range photos {
		if p.Primary {
			if seen {
				p.Primary = false
			}
			seen = true
		}
		out[i] = p
	}
	return out
}

// Page is one page of vehicle search results, in server order.
type Page struct {
	Items      []VehicleSearchResult `json:"items"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"pageSize"`
	TotalItems int                   `json:"totalItems"`
	TotalPages int                   `json:"totalPages"`
}

// Empty reports whether the page has no results.
func (p Page) Empty() bool {
	return len(p.Items) == 0
}

// Find returns the vehicle with the given id.
func (p Page) Find(vehicleID string) (VehicleSearchResult, bool) {
	for _, v := range p.Items {
		if v.ID == vehicleID {
			return v, true
		}
	}
	return VehicleSearchResult{}, false
}
