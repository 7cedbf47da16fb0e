package backend

import (
	"time"

	"bookingdesk/internal/domain"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type coordinatesDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type photoDTO struct {
	URL       string `json:"url"`
	IsPrimary bool   `json:"isPrimary"`
}

type pricingOptionDTO struct {
	BookingTypeID   string  `json:"bookingTypeId"`
	BookingTypeName string  `json:"bookingTypeName"`
	Price           float64 `json:"price"`
	FeeType         string  `json:"feeType"`
}

type vehicleDTO struct {
	ID             string             `json:"id"`
	Identifier     string             `json:"identifier"`
	Name           string             `json:"name"`
	City           string             `json:"city"`
	Seats          int                `json:"seats"`
	Photos         []photoDTO         `json:"photos"`
	PricingOptions []pricingOptionDTO `json:"pricingOptions"`
}

type pageDTO struct {
	Items      []vehicleDTO `json:"items"`
	Page       int          `json:"page"`
	Size       int          `json:"size"`
	TotalItems int          `json:"totalItems"`
	TotalPages int          `json:"totalPages"`
}

type namedDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	MakeID string `json:"makeId,omitempty"`
}

type segmentDTO struct {
	BookingTypeID      string          `json:"bookingTypeId"`
	StartDate          string          `json:"startDate"`
	StartTime          string          `json:"startTime"`
	PickupLocation     string          `json:"pickupLocation"`
	PickupCoordinates  *coordinatesDTO `json:"pickupCoordinates,omitempty"`
	DropoffLocation    string          `json:"dropoffLocation"`
	DropoffCoordinates *coordinatesDTO `json:"dropoffCoordinates,omitempty"`
}

type calculateRequest struct {
	VehicleID string       `json:"vehicleId"`
	Segments  []segmentDTO `json:"segments"`
}

type calculationDTO struct {
	CalculationID        string   `json:"calculationId"`
	BasePrice            float64  `json:"basePrice"`
	DiscountAmount       float64  `json:"discountAmount"`
	GeofenceSurcharge    float64  `json:"geofenceSurcharge"`
	PlatformFeeAmount    float64  `json:"platformFeeAmount"`
	FinalPrice           float64  `json:"finalPrice"`
	AppliedGeofenceNames []string `json:"appliedGeofenceNames"`
}

type guestDTO struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Channel     string `json:"channel"`
	Purpose     string `json:"purpose,omitempty"`
}

type createBookingRequest struct {
	CalculationID string   `json:"calculationId"`
	GuestDetails  guestDTO `json:"guestDetails"`
	PaymentMethod string   `json:"paymentMethod"`
}

type bookingDTO struct {
	BookingID          string       `json:"bookingId"`
	VehicleID          string       `json:"vehicleId"`
	CalculationID      string       `json:"calculationId"`
	Status             string       `json:"status"`
	TotalPrice         float64      `json:"totalPrice"`
	BookedAt           time.Time    `json:"bookedAt"`
	Segments           []segmentDTO `json:"segments"`
	PrimaryPhoneNumber string       `json:"primaryPhoneNumber"`
}

func (v vehicleDTO) toDomain() domain.VehicleSearchResult {
	photos := make([]domain.Photo, 0, len(v.Photos))
	for _, p := range v.Photos {
		photos = append(photos, domain.Photo{URL: p.URL, Primary: p.IsPrimary})
	}
	options := make([]domain.PricingOption, 0, len(v.PricingOptions))
	for _, o := range v.PricingOptions {
		options = append(options, domain.PricingOption{
			BookingTypeID:   o.BookingTypeID,
			BookingTypeName: o.BookingTypeName,
			Price:           o.Price,
			FeeType:         o.FeeType,
		})
	}
	return domain.VehicleSearchResult{
		ID:             v.ID,
		Identifier:     v.Identifier,
		Name:           v.Name,
		City:           v.City,
		Seats:          v.Seats,
		Photos:         photos,
		PricingOptions: options,
	}
}

func (p pageDTO) toDomain() domain.Page {
	items := make([]domain.VehicleSearchResult, 0, len(p.Items))
	for _, v := range p.Items {
		items = append(items, v.toDomain())
	}
	return domain.Page{
		Items:      items,
		Page:       p.Page,
		PageSize:   p.Size,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
	}
}

// segmentFromDomain sends coordinates only for addresses in the resolved state.
func segmentFromDomain(s domain.Segment) segmentDTO {
	dto := segmentDTO{
		BookingTypeID:   s.BookingTypeID,
		StartDate:       s.StartDate,
		StartTime:       s.StartTime,
		PickupLocation:  s.Pickup.Input(),
		DropoffLocation: s.Dropoff.Input(),
	}
	if c, ok := s.Pickup.Coordinates(); ok {
		dto.PickupCoordinates = &coordinatesDTO{Lat: c.Lat, Lng: c.Lng}
	}
	if c, ok := s.Dropoff.Coordinates(); ok {
		dto.DropoffCoordinates = &coordinatesDTO{Lat: c.Lat, Lng: c.Lng}
	}
	return dto
}

func (s segmentDTO) toDomain() domain.BookedSegment {
	out := domain.BookedSegment{
		BookingTypeID:   s.BookingTypeID,
		StartDate:       s.StartDate,
		StartTime:       s.StartTime,
		PickupLocation:  s.PickupLocation,
		DropoffLocation: s.DropoffLocation,
	}
	if s.PickupCoordinates != nil {
		out.PickupCoords = &domain.Coordinates{Lat: s.PickupCoordinates.Lat, Lng: s.PickupCoordinates.Lng}
	}
	if s.DropoffCoordinates != nil {
		out.DropoffCoords = &domain.Coordinates{Lat: s.DropoffCoordinates.Lat, Lng: s.DropoffCoordinates.Lng}
	}
	return out
}

func (c calculationDTO) toDomain() domain.Calculation {
	names := c.AppliedGeofenceNames
	if names == nil {
		names = []string{}
	}
	return domain.Calculation{
		CalculationID:        c.CalculationID,
		BasePrice:            c.BasePrice,
		DiscountAmount:       c.DiscountAmount,
		GeofenceSurcharge:    c.GeofenceSurcharge,
		PlatformFeeAmount:    c.PlatformFeeAmount,
		FinalPrice:           c.FinalPrice,
		AppliedGeofenceNames: names,
	}
}

func (b bookingDTO) toDomain() domain.Booking {
	segments := make([]domain.BookedSegment, 0, len(b.Segments))
	for _, s := range b.Segments {
		segments = append(segments, s.toDomain())
	}
	return domain.Booking{
		BookingID:          b.BookingID,
		VehicleID:          b.VehicleID,
		CalculationID:      b.CalculationID,
		Status:             domain.BookingStatus(b.Status),
		TotalPrice:         b.TotalPrice,
		BookedAt:           b.BookedAt,
		Segments:           segments,
		PrimaryPhoneNumber: b.PrimaryPhoneNumber,
	}
}
