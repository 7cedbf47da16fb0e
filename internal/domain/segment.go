package domain

// AddressState describes how an address relates to its last resolution.
type AddressState string

const (
	AddressUnresolved AddressState = "UNRESOLVED"
	AddressResolved   AddressState = "RESOLVED"
	AddressEdited     AddressState = "EDITED"
)

// Place is a geocoded location.
type Place struct {
	Label       string      `json:"label"`
	Coordinates Coordinates `json:"coordinates"`
	PlaceID     string      `json:"placeId,omitempty"`
}

// Address is free text that may carry a resolved place.
// Coordinates are only exposed while the text still matches the resolved label.
type Address struct {
	input string
	place *Place
}

// NewAddress returns an unresolved address.
func NewAddress(input string) Address {
	return Address{input: input}
}

// ResolvedAddress returns an address resolved to place, with input set to its label.
func ResolvedAddress(place Place) Address {
	p := place
	return Address{input: place.Label, place: &p}
}

// Input returns the text as currently typed.
func (a Address) Input() string {
	return a.input
}

// Edit replaces the typed text. A previous resolution is kept but no longer applies
// unless the text is changed back to the resolved label.
func (a Address) Edit(input string) Address {
	a.input = input
	return a
}

// Resolve attaches a place and makes the input match its label.
func (a Address) Resolve(place Place) Address {
	return ResolvedAddress(place)
}

// State returns the address state.
func (a Address) State() AddressState {
	switch {
	case a.place == nil:
		return AddressUnresolved
	case a.place.Label == a.input:
		return AddressResolved
	default:
		return AddressEdited
	}
}

// Place returns the resolved place while the address is in the resolved state.
func (a Address) Place() (Place, bool) {
	if a.State() != AddressResolved {
		return Place{}, false
	}
	return *a.place, true
}

// Coordinates returns the resolved coordinates, if any.
func (a Address) Coordinates() (Coordinates, bool) {
	p, ok := a.Place()
	if !ok {
		return Coordinates{}, false
	}
	return p.Coordinates, true
}

// IsZero reports whether nothing was typed or resolved.
func (a Address) IsZero() bool {
	return a.input == "" && a.place == nil
}

// Segment is one leg of a booking.
type Segment struct {
	BookingTypeID string
	StartDate     string
	StartTime     string
	Pickup        Address
	Dropoff       Address
}

// LocationKind selects the pickup or dropoff address of a segment.
type LocationKind string

const (
	LocationPickup  LocationKind = "pickup"
	LocationDropoff LocationKind = "dropoff"
)

// Valid reports whether k names a segment address.
func (k LocationKind) Valid() bool {
	return k == LocationPickup || k == LocationDropoff
}
