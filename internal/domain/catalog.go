package domain

// BookingType is a way a vehicle can be booked, e.g. hourly or daily.
type BookingType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// VehicleType is a vehicle category used as a search filter.
type VehicleType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// VehicleMake is a manufacturer.
type VehicleMake struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// VehicleModel belongs to a make.
type VehicleModel struct {
	ID     string `json:"id"`
	MakeID string `json:"makeId"`
	Name   string `json:"name"`
}
