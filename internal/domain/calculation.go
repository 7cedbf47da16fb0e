package domain

// Calculation is a server-issued price quote. Totals are authoritative and are
// never recomputed locally.
type Calculation struct {
	CalculationID        string   `json:"calculationId"`
	BasePrice            float64  `json:"basePrice"`
	DiscountAmount       float64  `json:"discountAmount"`
	GeofenceSurcharge    float64  `json:"geofenceSurcharge"`
	PlatformFeeAmount    float64  `json:"platformFeeAmount"`
	FinalPrice           float64  `json:"finalPrice"`
	AppliedGeofenceNames []string `json:"appliedGeofenceNames"`
}

// LineItem is a labelled amount shown on the confirm step.
type LineItem struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// LineItems lists the non-zero price components in display order.
// The base price is always included.
func (c Calculation) LineItems() []LineItem {
	items := []LineItem{{Label: "Base price", Amount: c.BasePrice}}
	if c.DiscountAmount != 0 {
		items = append(items, LineItem{Label: "Discount", Amount: -c.DiscountAmount})
	}
	if c.GeofenceSurcharge != 0 {
		items = append(items, LineItem{Label: "Area surcharge", Amount: c.GeofenceSurcharge})
	}
	if c.PlatformFeeAmount != 0 {
		items = append(items, LineItem{Label: "Platform fee", Amount: c.PlatformFeeAmount})
	}
	return items
}
