package wizard

import (
	"fmt"

	"github.com/google/uuid"

	"bookingdesk/internal/domain"
	"bookingdesk/internal/service"
)

// SegmentField names an editable segment field.
type SegmentField string

const (
	FieldBookingType SegmentField = "bookingTypeId"
	FieldStartDate   SegmentField = "startDate"
	FieldStartTime   SegmentField = "startTime"
	FieldPickup      SegmentField = "pickup"
	FieldDropoff     SegmentField = "dropoff"
)

type segmentEntry struct {
	key     string
	segment domain.Segment
}

// SegmentCollection is the ordered, never empty list of segments for one vehicle.
type SegmentCollection struct {
	vehicle domain.VehicleSearchResult
	entries []segmentEntry
}

// NewSegmentCollection starts a collection with a single segment.
func NewSegmentCollection(vehicle domain.VehicleSearchResult, first domain.Segment) *SegmentCollection {
	return &SegmentCollection{
		vehicle: vehicle,
		entries: []segmentEntry{{key: uuid.New().String(), segment: first}},
	}
}

// Vehicle returns the vehicle the segments are for.
func (c *SegmentCollection) Vehicle() domain.VehicleSearchResult {
	return c.vehicle
}

// Len returns the number of segments.
func (c *SegmentCollection) Len() int {
	return len(c.entries)
}

// Segments returns a copy of the segments in order.
func (c *SegmentCollection) Segments() []domain.Segment {
	out := make([]domain.Segment, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.segment
	}
	return out
}

// Segment returns the segment at index.
func (c *SegmentCollection) Segment(index int) (domain.Segment, error) {
	if err := c.checkIndex(index); err != nil {
		return domain.Segment{}, err
	}
	return c.entries[index].segment, nil
}

// AddSegment appends a segment that starts where the last one ends: its pickup is
// the previous dropoff and its date the previous date. Returns the new index.
func (c *SegmentCollection) AddSegment() int {
	prev := c.entries[len(c.entries)-1].segment
	next := domain.Segment{
		StartDate: prev.StartDate,
		Pickup:    prev.Dropoff,
	}
	c.entries = append(c.entries, segmentEntry{key: uuid.New().String(), segment: next})
	return len(c.entries) - 1
}

// RemoveSegment deletes the segment at index. The last remaining segment
// cannot be removed.
func (c *SegmentCollection) RemoveSegment(index int) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	if len(c.entries) == 1 {
		return service.Validation(service.ErrLastSegment)
	}
	c.entries = append(c.entries[:index], c.entries[index+1:]...)
	return nil
}

// UpdateField sets one field. Pickup and dropoff values are typed text and
// leave any earlier resolution in place until the text diverges from it.
func (c *SegmentCollection) UpdateField(index int, field SegmentField, value string) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	seg := &c.entries[index].segment
	switch field {
	case FieldBookingType:
		seg.BookingTypeID = value
	case FieldStartDate:
		seg.StartDate = value
	case FieldStartTime:
		seg.StartTime = value
	case FieldPickup:
		seg.Pickup = seg.Pickup.Edit(value)
	case FieldDropoff:
		seg.Dropoff = seg.Dropoff.Edit(value)
	default:
		return service.Validation(fmt.Errorf("%w: %q", service.ErrInvalidSegmentField, field))
	}
	return nil
}

// SetLocation resolves the pickup or dropoff of a segment to place.
func (c *SegmentCollection) SetLocation(index int, kind domain.LocationKind, place domain.Place) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	seg := &c.entries[index].segment
	switch kind {
	case domain.LocationPickup:
		seg.Pickup = seg.Pickup.Resolve(place)
	case domain.LocationDropoff:
		seg.Dropoff = seg.Dropoff.Resolve(place)
	default:
		return service.Validation(fmt.Errorf("%w: %q", service.ErrInvalidSegmentField, kind))
	}
	return nil
}

// Address returns the pickup or dropoff of a segment.
func (c *SegmentCollection) Address(index int, kind domain.LocationKind) (domain.Address, error) {
	seg, err := c.Segment(index)
	if err != nil {
		return domain.Address{}, err
	}
	switch kind {
	case domain.LocationPickup:
		return seg.Pickup, nil
	case domain.LocationDropoff:
		return seg.Dropoff, nil
	default:
		return domain.Address{}, service.Validation(fmt.Errorf("%w: %q", service.ErrInvalidSegmentField, kind))
	}
}

// ValidateForPricing checks every segment has a booking type the vehicle offers.
func (c *SegmentCollection) ValidateForPricing() error {
	for i, e := range c.entries {
		if err := service.ValidateSegmentForPricing(i, e.segment, c.vehicle); err != nil {
			return err
		}
	}
	return nil
}

// Key returns a stable identifier for the segment at index. It survives
// removals of other segments.
func (c *SegmentCollection) Key(index int) (string, error) {
	if err := c.checkIndex(index); err != nil {
		return "", err
	}
	return c.entries[index].key, nil
}

// IndexOf returns the current index of the segment with key.
func (c *SegmentCollection) IndexOf(key string) (int, bool) {
	for i, e := range c.entries {
		if e.key == key {
			return i, true
		}
	}
	return 0, false
}

func (c *SegmentCollection) checkIndex(index int) error {
	if index < 0 || index >= len(c.entries) {
		return service.Validation(fmt.Errorf("%w: %d", service.ErrSegmentIndex, index))
	}
	return nil
}
