package wizard

import "bookingdesk/internal/domain"

// StepKind names a wizard step.
type StepKind string

const (
	StepSearch  StepKind = "search"
	StepResults StepKind = "results"
	StepDetails StepKind = "details"
	StepConfirm StepKind = "confirm"
	StepSuccess StepKind = "success"
)

// Step is one of SearchStep, ResultsStep, DetailsStep, ConfirmStep or SuccessStep.
// Each variant carries only the data that is valid on that step.
type Step interface {
	Kind() StepKind
	isStep()
}

// SearchStep is the filter form.
type SearchStep struct {
	Filters domain.SearchFilters
}

// ResultsStep shows one page of results for the submitted filters.
type ResultsStep struct {
	Filters domain.SearchFilters
	Page    domain.Page
}

// DetailsStep edits the segments of the selected vehicle.
type DetailsStep struct {
	Filters  domain.SearchFilters
	Page     domain.Page
	Segments *SegmentCollection
}

// Vehicle returns the selected vehicle.
func (s DetailsStep) Vehicle() domain.VehicleSearchResult {
	return s.Segments.Vehicle()
}

// ConfirmStep holds a live calculation for the segments of a DetailsStep.
// It can only be built together with its calculation.
type ConfirmStep struct {
	details DetailsStep
	calc    domain.Calculation
}

func newConfirmStep(details DetailsStep, calc domain.Calculation) ConfirmStep {
	return ConfirmStep{details: details, calc: calc}
}

// Details returns the segments the calculation was made for.
func (s ConfirmStep) Details() DetailsStep {
	return s.details
}

// Calculation returns the live calculation.
func (s ConfirmStep) Calculation() domain.Calculation {
	return s.calc
}

// SuccessStep shows the created booking.
type SuccessStep struct {
	Booking     domain.Booking
	Vehicle     domain.VehicleSearchResult
	Calculation domain.Calculation
}

func (SearchStep) Kind() StepKind  { return StepSearch }
func (ResultsStep) Kind() StepKind { return StepResults }
func (DetailsStep) Kind() StepKind { return StepDetails }
func (ConfirmStep) Kind() StepKind { return StepConfirm }
func (SuccessStep) Kind() StepKind { return StepSuccess }

func (SearchStep) isStep()  {}
func (ResultsStep) isStep() {}
func (DetailsStep) isStep() {}
func (ConfirmStep) isStep() {}
func (SuccessStep) isStep() {}
