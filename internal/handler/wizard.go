package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bookingdesk/internal/domain"
	"bookingdesk/internal/logger"
	"bookingdesk/internal/wizard"
)

// WizardHandler handles HTTP requests for booking wizard sessions.
type WizardHandler struct {
	registry *wizard.Registry
	log      *logger.Logger
}

// NewWizardHandler creates a new WizardHandler.
func NewWizardHandler(registry *wizard.Registry, log *logger.Logger) *WizardHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &WizardHandler{
		registry: registry,
		log:      log,
	}
}

// SearchRequest is the HTTP request body for a vehicle search.
type SearchRequest struct {
	Location      string   `json:"location"`
	Lat           *float64 `json:"lat"`
	Lng           *float64 `json:"lng"`
	StartDate     string   `json:"startDate"`
	StartTime     string   `json:"startTime"`
	EndDate       string   `json:"endDate"`
	EndTime       string   `json:"endTime"`
	Seats         int      `json:"seats"`
	VehicleTypeID string   `json:"vehicleTypeId"`
	MakeID        string   `json:"makeId"`
	ModelID       string   `json:"modelId"`
	HostName      string   `json:"hostName"`
	VehicleName   string   `json:"vehicleName"`
	City          string   `json:"city"`
	MaxPrice      float64  `json:"maxPrice"`
	Page          int      `json:"page"`
}

// PageRequest is the HTTP request body for changing the results page.
type PageRequest struct {
	Page int `json:"page"`
}

// SelectVehicleRequest is the HTTP request body for picking a vehicle.
type SelectVehicleRequest struct {
	VehicleID string `json:"vehicleId" binding:"required"`
}

// UpdateSegmentRequest is the HTTP request body for editing one segment field.
type UpdateSegmentRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// SetLocationRequest is the HTTP request body for resolving a segment address.
// With placeId the prediction is looked up; with coordinates the place is taken
// as given; otherwise the typed text is geocoded.
type SetLocationRequest struct {
	Kind    string   `json:"kind" binding:"required"`
	PlaceID string   `json:"placeId"`
	Label   string   `json:"label"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
}

// ConfirmRequest is the HTTP request body for confirming a booking.
type ConfirmRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Channel       string `json:"channel"`
	Purpose       string `json:"purpose,omitempty"`
	PaymentMethod string `json:"paymentMethod,omitempty"` // CASH, CARD, BANK_TRANSFER, WALLET
}

// QueuedSearchResponse is the HTTP response for a debounced search.
type QueuedSearchResponse struct {
	Ticket  uint64      `json:"ticket"`
	Session wizard.View `json:"session"`
}

// SegmentAddedResponse is the HTTP response for adding a segment.
type SegmentAddedResponse struct {
	Index   int         `json:"index"`
	Session wizard.View `json:"session"`
}

// SummaryResponse is the HTTP response for the booking summary.
type SummaryResponse struct {
	Summary string `json:"summary"`
}

func (r SearchRequest) filters() domain.SearchFilters {
	f := domain.SearchFilters{
		Location:      r.Location,
		StartDate:     r.StartDate,
		StartTime:     r.StartTime,
		EndDate:       r.EndDate,
		EndTime:       r.EndTime,
		Seats:         r.Seats,
		VehicleTypeID: r.VehicleTypeID,
		MakeID:        r.MakeID,
		ModelID:       r.ModelID,
		HostName:      r.HostName,
		VehicleName:   r.VehicleName,
		City:          r.City,
		MaxPrice:      r.MaxPrice,
		Page:          r.Page,
	}
	if r.Lat != nil && r.Lng != nil {
		f.Pickup = &domain.Coordinates{Lat: *r.Lat, Lng: *r.Lng}
	}
	return f
}

// session resolves the :id path parameter, responding on failure.
func (h *WizardHandler) session(c *gin.Context) (*wizard.Controller, bool) {
	ctrl, err := h.registry.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return ctrl, true
}

func segmentIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		respondBadRequest(c, "invalid segment index")
		return 0, false
	}
	return index, true
}

// ──────────────────────────────────────────────
// SESSIONS
// ──────────────────────────────────────────────

// CreateSession handles POST /v1/sessions
func (h *WizardHandler) CreateSession(c *gin.Context) {
	ctrl := h.registry.Create()
	h.log.WithSession(ctrl.ID()).Info("wizard session started")
	respondJSON(c, http.StatusCreated, ctrl.View())
}

// GetSession handles GET /v1/sessions/:id
func (h *WizardHandler) GetSession(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	respondJSON(c, http.StatusOK, ctrl.View())
}

// DeleteSession handles DELETE /v1/sessions/:id
func (h *WizardHandler) DeleteSession(c *gin.Context) {
	if err := h.registry.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ──────────────────────────────────────────────
// SEARCH
// ──────────────────────────────────────────────

// Search handles POST /v1/sessions/:id/search
func (h *WizardHandler) Search(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if _, err := ctrl.SubmitSearch(c.Request.Context(), req.filters()); err != nil {
		respondSessionError(c, ctrl, err)
		return
	}
	respondJSON(c, http.StatusOK, ctrl.View())
}

// LiveSearch handles POST /v1/sessions/:id/search/live
func (h *WizardHandler) LiveSearch(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	ticket, err := ctrl.QueueSearch(req.filters())
	if err != nil {
		respondSessionError(c, ctrl, err)
		return
	}
	respondJSON(c, http.StatusAccepted, QueuedSearchResponse{Ticket: ticket, Session: ctrl.View()})
}

// ChangePage handles POST /v1/sessions/:id/page
func (h *WizardHandler) ChangePage(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	var req PageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if _, err := ctrl.ChangePage(c.Request.Context(), req.Page); err != nil {
		respondSessionError(c, ctrl, err)
		return
	}
	respondJSON(c, http.StatusOK, ctrl.View())
}

// ──────────────────────────────────────────────
// VEHICLE AND SEGMENTS
// ──────────────────────────────────────────────

// SelectVehicle handles POST /v1/sessions/:id/vehicle
func (h *WizardHandler) SelectVehicle(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	var req SelectVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "vehicleId is required")
		return
	}

	if _, err := ctrl.SelectVehicle(c.Request.Context(), req.VehicleID); err != nil {
		respondSessionError(c, ctrl, err)
		return
	}
	respondJSON(c, http.StatusOK, ctrl.View())
}

// AddSegment handles POST /v1/sessions/:id/segments
func (h *WizardHandler) AddSegment(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}

	index, err := ctrl.AddSegment(c.Request.Context())
	if err != nil {
		respondSessionError(c, ctrl, err)
		return
	}
	respondJSON(c, http.StatusCreated, SegmentAddedResponse{Index: index, Session: ctrl.View()})
}

// UpdateSegment handles PATCH /v1/sessions/:id/segments/:index
func (h *WizardHandler) UpdateSegment(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	index, ok := segmentIndex(c)
	if !ok {
		return
	}
	var req UpdateSegmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "field is required")
		return
	}

	if err := ctrl.UpdateSegment(c.Request.Context(), index, wizard.SegmentField(req.Field), req.Value); err != nil {
		respondSessionError(c, ctrl, err)
		return
	}
	respondJSON(c, http.StatusOK, ctrl.View())
}

// RemoveSegment handles DELETE /v1/sessions/:id/segments/:index
func (h *WizardHandler) RemoveSegment(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	index, ok := segmentIndex(c)
	if !ok {
		return
	}

	if err := ctrl.RemoveSegment(c.Request.Context(), index); err != nil {
		respondSessionError(c, ctrl, err)
		return
	}
	respondJSON(c, http.StatusOK, ctrl.View())
}

// SetLocation handles PUT /v1/sessions/:id/segments/:index/location
func (h *WizardHandler) SetLocation(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	index, ok := segmentIndex(c)
	if !ok {
		return
	}
	var req SetLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "kind is required")
		return
	}

	ctx := c.Request.Context()
	kind := domain.LocationKind(req.Kind)
	var err error
	switch {
	case req.PlaceID != "":
		_, err = ctrl.SelectPlace(ctx, index, kind, req.PlaceID)
	case req.Lat != nil && req.Lng != nil:
		err = ctrl.SetLocation(ctx, index, kind, domain.Place{
			Label:       req.Label,
			Coordinates: domain.Coordinates{Lat: *req.Lat, Lng: *req.Lng},
		})
	default:
		_, err = ctrl.ResolveLocation(ctx, index, kind)
	}
	if err != nil {
		respondSessionError(c, ctrl, err)
		return
	}
	respondJSON(c, http.StatusOK, ctrl.View())
}

// ──────────────────────────────────────────────
// PRICING, CONFIRMATION AND NAVIGATION
// ──────────────────────────────────────────────

// RequestPricing handles POST /v1/sessions/:id/pricing
func (h *WizardHandler) RequestPricing(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}

	if _, err := ctrl.RequestPricing(c.Request.Context()); err != nil {
		respondSessionError(c, ctrl, err)
		return
	}
	respondJSON(c, http.StatusOK, ctrl.View())
}

// Confirm handles POST /v1/sessions/:id/confirm
func (h *WizardHandler) Confirm(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	guest := domain.GuestDetails{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Channel: domain.BookingChannel(req.Channel),
		Purpose: req.Purpose,
	}
	if _, err := ctrl.Confirm(c.Request.Context(), guest, domain.PaymentMethod(req.PaymentMethod)); err != nil {
		respondSessionError(c, ctrl, err)
		return
	}
	respondJSON(c, http.StatusCreated, ctrl.View())
}

// Back handles POST /v1/sessions/:id/back
func (h *WizardHandler) Back(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}

	if _, err := ctrl.Back(c.Request.Context()); err != nil {
		respondSessionError(c, ctrl, err)
		return
	}
	respondJSON(c, http.StatusOK, ctrl.View())
}

// Reset handles POST /v1/sessions/:id/reset
func (h *WizardHandler) Reset(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}

	if err := ctrl.Reset(c.Request.Context()); err != nil {
		respondSessionError(c, ctrl, err)
		return
	}
	respondJSON(c, http.StatusOK, ctrl.View())
}

// Summary handles GET /v1/sessions/:id/summary
func (h *WizardHandler) Summary(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}

	summary, err := ctrl.Summary()
	if err != nil {
		respondSessionError(c, ctrl, err)
		return
	}
	respondJSON(c, http.StatusOK, SummaryResponse{Summary: summary})
}

// DismissNotice handles DELETE /v1/sessions/:id/notices/:noticeId
func (h *WizardHandler) DismissNotice(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}

	if !ctrl.DismissNotice(c.Param("noticeId")) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "notice not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
