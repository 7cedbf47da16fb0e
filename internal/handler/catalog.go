package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookingdesk/internal/service"
)

// CatalogHandler serves the reference lists behind the search and segment forms.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// BookingTypes handles GET /v1/catalog/booking-types
func (h *CatalogHandler) BookingTypes(c *gin.Context) {
	items, err := h.catalog.BookingTypes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"items": items})
}

// VehicleTypes handles GET /v1/catalog/vehicle-types
func (h *CatalogHandler) VehicleTypes(c *gin.Context) {
	items, err := h.catalog.VehicleTypes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"items": items})
}

// VehicleMakes handles GET /v1/catalog/vehicle-makes
func (h *CatalogHandler) VehicleMakes(c *gin.Context) {
	items, err := h.catalog.VehicleMakes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"items": items})
}

// VehicleModels handles GET /v1/catalog/vehicle-makes/:id/models
func (h *CatalogHandler) VehicleModels(c *gin.Context) {
	items, err := h.catalog.VehicleModels(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"items": items})
}
