package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bookingdesk/internal/repository"
)

// JournalHandler lists bookings created from this console.
type JournalHandler struct {
	journalRepo repository.JournalRepository
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(journalRepo repository.JournalRepository) *JournalHandler {
	return &JournalHandler{journalRepo: journalRepo}
}

// ListRecent handles GET /v1/journal?limit=
func (h *JournalHandler) ListRecent(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondBadRequest(c, "invalid limit")
			return
		}
		limit = n
	}

	entries, err := h.journalRepo.ListRecent(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"items": entries})
}

// GetByBookingID handles GET /v1/journal/:bookingId
func (h *JournalHandler) GetByBookingID(c *gin.Context) {
	entry, err := h.journalRepo.GetByBookingID(c.Request.Context(), c.Param("bookingId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, entry)
}
