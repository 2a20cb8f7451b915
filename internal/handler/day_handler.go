package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vlecomte/phototrip-backend-go/internal/repository"
	"github.com/vlecomte/phototrip-backend-go/pkg/response"
)

// DayHandler handles HTTP requests for journal day entries
type DayHandler struct {
	days *repository.DayEntryRepository
}

// NewDayHandler creates a new day handler
func NewDayHandler(days *repository.DayEntryRepository) *DayHandler {
	return &DayHandler{days: days}
}

// List retrieves an album's day entries sorted by date
// GET /api/v1/albums/:id/days
func (h *DayHandler) List(c *gin.Context) {
	entries, err := h.days.ListByAlbum(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.Success(c, gin.H{"days": entries})
}
