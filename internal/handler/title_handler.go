package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vlecomte/phototrip-backend-go/internal/service"
	"github.com/vlecomte/phototrip-backend-go/pkg/response"
)

// TitleHandler handles HTTP requests for the administrative title sweep
type TitleHandler struct {
	service *service.TitleService
}

// NewTitleHandler creates a new title handler
func NewTitleHandler(service *service.TitleService) *TitleHandler {
	return &TitleHandler{service: service}
}

// Recompute regenerates every day title from persisted day entries
// POST /api/v1/admin/titles/recompute
func (h *TitleHandler) Recompute(c *gin.Context) {
	result, err := h.service.RecomputeAll()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.Success(c, result)
}
