package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vlecomte/phototrip-backend-go/internal/service"
	"github.com/vlecomte/phototrip-backend-go/pkg/response"
)

// EnrichmentHandler handles HTTP requests for enrichment runs
type EnrichmentHandler struct {
	service *service.EnrichmentService
}

// NewEnrichmentHandler creates a new enrichment handler
func NewEnrichmentHandler(service *service.EnrichmentService) *EnrichmentHandler {
	return &EnrichmentHandler{service: service}
}

// StartRun starts an enrichment run for one album
// POST /api/v1/albums/:id/enrich
func (h *EnrichmentHandler) StartRun(c *gin.Context) {
	albumID := c.Param("id")

	// Set by the auth middleware
	createdBy := c.GetString("user")
	if createdBy == "" {
		createdBy = "system"
	}

	task, err := h.service.StartRun(albumID, createdBy)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	response.Success(c, task)
}

// GetTask retrieves a task by ID
// GET /api/v1/enrich/tasks/:id
func (h *EnrichmentHandler) GetTask(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid task ID")
		return
	}

	task, err := h.service.GetTask(id)
	if err != nil {
		response.Error(c, http.StatusNotFound, err.Error())
		return
	}

	response.Success(c, task)
}

// ListTasks retrieves enrichment tasks
// GET /api/v1/enrich/tasks
func (h *EnrichmentHandler) ListTasks(c *gin.Context) {
	status := c.Query("status")

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		limit = 20
	}

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		offset = 0
	}

	tasks, err := h.service.ListTasks(status, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.Success(c, gin.H{
		"tasks":  tasks,
		"limit":  limit,
		"offset": offset,
	})
}

// CancelTask cancels a running task
// DELETE /api/v1/enrich/tasks/:id
func (h *EnrichmentHandler) CancelTask(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid task ID")
		return
	}

	if err := h.service.CancelTask(id); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	response.Success(c, gin.H{"message": "Task cancelled"})
}
