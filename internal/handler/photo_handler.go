package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vlecomte/phototrip-backend-go/internal/service"
	"github.com/vlecomte/phototrip-backend-go/pkg/response"
)

// PhotoHandler handles HTTP requests for photo metadata
type PhotoHandler struct {
	service *service.PhotoService
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(service *service.PhotoService) *PhotoHandler {
	return &PhotoHandler{service: service}
}

// Upload registers the metadata of a batch of uploaded photos
// POST /api/v1/albums/:id/photos
func (h *PhotoHandler) Upload(c *gin.Context) {
	albumID := c.Param("id")

	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	files := form.File["photos"]
	if len(files) == 0 {
		response.Error(c, http.StatusBadRequest, "No photos in request")
		return
	}

	result, err := h.service.Ingest(albumID, files)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	response.Success(c, result)
}

// List retrieves an album's photo metadata
// GET /api/v1/albums/:id/photos
func (h *PhotoHandler) List(c *gin.Context) {
	photos, err := h.service.ListByAlbum(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.Success(c, gin.H{"photos": photos})
}
