package service

import (
	"fmt"
	"mime/multipart"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vlecomte/phototrip-backend-go/internal/exif"
	"github.com/vlecomte/phototrip-backend-go/internal/models"
	"github.com/vlecomte/phototrip-backend-go/internal/repository"
)

// PhotoService registers uploaded photos' metadata. Image bytes themselves
// live in the object storage collaborator; only the EXIF header is read here.
type PhotoService struct {
	photos      *repository.PhotoRepository
	concurrency int
	logger      *zap.Logger
}

// NewPhotoService creates a new photo service
func NewPhotoService(photos *repository.PhotoRepository, concurrency int, logger *zap.Logger) *PhotoService {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &PhotoService{photos: photos, concurrency: concurrency, logger: logger}
}

// IngestResult summarizes one metadata registration batch
type IngestResult struct {
	Photos []*models.Photo `json:"photos"`
	Failed int             `json:"failed"`
}

// Ingest extracts EXIF metadata from a batch of uploaded files on a bounded
// worker pool and stores one photo row per file. A file without a readable
// EXIF header still gets a row — it simply has nothing to enrich from. One
// failing file never aborts the batch.
func (s *PhotoService) Ingest(albumID string, files []*multipart.FileHeader) (*IngestResult, error) {
	if albumID == "" {
		return nil, fmt.Errorf("album id is required")
	}

	result := &IngestResult{}
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for _, fh := range files {
		fh := fh
		g.Go(func() error {
			photo, err := s.ingestOne(albumID, fh)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed++
				s.logger.Warn("failed to ingest photo",
					zap.String("filename", fh.Filename),
					zap.Error(err),
				)
				return nil
			}
			result.Photos = append(result.Photos, photo)
			return nil
		})
	}

	// Workers swallow their own errors into the result counts
	_ = g.Wait()

	return result, nil
}

func (s *PhotoService) ingestOne(albumID string, fh *multipart.FileHeader) (*models.Photo, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	meta, err := exif.Extract(f)
	if err != nil {
		// No decodable header; keep the photo with empty metadata
		s.logger.Debug("no EXIF metadata in upload",
			zap.String("filename", fh.Filename),
			zap.Error(err),
		)
	}

	photo := &models.Photo{
		ID:        uuid.NewString(),
		AlbumID:   albumID,
		TakenAt:   meta.TakenAt,
		Latitude:  meta.Latitude,
		Longitude: meta.Longitude,
	}

	if err := s.photos.Create(photo); err != nil {
		return nil, err
	}

	return photo, nil
}

// ListByAlbum retrieves an album's photo metadata
func (s *PhotoService) ListByAlbum(albumID string) ([]*models.Photo, error) {
	return s.photos.ListByAlbum(albumID)
}
