package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/vlecomte/phototrip-backend-go/internal/enrich"
	"github.com/vlecomte/phototrip-backend-go/internal/geocode"
	"github.com/vlecomte/phototrip-backend-go/internal/models"
	"github.com/vlecomte/phototrip-backend-go/internal/repository"
)

// EnrichmentService runs the metadata enrichment pipeline for albums as
// tracked background tasks
type EnrichmentService struct {
	photos     *repository.PhotoRepository
	days       *repository.DayEntryRepository
	tasks      *repository.EnrichmentTaskRepository
	cacheStore geocode.Store
	resolver   geocode.Resolver
	cfg        enrich.Config
	logger     *zap.Logger

	mu      sync.Mutex
	cancels map[int]context.CancelFunc
}

// NewEnrichmentService creates a new enrichment service
func NewEnrichmentService(
	photos *repository.PhotoRepository,
	days *repository.DayEntryRepository,
	tasks *repository.EnrichmentTaskRepository,
	cacheStore geocode.Store,
	resolver geocode.Resolver,
	cfg enrich.Config,
	logger *zap.Logger,
) *EnrichmentService {
	return &EnrichmentService{
		photos:     photos,
		days:       days,
		tasks:      tasks,
		cacheStore: cacheStore,
		resolver:   resolver,
		cfg:        cfg,
		logger:     logger,
		cancels:    make(map[int]context.CancelFunc),
	}
}

// StartRun creates an enrichment task for one album and runs the pipeline in
// the background. A missing album id is the only input rejected up front.
func (s *EnrichmentService) StartRun(albumID, createdBy string) (*models.EnrichmentTask, error) {
	if albumID == "" {
		return nil, fmt.Errorf("album id is required")
	}

	task := &models.EnrichmentTask{
		AlbumID:   albumID,
		Status:    models.TaskStatusPending,
		CreatedBy: createdBy,
	}
	if err := s.tasks.Create(task); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	s.cancels[task.ID] = cancel
	s.mu.Unlock()

	go s.run(ctx, task.ID, albumID)

	return task, nil
}

// run executes one enrichment pass. The pipeline is best-effort: cancellation
// or geocoding trouble still leaves coordinates and already-resolved names,
// and everything computed is persisted item by item so one bad write cannot
// sink the batch.
func (s *EnrichmentService) run(ctx context.Context, taskID int, albumID string) {
	defer func() {
		s.mu.Lock()
		if cancel, ok := s.cancels[taskID]; ok {
			cancel()
			delete(s.cancels, taskID)
		}
		s.mu.Unlock()
	}()

	if err := s.tasks.MarkAsRunning(taskID); err != nil {
		s.logger.Error("failed to mark task running", zap.Int("task_id", taskID), zap.Error(err))
		return
	}

	photos, err := s.photos.ListByAlbum(albumID)
	if err != nil {
		s.fail(taskID, fmt.Sprintf("failed to load photos: %v", err))
		return
	}

	cache := geocode.NewCache(s.cacheStore)
	pipeline := enrich.NewPipeline(s.logger, s.resolver, cache, s.cfg)

	out, err := pipeline.Run(ctx, enrich.Input{AlbumID: albumID, Photos: photos})
	if err != nil {
		s.fail(taskID, err.Error())
		return
	}

	task := &models.EnrichmentTask{
		ID:           taskID,
		TotalPhotos:  len(photos),
		GeocodeCalls: out.GeocodeCalls,
	}

	for _, day := range out.Days {
		for _, p := range day.Photos {
			if err := s.photos.UpdateEnrichment(p); err != nil {
				task.FailedPhotos++
				s.logger.Warn("failed to persist photo enrichment",
					zap.String("photo_id", p.ID),
					zap.Error(err),
				)
				continue
			}
			task.UpdatedPhotos++
		}
	}

	for _, entry := range out.Entries {
		if err := s.days.Upsert(entry); err != nil {
			task.FailedDays++
			s.logger.Warn("failed to persist day entry",
				zap.String("album_id", entry.AlbumID),
				zap.String("date", entry.Date),
				zap.Error(err),
			)
			continue
		}
		task.UpdatedDays++
	}

	if err := s.tasks.Complete(task); err != nil {
		s.logger.Error("failed to finalize task", zap.Int("task_id", taskID), zap.Error(err))
		return
	}

	s.logger.Info("enrichment run finished",
		zap.Int("task_id", taskID),
		zap.String("album_id", albumID),
		zap.Int("updated_photos", task.UpdatedPhotos),
		zap.Int("failed_photos", task.FailedPhotos),
		zap.Int("updated_days", task.UpdatedDays),
		zap.Bool("cancelled", ctx.Err() != nil),
	)
}

func (s *EnrichmentService) fail(taskID int, message string) {
	if err := s.tasks.MarkAsFailed(taskID, message); err != nil {
		s.logger.Error("failed to mark task failed", zap.Int("task_id", taskID), zap.Error(err))
	}
}

// GetTask retrieves a task by ID
func (s *EnrichmentService) GetTask(id int) (*models.EnrichmentTask, error) {
	return s.tasks.GetByID(id)
}

// ListTasks retrieves tasks with an optional status filter
func (s *EnrichmentService) ListTasks(status string, limit int, offset int) ([]*models.EnrichmentTask, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	return s.tasks.List(status, limit, offset)
}

// CancelTask cancels a running task. In-flight geocode lookups are abandoned;
// results already computed are still persisted, so a cancelled run typically
// finishes as completed with partial counts.
func (s *EnrichmentService) CancelTask(id int) error {
	s.mu.Lock()
	cancel, running := s.cancels[id]
	s.mu.Unlock()

	if running {
		cancel()
		return nil
	}

	task, err := s.tasks.GetByID(id)
	if err != nil {
		return err
	}
	if task.IsTerminal() {
		return fmt.Errorf("task is already in terminal state: %s", task.Status)
	}

	return s.tasks.MarkAsFailed(id, "task cancelled by user")
}
