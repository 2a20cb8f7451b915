package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vlecomte/phototrip-backend-go/internal/models"
)

// EnrichmentTaskRepository handles database operations for enrichment tasks
type EnrichmentTaskRepository struct {
	db *sql.DB
}

// NewEnrichmentTaskRepository creates a new enrichment task repository
func NewEnrichmentTaskRepository(db *sql.DB) *EnrichmentTaskRepository {
	return &EnrichmentTaskRepository{db: db}
}

// Create creates a new enrichment task
func (r *EnrichmentTaskRepository) Create(task *models.EnrichmentTask) error {
	query := `
		INSERT INTO enrichment_tasks (
			album_id, status, total_photos, updated_photos, failed_photos,
			updated_days, failed_days, geocode_calls, error_message, created_by
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		task.AlbumID,
		task.Status,
		task.TotalPhotos,
		task.UpdatedPhotos,
		task.FailedPhotos,
		task.UpdatedDays,
		task.FailedDays,
		task.GeocodeCalls,
		task.ErrorMessage,
		task.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to create enrichment task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	task.ID = int(id)
	return nil
}

// GetByID retrieves an enrichment task by ID
func (r *EnrichmentTaskRepository) GetByID(id int) (*models.EnrichmentTask, error) {
	query := selectTaskColumns + ` WHERE id = ?`

	task, err := scanTask(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("enrichment task not found: %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get enrichment task: %w", err)
	}

	return task, nil
}

// List retrieves enrichment tasks with an optional status filter
func (r *EnrichmentTaskRepository) List(status string, limit int, offset int) ([]*models.EnrichmentTask, error) {
	query := selectTaskColumns

	args := []interface{}{}
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}

	query += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrichment tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*models.EnrichmentTask
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan enrichment task: %w", err)
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// MarkAsRunning marks a task as running
func (r *EnrichmentTaskRepository) MarkAsRunning(id int) error {
	query := `
		UPDATE enrichment_tasks
		SET status = ?, start_time = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err := r.db.Exec(query, models.TaskStatusRunning, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to mark task as running: %w", err)
	}

	return nil
}

// Complete records the final counters and marks the task completed
func (r *EnrichmentTaskRepository) Complete(task *models.EnrichmentTask) error {
	query := `
		UPDATE enrichment_tasks
		SET status = ?, total_photos = ?, updated_photos = ?, failed_photos = ?,
			updated_days = ?, failed_days = ?, geocode_calls = ?,
			end_time = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err := r.db.Exec(query,
		models.TaskStatusCompleted,
		task.TotalPhotos,
		task.UpdatedPhotos,
		task.FailedPhotos,
		task.UpdatedDays,
		task.FailedDays,
		task.GeocodeCalls,
		time.Now(),
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark task as completed: %w", err)
	}

	return nil
}

// MarkAsFailed marks a task as failed with an error message
func (r *EnrichmentTaskRepository) MarkAsFailed(id int, errorMessage string) error {
	query := `
		UPDATE enrichment_tasks
		SET status = ?, end_time = ?, error_message = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err := r.db.Exec(query, models.TaskStatusFailed, time.Now(), errorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to mark task as failed: %w", err)
	}

	return nil
}

const selectTaskColumns = `
	SELECT id, album_id, status, total_photos, updated_photos, failed_photos,
		   updated_days, failed_days, geocode_calls, error_message, created_by,
		   start_time, end_time, created_at, updated_at
	FROM enrichment_tasks
`

func scanTask(s scanner) (*models.EnrichmentTask, error) {
	task := &models.EnrichmentTask{}
	var errorMessage sql.NullString
	var startTime, endTime sql.NullTime

	err := s.Scan(
		&task.ID,
		&task.AlbumID,
		&task.Status,
		&task.TotalPhotos,
		&task.UpdatedPhotos,
		&task.FailedPhotos,
		&task.UpdatedDays,
		&task.FailedDays,
		&task.GeocodeCalls,
		&errorMessage,
		&task.CreatedBy,
		&startTime,
		&endTime,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if errorMessage.Valid {
		task.ErrorMessage = &errorMessage.String
	}
	if startTime.Valid {
		t := startTime.Time
		task.StartTime = &t
	}
	if endTime.Valid {
		t := endTime.Time
		task.EndTime = &t
	}

	return task, nil
}
