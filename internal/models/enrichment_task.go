package models

import "time"

// EnrichmentTask represents one enrichment run over an album, tracked so the
// UI can poll a single success/failure summary instead of per-photo detail
type EnrichmentTask struct {
	ID            int        `json:"id" db:"id"`
	AlbumID       string     `json:"album_id" db:"album_id"`
	Status        string     `json:"status" db:"status"` // pending, running, completed, failed
	TotalPhotos   int        `json:"total_photos" db:"total_photos"`
	UpdatedPhotos int        `json:"updated_photos" db:"updated_photos"`
	FailedPhotos  int        `json:"failed_photos" db:"failed_photos"`
	UpdatedDays   int        `json:"updated_days" db:"updated_days"`
	FailedDays    int        `json:"failed_days" db:"failed_days"`
	GeocodeCalls  int        `json:"geocode_calls" db:"geocode_calls"`
	ErrorMessage  *string    `json:"error_message,omitempty" db:"error_message"`
	CreatedBy     string     `json:"created_by" db:"created_by"`
	StartTime     *time.Time `json:"start_time,omitempty" db:"start_time"`
	EndTime       *time.Time `json:"end_time,omitempty" db:"end_time"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// TaskStatus constants
const (
	TaskStatusPending   = "pending"
	TaskStatusRunning   = "running"
	TaskStatusCompleted = "completed"
	TaskStatusFailed    = "failed"
)

// IsTerminal returns true if the task is in a terminal state
func (t *EnrichmentTask) IsTerminal() bool {
	return t.Status == TaskStatusCompleted || t.Status == TaskStatusFailed
}
