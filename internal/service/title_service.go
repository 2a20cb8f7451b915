package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vlecomte/phototrip-backend-go/internal/enrich"
	"github.com/vlecomte/phototrip-backend-go/internal/repository"
)

// TitleService regenerates day titles from already-persisted day entries.
// This is the administrative "recompute all titles" sweep: it re-runs only
// the title generator over stored coordinates and place names, without
// touching coordinate or place resolution.
type TitleService struct {
	days   *repository.DayEntryRepository
	logger *zap.Logger
}

// NewTitleService creates a new title service
func NewTitleService(days *repository.DayEntryRepository, logger *zap.Logger) *TitleService {
	return &TitleService{days: days, logger: logger}
}

// RecomputeResult summarizes one sweep
type RecomputeResult struct {
	Albums  int `json:"albums"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"` // user-overridden titles left alone
	Failed  int `json:"failed"`
}

// RecomputeAll rewrites the title of every day entry of every album. Day
// indexes are recomputed from each album's full date ordering; entries with
// a manual title override are skipped.
func (s *TitleService) RecomputeAll() (*RecomputeResult, error) {
	albumIDs, err := s.days.ListAlbumIDs()
	if err != nil {
		return nil, err
	}

	result := &RecomputeResult{Albums: len(albumIDs)}

	for _, albumID := range albumIDs {
		entries, err := s.days.ListByAlbum(albumID)
		if err != nil {
			s.logger.Warn("failed to load day entries for title sweep",
				zap.String("album_id", albumID),
				zap.Error(err),
			)
			result.Failed++
			continue
		}

		for i, entry := range entries {
			date, err := time.Parse("2006-01-02", entry.Date)
			if err != nil {
				s.logger.Warn("day entry has malformed date",
					zap.String("album_id", albumID),
					zap.String("date", entry.Date),
				)
				result.Failed++
				continue
			}

			locationName := ""
			if entry.LocationName != nil {
				locationName = *entry.LocationName
			}

			title := enrich.FormatTitle(i+1, date, locationName)
			updated, err := s.days.UpdateTitle(albumID, entry.Date, title)
			if err != nil {
				result.Failed++
				continue
			}
			if updated {
				result.Updated++
			} else {
				result.Skipped++
			}
		}
	}

	s.logger.Info("title sweep finished",
		zap.Int("albums", result.Albums),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
	)

	if result.Failed > 0 && result.Updated == 0 && result.Skipped == 0 {
		return result, fmt.Errorf("title sweep failed for all %d entries", result.Failed)
	}

	return result, nil
}
