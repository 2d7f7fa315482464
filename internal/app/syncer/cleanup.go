package syncer

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"jobmirror/internal/domain/listing"
	"jobmirror/internal/store"
)

// CleanupService retires closed master listings from the public catalogs.
type CleanupService struct {
	app *App
	log *slog.Logger
}

// CleanupResult is the tally of one retract run.
type CleanupResult struct {
	Archived  int           `json:"archived"`
	Errors    int           `json:"errors"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
}

// Run fetches every closed master listing and archives its copies across
// all public catalogs. The search deliberately ignores routing: a closed
// listing must be retracted from wherever it may have landed, even after a
// category reassignment. Per-record and per-catalog failures are counted
// and the run continues; only failure to obtain the initial listing is
// fatal.
func (s *CleanupService) Run(ctx context.Context) (*CleanupResult, error) {
	result := &CleanupResult{StartTime: time.Now()}

	closed, err := s.app.store.Query(ctx, s.app.config.MasterCollectionID,
		store.StatusEquals(listing.PropStatus, string(listing.StatusClosed)))
	if err != nil {
		return nil, fmt.Errorf("fetching closed listings: %w", err)
	}

	if len(closed) == 0 {
		s.log.Info("no closed listings to retract")
		s.finish(result)
		return result, nil
	}

	s.log.Info("retracting closed listings", "count", len(closed))

	for _, doc := range closed {
		s.retract(ctx, listing.MasterRecord{Document: doc}, result)
	}

	s.finish(result)
	return result, nil
}

func (s *CleanupService) retract(ctx context.Context, rec listing.MasterRecord, result *CleanupResult) {
	title := rec.TitleText()

	masterID, ok := rec.MasterID()
	if !ok {
		s.log.Error("closed listing missing master id", "title", title)
		result.Errors++
		return
	}

	for _, key := range listing.AllCollectionKeys() {
		collectionID, ok := s.app.config.PublicCollections[key]
		if !ok || collectionID == "" {
			s.log.Error("no collection configured for target",
				"title", title,
				"target", key,
			)
			result.Errors++
			continue
		}

		matches, err := s.app.store.Query(ctx, collectionID,
			store.NumberEquals(listing.PropBackRef, float64(masterID)))
		if err != nil {
			s.log.Error("search failed",
				"title", title,
				"target", key,
				"error", err,
			)
			result.Errors++
			continue
		}

		// All matches are archived, defensively: the uniqueness invariant
		// should make more than one impossible.
		for _, match := range matches {
			if _, err := s.app.store.Archive(ctx, match.ID); err != nil {
				s.log.Error("archive failed",
					"title", title,
					"target", key,
					"document_id", match.ID,
					"error", err,
				)
				result.Errors++
				continue
			}
			s.log.Info("listing retracted",
				"title", title,
				"target", key,
				"master_id", masterID,
			)
			result.Archived++
		}
	}
}

func (s *CleanupService) finish(result *CleanupResult) {
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)

	if result.Errors > 0 {
		s.log.Warn("cleanup finished with errors",
			"archived", result.Archived,
			"errors", result.Errors,
			"duration", result.Duration,
		)
		return
	}
	s.log.Info("cleanup finished",
		"archived", result.Archived,
		"duration", result.Duration,
	)
}
