package syncer

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"jobmirror/internal/domain/listing"
	"jobmirror/internal/store"
)

// SyncService replicates open master listings into the public catalogs.
type SyncService struct {
	app *App
	log *slog.Logger
}

// SyncResult is the tally of one forward-sync run.
type SyncResult struct {
	Created   int           `json:"created"`
	Skipped   int           `json:"skipped"`
	Errors    int           `json:"errors"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
}

// Run fetches every open master listing and replicates each into its routed
// public catalogs, creating only where no copy exists yet. Per-record and
// per-target failures are counted and the run continues; only failure to
// obtain the initial listing is fatal.
func (s *SyncService) Run(ctx context.Context) (*SyncResult, error) {
	result := &SyncResult{StartTime: time.Now()}

	open, err := s.app.store.Query(ctx, s.app.config.MasterCollectionID,
		store.StatusEquals(listing.PropStatus, string(listing.StatusOpen)))
	if err != nil {
		return nil, fmt.Errorf("fetching open listings: %w", err)
	}

	if len(open) == 0 {
		s.log.Info("no open listings to replicate")
		s.finish(result)
		return result, nil
	}

	s.log.Info("replicating open listings", "count", len(open))

	for _, doc := range open {
		s.replicate(ctx, listing.MasterRecord{Document: doc}, result)
	}

	s.finish(result)
	return result, nil
}

func (s *SyncService) replicate(ctx context.Context, rec listing.MasterRecord, result *SyncResult) {
	title := rec.TitleText()

	masterID, okID := rec.MasterID()
	category, okCat := rec.Category()
	tier, okTier := rec.Tier()
	if !okID || !okCat || !okTier {
		s.log.Error("listing missing required fields",
			"title", title,
			"has_master_id", okID,
			"has_category", okCat,
			"has_tier", okTier,
		)
		result.Errors++
		return
	}

	targets := s.app.router.Targets(category, tier)
	if len(targets) == 0 {
		s.log.Debug("listing out of scope, no targets",
			"title", title,
			"category", category,
			"tier", tier,
		)
		result.Skipped++
		return
	}

	properties := listing.MapProperties(rec.Document, s.app.copyFields)
	children := s.fetchContent(ctx, rec)

	// Targets are processed independently so one broken catalog cannot
	// block the others.
	for _, key := range targets {
		collectionID, ok := s.app.config.PublicCollections[key]
		if !ok || collectionID == "" {
			s.log.Error("no collection configured for target",
				"title", title,
				"target", key,
			)
			result.Errors++
			continue
		}

		existing, err := s.app.store.Query(ctx, collectionID,
			store.NumberEquals(listing.PropBackRef, float64(masterID)))
		if err != nil {
			s.log.Error("existence check failed",
				"title", title,
				"target", key,
				"error", err,
			)
			result.Errors++
			continue
		}
		if len(existing) > 0 {
			s.log.Debug("already replicated",
				"title", title,
				"target", key,
				"master_id", masterID,
			)
			result.Skipped++
			continue
		}

		if _, err := s.app.store.Create(ctx, collectionID, properties, children); err != nil {
			s.log.Error("create failed",
				"title", title,
				"target", key,
				"error", err,
			)
			result.Errors++
			continue
		}
		s.log.Info("listing replicated",
			"title", title,
			"target", key,
			"master_id", masterID,
		)
		result.Created++
	}
}

// fetchContent loads and sanitizes the listing's nested content.
// Best-effort: a content-less copy beats no copy at all, so failures
// degrade to empty content with a warning.
func (s *SyncService) fetchContent(ctx context.Context, rec listing.MasterRecord) []store.ContentBlock {
	blocks, err := s.app.store.ListBlocks(ctx, rec.ID)
	if err != nil {
		s.log.Warn("content unavailable, replicating without it",
			"title", rec.TitleText(),
			"error", err,
		)
		return nil
	}
	return listing.SanitizeBlocks(listing.FilterCopyable(blocks))
}

func (s *SyncService) finish(result *SyncResult) {
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)

	if result.Errors > 0 {
		s.log.Warn("sync finished with errors",
			"created", result.Created,
			"skipped", result.Skipped,
			"errors", result.Errors,
			"duration", result.Duration,
		)
		return
	}
	s.log.Info("sync finished",
		"created", result.Created,
		"skipped", result.Skipped,
		"duration", result.Duration,
	)
}
