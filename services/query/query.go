package query

import (
	"context"
	"fmt"
	"time"

	"padelwatch/models"
	"padelwatch/services/arenal"
	"padelwatch/services/monitor"
	"padelwatch/utils"
)

// Request holds one on-demand availability query.
type Request struct {
	Date        string // "YYYY-MM-DD"
	MinTime     string // "HH:MM"
	MinDuration int    // minutes
}

// Result is the answer to one query: the filtered slots, the same slots
// grouped by start time for display, and the subset not seen on the caller's
// previous identical query.
type Result struct {
	Date     string                   `json:"date"`
	Slots    []models.Slot            `json:"slots"`
	ByTime   map[string][]models.Slot `json:"slots_by_time"`
	NewSlots []models.Slot            `json:"new_slots"`
}

// Service answers on-demand availability queries.
type Service interface {
	CheckAvailability(ctx context.Context, req Request) (*Result, error)
}

// DefaultQueryService implements Service. It reuses the monitor's normalizer,
// matcher and diff engine, but diffs against a per-criteria ad hoc snapshot
// held in the cache rather than the subscription cycle's committed snapshots.
type DefaultQueryService struct {
	Fetcher    arenal.Client
	Normalizer *monitor.Normalizer
	Cache      SnapshotCache
	TTL        time.Duration
}

// CheckAvailability fetches live availability for the requested date, filters
// it by the caller's criteria, and highlights the slots that were absent from
// the previous identical query. The filtered set then replaces the cached
// snapshot for those criteria.
func (s *DefaultQueryService) CheckAvailability(ctx context.Context, req Request) (*Result, error) {
	logger := utils.GetLogger().Sugar()
	key := cacheKey(req)

	previous, err := s.Cache.Load(ctx, key)
	if err != nil {
		logger.Errorw("query: failed to load previous snapshot, treating as empty", "key", key, "err", err)
		previous = nil
	}

	raw, err := s.Fetcher.FetchSlots(ctx, req.Date)
	if err != nil {
		logger.Errorw("query: fetch failed, treating as no availability", "date", req.Date, "err", err)
		raw = nil
	}
	all, err := s.Normalizer.Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize slots for %s: %w", req.Date, err)
	}

	filtered := monitor.Match(all, req.MinTime, req.MinDuration)
	fresh := monitor.Diff(filtered, previous)

	if err := s.Cache.Store(ctx, key, filtered, s.TTL); err != nil {
		logger.Errorw("query: failed to store snapshot", "key", key, "err", err)
	}

	byTime := make(map[string][]models.Slot)
	for _, slot := range filtered {
		byTime[slot.StartsAt] = append(byTime[slot.StartsAt], slot)
	}

	return &Result{
		Date:     req.Date,
		Slots:    filtered,
		ByTime:   byTime,
		NewSlots: fresh,
	}, nil
}

// cacheKey derives the snapshot key from the full query criteria, so queries
// with different filters never shadow each other.
func cacheKey(req Request) string {
	return fmt.Sprintf("query:%s:%s:%d", req.Date, req.MinTime, req.MinDuration)
}
