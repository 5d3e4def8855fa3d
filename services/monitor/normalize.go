package monitor

import (
	"fmt"
	"sort"
	"time"

	"padelwatch/models"
)

// Normalizer converts raw booking-API records into canonical slots: local
// wall-clock start times, minute durations, and court display names, limited
// to the indoor courts of the injected table.
type Normalizer struct {
	courts models.CourtTable
	loc    *time.Location
}

// NewNormalizer builds a Normalizer for the given court table and IANA
// timezone name.
func NewNormalizer(courts models.CourtTable, timezone string) (*Normalizer, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", timezone, err)
	}
	return &Normalizer{courts: courts, loc: loc}, nil
}

// Normalize converts raw records to slots sorted by (StartsAt, CourtID).
// Records for unknown or outdoor courts are dropped. A malformed timestamp
// fails the whole batch; callers treat that as zero availability rather than
// working from a partial list.
func (n *Normalizer) Normalize(raw []models.RawSlot) ([]models.Slot, error) {
	slots := make([]models.Slot, 0, len(raw))
	for _, r := range raw {
		court, ok := n.courts.Eligible(r.CourtID)
		if !ok {
			continue
		}

		start, err := time.Parse(time.RFC3339, r.StartsAt)
		if err != nil {
			return nil, fmt.Errorf("malformed starts_at %q for court %d: %w", r.StartsAt, r.CourtID, err)
		}
		end, err := time.Parse(time.RFC3339, r.EndsAt)
		if err != nil {
			return nil, fmt.Errorf("malformed ends_at %q for court %d: %w", r.EndsAt, r.CourtID, err)
		}

		slots = append(slots, models.Slot{
			CourtName: court.Name,
			CourtID:   r.CourtID,
			StartsAt:  start.In(n.loc).Format("15:04"),
			Duration:  int(end.Sub(start) / time.Minute),
		})
	}

	sort.Slice(slots, func(i, j int) bool {
		if slots[i].StartsAt != slots[j].StartsAt {
			return slots[i].StartsAt < slots[j].StartsAt
		}
		return slots[i].CourtID < slots[j].CourtID
	})
	return slots, nil
}
