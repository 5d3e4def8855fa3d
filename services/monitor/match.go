package monitor

import "padelwatch/models"

// Match filters slots to those starting at or after minTime and lasting at
// least minDuration minutes. Both bounds are inclusive and input order is
// preserved. The zero-padded fixed-width "HH:MM" format makes the string
// comparison equivalent to a time comparison.
func Match(slots []models.Slot, minTime string, minDuration int) []models.Slot {
	var matched []models.Slot
	for _, s := range slots {
		if s.StartsAt >= minTime && s.Duration >= minDuration {
			matched = append(matched, s)
		}
	}
	return matched
}
