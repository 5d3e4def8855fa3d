package monitor

import "padelwatch/models"

// Diff returns the slots present in current but absent from previous,
// compared by slot identity. Input order of current is preserved.
func Diff(current, previous []models.Slot) []models.Slot {
	seen := make(map[models.SlotKey]struct{}, len(previous))
	for _, s := range previous {
		seen[s.Key()] = struct{}{}
	}

	var fresh []models.Slot
	for _, s := range current {
		if _, ok := seen[s.Key()]; !ok {
			fresh = append(fresh, s)
		}
	}
	return fresh
}

// SameSet reports whether a and b contain the same slots, ignoring order.
func SameSet(a, b []models.Slot) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[models.SlotKey]int, len(a))
	for _, s := range a {
		counts[s.Key()]++
	}
	for _, s := range b {
		counts[s.Key()]--
		if counts[s.Key()] < 0 {
			return false
		}
	}
	return true
}
