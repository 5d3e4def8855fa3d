package snapshotRepo

import "padelwatch/models"

// Repository persists, per monitored date, the set of slots known as of the
// last completed monitor cycle. Writes replace the whole set; there is no
// history beyond the last committed snapshot.
type Repository interface {
	// Get returns the stored slot set for date, or nil when no snapshot exists.
	Get(date string) ([]models.Slot, error)
	// Put replaces the stored slot set for date with slots.
	Put(date string, slots []models.Slot) error
}
