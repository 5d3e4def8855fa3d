package notification

import "padelwatch/models"

// Service delivers availability alerts to subscribers.
type Service interface {
	// SendSlotAlert emails one subscriber about the given slots on date.
	// slots is expected to be non-empty and ordered by start time.
	SendSlotAlert(email, date string, slots []models.Slot) error
}
