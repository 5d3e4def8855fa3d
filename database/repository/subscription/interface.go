package subscriptionRepo

import (
	"errors"

	"padelwatch/models"
)

// ErrDuplicate is returned by Create when a subscription with the same
// (email, date, min_time, min_duration) already exists.
var ErrDuplicate = errors.New("subscription already exists")

// ErrNotFound is returned by Delete when no subscription has the given ID.
var ErrNotFound = errors.New("subscription not found")

// Repository persists subscriber alert criteria.
type Repository interface {
	Create(sub *models.Subscription) error
	ListAll() ([]models.Subscription, error)
	ListByEmail(email string) ([]models.Subscription, error)
	Delete(id string) error
	// DeleteExpired removes every subscription whose target date is strictly
	// before the given date and reports how many were removed.
	DeleteExpired(before string) (int64, error)
}
