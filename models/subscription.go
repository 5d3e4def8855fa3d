package models

import "time"

// Subscription is a standing availability alert: notify Email whenever new
// slots on Date start at or after MinTime and last at least MinDuration.
// No two subscriptions may share the same (Email, Date, MinTime, MinDuration).
type Subscription struct {
	ID          string    `bson:"id" json:"id"`                     // UUID
	Email       string    `bson:"email" json:"email"`               // destination address
	Date        string    `bson:"date" json:"date"`                 // target date, "YYYY-MM-DD"
	MinTime     string    `bson:"min_time" json:"min_time"`         // earliest acceptable start, "HH:MM"
	MinDuration int       `bson:"min_duration" json:"min_duration"` // minimum slot length in minutes
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
