package models

// RawSlot is one availability record as returned by the booking API,
// timestamps still in UTC ISO-8601.
type RawSlot struct {
	CourtID  int    `json:"court_id"`
	StartsAt string `json:"starts_at"`
	EndsAt   string `json:"ends_at"`
}

// Slot is a bookable court window on a monitored date, normalized to local
// wall-clock time. Slot identity is the (CourtID, StartsAt, Duration) triple;
// CourtName is display-only and takes no part in comparisons.
type Slot struct {
	CourtName string `bson:"court_name" json:"court_name"` // e.g. "2 | Vandelanotte (Grimbergen)"
	CourtID   int    `bson:"court_id" json:"court_id"`
	StartsAt  string `bson:"starts_at" json:"starts_at"` // local "HH:MM"
	Duration  int    `bson:"duration" json:"duration"`   // minutes
}

// SlotKey is the comparable identity of a Slot, usable as a map key for set
// membership and diffing.
type SlotKey struct {
	CourtID  int
	StartsAt string
	Duration int
}

// Key returns the slot's value identity.
func (s Slot) Key() SlotKey {
	return SlotKey{CourtID: s.CourtID, StartsAt: s.StartsAt, Duration: s.Duration}
}
