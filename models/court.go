package models

// Court describes one court at a monitored club.
type Court struct {
	Name   string
	Indoor bool
}

// CourtTable maps the booking API's court IDs to court metadata. Only IDs
// present in the table and flagged Indoor are eligible for monitoring;
// everything else is discarded during normalization.
type CourtTable map[int]Court

// Eligible returns the court for id when it is known and indoor.
func (t CourtTable) Eligible(id int) (Court, bool) {
	c, ok := t[id]
	if !ok || !c.Indoor {
		return Court{}, false
	}
	return c, true
}

// DefaultCourts returns the fixed Arenal Grimbergen/Meise court list. A fresh
// table is returned on each call so callers cannot mutate shared state.
func DefaultCourts() CourtTable {
	return CourtTable{
		18: {Name: "0 | CUPRA (Grimbergen)", Indoor: true},
		19: {Name: "1 | ACT Sports (Grimbergen)", Indoor: true},
		20: {Name: "2 | Vandelanotte (Grimbergen)", Indoor: true},
		21: {Name: "3 | JP TRUCKS (Grimbergen)", Indoor: true},
		22: {Name: "4 | Dalia Products (Grimbergen)", Indoor: true},
		23: {Name: "5 | RealDev (Grimbergen)", Indoor: true},
		24: {Name: "6 | Padel (Grimbergen)", Indoor: false},
		70: {Name: "1 | ACT Sports (Meise)", Indoor: true},
		71: {Name: "2 | CUPRA (Meise)", Indoor: true},
		72: {Name: "3 | Vandelanotte (Meise)", Indoor: true},
		73: {Name: "4 | Padel (Meise)", Indoor: true},
		74: {Name: "5 | Padel (Meise)", Indoor: true},
		75: {Name: "6 | Padel (Meise)", Indoor: false},
		76: {Name: "7 | Padel (Meise)", Indoor: false},
		77: {Name: "8 | Padel (Meise)", Indoor: false},
	}
}
