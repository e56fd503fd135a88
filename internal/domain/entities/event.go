package entities

import "time"

type Event struct {
	ID          int64
	Title       string
	Description string
	Location    string
	BannerURL   string
	VideoURL    string
	StartTime   time.Time
	Lineup      []LineupSlot
	CreatedAt   time.Time
}

// LineupSlot is one DJ set of an event. DJ is nil when the slot is not linked
// to a profile; EndTime is zero when the set has no announced end.
type LineupSlot struct {
	ID        int64
	EventID   int64
	Position  int
	DJ        *Profile
	StartTime time.Time
	EndTime   time.Time
}

// IsPast reports whether the event started strictly before now.
func (e *Event) IsPast(now time.Time) bool {
	return e.StartTime.Before(now)
}
