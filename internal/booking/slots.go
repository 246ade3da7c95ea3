package booking

import (
	"fmt"
	"time"

	"github.com/studiobook/studio-booking-backend/internal/pkg/tzdisplay"
)

// Interval is a half-open [Start, End) wall-clock span on a single date.
type Interval struct {
	Start string
	End   string
}

// Overlaps reports whether two half-open intervals intersect. Strict HH:mm
// strings compare correctly as text, no parsing needed.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && iv.End > other.Start
}

// GenerateSlots enumerates hourly candidate start times across the open
// window [open, close) and marks each taken when it collides with an
// existing booking. A closed day yields no slots. Candidates that fail the
// strict HH:mm check (malformed persisted data) are dropped.
func GenerateSlots(isOpen bool, open, close string, booked []Interval) ([]Slot, error) {
	if !isOpen {
		return nil, nil
	}
	openHour, openMin, err := tzdisplay.ParseTimeOfDay(open)
	if err != nil {
		return nil, err
	}
	if !tzdisplay.ValidTimeOfDay(close) {
		return nil, fmt.Errorf("%w: %q", tzdisplay.ErrMalformedInput, close)
	}

	var slots []Slot
	for h := openHour; h < 24; h++ {
		start := fmt.Sprintf("%02d:%02d", h, openMin)
		if !tzdisplay.ValidTimeOfDay(start) {
			continue
		}
		// Only the start has to fall inside the window; duration
		// feasibility is checked at selection time.
		if start >= close {
			break
		}

		candidate := Interval{Start: start, End: hourAfter(h, openMin)}
		available := true
		for _, b := range booked {
			if candidate.Overlaps(b) {
				available = false
				break
			}
		}
		slots = append(slots, Slot{
			StartTime:    start,
			DisplayLabel: start,
			Available:    available,
		})
	}
	return slots, nil
}

func hourAfter(hour, minute int) string {
	if hour >= 23 {
		// Clamp so the last candidate of the day still forms a valid
		// half-open interval ending at midnight.
		return "24:00"
	}
	return fmt.Sprintf("%02d:%02d", hour+1, minute)
}

// BookableDates lists the calendar dates open for booking: a fixed window
// starting tomorrow in the room's zone. Same-day booking is never offered,
// whatever the viewer's zone, which keeps the cutoff free of cross-zone
// date arithmetic.
func BookableDates(now time.Time, roomZone *time.Location, windowDays int) []string {
	local := now.In(roomZone)
	first := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, roomZone).AddDate(0, 0, 1)

	dates := make([]string, windowDays)
	for i := 0; i < windowDays; i++ {
		dates[i] = first.AddDate(0, 0, i).Format(tzdisplay.DateLayout)
	}
	return dates
}

// DateBookable reports whether date (YYYY-MM-DD) falls inside the bookable
// window for the room's zone.
func DateBookable(date string, now time.Time, roomZone *time.Location, windowDays int) bool {
	local := now.In(roomZone)
	first := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, roomZone).AddDate(0, 0, 1)
	last := first.AddDate(0, 0, windowDays-1)
	return date >= first.Format(tzdisplay.DateLayout) && date <= last.Format(tzdisplay.DateLayout)
}
