package tzdisplay

import (
	"fmt"
	"regexp"
	"time"
)

var (
	ErrInvalidZone    = fmt.Errorf("invalid timezone identifier")
	ErrMalformedInput = fmt.Errorf("malformed date or time input")
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// timeOfDayPattern is the strict 24-hour HH:mm format accepted everywhere
// wall-clock times cross the API boundary or come back from storage.
var timeOfDayPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidTimeOfDay reports whether s is a strict HH:mm 24-hour time.
func ValidTimeOfDay(s string) bool {
	return timeOfDayPattern.MatchString(s)
}

// ParseDate parses a strict YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a valid YYYY-MM-DD date", ErrMalformedInput, s)
	}
	return t, nil
}

// ParseTimeOfDay validates a strict HH:mm time and returns hour and minute.
func ParseTimeOfDay(s string) (hour, minute int, err error) {
	if !ValidTimeOfDay(s) {
		return 0, 0, fmt.Errorf("%w: %q is not a valid HH:mm time", ErrMalformedInput, s)
	}
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedInput, s)
	}
	return t.Hour(), t.Minute(), nil
}

// LoadZone resolves an IANA zone name.
func LoadZone(zone string) (*time.Location, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidZone, zone)
	}
	return loc, nil
}

// ConvertWallClock interprets timeOfDay on date as local time in fromZone,
// converts to the absolute instant, and returns the wall-clock HH:mm in
// toZone. The result may fall on a different calendar date than the input;
// callers that care about the date must not assume it is unchanged.
func ConvertWallClock(timeOfDay, date, fromZone, toZone string) (string, error) {
	if _, err := ParseDate(date); err != nil {
		return "", err
	}
	if !ValidTimeOfDay(timeOfDay) {
		return "", fmt.Errorf("%w: %q is not a valid HH:mm time", ErrMalformedInput, timeOfDay)
	}

	fromLoc, err := LoadZone(fromZone)
	if err != nil {
		return "", err
	}
	toLoc, err := LoadZone(toZone)
	if err != nil {
		return "", err
	}

	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+timeOfDay, fromLoc)
	if err != nil {
		return "", fmt.Errorf("%w: %s %s", ErrMalformedInput, date, timeOfDay)
	}

	return t.In(toLoc).Format(TimeLayout), nil
}

// longNames maps zone abbreviations to spelled-out display names for the
// zones studios most commonly configure. Anything else falls through to the
// abbreviation plus UTC offset.
var longNames = map[string]string{
	"EST":  "Eastern Standard Time",
	"EDT":  "Eastern Daylight Time",
	"CST":  "Central Standard Time",
	"CDT":  "Central Daylight Time",
	"MST":  "Mountain Standard Time",
	"MDT":  "Mountain Daylight Time",
	"PST":  "Pacific Standard Time",
	"PDT":  "Pacific Daylight Time",
	"GMT":  "Greenwich Mean Time",
	"BST":  "British Summer Time",
	"CET":  "Central European Time",
	"CEST": "Central European Summer Time",
	"UTC":  "Coordinated Universal Time",
}

// ZoneLabel renders a human display name for an IANA zone, evaluated at the
// current instant so DST is reflected. Unresolvable zones fall back to the
// raw identifier.
func ZoneLabel(zone string) string {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return zone
	}

	now := time.Now().In(loc)
	abbr, offset := now.Zone()

	if name, ok := longNames[abbr]; ok {
		return name
	}

	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	utc := fmt.Sprintf("UTC%s%02d:%02d", sign, offset/3600, (offset%3600)/60)

	// Zones without a named abbreviation format as a numeric offset already.
	if abbr == "" || abbr[0] == '+' || abbr[0] == '-' {
		return fmt.Sprintf("%s (%s)", zone, utc)
	}
	return fmt.Sprintf("%s (%s)", abbr, utc)
}
