package org

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Timestamp is an org date stamp such as <2024-01-20 Sat 09:00> or [2024-01-31 Wed].
// Hour and Minute are both nil for date-only stamps.
type Timestamp struct {
	Year    int     `json:"year" yaml:"year"`
	Month   int     `json:"month" yaml:"month"`
	Day     int     `json:"day" yaml:"day"`
	Hour    *int    `json:"hour" yaml:"hour"`
	Minute  *int    `json:"minute" yaml:"minute"`
	DayName *string `json:"day_name" yaml:"day_name"`
	Raw     string  `json:"raw" yaml:"raw"`
}

var (
	datePattern = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	timePattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// ParseTimestamp parses a single bracketed ([...]) or angle-bracketed (<...>) token.
// The day name is kept verbatim and never checked against the date.
func ParseTimestamp(token string) (Timestamp, error) {
	raw := strings.TrimSpace(token)
	if len(raw) < 2 || !delimited(raw) {
		return Timestamp{}, fmt.Errorf("%w: %q", ErrUnparseableTimestamp, token)
	}

	fields := strings.Fields(raw[1 : len(raw)-1])
	if len(fields) == 0 {
		return Timestamp{}, fmt.Errorf("%w: %q", ErrUnparseableTimestamp, token)
	}

	matches := datePattern.FindStringSubmatch(fields[0])
	if matches == nil {
		return Timestamp{}, fmt.Errorf("%w: %q", ErrUnparseableTimestamp, token)
	}
	year, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	day, _ := strconv.Atoi(matches[3])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return Timestamp{}, fmt.Errorf("%w: %q", ErrUnparseableTimestamp, token)
	}

	ts := Timestamp{Year: year, Month: month, Day: day, Raw: raw}
	for _, field := range fields[1:] {
		if ts.DayName == nil && !hasDigit(field) {
			name := field
			ts.DayName = &name
			continue
		}
		if ts.Hour == nil {
			if hour, minute, ok := parseClockTime(field); ok {
				ts.Hour = &hour
				ts.Minute = &minute
			}
		}
		// Repeaters, warning delays and time ranges are not modelled.
	}
	return ts, nil
}

// NewTimestamp builds a stamp for t with an English day abbreviation.
// Active stamps use angle brackets, inactive ones square brackets.
func NewTimestamp(t time.Time, active bool) Timestamp {
	hour, minute := t.Hour(), t.Minute()
	name := t.Format("Mon")
	open, closing := "[", "]"
	if active {
		open, closing = "<", ">"
	}
	return Timestamp{
		Year:    t.Year(),
		Month:   int(t.Month()),
		Day:     t.Day(),
		Hour:    &hour,
		Minute:  &minute,
		DayName: &name,
		Raw:     open + t.Format("2006-01-02 Mon 15:04") + closing,
	}
}

// Active reports whether the stamp uses angle brackets.
func (t Timestamp) Active() bool {
	return strings.HasPrefix(t.Raw, "<")
}

// HasTime reports whether the stamp carries a time of day.
func (t Timestamp) HasTime() bool {
	return t.Hour != nil && t.Minute != nil
}

// Time converts the stamp to a naive wall-clock time in UTC.
// A missing time of day is treated as midnight.
func (t Timestamp) Time() time.Time {
	hour, minute := 0, 0
	if t.HasTime() {
		hour, minute = *t.Hour, *t.Minute
	}
	return time.Date(t.Year, time.Month(t.Month), t.Day, hour, minute, 0, 0, time.UTC)
}

// Date returns the calendar day of the stamp at midnight UTC.
func (t Timestamp) Date() time.Time {
	return time.Date(t.Year, time.Month(t.Month), t.Day, 0, 0, 0, 0, time.UTC)
}

// Valid reports whether the day exists in the stamp's month.
func (t Timestamp) Valid() bool {
	if t.Month < 1 || t.Month > 12 || t.Day < 1 {
		return false
	}
	last := time.Date(t.Year, time.Month(t.Month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	return t.Day <= last
}

// DateString renders the date as YYYY-MM-DD.
func (t Timestamp) DateString() string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year, t.Month, t.Day)
}

// DateTimeString renders YYYY-MM-DD HH:MM, or just the date when there is no time.
func (t Timestamp) DateTimeString() string {
	if !t.HasTime() {
		return t.DateString()
	}
	return fmt.Sprintf("%s %02d:%02d", t.DateString(), *t.Hour, *t.Minute)
}

func delimited(raw string) bool {
	first, last := raw[0], raw[len(raw)-1]
	return (first == '[' && last == ']') || (first == '<' && last == '>')
}

func hasDigit(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' }) >= 0
}

func parseClockTime(field string) (int, int, bool) {
	matches := timePattern.FindStringSubmatch(field)
	if matches == nil {
		return 0, 0, false
	}
	hour, _ := strconv.Atoi(matches[1])
	minute, _ := strconv.Atoi(matches[2])
	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}
