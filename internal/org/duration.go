package org

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var durationPattern = regexp.MustCompile(`^(-?)(\d+):([0-5]\d)$`)

// ParseDuration converts an org clock duration such as "1:00" or "12:05" to minutes.
// Hours may have any width; minutes are exactly two digits.
func ParseDuration(s string) (int, error) {
	matches := durationPattern.FindStringSubmatch(strings.TrimSpace(s))
	if matches == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}

	hours, err := strconv.Atoi(matches[2])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidDuration, s, err)
	}
	minutes, _ := strconv.Atoi(matches[3])

	total := hours*60 + minutes
	if matches[1] == "-" {
		total = -total
	}
	return total, nil
}

// ElapsedMinutes returns the minutes from start to end. Stamps without a time
// of day count from midnight, so date-only stamps degrade to whole days.
func ElapsedMinutes(start, end Timestamp) int {
	return int((end.Time().Unix() - start.Time().Unix()) / 60)
}

// FormatMinutes renders a minute count as "Hh Mm".
func FormatMinutes(minutes int) string {
	sign := ""
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%dh %dm", sign, minutes/60, minutes%60)
}

// FormatDuration renders a minute count the way org writes clock durations ("H:MM").
func FormatDuration(minutes int) string {
	sign := ""
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%d:%02d", sign, minutes/60, minutes%60)
}
