package org

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	drawerStart = ":LOGBOOK:"
	drawerEnd   = ":END:"
)

// clockPattern matches CLOCK: [start], optionally --[end], optionally => duration.
var clockPattern = regexp.MustCompile(`^CLOCK:\s*(\[[^\]]*\])(?:\s*--\s*(\[[^\]]*\]))?(?:\s*=>\s*(\S*))?\s*$`)

// ParseClockLine parses one CLOCK: line. A line without an end stamp is a running clock.
func ParseClockLine(line string) (ClockEntry, error) {
	loc := clockPattern.FindStringSubmatchIndex(strings.TrimSpace(line))
	if loc == nil {
		return ClockEntry{}, fmt.Errorf("%w: malformed clock line %q", ErrUnparseableTimestamp, line)
	}
	trimmed := strings.TrimSpace(line)
	group := func(i int) (string, bool) {
		if loc[2*i] < 0 {
			return "", false
		}
		return trimmed[loc[2*i]:loc[2*i+1]], true
	}

	startToken, _ := group(1)
	start, err := ParseTimestamp(startToken)
	if err != nil {
		return ClockEntry{}, fmt.Errorf("clock start: %w", err)
	}
	entry := ClockEntry{Start: start, Raw: line}

	if endToken, ok := group(2); ok {
		end, err := ParseTimestamp(endToken)
		if err != nil {
			return ClockEntry{}, fmt.Errorf("clock end: %w", err)
		}
		entry.End = &end
	}

	if duration, ok := group(3); ok {
		if _, err := ParseDuration(duration); err != nil {
			return ClockEntry{}, err
		}
		entry.Duration = &duration
	}

	return entry, nil
}

// ExtractLogbook removes every :LOGBOOK: ... :END: drawer from a note body.
// Clock entries of all drawers are merged in document order. Malformed CLOCK
// lines are dropped from the entries but kept in RawContent and reported in errs.
// A :LOGBOOK: without a closing :END: is left in place.
func ExtractLogbook(lines []string) ([]string, *Logbook, []error) {
	var (
		rest []string
		book *Logbook
		errs []error
	)

	for i := 0; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) != drawerStart {
			rest = append(rest, lines[i])
			continue
		}
		end := drawerClose(lines, i+1)
		if end < 0 {
			rest = append(rest, lines[i])
			continue
		}

		if book == nil {
			book = &Logbook{ClockEntries: []ClockEntry{}, RawContent: []string{}}
		}
		errs = append(errs, book.read(lines[i+1:end])...)

		i = end
		// Blank lines on both sides of the removed drawer collapse to one.
		seam, blank := "", false
		for len(rest) > 0 && isBlank(rest[len(rest)-1]) {
			seam, blank = rest[len(rest)-1], true
			rest = rest[:len(rest)-1]
		}
		for i+1 < len(lines) && isBlank(lines[i+1]) {
			if !blank {
				seam, blank = lines[i+1], true
			}
			i++
		}
		if blank {
			rest = append(rest, seam)
		}
	}

	return rest, book, errs
}

// read appends drawer lines to the logbook, parsing the CLOCK ones.
func (l *Logbook) read(lines []string) []error {
	var errs []error
	for _, line := range lines {
		l.RawContent = append(l.RawContent, line)
		if !strings.HasPrefix(strings.TrimSpace(line), "CLOCK:") {
			continue
		}
		entry, err := ParseClockLine(line)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		l.ClockEntries = append(l.ClockEntries, entry)
	}
	return errs
}

func drawerClose(lines []string, from int) int {
	for i := from; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == drawerEnd {
			return i
		}
	}
	return -1
}

func isDrawerMarker(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == drawerStart || trimmed == drawerEnd
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
