package org

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// WithStatus returns a copy of n with the given status keyword. An empty
// status removes the keyword.
func (n Note) WithStatus(status string) Note {
	status = strings.TrimSpace(status)
	if status == "" {
		n.Status = nil
		return n
	}
	n.Status = &status
	return n
}

// WithTitle returns a copy of n with a new title.
func (n Note) WithTitle(title string) Note {
	n.Title = strings.TrimSpace(title)
	return n
}

// WithLabels returns a copy of n carrying labels.
func (n Note) WithLabels(labels []string) Note {
	n.Labels = append([]string{}, labels...)
	return n
}

// WithContent returns a copy of n with new body text. Leading and trailing
// blank lines are dropped. Lines that would parse back as a heading, a
// planning line or a drawer marker are rejected with ErrReservedLine.
func (n Note) WithContent(content string) (Note, error) {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	for i, line := range lines {
		if _, heading := HeadingLevel(line); heading || IsPlanningLine(line) || isDrawerMarker(line) {
			return n, fmt.Errorf("%w: content line %d %q", ErrReservedLine, i+1, line)
		}
	}
	n.Content = joinContent(lines)
	return n, nil
}

// WithLogbook returns a copy of n whose drawer holds raw, reparsing its CLOCK
// lines. A drawer with only blank lines removes the logbook. Malformed CLOCK
// lines or impossible dates leave n unchanged and are reported together.
func (n Note) WithLogbook(raw []string) (Note, error) {
	lines := append([]string{}, raw...)
	for len(lines) > 0 && isBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	for len(lines) > 0 && isBlank(lines[0]) {
		lines = lines[1:]
	}
	if len(lines) == 0 {
		n.Logbook = nil
		return n, nil
	}

	for i, line := range lines {
		if _, heading := HeadingLevel(line); heading || isDrawerMarker(line) {
			return n, fmt.Errorf("%w: logbook line %d %q", ErrReservedLine, i+1, line)
		}
	}

	book := &Logbook{ClockEntries: []ClockEntry{}, RawContent: []string{}}
	errs := book.read(lines)
	errs = append(errs, calendarErrors(nil, book)...)
	if len(errs) > 0 {
		return n, errors.Join(errs...)
	}
	n.Logbook = book
	return n, nil
}

// ParseLabels accepts ":a:b:", "a b" or "a, b" and returns the tag names in
// order. Repeated names are kept, as the heading parser keeps them.
func ParseLabels(s string) []string {
	labels := strings.FieldsFunc(s, func(r rune) bool {
		return r == ':' || r == ',' || r == ' ' || r == '\t'
	})
	if labels == nil {
		labels = []string{}
	}
	return labels
}

// WithPlanning returns a copy of n with slot kind set to ts. A nil ts clears
// the slot, and clearing the last slot drops the planning line.
func (n Note) WithPlanning(kind PlanningKind, ts *Timestamp) Note {
	p := Planning{}
	if n.Planning != nil {
		p = *n.Planning
	}
	if ts != nil {
		stamp := *ts
		ts = &stamp
	}
	p.set(kind, ts)

	if p.Scheduled == nil && p.Deadline == nil && p.Closed == nil {
		n.Planning = nil
		return n
	}
	n.Planning = &p
	return n
}

// ClockIn returns a copy of n with a running clock entry started at now.
// New entries go first, the order org itself uses.
func (n Note) ClockIn(now time.Time) Note {
	start := NewTimestamp(now, false)
	entry := ClockEntry{Start: start, Raw: "CLOCK: " + start.Raw}

	book := n.Logbook.clone()
	book.ClockEntries = append([]ClockEntry{entry}, book.ClockEntries...)
	book.RawContent = append([]string{entry.Raw}, book.RawContent...)
	n.Logbook = book
	return n
}

// ClockOut closes the first running clock entry at now. It reports false when
// nothing is running.
func (n Note) ClockOut(now time.Time) (Note, bool) {
	if n.Logbook == nil {
		return n, false
	}
	idx := slices.IndexFunc(n.Logbook.ClockEntries, ClockEntry.Running)
	if idx < 0 {
		return n, false
	}

	book := n.Logbook.clone()
	entry := book.ClockEntries[idx]
	end := NewTimestamp(now, false)
	duration := FormatDuration(ElapsedMinutes(entry.Start, end))

	indent := entry.Raw[:len(entry.Raw)-len(strings.TrimLeft(entry.Raw, " \t"))]
	closed := ClockEntry{
		Start:    entry.Start,
		End:      &end,
		Duration: &duration,
		Raw:      fmt.Sprintf("%sCLOCK: %s--%s => %5s", indent, entry.Start.Raw, end.Raw, duration),
	}
	book.ClockEntries[idx] = closed

	if line := slices.Index(book.RawContent, entry.Raw); line >= 0 {
		book.RawContent[line] = closed.Raw
	} else {
		book.RawContent = append([]string{closed.Raw}, book.RawContent...)
	}

	n.Logbook = book
	return n, true
}

// CycleStatus moves n to the next keyword of sequence. A note without a
// status, or with one outside the sequence, gets the first keyword; the
// last keyword cycles back to no status.
func (n Note) CycleStatus(sequence []string) Note {
	if len(sequence) == 0 {
		return n
	}
	idx := slices.Index(sequence, n.StatusText())
	switch {
	case n.Status == nil || idx < 0:
		return n.WithStatus(sequence[0])
	case idx == len(sequence)-1:
		return n.WithStatus("")
	default:
		return n.WithStatus(sequence[idx+1])
	}
}

func (l *Logbook) clone() *Logbook {
	if l == nil {
		return &Logbook{ClockEntries: []ClockEntry{}, RawContent: []string{}}
	}
	return &Logbook{
		ClockEntries: append([]ClockEntry{}, l.ClockEntries...),
		RawContent:   append([]string{}, l.RawContent...),
	}
}
