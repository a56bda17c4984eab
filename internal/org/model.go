package org

import "strings"

// Note is one heading of the outline together with everything nested under it.
type Note struct {
	Level    int       `json:"level" yaml:"level"`
	Status   *string   `json:"status" yaml:"status"`
	Title    string    `json:"title" yaml:"title"`
	Labels   []string  `json:"labels" yaml:"labels"`
	Content  string    `json:"content" yaml:"content"`
	Children []Note    `json:"children" yaml:"children"`
	Planning *Planning `json:"planning" yaml:"planning"`
	Logbook  *Logbook  `json:"logbook" yaml:"logbook"`
}

// StatusText returns the status keyword, or "" when the heading has none.
func (n Note) StatusText() string {
	if n.Status == nil {
		return ""
	}
	return *n.Status
}

// HasRunningClock reports whether any clock entry of the note is still open.
func (n Note) HasRunningClock() bool {
	if n.Logbook == nil {
		return false
	}
	for _, entry := range n.Logbook.ClockEntries {
		if entry.Running() {
			return true
		}
	}
	return false
}

// Planning holds the SCHEDULED, DEADLINE and CLOSED stamps of a note.
type Planning struct {
	Scheduled *Timestamp `json:"scheduled" yaml:"scheduled"`
	Deadline  *Timestamp `json:"deadline" yaml:"deadline"`
	Closed    *Timestamp `json:"closed" yaml:"closed"`
}

// PlanningKind names one of the three planning slots.
type PlanningKind uint8

const (
	// Scheduled is the SCHEDULED: slot.
	Scheduled PlanningKind = iota
	// Deadline is the DEADLINE: slot.
	Deadline
	// Closed is the CLOSED: slot.
	Closed
)

// Keyword returns the keyword as written in org text, including the colon.
func (k PlanningKind) Keyword() string {
	switch k {
	case Deadline:
		return "DEADLINE:"
	case Closed:
		return "CLOSED:"
	default:
		return "SCHEDULED:"
	}
}

// Get returns the stamp stored in slot k.
func (p *Planning) Get(k PlanningKind) *Timestamp {
	if p == nil {
		return nil
	}
	switch k {
	case Deadline:
		return p.Deadline
	case Closed:
		return p.Closed
	default:
		return p.Scheduled
	}
}

func (p *Planning) set(k PlanningKind, ts *Timestamp) {
	switch k {
	case Deadline:
		p.Deadline = ts
	case Closed:
		p.Closed = ts
	default:
		p.Scheduled = ts
	}
}

// Logbook is the content of a :LOGBOOK: drawer.
type Logbook struct {
	ClockEntries []ClockEntry `json:"clock_entries" yaml:"clock_entries"`
	// RawContent keeps every line between the drawer markers for lossless output.
	RawContent []string `json:"raw_content" yaml:"raw_content"`
}

// TotalMinutes sums the tracked minutes of every clock entry.
func (l *Logbook) TotalMinutes() int {
	if l == nil {
		return 0
	}
	total := 0
	for _, entry := range l.ClockEntries {
		total += entry.Minutes()
	}
	return total
}

// ClockEntry is a single CLOCK: line. A nil End means the clock is running.
type ClockEntry struct {
	Start    Timestamp  `json:"start" yaml:"start"`
	End      *Timestamp `json:"end" yaml:"end"`
	Duration *string    `json:"duration" yaml:"duration"`
	Raw      string     `json:"raw" yaml:"raw"`
}

// Running reports whether the entry has no end stamp yet.
func (c ClockEntry) Running() bool {
	return c.End == nil
}

// Minutes returns the tracked time written after "=>". Entries without a
// valid duration count 0, even when both stamps are present.
func (c ClockEntry) Minutes() int {
	if c.Duration == nil {
		return 0
	}
	minutes, err := ParseDuration(*c.Duration)
	if err != nil {
		return 0
	}
	return minutes
}

// Elapsed returns the minutes between the stamps of a closed entry.
func (c ClockEntry) Elapsed() (int, bool) {
	if c.End == nil {
		return 0, false
	}
	return ElapsedMinutes(c.Start, *c.End), true
}

// DisplayDuration is the duration as written, or the elapsed time in
// parentheses for a closed entry that has none.
func (c ClockEntry) DisplayDuration() string {
	if c.Duration != nil {
		return strings.TrimSpace(*c.Duration)
	}
	if minutes, ok := c.Elapsed(); ok {
		return "(" + FormatDuration(minutes) + ")"
	}
	return ""
}

// Document is the result of parsing one org file.
type Document struct {
	Notes    []Note
	Warnings []Warning
}
