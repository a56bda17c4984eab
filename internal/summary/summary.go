// Package summary aggregates time-tracking figures over a parsed org outline.
package summary

import (
	"slices"
	"time"

	"github.com/faizmokh/rorg/internal/org"
)

// DefaultCompleted is the completed vocabulary used when Options leaves it empty.
var DefaultCompleted = []string{"DONE"}

// Options configures an aggregation run.
type Options struct {
	// Completed lists the status keywords that count as finished work.
	Completed []string
	// Now anchors the overdue check. Zero means time.Now.
	Now time.Time
}

// Summary holds the totals for one document.
type Summary struct {
	TotalMinutes int       `json:"total_tracked_minutes" yaml:"total_tracked_minutes"`
	TotalTracked string    `json:"total_tracked" yaml:"total_tracked"`
	Completed    int       `json:"completed_tasks" yaml:"completed_tasks"`
	Active       int       `json:"active_tasks" yaml:"active_tasks"`
	Scheduled    int       `json:"scheduled_tasks" yaml:"scheduled_tasks"`
	Overdue      []Overdue `json:"overdue" yaml:"overdue"`
}

// Overdue is a note whose deadline passed without it being completed.
type Overdue struct {
	Title    string        `json:"title" yaml:"title"`
	Level    int           `json:"level" yaml:"level"`
	Deadline org.Timestamp `json:"deadline" yaml:"deadline"`
}

// Aggregate walks notes depth-first and accumulates the summary.
func Aggregate(notes []org.Note, opts Options) Summary {
	completed := opts.Completed
	if len(completed) == 0 {
		completed = DefaultCompleted
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	s := Summary{Overdue: []Overdue{}}
	org.Walk(notes, func(_ org.Path, n org.Note) bool {
		s.TotalMinutes += n.Logbook.TotalMinutes()

		done := n.Status != nil && slices.Contains(completed, *n.Status)
		if done {
			s.Completed++
		}
		if n.HasRunningClock() {
			s.Active++
		}
		if n.Planning != nil && n.Planning.Scheduled != nil {
			s.Scheduled++
		}
		if deadline := n.Planning.Get(org.Deadline); deadline != nil && !done && deadline.Date().Before(today) {
			s.Overdue = append(s.Overdue, Overdue{Title: n.Title, Level: n.Level, Deadline: *deadline})
		}
		return true
	})

	s.TotalTracked = org.FormatMinutes(s.TotalMinutes)
	return s
}
