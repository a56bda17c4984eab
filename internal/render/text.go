package render

import (
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/faizmokh/rorg/internal/org"
	"github.com/faizmokh/rorg/internal/summary"
)

const indentUnit = "  "

type textPrinter struct {
	w         io.Writer
	color     bool
	completed []string
	err       error
}

func (t *textPrinter) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if t.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func (t *textPrinter) printf(c *color.Color, format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = c.Fprintf(t.w, format, args...)
}

func (t *textPrinter) summary(s summary.Summary) {
	title := t.paint(color.Bold, color.Underline)
	plain := t.paint()
	warn := t.paint(color.FgHiYellow, color.Bold)

	t.printf(title, "Time Tracking Summary:\n")
	t.printf(plain, "Total tracked time: %s\n", s.TotalTracked)
	t.printf(plain, "Completed tasks: %d\n", s.Completed)
	t.printf(plain, "Active tasks: %d\n", s.Active)
	t.printf(plain, "Scheduled tasks: %d\n", s.Scheduled)
	if len(s.Overdue) > 0 {
		t.printf(warn, "Overdue tasks: %d\n", len(s.Overdue))
		for _, o := range s.Overdue {
			t.printf(warn, "%s%s (deadline %s)\n", indentUnit, o.Title, o.Deadline.DateTimeString())
		}
	}
	t.printf(plain, "\n")
}

func (t *textPrinter) notes(notes []org.Note, depth int) {
	for _, n := range notes {
		t.note(n, depth)
		t.notes(n.Children, depth+1)
	}
}

func (t *textPrinter) note(n org.Note, depth int) {
	indent := strings.Repeat(indentUnit, depth)
	body := indent + indentUnit
	plain := t.paint()
	faint := t.paint(color.Faint)

	t.printf(plain, "%s%s", indent, strings.Repeat("*", max(n.Level, 1)))
	if n.Status != nil {
		t.printf(plain, " ")
		t.printf(t.statusColor(*n.Status), "%s", *n.Status)
	}
	if n.Title != "" {
		t.printf(t.paint(color.Bold), " %s", n.Title)
	}
	if len(n.Labels) > 0 {
		t.printf(t.paint(color.FgCyan), " :%s:", strings.Join(n.Labels, ":"))
	}
	t.printf(plain, "\n")

	for _, kind := range []org.PlanningKind{org.Scheduled, org.Deadline, org.Closed} {
		if ts := n.Planning.Get(kind); ts != nil {
			t.printf(faint, "%s%s %s\n", body, kind.Keyword(), ts.DateTimeString())
		}
	}

	if n.Logbook != nil && len(n.Logbook.ClockEntries) > 0 {
		tbl := uitable.New()
		tbl.Separator = "  "
		for _, entry := range n.Logbook.ClockEntries {
			end := "running"
			if entry.End != nil {
				end = entry.End.DateTimeString()
			}
			tbl.AddRow(body+"CLOCK", entry.Start.DateTimeString(), end, entry.DisplayDuration())
		}
		t.printf(faint, "%s\n", tbl)
		t.printf(faint, "%sTotal: %s\n", body, org.FormatMinutes(n.Logbook.TotalMinutes()))
	}

	if n.Content != "" {
		for _, line := range strings.Split(n.Content, "\n") {
			t.printf(plain, "%s%s\n", body, line)
		}
	}
}

func (t *textPrinter) statusColor(status string) *color.Color {
	if slices.Contains(t.completed, status) {
		return t.paint(color.FgGreen)
	}
	switch status {
	case "TODO":
		return t.paint(color.FgRed, color.Bold)
	default:
		return t.paint(color.FgYellow, color.Bold)
	}
}
