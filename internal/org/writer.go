package org

import (
	"bufio"
	"io"
	"strings"
)

// Format renders notes back to org text.
func Format(notes []Note) string {
	var b strings.Builder
	for _, n := range notes {
		writeNote(&b, n)
	}
	return b.String()
}

// WriteTo writes the org text for notes to w.
func WriteTo(w io.Writer, notes []Note) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Format(notes)); err != nil {
		return err
	}
	return bw.Flush()
}

func writeNote(b *strings.Builder, n Note) {
	level := n.Level
	if level < 1 {
		level = 1
	}

	parts := make([]string, 0, 3)
	if n.Status != nil {
		parts = append(parts, *n.Status)
	}
	if n.Title != "" {
		parts = append(parts, n.Title)
	}
	if len(n.Labels) > 0 {
		parts = append(parts, ":"+strings.Join(n.Labels, ":")+":")
	}
	b.WriteString(strings.Repeat("*", level))
	b.WriteString(" ")
	b.WriteString(strings.Join(parts, " "))
	b.WriteString("\n")

	if line := planningLine(n.Planning); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if n.Logbook != nil {
		b.WriteString(drawerStart + "\n")
		for _, raw := range n.Logbook.RawContent {
			b.WriteString(raw)
			b.WriteString("\n")
		}
		b.WriteString(drawerEnd + "\n")
	}

	if strings.TrimSpace(n.Content) != "" {
		b.WriteString(n.Content)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, child := range n.Children {
		writeNote(b, child)
	}
}

func planningLine(p *Planning) string {
	if p == nil {
		return ""
	}
	var parts []string
	for _, kind := range []PlanningKind{Scheduled, Deadline, Closed} {
		if ts := p.Get(kind); ts != nil {
			parts = append(parts, kind.Keyword()+" "+ts.Raw)
		}
	}
	return strings.Join(parts, " ")
}
