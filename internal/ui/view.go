package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/faizmokh/rorg/internal/org"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	minListWidth  = 28
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	cursorStyle   = lipgloss.NewStyle().Background(lipgloss.Color("240"))
	todoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("202"))
	progressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("141"))
	faintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	paneStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// View renders the frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	width, height := m.width, m.height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	listWidth := max(width/3, minListWidth)
	detailWidth := max(width-listWidth-6, 20)

	var b strings.Builder

	header := m.path
	if header == "" {
		header = "(unsaved document)"
	}
	if m.modified {
		header += " [modified]"
	}
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	list := paneStyle.Width(listWidth).Render(m.listView(listWidth, height-8))
	detail := paneStyle.Width(detailWidth).Render(m.detailView(detailWidth))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, detail))
	b.WriteByte('\n')

	if m.errorLine != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("! " + m.errorLine))
		b.WriteByte('\n')
	} else if m.statusLine != "" {
		b.WriteString("\n")
		b.WriteString(m.statusLine)
		b.WriteByte('\n')
	}

	switch m.mode {
	case modeEditTitle, modeEditLabels, modeEditStatus, modeNewNote,
		modeEditScheduled, modeEditDeadline, modeEditClosed:
		b.WriteString("\n")
		b.WriteString(m.inputLabel)
		b.WriteByte('\n')
		b.WriteString(m.input.View())
		b.WriteByte('\n')
	case modeEditContent, modeEditLogbook:
		b.WriteString("\n")
		b.WriteString(m.inputLabel)
		b.WriteByte('\n')
		b.WriteString(m.area.View())
		b.WriteByte('\n')
	case modeConfirmDelete:
		title := ""
		if n, ok := org.At(m.notes, m.target); ok {
			title = n.Title
		}
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Delete %q and its children? (y/n, Esc to cancel)", title))
		b.WriteByte('\n')
	case modeConfirmQuit:
		b.WriteString("\n")
		b.WriteString("Unsaved changes. Quit anyway? (y/n)")
		b.WriteByte('\n')
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteByte('\n')

	return b.String()
}

func (m Model) listView(width, rows int) string {
	if len(m.flat) == 0 {
		return faintStyle.Render("(no notes)")
	}
	if rows < 1 {
		rows = 1
	}

	// Keep the cursor inside the visible window.
	start := 0
	if m.selected >= rows {
		start = m.selected - rows + 1
	}
	end := min(start+rows, len(m.flat))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		f := m.flat[i]
		line := lipgloss.NewStyle().MaxWidth(width).Render(strings.Repeat("  ", f.Depth) + headingText(f.Note))
		if i == m.selected {
			line = cursorStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func headingText(n org.Note) string {
	title := n.Title
	if title == "" {
		title = "(untitled)"
	}
	if n.Status == nil {
		return title
	}
	return statusStyle(*n.Status).Render(*n.Status) + " " + title
}

func statusStyle(status string) lipgloss.Style {
	switch status {
	case "DONE", "CANCELLED":
		return doneStyle
	case "TODO":
		return todoStyle
	default:
		return progressStyle
	}
}

func (m Model) detailView(width int) string {
	n, ok := m.current()
	if !ok {
		return faintStyle.Render("Press n to add a note.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(n.Title))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Status:   %s\n", statusLabel(n))
	labels := "none"
	if len(n.Labels) > 0 {
		labels = labelStyle.Render(":" + strings.Join(n.Labels, ":") + ":")
	}
	fmt.Fprintf(&b, "Labels:   %s\n", labels)
	for _, kind := range []org.PlanningKind{org.Scheduled, org.Deadline, org.Closed} {
		if ts := n.Planning.Get(kind); ts != nil {
			fmt.Fprintf(&b, "%-9s %s\n", kind.Keyword(), ts.DateTimeString())
		}
	}

	if n.Logbook != nil && len(n.Logbook.ClockEntries) > 0 {
		b.WriteString("\nClock:\n")
		for _, entry := range n.Logbook.ClockEntries {
			if entry.Running() {
				fmt.Fprintf(&b, "  %s  running", entry.Start.DateTimeString())
				if d := entry.DisplayDuration(); d != "" {
					fmt.Fprintf(&b, "  %s", d)
				}
				b.WriteByte('\n')
				continue
			}
			fmt.Fprintf(&b, "  %s  %s  %s\n", entry.Start.DateTimeString(), entry.End.DateTimeString(), entry.DisplayDuration())
		}
		fmt.Fprintf(&b, "  Total: %s\n", org.FormatMinutes(n.Logbook.TotalMinutes()))
	}

	if n.Content != "" {
		b.WriteString("\n")
		b.WriteString(wordwrap.String(n.Content, width))
		b.WriteByte('\n')
	}

	return b.String()
}
