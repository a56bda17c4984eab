package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/faizmokh/rorg/internal/files"
	"github.com/faizmokh/rorg/internal/org"
)

// SaveFunc persists the rendered org text for path.
type SaveFunc func(ctx context.Context, path, content string) error

// Options configures a Model.
type Options struct {
	// Path is the file the document was read from and is saved back to.
	Path string
	// StatusCycle is the keyword sequence used by the cycle key.
	StatusCycle []string
	// Now returns the current time; defaults to time.Now.
	Now func() time.Time
	// Save writes the document; defaults to an atomic file write.
	Save SaveFunc
}

// Model owns Bubble Tea state for browsing and editing one org document.
type Model struct {
	ctx         context.Context
	path        string
	save        SaveFunc
	now         func() time.Time
	statusCycle []string

	notes    []org.Note
	flat     []org.Flat
	selected int

	mode       mode
	input      textinput.Model
	area       textarea.Model
	inputLabel string
	target     org.Path

	keys   keyMap
	help   help.Model
	width  int
	height int

	modified   bool
	saving     bool
	quitting   bool
	statusLine string
	errorLine  string
}

type mode uint8

const (
	modeNormal mode = iota
	modeEditTitle
	modeEditLabels
	modeEditStatus
	modeEditScheduled
	modeEditDeadline
	modeEditClosed
	modeEditContent
	modeEditLogbook
	modeNewNote
	modeConfirmDelete
	modeConfirmQuit
)

type saveResultMsg struct {
	content string
	err     error
}

// NewModel seeds a Bubble Tea model over an already parsed document.
func NewModel(ctx context.Context, doc org.Document, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Save == nil {
		opts.Save = writeFile
	}
	if len(opts.StatusCycle) == 0 {
		opts.StatusCycle = []string{"TODO", "IN-PROGRESS", "DONE"}
	}

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Prompt = "> "

	ta := textarea.New()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(8)

	m := Model{
		ctx:         ctx,
		path:        opts.Path,
		save:        opts.Save,
		now:         opts.Now,
		statusCycle: opts.StatusCycle,
		notes:       doc.Notes,
		input:       ti,
		area:        ta,
		keys:        defaultKeys(),
		help:        help.New(),
	}
	m.refresh()
	m.statusLine = fmt.Sprintf("Loaded %d note%s.", len(m.flat), plural(len(m.flat)))
	if len(doc.Warnings) > 0 {
		m.statusLine += fmt.Sprintf(" %d warning%s while parsing.", len(doc.Warnings), plural(len(doc.Warnings)))
	}
	return m
}

func writeFile(ctx context.Context, path, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return files.WriteAtomic(path, content)
}

// Init has nothing to load; the document arrives parsed.
func (m Model) Init() tea.Cmd {
	return nil
}

// Notes returns the current, possibly edited, outline.
func (m Model) Notes() []org.Note {
	return m.notes
}

// Modified reports whether there are unsaved edits.
func (m Model) Modified() bool {
	return m.modified
}

// Update wires TUI state transitions from user input and async commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.area.SetWidth(max(msg.Width-4, 20))
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case saveResultMsg:
		return m.handleSaveResult(msg)
	default:
		return m, nil
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode != modeNormal {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.modified && msg.String() != "ctrl+c" {
			m.mode = modeConfirmQuit
			m.errorLine = ""
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.flat)-1 {
			m.selected++
			m.statusLine = fmt.Sprintf("Selected note %d of %d", m.selected+1, len(m.flat))
			m.errorLine = ""
		}
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
			m.statusLine = fmt.Sprintf("Selected note %d of %d", m.selected+1, len(m.flat))
			m.errorLine = ""
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Save):
		return m.startSave()
	case key.Matches(msg, m.keys.New):
		return m.beginInput(modeNewNote, nil, "New top-level note title (Enter to add, Esc to cancel):", "")
	}

	current, ok := m.current()
	if !ok {
		return m, nil
	}
	path := m.flat[m.selected].Path

	switch {
	case key.Matches(msg, m.keys.Cycle):
		updated := current.CycleStatus(m.statusCycle)
		return m.apply(path, updated, fmt.Sprintf("Status set to %s.", statusLabel(updated)))
	case key.Matches(msg, m.keys.EditTitle):
		return m.beginInput(modeEditTitle, path, "Edit title (Enter to save, Esc to cancel):", current.Title)
	case key.Matches(msg, m.keys.EditLabels):
		value := ""
		if len(current.Labels) > 0 {
			value = ":" + strings.Join(current.Labels, ":") + ":"
		}
		return m.beginInput(modeEditLabels, path, "Edit labels as :a:b: (Enter to save, Esc to cancel):", value)
	case key.Matches(msg, m.keys.EditStatus):
		return m.beginInput(modeEditStatus, path, "Set status keyword, empty to clear (Enter to save, Esc to cancel):", current.StatusText())
	case key.Matches(msg, m.keys.ClockIn):
		if current.HasRunningClock() {
			m.errorLine = "Clock already running for this note."
			return m, nil
		}
		return m.apply(path, current.ClockIn(m.now()), "Clocked in.")
	case key.Matches(msg, m.keys.ClockOut):
		updated, ok := current.ClockOut(m.now())
		if !ok {
			m.errorLine = "No running clock on this note."
			return m, nil
		}
		return m.apply(path, updated, "Clocked out.")
	case key.Matches(msg, m.keys.Schedule):
		return m.beginPlanning(modeEditScheduled, path, current, org.Scheduled)
	case key.Matches(msg, m.keys.Deadline):
		return m.beginPlanning(modeEditDeadline, path, current, org.Deadline)
	case key.Matches(msg, m.keys.Closed):
		return m.beginPlanning(modeEditClosed, path, current, org.Closed)
	case key.Matches(msg, m.keys.EditContent):
		return m.beginArea(modeEditContent, path, "Edit content (ctrl+s to apply, Esc to cancel):", current.Content)
	case key.Matches(msg, m.keys.EditLogbook):
		value := ""
		if current.Logbook != nil {
			value = strings.Join(current.Logbook.RawContent, "\n")
		}
		return m.beginArea(modeEditLogbook, path, "Edit LOGBOOK lines (ctrl+s to apply, Esc to cancel):", value)
	case key.Matches(msg, m.keys.Delete):
		m.mode = modeConfirmDelete
		m.target = path
		m.statusLine = ""
		m.errorLine = ""
	}

	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeEditContent, modeEditLogbook:
		switch msg.Type {
		case tea.KeyCtrlS:
			return m.submitArea()
		case tea.KeyEsc:
			return m.cancelInput("Cancelled.")
		case tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.area, cmd = m.area.Update(msg)
		return m, cmd
	case modeEditTitle, modeEditLabels, modeEditStatus, modeNewNote,
		modeEditScheduled, modeEditDeadline, modeEditClosed:
		switch msg.Type {
		case tea.KeyEnter:
			return m.submitInput()
		case tea.KeyEsc:
			return m.cancelInput("Cancelled.")
		case tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	case modeConfirmDelete:
		switch msg.String() {
		case "y", "Y":
			return m.confirmDelete()
		case "n", "N", "esc":
			return m.cancelInput("Delete cancelled.")
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	case modeConfirmQuit:
		switch msg.String() {
		case "y", "Y", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "n", "N", "esc":
			return m.cancelInput("Quit cancelled.")
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) beginInput(md mode, target org.Path, label, value string) (tea.Model, tea.Cmd) {
	m.mode = md
	m.target = target
	m.inputLabel = label
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.statusLine = ""
	m.errorLine = ""
	cmd := m.input.Focus()
	return m, cmd
}

// beginPlanning prefills the slot's stamp, or one for now when the slot is empty.
// CLOSED stamps default to inactive brackets the way org writes them.
func (m Model) beginPlanning(md mode, target org.Path, n org.Note, kind org.PlanningKind) (tea.Model, tea.Cmd) {
	value := org.NewTimestamp(m.now(), kind != org.Closed).Raw
	if ts := n.Planning.Get(kind); ts != nil {
		value = ts.Raw
	}
	label := fmt.Sprintf("Set %s as <YYYY-MM-DD Day HH:MM>, empty to clear (Enter to save, Esc to cancel):", kind.Keyword())
	return m.beginInput(md, target, label, value)
}

func (m Model) beginArea(md mode, target org.Path, label, value string) (tea.Model, tea.Cmd) {
	m.mode = md
	m.target = target
	m.inputLabel = label
	m.area.SetValue(value)
	m.statusLine = ""
	m.errorLine = ""
	cmd := m.area.Focus()
	return m, cmd
}

func (m Model) submitArea() (tea.Model, tea.Cmd) {
	current, ok := org.At(m.notes, m.target)
	if !ok {
		return m.cancelInput("No note selected.")
	}
	value := m.area.Value()

	var (
		updated org.Note
		err     error
		message string
	)
	switch m.mode {
	case modeEditContent:
		updated, err = current.WithContent(value)
		message = "Content updated."
	case modeEditLogbook:
		updated, err = current.WithLogbook(strings.Split(value, "\n"))
		message = "Logbook updated."
	default:
		return m, nil
	}
	if err != nil {
		m.errorLine = err.Error()
		return m, nil
	}
	return m.applyInput(func(org.Note) org.Note { return updated }, message)
}

func (m Model) submitPlanning(kind org.PlanningKind, value string) (tea.Model, tea.Cmd) {
	if value == "" {
		return m.applyInput(func(n org.Note) org.Note { return n.WithPlanning(kind, nil) }, kind.Keyword()+" cleared.")
	}
	ts, err := org.ParseTimestamp(value)
	if err != nil {
		m.errorLine = err.Error()
		return m, nil
	}
	if !ts.Valid() {
		m.errorLine = fmt.Sprintf("%v: %s", org.ErrImpossibleDate, ts.Raw)
		return m, nil
	}
	return m.applyInput(func(n org.Note) org.Note { return n.WithPlanning(kind, &ts) },
		fmt.Sprintf("%s set to %s.", kind.Keyword(), ts.DateTimeString()))
}

func (m Model) submitInput() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())

	switch m.mode {
	case modeNewNote:
		if value == "" {
			m.errorLine = "Title cannot be empty."
			return m, nil
		}
		note := org.Note{Level: 1, Title: value, Labels: []string{}, Children: []org.Note{}}
		m.notes = org.Append(m.notes, note)
		m.modified = true
		m.refresh()
		m.selected = len(m.flat) - 1
		return m.finishInput("Note added.")
	case modeEditTitle:
		return m.applyInput(func(n org.Note) org.Note { return n.WithTitle(value) }, "Title updated.")
	case modeEditLabels:
		labels := org.ParseLabels(value)
		return m.applyInput(func(n org.Note) org.Note { return n.WithLabels(labels) }, "Labels updated.")
	case modeEditStatus:
		if value != "" && !org.IsStatusKeyword(value) {
			m.errorLine = fmt.Sprintf("Invalid status %q (expected an uppercase keyword such as TODO)", value)
			return m, nil
		}
		return m.applyInput(func(n org.Note) org.Note { return n.WithStatus(value) }, "Status updated.")
	case modeEditScheduled:
		return m.submitPlanning(org.Scheduled, value)
	case modeEditDeadline:
		return m.submitPlanning(org.Deadline, value)
	case modeEditClosed:
		return m.submitPlanning(org.Closed, value)
	default:
		return m, nil
	}
}

func (m Model) applyInput(fn func(org.Note) org.Note, message string) (tea.Model, tea.Cmd) {
	if _, ok := org.At(m.notes, m.target); !ok {
		return m.cancelInput("No note selected.")
	}
	m.notes = org.Replace(m.notes, m.target, fn)
	m.modified = true
	m.refresh()
	return m.finishInput(message)
}

func (m Model) finishInput(message string) (tea.Model, tea.Cmd) {
	m.mode = modeNormal
	m.input.Blur()
	m.input.SetValue("")
	m.area.Blur()
	m.area.Reset()
	m.inputLabel = ""
	m.target = nil
	m.statusLine = message
	m.errorLine = ""
	return m, nil
}

func (m Model) cancelInput(message string) (tea.Model, tea.Cmd) {
	return m.finishInput(message)
}

func (m Model) confirmDelete() (tea.Model, tea.Cmd) {
	removed, ok := org.At(m.notes, m.target)
	if !ok {
		return m.cancelInput("No note selected.")
	}
	m.notes = org.Remove(m.notes, m.target)
	m.modified = true
	m.refresh()
	return m.finishInput(fmt.Sprintf("Deleted %q.", removed.Title))
}

func (m Model) apply(path org.Path, updated org.Note, message string) (tea.Model, tea.Cmd) {
	m.notes = org.Replace(m.notes, path, func(org.Note) org.Note { return updated })
	m.modified = true
	m.refresh()
	m.statusLine = message
	m.errorLine = ""
	return m, nil
}

func (m Model) startSave() (tea.Model, tea.Cmd) {
	if m.path == "" {
		m.errorLine = "No file to save to."
		return m, nil
	}
	if m.saving {
		return m, nil
	}
	m.saving = true
	m.statusLine = "Saving..."
	m.errorLine = ""
	return m, m.saveCmd(org.Format(m.notes))
}

func (m Model) saveCmd(content string) tea.Cmd {
	save := m.save
	ctx := m.ctx
	path := m.path
	return func() tea.Msg {
		return saveResultMsg{content: content, err: save(ctx, path, content)}
	}
}

func (m Model) handleSaveResult(msg saveResultMsg) (tea.Model, tea.Cmd) {
	m.saving = false
	if msg.err != nil {
		m.errorLine = fmt.Sprintf("Save failed: %v", msg.err)
		m.statusLine = ""
		return m, nil
	}
	// Edits made while the write was in flight keep the document dirty.
	if msg.content == org.Format(m.notes) {
		m.modified = false
	}
	m.statusLine = "Saved " + m.path + "."
	m.errorLine = ""
	return m, nil
}

// refresh rebuilds the flattened list and clamps the cursor.
func (m *Model) refresh() {
	m.flat = org.Flatten(m.notes)
	if m.selected >= len(m.flat) {
		m.selected = len(m.flat) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m Model) current() (org.Note, bool) {
	if m.selected < 0 || m.selected >= len(m.flat) {
		return org.Note{}, false
	}
	return m.flat[m.selected].Note, true
}

func statusLabel(n org.Note) string {
	if n.Status == nil {
		return "none"
	}
	return *n.Status
}

func plural(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
