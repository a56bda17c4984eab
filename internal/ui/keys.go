package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Cycle       key.Binding
	EditTitle   key.Binding
	EditLabels  key.Binding
	EditStatus  key.Binding
	ClockIn     key.Binding
	ClockOut    key.Binding
	Schedule    key.Binding
	Deadline    key.Binding
	Closed      key.Binding
	EditContent key.Binding
	EditLogbook key.Binding
	New         key.Binding
	Delete      key.Binding
	Save        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Cycle: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "cycle status"),
		),
		EditTitle: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit title"),
		),
		EditLabels: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "edit labels"),
		),
		EditStatus: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "set status"),
		),
		ClockIn: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "clock in"),
		),
		ClockOut: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "clock out"),
		),
		Schedule: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "edit scheduled"),
		),
		Deadline: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "edit deadline"),
		),
		Closed: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "edit closed"),
		),
		EditContent: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "edit content"),
		),
		EditLogbook: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "edit logbook"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new note"),
		),
		Delete: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete note"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Cycle, k.Save, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Help, k.Quit},
		{k.Cycle, k.EditStatus, k.EditTitle, k.EditLabels, k.EditContent},
		{k.ClockIn, k.ClockOut, k.EditLogbook},
		{k.Schedule, k.Deadline, k.Closed},
		{k.New, k.Delete, k.Save},
	}
}
