// Package inspector is an interactive terminal view of the dock layout.
// It exercises the full verb set against a live coordinator, which makes
// it both a debugging aid and a manual test harness.
package inspector

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the inspector key bindings.
type KeyMap struct {
	NextPanel    key.Binding
	PrevPanel    key.Binding
	Minimize     key.Binding
	Restore      key.Binding
	Float        key.Binding
	Dock         key.Binding
	Split        key.Binding
	Maximize     key.Binding
	GrowSplit    key.Binding
	ShrinkSplit  key.Binding
	ToggleLeft   key.Binding
	ToggleRight  key.Binding
	ToggleTop    key.Binding
	ToggleBottom key.Binding
	Save         key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default inspector bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextPanel: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next panel"),
		),
		PrevPanel: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev panel"),
		),
		Minimize: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "minimize active"),
		),
		Restore: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restore minimized"),
		),
		Float: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "float active"),
		),
		Dock: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dock active"),
		),
		Split: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "split active region"),
		),
		Maximize: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "toggle maximize"),
		),
		GrowSplit: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "grow split"),
		),
		ShrinkSplit: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "shrink split"),
		),
		ToggleLeft: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "collapse left"),
		),
		ToggleRight: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "collapse right"),
		),
		ToggleTop: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "collapse top"),
		),
		ToggleBottom: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "collapse bottom"),
		),
		Save: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "save layout"),
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

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPanel, k.Minimize, k.Restore, k.Split, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextPanel, k.PrevPanel, k.Maximize},
		{k.Minimize, k.Restore, k.Float, k.Dock},
		{k.Split, k.GrowSplit, k.ShrinkSplit},
		{k.ToggleLeft, k.ToggleRight, k.ToggleTop, k.ToggleBottom},
		{k.Save, k.Help, k.Quit},
	}
}
