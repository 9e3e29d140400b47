// Package entity contains domain entities representing core docking concepts.
// These entities are pure Go types with no infrastructure dependencies.
package entity

import "time"

// PanelID uniquely identifies a panel within the shell.
type PanelID string

// Region identifies a docking target within the layout.
type Region string

const (
	RegionLeft     Region = "left"
	RegionRight    Region = "right"
	RegionTop      Region = "top"
	RegionBottom   Region = "bottom"
	RegionCenter   Region = "center"
	RegionFloating Region = "floating"
)

// TreeRegions lists the regions backed by a layout tree, in the fixed
// search and navigation order. Floating is not a tree region.
var TreeRegions = []Region{RegionLeft, RegionRight, RegionTop, RegionBottom, RegionCenter}

// EdgeRegions lists the regions that carry an edge size and a collapse flag.
var EdgeRegions = []Region{RegionLeft, RegionRight, RegionTop, RegionBottom}

// IsEdge returns true for the four collapsible edge regions.
func (r Region) IsEdge() bool {
	switch r {
	case RegionLeft, RegionRight, RegionTop, RegionBottom:
		return true
	}
	return false
}

// HasTree returns true for regions backed by a layout tree slot.
func (r Region) HasTree() bool {
	return r.IsEdge() || r == RegionCenter
}

// IsValid reports whether r names a known docking target.
func (r Region) IsValid() bool {
	return r.HasTree() || r == RegionFloating
}

// DisplayState is the finite display state of a panel.
type DisplayState int

const (
	StateExpanded DisplayState = iota
	StateCollapsed
	StateFloating
	StateMinimized
	StateMaximized
)

// String returns the lowercase name of the display state.
func (s DisplayState) String() string {
	switch s {
	case StateExpanded:
		return "expanded"
	case StateCollapsed:
		return "collapsed"
	case StateFloating:
		return "floating"
	case StateMinimized:
		return "minimized"
	case StateMaximized:
		return "maximized"
	}
	return "unknown"
}

// Panel represents a single dockable content unit.
// This is the leaf-level entity that holds identity and display metadata;
// the content itself lives with the presentation layer.
type Panel struct {
	ID              PanelID
	Title           string
	Icon            string
	PreferredRegion Region
	Visible         bool
	DisplayState    DisplayState
	CreatedAt       time.Time
}

// NewPanel creates a new panel with default values.
func NewPanel(id PanelID, title string) *Panel {
	return &Panel{
		ID:              id,
		Title:           title,
		PreferredRegion: RegionCenter,
		Visible:         true,
		DisplayState:    StateExpanded,
		CreatedAt:       time.Now(),
	}
}
