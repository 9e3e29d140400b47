package coordinator

import "github.com/atelierhq/atelier/internal/domain/entity"

// LayoutEventKind identifies what a layout event describes.
type LayoutEventKind string

const (
	EventPanelOpened     LayoutEventKind = "panel_opened"
	EventPanelMoved      LayoutEventKind = "panel_moved"
	EventPanelMinimized  LayoutEventKind = "panel_minimized"
	EventPanelRestored   LayoutEventKind = "panel_restored"
	EventPanelFloated    LayoutEventKind = "panel_floated"
	EventPanelDocked     LayoutEventKind = "panel_docked"
	EventPanelActivated  LayoutEventKind = "panel_activated"
	EventPanelMaximized  LayoutEventKind = "panel_maximized"
	EventRegionSplit     LayoutEventKind = "region_split"
	EventCollapseToggled LayoutEventKind = "collapse_toggled"
	EventRatioChanged    LayoutEventKind = "ratio_changed"
	EventLayoutReplaced  LayoutEventKind = "layout_replaced"
)

// LayoutEvent is published after a verb commits. Renderers subscribe to
// events and re-query the layout instead of observing fields directly.
// Revision increases by one per committed mutation, so a subscriber can
// detect missed events.
type LayoutEvent struct {
	Kind     LayoutEventKind
	PanelID  entity.PanelID
	Region   entity.Region
	SplitID  string
	Revision uint64
}
