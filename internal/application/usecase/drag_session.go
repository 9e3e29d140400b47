package usecase

import (
	"context"
	"errors"
	"math"

	"github.com/atelierhq/atelier/internal/domain/entity"
	"github.com/atelierhq/atelier/internal/logging"
)

// ErrInvalidDrop marks an incompatible drop target, such as dropping a
// panel onto its own group. The session cancels itself when it occurs.
var ErrInvalidDrop = errors.New("invalid drop target")

// DragState is the state of an interactive drag session.
type DragState int

const (
	// DragIdle means no drag is in progress. A pointer may be down, but
	// movement has not passed the threshold yet.
	DragIdle DragState = iota
	// DragActive means a panel is being dragged.
	DragActive
	// DropPending means the drag hovers over a valid drop zone.
	DropPending
)

func (s DragState) String() string {
	switch s {
	case DragActive:
		return "dragging"
	case DropPending:
		return "dropPending"
	default:
		return "idle"
	}
}

// DefaultDragThreshold is the pointer travel, in logical pixels, needed
// before a press becomes a drag.
const DefaultDragThreshold = 8.0

// DropZone describes where a drag would land. Group, when set, is the
// specific group the panel would join; otherwise the panel lands in the
// region per the usual arrival rules. Split requests splitting the
// region slot instead of joining a group.
type DropZone struct {
	Region      entity.Region
	Group       *entity.PanelGroup
	Split       bool
	Orientation entity.Orientation
	Ratio       float64
	Geometry    entity.FloatGeometry // floating drops only
}

// DragSession is the drag state machine. Transitions are discrete
// synchronous calls; nothing between two calls is observable, and only
// Drop mutates the layout.
type DragSession struct {
	dock      *ManageDockUseCase
	threshold float64

	state   DragState
	panelID entity.PanelID
	origin  entity.Region
	pressed bool
	startX  float64
	startY  float64
	target  DropZone
}

// NewDragSession creates an idle session. A threshold of zero or less
// falls back to the default.
func NewDragSession(dock *ManageDockUseCase, threshold float64) *DragSession {
	if threshold <= 0 {
		threshold = DefaultDragThreshold
	}
	return &DragSession{dock: dock, threshold: threshold}
}

// SetThreshold replaces the drag threshold. Zero or less restores the
// default. Takes effect on the next press.
func (s *DragSession) SetThreshold(threshold float64) {
	if threshold <= 0 {
		threshold = DefaultDragThreshold
	}
	s.threshold = threshold
}

// State returns the current session state.
func (s *DragSession) State() DragState { return s.state }

// PanelID returns the dragged panel, or "" when idle.
func (s *DragSession) PanelID() entity.PanelID {
	if s.state == DragIdle && !s.pressed {
		return ""
	}
	return s.panelID
}

// Origin returns the region the dragged panel came from.
func (s *DragSession) Origin() entity.Region { return s.origin }

// Target returns the pending drop zone. Only meaningful in DropPending.
func (s *DragSession) Target() DropZone { return s.target }

// PointerDown records a press on a panel. The session stays idle until
// movement passes the threshold. An unknown panel ID is ignored.
func (s *DragSession) PointerDown(layout *entity.DockLayout, id entity.PanelID, x, y float64) {
	if s.state != DragIdle || layout == nil {
		return
	}
	group, region := layout.LocatePanel(id)
	if group == nil {
		return
	}
	s.pressed = true
	s.panelID = id
	s.origin = region
	s.startX = x
	s.startY = y
}

// PointerMove advances idle to dragging once travel exceeds the
// threshold. Moves during an active drag are position-only.
func (s *DragSession) PointerMove(x, y float64) {
	if s.state != DragIdle || !s.pressed {
		return
	}
	dx := x - s.startX
	dy := y - s.startY
	if math.Hypot(dx, dy) >= s.threshold {
		s.state = DragActive
	}
}

// EnterDropZone moves dragging to dropPending when the zone is
// compatible. An incompatible zone cancels the whole session and
// returns ErrInvalidDrop; the layout is untouched either way.
func (s *DragSession) EnterDropZone(zone DropZone) error {
	if s.state != DragActive && s.state != DropPending {
		return nil
	}
	if !s.validDrop(zone) {
		s.reset()
		return ErrInvalidDrop
	}
	s.state = DropPending
	s.target = zone
	return nil
}

// LeaveDropZone returns a pending drop to plain dragging.
func (s *DragSession) LeaveDropZone() {
	if s.state == DropPending {
		s.state = DragActive
		s.target = DropZone{}
	}
}

// Drop commits the pending drop as a move, split or float and resets the
// session. Dropping outside a zone just cancels.
func (s *DragSession) Drop(ctx context.Context, layout *entity.DockLayout) error {
	log := logging.FromContext(ctx)

	if s.state != DropPending {
		s.reset()
		return nil
	}
	id := s.panelID
	zone := s.target
	s.reset()

	switch {
	case zone.Split:
		panel := detachedLookup(layout, id)
		if panel == nil {
			return ErrPanelNotFound
		}
		_, err := s.dock.Split(ctx, SplitRegionInput{
			Layout:      layout,
			Region:      zone.Region,
			Orientation: zone.Orientation,
			Ratio:       zone.Ratio,
			NewPanel:    panel,
		})
		return err

	case zone.Region == entity.RegionFloating:
		_, err := s.dock.Float(ctx, FloatPanelInput{Layout: layout, PanelID: id, Geometry: zone.Geometry})
		return err

	default:
		_, err := s.dock.Move(ctx, MovePanelInput{Layout: layout, PanelID: id, Destination: zone.Region})
		if err != nil {
			return err
		}
		log.Debug().
			Str("panel_id", string(id)).
			Str("region", string(zone.Region)).
			Msg("drag committed")
		return nil
	}
}

// Cancel unconditionally returns the session to idle without touching
// the layout.
func (s *DragSession) Cancel() { s.reset() }

func (s *DragSession) reset() {
	s.state = DragIdle
	s.pressed = false
	s.panelID = ""
	s.origin = ""
	s.target = DropZone{}
}

func (s *DragSession) validDrop(zone DropZone) bool {
	if !zone.Region.IsValid() {
		return false
	}
	// A panel cannot land in the group it already occupies.
	if zone.Group != nil && zone.Group.Contains(s.panelID) {
		return false
	}
	// Splitting needs a tree slot; floating has none.
	if zone.Split && !zone.Region.HasTree() {
		return false
	}
	return true
}

// detachedLookup finds a panel anywhere in the layout without removing
// it. Split drops need the panel value itself.
func detachedLookup(layout *entity.DockLayout, id entity.PanelID) *entity.Panel {
	if group, _ := layout.LocatePanel(id); group != nil {
		for _, p := range group.Panels {
			if p.ID == id {
				return p
			}
		}
	}
	return layout.MinimizedPanel(id)
}
