// Package coordinator owns all structural mutation of the dock layout.
// Verbs are atomic: each call either commits fully and publishes one
// event, or leaves the layout untouched. All calls happen on the
// interaction thread; nothing here is safe for concurrent use.
package coordinator

import (
	"context"
	"errors"
	"fmt"

	"github.com/atelierhq/atelier/internal/application/usecase"
	"github.com/atelierhq/atelier/internal/domain/entity"
	"github.com/atelierhq/atelier/internal/logging"
)

// DockCoordinator is the sole mutator of a DockLayout. It wraps the dock
// use case with silent not-found handling, the drag session, active-panel
// tracking and change notification.
type DockCoordinator struct {
	layout  *entity.DockLayout
	dockUC  *usecase.ManageDockUseCase
	session *usecase.DragSession

	generateID    func() string
	revision      uint64
	collapsedSize float64

	subscribers    []func(LayoutEvent)
	onStateChanged func() // session snapshot hook

	maximized     entity.PanelID
	restoredState entity.DisplayState
}

// DockCoordinatorConfig holds configuration for DockCoordinator.
type DockCoordinatorConfig struct {
	Layout        *entity.DockLayout // nil: fresh empty layout
	DockUC        *usecase.ManageDockUseCase
	GenerateID    func() string
	DragThreshold float64
}

// NewDockCoordinator creates a new DockCoordinator.
func NewDockCoordinator(cfg DockCoordinatorConfig) *DockCoordinator {
	layout := cfg.Layout
	if layout == nil {
		layout = entity.NewDockLayout()
	}
	dockUC := cfg.DockUC
	if dockUC == nil {
		dockUC = usecase.NewManageDockUseCase(usecase.IDGenerator(cfg.GenerateID))
	}
	return &DockCoordinator{
		layout:     layout,
		dockUC:     dockUC,
		session:    usecase.NewDragSession(dockUC, cfg.DragThreshold),
		generateID: cfg.GenerateID,
	}
}

// Layout exposes the layout for queries. Callers must not mutate it.
func (c *DockCoordinator) Layout() *entity.DockLayout { return c.layout }

// SetDragThreshold retunes the drag session's pointer-travel threshold,
// for config reloads. Takes effect on the next press.
func (c *DockCoordinator) SetDragThreshold(threshold float64) {
	c.session.SetThreshold(threshold)
}

// SetRatioBounds retunes the split ratio bounds. New splits pick them up
// through the use case; existing splits are re-clamped in place.
func (c *DockCoordinator) SetRatioBounds(min, max float64) {
	c.dockUC.SetRatioBounds(min, max)
	for _, region := range entity.TreeRegions {
		c.layout.Node(region).Walk(func(n *entity.LayoutNode) bool {
			if n.IsSplit() {
				n.Split.SetRatioBounds(min, max)
			}
			return true
		})
	}
}

// SetCollapsedSize retunes the footprint collapsed edges keep on screen.
// The value survives ReplaceLayout.
func (c *DockCoordinator) SetCollapsedSize(size float64) {
	c.collapsedSize = size
	if size > 0 {
		c.layout.CollapsedSize = size
	}
}

// Revision returns the number of committed mutations.
func (c *DockCoordinator) Revision() uint64 { return c.revision }

// Subscribe registers a listener for layout events. Listeners run
// synchronously on the mutating call, in registration order.
func (c *DockCoordinator) Subscribe(fn func(LayoutEvent)) {
	if fn != nil {
		c.subscribers = append(c.subscribers, fn)
	}
}

// SetOnStateChanged registers a hook that fires after every committed
// mutation, for session snapshots.
func (c *DockCoordinator) SetOnStateChanged(fn func()) {
	c.onStateChanged = fn
}

func (c *DockCoordinator) publish(event LayoutEvent) {
	c.revision++
	event.Revision = c.revision
	for _, fn := range c.subscribers {
		fn(event)
	}
	if c.onStateChanged != nil {
		c.onStateChanged()
	}
}

// CreatePanel is the panel factory: it wraps metadata into a Panel with a
// generated ID when none is given. The panel is not attached yet.
func (c *DockCoordinator) CreatePanel(id entity.PanelID, title, icon string, region entity.Region) *entity.Panel {
	if id == "" {
		id = entity.PanelID(c.generateID())
	}
	panel := entity.NewPanel(id, title)
	panel.Icon = icon
	if region.IsValid() {
		panel.PreferredRegion = region
	}
	return panel
}

// OpenPanel inserts a panel into the region's group.
func (c *DockCoordinator) OpenPanel(ctx context.Context, panel *entity.Panel, region entity.Region) error {
	out, err := c.dockUC.Open(ctx, usecase.OpenPanelInput{Layout: c.layout, Panel: panel, Region: region})
	if err != nil {
		return fmt.Errorf("open panel: %w", err)
	}
	c.clearMaximized()
	c.publish(LayoutEvent{Kind: EventPanelOpened, PanelID: panel.ID, Region: out.Region})
	return nil
}

// MovePanel relocates a panel. An unknown ID is a silent no-op.
func (c *DockCoordinator) MovePanel(ctx context.Context, id entity.PanelID, destination entity.Region) error {
	out, err := c.dockUC.Move(ctx, usecase.MovePanelInput{Layout: c.layout, PanelID: id, Destination: destination})
	if c.swallowNotFound(ctx, err, id) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("move panel: %w", err)
	}
	c.clearMaximized()
	c.publish(LayoutEvent{Kind: EventPanelMoved, PanelID: id, Region: out.Region})
	return nil
}

// SplitRegion splits a region slot, placing the panel in the new second
// child.
func (c *DockCoordinator) SplitRegion(ctx context.Context, region entity.Region, orientation entity.Orientation, ratio float64, panel *entity.Panel) error {
	out, err := c.dockUC.Split(ctx, usecase.SplitRegionInput{
		Layout:      c.layout,
		Region:      region,
		Orientation: orientation,
		Ratio:       ratio,
		NewPanel:    panel,
	})
	if err != nil {
		return fmt.Errorf("split region: %w", err)
	}
	c.clearMaximized()
	event := LayoutEvent{Kind: EventRegionSplit, PanelID: panel.ID, Region: region}
	if out.Split != nil {
		event.SplitID = out.Split.ID
	}
	c.publish(event)
	return nil
}

// ToggleCollapse flips an edge region between expanded and collapsed.
// Non-edge regions are a silent no-op.
func (c *DockCoordinator) ToggleCollapse(ctx context.Context, region entity.Region) {
	if !region.IsEdge() {
		logging.FromContext(ctx).Debug().
			Str("region", string(region)).
			Msg("collapse toggle ignored for non-edge region")
		return
	}
	c.layout.ToggleCollapse(region)
	c.publish(LayoutEvent{Kind: EventCollapseToggled, Region: region})
}

// MinimizePanel moves a panel to the minimized list. An unknown ID is a
// silent no-op.
func (c *DockCoordinator) MinimizePanel(ctx context.Context, id entity.PanelID) error {
	err := c.dockUC.Minimize(ctx, usecase.MinimizePanelInput{Layout: c.layout, PanelID: id})
	if c.swallowNotFound(ctx, err, id) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("minimize panel: %w", err)
	}
	c.clearMaximized()
	c.publish(LayoutEvent{Kind: EventPanelMinimized, PanelID: id})
	return nil
}

// RestorePanel returns a minimized panel to its preferred region. An
// unknown ID is a silent no-op.
func (c *DockCoordinator) RestorePanel(ctx context.Context, id entity.PanelID) error {
	group, err := c.dockUC.Restore(ctx, usecase.RestorePanelInput{Layout: c.layout, PanelID: id})
	if c.swallowNotFound(ctx, err, id) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore panel: %w", err)
	}
	c.publish(LayoutEvent{Kind: EventPanelRestored, PanelID: id, Region: group.PreferredRegion})
	return nil
}

// FloatPanel detaches a panel into a floating group. An unknown ID is a
// silent no-op.
func (c *DockCoordinator) FloatPanel(ctx context.Context, id entity.PanelID, geometry entity.FloatGeometry) error {
	_, err := c.dockUC.Float(ctx, usecase.FloatPanelInput{Layout: c.layout, PanelID: id, Geometry: geometry})
	if c.swallowNotFound(ctx, err, id) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("float panel: %w", err)
	}
	c.clearMaximized()
	c.publish(LayoutEvent{Kind: EventPanelFloated, PanelID: id, Region: entity.RegionFloating})
	return nil
}

// DockPanel moves a floating panel into a region tree. An unknown ID is a
// silent no-op.
func (c *DockCoordinator) DockPanel(ctx context.Context, id entity.PanelID, region entity.Region) error {
	_, err := c.dockUC.Dock(ctx, usecase.DockPanelInput{Layout: c.layout, PanelID: id, Region: region})
	if c.swallowNotFound(ctx, err, id) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("dock panel: %w", err)
	}
	c.clearMaximized()
	c.publish(LayoutEvent{Kind: EventPanelDocked, PanelID: id, Region: region})
	return nil
}

// ActivatePanel makes the panel active in its group and in the layout.
// Unknown or minimized IDs are a silent no-op.
func (c *DockCoordinator) ActivatePanel(ctx context.Context, id entity.PanelID) {
	group := c.layout.FindPanelGroup(id)
	if group == nil {
		logging.FromContext(ctx).Debug().
			Str("panel_id", string(id)).
			Msg("activate ignored for unknown panel")
		return
	}
	group.SetActive(id)
	c.layout.ActivePanelID = id
	c.publish(LayoutEvent{Kind: EventPanelActivated, PanelID: id})
}

// ActivateNext cycles activation forward through the deterministic panel
// order.
func (c *DockCoordinator) ActivateNext(ctx context.Context) {
	c.cycleActive(ctx, 1)
}

// ActivatePrev cycles activation backward.
func (c *DockCoordinator) ActivatePrev(ctx context.Context) {
	c.cycleActive(ctx, -1)
}

func (c *DockCoordinator) cycleActive(ctx context.Context, step int) {
	panels := c.layout.AllPanels()
	if len(panels) == 0 {
		return
	}
	current := 0
	for i, p := range panels {
		if p.ID == c.layout.ActivePanelID {
			current = i
			break
		}
	}
	next := (current + step + len(panels)) % len(panels)
	c.ActivatePanel(ctx, panels[next].ID)
}

// ToggleMaximize gives a panel the full container, or returns it to its
// previous display state on a second call. Maximizing is presentation
// state only; the tree keeps its shape and any structural verb clears it.
func (c *DockCoordinator) ToggleMaximize(ctx context.Context, id entity.PanelID) {
	if c.maximized == id && id != "" {
		c.clearMaximized()
		c.publish(LayoutEvent{Kind: EventPanelMaximized, PanelID: id})
		return
	}

	group := c.layout.FindPanelGroup(id)
	if group == nil {
		logging.FromContext(ctx).Debug().
			Str("panel_id", string(id)).
			Msg("maximize ignored for unknown panel")
		return
	}
	c.clearMaximized()
	for _, p := range group.Panels {
		if p.ID == id {
			c.maximized = id
			c.restoredState = p.DisplayState
			p.DisplayState = entity.StateMaximized
			break
		}
	}
	group.SetActive(id)
	c.layout.ActivePanelID = id
	c.publish(LayoutEvent{Kind: EventPanelMaximized, PanelID: id})
}

// MaximizedPanel returns the maximized panel ID, or "".
func (c *DockCoordinator) MaximizedPanel() entity.PanelID { return c.maximized }

func (c *DockCoordinator) clearMaximized() {
	if c.maximized == "" {
		return
	}
	if group := c.layout.FindPanelGroup(c.maximized); group != nil {
		for _, p := range group.Panels {
			if p.ID == c.maximized {
				p.DisplayState = c.restoredState
			}
		}
	}
	c.maximized = ""
	c.restoredState = entity.StateExpanded
}

// BeginResize marks a split as actively resizing. Unknown split IDs are a
// silent no-op.
func (c *DockCoordinator) BeginResize(ctx context.Context, splitID string) {
	if err := c.dockUC.SetSplitResizing(ctx, c.layout, splitID, true); err != nil {
		c.logSplitMiss(ctx, splitID)
	}
}

// UpdateResize applies a ratio to an in-flight resize, clamped. Events
// are published per update so renderers track the divider live.
func (c *DockCoordinator) UpdateResize(ctx context.Context, splitID string, ratio float64) {
	_, err := c.dockUC.UpdateSplitRatio(ctx, usecase.ResizeSplitInput{Layout: c.layout, SplitID: splitID, Ratio: ratio})
	if err != nil {
		c.logSplitMiss(ctx, splitID)
		return
	}
	c.publish(LayoutEvent{Kind: EventRatioChanged, SplitID: splitID})
}

// EndResize clears the resizing flag.
func (c *DockCoordinator) EndResize(ctx context.Context, splitID string) {
	if err := c.dockUC.SetSplitResizing(ctx, c.layout, splitID, false); err != nil {
		c.logSplitMiss(ctx, splitID)
	}
}

// PointerDown forwards a press to the drag session.
func (c *DockCoordinator) PointerDown(id entity.PanelID, x, y float64) {
	c.session.PointerDown(c.layout, id, x, y)
}

// PointerMove forwards pointer travel to the drag session.
func (c *DockCoordinator) PointerMove(x, y float64) {
	c.session.PointerMove(x, y)
}

// EnterDropZone forwards a hover to the drag session. An invalid target
// cancels the session without mutation.
func (c *DockCoordinator) EnterDropZone(ctx context.Context, zone usecase.DropZone) {
	if err := c.session.EnterDropZone(zone); err != nil {
		logging.FromContext(ctx).Debug().
			Str("region", string(zone.Region)).
			Msg("drag cancelled on invalid drop target")
	}
}

// LeaveDropZone returns a pending drop to plain dragging.
func (c *DockCoordinator) LeaveDropZone() {
	c.session.LeaveDropZone()
}

// Drop commits the pending drag. The committed mutation publishes
// through the underlying verb path.
func (c *DockCoordinator) Drop(ctx context.Context) error {
	id := c.session.PanelID()
	target := c.session.Target()
	committing := c.session.State() == usecase.DropPending

	if err := c.session.Drop(ctx, c.layout); err != nil {
		if errors.Is(err, usecase.ErrPanelNotFound) {
			return nil
		}
		return fmt.Errorf("drop: %w", err)
	}
	if committing {
		c.clearMaximized()
		event := LayoutEvent{Kind: EventPanelMoved, PanelID: id, Region: target.Region}
		switch {
		case target.Split:
			event.Kind = EventRegionSplit
			// The split verb wraps the region root, so the new split is
			// the root unless the drop degraded to a plain open.
			if node := c.layout.Node(target.Region); node.IsSplit() {
				event.SplitID = node.Split.ID
			}
		case target.Region == entity.RegionFloating:
			event.Kind = EventPanelFloated
		}
		c.publish(event)
	}
	return nil
}

// CancelDrag unconditionally returns the drag session to idle. The
// layout is never touched.
func (c *DockCoordinator) CancelDrag() {
	c.session.Cancel()
}

// DragState reports the session state for renderers.
func (c *DockCoordinator) DragState() usecase.DragState { return c.session.State() }

// ReplaceLayout swaps in a restored layout, for loading persisted state.
func (c *DockCoordinator) ReplaceLayout(layout *entity.DockLayout) {
	if layout == nil {
		layout = entity.NewDockLayout()
	}
	c.maximized = ""
	c.session.Cancel()
	if c.collapsedSize > 0 {
		layout.CollapsedSize = c.collapsedSize
	}
	c.layout = layout
	c.publish(LayoutEvent{Kind: EventLayoutReplaced})
}

// Snapshot captures the current layout for persistence.
func (c *DockCoordinator) Snapshot(name string) *entity.DockSnapshot {
	return entity.SnapshotFromLayout(name, c.layout)
}

// swallowNotFound reports whether err is the not-found case, logging it
// at debug. Verbs against unknown IDs are silent no-ops.
func (c *DockCoordinator) swallowNotFound(ctx context.Context, err error, id entity.PanelID) bool {
	if !errors.Is(err, usecase.ErrPanelNotFound) {
		return false
	}
	logging.FromContext(ctx).Debug().
		Str("panel_id", string(id)).
		Msg("verb ignored for unknown panel")
	return true
}

func (c *DockCoordinator) logSplitMiss(ctx context.Context, splitID string) {
	logging.FromContext(ctx).Debug().
		Str("split_id", splitID).
		Msg("resize ignored for unknown split")
}
