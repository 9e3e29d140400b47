package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/atelierhq/atelier/internal/domain/entity"
	"github.com/atelierhq/atelier/internal/logging"
)

// ErrPanelNotFound is returned when a verb references a panel ID that is
// absent from every region tree, the floating list and the minimized list.
var ErrPanelNotFound = errors.New("panel not found")

// ErrSplitNotFound is returned when a resize references an unknown split node.
var ErrSplitNotFound = errors.New("split node not found")

// ManageDockUseCase handles the structural dock verbs. Each operation
// detaches first and then attaches, so the uniqueness invariant holds at
// every observable point.
type ManageDockUseCase struct {
	idGenerator IDGenerator
	minRatio    float64
	maxRatio    float64
}

// NewManageDockUseCase creates a new dock management use case with the
// default split ratio bounds.
func NewManageDockUseCase(idGenerator IDGenerator) *ManageDockUseCase {
	return &ManageDockUseCase{idGenerator: idGenerator}
}

// SetRatioBounds sets the bounds applied to splits created from here on.
// Invalid bounds fall back to the entity defaults.
func (uc *ManageDockUseCase) SetRatioBounds(min, max float64) {
	uc.minRatio = min
	uc.maxRatio = max
}

// OpenPanelInput contains parameters for opening a panel.
type OpenPanelInput struct {
	Layout *entity.DockLayout
	Panel  *entity.Panel
	Region entity.Region // empty: the panel's preferred region
}

// OpenPanelOutput contains the result of an open operation.
type OpenPanelOutput struct {
	Group  *entity.PanelGroup
	Region entity.Region
}

// Open inserts a panel into the target region's panel group, creating one
// when the slot is empty. A panel that is already attached somewhere is
// detached first, so Open never duplicates.
func (uc *ManageDockUseCase) Open(ctx context.Context, input OpenPanelInput) (*OpenPanelOutput, error) {
	log := logging.FromContext(ctx)

	if input.Layout == nil {
		return nil, fmt.Errorf("layout is required")
	}
	if input.Panel == nil {
		return nil, fmt.Errorf("panel is required")
	}

	region := input.Region
	if region == "" {
		region = input.Panel.PreferredRegion
	}
	if !region.IsValid() {
		return nil, fmt.Errorf("invalid region %q", region)
	}

	uc.detach(input.Layout, input.Panel.ID)
	group := uc.attach(input.Layout, input.Panel, region, entity.FloatGeometry{})

	log.Debug().
		Str("panel_id", string(input.Panel.ID)).
		Str("region", string(region)).
		Msg("panel opened")

	return &OpenPanelOutput{Group: group, Region: region}, nil
}

// MovePanelInput contains parameters for moving a panel.
type MovePanelInput struct {
	Layout      *entity.DockLayout
	PanelID     entity.PanelID
	Destination entity.Region
}

// MovePanelOutput contains the result of a move operation.
type MovePanelOutput struct {
	Group  *entity.PanelGroup
	Region entity.Region
}

// Move detaches a panel from its current location, running the collapse
// rule, and attaches it at the destination.
func (uc *ManageDockUseCase) Move(ctx context.Context, input MovePanelInput) (*MovePanelOutput, error) {
	log := logging.FromContext(ctx)

	if input.Layout == nil {
		return nil, fmt.Errorf("layout is required")
	}
	if !input.Destination.IsValid() {
		return nil, fmt.Errorf("invalid region %q", input.Destination)
	}

	panel := uc.detach(input.Layout, input.PanelID)
	if panel == nil {
		return nil, ErrPanelNotFound
	}
	group := uc.attach(input.Layout, panel, input.Destination, entity.FloatGeometry{})

	log.Debug().
		Str("panel_id", string(input.PanelID)).
		Str("region", string(input.Destination)).
		Msg("panel moved")

	return &MovePanelOutput{Group: group, Region: input.Destination}, nil
}

// SplitRegionInput contains parameters for splitting a region slot.
type SplitRegionInput struct {
	Layout      *entity.DockLayout
	Region      entity.Region
	Orientation entity.Orientation
	Ratio       float64       // 0: default 0.5, then clamped
	NewPanel    *entity.Panel // occupies the second child
}

// SplitRegionOutput contains the result of a split operation.
// Split is nil when the slot was empty and the panel was simply opened.
type SplitRegionOutput struct {
	Split    *entity.SplitNode
	NewGroup *entity.PanelGroup
}

// Split replaces the region's slot with a split node whose children are
// the original content and a new group holding the target panel. Splitting
// an empty slot degrades to a plain open, keeping the tree minimal.
func (uc *ManageDockUseCase) Split(ctx context.Context, input SplitRegionInput) (*SplitRegionOutput, error) {
	log := logging.FromContext(ctx)

	if input.Layout == nil {
		return nil, fmt.Errorf("layout is required")
	}
	if !input.Region.HasTree() {
		return nil, fmt.Errorf("region %q has no tree slot", input.Region)
	}
	if input.NewPanel == nil {
		return nil, fmt.Errorf("target panel is required")
	}

	ratio := input.Ratio
	if ratio == 0 {
		ratio = 0.5
	}

	uc.detach(input.Layout, input.NewPanel.ID)

	existing := input.Layout.Node(input.Region)
	if existing.IsEmpty() {
		group := uc.attach(input.Layout, input.NewPanel, input.Region, entity.FloatGeometry{})
		log.Debug().
			Str("region", string(input.Region)).
			Msg("split on empty slot degraded to open")
		return &SplitRegionOutput{NewGroup: group}, nil
	}

	input.NewPanel.PreferredRegion = input.Region
	input.NewPanel.DisplayState = entity.StateExpanded
	newGroup := entity.NewPanelGroup(entity.GroupID(uc.idGenerator()), input.Region, input.NewPanel)

	split := entity.NewSplitNode(uc.idGenerator(), input.Orientation, existing, entity.GroupNode(newGroup), ratio)
	if uc.minRatio > 0 || uc.maxRatio > 0 {
		split.SetRatioBounds(uc.minRatio, uc.maxRatio)
	}
	input.Layout.SetNode(input.Region, entity.SplitBranch(split))
	input.Layout.ActivePanelID = input.NewPanel.ID

	log.Debug().
		Str("region", string(input.Region)).
		Str("orientation", input.Orientation.String()).
		Float64("ratio", split.Ratio).
		Str("new_panel_id", string(input.NewPanel.ID)).
		Msg("region split")

	return &SplitRegionOutput{Split: split, NewGroup: newGroup}, nil
}

// MinimizePanelInput contains parameters for minimizing a panel.
type MinimizePanelInput struct {
	Layout  *entity.DockLayout
	PanelID entity.PanelID
}

// Minimize detaches a panel from its group into the minimized list.
// The emptied slot collapses per the collapse rule. Minimizing an already
// minimized panel is a no-op.
func (uc *ManageDockUseCase) Minimize(ctx context.Context, input MinimizePanelInput) error {
	log := logging.FromContext(ctx)

	if input.Layout == nil {
		return fmt.Errorf("layout is required")
	}
	if input.Layout.IsMinimized(input.PanelID) {
		return nil
	}

	panel := uc.detach(input.Layout, input.PanelID)
	if panel == nil {
		return ErrPanelNotFound
	}

	panel.DisplayState = entity.StateMinimized
	input.Layout.MinimizedPanels = append(input.Layout.MinimizedPanels, panel)

	if input.Layout.ActivePanelID == input.PanelID {
		input.Layout.ActivePanelID = ""
		if remaining := input.Layout.AllPanels(); len(remaining) > 0 {
			input.Layout.ActivePanelID = remaining[0].ID
		}
	}

	log.Debug().Str("panel_id", string(input.PanelID)).Msg("panel minimized")
	return nil
}

// RestorePanelInput contains parameters for restoring a minimized panel.
type RestorePanelInput struct {
	Layout  *entity.DockLayout
	PanelID entity.PanelID
}

// Restore moves a panel from the minimized list back into its preferred
// region. When the slot already holds content, the panel joins the
// arrival group there.
func (uc *ManageDockUseCase) Restore(ctx context.Context, input RestorePanelInput) (*entity.PanelGroup, error) {
	log := logging.FromContext(ctx)

	if input.Layout == nil {
		return nil, fmt.Errorf("layout is required")
	}
	panel := uc.removeMinimized(input.Layout, input.PanelID)
	if panel == nil {
		return nil, ErrPanelNotFound
	}

	region := panel.PreferredRegion
	if !region.IsValid() || region == entity.RegionFloating {
		region = entity.RegionCenter
	}
	group := uc.attach(input.Layout, panel, region, entity.FloatGeometry{})

	log.Debug().
		Str("panel_id", string(input.PanelID)).
		Str("region", string(region)).
		Msg("panel restored")

	return group, nil
}

// FloatPanelInput contains parameters for floating a panel.
type FloatPanelInput struct {
	Layout   *entity.DockLayout
	PanelID  entity.PanelID
	Geometry entity.FloatGeometry // zero value: default geometry
}

// Float detaches a panel into a new floating group with the given geometry.
func (uc *ManageDockUseCase) Float(ctx context.Context, input FloatPanelInput) (*entity.PanelGroup, error) {
	log := logging.FromContext(ctx)

	if input.Layout == nil {
		return nil, fmt.Errorf("layout is required")
	}
	panel := uc.detach(input.Layout, input.PanelID)
	if panel == nil {
		return nil, ErrPanelNotFound
	}

	group := uc.attach(input.Layout, panel, entity.RegionFloating, input.Geometry)

	log.Debug().
		Str("panel_id", string(input.PanelID)).
		Str("group_id", string(group.ID)).
		Msg("panel floated")

	return group, nil
}

// DockPanelInput contains parameters for docking a floating panel.
type DockPanelInput struct {
	Layout  *entity.DockLayout
	PanelID entity.PanelID
	Region  entity.Region
}

// Dock moves a panel (typically floating) into a region tree.
func (uc *ManageDockUseCase) Dock(ctx context.Context, input DockPanelInput) (*entity.PanelGroup, error) {
	log := logging.FromContext(ctx)

	if input.Layout == nil {
		return nil, fmt.Errorf("layout is required")
	}
	if !input.Region.HasTree() {
		return nil, fmt.Errorf("region %q has no tree slot", input.Region)
	}

	panel := uc.detach(input.Layout, input.PanelID)
	if panel == nil {
		return nil, ErrPanelNotFound
	}
	group := uc.attach(input.Layout, panel, input.Region, entity.FloatGeometry{})

	log.Debug().
		Str("panel_id", string(input.PanelID)).
		Str("region", string(input.Region)).
		Msg("panel docked")

	return group, nil
}

// ResizeSplitInput contains parameters for updating a split ratio.
type ResizeSplitInput struct {
	Layout  *entity.DockLayout
	SplitID string
	Ratio   float64
}

// UpdateSplitRatio clamps and stores the ratio on the named split node.
// Out-of-range ratios are recovered by clamping, never surfaced.
func (uc *ManageDockUseCase) UpdateSplitRatio(ctx context.Context, input ResizeSplitInput) (float64, error) {
	if input.Layout == nil {
		return 0, fmt.Errorf("layout is required")
	}
	split := uc.findSplit(input.Layout, input.SplitID)
	if split == nil {
		return 0, ErrSplitNotFound
	}
	return split.UpdateRatio(input.Ratio), nil
}

// SetSplitResizing toggles the presentation-only resizing flag.
func (uc *ManageDockUseCase) SetSplitResizing(ctx context.Context, layout *entity.DockLayout, splitID string, resizing bool) error {
	if layout == nil {
		return fmt.Errorf("layout is required")
	}
	split := uc.findSplit(layout, splitID)
	if split == nil {
		return ErrSplitNotFound
	}
	split.IsResizing = resizing
	return nil
}

func (uc *ManageDockUseCase) findSplit(layout *entity.DockLayout, id string) *entity.SplitNode {
	for _, region := range entity.TreeRegions {
		if s := layout.Node(region).FindSplit(id); s != nil {
			return s
		}
	}
	return nil
}

// attach inserts the panel at the region and returns the receiving group.
// Attachment never fails: verbs validate before detaching, so a completed
// detach is always followed by a successful attach.
func (uc *ManageDockUseCase) attach(layout *entity.DockLayout, panel *entity.Panel, region entity.Region, geometry entity.FloatGeometry) *entity.PanelGroup {
	panel.PreferredRegion = region
	layout.ActivePanelID = panel.ID

	if region == entity.RegionFloating {
		panel.DisplayState = entity.StateFloating
		group := entity.NewPanelGroup(entity.GroupID(uc.idGenerator()), region, panel)
		if geometry == (entity.FloatGeometry{}) {
			geometry = entity.DefaultFloatGeometry
		}
		layout.FloatingGroups = append(layout.FloatingGroups, group)
		layout.FloatingGeometry[group.ID] = geometry
		return group
	}

	panel.DisplayState = entity.StateExpanded
	if group := uc.arrivalGroup(layout, region); group != nil {
		group.Append(panel)
		return group
	}

	group := entity.NewPanelGroup(entity.GroupID(uc.idGenerator()), region, panel)
	layout.SetNode(region, entity.GroupNode(group))
	return group
}

// arrivalGroup picks the group that receives new panels in a region: the
// group holding the active panel when it lives there, otherwise the first
// group in pre-order. Returns nil for an empty slot.
func (uc *ManageDockUseCase) arrivalGroup(layout *entity.DockLayout, region entity.Region) *entity.PanelGroup {
	node := layout.Node(region)
	if node.IsEmpty() {
		return nil
	}
	if layout.ActivePanelID != "" {
		if g := node.FindGroup(layout.ActivePanelID); g != nil {
			return g
		}
	}
	groups := node.Groups()
	if len(groups) == 0 {
		return nil
	}
	return groups[0]
}

// detach removes the panel from whichever container holds it and returns
// it, or nil when the panel is unknown. Emptied groups and degenerate
// splits collapse on the way out, keeping every region tree minimal.
func (uc *ManageDockUseCase) detach(layout *entity.DockLayout, id entity.PanelID) *entity.Panel {
	for _, region := range entity.TreeRegions {
		node, panel := removePanel(layout.Node(region), id)
		if panel != nil {
			layout.SetNode(region, node)
			return panel
		}
	}

	for i, g := range layout.FloatingGroups {
		if panel := g.Remove(id); panel != nil {
			if g.IsEmpty() {
				layout.FloatingGroups = append(layout.FloatingGroups[:i], layout.FloatingGroups[i+1:]...)
				delete(layout.FloatingGeometry, g.ID)
			}
			return panel
		}
	}

	return uc.removeMinimized(layout, id)
}

func (uc *ManageDockUseCase) removeMinimized(layout *entity.DockLayout, id entity.PanelID) *entity.Panel {
	for i, p := range layout.MinimizedPanels {
		if p.ID == id {
			layout.MinimizedPanels = append(layout.MinimizedPanels[:i], layout.MinimizedPanels[i+1:]...)
			return p
		}
	}
	return nil
}

// removePanel removes the panel from the subtree and returns the minimal
// replacement node. The collapse rule is applied bottom-up on return: an
// emptied group becomes an empty slot, and a split with an empty child is
// replaced by its surviving child.
func removePanel(n *entity.LayoutNode, id entity.PanelID) (*entity.LayoutNode, *entity.Panel) {
	switch {
	case n.IsGroup():
		panel := n.Group.Remove(id)
		if panel != nil && n.Group.IsEmpty() {
			return entity.EmptyNode(), panel
		}
		return n, panel

	case n.IsSplit():
		first, panel := removePanel(n.Split.First, id)
		if panel != nil {
			n.Split.First = first
		} else {
			var second *entity.LayoutNode
			second, panel = removePanel(n.Split.Second, id)
			if panel == nil {
				return n, nil
			}
			n.Split.Second = second
		}
		if n.Split.First.IsEmpty() {
			return n.Split.Second, panel
		}
		if n.Split.Second.IsEmpty() {
			return n.Split.First, panel
		}
		return n, panel
	}
	return n, nil
}
