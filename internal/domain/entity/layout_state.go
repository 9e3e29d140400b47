package entity

import "time"

// DockSnapshotVersion is the current schema version for layout snapshots.
// Increment when making breaking changes to the serialization format.
const DockSnapshotVersion = 1

// DockSnapshot is a complete serializable description of a dock layout:
// per-region tree shape with ratios, edge sizes and collapse flags,
// floating-group geometries and the minimized list. It is stored as JSON
// by the persistence layer.
type DockSnapshot struct {
	Version        int                      `json:"version"`
	Name           string                   `json:"name"`
	Left           *NodeSnapshot            `json:"left,omitempty"`
	Right          *NodeSnapshot            `json:"right,omitempty"`
	Top            *NodeSnapshot            `json:"top,omitempty"`
	Bottom         *NodeSnapshot            `json:"bottom,omitempty"`
	Center         *NodeSnapshot            `json:"center,omitempty"`
	EdgeSizes      map[Region]float64       `json:"edge_sizes"`
	CollapsedEdges map[Region]bool          `json:"collapsed_edges,omitempty"`
	Floating       []*FloatingGroupSnapshot `json:"floating,omitempty"`
	Minimized      []*PanelSnapshot         `json:"minimized,omitempty"`
	ActivePanelID  PanelID                  `json:"active_panel_id,omitempty"`
	SavedAt        time.Time                `json:"saved_at"`
}

// NodeSnapshot captures one layout tree node. Exactly one of Group and
// Split is set; a nil NodeSnapshot stands for an empty slot.
type NodeSnapshot struct {
	Group *GroupSnapshot `json:"group,omitempty"`
	Split *SplitSnapshot `json:"split,omitempty"`
}

// SplitSnapshot captures a split node and its subtrees.
type SplitSnapshot struct {
	ID          string        `json:"id"`
	Orientation Orientation   `json:"orientation"`
	Ratio       float64       `json:"ratio"`
	First       *NodeSnapshot `json:"first"`
	Second      *NodeSnapshot `json:"second"`
}

// GroupSnapshot captures a panel group and its tab order.
type GroupSnapshot struct {
	ID              GroupID          `json:"id"`
	PreferredRegion Region           `json:"preferred_region"`
	ActiveIndex     int              `json:"active_index"`
	Panels          []*PanelSnapshot `json:"panels"`
}

// PanelSnapshot captures the persisted metadata of a panel.
type PanelSnapshot struct {
	ID              PanelID      `json:"id"`
	Title           string       `json:"title"`
	Icon            string       `json:"icon,omitempty"`
	PreferredRegion Region       `json:"preferred_region"`
	Visible         bool         `json:"visible"`
	DisplayState    DisplayState `json:"display_state"`
}

// FloatingGroupSnapshot pairs a floating group with its geometry.
type FloatingGroupSnapshot struct {
	Group    *GroupSnapshot `json:"group"`
	Geometry FloatGeometry  `json:"geometry"`
}

// SnapshotFromLayout captures a live layout as a snapshot.
func SnapshotFromLayout(name string, l *DockLayout) *DockSnapshot {
	snap := &DockSnapshot{
		Version:        DockSnapshotVersion,
		Name:           name,
		EdgeSizes:      make(map[Region]float64),
		CollapsedEdges: make(map[Region]bool),
		SavedAt:        time.Now(),
	}
	if l == nil {
		return snap
	}

	snap.Left = snapshotNode(l.Left)
	snap.Right = snapshotNode(l.Right)
	snap.Top = snapshotNode(l.Top)
	snap.Bottom = snapshotNode(l.Bottom)
	snap.Center = snapshotNode(l.Center)
	snap.ActivePanelID = l.ActivePanelID

	for _, region := range EdgeRegions {
		snap.EdgeSizes[region] = l.EdgeSizes[region]
		if l.CollapsedEdges[region] {
			snap.CollapsedEdges[region] = true
		}
	}

	for _, g := range l.FloatingGroups {
		snap.Floating = append(snap.Floating, &FloatingGroupSnapshot{
			Group:    snapshotGroup(g),
			Geometry: l.FloatingGeometry[g.ID],
		})
	}
	for _, p := range l.MinimizedPanels {
		snap.Minimized = append(snap.Minimized, snapshotPanel(p))
	}
	return snap
}

func snapshotNode(n *LayoutNode) *NodeSnapshot {
	switch {
	case n.IsGroup():
		return &NodeSnapshot{Group: snapshotGroup(n.Group)}
	case n.IsSplit():
		return &NodeSnapshot{Split: &SplitSnapshot{
			ID:          n.Split.ID,
			Orientation: n.Split.Orientation,
			Ratio:       n.Split.Ratio,
			First:       snapshotNode(n.Split.First),
			Second:      snapshotNode(n.Split.Second),
		}}
	}
	return nil
}

func snapshotGroup(g *PanelGroup) *GroupSnapshot {
	snap := &GroupSnapshot{
		ID:              g.ID,
		PreferredRegion: g.PreferredRegion,
		ActiveIndex:     g.ActiveIndex,
	}
	for _, p := range g.Panels {
		snap.Panels = append(snap.Panels, snapshotPanel(p))
	}
	return snap
}

func snapshotPanel(p *Panel) *PanelSnapshot {
	return &PanelSnapshot{
		ID:              p.ID,
		Title:           p.Title,
		Icon:            p.Icon,
		PreferredRegion: p.PreferredRegion,
		Visible:         p.Visible,
		DisplayState:    p.DisplayState,
	}
}

// LayoutFromSnapshot rebuilds a layout from a persisted snapshot.
// Malformed state is normalized rather than rejected: out-of-range ratios
// are clamped, empty groups are dropped, degenerate splits collapse to
// their surviving child, and a panel ID that already appeared earlier in
// the restore order is skipped.
func LayoutFromSnapshot(snap *DockSnapshot) *DockLayout {
	l := NewDockLayout()
	if snap == nil {
		return l
	}

	seen := make(map[PanelID]bool)

	l.Left = restoreNode(snap.Left, RegionLeft, seen)
	l.Right = restoreNode(snap.Right, RegionRight, seen)
	l.Top = restoreNode(snap.Top, RegionTop, seen)
	l.Bottom = restoreNode(snap.Bottom, RegionBottom, seen)
	l.Center = restoreNode(snap.Center, RegionCenter, seen)

	for region, size := range snap.EdgeSizes {
		if region.IsEdge() && size > 0 {
			l.EdgeSizes[region] = size
		}
	}
	for region, collapsed := range snap.CollapsedEdges {
		if region.IsEdge() && collapsed {
			l.CollapsedEdges[region] = true
		}
	}

	for _, fg := range snap.Floating {
		if fg == nil || fg.Group == nil {
			continue
		}
		g := restoreGroup(fg.Group, RegionFloating, seen)
		if g == nil {
			continue
		}
		l.FloatingGroups = append(l.FloatingGroups, g)
		l.FloatingGeometry[g.ID] = fg.Geometry
		for _, p := range g.Panels {
			p.DisplayState = StateFloating
		}
	}

	for _, ps := range snap.Minimized {
		p := restorePanel(ps, seen)
		if p == nil {
			continue
		}
		p.DisplayState = StateMinimized
		l.MinimizedPanels = append(l.MinimizedPanels, p)
	}

	if snap.ActivePanelID != "" && seen[snap.ActivePanelID] {
		l.ActivePanelID = snap.ActivePanelID
	}
	return l
}

func restoreNode(snap *NodeSnapshot, region Region, seen map[PanelID]bool) *LayoutNode {
	if snap == nil {
		return EmptyNode()
	}
	if snap.Group != nil {
		g := restoreGroup(snap.Group, region, seen)
		if g == nil {
			return EmptyNode()
		}
		return GroupNode(g)
	}
	if snap.Split != nil {
		first := restoreNode(snap.Split.First, region, seen)
		second := restoreNode(snap.Split.Second, region, seen)
		// Degenerate splits collapse to the surviving child.
		if first.IsEmpty() {
			return second
		}
		if second.IsEmpty() {
			return first
		}
		return SplitBranch(NewSplitNode(snap.Split.ID, snap.Split.Orientation, first, second, snap.Split.Ratio))
	}
	return EmptyNode()
}

func restoreGroup(snap *GroupSnapshot, region Region, seen map[PanelID]bool) *PanelGroup {
	g := NewPanelGroup(snap.ID, region)
	for _, ps := range snap.Panels {
		if p := restorePanel(ps, seen); p != nil {
			g.Append(p)
		}
	}
	if g.IsEmpty() {
		return nil
	}
	if snap.ActiveIndex >= 0 && snap.ActiveIndex < len(g.Panels) {
		g.ActiveIndex = snap.ActiveIndex
	}
	return g
}

func restorePanel(snap *PanelSnapshot, seen map[PanelID]bool) *Panel {
	if snap == nil || snap.ID == "" || seen[snap.ID] {
		return nil
	}
	seen[snap.ID] = true

	p := NewPanel(snap.ID, snap.Title)
	p.Icon = snap.Icon
	if snap.PreferredRegion.IsValid() {
		p.PreferredRegion = snap.PreferredRegion
	}
	p.Visible = snap.Visible
	p.DisplayState = snap.DisplayState
	return p
}

// CountPanels returns the total number of panels in the snapshot.
func (s *DockSnapshot) CountPanels() int {
	count := len(s.Minimized)
	for _, n := range []*NodeSnapshot{s.Left, s.Right, s.Top, s.Bottom, s.Center} {
		count += countPanelsInNode(n)
	}
	for _, fg := range s.Floating {
		if fg != nil && fg.Group != nil {
			count += len(fg.Group.Panels)
		}
	}
	return count
}

func countPanelsInNode(n *NodeSnapshot) int {
	if n == nil {
		return 0
	}
	if n.Group != nil {
		return len(n.Group.Panels)
	}
	if n.Split != nil {
		return countPanelsInNode(n.Split.First) + countPanelsInNode(n.Split.Second)
	}
	return 0
}
