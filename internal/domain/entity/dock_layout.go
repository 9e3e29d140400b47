package entity

// CollapsedFootprint is the fixed cross-axis size of a collapsed edge
// region, in layout units. Collapsed edges never shrink to zero.
const CollapsedFootprint = 44.0

// Default edge sizes for a fresh layout.
const (
	DefaultSideSize   = 250.0
	DefaultTopSize    = 150.0
	DefaultBottomSize = 200.0
)

// DockLayout owns the five region trees plus the floating and minimized
// side lists. It is a passive aggregate: all structural mutation goes
// through the dock verbs, queries are safe at any time.
type DockLayout struct {
	Left   *LayoutNode
	Right  *LayoutNode
	Top    *LayoutNode
	Bottom *LayoutNode
	Center *LayoutNode

	FloatingGroups   []*PanelGroup
	FloatingGeometry map[GroupID]FloatGeometry
	MinimizedPanels  []*Panel

	EdgeSizes      map[Region]float64
	CollapsedEdges map[Region]bool

	// CollapsedSize is the footprint a collapsed edge keeps on screen.
	// Zero falls back to CollapsedFootprint.
	CollapsedSize float64

	ActivePanelID PanelID
}

// NewDockLayout creates an empty layout with default edge sizes and all
// edges expanded.
func NewDockLayout() *DockLayout {
	return &DockLayout{
		Left:             EmptyNode(),
		Right:            EmptyNode(),
		Top:              EmptyNode(),
		Bottom:           EmptyNode(),
		Center:           EmptyNode(),
		FloatingGeometry: make(map[GroupID]FloatGeometry),
		EdgeSizes: map[Region]float64{
			RegionLeft:   DefaultSideSize,
			RegionRight:  DefaultSideSize,
			RegionTop:    DefaultTopSize,
			RegionBottom: DefaultBottomSize,
		},
		CollapsedEdges: make(map[Region]bool),
		CollapsedSize:  CollapsedFootprint,
	}
}

// Node returns the tree slot for a region. Floating has no tree slot and
// always reads as empty, as does an unknown region.
func (l *DockLayout) Node(region Region) *LayoutNode {
	switch region {
	case RegionLeft:
		return l.Left
	case RegionRight:
		return l.Right
	case RegionTop:
		return l.Top
	case RegionBottom:
		return l.Bottom
	case RegionCenter:
		return l.Center
	}
	return EmptyNode()
}

// SetNode replaces the tree slot for a region. A nil node installs a fresh
// empty marker. Setting floating or an unknown region is a no-op.
func (l *DockLayout) SetNode(region Region, node *LayoutNode) {
	if node == nil {
		node = EmptyNode()
	}
	switch region {
	case RegionLeft:
		l.Left = node
	case RegionRight:
		l.Right = node
	case RegionTop:
		l.Top = node
	case RegionBottom:
		l.Bottom = node
	case RegionCenter:
		l.Center = node
	}
}

// Size returns the space allotted to a region within the container.
// Collapsed edges occupy the fixed collapsed footprint on their cross axis
// and the full container length on their main axis. Center and floating
// report the whole container; subtracting the edges is the caller's job.
func (l *DockLayout) Size(region Region, container Size) Size {
	switch region {
	case RegionLeft, RegionRight:
		w := l.EdgeSizes[region]
		if l.CollapsedEdges[region] {
			w = l.collapsedFootprint()
		}
		return Size{W: w, H: container.H}
	case RegionTop, RegionBottom:
		h := l.EdgeSizes[region]
		if l.CollapsedEdges[region] {
			h = l.collapsedFootprint()
		}
		return Size{W: container.W, H: h}
	}
	return container
}

func (l *DockLayout) collapsedFootprint() float64 {
	if l.CollapsedSize > 0 {
		return l.CollapsedSize
	}
	return CollapsedFootprint
}

// IsCollapsed reports whether an edge region is collapsed. Center and
// floating never collapse.
func (l *DockLayout) IsCollapsed(region Region) bool {
	return l.CollapsedEdges[region]
}

// ToggleCollapse flips the collapse flag of an edge region. The stored edge
// size is untouched, so toggling twice restores the original footprint.
// No-op for non-edge regions.
func (l *DockLayout) ToggleCollapse(region Region) {
	if !region.IsEdge() {
		return
	}
	l.CollapsedEdges[region] = !l.CollapsedEdges[region]
}

// FindPanelGroup returns the group containing the panel, searching the
// region trees in fixed order (left, right, top, bottom, center) and then
// the floating list. A minimized panel is reported as not found: minimized
// panels are bare panels, not grouped.
func (l *DockLayout) FindPanelGroup(id PanelID) *PanelGroup {
	g, _ := l.LocatePanel(id)
	return g
}

// LocatePanel returns the owning group and its region, or (nil, "") when
// the panel is not attached to any tree or floating group.
func (l *DockLayout) LocatePanel(id PanelID) (*PanelGroup, Region) {
	for _, region := range TreeRegions {
		if g := l.Node(region).FindGroup(id); g != nil {
			return g, region
		}
	}
	for _, g := range l.FloatingGroups {
		if g.Contains(id) {
			return g, RegionFloating
		}
	}
	return nil, ""
}

// CollectGroups returns the panel groups under a region in pre-order.
// For floating, the floating list order is used.
func (l *DockLayout) CollectGroups(region Region) []*PanelGroup {
	if region == RegionFloating {
		return append([]*PanelGroup(nil), l.FloatingGroups...)
	}
	return l.Node(region).Groups()
}

// AllPanelGroups flattens every attached group in region order (left,
// right, top, bottom, center) followed by the floating list. This ordering
// is authoritative for tab and keyboard navigation.
func (l *DockLayout) AllPanelGroups() []*PanelGroup {
	var groups []*PanelGroup
	for _, region := range TreeRegions {
		groups = append(groups, l.Node(region).Groups()...)
	}
	groups = append(groups, l.FloatingGroups...)
	return groups
}

// AllPanels flattens every attached panel in the authoritative navigation
// order. Minimized panels are not part of the navigation order.
func (l *DockLayout) AllPanels() []*Panel {
	var panels []*Panel
	for _, g := range l.AllPanelGroups() {
		panels = append(panels, g.Panels...)
	}
	return panels
}

// IsMinimized reports whether the panel sits in the minimized list.
func (l *DockLayout) IsMinimized(id PanelID) bool {
	for _, p := range l.MinimizedPanels {
		if p.ID == id {
			return true
		}
	}
	return false
}

// MinimizedPanel returns the minimized panel with the given ID, or nil.
func (l *DockLayout) MinimizedPanel(id PanelID) *Panel {
	for _, p := range l.MinimizedPanels {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// FloatingGroup returns the floating group with the given ID, or nil.
func (l *DockLayout) FloatingGroup(id GroupID) *PanelGroup {
	for _, g := range l.FloatingGroups {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// PanelCount returns the total number of panels tracked by the layout,
// including minimized ones.
func (l *DockLayout) PanelCount() int {
	count := len(l.MinimizedPanels)
	for _, g := range l.AllPanelGroups() {
		count += len(g.Panels)
	}
	return count
}
