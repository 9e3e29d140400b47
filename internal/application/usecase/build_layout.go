package usecase

import (
	"github.com/atelierhq/atelier/internal/domain/entity"
)

// LayoutBuilder constructs a populated DockLayout declaratively. Used for
// default layouts and for materializing a persisted description. Panels
// with an ID already placed by an earlier call are dropped silently, so a
// built layout never violates uniqueness.
type LayoutBuilder struct {
	layout      *entity.DockLayout
	idGenerator IDGenerator
	seen        map[entity.PanelID]bool
	minRatio    float64
	maxRatio    float64
}

// NewLayoutBuilder creates a builder over a fresh empty layout.
func NewLayoutBuilder(idGenerator IDGenerator) *LayoutBuilder {
	return &LayoutBuilder{
		layout:      entity.NewDockLayout(),
		idGenerator: idGenerator,
		seen:        make(map[entity.PanelID]bool),
	}
}

// RatioBounds sets the ratio bounds applied to splits built afterwards.
// Invalid bounds fall back to the entity defaults.
func (b *LayoutBuilder) RatioBounds(min, max float64) *LayoutBuilder {
	b.minRatio = min
	b.maxRatio = max
	return b
}

// Region sets a single-group slot and its edge size. A size of zero keeps
// the region default. Calling Region twice for the same region replaces
// the earlier slot.
func (b *LayoutBuilder) Region(region entity.Region, size float64, panels ...*entity.Panel) *LayoutBuilder {
	if !region.HasTree() {
		return b
	}
	if size > 0 && region.IsEdge() {
		b.layout.EdgeSizes[region] = size
	}
	group := b.newGroup(region, panels)
	if group == nil {
		b.layout.SetNode(region, entity.EmptyNode())
		return b
	}
	b.layout.SetNode(region, entity.GroupNode(group))
	return b
}

// RegionSplit builds one split node directly under a region: two groups
// side by side at the given ratio. A side with no panels degrades the
// split to a single group, keeping the tree minimal.
func (b *LayoutBuilder) RegionSplit(region entity.Region, orientation entity.Orientation, ratio, size float64, first, second []*entity.Panel) *LayoutBuilder {
	if !region.HasTree() {
		return b
	}
	if size > 0 && region.IsEdge() {
		b.layout.EdgeSizes[region] = size
	}

	firstGroup := b.newGroup(region, first)
	secondGroup := b.newGroup(region, second)

	switch {
	case firstGroup == nil && secondGroup == nil:
		b.layout.SetNode(region, entity.EmptyNode())
	case secondGroup == nil:
		b.layout.SetNode(region, entity.GroupNode(firstGroup))
	case firstGroup == nil:
		b.layout.SetNode(region, entity.GroupNode(secondGroup))
	default:
		split := entity.NewSplitNode(b.idGenerator(), orientation,
			entity.GroupNode(firstGroup), entity.GroupNode(secondGroup), ratio)
		if b.minRatio > 0 || b.maxRatio > 0 {
			split.SetRatioBounds(b.minRatio, b.maxRatio)
		}
		b.layout.SetNode(region, entity.SplitBranch(split))
	}
	return b
}

// Floating adds a floating group at the given geometry.
func (b *LayoutBuilder) Floating(geometry entity.FloatGeometry, panels ...*entity.Panel) *LayoutBuilder {
	group := b.newGroup(entity.RegionFloating, panels)
	if group == nil {
		return b
	}
	for _, p := range group.Panels {
		p.DisplayState = entity.StateFloating
	}
	if geometry == (entity.FloatGeometry{}) {
		geometry = entity.DefaultFloatGeometry
	}
	b.layout.FloatingGroups = append(b.layout.FloatingGroups, group)
	b.layout.FloatingGeometry[group.ID] = geometry
	return b
}

// Minimized adds panels to the minimized list.
func (b *LayoutBuilder) Minimized(panels ...*entity.Panel) *LayoutBuilder {
	for _, p := range panels {
		if p == nil || b.seen[p.ID] {
			continue
		}
		b.seen[p.ID] = true
		p.DisplayState = entity.StateMinimized
		b.layout.MinimizedPanels = append(b.layout.MinimizedPanels, p)
	}
	return b
}

// Collapsed marks an edge region as collapsed.
func (b *LayoutBuilder) Collapsed(region entity.Region) *LayoutBuilder {
	if region.IsEdge() {
		b.layout.CollapsedEdges[region] = true
	}
	return b
}

// Active sets the initially active panel. Ignored at Build when the ID
// was never placed.
func (b *LayoutBuilder) Active(id entity.PanelID) *LayoutBuilder {
	b.layout.ActivePanelID = id
	return b
}

// Build returns the finished layout. The builder must not be reused.
func (b *LayoutBuilder) Build() *entity.DockLayout {
	if b.layout.ActivePanelID != "" && !b.seen[b.layout.ActivePanelID] {
		b.layout.ActivePanelID = ""
	}
	if b.layout.ActivePanelID == "" {
		if panels := b.layout.AllPanels(); len(panels) > 0 {
			b.layout.ActivePanelID = panels[0].ID
		}
	}
	return b.layout
}

func (b *LayoutBuilder) newGroup(region entity.Region, panels []*entity.Panel) *entity.PanelGroup {
	kept := make([]*entity.Panel, 0, len(panels))
	for _, p := range panels {
		if p == nil || b.seen[p.ID] {
			continue
		}
		b.seen[p.ID] = true
		p.PreferredRegion = region
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		return nil
	}
	return entity.NewPanelGroup(entity.GroupID(b.idGenerator()), region, kept...)
}
