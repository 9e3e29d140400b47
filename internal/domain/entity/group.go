package entity

// GroupID uniquely identifies a panel group.
type GroupID string

// PanelGroup is an ordered, tabbed collection of panels sharing one tree slot.
// A group is never attached to the layout while empty; the owning slot
// reverts to an empty node when the last panel is removed.
type PanelGroup struct {
	ID              GroupID
	Panels          []*Panel // tab order
	PreferredRegion Region
	ActiveIndex     int // -1 when empty
}

// NewPanelGroup creates a group seeded with the given panels.
func NewPanelGroup(id GroupID, region Region, panels ...*Panel) *PanelGroup {
	g := &PanelGroup{
		ID:              id,
		PreferredRegion: region,
		ActiveIndex:     -1,
	}
	for _, p := range panels {
		g.Append(p)
	}
	return g
}

// Append adds a panel at the end of the tab order and makes it active.
func (g *PanelGroup) Append(p *Panel) {
	if p == nil {
		return
	}
	g.Panels = append(g.Panels, p)
	g.ActiveIndex = len(g.Panels) - 1
}

// Remove detaches the panel with the given ID and returns it, or nil if the
// panel is not in this group. Removing the active panel resets ActiveIndex
// to the nearest valid index, or -1 if the group becomes empty.
func (g *PanelGroup) Remove(id PanelID) *Panel {
	idx := g.IndexOf(id)
	if idx < 0 {
		return nil
	}
	p := g.Panels[idx]
	g.Panels = append(g.Panels[:idx], g.Panels[idx+1:]...)

	switch {
	case len(g.Panels) == 0:
		g.ActiveIndex = -1
	case g.ActiveIndex > idx:
		g.ActiveIndex--
	case g.ActiveIndex >= len(g.Panels):
		g.ActiveIndex = len(g.Panels) - 1
	}
	return p
}

// IndexOf returns the tab index of the panel, or -1 if absent.
func (g *PanelGroup) IndexOf(id PanelID) int {
	for i, p := range g.Panels {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether the panel is in this group.
func (g *PanelGroup) Contains(id PanelID) bool {
	return g.IndexOf(id) >= 0
}

// ActivePanel returns the currently active panel, or nil for an empty group.
func (g *PanelGroup) ActivePanel() *Panel {
	if g.ActiveIndex < 0 || g.ActiveIndex >= len(g.Panels) {
		return nil
	}
	return g.Panels[g.ActiveIndex]
}

// SetActive makes the panel with the given ID the active tab.
// Returns false if the panel is not in this group.
func (g *PanelGroup) SetActive(id PanelID) bool {
	idx := g.IndexOf(id)
	if idx < 0 {
		return false
	}
	g.ActiveIndex = idx
	return true
}

// IsEmpty reports whether the group holds no panels.
func (g *PanelGroup) IsEmpty() bool {
	return len(g.Panels) == 0
}
