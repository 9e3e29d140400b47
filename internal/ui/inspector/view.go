package inspector

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/atelierhq/atelier/internal/domain/entity"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

	regionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	regionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

	activeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	collapsedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
)

// View implements tea.Model.
func (m Model) View() string {
	layout := m.coord.Layout()

	var b strings.Builder
	b.WriteString(titleStyle.Render("atelier layout inspector"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  rev %d  drag %s", m.coord.Revision(), m.coord.DragState())))
	b.WriteString("\n\n")

	for _, region := range entity.TreeRegions {
		b.WriteString(m.renderRegion(layout, region))
		b.WriteString("\n")
	}
	b.WriteString(m.renderFloating(layout))
	b.WriteString(m.renderMinimized(layout))

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderRegion(layout *entity.DockLayout, region entity.Region) string {
	header := regionHeaderStyle.Render(string(region))
	if layout.IsCollapsed(region) {
		header += collapsedStyle.Render(" (collapsed)")
	}
	if size, ok := layout.EdgeSizes[region]; ok {
		header += mutedStyle.Render(fmt.Sprintf(" %.0fpx", size))
	}

	node := layout.Node(region)
	body := m.renderNode(layout, node, "")
	if node.IsEmpty() {
		body = mutedStyle.Render("empty")
	}
	return regionStyle.Render(header + "\n" + body)
}

func (m Model) renderNode(layout *entity.DockLayout, node *entity.LayoutNode, indent string) string {
	switch {
	case node.IsGroup():
		return indent + m.renderGroup(layout, node.Group)
	case node.IsSplit():
		s := node.Split
		label := fmt.Sprintf("%ssplit %s %s %.2f", indent, s.ID, s.Orientation, s.Ratio)
		if s.IsResizing {
			label += collapsedStyle.Render(" resizing")
		}
		return label + "\n" +
			m.renderNode(layout, s.First, indent+"  ") + "\n" +
			m.renderNode(layout, s.Second, indent+"  ")
	default:
		return indent + mutedStyle.Render("empty")
	}
}

func (m Model) renderGroup(layout *entity.DockLayout, group *entity.PanelGroup) string {
	tabs := make([]string, 0, len(group.Panels))
	for i, p := range group.Panels {
		label := string(p.ID)
		if p.Title != "" {
			label = fmt.Sprintf("%s(%s)", p.ID, p.Title)
		}
		switch {
		case p.ID == layout.ActivePanelID:
			label = activeStyle.Render("*" + label)
		case i == group.ActiveIndex:
			label = "+" + label
		}
		tabs = append(tabs, label)
	}
	return fmt.Sprintf("[%s] %s", group.ID, strings.Join(tabs, " | "))
}

func (m Model) renderFloating(layout *entity.DockLayout) string {
	if len(layout.FloatingGroups) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(regionHeaderStyle.Render("floating"))
	b.WriteString("\n")
	for _, g := range layout.FloatingGroups {
		geo := layout.FloatingGeometry[g.ID]
		b.WriteString(fmt.Sprintf("  %s @ (%.0f,%.0f) %.0fx%.0f\n",
			m.renderGroup(layout, g), geo.X, geo.Y, geo.W, geo.H))
	}
	return b.String()
}

func (m Model) renderMinimized(layout *entity.DockLayout) string {
	if len(layout.MinimizedPanels) == 0 {
		return ""
	}
	ids := make([]string, 0, len(layout.MinimizedPanels))
	for _, p := range layout.MinimizedPanels {
		ids = append(ids, string(p.ID))
	}
	return regionHeaderStyle.Render("minimized") + " " + mutedStyle.Render(strings.Join(ids, ", ")) + "\n"
}
