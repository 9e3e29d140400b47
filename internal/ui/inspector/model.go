package inspector

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atelierhq/atelier/internal/domain/entity"
	"github.com/atelierhq/atelier/internal/ui/coordinator"
)

// SaveFunc persists the current layout snapshot. Wired by the CLI.
type SaveFunc func(ctx context.Context, snap *entity.DockSnapshot) error

// ConfigReloadedMsg carries retuned dock settings after a config file
// change. Sent into the program by the config watcher so the values are
// applied on the update loop.
type ConfigReloadedMsg struct {
	DragThreshold float64
	MinSplitRatio float64
	MaxSplitRatio float64
	CollapsedSize float64
}

// Model is the bubbletea model for the layout inspector.
type Model struct {
	ctx   context.Context
	coord *coordinator.DockCoordinator
	keys  KeyMap
	help  help.Model
	save  SaveFunc

	width  int
	height int
	status string
	nextID int
}

// NewModel creates an inspector over the given coordinator.
func NewModel(ctx context.Context, coord *coordinator.DockCoordinator, save SaveFunc) Model {
	return Model{
		ctx:    ctx,
		coord:  coord,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		save:   save,
		status: "ready",
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case ConfigReloadedMsg:
		m.coord.SetDragThreshold(msg.DragThreshold)
		m.coord.SetRatioBounds(msg.MinSplitRatio, msg.MaxSplitRatio)
		m.coord.SetCollapsedSize(msg.CollapsedSize)
		m.status = "config reloaded"
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	layout := m.coord.Layout()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.NextPanel):
		m.coord.ActivateNext(m.ctx)
		m.status = fmt.Sprintf("active: %s", layout.ActivePanelID)

	case key.Matches(msg, m.keys.PrevPanel):
		m.coord.ActivatePrev(m.ctx)
		m.status = fmt.Sprintf("active: %s", layout.ActivePanelID)

	case key.Matches(msg, m.keys.Minimize):
		id := layout.ActivePanelID
		if err := m.coord.MinimizePanel(m.ctx, id); err != nil {
			m.status = err.Error()
		} else {
			m.status = fmt.Sprintf("minimized %s", id)
		}

	case key.Matches(msg, m.keys.Restore):
		if len(layout.MinimizedPanels) == 0 {
			m.status = "nothing to restore"
			break
		}
		id := layout.MinimizedPanels[0].ID
		if err := m.coord.RestorePanel(m.ctx, id); err != nil {
			m.status = err.Error()
		} else {
			m.status = fmt.Sprintf("restored %s", id)
		}

	case key.Matches(msg, m.keys.Float):
		id := layout.ActivePanelID
		if err := m.coord.FloatPanel(m.ctx, id, entity.FloatGeometry{}); err != nil {
			m.status = err.Error()
		} else {
			m.status = fmt.Sprintf("floated %s", id)
		}

	case key.Matches(msg, m.keys.Dock):
		id := layout.ActivePanelID
		if err := m.coord.DockPanel(m.ctx, id, entity.RegionCenter); err != nil {
			m.status = err.Error()
		} else {
			m.status = fmt.Sprintf("docked %s to center", id)
		}

	case key.Matches(msg, m.keys.Split):
		m.nextID++
		region := m.activeRegion()
		panel := m.coord.CreatePanel("", fmt.Sprintf("Scratch %d", m.nextID), "", region)
		if err := m.coord.SplitRegion(m.ctx, region, entity.OrientationHorizontal, 0.5, panel); err != nil {
			m.status = err.Error()
		} else {
			m.status = fmt.Sprintf("split %s", region)
		}

	case key.Matches(msg, m.keys.Maximize):
		m.coord.ToggleMaximize(m.ctx, layout.ActivePanelID)
		if m.coord.MaximizedPanel() != "" {
			m.status = fmt.Sprintf("maximized %s", m.coord.MaximizedPanel())
		} else {
			m.status = "maximize cleared"
		}

	case key.Matches(msg, m.keys.GrowSplit):
		m.adjustSplit(0.05)

	case key.Matches(msg, m.keys.ShrinkSplit):
		m.adjustSplit(-0.05)

	case key.Matches(msg, m.keys.ToggleLeft):
		m.coord.ToggleCollapse(m.ctx, entity.RegionLeft)
	case key.Matches(msg, m.keys.ToggleRight):
		m.coord.ToggleCollapse(m.ctx, entity.RegionRight)
	case key.Matches(msg, m.keys.ToggleTop):
		m.coord.ToggleCollapse(m.ctx, entity.RegionTop)
	case key.Matches(msg, m.keys.ToggleBottom):
		m.coord.ToggleCollapse(m.ctx, entity.RegionBottom)

	case key.Matches(msg, m.keys.Save):
		if m.save == nil {
			m.status = "saving disabled"
			break
		}
		if err := m.save(m.ctx, m.coord.Snapshot("default")); err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
		} else {
			m.status = "layout saved"
		}
	}

	return m, nil
}

// activeRegion returns the region holding the active panel, defaulting
// to center.
func (m Model) activeRegion() entity.Region {
	layout := m.coord.Layout()
	if _, region := layout.LocatePanel(layout.ActivePanelID); region.HasTree() {
		return region
	}
	return entity.RegionCenter
}

// adjustSplit nudges the ratio of the split at the active region's root.
func (m *Model) adjustSplit(delta float64) {
	node := m.coord.Layout().Node(m.activeRegion())
	if !node.IsSplit() {
		m.status = "active region is not split"
		return
	}
	m.coord.UpdateResize(m.ctx, node.Split.ID, node.Split.Ratio+delta)
	m.status = fmt.Sprintf("ratio %.2f", node.Split.Ratio)
}
