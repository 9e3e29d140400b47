package inspector

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierhq/atelier/internal/domain/entity"
	"github.com/atelierhq/atelier/internal/ui/coordinator"
)

func newFixture(t *testing.T) (Model, *coordinator.DockCoordinator) {
	t.Helper()
	n := 0
	coord := coordinator.NewDockCoordinator(coordinator.DockCoordinatorConfig{
		GenerateID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	})
	ctx := context.Background()
	require.NoError(t, coord.OpenPanel(ctx, coord.CreatePanel("editor", "Editor", "", ""), entity.RegionCenter))
	require.NoError(t, coord.OpenPanel(ctx, coord.CreatePanel("files", "Files", "", ""), entity.RegionLeft))
	return NewModel(ctx, coord, nil), coord
}

func keyMsg(s string) tea.KeyMsg {
	if s == "tab" {
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMinimizeKeyMinimizesActivePanel(t *testing.T) {
	m, coord := newFixture(t)

	updated, _ := m.Update(keyMsg("m"))
	m = updated.(Model)

	assert.True(t, coord.Layout().IsMinimized("files"))
	assert.Contains(t, m.status, "minimized")
}

func TestRestoreKeyRestoresFirstMinimized(t *testing.T) {
	m, coord := newFixture(t)

	updated, _ := m.Update(keyMsg("m"))
	m = updated.(Model)
	updated, _ = m.Update(keyMsg("r"))
	m = updated.(Model)

	assert.False(t, coord.Layout().IsMinimized("files"))
	assert.NotNil(t, coord.Layout().FindPanelGroup("files"))
}

func TestSplitKeySplitsActiveRegion(t *testing.T) {
	m, coord := newFixture(t)

	updated, _ := m.Update(keyMsg("s"))
	_ = updated

	node := coord.Layout().Node(entity.RegionLeft)
	assert.True(t, node.IsSplit(), "active region should be split")
}

func TestCollapseKeys(t *testing.T) {
	m, coord := newFixture(t)

	updated, _ := m.Update(keyMsg("1"))
	m = updated.(Model)
	assert.True(t, coord.Layout().IsCollapsed(entity.RegionLeft))

	updated, _ = m.Update(keyMsg("1"))
	_ = updated
	assert.False(t, coord.Layout().IsCollapsed(entity.RegionLeft))
}

func TestTabCyclesActivePanel(t *testing.T) {
	m, coord := newFixture(t)
	require.Equal(t, entity.PanelID("files"), coord.Layout().ActivePanelID)

	updated, _ := m.Update(keyMsg("tab"))
	_ = updated
	assert.Equal(t, entity.PanelID("editor"), coord.Layout().ActivePanelID)
}

func TestViewRendersRegionsAndPanels(t *testing.T) {
	m, _ := newFixture(t)

	view := m.View()
	for _, want := range []string{"left", "center", "editor", "files"} {
		assert.True(t, strings.Contains(view, want), "view should mention %q", want)
	}
}

func TestQuitKeyReturnsQuitCmd(t *testing.T) {
	m, _ := newFixture(t)
	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestConfigReloadedMsgRetunesCoordinator(t *testing.T) {
	m, coord := newFixture(t)

	updated, _ := m.Update(ConfigReloadedMsg{
		DragThreshold: 20,
		MinSplitRatio: 0.3,
		MaxSplitRatio: 0.7,
		CollapsedSize: 30,
	})
	m = updated.(Model)
	assert.Equal(t, "config reloaded", m.status)

	coord.Layout().ToggleCollapse(entity.RegionLeft)
	got := coord.Layout().Size(entity.RegionLeft, entity.Size{W: 1200, H: 800})
	assert.Equal(t, 30.0, got.W, "reloaded collapsed size should reach the layout")
}
