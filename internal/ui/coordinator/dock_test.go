package coordinator

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierhq/atelier/internal/application/usecase"
	"github.com/atelierhq/atelier/internal/domain/entity"
)

func newTestCoordinator() *DockCoordinator {
	n := 0
	return NewDockCoordinator(DockCoordinatorConfig{
		GenerateID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	})
}

func TestOpenPublishesEvent(t *testing.T) {
	c := newTestCoordinator()
	ctx := context.Background()

	var events []LayoutEvent
	c.Subscribe(func(e LayoutEvent) { events = append(events, e) })

	panel := c.CreatePanel("files", "Files", "folder", entity.RegionLeft)
	require.NoError(t, c.OpenPanel(ctx, panel, entity.RegionLeft))

	require.Len(t, events, 1)
	assert.Equal(t, EventPanelOpened, events[0].Kind)
	assert.Equal(t, entity.PanelID("files"), events[0].PanelID)
	assert.Equal(t, uint64(1), events[0].Revision)
	assert.Equal(t, uint64(1), c.Revision())
}

func TestCreatePanelGeneratesID(t *testing.T) {
	c := newTestCoordinator()
	p := c.CreatePanel("", "Scratch", "", entity.RegionBottom)
	assert.Equal(t, entity.PanelID("id-1"), p.ID)
	assert.Equal(t, entity.RegionBottom, p.PreferredRegion)
}

func TestVerbsAgainstUnknownIDAreSilentNoops(t *testing.T) {
	c := newTestCoordinator()
	ctx := context.Background()

	fired := 0
	c.Subscribe(func(LayoutEvent) { fired++ })

	require.NoError(t, c.MovePanel(ctx, "ghost", entity.RegionLeft))
	require.NoError(t, c.MinimizePanel(ctx, "ghost"))
	require.NoError(t, c.RestorePanel(ctx, "ghost"))
	require.NoError(t, c.FloatPanel(ctx, "ghost", entity.FloatGeometry{}))
	require.NoError(t, c.DockPanel(ctx, "ghost", entity.RegionRight))
	c.ActivatePanel(ctx, "ghost")
	c.ToggleMaximize(ctx, "ghost")

	assert.Equal(t, 0, fired, "no-op verbs must not publish events")
	assert.Equal(t, uint64(0), c.Revision())
	assert.Equal(t, 0, c.Layout().PanelCount())
}

func TestToggleCollapse(t *testing.T) {
	c := newTestCoordinator()
	ctx := context.Background()

	c.ToggleCollapse(ctx, entity.RegionLeft)
	assert.True(t, c.Layout().IsCollapsed(entity.RegionLeft))

	c.ToggleCollapse(ctx, entity.RegionCenter)
	assert.False(t, c.Layout().IsCollapsed(entity.RegionCenter))
	assert.Equal(t, uint64(1), c.Revision(), "center toggle must not commit a mutation")
}

func TestMinimizeRestoreFlow(t *testing.T) {
	c := newTestCoordinator()
	ctx := context.Background()

	require.NoError(t, c.OpenPanel(ctx, c.CreatePanel("a", "A", "", ""), entity.RegionLeft))
	require.NoError(t, c.OpenPanel(ctx, c.CreatePanel("b", "B", "", ""), entity.RegionLeft))
	require.NoError(t, c.MinimizePanel(ctx, "b"))

	assert.True(t, c.Layout().IsMinimized("b"))
	require.NoError(t, c.RestorePanel(ctx, "b"))
	assert.False(t, c.Layout().IsMinimized("b"))

	group := c.Layout().FindPanelGroup("b")
	require.NotNil(t, group)
	assert.True(t, group.Contains("a"), "restored panel should rejoin its region group")
}

func TestActivateCycle(t *testing.T) {
	c := newTestCoordinator()
	ctx := context.Background()

	for _, id := range []entity.PanelID{"a", "b", "c"} {
		require.NoError(t, c.OpenPanel(ctx, c.CreatePanel(id, string(id), "", ""), entity.RegionCenter))
	}
	require.Equal(t, entity.PanelID("c"), c.Layout().ActivePanelID)

	c.ActivateNext(ctx)
	assert.Equal(t, entity.PanelID("a"), c.Layout().ActivePanelID)
	c.ActivatePrev(ctx)
	assert.Equal(t, entity.PanelID("c"), c.Layout().ActivePanelID)
}

func TestToggleMaximize(t *testing.T) {
	c := newTestCoordinator()
	ctx := context.Background()

	require.NoError(t, c.OpenPanel(ctx, c.CreatePanel("a", "A", "", ""), entity.RegionCenter))
	c.ToggleMaximize(ctx, "a")
	assert.Equal(t, entity.PanelID("a"), c.MaximizedPanel())

	group := c.Layout().FindPanelGroup("a")
	require.NotNil(t, group)
	assert.Equal(t, entity.StateMaximized, group.Panels[0].DisplayState)

	c.ToggleMaximize(ctx, "a")
	assert.Equal(t, entity.PanelID(""), c.MaximizedPanel())
	assert.Equal(t, entity.StateExpanded, group.Panels[0].DisplayState)
}

func TestStructuralVerbClearsMaximize(t *testing.T) {
	c := newTestCoordinator()
	ctx := context.Background()

	require.NoError(t, c.OpenPanel(ctx, c.CreatePanel("a", "A", "", ""), entity.RegionCenter))
	c.ToggleMaximize(ctx, "a")
	require.NoError(t, c.MovePanel(ctx, "a", entity.RegionRight))
	assert.Equal(t, entity.PanelID(""), c.MaximizedPanel())
}

func TestResizeFlow(t *testing.T) {
	c := newTestCoordinator()
	ctx := context.Background()

	require.NoError(t, c.OpenPanel(ctx, c.CreatePanel("a", "A", "", ""), entity.RegionCenter))
	require.NoError(t, c.SplitRegion(ctx, entity.RegionCenter, entity.OrientationHorizontal, 0.5, c.CreatePanel("b", "B", "", "")))

	node := c.Layout().Node(entity.RegionCenter)
	require.True(t, node.IsSplit())
	splitID := node.Split.ID

	c.BeginResize(ctx, splitID)
	assert.True(t, node.Split.IsResizing)

	c.UpdateResize(ctx, splitID, 0.05)
	assert.Equal(t, entity.DefaultMinRatio, node.Split.Ratio)

	c.EndResize(ctx, splitID)
	assert.False(t, node.Split.IsResizing)
}

func TestDragCancelRestoresIdleWithoutMutation(t *testing.T) {
	c := newTestCoordinator()
	ctx := context.Background()

	require.NoError(t, c.OpenPanel(ctx, c.CreatePanel("a", "A", "", ""), entity.RegionLeft))
	before := c.Snapshot("pre")
	revBefore := c.Revision()

	c.PointerDown("a", 0, 0)
	c.PointerMove(30, 0)
	c.EnterDropZone(ctx, usecase.DropZone{Region: entity.RegionBottom})
	require.Equal(t, usecase.DropPending, c.DragState())

	c.CancelDrag()
	assert.Equal(t, usecase.DragIdle, c.DragState())
	assert.Equal(t, revBefore, c.Revision())

	after := c.Snapshot("pre")
	after.SavedAt = before.SavedAt
	assert.Equal(t, before, after)
}

func TestDropCommitsAndPublishes(t *testing.T) {
	c := newTestCoordinator()
	ctx := context.Background()

	require.NoError(t, c.OpenPanel(ctx, c.CreatePanel("a", "A", "", ""), entity.RegionLeft))

	var last LayoutEvent
	c.Subscribe(func(e LayoutEvent) { last = e })

	c.PointerDown("a", 0, 0)
	c.PointerMove(30, 0)
	c.EnterDropZone(ctx, usecase.DropZone{Region: entity.RegionBottom})
	require.NoError(t, c.Drop(ctx))

	assert.Equal(t, EventPanelMoved, last.Kind)
	assert.Equal(t, entity.RegionBottom, last.Region)
	assert.True(t, c.Layout().Node(entity.RegionBottom).IsGroup())
}

func TestReplaceLayout(t *testing.T) {
	c := newTestCoordinator()
	ctx := context.Background()

	require.NoError(t, c.OpenPanel(ctx, c.CreatePanel("a", "A", "", ""), entity.RegionLeft))
	snap := c.Snapshot("saved")

	c.ReplaceLayout(entity.LayoutFromSnapshot(snap))
	assert.Equal(t, 1, c.Layout().PanelCount())
	assert.NotNil(t, c.Layout().FindPanelGroup("a"))
}

func TestDropIntoSplitZonePublishesSplitEvent(t *testing.T) {
	c := newTestCoordinator()
	ctx := context.Background()

	require.NoError(t, c.OpenPanel(ctx, c.CreatePanel("a", "A", "", ""), entity.RegionCenter))
	require.NoError(t, c.OpenPanel(ctx, c.CreatePanel("b", "B", "", ""), entity.RegionLeft))

	var last LayoutEvent
	c.Subscribe(func(e LayoutEvent) { last = e })

	c.PointerDown("b", 0, 0)
	c.PointerMove(30, 0)
	c.EnterDropZone(ctx, usecase.DropZone{
		Region:      entity.RegionCenter,
		Split:       true,
		Orientation: entity.OrientationVertical,
		Ratio:       0.5,
	})
	require.NoError(t, c.Drop(ctx))

	node := c.Layout().Node(entity.RegionCenter)
	require.True(t, node.IsSplit())
	assert.Equal(t, EventRegionSplit, last.Kind)
	assert.Equal(t, node.Split.ID, last.SplitID)
	assert.Equal(t, entity.PanelID("b"), last.PanelID)
}

func TestDropToFloatingPublishesFloatEvent(t *testing.T) {
	c := newTestCoordinator()
	ctx := context.Background()

	require.NoError(t, c.OpenPanel(ctx, c.CreatePanel("a", "A", "", ""), entity.RegionLeft))

	var last LayoutEvent
	c.Subscribe(func(e LayoutEvent) { last = e })

	c.PointerDown("a", 0, 0)
	c.PointerMove(30, 0)
	c.EnterDropZone(ctx, usecase.DropZone{Region: entity.RegionFloating})
	require.NoError(t, c.Drop(ctx))

	assert.Equal(t, EventPanelFloated, last.Kind)
	assert.Equal(t, entity.RegionFloating, last.Region)
	require.Len(t, c.Layout().FloatingGroups, 1)
}

func TestSetDragThreshold(t *testing.T) {
	c := newTestCoordinator()
	ctx := context.Background()

	require.NoError(t, c.OpenPanel(ctx, c.CreatePanel("a", "A", "", ""), entity.RegionLeft))
	c.SetDragThreshold(40)

	c.PointerDown("a", 0, 0)
	c.PointerMove(30, 0)
	assert.Equal(t, usecase.DragIdle, c.DragState())

	c.PointerMove(45, 0)
	assert.Equal(t, usecase.DragActive, c.DragState())
	c.CancelDrag()
}

func TestSetRatioBoundsReclampsExistingSplits(t *testing.T) {
	c := newTestCoordinator()
	ctx := context.Background()

	require.NoError(t, c.OpenPanel(ctx, c.CreatePanel("a", "A", "", ""), entity.RegionCenter))
	require.NoError(t, c.SplitRegion(ctx, entity.RegionCenter, entity.OrientationHorizontal, 0.15, c.CreatePanel("b", "B", "", "")))

	node := c.Layout().Node(entity.RegionCenter)
	require.True(t, node.IsSplit())
	require.Equal(t, 0.15, node.Split.Ratio)

	c.SetRatioBounds(0.25, 0.75)
	assert.Equal(t, 0.25, node.Split.Ratio, "existing splits should be re-clamped into the new bounds")

	c.UpdateResize(ctx, node.Split.ID, 0.95)
	assert.Equal(t, 0.75, node.Split.Ratio)
}

func TestSetCollapsedSizeSurvivesReplaceLayout(t *testing.T) {
	c := newTestCoordinator()
	ctx := context.Background()
	container := entity.Size{W: 1200, H: 800}

	require.NoError(t, c.OpenPanel(ctx, c.CreatePanel("a", "A", "", ""), entity.RegionLeft))
	c.SetCollapsedSize(32)
	c.ToggleCollapse(ctx, entity.RegionLeft)
	assert.Equal(t, 32.0, c.Layout().Size(entity.RegionLeft, container).W)

	snap := c.Snapshot("saved")
	c.ReplaceLayout(entity.LayoutFromSnapshot(snap))
	assert.Equal(t, 32.0, c.Layout().Size(entity.RegionLeft, container).W,
		"collapsed footprint should carry over to the restored layout")
}
