package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierhq/atelier/internal/domain/entity"
)

func newDragFixture(t *testing.T) (*ManageDockUseCase, *DragSession, *entity.DockLayout) {
	t.Helper()
	uc := NewManageDockUseCase(testIDGenerator())
	layout := entity.NewDockLayout()
	ctx := context.Background()

	_, err := uc.Open(ctx, OpenPanelInput{Layout: layout, Panel: entity.NewPanel("a", "A"), Region: entity.RegionLeft})
	require.NoError(t, err)
	_, err = uc.Open(ctx, OpenPanelInput{Layout: layout, Panel: entity.NewPanel("b", "B"), Region: entity.RegionCenter})
	require.NoError(t, err)

	return uc, NewDragSession(uc, 8), layout
}

func TestDragThreshold(t *testing.T) {
	_, session, layout := newDragFixture(t)

	session.PointerDown(layout, "a", 100, 100)
	assert.Equal(t, DragIdle, session.State())

	session.PointerMove(103, 103)
	assert.Equal(t, DragIdle, session.State(), "movement under the threshold must not start a drag")

	session.PointerMove(100, 112)
	assert.Equal(t, DragActive, session.State())
	assert.Equal(t, entity.PanelID("a"), session.PanelID())
	assert.Equal(t, entity.RegionLeft, session.Origin())
}

func TestDragUnknownPanelIgnored(t *testing.T) {
	_, session, layout := newDragFixture(t)

	session.PointerDown(layout, "ghost", 0, 0)
	session.PointerMove(50, 50)
	assert.Equal(t, DragIdle, session.State())
	assert.Equal(t, entity.PanelID(""), session.PanelID())
}

func TestDragDropCommitsMove(t *testing.T) {
	_, session, layout := newDragFixture(t)
	ctx := context.Background()

	session.PointerDown(layout, "a", 0, 0)
	session.PointerMove(20, 0)
	require.NoError(t, session.EnterDropZone(DropZone{Region: entity.RegionBottom}))
	assert.Equal(t, DropPending, session.State())

	require.NoError(t, session.Drop(ctx, layout))
	assert.Equal(t, DragIdle, session.State())

	bottom := layout.Node(entity.RegionBottom)
	require.True(t, bottom.IsGroup())
	assert.True(t, bottom.Group.Contains("a"))
	assert.True(t, layout.Node(entity.RegionLeft).IsEmpty())
}

func TestDragDropCommitsSplit(t *testing.T) {
	_, session, layout := newDragFixture(t)
	ctx := context.Background()

	session.PointerDown(layout, "a", 0, 0)
	session.PointerMove(20, 0)
	require.NoError(t, session.EnterDropZone(DropZone{
		Region:      entity.RegionCenter,
		Split:       true,
		Orientation: entity.OrientationVertical,
		Ratio:       0.3,
	}))
	require.NoError(t, session.Drop(ctx, layout))

	center := layout.Node(entity.RegionCenter)
	require.True(t, center.IsSplit())
	assert.True(t, center.Split.First.Group.Contains("b"))
	assert.True(t, center.Split.Second.Group.Contains("a"))
	assert.InDelta(t, 0.3, center.Split.Ratio, 1e-9)
}

func TestDragCancelLeavesLayoutUntouched(t *testing.T) {
	_, session, layout := newDragFixture(t)

	before := entity.SnapshotFromLayout("before", layout)

	session.PointerDown(layout, "a", 0, 0)
	session.PointerMove(20, 0)
	require.NoError(t, session.EnterDropZone(DropZone{Region: entity.RegionBottom}))
	require.Equal(t, DropPending, session.State())

	session.Cancel()
	assert.Equal(t, DragIdle, session.State())

	after := entity.SnapshotFromLayout("before", layout)
	after.SavedAt = before.SavedAt
	assert.Equal(t, before, after, "cancel must not mutate the layout")
}

func TestDragInvalidDropCancelsSession(t *testing.T) {
	_, session, layout := newDragFixture(t)

	ownGroup := layout.FindPanelGroup("a")
	require.NotNil(t, ownGroup)

	session.PointerDown(layout, "a", 0, 0)
	session.PointerMove(20, 0)

	err := session.EnterDropZone(DropZone{Region: entity.RegionLeft, Group: ownGroup})
	assert.ErrorIs(t, err, ErrInvalidDrop)
	assert.Equal(t, DragIdle, session.State())
	assert.True(t, layout.Node(entity.RegionLeft).Group.Contains("a"), "invalid drop must not mutate")
}

func TestDragLeaveDropZone(t *testing.T) {
	_, session, layout := newDragFixture(t)

	session.PointerDown(layout, "a", 0, 0)
	session.PointerMove(20, 0)
	require.NoError(t, session.EnterDropZone(DropZone{Region: entity.RegionTop}))
	session.LeaveDropZone()
	assert.Equal(t, DragActive, session.State())

	// Dropping outside any zone cancels without mutation.
	require.NoError(t, session.Drop(context.Background(), layout))
	assert.Equal(t, DragIdle, session.State())
	assert.True(t, layout.Node(entity.RegionTop).IsEmpty())
}

func TestDragDropToFloating(t *testing.T) {
	_, session, layout := newDragFixture(t)
	ctx := context.Background()

	session.PointerDown(layout, "b", 0, 0)
	session.PointerMove(0, 20)
	require.NoError(t, session.EnterDropZone(DropZone{
		Region:   entity.RegionFloating,
		Geometry: entity.FloatGeometry{X: 60, Y: 60, W: 420, H: 320},
	}))
	require.NoError(t, session.Drop(ctx, layout))

	require.Len(t, layout.FloatingGroups, 1)
	assert.True(t, layout.FloatingGroups[0].Contains("b"))
	assert.Equal(t, 420.0, layout.FloatingGeometry[layout.FloatingGroups[0].ID].W)
}

func TestDragSetThreshold(t *testing.T) {
	_, session, layout := newDragFixture(t)
	session.SetThreshold(40)

	session.PointerDown(layout, "a", 100, 100)
	session.PointerMove(130, 100)
	assert.Equal(t, DragIdle, session.State(), "travel under the retuned threshold must not start a drag")

	session.PointerMove(100, 145)
	assert.Equal(t, DragActive, session.State())
}
