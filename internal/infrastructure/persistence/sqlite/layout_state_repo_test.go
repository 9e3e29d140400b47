package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierhq/atelier/internal/domain/entity"
	"github.com/atelierhq/atelier/internal/infrastructure/persistence/sqlite"
	"github.com/atelierhq/atelier/internal/logging"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func testLayout() *entity.DockLayout {
	l := entity.NewDockLayout()
	l.Left = entity.GroupNode(entity.NewPanelGroup("gl", entity.RegionLeft, entity.NewPanel("files", "Files")))
	l.Center = entity.GroupNode(entity.NewPanelGroup("gc", entity.RegionCenter, entity.NewPanel("editor", "Editor")))
	l.ActivePanelID = "editor"
	return l
}

func TestLayoutStateRepository_CRUD(t *testing.T) {
	ctx := testCtx()
	dbPath := filepath.Join(t.TempDir(), "atelier.db")

	db, err := sqlite.NewConnection(ctx, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := sqlite.NewLayoutStateRepository(db)

	snap := entity.SnapshotFromLayout("default", testLayout())
	require.NoError(t, repo.SaveSnapshot(ctx, snap))

	got, err := repo.GetSnapshot(ctx, "default")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, snap.Version, got.Version)
	assert.Equal(t, 2, got.CountPanels())

	restored := entity.LayoutFromSnapshot(got)
	assert.NotNil(t, restored.FindPanelGroup("files"))
	assert.Equal(t, entity.PanelID("editor"), restored.ActivePanelID)

	missing, err := repo.GetSnapshot(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.DeleteSnapshot(ctx, "default"))
	deleted, err := repo.GetSnapshot(ctx, "default")
	require.NoError(t, err)
	assert.Nil(t, deleted)
}

func TestLayoutStateRepository_UpsertReplaces(t *testing.T) {
	ctx := testCtx()
	dbPath := filepath.Join(t.TempDir(), "atelier.db")

	db, err := sqlite.NewConnection(ctx, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := sqlite.NewLayoutStateRepository(db)

	first := entity.SnapshotFromLayout("work", testLayout())
	require.NoError(t, repo.SaveSnapshot(ctx, first))

	layout := testLayout()
	layout.MinimizedPanels = append(layout.MinimizedPanels, entity.NewPanel("terminal", "Terminal"))
	second := entity.SnapshotFromLayout("work", layout)
	require.NoError(t, repo.SaveSnapshot(ctx, second))

	got, err := repo.GetSnapshot(ctx, "work")
	require.NoError(t, err)
	assert.Equal(t, 3, got.CountPanels())

	all, err := repo.ListSnapshots(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestLayoutStateRepository_SaveNilFails(t *testing.T) {
	ctx := testCtx()
	db, err := sqlite.NewConnection(ctx, filepath.Join(t.TempDir(), "atelier.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := sqlite.NewLayoutStateRepository(db)
	assert.Error(t, repo.SaveSnapshot(ctx, nil))
	assert.Error(t, repo.SaveSnapshot(ctx, &entity.DockSnapshot{}))
}
