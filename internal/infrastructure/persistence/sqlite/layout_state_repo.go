package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/atelierhq/atelier/internal/domain/entity"
	"github.com/atelierhq/atelier/internal/logging"
)

// LayoutStateRepository stores named dock layout snapshots.
type LayoutStateRepository struct {
	db *sql.DB
}

// NewLayoutStateRepository creates a new layout state repository.
func NewLayoutStateRepository(db *sql.DB) *LayoutStateRepository {
	return &LayoutStateRepository{db: db}
}

// SaveSnapshot saves or updates a layout snapshot under its name.
func (r *LayoutStateRepository) SaveSnapshot(ctx context.Context, snap *entity.DockSnapshot) error {
	log := logging.FromContext(ctx)
	if snap == nil {
		return errors.New("snapshot cannot be nil")
	}
	if snap.Name == "" {
		return errors.New("snapshot name cannot be empty")
	}

	stateJSON, err := json.Marshal(snap)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal layout snapshot")
		return err
	}

	log.Debug().
		Str("name", snap.Name).
		Int("panel_count", snap.CountPanels()).
		Msg("saving layout snapshot")

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO layout_states (name, state_json, version, panel_count, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			state_json = excluded.state_json,
			version = excluded.version,
			panel_count = excluded.panel_count,
			updated_at = excluded.updated_at`,
		snap.Name, string(stateJSON), snap.Version, snap.CountPanels(), snap.SavedAt)
	if err != nil {
		return fmt.Errorf("upsert layout snapshot: %w", err)
	}
	return nil
}

// GetSnapshot returns the snapshot stored under name, or nil when absent.
func (r *LayoutStateRepository) GetSnapshot(ctx context.Context, name string) (*entity.DockSnapshot, error) {
	var stateJSON string
	err := r.db.QueryRowContext(ctx,
		`SELECT state_json FROM layout_states WHERE name = ?`, name).Scan(&stateJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	var snap entity.DockSnapshot
	if err := json.Unmarshal([]byte(stateJSON), &snap); err != nil {
		logging.FromContext(ctx).Error().Err(err).
			Str("name", name).
			Msg("failed to unmarshal layout snapshot")
		return nil, err
	}
	return &snap, nil
}

// DeleteSnapshot removes a named snapshot. Deleting an absent name is not
// an error.
func (r *LayoutStateRepository) DeleteSnapshot(ctx context.Context, name string) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("name", name).Msg("deleting layout snapshot")
	_, err := r.db.ExecContext(ctx, `DELETE FROM layout_states WHERE name = ?`, name)
	return err
}

// ListSnapshots returns all stored snapshots, most recently updated first.
// Corrupted rows are skipped with a warning.
func (r *LayoutStateRepository) ListSnapshots(ctx context.Context) ([]*entity.DockSnapshot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, state_json FROM layout_states ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var snaps []*entity.DockSnapshot
	for rows.Next() {
		var name, stateJSON string
		if err := rows.Scan(&name, &stateJSON); err != nil {
			return nil, err
		}
		var snap entity.DockSnapshot
		if err := json.Unmarshal([]byte(stateJSON), &snap); err != nil {
			logging.FromContext(ctx).Warn().Err(err).
				Str("name", name).
				Msg("skipping corrupted layout snapshot")
			continue
		}
		snaps = append(snaps, &snap)
	}
	return snaps, rows.Err()
}
