// Package cmd provides Cobra CLI commands for atelier.
package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atelierhq/atelier/internal/infrastructure/config"
	"github.com/atelierhq/atelier/internal/infrastructure/persistence/sqlite"
	"github.com/atelierhq/atelier/internal/logging"
)

// App holds CLI dependencies shared by subcommands.
type App struct {
	Config *config.Config
	ctx    context.Context
	db     *sql.DB
}

// Context returns the app context carrying the logger.
func (a *App) Context() context.Context { return a.ctx }

// DB opens the snapshot database lazily and caches the handle.
func (a *App) DB() (*sql.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	db, err := sqlite.NewConnection(a.ctx, a.Config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot database: %w", err)
	}
	a.db = db
	return db, nil
}

// LayoutRepo returns the layout snapshot repository.
func (a *App) LayoutRepo() (*sqlite.LayoutStateRepository, error) {
	db, err := a.DB()
	if err != nil {
		return nil, err
	}
	return sqlite.NewLayoutStateRepository(db), nil
}

// Close releases app resources.
func (a *App) Close() error {
	return sqlite.Close(a.db)
}

var (
	app     *App
	rootCmd = &cobra.Command{
		Use:   "atelier",
		Short: "A docking layout engine for IDE-style shells",
		Long: `Atelier - a docking window system for IDE-style shells.

Panels dock into left, right, top, bottom and center regions, stack into
tabbed groups, split into resizable trees, float, minimize and restore.
Layouts persist as named snapshots in a local SQLite database.

Use 'atelier inspect' to explore a layout interactively, or the 'layout'
subcommands to manage stored snapshots.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion":
				return nil
			}

			if err := config.Init(); err != nil {
				return fmt.Errorf("initialize config: %w", err)
			}
			cfg := config.Get()

			logger := logging.NewFromConfigValues(cfg.Logging.Level, cfg.Logging.Format)
			app = &App{
				Config: cfg,
				ctx:    logging.WithContext(context.Background(), logger),
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *App {
	return app
}
