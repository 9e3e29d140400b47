package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/atelierhq/atelier/internal/application/usecase"
	"github.com/atelierhq/atelier/internal/domain/entity"
	"github.com/atelierhq/atelier/internal/infrastructure/config"
	"github.com/atelierhq/atelier/internal/ui/coordinator"
	"github.com/atelierhq/atelier/internal/ui/inspector"
)

var inspectName string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Explore a layout interactively in the terminal",
	RunE: func(_ *cobra.Command, _ []string) error {
		a := GetApp()
		ctx := a.Context()

		repo, err := a.LayoutRepo()
		if err != nil {
			return err
		}

		layout, err := loadOrDefaultLayout(ctx, repo.GetSnapshot, inspectName)
		if err != nil {
			return err
		}

		coord := coordinator.NewDockCoordinator(coordinator.DockCoordinatorConfig{
			Layout:        layout,
			GenerateID:    uuid.NewString,
			DragThreshold: a.Config.Dock.DragThreshold,
		})
		coord.SetRatioBounds(a.Config.Dock.MinSplitRatio, a.Config.Dock.MaxSplitRatio)
		coord.SetCollapsedSize(a.Config.Dock.CollapsedSize)

		save := func(ctx context.Context, snap *entity.DockSnapshot) error {
			return repo.SaveSnapshot(ctx, snap)
		}
		if !a.Config.Dock.PersistLayout {
			save = nil
		}

		program := tea.NewProgram(inspector.NewModel(ctx, coord, save), tea.WithAltScreen())

		// Config edits retune the running inspector. The callback fires
		// on the watcher goroutine, so it routes through the program
		// rather than touching the coordinator directly.
		if mgr := config.GetManager(); mgr != nil {
			mgr.OnConfigChange(func(cfg *config.Config) {
				program.Send(inspector.ConfigReloadedMsg{
					DragThreshold: cfg.Dock.DragThreshold,
					MinSplitRatio: cfg.Dock.MinSplitRatio,
					MaxSplitRatio: cfg.Dock.MaxSplitRatio,
					CollapsedSize: cfg.Dock.CollapsedSize,
				})
			})
			if err := mgr.Watch(); err != nil {
				return fmt.Errorf("watch config: %w", err)
			}
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			_, err := program.Run()
			return err
		})
		g.Go(func() error {
			<-gctx.Done()
			program.Quit()
			return nil
		})
		return g.Wait()
	},
}

// loadOrDefaultLayout restores a stored snapshot or builds the default
// workspace layout.
func loadOrDefaultLayout(ctx context.Context, get func(context.Context, string) (*entity.DockSnapshot, error), name string) (*entity.DockLayout, error) {
	snap, err := get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("load layout %q: %w", name, err)
	}
	if snap != nil {
		return entity.LayoutFromSnapshot(snap), nil
	}

	cfg := config.Get()
	return usecase.NewLayoutBuilder(uuid.NewString).
		RatioBounds(cfg.Dock.MinSplitRatio, cfg.Dock.MaxSplitRatio).
		Region(entity.RegionLeft, cfg.Dock.LeftSize,
			entity.NewPanel("explorer", "Explorer"),
			entity.NewPanel("search", "Search")).
		RegionSplit(entity.RegionCenter, entity.OrientationHorizontal, cfg.Dock.DefaultSplitRatio, 0,
			[]*entity.Panel{entity.NewPanel("editor", "Editor")},
			[]*entity.Panel{entity.NewPanel("preview", "Preview")}).
		Region(entity.RegionBottom, cfg.Dock.BottomSize,
			entity.NewPanel("terminal", "Terminal"),
			entity.NewPanel("problems", "Problems")).
		Active("editor").
		Build(), nil
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectName, "name", "n", "default", "stored layout to open")
	rootCmd.AddCommand(inspectCmd)
}
