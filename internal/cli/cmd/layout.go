package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atelierhq/atelier/internal/domain/entity"
	"github.com/atelierhq/atelier/internal/infrastructure/config"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Manage stored layout snapshots",
}

var layoutShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Print a stored layout as a tree",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := snapshotName(args)
		repo, err := GetApp().LayoutRepo()
		if err != nil {
			return err
		}
		snap, err := repo.GetSnapshot(GetApp().Context(), name)
		if err != nil {
			return err
		}
		if snap == nil {
			return fmt.Errorf("no layout named %q", name)
		}

		layout := entity.LayoutFromSnapshot(snap)
		cmd.Println(formatLayout(name, layout))
		return nil
	},
}

var layoutValidateCmd = &cobra.Command{
	Use:   "validate [name]",
	Short: "Normalize a stored layout and report what changed",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := snapshotName(args)
		repo, err := GetApp().LayoutRepo()
		if err != nil {
			return err
		}
		snap, err := repo.GetSnapshot(GetApp().Context(), name)
		if err != nil {
			return err
		}
		if snap == nil {
			return fmt.Errorf("no layout named %q", name)
		}

		stored := snap.CountPanels()
		layout := entity.LayoutFromSnapshot(snap)
		kept := layout.PanelCount()

		if dropped := stored - kept; dropped > 0 {
			cmd.Printf("%s: %d of %d panels kept, %d dropped during normalization\n", name, kept, stored, dropped)
		} else {
			cmd.Printf("%s: valid, %d panels\n", name, kept)
		}
		return nil
	},
}

var layoutListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored layouts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		repo, err := GetApp().LayoutRepo()
		if err != nil {
			return err
		}
		snaps, err := repo.ListSnapshots(GetApp().Context())
		if err != nil {
			return err
		}
		if len(snaps) == 0 {
			cmd.Println("no stored layouts")
			return nil
		}
		for _, snap := range snaps {
			cmd.Printf("%-20s %3d panels  saved %s\n", snap.Name, snap.CountPanels(), snap.SavedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

var layoutDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored layout",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		repo, err := GetApp().LayoutRepo()
		if err != nil {
			return err
		}
		return repo.DeleteSnapshot(GetApp().Context(), args[0])
	},
}

var layoutSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the configuration JSON schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		data, err := config.SchemaJSON()
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	},
}

func snapshotName(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "default"
}

func formatLayout(name string, layout *entity.DockLayout) string {
	var b strings.Builder
	fmt.Fprintf(&b, "layout %q (%d panels, active: %s)\n", name, layout.PanelCount(), orNone(string(layout.ActivePanelID)))

	for _, region := range entity.TreeRegions {
		fmt.Fprintf(&b, "%s", string(region))
		if layout.IsCollapsed(region) {
			b.WriteString(" (collapsed)")
		}
		if size, ok := layout.EdgeSizes[region]; ok {
			fmt.Fprintf(&b, " %.0fpx", size)
		}
		b.WriteString("\n")
		formatNode(&b, layout.Node(region), "  ")
	}

	for _, g := range layout.FloatingGroups {
		geo := layout.FloatingGeometry[g.ID]
		fmt.Fprintf(&b, "floating %s @ (%.0f,%.0f) %.0fx%.0f\n  %s\n", g.ID, geo.X, geo.Y, geo.W, geo.H, panelList(g))
	}
	if len(layout.MinimizedPanels) > 0 {
		ids := make([]string, 0, len(layout.MinimizedPanels))
		for _, p := range layout.MinimizedPanels {
			ids = append(ids, string(p.ID))
		}
		fmt.Fprintf(&b, "minimized: %s\n", strings.Join(ids, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatNode(b *strings.Builder, node *entity.LayoutNode, indent string) {
	switch {
	case node.IsGroup():
		fmt.Fprintf(b, "%s%s\n", indent, panelList(node.Group))
	case node.IsSplit():
		s := node.Split
		fmt.Fprintf(b, "%ssplit %s %.2f\n", indent, s.Orientation, s.Ratio)
		formatNode(b, s.First, indent+"  ")
		formatNode(b, s.Second, indent+"  ")
	default:
		fmt.Fprintf(b, "%s(empty)\n", indent)
	}
}

func panelList(g *entity.PanelGroup) string {
	ids := make([]string, 0, len(g.Panels))
	for i, p := range g.Panels {
		id := string(p.ID)
		if i == g.ActiveIndex {
			id = "*" + id
		}
		ids = append(ids, id)
	}
	return fmt.Sprintf("group [%s]", strings.Join(ids, " "))
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func init() {
	layoutCmd.AddCommand(layoutShowCmd, layoutValidateCmd, layoutListCmd, layoutDeleteCmd, layoutSchemaCmd)
	rootCmd.AddCommand(layoutCmd)
}
