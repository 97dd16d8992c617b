package cli

import (
	"fmt"

	"github.com/alexanderramin/estimator/internal/structure"
	"github.com/spf13/cobra"
)

func newStructureCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "structure",
		Short: "Generate canonical building structures",
	}
	cmd.AddCommand(newStructureGenerateCmd(app))
	return cmd
}

func newStructureGenerateCmd(app *App) *cobra.Command {
	var projectRef string
	var counts structure.Counts
	var yes bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Replace a project's tree with blocks > floors > flats",
		Long: "Replace a project's tree with a generated one. Counts below 1 are raised to 1.\n" +
			"The existing tree, including its line items, is discarded.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			q, err := loadQuote(ctx, app, projectRef)
			if err != nil {
				return err
			}

			if root := q.Root(); root.ChildCount() > 0 || len(root.Items()) > 0 {
				ok, err := confirmDestructive(cmd, app, yes,
					fmt.Sprintf("replace the existing tree of %s", q.Project.DisplayID()))
				if err != nil || !ok {
					return err
				}
			}

			q, err = app.Quotes.ReplaceStructure(ctx, q.Project.ID, counts)
			if err != nil {
				return err
			}
			c := counts.Clamped()
			fmt.Fprintf(cmd.OutOrStdout(), "Generated %d blocks, %d floors each, %d flats per floor (%d nodes) for %s\n",
				c.Blocks, c.Floors, c.FlatsPerFloor, c.NodeCount(), q.Project.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project code or ID")
	cmd.Flags().IntVar(&counts.Blocks, "blocks", 1, "Number of blocks")
	cmd.Flags().IntVar(&counts.Floors, "floors", 1, "Floors per block")
	cmd.Flags().IntVar(&counts.FlatsPerFloor, "flats", 1, "Flats per floor")
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}
