package cli

import (
	"fmt"

	"github.com/alexanderramin/estimator/internal/cli/formatter"
	"github.com/alexanderramin/estimator/internal/importer"
	"github.com/spf13/cobra"
)

func newTotalsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "totals PROJECT",
		Short: "Show revenue, cost, profit and margin per node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := loadQuote(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTotals(q.Project, q.Root()))
			return nil
		},
	}
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Create a project from a JSON quote file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Imports.ImportQuote(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported project %s [%s]: %d nodes, %d items\n",
				result.Project.Title, result.Project.Code, result.NodeCount, result.ItemCount)
			return nil
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export PROJECT",
		Short: "Write a project's quote as JSON (stdout unless --output is set)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			schema, err := app.Imports.ExportQuote(ctx, p.ID)
			if err != nil {
				return err
			}
			if output == "" {
				return importer.EncodeImportSchema(cmd.OutOrStdout(), schema)
			}
			if err := importer.WriteImportSchema(output, schema); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", p.DisplayID(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file")
	return cmd
}
