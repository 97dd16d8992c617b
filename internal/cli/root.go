package cli

import (
	"github.com/alexanderramin/estimator/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects  service.ProjectService
	Quotes    service.QuoteService
	Catalog   service.CatalogService
	Customers service.CustomerService
	Imports   service.ImportService

	// IsInteractive reports whether prompts can be shown. Nil means never.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Nil uses a huh confirm form.
	Confirm func(title string) (bool, error)
}

// NewRootCmd creates the top-level "estimator" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "estimator",
		Short:         "Compose and cost hierarchical project quotes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newProjectCmd(app),
		newStructureCmd(app),
		newNodeCmd(app),
		newItemCmd(app),
		newProductCmd(app),
		newCustomerCmd(app),
		newTotalsCmd(app),
		newImportCmd(app),
		newExportCmd(app),
	)

	return root
}
