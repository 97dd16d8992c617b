package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alexanderramin/estimator/internal/cli"
	"github.com/alexanderramin/estimator/internal/config"
	"github.com/alexanderramin/estimator/internal/db"
	"github.com/alexanderramin/estimator/internal/repository"
	"github.com/alexanderramin/estimator/internal/service"
	"github.com/alexanderramin/estimator/internal/structure"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.LoadConfig()

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	// Wire repositories and the unit of work for transactional operations
	projectRepo := repository.NewSQLiteProjectRepo(database)
	productRepo := repository.NewSQLiteProductRepo(database)
	customerRepo := repository.NewSQLiteCustomerRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	// Wire services
	catalog := service.NewCatalogService(productRepo)
	quotes := service.NewQuoteService(uow, catalog, structure.NamingForLocale(cfg.Locale), observer)

	app := &cli.App{
		Projects:  service.NewProjectService(projectRepo, uow, cfg.CodePrefix, observer),
		Quotes:    quotes,
		Catalog:   catalog,
		Customers: service.NewCustomerService(customerRepo),
		Imports:   service.NewImportService(uow, quotes, cfg.CodePrefix, observer),
	}

	// Prompts only make sense on an interactive terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
