package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/estimator/internal/codec"
	"github.com/alexanderramin/estimator/internal/db"
	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/importer"
	"github.com/alexanderramin/estimator/internal/repository"
	"github.com/google/uuid"
)

type importService struct {
	uow        db.UnitOfWork
	quotes     QuoteService
	codePrefix string
	observer   UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, quotes QuoteService, codePrefix string, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:        uow,
		quotes:     quotes,
		codePrefix: codePrefix,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportQuote(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.importSchema(ctx, schema)
}

func (s *importService) ImportQuoteFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error) {
	return s.importSchema(ctx, schema)
}

// importSchema stores the imported project and tree atomically. The file's
// code is kept when it is free; otherwise a new one is allocated.
func (s *importService) importSchema(ctx context.Context, schema *importer.ImportSchema) (result *ImportResult, err error) {
	fields := map[string]any{"title": schema.Project.Title}
	defer useCase(ctx, s.observer, "import-quote", fields)(&err)

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProducts := repository.NewSQLiteProductRepo(tx)
		txProjects := repository.NewSQLiteProjectRepo(tx)

		catalog := make(map[string]*domain.Product)
		for _, it := range schema.Items {
			if !it.NeedsCatalog() || catalog[it.ProductID] != nil {
				continue
			}
			p, err := txProducts.GetByID(ctx, it.ProductID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return fmt.Errorf("product %s: %w", it.ProductID, ErrProductNotFound)
				}
				return err
			}
			catalog[it.ProductID] = p
		}

		conv, err := importer.Convert(schema, catalog)
		if err != nil {
			return fmt.Errorf("converting import schema: %w", err)
		}
		project := conv.Project

		if project.CustomerID != nil {
			if _, err := repository.NewSQLiteCustomerRepo(tx).GetByID(ctx, *project.CustomerID); err != nil {
				return fmt.Errorf("customer %s: %w", *project.CustomerID, err)
			}
		}

		codeFree := false
		if project.Code != "" {
			_, err := txProjects.GetByCode(ctx, project.Code)
			switch {
			case errors.Is(err, repository.ErrNotFound):
				codeFree = true
			case err != nil:
				return err
			}
		}
		if !codeFree {
			code, err := repository.NewSQLiteCodeSequenceRepo(tx).NextCode(ctx, s.codePrefix, time.Now().UTC().Year())
			if err != nil {
				return err
			}
			project.Code = code
		}

		if err := txProjects.Create(ctx, project); err != nil {
			return fmt.Errorf("creating project: %w", err)
		}
		snap := codec.Flatten(project.ID, []*domain.ScopeNode{conv.Root}, uuid.NewString)
		if err := writeSnapshot(ctx, tx, project.ID, snap); err != nil {
			return err
		}

		result = &ImportResult{Project: project, NodeCount: conv.Nodes, ItemCount: conv.Items}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["project_id"] = result.Project.ID
	fields["node_count"] = result.NodeCount
	fields["item_count"] = result.ItemCount
	return result, nil
}

func (s *importService) ExportQuote(ctx context.Context, projectID string) (*importer.ImportSchema, error) {
	q, err := s.quotes.Load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return importer.Export(q.Project, q.Root()), nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
