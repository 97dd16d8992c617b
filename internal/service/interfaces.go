package service

import (
	"context"

	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/importer"
	"github.com/alexanderramin/estimator/internal/structure"
	"github.com/shopspring/decimal"
)

// CatalogLookup resolves a product id to its current catalog entry.
type CatalogLookup interface {
	Product(ctx context.Context, id string) (*domain.Product, error)
}

// CustomerLookup resolves a customer id for display next to a project.
type CustomerLookup interface {
	Customer(ctx context.Context, id string) (*domain.Customer, error)
}

// Quote is a project record together with its scope tree.
type Quote struct {
	Project *domain.Project
	Roots   []*domain.ScopeNode
}

// Root returns the project root node, or nil for an empty quote.
func (q *Quote) Root() *domain.ScopeNode {
	if q == nil || len(q.Roots) == 0 {
		return nil
	}
	return q.Roots[0]
}

type QuoteService interface {
	// Save reconciles storage with the given tree in one transaction:
	// new nodes and items are inserted, known ones updated, and rows no
	// longer present in the tree deleted.
	Save(ctx context.Context, project *domain.Project, roots []*domain.ScopeNode) error
	Load(ctx context.Context, projectID string) (*Quote, error)
	AttachProduct(ctx context.Context, node *domain.ScopeNode, productID string, quantity int, unitPriceOverride *decimal.Decimal) (*domain.LineItem, error)
	ReplaceStructure(ctx context.Context, projectID string, counts structure.Counts) (*Quote, error)
}

type ProjectService interface {
	Create(ctx context.Context, title string, customerID *string) (*Quote, error)
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	Resolve(ctx context.Context, ref string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	SetStatus(ctx context.Context, id string, status domain.ProjectStatus) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

type CatalogService interface {
	CatalogLookup
	Create(ctx context.Context, name string, salePrice, purchaseCost decimal.Decimal) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
}

type CustomerService interface {
	CustomerLookup
	Create(ctx context.Context, name, phone, email string) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
}

// ImportResult holds the outcome of a quote import.
type ImportResult struct {
	Project   *domain.Project
	NodeCount int
	ItemCount int
}

type ImportService interface {
	ImportQuote(ctx context.Context, filePath string) (*ImportResult, error)
	ImportQuoteFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
	ExportQuote(ctx context.Context, projectID string) (*importer.ImportSchema, error)
}
