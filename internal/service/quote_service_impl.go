package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/estimator/internal/codec"
	"github.com/alexanderramin/estimator/internal/db"
	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/repository"
	"github.com/alexanderramin/estimator/internal/structure"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type quoteService struct {
	uow      db.UnitOfWork
	catalog  CatalogLookup
	naming   structure.Naming
	observer UseCaseObserver
}

func NewQuoteService(
	uow db.UnitOfWork,
	catalog CatalogLookup,
	naming structure.Naming,
	observers ...UseCaseObserver,
) QuoteService {
	return &quoteService{
		uow:      uow,
		catalog:  catalog,
		naming:   naming,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *quoteService) Save(ctx context.Context, project *domain.Project, roots []*domain.ScopeNode) (err error) {
	fields := map[string]any{}
	defer useCase(ctx, s.observer, "save-quote", fields)(&err)

	if project == nil || project.ID == "" {
		return fmt.Errorf("saving quote: %w", domain.ErrProjectNotFound)
	}
	fields["project_id"] = project.ID
	if err = validateRoots(roots); err != nil {
		return err
	}

	// Ids are assigned before the transaction and stay on the tree if it
	// rolls back, so a retry addresses the same rows.
	snap := codec.Flatten(project.ID, roots, uuid.NewString)
	fields["node_count"] = len(snap.Nodes)
	fields["item_count"] = len(snap.Items)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return writeQuote(ctx, tx, project, snap)
	})
}

// writeQuote touches the project row and reconciles its tree rows with snap.
func writeQuote(ctx context.Context, tx db.DBTX, project *domain.Project, snap codec.Snapshot) error {
	project.UpdatedAt = time.Now().UTC()
	if err := repository.NewSQLiteProjectRepo(tx).Update(ctx, project); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("saving quote %s: %w", project.ID, domain.ErrProjectNotFound)
		}
		return err
	}
	return writeSnapshot(ctx, tx, project.ID, snap)
}

// writeSnapshot makes the stored rows of projectID match snap exactly.
// Nodes are upserted parents first, so every parent id already exists when a
// child row is written. Non-root nodes stored under another project move to
// projectID along with their items; a root stored elsewhere is rejected.
// Stale rows are deleted last: by then every surviving node has been
// repointed at its new parent, so the cascade from a stale node only reaches
// other stale rows.
func writeSnapshot(ctx context.Context, tx db.DBTX, projectID string, snap codec.Snapshot) error {
	txNodes := repository.NewSQLiteScopeNodeRepo(tx)
	txItems := repository.NewSQLiteLineItemRepo(tx)

	for _, n := range snap.Nodes {
		if n.ParentID != nil {
			continue
		}
		owner, err := txNodes.ProjectOf(ctx, n.ID)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if owner != projectID {
			return fmt.Errorf("saving root %q under %s: %w", n.Name, projectID, domain.ErrForeignRoot)
		}
	}

	storedNodes, err := txNodes.ListIDsByProject(ctx, projectID)
	if err != nil {
		return err
	}
	storedItems, err := txItems.ListIDsByProject(ctx, projectID)
	if err != nil {
		return err
	}

	keepNodes := make(map[string]bool, len(snap.Nodes))
	for _, n := range snap.Nodes {
		keepNodes[n.ID] = true
		if err := txNodes.Upsert(ctx, n); err != nil {
			return fmt.Errorf("saving node %q: %w", n.Name, err)
		}
	}
	keepItems := make(map[string]bool, len(snap.Items))
	for _, it := range snap.Items {
		keepItems[it.ID] = true
		if err := txItems.Upsert(ctx, it); err != nil {
			return fmt.Errorf("saving item %q: %w", it.ProductName, err)
		}
	}

	for _, id := range storedItems {
		if !keepItems[id] {
			if err := txItems.Delete(ctx, id); err != nil {
				return err
			}
		}
	}
	for _, id := range storedNodes {
		if !keepNodes[id] {
			if err := txNodes.Delete(ctx, id); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateRoots(roots []*domain.ScopeNode) error {
	if len(roots) == 0 {
		return fmt.Errorf("no roots to save: %w", domain.ErrInvalidRoot)
	}
	for _, r := range roots {
		if r == nil || !r.IsRoot() || r.Kind != domain.NodeProject {
			return domain.ErrInvalidRoot
		}
	}
	return nil
}

func (s *quoteService) Load(ctx context.Context, projectID string) (quote *Quote, err error) {
	fields := map[string]any{"project_id": projectID}
	defer useCase(ctx, s.observer, "load-quote", fields)(&err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		quote, err = readQuote(ctx, tx, projectID)
		return err
	})
	if err != nil {
		return nil, err
	}
	var nodeCount, itemCount int
	for _, r := range quote.Roots {
		r.Walk(func(n *domain.ScopeNode, _ int) {
			nodeCount++
			itemCount += len(n.Items())
		})
	}
	fields["node_count"] = nodeCount
	fields["item_count"] = itemCount
	return quote, nil
}

// readQuote loads the project row and rebuilds its tree.
func readQuote(ctx context.Context, tx db.DBTX, projectID string) (*Quote, error) {
	project, err := repository.NewSQLiteProjectRepo(tx).GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("loading quote %s: %w", projectID, domain.ErrProjectNotFound)
		}
		return nil, err
	}
	nodes, err := repository.NewSQLiteScopeNodeRepo(tx).ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	items, err := repository.NewSQLiteLineItemRepo(tx).ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	roots, err := codec.Rehydrate(nodes, items)
	if err != nil {
		return nil, fmt.Errorf("rebuilding quote %s: %w", projectID, err)
	}
	if len(roots) == 0 || roots[0].Kind != domain.NodeProject {
		return nil, fmt.Errorf("quote %s has no project root: %w", projectID, domain.ErrProjectNotFound)
	}
	return &Quote{Project: project, Roots: roots}, nil
}

// AttachProduct looks the product up in the catalog and attaches it to node
// in memory. Nothing is persisted until the tree is saved.
func (s *quoteService) AttachProduct(ctx context.Context, node *domain.ScopeNode, productID string, quantity int, unitPriceOverride *decimal.Decimal) (*domain.LineItem, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w (got %d)", domain.ErrInvalidQuantity, quantity)
	}
	p, err := s.catalog.Product(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("looking up product %s: %w", productID, err)
	}
	return node.AttachItem(p, quantity, unitPriceOverride)
}

// ReplaceStructure discards the project's tree and saves a freshly generated
// one. The root keeps its id and name. Reading the old root and writing the
// new tree share one transaction.
func (s *quoteService) ReplaceStructure(ctx context.Context, projectID string, counts structure.Counts) (quote *Quote, err error) {
	fields := map[string]any{"project_id": projectID}
	defer useCase(ctx, s.observer, "replace-structure", fields)(&err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		current, err := readQuote(ctx, tx, projectID)
		if err != nil {
			return err
		}
		old := current.Root()
		root := structure.GenerateWithNaming(old.Name, counts, s.naming)
		root.ID = old.ID

		roots := []*domain.ScopeNode{root}
		snap := codec.Flatten(projectID, roots, uuid.NewString)
		fields["node_count"] = len(snap.Nodes)
		if err := writeQuote(ctx, tx, current.Project, snap); err != nil {
			return err
		}
		quote = &Quote{Project: current.Project, Roots: roots}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return quote, nil
}
