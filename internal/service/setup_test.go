package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/estimator/internal/db"
	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/repository"
	"github.com/alexanderramin/estimator/internal/structure"
	"github.com/alexanderramin/estimator/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type testServices struct {
	db        *sql.DB
	uow       db.UnitOfWork
	quotes    QuoteService
	projects  ProjectService
	catalog   CatalogService
	customers CustomerService
	imports   ImportService
}

func newTestServices(t *testing.T, observers ...UseCaseObserver) *testServices {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	catalog := NewCatalogService(repository.NewSQLiteProductRepo(database))
	quotes := NewQuoteService(uow, catalog, structure.EnglishNaming, observers...)
	return &testServices{
		db:        database,
		uow:       uow,
		quotes:    quotes,
		projects:  NewProjectService(repository.NewSQLiteProjectRepo(database), uow, "PRJ", observers...),
		catalog:   catalog,
		customers: NewCustomerService(repository.NewSQLiteCustomerRepo(database)),
		imports:   NewImportService(uow, quotes, "PRJ", observers...),
	}
}

func (s *testServices) product(t *testing.T, name, price, cost string) *domain.Product {
	t.Helper()
	p, err := s.catalog.Create(context.Background(), name,
		decimal.RequireFromString(price), decimal.RequireFromString(cost))
	require.NoError(t, err)
	return p
}

func (s *testServices) count(t *testing.T, table string) int {
	t.Helper()
	return testutil.CountRows(t, s.db, table)
}

func currentCode(seq int) string {
	return domain.FormatCode("PRJ", time.Now().UTC().Year(), seq)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// treeShape renders kind:name pairs in walk order with depth, for structural comparison.
func treeShape(root *domain.ScopeNode) []string {
	var out []string
	root.Walk(func(n *domain.ScopeNode, depth int) {
		out = append(out, fmt.Sprintf("%d/%s/%s/%d", depth, n.Kind, n.Name, len(n.Items())))
	})
	return out
}
