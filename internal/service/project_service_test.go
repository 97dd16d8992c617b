package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_CreateAssignsSequentialCodes(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	q1, err := s.projects.Create(ctx, "First", nil)
	require.NoError(t, err)
	q2, err := s.projects.Create(ctx, "Second", nil)
	require.NoError(t, err)

	assert.Equal(t, currentCode(1), q1.Project.Code)
	assert.Equal(t, currentCode(2), q2.Project.Code)
	assert.NoError(t, q1.Project.ValidateCode())
	assert.Equal(t, domain.ProjectDraft, q1.Project.Status)
}

func TestProjectService_CreatePersistsRoot(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	q, err := s.projects.Create(ctx, "  Harbour View  ", nil)
	require.NoError(t, err)
	assert.Equal(t, "Harbour View", q.Project.Title)
	require.NotEmpty(t, q.Root().ID)

	loaded, err := s.quotes.Load(ctx, q.Project.ID)
	require.NoError(t, err)
	assert.Equal(t, q.Root().ID, loaded.Root().ID)
	assert.Equal(t, domain.NodeProject, loaded.Root().Kind)
	assert.Equal(t, "Harbour View", loaded.Root().Name)
}

func TestProjectService_CreateWithCustomer(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	cust, err := s.customers.Create(ctx, "Yilmaz Insaat", "", "info@yilmaz.example")
	require.NoError(t, err)

	q, err := s.projects.Create(ctx, "Villa", &cust.ID)
	require.NoError(t, err)
	require.NotNil(t, q.Project.CustomerID)

	got, err := s.customers.Customer(ctx, *q.Project.CustomerID)
	require.NoError(t, err)
	assert.Equal(t, "Yilmaz Insaat", got.Name)
}

func TestProjectService_CreateUnknownCustomerRollsBack(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	missing := "no-such-customer"

	_, err := s.projects.Create(ctx, "Orphan", &missing)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, 0, s.count(t, "projects"))
	assert.Equal(t, 0, s.count(t, "scope_nodes"))

	q, err := s.projects.Create(ctx, "Next", nil)
	require.NoError(t, err)
	assert.Equal(t, currentCode(1), q.Project.Code, "failed create does not consume a code")
}

func TestProjectService_CreateRequiresTitle(t *testing.T) {
	s := newTestServices(t)

	_, err := s.projects.Create(context.Background(), "   ", nil)
	assert.Error(t, err)
}

func TestProjectService_Resolve(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	q, err := s.projects.Create(ctx, "Resolve Me", nil)
	require.NoError(t, err)

	byID, err := s.projects.Resolve(ctx, q.Project.ID)
	require.NoError(t, err)
	assert.Equal(t, q.Project.ID, byID.ID)

	byCode, err := s.projects.Resolve(ctx, q.Project.Code)
	require.NoError(t, err)
	assert.Equal(t, q.Project.ID, byCode.ID)

	_, err = s.projects.Resolve(ctx, "PRJ-1999-0001")
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestProjectService_SetStatus(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	q, err := s.projects.Create(ctx, "Pipeline", nil)
	require.NoError(t, err)

	p, err := s.projects.SetStatus(ctx, q.Project.ID, domain.ProjectSent)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectSent, p.Status)

	_, err = s.projects.SetStatus(ctx, q.Project.ID, "won")
	assert.Error(t, err)

	_, err = s.projects.SetStatus(ctx, "missing", domain.ProjectAccepted)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)

	_, err = s.projects.SetStatus(ctx, q.Project.ID, domain.ProjectArchived)
	require.NoError(t, err)
	active, err := s.projects.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)
	all, err := s.projects.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestProjectService_DeleteRemovesTree(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	tile := s.product(t, "Tile", "1", "1")

	q, err := s.projects.Create(ctx, "Doomed", nil)
	require.NoError(t, err)
	_, err = s.quotes.AttachProduct(ctx, q.Root().AddChild("A", domain.NodeBlock), tile.ID, 1, nil)
	require.NoError(t, err)
	require.NoError(t, s.quotes.Save(ctx, q.Project, q.Roots))

	require.NoError(t, s.projects.Delete(ctx, q.Project.ID))
	assert.Equal(t, 0, s.count(t, "projects"))
	assert.Equal(t, 0, s.count(t, "scope_nodes"))
	assert.Equal(t, 0, s.count(t, "line_items"))
	assert.Equal(t, 1, s.count(t, "products"), "catalog is untouched")

	assert.ErrorIs(t, s.projects.Delete(ctx, q.Project.ID), domain.ErrProjectNotFound)
}

func TestCatalogService_CreateValidates(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	_, err := s.catalog.Create(ctx, "", dec("1"), dec("1"))
	assert.Error(t, err)
	_, err = s.catalog.Create(ctx, "Neg", dec("-1"), dec("1"))
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	p := s.product(t, "Grout", "3.20", "1.10")
	list, err := s.catalog.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, p.ID, list[0].ID)
}
